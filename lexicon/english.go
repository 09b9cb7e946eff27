package lexicon

// English is the built-in English table.
var English = NewTable(englishPronouns, englishNames)

var englishPronouns = []Pronoun{
	{"i", FirstPerson, false, Either},
	{"me", FirstPerson, false, Either},
	{"my", FirstPerson, false, Either},
	{"mine", FirstPerson, false, Either},
	{"myself", FirstPerson, false, Either},
	{"we", FirstPerson, true, Either},
	{"us", FirstPerson, true, Either},
	{"our", FirstPerson, true, Either},
	{"ours", FirstPerson, true, Either},
	{"ourselves", FirstPerson, true, Either},

	{"you", SecondPerson, false, Either},
	{"your", SecondPerson, false, Either},
	{"yours", SecondPerson, false, Either},
	{"yourself", SecondPerson, false, Either},
	{"yourselves", SecondPerson, true, Either},

	{"he", ThirdPerson, false, Male},
	{"him", ThirdPerson, false, Male},
	{"his", ThirdPerson, false, Male},
	{"himself", ThirdPerson, false, Male},
	{"she", ThirdPerson, false, Female},
	{"her", ThirdPerson, false, Female},
	{"hers", ThirdPerson, false, Female},
	{"herself", ThirdPerson, false, Female},
	{"it", ThirdPerson, false, Neutral},
	{"its", ThirdPerson, false, Neutral},
	{"itself", ThirdPerson, false, Neutral},
	{"they", ThirdPerson, true, Either},
	{"them", ThirdPerson, true, Either},
	{"their", ThirdPerson, true, Either},
	{"theirs", ThirdPerson, true, Either},
	{"themselves", ThirdPerson, true, Either},
}

var englishNames = map[string]Gender{
	"james": Male, "john": Male, "robert": Male, "michael": Male, "william": Male,
	"david": Male, "richard": Male, "joseph": Male, "thomas": Male, "charles": Male,
	"george": Male, "peter": Male, "paul": Male, "mark": Male, "daniel": Male,
	"mary": Female, "patricia": Female, "jennifer": Female, "linda": Female, "elizabeth": Female,
	"barbara": Female, "susan": Female, "jessica": Female, "sarah": Female, "karen": Female,
	"nancy": Female, "lisa": Female, "anna": Female, "emily": Female, "laura": Female,
	"alex": Either, "jordan": Either, "taylor": Either, "morgan": Either, "casey": Either,
}
