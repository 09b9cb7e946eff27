package cluster

import (
	"github.com/teranos/coref/doc"
	"github.com/teranos/coref/errors"
)

// FromGold builds a registry holding the gold partition of a labeled
// document. Every mention must belong to exactly one gold entity.
func FromGold(l doc.Labeled) (*Registry, error) {
	d := l.Doc
	r := NewRegistry(d)
	for g, members := range l.Gold {
		if len(members) == 0 {
			continue
		}
		var id EntityID
		for k, idx := range members {
			if idx < 0 || idx >= len(d.Mentions) {
				return nil, errors.Wrapf(errors.ErrInvalidGold,
					"document %s: gold entity %d references mention %d of %d", d.ID, g, idx, len(d.Mentions))
			}
			m := d.Mentions[idx]
			if r.assign[idx] != unassigned {
				return nil, errors.Wrapf(errors.ErrInvalidGold,
					"document %s: mention %d appears in more than one gold entity", d.ID, idx)
			}
			if k == 0 {
				id = r.MarkSingleton(m).Entity.ID
			} else {
				r.MarkCoreferent(m, id)
			}
		}
	}
	for _, m := range d.Mentions {
		if r.assign[m.Index] == unassigned {
			return nil, errors.Wrapf(errors.ErrMissingGold,
				"document %s: mention %d (%q)", d.ID, m.Index, m.Gloss())
		}
	}
	return r, nil
}

// Verify checks that assignments partition d's mentions: every mention
// appears exactly once and no receipt points at a retired entity.
func Verify(d *doc.Document, assignments []ClusteredMention) error {
	if len(assignments) != len(d.Mentions) {
		return errors.AssertionFailedf("document %s: %d assignments for %d mentions",
			d.ID, len(assignments), len(d.Mentions))
	}
	seen := make([]bool, len(d.Mentions))
	owner := make(map[int]*Entity, len(d.Mentions))
	for _, cm := range assignments {
		idx := cm.Mention.Index
		if idx < 0 || idx >= len(d.Mentions) || d.Mentions[idx] != cm.Mention {
			return errors.AssertionFailedf("document %s: foreign mention %d", d.ID, idx)
		}
		if seen[idx] {
			return errors.AssertionFailedf("document %s: mention %d assigned twice", d.ID, idx)
		}
		seen[idx] = true
		if cm.Entity == nil || cm.Entity.Retired() {
			return errors.AssertionFailedf("document %s: mention %d assigned to a retired entity", d.ID, idx)
		}
		if !cm.Entity.Contains(cm.Mention) {
			return errors.AssertionFailedf("document %s: mention %d not a member of its entity", d.ID, idx)
		}
		owner[idx] = cm.Entity
	}
	for _, cm := range assignments {
		for _, member := range cm.Entity.Mentions() {
			if owner[member.Index] != cm.Entity {
				return errors.AssertionFailedf("document %s: mention %d split across entities", d.ID, member.Index)
			}
		}
	}
	return nil
}

// Group collects assignments into entities in order of first mention.
func Group(assignments []ClusteredMention) [][]*doc.Mention {
	var groups [][]*doc.Mention
	index := make(map[*Entity]int)
	for _, cm := range assignments {
		g, ok := index[cm.Entity]
		if !ok {
			g = len(groups)
			index[cm.Entity] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], cm.Mention)
	}
	return groups
}
