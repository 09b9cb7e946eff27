package version

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/coref/errors"
)

// Build information. These variables are set at build time via ldflags.
var (
	// CommitHash is the git commit hash when the binary was built
	CommitHash = "dev"

	// BuildTime is when the binary was built
	BuildTime = "unknown"

	// Version is the semantic version (if tagged)
	Version = "dev"
)

// Dev marks an untagged build.
const Dev = "dev"

// Info contains version and build information
type Info struct {
	CommitHash string `json:"commit_hash"`
	BuildTime  string `json:"build_time"`
	Version    string `json:"version"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

// Get returns the current version information
func Get() Info {
	return Info{
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		Version:    Version,
		GoVersion:  runtime.Version(),
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a human-readable version string
func (i Info) String() string {
	if i.Version != Dev {
		return fmt.Sprintf("coref %s (commit %s, built %s)", i.Version, i.CommitHash, i.BuildTime)
	}
	return fmt.Sprintf("coref dev (commit %s, built %s)", i.CommitHash, i.BuildTime)
}

// Short returns a short version string with just the commit hash
func (i Info) Short() string {
	if len(i.CommitHash) >= 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}

// Compatible reports whether a model stored by version stored can be loaded
// by this binary.
func Compatible(stored string) error {
	return CompatibleWith(Version, stored)
}

// CompatibleWith checks that stored satisfies the same major version as running.
// Dev builds on either side are always compatible.
func CompatibleWith(running, stored string) error {
	if running == Dev || stored == Dev {
		return nil
	}
	current, err := semver.NewVersion(running)
	if err != nil {
		return errors.Wrapf(err, "parse running version %q", running)
	}
	built, err := semver.NewVersion(stored)
	if err != nil {
		return errors.Wrapf(err, "parse stored version %q", stored)
	}

	// Below 1.0 the minor version carries breaking changes.
	same := current.Major() == built.Major()
	if same && current.Major() == 0 {
		same = current.Minor() == built.Minor()
	}
	if !same {
		return errors.WithHintf(
			errors.Wrapf(errors.ErrIncompatibleModel, "model built by %s, running %s", stored, running),
			"retrain with coref train",
		)
	}
	return nil
}
