// Package buildinfo carries the coursemap release stamp.
//
// Release builds set the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/coursemap/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/coursemap/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/coursemap/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/coursemap
//
// Layouts record [Generator] in their metadata, so a coordinate file can be
// traced back to the engine build that produced it.
package buildinfo

import "fmt"

// Name is the program name used in version strings.
const Name = "coursemap"

var (
	// Version is the release tag, "dev" for local builds.
	Version = "dev"
	// Commit is the git commit SHA.
	Commit = "none"
	// Date is the UTC build timestamp.
	Date = "unknown"
)

// shortCommit is the length of an abbreviated commit SHA.
const shortCommit = 7

// Generator identifies the build in layout metadata, e.g.
// "coursemap v0.3.0 (1a2b3c4)".
func Generator() string {
	commit := Commit
	if len(commit) > shortCommit {
		commit = commit[:shortCommit]
	}
	return fmt.Sprintf("%s %s (%s)", Name, Version, commit)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
