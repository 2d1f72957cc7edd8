// Package version exposes the git metadata embedded at build time.
package version

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:generate sh -c "printf %s $(git rev-parse HEAD) > commit.txt"
//go:generate sh -c "printf %s $(git rev-parse --abbrev-ref HEAD) > branch.txt"
//go:generate sh -c "printf %s $(git describe --tags --abbrev=0 2>/dev/null || echo none) > tag.txt"
//go:generate sh -c "git diff-index --quiet HEAD -- || echo dirty > dirty.txt; [ -f dirty.txt ] || echo clean > dirty.txt"

//go:embed commit.txt
var commit string

//go:embed branch.txt
var branch string

//go:embed tag.txt
var tag string

//go:embed dirty.txt
var dirty string

// Info describes the source tree the binary was built from.
type Info struct {
	Commit string
	Branch string
	Tag    string
	Dirty  bool
}

// String renders the info the way the version command prints it.
func (i Info) String() string {
	return fmt.Sprintf("Tag: %s\nBranch: %s\nCommit: %s\nDirty: %v\n", i.Tag, i.Branch, i.Commit, i.Dirty)
}

// Get returns the embedded build information.
func Get() Info {
	return Info{
		Commit: strings.TrimSpace(commit),
		Branch: strings.TrimSpace(branch),
		Tag:    strings.TrimSpace(tag),
		Dirty:  strings.TrimSpace(dirty) == "dirty",
	}
}
