// Package buildinfo reports the version of the running binary.
//
// Release builds stamp the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/tldrviz/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/tldrviz/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/tldrviz/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Binaries built with go install carry no ldflags; for those, [Get] falls
// back to the module version and VCS settings embedded by the toolchain.
package buildinfo

import (
	"fmt"
	"runtime/debug"
	"sync"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the build identity served by /healthz and printed by --version.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

var (
	once   sync.Once
	cached Info
)

// Get returns the stamped build info, filling unstamped fields from the
// embedded module information when available.
func Get() Info {
	once.Do(func() {
		cached = Info{Version: Version, Commit: Commit, Date: Date}
		bi, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}
		if cached.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			cached.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && cached.Commit == "none":
				cached.Commit = s.Value
			case s.Key == "vcs.time" && cached.Date == "unknown":
				cached.Date = s.Value
			}
		}
	})
	return cached
}

// Template returns the cobra version template.
func Template() string {
	i := Get()
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s)\n", i.Version, i.Commit, i.Date)
}
