// Package version reports the build version of the wpheader binary. The
// variables are set with -ldflags at release time.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// Version is the release tag, e.g. "v1.2.0".
	Version = "dev"
	// Commit is the git revision the binary was built from.
	Commit = ""
)

// Info describes the running binary.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit,omitempty" yaml:"commit,omitempty"`
	GoVersion string `json:"goVersion" yaml:"goVersion"`
}

// Get returns the build info. When Commit was not injected it falls back to
// the VCS revision recorded by the Go toolchain, if any.
func Get() Info {
	info := Info{Version: Version, Commit: Commit, GoVersion: runtime.Version()}
	if info.Commit == "" {
		info.Commit = vcsRevision()
	}
	return info
}

// String formats the info for a single line of output.
func (i Info) String() string {
	if i.Commit == "" {
		return fmt.Sprintf("wpheader %s (%s)", i.Version, i.GoVersion)
	}
	commit := i.Commit
	if len(commit) > 12 {
		commit = commit[:12]
	}
	return fmt.Sprintf("wpheader %s (%s, %s)", i.Version, commit, i.GoVersion)
}

var readBuildInfo = debug.ReadBuildInfo

func vcsRevision() string {
	bi, ok := readBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}
