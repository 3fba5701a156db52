package version

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func stubBuildInfo(t *testing.T, bi *debug.BuildInfo, ok bool) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, ok }
	t.Cleanup(func() { readBuildInfo = orig })
}

func TestGet_InjectedCommit(t *testing.T) {
	origVersion, origCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = origVersion, origCommit })
	Version, Commit = "v1.0.0", "0123456789abcdef"

	info := Get()
	assert.Equal(t, "v1.0.0", info.Version)
	assert.Equal(t, "0123456789abcdef", info.Commit)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, "wpheader v1.0.0 (0123456789ab, "+runtime.Version()+")", info.String())
}

func TestGet_VCSFallback(t *testing.T) {
	origCommit := Commit
	t.Cleanup(func() { Commit = origCommit })
	Commit = ""

	stubBuildInfo(t, &debug.BuildInfo{Settings: []debug.BuildSetting{
		{Key: "vcs", Value: "git"},
		{Key: "vcs.revision", Value: "abc123"},
	}}, true)
	assert.Equal(t, "abc123", Get().Commit)

	stubBuildInfo(t, nil, false)
	info := Get()
	assert.Empty(t, info.Commit)
	assert.Equal(t, "wpheader "+Version+" ("+runtime.Version()+")", info.String())
}
