package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithLeavesReceiverUntouched(t *testing.T) {
	base := FromList([]string{"CPPFLAGS=-DBASE", "PATH=/usr/bin"})

	derived := base.With("CPPFLAGS", "-DOTHER")

	assert.Equal(t, "-DBASE", base.Lookup("CPPFLAGS"))
	assert.Equal(t, "-DOTHER", derived.Lookup("CPPFLAGS"))
	assert.Equal(t, "/usr/bin", derived.Lookup("PATH"))
}

func TestWithAppended(t *testing.T) {
	base := FromList([]string{"LDFLAGS=-L/old"})

	assert.Equal(t, "-L/old -L/new", base.WithAppended("LDFLAGS", "-L/new").Lookup("LDFLAGS"))
	assert.Equal(t, "-I/x", base.WithAppended("CPPFLAGS", "-I/x").Lookup("CPPFLAGS"))
	assert.Equal(t, "-L/old", base.WithAppended("LDFLAGS", "").Lookup("LDFLAGS"))
}

func TestFromListSkipsMalformedEntries(t *testing.T) {
	env := FromList([]string{"A=1", "broken", "=nokey", "B=x=y", "A=2"})

	assert.Equal(t, 2, env.Len())
	assert.Equal(t, "2", env.Lookup("A"))
	assert.Equal(t, "x=y", env.Lookup("B"))
}

func TestSplitAndJoinList(t *testing.T) {
	joined := JoinList([]string{"/a", "/b"})
	env := FromList([]string{"PKG_CONFIG_PATH=" + joined})

	assert.Equal(t, []string{"/a", "/b"}, env.SplitList("PKG_CONFIG_PATH"))
	assert.Nil(t, env.SplitList("MISSING"))
}

func TestEnvironSorted(t *testing.T) {
	env := FromList([]string{"B=2", "A=1"})
	assert.Equal(t, []string{"A=1", "B=2"}, env.Environ())
}

func TestCommandString(t *testing.T) {
	cmd := Command{Path: "make", Args: []string{"install", "CFLAGS=-O2 -g", ""}}
	assert.Equal(t, `make install "CFLAGS=-O2 -g" ""`, cmd.String())
}
