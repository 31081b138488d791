package build

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewContextDefaults(t *testing.T) {
	c := NewContext("/tmp/build/", WithPlatform(PlatformUnix))

	assert.Equal(t, "/tmp/build", c.BuildRoot())
	assert.Equal(t, filepath.Join("/tmp/build", "sources"), c.SourcesRoot())
	assert.Equal(t, ProfileRelease, c.Profile())
	assert.True(t, c.IsUnix())
	assert.False(t, c.IsWindows())
	assert.NotNil(t, c.Logger())
}

func TestSourceDirectory(t *testing.T) {
	c := NewContext("/tmp/build", WithSourcesRoot("/src"))
	assert.Equal(t, filepath.Join("/src", "cairo"), c.SourceDirectory("cairo"))
}

func TestMSVCDirectoriesAreCopied(t *testing.T) {
	includes := []string{"C:/sdk/include"}
	c := NewContext("/tmp/build",
		WithPlatform(PlatformWindows),
		WithMSVCDirectories(includes, []string{"C:/sdk/lib"}),
	)

	includes[0] = "changed"
	got := c.MSVCIncludeDirectories()
	assert.Equal(t, []string{"C:/sdk/include"}, got)

	got[0] = "changed again"
	assert.Equal(t, []string{"C:/sdk/include"}, c.MSVCIncludeDirectories())
	assert.Equal(t, []string{"C:/sdk/lib"}, c.MSVCLibDirectories())
}

func TestUnknownPlatform(t *testing.T) {
	c := NewContext("/tmp/build", WithPlatform(""))
	assert.False(t, c.IsUnix())
	assert.False(t, c.IsWindows())
}

func TestErrorUnwrap(t *testing.T) {
	err := &Error{Op: "configure", Library: "cairo", Err: fmt.Errorf("%w: exit status 1", ErrSubprocess)}

	assert.True(t, errors.Is(err, ErrSubprocess))
	assert.Equal(t, "configure cairo: subprocess failed: exit status 1", err.Error())

	bare := &Error{Op: "resolving sources", Err: ErrSourceUnavailable}
	assert.Equal(t, "resolving sources: sources unavailable", bare.Error())
}
