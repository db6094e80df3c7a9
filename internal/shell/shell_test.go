package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandNames(t *testing.T) {
	names := CommandNames("grep foo /tmp/log | wc -l", VariantBash)
	assert.Equal(t, []string{"grep", "wc"}, names)
}

func TestCommandNamesUnparsable(t *testing.T) {
	assert.Nil(t, CommandNames("if then fi ((", VariantBash))
}

func TestCommandNamesSkipsExpansions(t *testing.T) {
	names := CommandNames(`$CMD foo; ls`, VariantBash)
	assert.Equal(t, []string{"ls"}, names)
}

func TestUsesPipes(t *testing.T) {
	assert.True(t, UsesPipes("cat f | sort", VariantBash))
	assert.False(t, UsesPipes("sort f", VariantBash))
}

func TestVariantFromShell(t *testing.T) {
	assert.Equal(t, VariantPOSIX, VariantFromShell("/bin/sh"))
	assert.Equal(t, VariantPOSIX, VariantFromShell("dash"))
	assert.Equal(t, VariantBash, VariantFromShell("/usr/bin/bash"))
	assert.Equal(t, VariantBash, VariantFromShell("zsh"))
}
