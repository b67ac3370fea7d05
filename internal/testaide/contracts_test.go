package testaide

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOffline(t *testing.T) {
	for value, expected := range map[string]bool{
		"":      true,
		"0":     true,
		"false": true,
		"maybe": true,
		"1":     false,
		"true":  false,
	} {
		t.Setenv(EnvSolcInstall, value)
		require.Equal(t, expected, offline(), "%s=%q", EnvSolcInstall, value)
	}
}
