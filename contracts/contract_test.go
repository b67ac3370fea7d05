package contracts

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSources(t *testing.T) {
	t.Parallel()

	sources, err := Sources()
	require.NoError(t, err)
	require.Len(t, sources, len(DefaultSources))

	for _, name := range DefaultSources {
		content, ok := sources[name]
		require.True(t, ok, "source %s is not embedded", name)
		require.Contains(t, content, "pragma solidity")
	}

	require.Contains(t, sources[FileSeaToken], "contract SeaToken ")
	require.Contains(t, sources[FileSeaTokenSale], `import "./SeaToken.sol";`)
}

func TestGetSourceMissing(t *testing.T) {
	t.Parallel()

	_, err := GetSource("Missing.sol")
	require.Error(t, err)
}
