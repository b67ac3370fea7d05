package common

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeccak256(t *testing.T) {
	t.Parallel()

	require.Equal(t,
		"c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
		hex.EncodeToString(Keccak256()))

	require.Equal(t, Keccak256([]byte("seatoken")), Keccak256([]byte("sea"), []byte("token")))
	require.NotEqual(t, Keccak256([]byte("a")), Keccak256([]byte("b")))
}
