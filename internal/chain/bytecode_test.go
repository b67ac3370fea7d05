package chain

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

// Hand-assembled contracts, so the chain can be tested without a Solidity compiler.
const (
	// returns 42 for any call
	answerCode = "600a600c600039600a6000f3" + "602a60005260206000f3"
	answerAbi  = `[{"type":"function","name":"answer","inputs":[],
		"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"}]`

	// reverts on any call
	revertCode = "6005600c60003960056000f3" + "60006000fd"
	revertAbi  = `[{"type":"function","name":"fail","inputs":[],"outputs":[],"stateMutability":"nonpayable"}]`

	// constructor reverts
	badConstructorCode = "60006000fd"

	// emits Ping(msg.sender, 42) for any call
	pingAbi = `[{"type":"function","name":"ping","inputs":[],"outputs":[],"stateMutability":"nonpayable"},
		{"type":"event","name":"Ping","anonymous":false,"inputs":[
			{"name":"_sender","type":"address","indexed":true},
			{"name":"_value","type":"uint256","indexed":false}]}]`
)

func parseAbi(t *testing.T, s string) abi.ABI {
	t.Helper()
	res, err := abi.JSON(strings.NewReader(s))
	require.NoError(t, err)
	return res
}

func decodeCode(t *testing.T, s string) []byte {
	t.Helper()
	res, err := hex.DecodeString(s)
	require.NoError(t, err)
	return res
}

// pingCode assembles the Ping emitter for the event id from pingAbi.
func pingCode(t *testing.T, eventId common.Hash) []byte {
	t.Helper()
	runtime := "602a600052" + // mstore(0, 42)
		"33" + // caller
		"7f" + hex.EncodeToString(eventId[:]) +
		"60206000" + "a2" + // log2(0, 32, id, caller)
		"00"
	require.Len(t, runtime, 2*0x2d)
	return decodeCode(t, "602d600c600039602d6000f3"+runtime)
}
