package compiler

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/require"
)

const (
	seaTokenSource = `// SPDX-License-Identifier: MIT
pragma solidity ^0.8.20;

contract SeaToken {
    string public name = "Sea Token";
}
`
	seaTokenSaleSource = `// SPDX-License-Identifier: MIT
pragma solidity ^0.8.20;

import "./SeaToken.sol";

contract SeaTokenSale {
    SeaToken public tokenContract;
}
`

	seaTokenArtifact = `{"abi":[{"inputs":[],"name":"name","outputs":[{"internalType":"string","name":"","type":"string"}],"stateMutability":"view","type":"function"}],` +
		`"evm":{"bytecode":{"object":"600a600c600039600a6000f3602a60005260206000f3"},"deployedBytecode":{"object":"602a60005260206000f3"},` +
		`"methodIdentifiers":{"name()":"06fdde03"}}}`
	seaTokenSaleArtifact = `{"abi":[],"evm":{"bytecode":{"object":"6005600c60003960056000f360006000fd"}}}`

	cannedOutput = `{
  "contracts": {
    "SeaToken.sol": {"SeaToken": ` + seaTokenArtifact + `},
    "SeaTokenSale.sol": {"SeaTokenSale": ` + seaTokenSaleArtifact + `}
  },
  "errors": [
    {"severity": "warning", "type": "Warning", "message": "Function state mutability can be restricted to pure",
     "formattedMessage": "Warning: Function state mutability can be restricted to pure"}
  ],
  "sources": {"SeaToken.sol": {"id": 0}, "SeaTokenSale.sol": {"id": 1}}
}`

	failedOutput = `{
  "errors": [
    {"severity": "error", "type": "ParserError", "message": "Expected ';' but got '}'",
     "formattedMessage": "ParserError: Expected ';' but got '}'\n --> SeaToken.sol:5:1:"}
  ]
}`
)

// newCannedRunner returns a runner mock that checks the envelope and replies with the given output.
func newCannedRunner(t *testing.T, output string) *RunnerMock {
	t.Helper()

	return &RunnerMock{
		VersionFunc: func(context.Context) (*semver.Version, error) {
			return semver.MustParse("0.8.26"), nil
		},
		RunFunc: func(_ context.Context, data []byte) ([]byte, error) {
			var input Input
			require.NoError(t, json.Unmarshal(data, &input))
			require.Equal(t, LanguageSolidity, input.Language)
			require.Equal(t, FullOutputSelection(), input.Settings.OutputSelection)
			return []byte(output), nil
		},
	}
}
