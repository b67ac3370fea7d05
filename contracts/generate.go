package contracts

import "embed"

//go:generate go run ../cmd/seatoken compile --contracts-dir . --source SeaToken.sol --source SeaTokenSale.sol --build-dir ../build --strict
//go:embed *.sol
var Fs embed.FS
