package scenario

import (
	"math/big"

	"github.com/NilFoundation/seatoken/internal/chain"
)

const (
	DefaultSupply    = 7_000_000
	DefaultProvision = 5_000_000
	DefaultPurchase  = 10
	DefaultDeployGas = 3_000_000
)

// DefaultTokenPrice is 0.001 ether.
var DefaultTokenPrice = big.NewInt(1_000_000_000_000_000)

type Config struct {
	Chain *chain.Config
	// Supply minted to the deployer.
	Supply *big.Int
	// TokenPrice in wei.
	TokenPrice *big.Int
	// Provision is the number of tokens the admin hands to the sale.
	Provision *big.Int
	// Purchase is the number of tokens bought in the sale scenario.
	Purchase  *big.Int
	DeployGas uint64
}

func NewDefaultConfig() *Config {
	return &Config{
		Chain:      chain.NewDefaultConfig(),
		Supply:     big.NewInt(DefaultSupply),
		TokenPrice: new(big.Int).Set(DefaultTokenPrice),
		Provision:  big.NewInt(DefaultProvision),
		Purchase:   big.NewInt(DefaultPurchase),
		DeployGas:  DefaultDeployGas,
	}
}
