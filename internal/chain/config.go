package chain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/params"
)

const (
	DefaultAccounts      = 10
	DefaultSeed          = "seatoken"
	DefaultBlockGasLimit = 30_000_000
)

// DefaultBalance is what every generated account is funded with: 100 ether.
var DefaultBalance = new(big.Int).Mul(big.NewInt(100), big.NewInt(params.Ether))

type Config struct {
	// Accounts is the number of funded accounts to generate.
	Accounts int `mapstructure:"accounts" yaml:"accounts"`
	// Balance of every account in wei.
	Balance *big.Int `mapstructure:"balance" yaml:"balance"`
	// Seed makes account keys reproducible across runs.
	Seed     string `mapstructure:"seed" yaml:"seed"`
	GasLimit uint64 `mapstructure:"gas_limit" yaml:"gas_limit"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Accounts: DefaultAccounts,
		Balance:  new(big.Int).Set(DefaultBalance),
		Seed:     DefaultSeed,
		GasLimit: DefaultBlockGasLimit,
	}
}

func (c *Config) withDefaults() Config {
	res := *c
	if res.Accounts <= 0 {
		res.Accounts = DefaultAccounts
	}
	if res.Balance == nil {
		res.Balance = new(big.Int).Set(DefaultBalance)
	}
	if res.Seed == "" {
		res.Seed = DefaultSeed
	}
	if res.GasLimit == 0 {
		res.GasLimit = DefaultBlockGasLimit
	}
	return res
}
