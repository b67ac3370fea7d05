package common

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/NilFoundation/seatoken/contracts"
	"github.com/NilFoundation/seatoken/internal/chain"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type SuiteConfig struct {
	suite.Suite

	dir string
}

func (s *SuiteConfig) SetupTest() {
	s.dir = s.T().TempDir()
}

func (s *SuiteConfig) load(path string, required bool) *Config {
	s.T().Helper()

	v, err := NewViper()
	s.Require().NoError(err)
	s.Require().NoError(ReadConfigFile(v, path, required))
	cfg, err := Unmarshal(v)
	s.Require().NoError(err)
	return cfg
}

func (s *SuiteConfig) TestDefaults() {
	cfg := s.load(filepath.Join(s.dir, "missing.yaml"), false)

	s.Equal(contracts.DefaultSources, cfg.Compile.Sources)
	s.Equal("build", cfg.Compile.BuildDir)
	s.Equal(chain.DefaultAccounts, cfg.Chain.Accounts)
	s.Zero(chain.DefaultBalance.Cmp(cfg.Chain.Balance))
	s.Zero(big.NewInt(7_000_000).Cmp(cfg.Token.InitialSupply))
	s.Equal("0.001ether", cfg.Sale.TokenPrice.String())
	s.False(cfg.Compile.Strict)
}

func (s *SuiteConfig) TestRequiredFileMissing() {
	v, err := NewViper()
	s.Require().NoError(err)
	s.Require().ErrorIs(ReadConfigFile(v, filepath.Join(s.dir, "missing.yaml"), true), os.ErrNotExist)
}

func (s *SuiteConfig) TestFile() {
	path := filepath.Join(s.dir, "seatoken.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(`
compile:
  build_dir: out
  sources: [SeaToken.sol]
  strict: true
chain:
  accounts: 4
  balance: "5000000000000000000"
token:
  initial_supply: 1000
sale:
  token_price: 2gwei
  purchase: "0x10"
`), 0o600))

	cfg := s.load(path, true)
	s.Equal("out", cfg.Compile.BuildDir)
	s.Equal([]string{"SeaToken.sol"}, cfg.Compile.Sources)
	s.True(cfg.Compile.Strict)
	s.Equal("contracts", cfg.Compile.ContractsDir)
	s.Equal(4, cfg.Chain.Accounts)
	s.Zero(big.NewInt(5_000_000_000_000_000_000).Cmp(cfg.Chain.Balance))
	s.Zero(big.NewInt(1000).Cmp(cfg.Token.InitialSupply))
	s.Zero(big.NewInt(2_000_000_000).Cmp(cfg.Sale.TokenPrice.Int()))
	s.Zero(big.NewInt(16).Cmp(cfg.Sale.Purchase))

	sc := cfg.ScenarioConfig()
	s.Zero(big.NewInt(1000).Cmp(sc.Supply))
	s.Zero(big.NewInt(2_000_000_000).Cmp(sc.TokenPrice))
	s.Equal(4, sc.Chain.Accounts)
}

func (s *SuiteConfig) TestBadValue() {
	path := filepath.Join(s.dir, "seatoken.yaml")
	s.Require().NoError(os.WriteFile(path, []byte("token:\n  initial_supply: lots\n"), 0o600))

	v, err := NewViper()
	s.Require().NoError(err)
	s.Require().NoError(ReadConfigFile(v, path, true))
	_, err = Unmarshal(v)
	s.Require().Error(err)
}

func (s *SuiteConfig) TestEnv() {
	s.T().Setenv("SEATOKEN_COMPILE_BUILD_DIR", "from-env")

	cfg := s.load("", false)
	s.Equal("from-env", cfg.Compile.BuildDir)
}

func (s *SuiteConfig) TestFlags() {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("build-dir", "build", "")
	cmd.Flags().Var(NewAmount(big.NewInt(1)), "token-price", "")
	cmd.Flags().Bool("unbound", false, "")
	BindFlag(cmd, "build-dir", "compile.build_dir")
	BindFlag(cmd, "token-price", "sale.token_price")
	s.Require().NoError(cmd.ParseFlags([]string{"--build-dir", "flag-dir", "--token-price", "3wei"}))

	v, err := NewViper()
	s.Require().NoError(err)
	s.Require().NoError(BindFlags(v, cmd.Flags()))
	cfg, err := Unmarshal(v)
	s.Require().NoError(err)
	s.Equal("flag-dir", cfg.Compile.BuildDir)
	s.Zero(big.NewInt(3).Cmp(cfg.Sale.TokenPrice.Int()))
}

func (s *SuiteConfig) TestYamlRoundTrip() {
	cfg := NewDefaultConfig()
	cfg.Chain.Seed = "roundtrip"
	data, err := cfg.Yaml()
	s.Require().NoError(err)

	path := filepath.Join(s.dir, "seatoken.yaml")
	s.Require().NoError(os.WriteFile(path, data, 0o600))
	loaded := s.load(path, true)
	s.Equal("roundtrip", loaded.Chain.Seed)
	s.Equal(cfg.Sale.TokenPrice.String(), loaded.Sale.TokenPrice.String())
	s.Zero(cfg.Chain.Balance.Cmp(loaded.Chain.Balance))
}

func TestConfig(t *testing.T) {
	suite.Run(t, new(SuiteConfig))
}

func TestUnknownFlagAnnotation(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{Use: "test"}
	require.Panics(t, func() {
		BindFlag(cmd, "missing", "compile.build_dir")
	})
}
