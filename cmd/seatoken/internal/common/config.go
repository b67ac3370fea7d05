package common

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"math/big"
	"os"
	"reflect"
	"strings"

	"github.com/NilFoundation/seatoken/common/logging"
	"github.com/NilFoundation/seatoken/contracts"
	"github.com/NilFoundation/seatoken/internal/chain"
	"github.com/NilFoundation/seatoken/internal/compiler"
	"github.com/NilFoundation/seatoken/internal/scenario"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "seatoken.yaml"
	EnvPrefix         = "SEATOKEN"
)

var logger = logging.NewLogger("config")

type CompileConfig struct {
	ContractsDir string   `mapstructure:"contracts_dir" yaml:"contracts_dir"`
	Sources      []string `mapstructure:"sources" yaml:"sources"`
	BuildDir     string   `mapstructure:"build_dir" yaml:"build_dir"`
	SolcPath     string   `mapstructure:"solc_path" yaml:"solc_path"`
	SolcVersion  string   `mapstructure:"solc_version" yaml:"solc_version"`
	// Offline forbids downloading the compiler.
	Offline bool `mapstructure:"offline" yaml:"offline"`
	// Strict makes compilation failures fail the command.
	Strict bool `mapstructure:"strict" yaml:"strict"`
}

type TokenConfig struct {
	InitialSupply *big.Int `mapstructure:"initial_supply" yaml:"initial_supply"`
}

type SaleConfig struct {
	TokenPrice *Amount `mapstructure:"token_price" yaml:"token_price"`
	// Provision is the number of tokens handed to the sale before buying.
	Provision *big.Int `mapstructure:"provision" yaml:"provision"`
	Purchase  *big.Int `mapstructure:"purchase" yaml:"purchase"`
}

type Config struct {
	Compile CompileConfig `mapstructure:"compile" yaml:"compile"`
	Chain   chain.Config  `mapstructure:"chain" yaml:"chain"`
	Token   TokenConfig   `mapstructure:"token" yaml:"token"`
	Sale    SaleConfig    `mapstructure:"sale" yaml:"sale"`
}

func NewDefaultConfig() *Config {
	sc := scenario.NewDefaultConfig()
	return &Config{
		Compile: CompileConfig{
			ContractsDir: "contracts",
			Sources:      append([]string(nil), contracts.DefaultSources...),
			BuildDir:     "build",
			SolcVersion:  compiler.DefaultSolcVersion,
		},
		Chain: *chain.NewDefaultConfig(),
		Token: TokenConfig{
			InitialSupply: sc.Supply,
		},
		Sale: SaleConfig{
			TokenPrice: NewAmount(sc.TokenPrice),
			Provision:  sc.Provision,
			Purchase:   sc.Purchase,
		},
	}
}

// ScenarioConfig converts the settings into the scenario runner's config.
func (c *Config) ScenarioConfig() *scenario.Config {
	sc := scenario.NewDefaultConfig()
	sc.Chain = &c.Chain
	if c.Token.InitialSupply != nil {
		sc.Supply = c.Token.InitialSupply
	}
	if c.Sale.TokenPrice != nil {
		sc.TokenPrice = c.Sale.TokenPrice.Int()
	}
	if c.Sale.Provision != nil {
		sc.Provision = c.Sale.Provision
	}
	if c.Sale.Purchase != nil {
		sc.Purchase = c.Sale.Purchase
	}
	return sc
}

func (c *Config) Yaml() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// NewViper returns a viper instance with the defaults of every key and environment overrides (SEATOKEN_COMPILE_BUILD_DIR etc.).
func NewViper() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	data, err := NewDefaultConfig().Yaml()
	if err != nil {
		return nil, err
	}
	var sections map[string]map[string]any
	if err := yaml.Unmarshal(data, &sections); err != nil {
		return nil, err
	}
	for section, values := range sections {
		for key, value := range values {
			v.SetDefault(section+"."+key, value)
		}
	}
	return v, nil
}

// ReadConfigFile reads the config file into v. A missing file is an error only when required is set.
func ReadConfigFile(v *viper.Viper, path string, required bool) error {
	if path == "" {
		path = DefaultConfigPath
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			logger.Debug().Str(logging.FieldFile, path).Msg("No config file, using defaults")
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	logger.Debug().Str(logging.FieldFile, path).Msg("Config file loaded")
	return nil
}

func Unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, updateDecoderConfig); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

var (
	bigIntType = reflect.TypeOf(&big.Int{})
	amountType = reflect.TypeOf(&Amount{})
)

func decodeBigInt(f reflect.Type, t reflect.Type, data any) (any, error) {
	if t != bigIntType {
		return data, nil
	}
	v := reflect.ValueOf(data)
	switch f.Kind() {
	case reflect.String:
		res, ok := new(big.Int).SetString(strings.ReplaceAll(v.String(), "_", ""), 0)
		if !ok {
			return nil, fmt.Errorf("invalid integer %q", v.String())
		}
		return res, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return new(big.Int).SetUint64(v.Uint()), nil
	case reflect.Float32, reflect.Float64:
		fl := v.Float()
		if fl != math.Trunc(fl) {
			return nil, fmt.Errorf("invalid integer %v", fl)
		}
		res, _ := big.NewFloat(fl).Int(nil)
		return res, nil
	default:
		return data, nil
	}
}

func decodeAmount(f reflect.Type, t reflect.Type, data any) (any, error) {
	if t != amountType {
		return data, nil
	}
	switch f.Kind() {
	case reflect.String:
		return ParseAmount(reflect.ValueOf(data).String())
	default:
		wei, err := decodeBigInt(f, bigIntType, data)
		if err != nil {
			return nil, err
		}
		if i, ok := wei.(*big.Int); ok {
			return NewAmount(i), nil
		}
		return data, nil
	}
}

func updateDecoderConfig(config *mapstructure.DecoderConfig) {
	config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		config.DecodeHook,
		decodeBigInt,
		decodeAmount,
	)
}
