package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/NilFoundation/seatoken/cmd/seatoken/internal/common"
	"github.com/NilFoundation/seatoken/common/logging"
	"github.com/spf13/cobra"
)

var logger = logging.NewLogger("configCommand")

var ErrConfigExists = errors.New("config file already exists")

const forceFlag = "force"

const header = `# SeaToken harness configuration.
# Every key can be overridden with SEATOKEN_<SECTION>_<KEY> environment variables
# or with the flags of the compile and simulate commands.
`

func GetCommand(configPath *string, cfg *common.Config) *cobra.Command {
	configCmd := &cobra.Command{
		Use:          "config",
		Short:        "Configuration management",
		SilenceUsage: true,
	}

	var force bool
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Write a config file with the default settings",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := InitConfig(*configPath, force)
			if err != nil {
				logger.Error().Err(err).Msg("Failed to create config")
				return err
			}

			logger.Info().Str(logging.FieldFile, path).Msg("Config initialized successfully")
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, forceFlag, false, "Overwrite an existing config file")

	showCmd := &cobra.Command{
		Use:          "show",
		Short:        "Print the effective settings",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := cfg.Yaml()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	configCmd.AddCommand(initCmd)
	configCmd.AddCommand(showCmd)

	return configCmd
}

// InitConfig writes the default config to path and returns the path written.
func InitConfig(path string, force bool) (string, error) {
	if path == "" {
		path = common.DefaultConfigPath
	}
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	data, err := common.NewDefaultConfig().Yaml()
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, append([]byte(header), data...), 0o644); err != nil { //nolint:gosec
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}
