package main

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/NilFoundation/seatoken/cmd/seatoken/internal/common"
	"github.com/NilFoundation/seatoken/cmd/seatoken/internal/compile"
	"github.com/NilFoundation/seatoken/cmd/seatoken/internal/config"
	"github.com/NilFoundation/seatoken/cmd/seatoken/internal/simulate"
	"github.com/NilFoundation/seatoken/common/check"
	"github.com/NilFoundation/seatoken/common/concurrent"
	"github.com/NilFoundation/seatoken/common/logging"
	"github.com/spf13/cobra"
)

type RootCommand struct {
	baseCmd  *cobra.Command
	config   common.Config
	cfgFile  string
	logLevel string
	verbose  bool
}

const logLevelFlag = "log-level"

var logger = logging.NewLogger("rootCommand")

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go concurrent.OnSignal(ctx, cancel, syscall.SIGINT, syscall.SIGTERM)

	os.Exit(newRootCommand().Execute(ctx))
}

func newRootCommand() *RootCommand {
	rootCmd := &RootCommand{}
	rootCmd.baseCmd = &cobra.Command{
		Use:   "seatoken",
		Short: "Compile and exercise the SeaToken contracts",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rootCmd.setup(cmd)
		},
		SilenceErrors: true,
	}

	rootCmd.baseCmd.PersistentFlags().StringVarP(
		&rootCmd.cfgFile, "config", "c", "", fmt.Sprintf("Path to config file (default %q if present)", common.DefaultConfigPath))
	rootCmd.baseCmd.PersistentFlags().StringVarP(
		&rootCmd.logLevel, logLevelFlag, "l", "info", "Log level: trace|debug|info|warn|error (LOG_LEVEL if not given)")
	rootCmd.baseCmd.PersistentFlags().BoolVarP(&rootCmd.verbose, "verbose", "v", false, "Shortcut for --log-level=debug")

	rootCmd.registerSubCommands()
	return rootCmd
}

// registerSubCommands adds all subcommands to the root command
func (rc *RootCommand) registerSubCommands() {
	rc.baseCmd.AddCommand(
		compile.GetCommand(&rc.config),
		simulate.GetCommand(&rc.config),
		config.GetCommand(&rc.cfgFile, &rc.config),
	)

	logger.Trace().Msg("Subcommands registered")
}

// setup configures logging and loads the settings: defaults, then the config file,
// then environment variables, then the flags of the command being run.
func (rc *RootCommand) setup(cmd *cobra.Command) error {
	switch {
	case rc.verbose:
		check.PanicIfErr(logging.TrySetupGlobalLevel("debug"))
	case rc.baseCmd.PersistentFlags().Changed(logLevelFlag):
		if err := logging.TrySetupGlobalLevel(rc.logLevel); err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
	default:
		logging.SetLogSeverityFromEnv()
	}

	v, err := common.NewViper()
	check.FatalIf(err, logger, "failed to prepare the default config")
	if cmd.Name() != "init" {
		if err := common.ReadConfigFile(v, rc.cfgFile, rc.cfgFile != ""); err != nil {
			return err
		}
	}
	if err := common.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}

	cfg, err := common.Unmarshal(v)
	if err != nil {
		return err
	}
	rc.config = *cfg

	logger.Trace().Msg("Configuration loaded successfully")
	return nil
}

// Execute runs the root command and returns the process exit code
func (rc *RootCommand) Execute(ctx context.Context) int {
	if err := rc.baseCmd.ExecuteContext(ctx); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		return 1
	}

	logger.Trace().Msg("Command executed successfully")
	return 0
}
