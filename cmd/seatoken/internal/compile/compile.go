package compile

import (
	"fmt"

	"github.com/NilFoundation/seatoken/cmd/seatoken/internal/common"
	"github.com/NilFoundation/seatoken/common/logging"
	"github.com/NilFoundation/seatoken/internal/compiler"
	"github.com/spf13/cobra"
)

var logger = logging.NewLogger("compileCommand")

const (
	contractsDirFlag = "contracts-dir"
	sourceFlag       = "source"
	buildDirFlag     = "build-dir"
	solcFlag         = "solc"
	solcVersionFlag  = "solc-version"
	offlineFlag      = "offline"
	strictFlag       = "strict"
)

func GetCommand(cfg *common.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile the contracts into the build directory",
		Long: "Compile the contract sources with solc and write one <ContractName>.json per contract.\n" +
			"The build directory is removed first, so a failed compilation leaves no artifacts behind.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, &cfg.Compile)
		},
		SilenceUsage: true,
	}

	cmd.Flags().String(contractsDirFlag, "contracts", "Directory the source names and imports are resolved against")
	cmd.Flags().StringSlice(sourceFlag, nil, "Source file to compile (repeatable)")
	cmd.Flags().String(buildDirFlag, "build", "Directory to write the artifacts to")
	cmd.Flags().String(solcFlag, "", "Path to the solc binary")
	cmd.Flags().String(solcVersionFlag, compiler.DefaultSolcVersion, "solc version to use when none is found on PATH")
	cmd.Flags().Bool(offlineFlag, false, "Do not download the compiler")
	cmd.Flags().Bool(strictFlag, false, "Exit with an error if compilation fails")

	common.BindFlag(cmd, contractsDirFlag, "compile.contracts_dir")
	common.BindFlag(cmd, sourceFlag, "compile.sources")
	common.BindFlag(cmd, buildDirFlag, "compile.build_dir")
	common.BindFlag(cmd, solcFlag, "compile.solc_path")
	common.BindFlag(cmd, solcVersionFlag, "compile.solc_version")
	common.BindFlag(cmd, offlineFlag, "compile.offline")
	common.BindFlag(cmd, strictFlag, "compile.strict")

	return cmd
}

// Run builds the configured sources. Failures are logged; they are returned only in strict mode.
func Run(cmd *cobra.Command, cfg *common.CompileConfig) ([]string, error) {
	resolver := compiler.NewResolver(cfg.SolcPath, cfg.SolcVersion, cfg.Offline, logger)
	written, err := compiler.Build(cmd.Context(), compiler.BuildConfig{
		ContractsDir: cfg.ContractsDir,
		Sources:      cfg.Sources,
		BuildDir:     cfg.BuildDir,
	}, resolver.RunnerFor, logger)
	if err != nil {
		logger.Error().Err(err).Str(logging.FieldBuildDir, cfg.BuildDir).Msg("Compilation failed")
		if cfg.Strict {
			return nil, err
		}
		return nil, nil
	}

	logger.Info().
		Str(logging.FieldBuildDir, cfg.BuildDir).
		Msgf("%d artifact(s) written", len(written))
	return written, nil
}

func runCompile(cmd *cobra.Command, cfg *common.CompileConfig) error {
	written, err := Run(cmd, cfg)
	if err != nil {
		return err
	}
	for _, f := range written {
		fmt.Fprintln(cmd.OutOrStdout(), f)
	}
	return nil
}
