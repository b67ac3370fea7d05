package simulate

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/NilFoundation/seatoken/cmd/seatoken/internal/common"
	"github.com/NilFoundation/seatoken/common/logging"
	"github.com/NilFoundation/seatoken/internal/compiler"
	"github.com/NilFoundation/seatoken/internal/scenario"
	"github.com/NilFoundation/seatoken/internal/seatoken"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var logger = logging.NewLogger("simulateCommand")

var ErrScenarioFailed = errors.New("scenario failed")

const (
	buildDirFlag   = "build-dir"
	compileFlag    = "compile"
	tokenPriceFlag = "token-price"
	supplyFlag     = "supply"
	purchaseFlag   = "purchase"
	accountsFlag   = "accounts"
	seedFlag       = "seed"
	noColorFlag    = "no-color"
)

type params struct {
	compile bool
	noColor bool
}

func GetCommand(cfg *common.Config) *cobra.Command {
	var p params
	defaults := common.NewDefaultConfig()

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the token and sale scenarios on a simulated chain",
		Long: "Deploy the contracts on in-memory chains, run the token and sale walkthroughs " +
			"and check every step against the reference model.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, cfg, &p)
		},
		SilenceUsage: true,
	}

	cmd.Flags().String(buildDirFlag, defaults.Compile.BuildDir, "Directory to read the artifacts from")
	cmd.Flags().BoolVar(&p.compile, compileFlag, false, "Compile the sources instead of reading the build directory")
	cmd.Flags().Var(defaults.Sale.TokenPrice, tokenPriceFlag, "Price of one token, e.g. 0.001ether or 1e15")
	cmd.Flags().Uint64(supplyFlag, defaults.Token.InitialSupply.Uint64(), "Initial token supply")
	cmd.Flags().Uint64(purchaseFlag, defaults.Sale.Purchase.Uint64(), "Number of tokens to buy in the sale scenario")
	cmd.Flags().Int(accountsFlag, defaults.Chain.Accounts, fmt.Sprintf("Number of funded accounts (at least %d)", scenario.MinAccounts))
	cmd.Flags().String(seedFlag, defaults.Chain.Seed, "Seed of the account keys")
	cmd.Flags().BoolVar(&p.noColor, noColorFlag, false, "Disable colored output")

	common.BindFlag(cmd, buildDirFlag, "compile.build_dir")
	common.BindFlag(cmd, tokenPriceFlag, "sale.token_price")
	common.BindFlag(cmd, supplyFlag, "token.initial_supply")
	common.BindFlag(cmd, purchaseFlag, "sale.purchase")
	common.BindFlag(cmd, accountsFlag, "chain.accounts")
	common.BindFlag(cmd, seedFlag, "chain.seed")

	return cmd
}

func loadArtifacts(ctx context.Context, cfg *common.CompileConfig, compile bool) (*seatoken.Artifacts, error) {
	if !compile {
		return seatoken.LoadArtifacts(cfg.BuildDir)
	}

	sources, err := compiler.ReadSources(cfg.ContractsDir, cfg.Sources)
	if err != nil {
		return nil, err
	}
	solc, err := compiler.NewResolver(cfg.SolcPath, cfg.SolcVersion, cfg.Offline, logger).ResolveFor(ctx, sources)
	if err != nil {
		return nil, err
	}
	c, err := compiler.New(solc, logger)
	if err != nil {
		return nil, err
	}
	output, err := c.Compile(ctx, sources)
	if err != nil {
		return nil, err
	}
	artifacts, err := output.Artifacts(cfg.Sources...)
	if err != nil {
		return nil, err
	}
	return seatoken.NewArtifacts(artifacts)
}

func runSimulate(cmd *cobra.Command, cfg *common.Config, p *params) error {
	ctx := cmd.Context()

	artifacts, err := loadArtifacts(ctx, &cfg.Compile, p.compile)
	if err != nil {
		if errors.Is(err, compiler.ErrArtifactNotFound) {
			logger.Error().Str(logging.FieldBuildDir, cfg.Compile.BuildDir).Msg("Run `seatoken compile` first or pass --compile")
		}
		return err
	}

	sc := cfg.ScenarioConfig()
	cost, err := scenario.Cost(sc)
	if err != nil {
		return err
	}

	reports, err := scenario.RunAll(ctx, artifacts, sc, logger)
	if err != nil {
		return err
	}

	noColor := p.noColor || os.Getenv("NO_COLOR") != "" || !isTerminal(cmd)
	printer := NewPrinter(cmd.OutOrStdout(), noColor)
	printer.Header(sc.TokenPrice, sc.Purchase, cost)
	for _, r := range reports {
		printer.Report(r)
	}
	if failed := printer.Summary(reports); failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrScenarioFailed, failed, len(reports))
	}
	return nil
}

func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
