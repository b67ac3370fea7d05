package scenario

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NilFoundation/seatoken/common/concurrent"
	"github.com/NilFoundation/seatoken/common/logging"
	"github.com/NilFoundation/seatoken/internal/chain"
	"github.com/NilFoundation/seatoken/internal/seatoken"
	"github.com/rs/zerolog"
)

// MinAccounts is the number of funded accounts the scenarios act with.
const MinAccounts = 5

var ErrTooFewAccounts = errors.New("too few accounts")

// Scenario is a scripted walkthrough of the contracts on its own chain.
type Scenario struct {
	Name string
	run  func(r *recorder)
}

// All lists the scenarios in report order.
var All = []Scenario{TokenScenario, SaleScenario}

// Run executes the scenario on a fresh chain. The error is only set if the chain could not be started
// or has fewer than MinAccounts accounts; misbehaviour of the contracts is reported in the steps.
func (s Scenario) Run(ctx context.Context, artifacts *seatoken.Artifacts, cfg *Config, logger zerolog.Logger) (*Report, error) {
	sim, err := chain.New(cfg.Chain, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name, err)
	}
	defer sim.Close()

	if n := len(sim.Accounts()); n < MinAccounts {
		return nil, fmt.Errorf("%s: %w: the chain has %d, %d are needed", s.Name, ErrTooFewAccounts, n, MinAccounts)
	}

	runId := NewRunId()
	r := &recorder{
		ctx:       ctx,
		chain:     sim,
		artifacts: artifacts,
		cfg:       cfg,
		report:    &Report{RunId: runId, Name: s.Name},
		logger: logger.With().
			Str(logging.FieldScenario, s.Name).
			Stringer(logging.FieldRunId, runId).
			Logger(),
	}

	start := time.Now()
	s.run(r)
	r.report.Duration = time.Since(start)
	return r.report, nil
}

// RunAll runs the scenarios concurrently, each on an independent chain, and returns the reports in the given order.
func RunAll(
	ctx context.Context, artifacts *seatoken.Artifacts, cfg *Config, logger zerolog.Logger, scenarios ...Scenario,
) ([]*Report, error) {
	if len(scenarios) == 0 {
		scenarios = All
	}

	reports := make([]*Report, len(scenarios))
	fs := make([]concurrent.Func, len(scenarios))
	for i, s := range scenarios {
		fs[i] = func(ctx context.Context) error {
			report, err := s.Run(ctx, artifacts, cfg, logger)
			reports[i] = report
			return err
		}
	}
	if err := concurrent.Run(ctx, fs...); err != nil {
		return nil, err
	}
	return reports, nil
}
