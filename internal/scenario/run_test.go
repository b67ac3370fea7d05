package scenario

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestRunRequiresAccounts(t *testing.T) {
	t.Parallel()

	cfg := NewDefaultConfig()
	cfg.Chain.Accounts = 2
	logger := zerolog.New(io.Discard)

	for _, s := range All {
		report, err := s.Run(context.Background(), nil, cfg, logger)
		require.ErrorIs(t, err, ErrTooFewAccounts, s.Name)
		require.Nil(t, report)
	}

	reports, err := RunAll(context.Background(), nil, cfg, logger)
	require.ErrorIs(t, err, ErrTooFewAccounts)
	require.Nil(t, reports)
}
