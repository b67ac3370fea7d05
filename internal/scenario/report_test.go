package scenario

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReport(t *testing.T) {
	t.Parallel()

	report := &Report{
		Name: "token",
		Steps: []Step{
			{Description: "deploy", GasUsed: 500_000},
			{Description: "transfer", GasUsed: 50_000},
		},
	}
	require.False(t, report.Failed())
	require.Equal(t, uint64(550_000), report.GasUsed())

	report.Steps = append(report.Steps, Step{Description: "approve", Err: errors.New("reverted")})
	require.True(t, report.Failed())
}

func TestRunId(t *testing.T) {
	t.Parallel()

	id := NewRunId()
	require.NotEqual(t, id, NewRunId())

	text, err := id.MarshalText()
	require.NoError(t, err)

	var parsed RunId
	require.NoError(t, parsed.UnmarshalText(text))
	require.Equal(t, id, parsed)
	require.Error(t, parsed.UnmarshalText([]byte("not-a-uuid")))
}
