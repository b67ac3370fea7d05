package scenario

import (
	"time"

	"github.com/google/uuid"
)

// RunId identifies a single scenario run in logs.
type RunId uuid.UUID

func NewRunId() RunId           { return RunId(uuid.New()) }
func (id RunId) String() string { return uuid.UUID(id).String() }

func (id RunId) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *RunId) UnmarshalText(data []byte) error {
	v, err := uuid.Parse(string(data))
	if err != nil {
		return err
	}
	*id = RunId(v)
	return nil
}

// Step is a single checked action of a scenario. Err is set when the chain did not behave as the model predicted.
type Step struct {
	Description string
	// Rejected reports that the step was expected to be rejected, and was.
	Rejected bool
	GasUsed  uint64
	Err      error
}

type Report struct {
	RunId    RunId
	Name     string
	Steps    []Step
	Duration time.Duration
}

func (r *Report) Failed() bool {
	for _, s := range r.Steps {
		if s.Err != nil {
			return true
		}
	}
	return false
}

func (r *Report) GasUsed() uint64 {
	var res uint64
	for _, s := range r.Steps {
		res += s.GasUsed
	}
	return res
}
