package check

import (
	"fmt"

	"github.com/rs/zerolog"
)

// PanicIfErr panics if the error is not nil.
func PanicIfErr(err error) {
	if err != nil {
		panic(err)
	}
}

// FatalIf logs the error with the provided logger and message and panics.
// It is no-op if the error is nil.
func FatalIf(err error, logger zerolog.Logger, format string, args ...any) {
	if err == nil {
		return
	}

	l := logger.With().CallerWithSkipFrameCount(3).Logger()
	l.Err(err).Msgf(format, args...)
	panic(fmt.Errorf(format+": %w", append(args, err)...))
}
