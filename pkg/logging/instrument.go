package logging

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Operation is any unit of work worth timing in the logs.
type Operation func(ctx context.Context) error

// Instrument wraps an operation so that its start, duration and outcome are
// logged. The wrapped operation behaves identically otherwise; errors pass
// through unchanged.
func Instrument(logger zerolog.Logger, name string, op Operation) Operation {
	return func(ctx context.Context) error {
		logger.Debug().Str("operation", name).Msg("Operation started")

		start := time.Now()
		err := op(ctx)
		elapsed := time.Since(start)

		if err != nil {
			logger.Error().
				Str("operation", name).
				Dur("elapsed", elapsed).
				Err(err).
				Msg("Operation failed")
			return err
		}

		logger.Info().
			Str("operation", name).
			Dur("elapsed", elapsed).
			Msg("Operation completed")
		return nil
	}
}
