package logging

import (
	"log/slog"
	"time"
)

// Step runs fn and logs its name, duration and outcome.
// Failed steps are logged at error level; the error is returned unchanged.
func Step(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	duration := time.Since(start)

	if err != nil {
		slog.Error("step failed",
			"step", name,
			"duration", duration.String(),
			"error", err,
		)
		return err
	}

	slog.Info("step",
		"step", name,
		"duration", duration.String(),
	)
	return nil
}
