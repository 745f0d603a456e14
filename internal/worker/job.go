// Package worker implements the generic state-machine runtime spec §4.2
// describes: Start -> (Update)* -> End, bounded retries, per-phase error
// routing. It generalizes the teacher's single Kafka poll-loop goroutine
// (internal/kafka/consumer.go) into a reusable driver for any Job.
package worker

import (
	"context"

	"github.com/arda-labs/notify-core/internal/domain"
)

// Job is a long-lived worker's capability set. A concrete job type (the
// single-notify worker, the batch-notify worker) implements it; the Engine
// holds a Job plus its retry budget and drives the state machine.
type Job interface {
	// Name identifies the job for logging.
	Name() string

	// Start runs once per attempt, before the Update loop.
	Start(ctx context.Context) error

	// Update runs repeatedly while ShouldContinue reports true.
	Update(ctx context.Context) error

	// End runs once when ShouldContinue reports false.
	End(ctx context.Context) error

	// OnError is called with the phase an error occurred in. Returning nil
	// means "handled" (Start: attempt still completes without re-entering
	// Update; Update: the loop continues; End: no further effect).
	// Returning a non-nil error terminates the current attempt and
	// decrements the retry counter.
	OnError(ctx context.Context, phase domain.WorkerPhase, err error) error

	// ShouldContinue reports whether the Update loop should run again.
	// Jobs driven purely by "keep consuming forever" return true
	// unconditionally; it exists as a hook for jobs with a natural end.
	ShouldContinue() bool
}
