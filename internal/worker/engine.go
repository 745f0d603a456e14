package worker

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/arda-labs/notify-core/internal/domain"
)

// Engine drives one Job to completion, retrying the whole
// Start->(Update)*->End attempt up to Retries times. Retries == -1 means
// infinite. Each Engine instance is meant to be run on its own goroutine;
// it does not share state with any other Engine.
type Engine struct {
	job     Job
	retries int
	log     zerolog.Logger
}

// New builds an Engine for job with the given retry budget.
func New(job Job, retries int, log zerolog.Logger) *Engine {
	return &Engine{
		job:     job,
		retries: retries,
		log:     log.With().Str("worker", job.Name()).Logger(),
	}
}

// Run blocks, executing attempts until the retry budget is exhausted or ctx
// is canceled.
func (e *Engine) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		e.runAttempt(ctx)

		if e.retries == 0 {
			e.log.Warn().Msg("retry budget exhausted, stopping worker")
			return
		}
		if e.retries > 0 {
			e.retries--
			e.log.Warn().Int("retries_remaining", e.retries).Msg("attempt failed, retrying")
		}
	}
}

// runAttempt executes one full Start->(Update)*->End cycle. It returns once
// the job's End phase completes or the attempt is terminated by an
// unhandled error.
func (e *Engine) runAttempt(ctx context.Context) {
	if !e.runStart(ctx) {
		return
	}

	for e.job.ShouldContinue() {
		if ctx.Err() != nil {
			break
		}
		if err := e.job.Update(ctx); err != nil {
			if handleErr := e.job.OnError(ctx, domain.PhaseUpdate, err); handleErr != nil {
				e.log.Error().Err(err).Str("phase", string(domain.PhaseUpdate)).Msg("update phase error, attempt terminated")
				return
			}
			// Handler succeeded: the problem is considered recovered, loop continues.
		}
	}

	if err := e.job.End(ctx); err != nil {
		if handleErr := e.job.OnError(ctx, domain.PhaseEnd, err); handleErr != nil {
			e.log.Error().Err(err).Str("phase", string(domain.PhaseEnd)).Msg("end phase error")
		}
	}
}

// runStart executes the Start phase, including the single recursive
// re-entry on a handled Start error (spec §9.1: the engine never falls
// through into Update after a handled Start error in the same attempt).
// It returns true if the attempt should proceed into the Update loop.
func (e *Engine) runStart(ctx context.Context) bool {
	if err := e.job.Start(ctx); err == nil {
		return true
	} else {
		return e.handleStartError(ctx, err, true)
	}
}

func (e *Engine) handleStartError(ctx context.Context, err error, allowReentry bool) bool {
	handleErr := e.job.OnError(ctx, domain.PhaseStart, err)
	if handleErr != nil {
		e.log.Error().Err(err).Str("phase", string(domain.PhaseStart)).Msg("start phase error, attempt terminated")
		return false
	}

	// Handler succeeded. The Rust original re-enters Start exactly once in
	// this situation and, regardless of the second call's outcome, does
	// not fall through into Update within the same attempt.
	if allowReentry {
		if reErr := e.job.Start(ctx); reErr != nil {
			e.handleStartError(ctx, reErr, false)
		}
	}
	return false
}
