package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/arda-labs/notify-core/internal/domain"
)

// fakeJob records the sequence of calls it received for assertions.
type fakeJob struct {
	calls []string

	startErrOnce   error // returned by Start on its first call only
	startOnErrFn   func(phase domain.WorkerPhase, err error) error
	updateErrOnce  error
	continueCount  int
	maxContinue    int
}

func (j *fakeJob) Name() string { return "fake" }

func (j *fakeJob) Start(ctx context.Context) error {
	j.calls = append(j.calls, "start")
	if j.startErrOnce != nil {
		err := j.startErrOnce
		j.startErrOnce = nil
		return err
	}
	return nil
}

func (j *fakeJob) Update(ctx context.Context) error {
	j.calls = append(j.calls, "update")
	j.continueCount++
	if j.updateErrOnce != nil {
		err := j.updateErrOnce
		j.updateErrOnce = nil
		return err
	}
	return nil
}

func (j *fakeJob) End(ctx context.Context) error {
	j.calls = append(j.calls, "end")
	return nil
}

func (j *fakeJob) OnError(ctx context.Context, phase domain.WorkerPhase, err error) error {
	j.calls = append(j.calls, "onerror:"+string(phase))
	if j.startOnErrFn != nil {
		return j.startOnErrFn(phase, err)
	}
	return nil
}

func (j *fakeJob) ShouldContinue() bool {
	return j.continueCount < j.maxContinue
}

func discardLogger() zerolog.Logger {
	return zerolog.Nop()
}

func TestEngineHappyPath(t *testing.T) {
	job := &fakeJob{maxContinue: 2}
	e := New(job, 0, discardLogger())
	e.runAttempt(context.Background())

	want := []string{"start", "update", "update", "end"}
	if !equal(job.calls, want) {
		t.Fatalf("calls = %v, want %v", job.calls, want)
	}
}

func TestEngineStartErrorHandledDoesNotEnterUpdate(t *testing.T) {
	job := &fakeJob{
		maxContinue:  2,
		startErrOnce: errors.New("boom"),
		startOnErrFn: func(phase domain.WorkerPhase, err error) error {
			return nil // handled
		},
	}
	e := New(job, 0, discardLogger())
	e.runAttempt(context.Background())

	// start fails, onerror handles it, re-enters start once (succeeds this
	// time since startErrOnce was cleared), but must NOT proceed into update.
	want := []string{"start", "onerror:start", "start"}
	if !equal(job.calls, want) {
		t.Fatalf("calls = %v, want %v", job.calls, want)
	}
}

func TestEngineStartErrorUnhandledTerminatesAttempt(t *testing.T) {
	job := &fakeJob{
		maxContinue:  2,
		startErrOnce: errors.New("boom"),
		startOnErrFn: func(phase domain.WorkerPhase, err error) error {
			return errors.New("handler also failed")
		},
	}
	e := New(job, 0, discardLogger())
	e.runAttempt(context.Background())

	want := []string{"start", "onerror:start"}
	if !equal(job.calls, want) {
		t.Fatalf("calls = %v, want %v", job.calls, want)
	}
}

func TestEngineUpdateErrorHandledContinuesLoop(t *testing.T) {
	job := &fakeJob{
		maxContinue:   3,
		updateErrOnce: errors.New("transient"),
	}
	e := New(job, 0, discardLogger())
	e.runAttempt(context.Background())

	want := []string{"start", "update", "onerror:update", "update", "update", "end"}
	if !equal(job.calls, want) {
		t.Fatalf("calls = %v, want %v", job.calls, want)
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
