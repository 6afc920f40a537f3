package probe

import (
	"context"
	"time"

	"github.com/hamed0406/iptest/internal/domain"
	"github.com/hamed0406/iptest/internal/target"
)

// Engine runs a bounded, sequential series of probe attempts against one
// target. Attempts are deliberately sequential so the series reflects
// successive real-world probes; concurrency lives one level up, across
// requests.
type Engine struct {
	Checker  Checker
	Resolver Resolver
}

func NewEngine(c Checker, r Resolver) *Engine {
	return &Engine{Checker: c, Resolver: r}
}

// Run resolves the target once, then performs up to attempts probes with
// perAttempt as each probe's timeout. Resolution failure short-circuits: the
// target cannot change between attempts, so every attempt is recorded as an
// error without probing. A failed attempt never aborts the remaining ones;
// context cancellation does, returning the partial sequence.
func (e *Engine) Run(ctx context.Context, tg target.Target, attempts int, perAttempt time.Duration) []domain.Attempt {
	if attempts < 1 {
		attempts = 1
	}
	out := make([]domain.Attempt, 0, attempts)

	addr, err := e.Resolver.Resolve(ctx, tg)
	if err != nil {
		now := time.Now().UTC()
		for i := 0; i < attempts; i++ {
			out = append(out, domain.Attempt{
				Outcome: domain.OutcomeError,
				Message: err.Error(),
				At:      now,
			})
		}
		return out
	}

	for i := 0; i < attempts; i++ {
		if ctx.Err() != nil {
			break
		}
		out = append(out, e.Checker.Check(ctx, addr, perAttempt))
	}
	return out
}

// Budget is the worst-case wall time for one Run call; the endpoint uses it
// as the per-request deadline and clients must wait strictly longer.
func Budget(attempts int, perAttempt, resolveTimeout time.Duration) time.Duration {
	if attempts < 1 {
		attempts = 1
	}
	return time.Duration(attempts)*perAttempt + resolveTimeout + time.Second
}
