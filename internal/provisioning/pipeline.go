package provisioning

import (
	"fmt"
	"time"
)

// Pipeline runs phases sequentially against a shared Context.
type Pipeline struct {
	Phases []Phase
}

// NewPipeline creates a pipeline over phases.
func NewPipeline(phases ...Phase) *Pipeline {
	return &Pipeline{Phases: phases}
}

// Run executes every phase in order. The first failing precondition or phase
// aborts the run; earlier effects are not rolled back.
func (p *Pipeline) Run(ctx *Context) error {
	return RunPhases(ctx, p.Phases)
}

// RunPhases executes all provisioning phases sequentially.
func RunPhases(ctx *Context, phases []Phase) error {
	start := time.Now()
	ctx.Observer.Printf("Starting provisioning with %d phases...", len(phases))

	for i, phase := range phases {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s phase not started: %w", phase.Name(), err)
		}

		if pre, ok := phase.(Precondition); ok {
			if err := pre.Requires(ctx); err != nil {
				LogPhaseFailed(ctx.Observer, phase.Name(), err)
				return fmt.Errorf("%s phase precondition: %w", phase.Name(), err)
			}
		}

		phaseStart := time.Now()
		LogPhaseStart(ctx.Observer, phase.Name())
		ctx.Observer.Progress(phase.Name(), i+1, len(phases))

		if err := phase.Provision(ctx); err != nil {
			LogPhaseFailed(ctx.Observer, phase.Name(), err)
			return fmt.Errorf("%s phase failed: %w", phase.Name(), err)
		}

		elapsed := time.Since(phaseStart)
		ctx.Metrics.ObservePhase(phase.Name(), elapsed)
		LogPhaseComplete(ctx.Observer, phase.Name(), elapsed)
	}

	ctx.Observer.Printf("Provisioning completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}
