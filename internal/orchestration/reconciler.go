package orchestration

import (
	"context"
	"fmt"
	"time"

	"github.com/imamik/jiraseed/internal/config"
	"github.com/imamik/jiraseed/internal/platform/jira"
	"github.com/imamik/jiraseed/internal/provisioning"
	"github.com/imamik/jiraseed/internal/provisioning/issues"
	"github.com/imamik/jiraseed/internal/provisioning/projects"
	"github.com/imamik/jiraseed/internal/provisioning/users"
)

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithPolicy sets the policy applied to existing projects.
func WithPolicy(p provisioning.Policy) Option {
	return func(r *Reconciler) {
		r.policy = p
	}
}

// WithObserver sets the observer that receives provisioning events.
func WithObserver(o provisioning.Observer) Option {
	return func(r *Reconciler) {
		r.observer = o
	}
}

// WithMetrics enables run metrics. Gateway calls are counted as well.
func WithMetrics(m *provisioning.Metrics) Option {
	return func(r *Reconciler) {
		r.metrics = m
	}
}

// Reconciler orchestrates the seeding workflow.
type Reconciler struct {
	gateway  jira.Gateway
	dataset  *config.Dataset
	policy   provisioning.Policy
	observer provisioning.Observer
	metrics  *provisioning.Metrics
}

// Result describes a finished or aborted run.
type Result struct {
	State    *provisioning.State
	Phases   int
	Duration time.Duration
}

// NewReconciler creates a new orchestration reconciler.
func NewReconciler(gateway jira.Gateway, dataset *config.Dataset, opts ...Option) *Reconciler {
	r := &Reconciler{
		gateway:  gateway,
		dataset:  dataset,
		policy:   provisioning.PolicySkip,
		observer: provisioning.NewDiscardObserver(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Phases returns the ordered phase list for the dataset.
func (r *Reconciler) Phases() []provisioning.Phase {
	return BuildPhases(r.dataset)
}

// BuildPhases returns the preflight check and users first, then for every
// project in dataset order its project phases, its issue phase and, unless it
// is the anchor, its link phase.
func BuildPhases(ds *config.Dataset) []provisioning.Phase {
	phases := []provisioning.Phase{provisioning.NewPreflightPhase(), users.NewProvisioner()}
	for _, def := range ds.Projects {
		phases = append(phases, projects.Phases(def)...)
		phases = append(phases, issues.NewGenerator(def))
		if ds.Anchor != "" && !ds.IsAnchor(def.Key) {
			phases = append(phases, issues.NewLinker(def))
		}
	}
	return phases
}

// Reconcile fills the dataset's empty optional fields, validates it and runs
// every phase. The returned Result is non-nil whenever the pipeline started,
// so partial progress can be reported after a failure.
func (r *Reconciler) Reconcile(ctx context.Context) (*Result, error) {
	r.dataset.ApplyDefaults()
	if err := r.dataset.Validate(); err != nil {
		return nil, err
	}

	// 1. Setup Provisioning Context
	pCtx := provisioning.NewContext(ctx, r.dataset, provisioning.InstrumentGateway(r.gateway, r.metrics))
	pCtx.Policy = r.policy
	pCtx.Observer = r.observer
	pCtx.Metrics = r.metrics

	// 2. Sequential Execution of Provisioning Phases
	phases := r.Phases()
	start := time.Now()
	pCtx.Observer.Printf("Seeding %d users and %d projects (policy %s)",
		len(r.dataset.Users), len(r.dataset.Projects), r.policy)

	err := provisioning.NewPipeline(phases...).Run(pCtx)
	result := &Result{State: pCtx.State, Phases: len(phases), Duration: time.Since(start)}
	if err != nil {
		return result, fmt.Errorf("seeding failed: %w", err)
	}
	return result, nil
}
