package provisioning

// Phase defines the interface for a provisioning phase.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Provision executes the provisioning logic for this phase.
	Provision(ctx *Context) error
}

// Precondition is implemented by phases that depend on results published by
// earlier phases. The pipeline calls Requires before Provision and aborts when
// it returns an error.
type Precondition interface {
	Requires(ctx *Context) error
}
