package provisioning

import (
	"context"

	"github.com/imamik/jiraseed/internal/config"
	"github.com/imamik/jiraseed/internal/platform/jira"
)

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Dataset  *config.Dataset
	Policy   Policy
	State    *State
	Gateway  jira.Gateway
	Observer Observer
	Metrics  *Metrics
}

// NewContext creates a new provisioning context. The observer discards output
// until one is set.
func NewContext(ctx context.Context, dataset *config.Dataset, gateway jira.Gateway) *Context {
	return &Context{
		Context:  ctx,
		Dataset:  dataset,
		Policy:   PolicySkip,
		State:    NewState(),
		Gateway:  gateway,
		Observer: NewDiscardObserver(),
	}
}
