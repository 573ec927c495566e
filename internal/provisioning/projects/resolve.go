package projects

import (
	"fmt"
	"net/http"

	"github.com/imamik/jiraseed/internal/config"
	"github.com/imamik/jiraseed/internal/platform/jira"
	"github.com/imamik/jiraseed/internal/provisioning"
)

// Resolver looks up the numeric id of a provisioned project. Issue payloads
// must reference the project by id.
type Resolver struct {
	def config.Project
}

// NewResolver creates a resolver for def.
func NewResolver(def config.Project) *Resolver {
	return &Resolver{def: def}
}

// Name implements the provisioning.Phase interface.
func (r *Resolver) Name() string {
	return "project/" + r.def.Key + "/resolve"
}

// Requires implements the provisioning.Precondition interface.
func (r *Resolver) Requires(ctx *provisioning.Context) error {
	_, err := reconciled(ctx, r.def.Key)
	return err
}

// Provision implements the provisioning.Phase interface.
func (r *Resolver) Provision(ctx *provisioning.Context) error {
	ps := ctx.State.Projects[r.def.Key]
	if !ps.Provisioned() {
		provisioning.LogPhaseSkipped(ctx.Observer, r.Name(), "project already present")
		return nil
	}

	id, err := ResolveID(ctx, r.def.Key)
	if err != nil {
		return err
	}
	ps.Resolve(id)
	ctx.Observer.Printf("[%s] project %s has id %d", r.Name(), r.def.Key, id)
	return nil
}

// ResolveID reads project key and returns its numeric id.
func ResolveID(ctx *provisioning.Context, key string) (int64, error) {
	res := jira.R("project", key)
	resp, err := ctx.Gateway.Read(ctx, res)
	if err != nil {
		return 0, fmt.Errorf("failed to look up project %s: %w", key, err)
	}
	if !resp.Found() {
		return 0, fmt.Errorf("failed to look up project %s: %w",
			key, &jira.RemoteError{Method: http.MethodGet, Resource: res.String(), Status: resp.Status, Body: resp.Body})
	}

	id, err := resp.Document.Int64("id")
	if err != nil {
		return 0, fmt.Errorf("project %s: %w", key, err)
	}
	return id, nil
}
