package projects

import (
	"github.com/imamik/jiraseed/internal/config"
	"github.com/imamik/jiraseed/internal/platform/jira"
	"github.com/imamik/jiraseed/internal/provisioning"
)

// Children creates the components and versions of a freshly provisioned
// project and binds its component and label pools.
type Children struct {
	def config.Project
}

// NewChildren creates the children phase for def.
func NewChildren(def config.Project) *Children {
	return &Children{def: def}
}

// Name implements the provisioning.Phase interface.
func (c *Children) Name() string {
	return "project/" + c.def.Key + "/children"
}

// Requires implements the provisioning.Precondition interface.
func (c *Children) Requires(ctx *provisioning.Context) error {
	_, err := reconciled(ctx, c.def.Key)
	return err
}

// Provision implements the provisioning.Phase interface.
func (c *Children) Provision(ctx *provisioning.Context) error {
	ps := ctx.State.Projects[c.def.Key]
	if !ps.Provisioned() {
		provisioning.LogPhaseSkipped(ctx.Observer, c.Name(), "project already present")
		return nil
	}
	if !c.def.HasChildren() {
		provisioning.LogPhaseSkipped(ctx.Observer, c.Name(), "no components, versions or labels")
		return ps.BindPools(nil, nil)
	}

	for _, name := range c.def.Components {
		payload := ComponentPayload(c.def.Key, name, ctx.Dataset.ProjectLead)
		if _, err := provisioning.Create(ctx, c.Name(), "component", c.def.Key+"/"+name, jira.R("component"), payload); err != nil {
			return err
		}
	}

	for _, name := range c.def.Versions {
		payload := VersionPayload(c.def.Key, name)
		if _, err := provisioning.Create(ctx, c.Name(), "version", c.def.Key+"/"+name, jira.R("version"), payload); err != nil {
			return err
		}
	}

	// Labels have no REST resource of their own; they come into existence
	// with the first issue that carries them.
	if err := ps.BindPools(c.def.Components, c.def.Labels); err != nil {
		return err
	}
	if len(c.def.Labels) > 0 {
		ctx.Observer.Printf("[%s] bound %d labels", c.Name(), len(c.def.Labels))
	}
	return nil
}

// ComponentPayload builds the create payload for a component of project key.
func ComponentPayload(key, name, lead string) jira.Document {
	return jira.Document{
		"name":                name,
		"description":         name,
		"leadUserName":        lead,
		"assigneeType":        AssigneeType,
		"isAssigneeTypeValid": false,
		"project":             key,
	}
}

// VersionPayload builds the create payload for a fix version of project key.
func VersionPayload(key, name string) jira.Document {
	return jira.Document{
		"name":    name,
		"project": key,
	}
}
