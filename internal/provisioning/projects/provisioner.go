package projects

import (
	"fmt"

	"github.com/imamik/jiraseed/internal/config"
	"github.com/imamik/jiraseed/internal/platform/jira"
	"github.com/imamik/jiraseed/internal/provisioning"
)

// Project creation constants.
const (
	ProjectTypeKey     = "software"
	ProjectTemplateKey = "com.pyxis.greenhopper.jira:gh-kanban-template"
	AssigneeType       = "PROJECT_LEAD"
)

// Phases returns the ordered phases that provision def.
func Phases(def config.Project) []provisioning.Phase {
	return []provisioning.Phase{
		NewProvisioner(def),
		NewResolver(def),
		NewChildren(def),
	}
}

// Provisioner reconciles one project.
type Provisioner struct {
	def config.Project
}

// NewProvisioner creates a provisioner for def.
func NewProvisioner(def config.Project) *Provisioner {
	return &Provisioner{def: def}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return "project/" + p.def.Key
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	res, err := (&provisioning.EnsureOperation{
		Phase:    p.Name(),
		Kind:     "project",
		Identity: p.def.Key,
		Lookup:   jira.R("project", p.def.Key),
		Create:   jira.R("project"),
		Payload:  ProjectPayload(p.def, ctx.Dataset.ProjectLead),
		Policy:   ctx.Policy,
	}).Execute(ctx)
	if err != nil {
		return err
	}

	ctx.State.Project(p.def).Outcome = res.Outcome
	return nil
}

// ProjectPayload builds the create payload for def.
func ProjectPayload(def config.Project, lead string) jira.Document {
	return jira.Document{
		"key":                def.Key,
		"name":               def.Name,
		"projectTypeKey":     ProjectTypeKey,
		"projectTemplateKey": ProjectTemplateKey,
		"lead":               lead,
		"assigneeType":       AssigneeType,
	}
}

// reconciled returns the project state and fails when the project phase has
// not run yet.
func reconciled(ctx *provisioning.Context, key string) (*provisioning.ProjectState, error) {
	ps, ok := ctx.State.Projects[key]
	if !ok || ps.Outcome == "" {
		return nil, fmt.Errorf("project %s has not been reconciled", key)
	}
	return ps, nil
}
