package issues

import (
	"fmt"

	"github.com/imamik/jiraseed/internal/config"
	"github.com/imamik/jiraseed/internal/generator"
	"github.com/imamik/jiraseed/internal/platform/jira"
	"github.com/imamik/jiraseed/internal/provisioning"
)

// Generator creates the issues of one project.
type Generator struct {
	def config.Project
}

// NewGenerator creates the issue generation phase for def.
func NewGenerator(def config.Project) *Generator {
	return &Generator{def: def}
}

// Name implements the provisioning.Phase interface.
func (g *Generator) Name() string {
	return "project/" + g.def.Key + "/issues"
}

// Requires implements the provisioning.Precondition interface. A provisioned
// project must have its id resolved and its pools bound.
func (g *Generator) Requires(ctx *provisioning.Context) error {
	ps, ok := ctx.State.Projects[g.def.Key]
	if !ok || ps.Outcome == "" {
		return fmt.Errorf("project %s has not been reconciled", g.def.Key)
	}
	if !ps.Provisioned() {
		return nil
	}
	if !ps.Resolved {
		return fmt.Errorf("project %s id has not been resolved", g.def.Key)
	}
	if !ps.PoolsBound() {
		return fmt.Errorf("project %s component and label pools have not been bound", g.def.Key)
	}
	return nil
}

// Provision implements the provisioning.Phase interface.
func (g *Generator) Provision(ctx *provisioning.Context) error {
	ps := ctx.State.Projects[g.def.Key]
	if !ps.Provisioned() {
		ctx.State.PublishIssueKeys(g.def.Key, nil)
		provisioning.LogPhaseSkipped(ctx.Observer, g.Name(), "project already present")
		return nil
	}

	pools := ctx.Dataset.Pools(g.def)
	pools.Components = ps.Components()
	pools.Labels = ps.Labels()

	count := ctx.Dataset.IssueCount
	keys := make([]string, 0, count)
	for i := 0; i < count; i++ {
		draft := generator.Draft(pools, i)
		identity := fmt.Sprintf("%s #%d", g.def.Key, i+1)

		doc, err := provisioning.Create(ctx, g.Name(), "issue", identity, jira.R("issue"), IssuePayload(ps.RemoteID, draft))
		if err != nil {
			return err
		}
		key := doc.String("key")
		if key == "" {
			return fmt.Errorf("create issue %s: response has no key", identity)
		}
		keys = append(keys, key)
		ctx.Observer.Progress(g.Name(), i+1, count)
	}

	ps.IssueKeys = keys
	ctx.State.PublishIssueKeys(g.def.Key, keys)
	return nil
}

// IssuePayload builds the create payload for draft. The project is referenced
// by numeric id; empty component and label sets are omitted.
func IssuePayload(projectID int64, draft generator.IssueDraft) jira.Document {
	fields := jira.Document{
		"project":   jira.Document{"id": projectID},
		"summary":   draft.Summary,
		"issuetype": jira.Document{"name": draft.IssueType},
		"assignee":  jira.Document{"name": draft.Assignee},
		"reporter":  jira.Document{"name": draft.Reporter},
		"priority":  jira.Document{"name": draft.Priority},
	}

	if len(draft.Components) > 0 {
		components := make([]jira.Document, 0, len(draft.Components))
		for _, c := range draft.Components {
			components = append(components, jira.Document{"name": c})
		}
		fields["components"] = components
	}
	if len(draft.Labels) > 0 {
		fields["labels"] = append([]string(nil), draft.Labels...)
	}

	return jira.Document{"fields": fields}
}
