package issues

import (
	"fmt"

	"github.com/imamik/jiraseed/internal/config"
	"github.com/imamik/jiraseed/internal/platform/jira"
	"github.com/imamik/jiraseed/internal/provisioning"
)

// LinkRequest is one issue link to create.
type LinkRequest struct {
	Type       string
	InwardKey  string
	OutwardKey string
}

// Payload returns the issueLink create payload.
func (l LinkRequest) Payload() jira.Document {
	return jira.Document{
		"type":         jira.Document{"name": l.Type},
		"inwardIssue":  jira.Document{"key": l.InwardKey},
		"outwardIssue": jira.Document{"key": l.OutwardKey},
	}
}

// Linker links the issues of one project to the anchor project's issues.
type Linker struct {
	def config.Project
}

// NewLinker creates the link phase for def.
func NewLinker(def config.Project) *Linker {
	return &Linker{def: def}
}

// Name implements the provisioning.Phase interface.
func (l *Linker) Name() string {
	return "project/" + l.def.Key + "/links"
}

// Requires implements the provisioning.Precondition interface. Both the
// anchor's and this project's issue keys must have been published.
func (l *Linker) Requires(ctx *provisioning.Context) error {
	anchor := ctx.Dataset.Anchor
	if anchor == "" {
		return fmt.Errorf("no anchor project configured")
	}
	if anchor == l.def.Key {
		return fmt.Errorf("project %s cannot link to itself", l.def.Key)
	}
	if _, ok := ctx.State.LookupIssueKeys(anchor); !ok {
		return fmt.Errorf("issue keys of anchor project %s have not been published", anchor)
	}
	if _, ok := ctx.State.LookupIssueKeys(l.def.Key); !ok {
		return fmt.Errorf("issue keys of project %s have not been published", l.def.Key)
	}
	return nil
}

// Provision implements the provisioning.Phase interface.
func (l *Linker) Provision(ctx *provisioning.Context) error {
	anchorKeys, _ := ctx.State.LookupIssueKeys(ctx.Dataset.Anchor)
	ownKeys, _ := ctx.State.LookupIssueKeys(l.def.Key)

	requests := Plan(anchorKeys, ownKeys, l.def.LinkStart, ctx.Dataset.LinkType)
	if len(requests) == 0 {
		provisioning.LogPhaseSkipped(ctx.Observer, l.Name(), "no issues to link")
		return nil
	}

	for i, req := range requests {
		identity := req.InwardKey + " -> " + req.OutwardKey
		if _, err := provisioning.Create(ctx, l.Name(), "issue link", identity, jira.R("issueLink"), req.Payload()); err != nil {
			return err
		}
		ctx.State.LinksCreated[l.def.Key]++
		ctx.Observer.Progress(l.Name(), i+1, len(requests))
	}
	return nil
}

// Plan pairs anchor and own keys by index, from start while both lists have
// an entry. The anchor issue is the inward side.
func Plan(anchorKeys, ownKeys []string, start int, linkType string) []LinkRequest {
	n := min(len(anchorKeys), len(ownKeys))
	if start < 0 {
		start = 0
	}

	var requests []LinkRequest
	for i := start; i < n; i++ {
		requests = append(requests, LinkRequest{
			Type:       linkType,
			InwardKey:  anchorKeys[i],
			OutwardKey: ownKeys[i],
		})
	}
	return requests
}
