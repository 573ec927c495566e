package provisioning

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/imamik/jiraseed/internal/config"
	"github.com/imamik/jiraseed/internal/platform/jira"
)

// Warning is a dataset setting that is valid but produces less data than
// its author probably expects.
type Warning struct {
	Field   string // Dataset field the warning is about
	Message string
}

// PreflightPhase checks the credentials against the server and reports
// dataset settings that will produce less data than expected.
type PreflightPhase struct{}

// NewPreflightPhase creates a new preflight phase.
func NewPreflightPhase() *PreflightPhase {
	return &PreflightPhase{}
}

// Name implements the Phase interface.
func (pp *PreflightPhase) Name() string {
	return "preflight"
}

// Provision implements the Phase interface.
func (pp *PreflightPhase) Provision(ctx *Context) error {
	for _, w := range DatasetWarnings(ctx.Dataset) {
		ctx.Observer.Printf("[Preflight] WARNING: %s: %s", w.Field, w.Message)
	}

	name, err := CurrentUser(ctx)
	if err != nil {
		return err
	}
	ctx.Observer.Printf("[Preflight] Authenticated as %s", name)
	return nil
}

// CurrentUser returns the name of the authenticated user. Rejected
// credentials surface as a *jira.RemoteError so jira.IsUnauthorized matches.
func CurrentUser(ctx *Context) (string, error) {
	r := jira.R("myself")
	resp, err := ctx.Gateway.Read(ctx, r)
	if err != nil {
		return "", fmt.Errorf("failed to reach Jira: %w", err)
	}

	switch {
	case resp.Found():
		return resp.Document.String("name"), nil
	case resp.Status == http.StatusUnauthorized, resp.Status == http.StatusForbidden:
		return "", &jira.RemoteError{Method: http.MethodGet, Resource: r.String(), Status: resp.Status, Body: resp.Body}
	default:
		return "", &LookupAmbiguousError{Kind: "session", Identity: "myself", Status: resp.Status, Body: resp.Body}
	}
}

// DatasetWarnings reports settings of ds that the server cannot reject but
// which silently reduce the generated data.
func DatasetWarnings(ds *config.Dataset) []Warning {
	var warnings []Warning

	if ds.IssueCount == 0 {
		warnings = append(warnings, Warning{
			Field:   "issueCount",
			Message: "issue count is 0, only users, projects and their children will be created",
		})
	}

	for i, p := range ds.Projects {
		if ds.IsAnchor(p.Key) || ds.Anchor == "" || ds.IssueCount == 0 {
			continue
		}
		if p.LinkStart >= ds.IssueCount {
			warnings = append(warnings, Warning{
				Field:   fmt.Sprintf("projects[%d].linkStart", i),
				Message: fmt.Sprintf("project %s starts linking at issue %d of %d, no links will be created", p.Key, p.LinkStart+1, ds.IssueCount),
			})
		}
	}

	lead := ds.ProjectLead
	if lead != "" && lead != ds.Reporter && !slices.Contains(ds.Usernames(), lead) {
		warnings = append(warnings, Warning{
			Field:   "projectLead",
			Message: fmt.Sprintf("project lead %s is neither the reporter nor a dataset user and must already exist", lead),
		})
	}

	return warnings
}
