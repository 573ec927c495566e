package orchestration

import (
	"fmt"

	"github.com/imamik/jiraseed/internal/config"
	"github.com/imamik/jiraseed/internal/generator"
	"github.com/imamik/jiraseed/internal/provisioning/issues"
)

// ProjectPlan is the predicted outcome of seeding one project on an empty
// instance.
type ProjectPlan struct {
	Project config.Project
	Drafts  []generator.IssueDraft
	// Links uses the keys a fresh project would hand out (KEY-1, KEY-2, ...).
	Links []issues.LinkRequest
}

// Plan synthesizes every issue and link the dataset would produce, without
// touching a remote system.
func Plan(ds *config.Dataset) []ProjectPlan {
	plans := make([]ProjectPlan, 0, len(ds.Projects))
	for _, def := range ds.Projects {
		plans = append(plans, ProjectPlan{
			Project: def,
			Drafts:  generator.Drafts(ds.Pools(def), ds.IssueCount),
		})
	}

	if ds.Anchor == "" {
		return plans
	}
	anchorKeys := predictedKeys(ds.Anchor, ds.IssueCount)
	for i := range plans {
		def := plans[i].Project
		if ds.IsAnchor(def.Key) {
			continue
		}
		plans[i].Links = issues.Plan(anchorKeys, predictedKeys(def.Key, ds.IssueCount), def.LinkStart, ds.LinkType)
	}
	return plans
}

func predictedKeys(project string, n int) []string {
	keys := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		keys = append(keys, fmt.Sprintf("%s-%d", project, i))
	}
	return keys
}
