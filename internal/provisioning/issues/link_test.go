package issues

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/jiraseed/internal/config"
	"github.com/imamik/jiraseed/internal/platform/jira"
	"github.com/imamik/jiraseed/internal/provisioning"
	jiratest "github.com/imamik/jiraseed/internal/testing"
)

func keys(prefix string, n int) []string {
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, fmt.Sprintf("%s-%d", prefix, i))
	}
	return out
}

func TestPlan_Bounds(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		anchor int
		own    int
		start  int
		want   int
	}{
		{name: "equal lists from 0", anchor: 30, own: 30, start: 0, want: 30},
		{name: "equal lists from 1", anchor: 30, own: 30, start: 1, want: 29},
		{name: "shorter own list from 0", anchor: 30, own: 29, start: 0, want: 29},
		{name: "shorter own list from 1", anchor: 30, own: 29, start: 1, want: 28},
		{name: "shorter anchor list", anchor: 3, own: 30, start: 0, want: 3},
		{name: "empty anchor", anchor: 0, own: 30, start: 0, want: 0},
		{name: "start beyond lists", anchor: 2, own: 2, start: 5, want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Plan(keys("UP", tt.anchor), keys("FEAT", tt.own), tt.start, "Blocks")
			assert.Len(t, got, tt.want)
		})
	}
}

func TestPlan_PairsByIndex(t *testing.T) {
	t.Parallel()
	got := Plan(keys("UP", 3), keys("SUP", 3), 1, "Blocks")

	assert.Equal(t, []LinkRequest{
		{Type: "Blocks", InwardKey: "UP-2", OutwardKey: "SUP-2"},
		{Type: "Blocks", InwardKey: "UP-3", OutwardKey: "SUP-3"},
	}, got)
}

func TestLinkRequest_Payload(t *testing.T) {
	t.Parallel()
	payload := LinkRequest{Type: "Blocks", InwardKey: "UP-1", OutwardKey: "FEAT-1"}.Payload()

	assert.Equal(t, jira.Document{
		"type":         jira.Document{"name": "Blocks"},
		"inwardIssue":  jira.Document{"key": "UP-1"},
		"outwardIssue": jira.Document{"key": "FEAT-1"},
	}, payload)
}

func TestLinker_LinksAgainstAnchor(t *testing.T) {
	t.Parallel()
	fake := jiratest.NewFakeJira()
	ds := jiratest.LinkedDataset(4)
	ctx := provisioning.NewContext(jiratest.TestContext(t), ds, fake)

	require.NoError(t, provisioning.NewPipeline(projectPhases(ds)...).Run(ctx))

	assert.Equal(t, 4, ctx.State.LinksCreated["FEAT"])
	assert.Equal(t, 3, ctx.State.LinksCreated["SUP"])
	require.Len(t, fake.Links, 7)
	assert.Equal(t, LinkRequest{Type: "Blocks", InwardKey: "UP-1", OutwardKey: "FEAT-1"}.Payload(), fake.Links[0])
	assert.Equal(t, LinkRequest{Type: "Blocks", InwardKey: "UP-2", OutwardKey: "SUP-2"}.Payload(), fake.Links[4])
}

func TestLinker_AnchorAlreadyPresent(t *testing.T) {
	t.Parallel()
	fake := jiratest.NewFakeJira().WithProject("UP", "Upstream")
	ds := jiratest.LinkedDataset(4)
	ctx := provisioning.NewContext(jiratest.TestContext(t), ds, fake)

	require.NoError(t, provisioning.NewPipeline(projectPhases(ds)...).Run(ctx))

	assert.Zero(t, fake.CountCalls(http.MethodPost, "issueLink"))
	assert.Len(t, fake.IssueKeys("FEAT"), 4)
}

func TestLinker_Requires(t *testing.T) {
	t.Parallel()
	def := config.Project{Key: "FEAT", Name: "Feature"}
	ds := jiratest.LinkedDataset(4)

	ctx := provisioning.NewContext(jiratest.TestContext(t), ds, jiratest.NewFakeJira())
	err := NewLinker(def).Requires(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anchor project UP")

	ctx.State.PublishIssueKeys("UP", keys("UP", 4))
	err = NewLinker(def).Requires(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project FEAT have not been published")

	ctx.State.PublishIssueKeys("FEAT", keys("FEAT", 4))
	assert.NoError(t, NewLinker(def).Requires(ctx))

	assert.Error(t, NewLinker(config.Project{Key: "UP"}).Requires(ctx), "anchor cannot link to itself")
}

func TestLinker_FailureAborts(t *testing.T) {
	t.Parallel()
	fake := jiratest.NewFakeJira().FailOn(http.MethodPost, "issueLink", &jira.RemoteError{
		Method: http.MethodPost, Resource: "issueLink", Status: http.StatusBadRequest, Body: `{"errorMessages":["No issue link type with name 'Blocks' found."]}`,
	})
	ds := jiratest.LinkedDataset(2)
	ctx := provisioning.NewContext(jiratest.TestContext(t), ds, fake)

	err := provisioning.NewPipeline(projectPhases(ds)...).Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project/FEAT/links phase failed")
	assert.Contains(t, err.Error(), "No issue link type")
	// SUP is never reached.
	assert.NotContains(t, fake.Projects, "SUP")
}
