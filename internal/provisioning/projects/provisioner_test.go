package projects

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/jiraseed/internal/config"
	"github.com/imamik/jiraseed/internal/platform/jira"
	"github.com/imamik/jiraseed/internal/provisioning"
	jiratest "github.com/imamik/jiraseed/internal/testing"
)

var feat = config.Project{
	Key:        "FEAT",
	Name:       "Feature",
	Versions:   []string{"1.0.0", "1.1.0"},
	Components: []string{"Core", "Backend"},
	Labels:     []string{"backend", "ui"},
}

func newContext(t *testing.T, gw jira.Gateway) *provisioning.Context {
	t.Helper()
	ds := jiratest.NewDatasetBuilder().WithProject(feat).Build()
	return provisioning.NewContext(jiratest.TestContext(t), ds, gw)
}

func run(ctx *provisioning.Context, def config.Project) error {
	return provisioning.NewPipeline(Phases(def)...).Run(ctx)
}

func TestPhaseNames(t *testing.T) {
	t.Parallel()
	var names []string
	for _, p := range Phases(feat) {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{"project/FEAT", "project/FEAT/resolve", "project/FEAT/children"}, names)
}

func TestProvision_CreatesProjectAndChildren(t *testing.T) {
	t.Parallel()
	fake := jiratest.NewFakeJira()
	ctx := newContext(t, fake)

	require.NoError(t, run(ctx, feat))

	ps := ctx.State.Projects["FEAT"]
	require.NotNil(t, ps)
	assert.Equal(t, provisioning.OutcomeCreated, ps.Outcome)
	assert.True(t, ps.Resolved)
	assert.Equal(t, fake.Projects["FEAT"].ID, ps.RemoteID)

	assert.Equal(t, []string{"Core", "Backend"}, fake.Projects["FEAT"].Components)
	assert.Equal(t, []string{"1.0.0", "1.1.0"}, fake.Projects["FEAT"].Versions)
	assert.True(t, ps.PoolsBound())
	assert.Equal(t, []string{"Core", "Backend"}, ps.Components())
	assert.Equal(t, []string{"backend", "ui"}, ps.Labels())

	calls := fake.CallsTo(http.MethodPost, "project")
	require.Len(t, calls, 1)
	assert.Equal(t, ProjectPayload(feat, "admin"), calls[0].Payload)
	assert.Equal(t, "com.pyxis.greenhopper.jira:gh-kanban-template", calls[0].Payload["projectTemplateKey"])

	components := fake.CallsTo(http.MethodPost, "component")
	require.Len(t, components, 2)
	assert.Equal(t, jira.Document{
		"name":                "Core",
		"description":         "Core",
		"leadUserName":        "admin",
		"assigneeType":        "PROJECT_LEAD",
		"isAssigneeTypeValid": false,
		"project":             "FEAT",
	}, components[0].Payload)
}

func TestProvision_ExistingProjectSkipped(t *testing.T) {
	t.Parallel()
	fake := jiratest.NewFakeJira().WithProject("FEAT", "Feature")
	ctx := newContext(t, fake)

	require.NoError(t, run(ctx, feat))

	ps := ctx.State.Projects["FEAT"]
	assert.Equal(t, provisioning.OutcomePresent, ps.Outcome)
	assert.False(t, ps.Resolved)
	assert.False(t, ps.PoolsBound())
	assert.Zero(t, fake.CountCalls(http.MethodPost, "project"))
	assert.Zero(t, fake.CountCalls(http.MethodPost, "component"))
	assert.Zero(t, fake.CountCalls(http.MethodDelete, "project/FEAT"))
	// Only the existence check reads the project.
	assert.Equal(t, 1, fake.CountCalls(http.MethodGet, "project/FEAT"))
}

func TestProvision_ResetRecreates(t *testing.T) {
	t.Parallel()
	fake := jiratest.NewFakeJira().WithProject("FEAT", "Feature")
	oldID := fake.Projects["FEAT"].ID
	ctx := newContext(t, fake)
	ctx.Policy = provisioning.PolicyReset

	require.NoError(t, run(ctx, feat))

	ps := ctx.State.Projects["FEAT"]
	assert.Equal(t, provisioning.OutcomeRecreated, ps.Outcome)
	assert.Equal(t, 1, fake.CountCalls(http.MethodDelete, "project/FEAT"))
	assert.Equal(t, 1, fake.CountCalls(http.MethodPost, "project"))
	assert.NotEqual(t, oldID, ps.RemoteID)
	assert.Len(t, fake.Projects["FEAT"].Components, 2)
}

func TestProvision_AmbiguousLookup(t *testing.T) {
	t.Parallel()
	fake := jiratest.NewFakeJira().ReadStatus("project/FEAT", http.StatusUnauthorized)
	ctx := newContext(t, fake)

	err := run(ctx, feat)
	require.Error(t, err)

	var lookupErr *provisioning.LookupAmbiguousError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, "project", lookupErr.Kind)
	assert.Equal(t, "FEAT", lookupErr.Identity)
	assert.Contains(t, err.Error(), "project/FEAT phase failed")
}

func TestProvision_ProjectWithoutChildren(t *testing.T) {
	t.Parallel()
	bare := config.Project{Key: "UP", Name: "Upstream"}
	fake := jiratest.NewFakeJira()
	ds := jiratest.NewDatasetBuilder().WithProject(bare).Build()
	ctx := provisioning.NewContext(jiratest.TestContext(t), ds, fake)

	require.NoError(t, run(ctx, bare))

	ps := ctx.State.Projects["UP"]
	require.NotNil(t, ps)
	assert.True(t, ps.PoolsBound())
	assert.Empty(t, ps.Components())
	assert.Empty(t, ps.Labels())
	assert.Zero(t, fake.CountCalls(http.MethodPost, "component"))
	assert.Zero(t, fake.CountCalls(http.MethodPost, "version"))
}

func TestChildren_RequiresReconciledProject(t *testing.T) {
	t.Parallel()
	ctx := newContext(t, jiratest.NewFakeJira())

	err := provisioning.NewPipeline(NewChildren(feat)).Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "precondition")
	assert.Contains(t, err.Error(), "project FEAT has not been reconciled")
}

func TestResolveID_UsesMock(t *testing.T) {
	t.Parallel()
	gw := jiratest.NewMockGateway()
	gw.OnRead("project/SUP", http.StatusOK, jira.Document{"id": "10203", "key": "SUP"})
	ctx := newContext(t, gw)

	id, err := ResolveID(ctx, "SUP")
	require.NoError(t, err)
	assert.Equal(t, int64(10203), id)
	gw.AssertExpectations(t)
}

func TestResolveID_NotFound(t *testing.T) {
	t.Parallel()
	gw := jiratest.NewMockGateway()
	gw.OnRead("project/SUP", http.StatusNotFound, nil)
	ctx := newContext(t, gw)

	_, err := ResolveID(ctx, "SUP")
	assert.True(t, jira.IsNotFound(err))
}
