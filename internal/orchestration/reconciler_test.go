package orchestration

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/jiraseed/internal/config"
	"github.com/imamik/jiraseed/internal/platform/jira"
	"github.com/imamik/jiraseed/internal/provisioning"
	jiratest "github.com/imamik/jiraseed/internal/testing"
)

func defaultDataset(t *testing.T) *config.Dataset {
	t.Helper()
	ds, err := config.DefaultDataset()
	require.NoError(t, err)
	return ds
}

func phaseNames(phases []provisioning.Phase) []string {
	names := make([]string, 0, len(phases))
	for _, p := range phases {
		names = append(names, p.Name())
	}
	return names
}

func TestBuildPhases_DefaultDataset(t *testing.T) {
	t.Parallel()
	names := phaseNames(BuildPhases(defaultDataset(t)))

	assert.Equal(t, []string{
		"preflight", "users",
		"project/UP", "project/UP/resolve", "project/UP/children", "project/UP/issues",
		"project/FEAT", "project/FEAT/resolve", "project/FEAT/children", "project/FEAT/issues", "project/FEAT/links",
		"project/SUP", "project/SUP/resolve", "project/SUP/children", "project/SUP/issues", "project/SUP/links",
	}, names)
}

func TestBuildPhases_NoAnchor(t *testing.T) {
	t.Parallel()
	ds := jiratest.NewDatasetBuilder().
		WithProject(config.Project{Key: "ONE", Name: "One"}).
		WithProject(config.Project{Key: "TWO", Name: "Two"}).
		Build()

	for _, name := range phaseNames(BuildPhases(ds)) {
		assert.False(t, strings.HasSuffix(name, "/links"), "unexpected link phase %s", name)
	}
}

func TestReconcile_DefaultDataset(t *testing.T) {
	t.Parallel()
	fake := jiratest.NewFakeJira()
	ds := defaultDataset(t)
	metrics := provisioning.NewMetrics()

	result, err := NewReconciler(fake, ds, WithMetrics(metrics)).Reconcile(jiratest.TestContext(t))
	require.NoError(t, err)

	assert.Equal(t, 16, result.Phases)
	assert.Len(t, fake.Users, 7)
	assert.Len(t, fake.Projects, 3)
	for _, key := range []string{"UP", "FEAT", "SUP"} {
		assert.Len(t, fake.IssueKeys(key), 30, "project %s", key)
	}
	assert.Len(t, fake.Projects["FEAT"].Components, 7)
	assert.Len(t, fake.Projects["SUP"].Components, 6)
	assert.Empty(t, fake.Projects["UP"].Components)

	// FEAT links from index 0, SUP from index 1.
	assert.Equal(t, 30, result.State.LinksCreated["FEAT"])
	assert.Equal(t, 29, result.State.LinksCreated["SUP"])
	assert.Len(t, fake.Links, 59)

	assert.Equal(t, 7.0, testutil.ToFloat64(metrics.ResourceCounter("user", provisioning.OutcomeCreated)))
	assert.Equal(t, 90.0, testutil.ToFloat64(metrics.ResourceCounter("issue", provisioning.OutcomeCreated)))
	assert.Equal(t, 59.0, testutil.ToFloat64(metrics.ResourceCounter("issue link", provisioning.OutcomeCreated)))
}

func TestReconcile_FillsOptionalFields(t *testing.T) {
	t.Parallel()
	fake := jiratest.NewFakeJira()
	ds := &config.Dataset{
		IssueCount: 2,
		Anchor:     "UP",
		Summaries:  []string{"Implement and test"},
		IssueTypes: []string{"Task"},
		Priorities: []string{"Medium"},
		Users:      []config.User{{Username: "kabir"}},
		Projects: []config.Project{
			{Key: "UP", Name: "Upstream"},
			{Key: "FEAT", Name: "Feature"},
		},
	}

	_, err := NewReconciler(fake, ds).Reconcile(jiratest.TestContext(t))
	require.NoError(t, err)

	require.NotEmpty(t, fake.Links)
	assert.Equal(t, config.DefaultLinkType, fake.Links[0]["type"].(jira.Document)["name"])

	issues := fake.CallsTo(http.MethodPost, "issue")
	require.NotEmpty(t, issues)
	fields := issues[0].Payload["fields"].(jira.Document)
	assert.Equal(t, config.DefaultReporter, fields["reporter"].(jira.Document)["name"])
}

func TestReconcile_EndToEndSmall(t *testing.T) {
	t.Parallel()
	fake := jiratest.NewFakeJira()
	ds := jiratest.SingleProjectDataset()

	result, err := NewReconciler(fake, ds).Reconcile(jiratest.TestContext(t))
	require.NoError(t, err)

	assert.Len(t, fake.Users, 3)
	assert.Equal(t, []string{"UP-1", "UP-2", "UP-3", "UP-4", "UP-5"}, fake.IssueKeys("UP"))
	assert.Empty(t, fake.Links)

	for _, call := range fake.CallsTo(http.MethodPost, "issue") {
		fields := call.Payload["fields"].(jira.Document)
		assert.NotContains(t, fields, "components")
		assert.Equal(t, fake.Projects["UP"].ID, fields["project"].(jira.Document)["id"])
	}
	assert.Equal(t, 5, result.State.Count("issue", provisioning.OutcomeCreated))
}

func TestReconcile_Idempotent(t *testing.T) {
	t.Parallel()
	fake := jiratest.NewFakeJira()
	ds := defaultDataset(t)
	ctx := jiratest.TestContext(t)

	_, err := NewReconciler(fake, ds).Reconcile(ctx)
	require.NoError(t, err)
	second, err := NewReconciler(fake, ds).Reconcile(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, fake.CountCalls(http.MethodPost, "project"))
	assert.Equal(t, 7, fake.CountCalls(http.MethodPost, "user"))
	assert.Equal(t, 90, fake.CountCalls(http.MethodPost, "issue"))
	assert.Equal(t, 3, second.State.Count("project", provisioning.OutcomePresent))
	assert.Equal(t, 7, second.State.Count("user", provisioning.OutcomePresent))
	assert.Zero(t, second.State.LinksCreated["FEAT"])
}

func TestReconcile_ResetRecreatesProjects(t *testing.T) {
	t.Parallel()
	fake := jiratest.NewFakeJira().WithProject("UP", "Upstream").WithUser("kabir")
	ds := defaultDataset(t)

	result, err := NewReconciler(fake, ds, WithPolicy(provisioning.PolicyReset)).Reconcile(jiratest.TestContext(t))
	require.NoError(t, err)

	assert.Equal(t, 1, fake.CountCalls(http.MethodDelete, "project/UP"))
	assert.Equal(t, 3, fake.CountCalls(http.MethodPost, "project"))
	assert.Equal(t, 1, result.State.Count("project", provisioning.OutcomeRecreated))
	assert.Equal(t, 2, result.State.Count("project", provisioning.OutcomeCreated))
	// Users are never reset.
	assert.Equal(t, 1, result.State.Count("user", provisioning.OutcomePresent))
	assert.Len(t, fake.IssueKeys("UP"), 30)
}

func TestReconcile_InvalidDataset(t *testing.T) {
	t.Parallel()
	fake := jiratest.NewFakeJira()
	ds := jiratest.NewDatasetBuilder().Build() // no projects

	result, err := NewReconciler(fake, ds).Reconcile(jiratest.TestContext(t))
	require.Error(t, err)
	assert.Nil(t, result)

	var cfgErr *config.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "projects", cfgErr.Field)
	assert.Empty(t, fake.Calls, "nothing may be sent before the dataset is valid")
}

func TestReconcile_AbortsOnFirstError(t *testing.T) {
	t.Parallel()
	fake := jiratest.NewFakeJira().FailOn(http.MethodPost, "issue", errors.New("connection refused"))
	ds := defaultDataset(t)

	result, err := NewReconciler(fake, ds).Reconcile(jiratest.TestContext(t))
	require.Error(t, err)
	require.NotNil(t, result)

	assert.Contains(t, err.Error(), "project/UP/issues phase failed")
	assert.Contains(t, err.Error(), "connection refused")
	// UP exists, nothing after it was attempted and nothing was rolled back.
	assert.Contains(t, fake.Projects, "UP")
	assert.NotContains(t, fake.Projects, "FEAT")
	assert.Zero(t, fake.CountCalls(http.MethodDelete, "project/UP"))
}

func TestReconcile_CanceledContext(t *testing.T) {
	t.Parallel()
	fake := jiratest.NewFakeJira()
	ctx, cancel := context.WithCancel(jiratest.TestContext(t))
	cancel()

	_, err := NewReconciler(fake, defaultDataset(t)).Reconcile(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fake.Calls)
}
