package handlers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan_AllProjects(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	require.NoError(t, Plan(PlanOptions{IssueCount: 3}, &buf))

	out := buf.String()
	assert.Contains(t, out, "UP (Upstream): 3 issues, 0 links")
	assert.Contains(t, out, "FEAT (Feature): 3 issues, 3 links")
	assert.Contains(t, out, "SUP (Support): 3 issues, 2 links")
	assert.Contains(t, out, "Issue number 1. ")
	assert.Contains(t, out, "FEAT-1")
	assert.NotContains(t, out, "SUP-1", "SUP links start at the second issue")
}

func TestPlan_SingleProject(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	require.NoError(t, Plan(PlanOptions{IssueCount: 2, Project: "UP"}, &buf))

	out := buf.String()
	assert.Contains(t, out, "UP (")
	assert.NotContains(t, out, "FEAT")
	assert.Equal(t, 1, strings.Count(out, "SUMMARY"), "one issue table, no link table")
}

func TestPlan_UnknownProject(t *testing.T) {
	t.Parallel()
	err := Plan(PlanOptions{IssueCount: 1, Project: "NOPE"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOPE")
}
