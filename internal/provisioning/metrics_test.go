package provisioning

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/imamik/jiraseed/internal/platform/jira"
)

func TestMetrics_NilIsNoop(t *testing.T) {
	t.Parallel()
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordOutcome("user", OutcomeCreated)
		m.RecordRequest(http.MethodGet, "200")
		m.ObservePhase("users", time.Second)
	})
	assert.Zero(t, testutil.ToFloat64(m.ResourceCounter("user", OutcomeCreated)))
	assert.Zero(t, testutil.ToFloat64(m.RequestCounter(http.MethodGet, "200")))
	assert.Error(t, m.WriteToTextfile(filepath.Join(t.TempDir(), "x.prom")))
}

func TestMetrics_RecordOutcome(t *testing.T) {
	t.Parallel()
	m := NewMetrics()

	m.RecordOutcome("project", OutcomeCreated)
	m.RecordOutcome("project", OutcomeCreated)
	m.RecordOutcome("project", OutcomeRecreated)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ResourceCounter("project", OutcomeCreated)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ResourceCounter("project", OutcomeRecreated)))
}

func TestInstrumentGateway(t *testing.T) {
	t.Parallel()
	m := NewMetrics()
	gw := &stubGateway{}
	gw.On("Read", mock.Anything, jira.R("project", "UP")).Return(&jira.Response{Status: http.StatusNotFound}, nil)
	gw.On("Read", mock.Anything, jira.R("serverInfo")).Return(nil, errors.New("dial tcp: refused"))
	gw.On("Create", mock.Anything, jira.R("project"), mock.Anything).Return(jira.Document{}, nil)
	gw.On("Create", mock.Anything, jira.R("issue"), mock.Anything).
		Return(nil, &jira.RemoteError{Method: http.MethodPost, Resource: "issue", Status: http.StatusBadRequest})
	gw.On("Replace", mock.Anything, mock.Anything, mock.Anything).Return(jira.Document{}, nil)
	gw.On("Delete", mock.Anything, mock.Anything).Return(nil)

	inst := InstrumentGateway(gw, m)
	ctx := context.Background()

	_, _ = inst.Read(ctx, jira.R("project", "UP"))
	_, _ = inst.Read(ctx, jira.R("serverInfo"))
	_, _ = inst.Create(ctx, jira.R("project"), jira.Document{})
	_, _ = inst.Create(ctx, jira.R("issue"), jira.Document{})
	_, _ = inst.Replace(ctx, jira.R("user", "avatar"), jira.Document{})
	_ = inst.Delete(ctx, jira.R("project", "UP"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestCounter(http.MethodGet, "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestCounter(http.MethodGet, "transport_error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestCounter(http.MethodPost, "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestCounter(http.MethodPost, "400")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestCounter(http.MethodPut, "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestCounter(http.MethodDelete, "2xx")))
}

func TestInstrumentGateway_NilMetrics(t *testing.T) {
	t.Parallel()
	gw := &stubGateway{}
	assert.Same(t, gw, InstrumentGateway(gw, nil))
}

func TestMetrics_WriteToTextfile(t *testing.T) {
	t.Parallel()
	m := NewMetrics()
	m.RecordOutcome("issue", OutcomeCreated)
	path := filepath.Join(t.TempDir(), "jiraseed.prom")

	require.NoError(t, m.WriteToTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `jiraseed_provisioning_resources_total{kind="issue",outcome="created"} 1`)
}
