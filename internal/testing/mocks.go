package testing

import (
	"context"
	"strings"

	"github.com/stretchr/testify/mock"

	"github.com/imamik/jiraseed/internal/platform/jira"
)

// MockGateway is a mock implementation of the jira.Gateway interface.
// It can be used where a test needs exact control over individual responses.
type MockGateway struct {
	mock.Mock
}

// NewMockGateway creates a new MockGateway.
func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

// Read returns the mocked response for r.
func (m *MockGateway) Read(ctx context.Context, r jira.Resource) (*jira.Response, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jira.Response), args.Error(1)
}

// Create returns the mocked create response.
func (m *MockGateway) Create(ctx context.Context, r jira.Resource, doc jira.Document) (jira.Document, error) {
	args := m.Called(ctx, r, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(jira.Document), args.Error(1)
}

// Replace returns the mocked replace response.
func (m *MockGateway) Replace(ctx context.Context, r jira.Resource, doc jira.Document) (jira.Document, error) {
	args := m.Called(ctx, r, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(jira.Document), args.Error(1)
}

// Delete returns the mocked delete error.
func (m *MockGateway) Delete(ctx context.Context, r jira.Resource) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

// OnRead sets up a Read expectation for the resource path (e.g. "project/FEAT").
func (m *MockGateway) OnRead(path string, status int, doc jira.Document) *mock.Call {
	return m.On("Read", mock.Anything, ResourcePath(path)).Return(&jira.Response{Status: status, Document: doc}, nil)
}

// OnCreate sets up a Create expectation for the resource path.
func (m *MockGateway) OnCreate(path string, doc jira.Document) *mock.Call {
	return m.On("Create", mock.Anything, ResourcePath(path), mock.Anything).Return(doc, nil)
}

// ResourcePath matches a jira.Resource by its segments, ignoring the query.
func ResourcePath(path string) interface{} {
	return mock.MatchedBy(func(r jira.Resource) bool {
		return strings.Join(r.Segments, "/") == path
	})
}
