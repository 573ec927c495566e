// Package testing provides test utilities, builders, and fakes for unit tests.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - FakeJira: in-memory jira.Gateway that tracks users, projects, issues and links
//   - MockGateway: testify mock of jira.Gateway for exact response control
//   - DatasetBuilder: fluent builder for test datasets
//
// Usage:
//
//	ds := testing.NewDatasetBuilder().
//	    WithIssueCount(5).
//	    WithProject(config.Project{Key: "UP", Name: "Upstream"}).
//	    Build()
//
//	fake := testing.NewFakeJira().WithUser("kabir")
package testing
