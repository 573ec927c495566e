// Package provisioning provides the shared types and orchestration primitives
// used to seed a Jira instance.
//
// # Subpackages
//
//   - users/: avatar pool and user create-if-absent
//   - projects/: project reconcile, id resolution, components, versions and labels
//   - issues/: issue generation and cross-project linking
//
// # Core Types
//
// Context carries the dataset, reset policy, state, gateway, observer and metrics.
// Phase defines a provisioning step with Name() and Provision() methods; phases
// that consume earlier results also implement Precondition.
// State accumulates results from each phase (avatars, project ids, issue keys).
// EnsureOperation implements the create-if-absent / delete-and-recreate rule.
package provisioning
