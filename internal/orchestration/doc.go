// Package orchestration provides high-level workflow coordination for seeding Jira.
//
// It turns a dataset into the ordered list of provisioning phases (preflight,
// users, then per project: reconcile, resolve, children, issues and links)
// and runs them. The order and the preconditions live here; the work is
// delegated to the provisioning subpackages.
package orchestration
