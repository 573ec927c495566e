package provisioning

import (
	"fmt"
	"net/http"

	"github.com/imamik/jiraseed/internal/platform/jira"
)

// Outcome is the result of reconciling one entity.
type Outcome string

const (
	// OutcomeCreated means the entity was absent and has been created.
	OutcomeCreated Outcome = "created"
	// OutcomePresent means the entity already existed and was left alone.
	OutcomePresent Outcome = "present"
	// OutcomeRecreated means the entity existed and was deleted and created again.
	OutcomeRecreated Outcome = "recreated"
)

// Policy selects what happens to an entity that already exists.
type Policy int

const (
	// PolicySkip leaves existing entities untouched.
	PolicySkip Policy = iota
	// PolicyReset deletes existing entities and creates them again.
	PolicyReset
)

func (p Policy) String() string {
	if p == PolicyReset {
		return "reset"
	}
	return "skip"
}

// LookupAmbiguousError is returned when an existence check is answered with
// neither 200 nor 404.
type LookupAmbiguousError struct {
	Kind     string
	Identity string
	Status   int
	Body     string
}

func (e *LookupAmbiguousError) Error() string {
	return fmt.Sprintf("error looking up %s %s: status %d: %s", e.Kind, e.Identity, e.Status, e.Body)
}

// Exists checks whether the entity at r exists.
func Exists(ctx *Context, kind, identity string, r jira.Resource) (bool, error) {
	resp, err := ctx.Gateway.Read(ctx, r)
	if err != nil {
		return false, fmt.Errorf("failed to look up %s %s: %w", kind, identity, err)
	}

	switch {
	case resp.Found():
		return true, nil
	case resp.Status == http.StatusNotFound:
		return false, nil
	default:
		return false, &LookupAmbiguousError{Kind: kind, Identity: identity, Status: resp.Status, Body: resp.Body}
	}
}

// EnsureOperation encapsulates create-if-absent logic for a Jira entity, with
// optional delete-and-recreate of an existing one.
//
// Usage example:
//
//	res, err := (&EnsureOperation{
//	    Phase:    "project/FEAT",
//	    Kind:     "project",
//	    Identity: "FEAT",
//	    Lookup:   jira.R("project", "FEAT"),
//	    Create:   jira.R("project"),
//	    Payload:  payload,
//	    Policy:   ctx.Policy,
//	}).Execute(ctx)
type EnsureOperation struct {
	Phase    string
	Kind     string
	Identity string

	// Lookup is read to decide existence.
	Lookup jira.Resource
	// Remove is deleted under PolicyReset. Defaults to Lookup.
	Remove *jira.Resource
	// Create receives Payload when the entity must be created.
	Create  jira.Resource
	Payload jira.Document

	Policy Policy
}

// EnsureResult is returned by EnsureOperation.Execute.
type EnsureResult struct {
	Outcome Outcome
	// Document is the create response; nil when the entity was left alone.
	Document jira.Document
}

// Execute runs the operation. Any lookup, delete or create failure is returned
// as is; nothing is retried.
func (op *EnsureOperation) Execute(ctx *Context) (*EnsureResult, error) {
	exists, err := Exists(ctx, op.Kind, op.Identity, op.Lookup)
	if err != nil {
		return nil, err
	}

	outcome := OutcomeCreated
	if exists {
		if op.Policy != PolicyReset {
			LogResourceExists(ctx.Observer, op.Phase, op.Kind, op.Identity, "")
			op.record(ctx, OutcomePresent)
			return &EnsureResult{Outcome: OutcomePresent}, nil
		}

		remove := op.Lookup
		if op.Remove != nil {
			remove = *op.Remove
		}
		LogResourceDeleting(ctx.Observer, op.Phase, op.Kind, op.Identity)
		if err := ctx.Gateway.Delete(ctx, remove); err != nil {
			return nil, fmt.Errorf("failed to delete %s %s: %w", op.Kind, op.Identity, err)
		}
		LogResourceDeleted(ctx.Observer, op.Phase, op.Kind, op.Identity)
		outcome = OutcomeRecreated
	}

	doc, err := create(ctx, op.Phase, op.Kind, op.Identity, op.Create, op.Payload)
	if err != nil {
		return nil, err
	}
	op.record(ctx, outcome)
	return &EnsureResult{Outcome: outcome, Document: doc}, nil
}

func (op *EnsureOperation) record(ctx *Context, outcome Outcome) {
	ctx.State.Record(op.Kind, outcome)
	ctx.Metrics.RecordOutcome(op.Kind, outcome)
}

// Create posts payload to r without an existence check. It is used for
// entities that only ever follow the creation of their parent.
func Create(ctx *Context, phase, kind, identity string, r jira.Resource, payload jira.Document) (jira.Document, error) {
	doc, err := create(ctx, phase, kind, identity, r, payload)
	if err != nil {
		return nil, err
	}
	ctx.State.Record(kind, OutcomeCreated)
	ctx.Metrics.RecordOutcome(kind, OutcomeCreated)
	return doc, nil
}

func create(ctx *Context, phase, kind, identity string, r jira.Resource, payload jira.Document) (jira.Document, error) {
	LogResourceCreating(ctx.Observer, phase, kind, identity)
	doc, err := ctx.Gateway.Create(ctx, r, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s %s: %w", kind, identity, err)
	}
	LogResourceCreated(ctx.Observer, phase, kind, identity, doc.String("id"))
	return doc, nil
}
