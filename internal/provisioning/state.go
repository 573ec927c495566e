package provisioning

import (
	"fmt"
	"slices"

	"github.com/imamik/jiraseed/internal/config"
)

// State holds the shared results of provisioning phases.
// It is progressively populated as each phase completes and is passed
// to subsequent phases that need earlier results.
type State struct {
	// Avatars is the system avatar pool (populated by the users phase).
	Avatars *AvatarPool

	// Projects is keyed by project key (populated by project phases).
	Projects map[string]*ProjectState

	// IssueKeys is the issue-key lookup table, keyed by project key. An entry
	// is published once a project's issue phase has finished, even when no
	// issues were created.
	IssueKeys map[string][]string

	// LinksCreated counts issue links per outward project.
	LinksCreated map[string]int

	outcomes map[string]map[Outcome]int
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{
		Projects:     make(map[string]*ProjectState),
		IssueKeys:    make(map[string][]string),
		LinksCreated: make(map[string]int),
		outcomes:     make(map[string]map[Outcome]int),
	}
}

// Project returns the state for def, creating it on first use.
func (s *State) Project(def config.Project) *ProjectState {
	ps, ok := s.Projects[def.Key]
	if !ok {
		ps = &ProjectState{Definition: def}
		s.Projects[def.Key] = ps
	}
	return ps
}

// PublishIssueKeys records the issue keys of a project in the lookup table.
func (s *State) PublishIssueKeys(projectKey string, keys []string) {
	s.IssueKeys[projectKey] = slices.Clone(keys)
}

// LookupIssueKeys returns the published issue keys of a project.
func (s *State) LookupIssueKeys(projectKey string) ([]string, bool) {
	keys, ok := s.IssueKeys[projectKey]
	return keys, ok
}

// Record tallies one reconcile outcome for kind.
func (s *State) Record(kind string, outcome Outcome) {
	if s.outcomes[kind] == nil {
		s.outcomes[kind] = make(map[Outcome]int)
	}
	s.outcomes[kind][outcome]++
}

// Count returns the number of outcomes recorded for kind.
func (s *State) Count(kind string, outcome Outcome) int {
	return s.outcomes[kind][outcome]
}

// Kinds returns the kinds with at least one recorded outcome, sorted.
func (s *State) Kinds() []string {
	kinds := make([]string, 0, len(s.outcomes))
	for k := range s.outcomes {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// ProjectState is the per-project provisioning record.
type ProjectState struct {
	Definition config.Project

	// Outcome of the project reconcile.
	Outcome Outcome

	// RemoteID is the numeric Jira project id. Valid only when Resolved.
	RemoteID int64
	Resolved bool

	// IssueKeys holds the created issue keys in creation order.
	IssueKeys []string

	components []string
	labels     []string
	bound      bool
}

// Provisioned reports whether the project was created or recreated in this run.
func (p *ProjectState) Provisioned() bool {
	return p.Outcome == OutcomeCreated || p.Outcome == OutcomeRecreated
}

// Resolve stores the numeric project id.
func (p *ProjectState) Resolve(id int64) {
	p.RemoteID = id
	p.Resolved = true
}

// BindPools copies the component and label pools. Pools can be bound once.
func (p *ProjectState) BindPools(components, labels []string) error {
	if p.bound {
		return fmt.Errorf("project %s: pools already bound", p.Definition.Key)
	}
	p.components = slices.Clone(components)
	p.labels = slices.Clone(labels)
	p.bound = true
	return nil
}

// Components returns a copy of the bound component pool.
func (p *ProjectState) Components() []string { return slices.Clone(p.components) }

// Labels returns a copy of the bound label pool.
func (p *ProjectState) Labels() []string { return slices.Clone(p.labels) }

// PoolsBound reports whether BindPools has been called.
func (p *ProjectState) PoolsBound() bool { return p.bound }

// AvatarPool hands out system avatar ids, walking backward from the last one
// and wrapping around when exhausted.
type AvatarPool struct {
	ids  []int64
	next int
}

// NewAvatarPool creates a pool over ids.
func NewAvatarPool(ids []int64) *AvatarPool {
	return &AvatarPool{ids: slices.Clone(ids), next: len(ids) - 1}
}

// Len returns the number of avatars in the pool.
func (p *AvatarPool) Len() int { return len(p.ids) }

// Next returns the next avatar id. It returns false for an empty pool.
func (p *AvatarPool) Next() (int64, bool) {
	if len(p.ids) == 0 {
		return 0, false
	}
	id := p.ids[p.next]
	p.next--
	if p.next < 0 {
		p.next = len(p.ids) - 1
	}
	return id, true
}
