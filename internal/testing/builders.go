package testing

import (
	"slices"

	"github.com/imamik/jiraseed/internal/config"
)

// DatasetBuilder provides a fluent interface for constructing test datasets.
// Each method returns a new builder (immutable) for chaining.
type DatasetBuilder struct {
	ds config.Dataset
}

// NewDatasetBuilder creates a builder with three users, the default pools and
// no projects.
func NewDatasetBuilder() *DatasetBuilder {
	return &DatasetBuilder{
		ds: config.Dataset{
			IssueCount: 5,
			Summaries:  []string{"Implement and test", "Figure it out"},
			IssueTypes: []string{"Task", "Bug", "Story"},
			Priorities: []string{"Highest", "High", "Medium", "Low", "Lowest"},
			Users: []config.User{
				{Username: "kabir", DisplayName: "Kabir Khan"},
				{Username: "rostislav", DisplayName: "Rostislav Svoboda"},
				{Username: "james", DisplayName: "James Perkins"},
			},
		},
	}
}

// WithIssueCount sets the number of issues per project.
func (b *DatasetBuilder) WithIssueCount(n int) *DatasetBuilder {
	nb := b.clone()
	nb.ds.IssueCount = n
	return nb
}

// WithUsers replaces the user list.
func (b *DatasetBuilder) WithUsers(users ...config.User) *DatasetBuilder {
	nb := b.clone()
	nb.ds.Users = slices.Clone(users)
	return nb
}

// WithProject appends a project.
func (b *DatasetBuilder) WithProject(p config.Project) *DatasetBuilder {
	nb := b.clone()
	nb.ds.Projects = append(nb.ds.Projects, p)
	return nb
}

// WithAnchor sets the anchor project key.
func (b *DatasetBuilder) WithAnchor(key string) *DatasetBuilder {
	nb := b.clone()
	nb.ds.Anchor = key
	return nb
}

// Build returns the dataset with defaults applied.
func (b *DatasetBuilder) Build() *config.Dataset {
	ds := b.clone().ds
	ds.ApplyDefaults()
	return &ds
}

func (b *DatasetBuilder) clone() *DatasetBuilder {
	ds := b.ds
	ds.Summaries = slices.Clone(b.ds.Summaries)
	ds.IssueTypes = slices.Clone(b.ds.IssueTypes)
	ds.Priorities = slices.Clone(b.ds.Priorities)
	ds.Users = slices.Clone(b.ds.Users)
	ds.Projects = make([]config.Project, 0, len(b.ds.Projects))
	for _, p := range b.ds.Projects {
		ds.Projects = append(ds.Projects, cloneProject(p))
	}
	return &DatasetBuilder{ds: ds}
}

func cloneProject(p config.Project) config.Project {
	p.Versions = slices.Clone(p.Versions)
	p.Components = slices.Clone(p.Components)
	p.Labels = slices.Clone(p.Labels)
	p.IssueTypes = slices.Clone(p.IssueTypes)
	p.Priorities = slices.Clone(p.Priorities)
	return p
}
