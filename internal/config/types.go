package config

import "github.com/imamik/jiraseed/internal/generator"

// Dataset describes every entity the populator creates.
type Dataset struct {
	IssueCount  int    `yaml:"issueCount"`
	Reporter    string `yaml:"reporter,omitempty"`
	ProjectLead string `yaml:"projectLead,omitempty"`
	EmailDomain string `yaml:"emailDomain,omitempty"`

	// Anchor is the project whose issues are the inward side of every link.
	// Empty disables linking.
	Anchor   string `yaml:"anchor,omitempty"`
	LinkType string `yaml:"linkType,omitempty"`

	Summaries  []string `yaml:"summaries"`
	IssueTypes []string `yaml:"issueTypes"`
	Priorities []string `yaml:"priorities"`

	ComponentPolicy generator.Divisors `yaml:"componentPolicy"`
	LabelPolicy     generator.Divisors `yaml:"labelPolicy"`

	Users    []User    `yaml:"users"`
	Projects []Project `yaml:"projects"`
}

// User is a Jira user to create.
type User struct {
	Username    string `yaml:"username"`
	DisplayName string `yaml:"displayName"`
}

// Project is a Jira project to create together with its children.
type Project struct {
	Key  string `yaml:"key"`
	Name string `yaml:"name"`

	Versions   []string `yaml:"versions,omitempty"`
	Components []string `yaml:"components,omitempty"`
	Labels     []string `yaml:"labels,omitempty"`

	// Per-project overrides of the dataset-wide pools.
	IssueTypes []string `yaml:"issueTypes,omitempty"`
	Priorities []string `yaml:"priorities,omitempty"`

	// LinkStart is the first issue index linked against the anchor project.
	LinkStart int `yaml:"linkStart,omitempty"`
}

// HasChildren reports whether the project carries components, versions or labels.
func (p Project) HasChildren() bool {
	return len(p.Components) > 0 || len(p.Versions) > 0 || len(p.Labels) > 0
}

// Usernames returns the configured usernames in order. They form the assignee pool.
func (d *Dataset) Usernames() []string {
	names := make([]string, 0, len(d.Users))
	for _, u := range d.Users {
		names = append(names, u.Username)
	}
	return names
}

// Project returns the project definition with the given key.
func (d *Dataset) Project(key string) (Project, bool) {
	for _, p := range d.Projects {
		if p.Key == key {
			return p, true
		}
	}
	return Project{}, false
}

// IsAnchor reports whether key names the anchor project.
func (d *Dataset) IsAnchor(key string) bool {
	return d.Anchor != "" && d.Anchor == key
}

// Pools returns the generator pools for project p.
func (d *Dataset) Pools(p Project) generator.Pools {
	issueTypes := p.IssueTypes
	if len(issueTypes) == 0 {
		issueTypes = d.IssueTypes
	}
	priorities := p.Priorities
	if len(priorities) == 0 {
		priorities = d.Priorities
	}

	return generator.Pools{
		Summaries:         d.Summaries,
		IssueTypes:        issueTypes,
		Priorities:        priorities,
		Assignees:         d.Usernames(),
		Components:        p.Components,
		Labels:            p.Labels,
		Reporter:          d.Reporter,
		ComponentDivisors: d.ComponentPolicy,
		LabelDivisors:     d.LabelPolicy,
	}
}

// ApplyDefaults fills empty optional fields.
func (d *Dataset) ApplyDefaults() {
	if d.Reporter == "" {
		d.Reporter = DefaultReporter
	}
	if d.ProjectLead == "" {
		d.ProjectLead = DefaultProjectLead
	}
	if d.EmailDomain == "" {
		d.EmailDomain = DefaultEmailDomain
	}
	if d.LinkType == "" {
		d.LinkType = DefaultLinkType
	}
	if d.ComponentPolicy == (generator.Divisors{}) {
		d.ComponentPolicy = generator.ComponentDivisors
	}
	if d.LabelPolicy == (generator.Divisors{}) {
		d.LabelPolicy = generator.LabelDivisors
	}
}
