package generator

import "fmt"

// DefaultReporter is the reporter used when Pools.Reporter is empty.
const DefaultReporter = "admin"

// Divisors controls how often a multi-valued field is empty or carries two values.
type Divisors struct {
	// None: indexes divisible by None get no value.
	None int `yaml:"none"`
	// Multiple: indexes divisible by Multiple get a second value.
	Multiple int `yaml:"multiple"`
}

var (
	// ComponentDivisors is the default policy for issue components.
	ComponentDivisors = Divisors{None: 7, Multiple: 10}
	// LabelDivisors is the default policy for issue labels.
	LabelDivisors = Divisors{None: 4, Multiple: 5}
)

// Pools holds the value pools an issue draft is built from.
type Pools struct {
	Summaries  []string
	IssueTypes []string
	Priorities []string
	Assignees  []string
	Components []string
	Labels     []string
	Reporter   string

	ComponentDivisors Divisors
	LabelDivisors     Divisors
}

// IssueDraft is a synthesized issue, ready to be turned into a create payload.
type IssueDraft struct {
	Summary    string
	IssueType  string
	Assignee   string
	Reporter   string
	Priority   string
	Components []string
	Labels     []string
}

// Pick returns pool[i mod len(pool)], or "" for an empty pool.
func Pick(pool []string, i int) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[i%len(pool)]
}

// PickNoneOrMultiple selects zero, one or two values from pool for index i.
//
// The second value is pool[(i/Multiple)+1] wrapped to the pool length. It may
// equal the first value; the duplicate is kept.
func PickNoneOrMultiple(pool []string, i int, d Divisors) []string {
	if len(pool) == 0 || d.None <= 0 || i%d.None == 0 {
		return []string{}
	}

	values := []string{Pick(pool, i)}
	if d.Multiple > 0 && i%d.Multiple == 0 {
		values = append(values, Pick(pool, i/d.Multiple+1))
	}
	return values
}

// Summary returns the summary line for issue index i.
func Summary(snippets []string, i int) string {
	return fmt.Sprintf("Issue number %d. %s", i+1, Pick(snippets, i))
}

// Draft builds the issue draft for index i.
func Draft(p Pools, i int) IssueDraft {
	reporter := p.Reporter
	if reporter == "" {
		reporter = DefaultReporter
	}

	return IssueDraft{
		Summary:    Summary(p.Summaries, i),
		IssueType:  Pick(p.IssueTypes, i),
		Assignee:   Pick(p.Assignees, i),
		Reporter:   reporter,
		Priority:   Pick(p.Priorities, i),
		Components: PickNoneOrMultiple(p.Components, i, p.ComponentDivisors),
		Labels:     PickNoneOrMultiple(p.Labels, i, p.LabelDivisors),
	}
}

// Drafts builds drafts for indexes [0, count).
func Drafts(p Pools, count int) []IssueDraft {
	drafts := make([]IssueDraft, 0, count)
	for i := 0; i < count; i++ {
		drafts = append(drafts, Draft(p, i))
	}
	return drafts
}
