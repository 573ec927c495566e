package config

import (
	"regexp"

	"github.com/imamik/jiraseed/internal/generator"
)

// projectKeyPattern mirrors Jira's default project key rule.
var projectKeyPattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]{1,9}$`)

// Validate checks the dataset for errors that would otherwise surface halfway
// through a run.
func (d *Dataset) Validate() error {
	if d.IssueCount < 0 {
		return invalid("issueCount", "must not be negative, got %d", d.IssueCount)
	}
	if d.IssueCount > 0 {
		if len(d.Summaries) == 0 {
			return invalid("summaries", "must not be empty")
		}
		if len(d.IssueTypes) == 0 {
			return invalid("issueTypes", "must not be empty")
		}
		if len(d.Priorities) == 0 {
			return invalid("priorities", "must not be empty")
		}
	}

	if err := validateDivisors("componentPolicy", d.ComponentPolicy); err != nil {
		return err
	}
	if err := validateDivisors("labelPolicy", d.LabelPolicy); err != nil {
		return err
	}

	if err := d.validateUsers(); err != nil {
		return err
	}
	return d.validateProjects()
}

func validateDivisors(field string, div generator.Divisors) error {
	if div.None <= 0 {
		return invalid(field+".none", "must be positive, got %d", div.None)
	}
	if div.Multiple <= 0 {
		return invalid(field+".multiple", "must be positive, got %d", div.Multiple)
	}
	return nil
}

func (d *Dataset) validateUsers() error {
	if len(d.Users) == 0 {
		return invalid("users", "at least one user is required as assignee")
	}
	seen := make(map[string]bool, len(d.Users))
	for i, u := range d.Users {
		if u.Username == "" {
			return invalid("users", "entry %d has no username", i)
		}
		if seen[u.Username] {
			return invalid("users", "duplicate username %q", u.Username)
		}
		seen[u.Username] = true
	}
	return nil
}

func (d *Dataset) validateProjects() error {
	if len(d.Projects) == 0 {
		return invalid("projects", "at least one project is required")
	}

	seen := make(map[string]bool, len(d.Projects))
	for _, p := range d.Projects {
		if !projectKeyPattern.MatchString(p.Key) {
			return invalid("projects", "invalid project key %q", p.Key)
		}
		if seen[p.Key] {
			return invalid("projects", "duplicate project key %q", p.Key)
		}
		if p.Name == "" {
			return invalid("projects", "project %s has no name", p.Key)
		}
		if p.LinkStart < 0 {
			return invalid("projects", "project %s has negative linkStart %d", p.Key, p.LinkStart)
		}
		if d.Anchor != "" && p.Key != d.Anchor && !seen[d.Anchor] {
			if _, ok := d.Project(d.Anchor); ok {
				return invalid("anchor", "anchor project %s must be listed before %s", d.Anchor, p.Key)
			}
		}
		seen[p.Key] = true
	}

	if d.Anchor != "" && !seen[d.Anchor] {
		return invalid("anchor", "unknown project %q", d.Anchor)
	}
	if d.Anchor != "" && d.LinkType == "" {
		return invalid("linkType", "must not be empty when an anchor is set")
	}
	return nil
}
