package testing

import "github.com/imamik/jiraseed/internal/config"

// SingleProjectDataset returns three users and one project without children,
// with five issues.
func SingleProjectDataset() *config.Dataset {
	return NewDatasetBuilder().
		WithProject(config.Project{Key: "UP", Name: "Upstream"}).
		WithAnchor("UP").
		Build()
}

// LinkedDataset returns an anchor project and two linked projects, the second
// starting its links at index 1.
func LinkedDataset(issueCount int) *config.Dataset {
	return NewDatasetBuilder().
		WithIssueCount(issueCount).
		WithProject(config.Project{Key: "UP", Name: "Upstream"}).
		WithProject(config.Project{
			Key:        "FEAT",
			Name:       "Feature",
			Versions:   []string{"1.0.0"},
			Components: []string{"Core", "Backend"},
			Labels:     []string{"backend", "ui"},
		}).
		WithProject(config.Project{
			Key:        "SUP",
			Name:       "Support",
			Components: []string{"Core"},
			LinkStart:  1,
		}).
		WithAnchor("UP").
		Build()
}
