package handlers

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/imamik/jiraseed/internal/orchestration"
)

// PlanOptions carries the plan command's flags.
type PlanOptions struct {
	DatasetPath string
	IssueCount  int
	// Project limits the output to one project key.
	Project string
}

// Plan handles the plan command. It prints every issue draft and link the
// dataset produces, one table pair per project.
func Plan(opts PlanOptions, out io.Writer) error {
	ds, err := loadDataset(opts.DatasetPath, opts.IssueCount)
	if err != nil {
		return err
	}
	if opts.Project != "" {
		if _, ok := ds.Project(opts.Project); !ok {
			return fmt.Errorf("project %s is not part of the dataset", opts.Project)
		}
	}

	for _, plan := range orchestration.Plan(ds) {
		if opts.Project != "" && plan.Project.Key != opts.Project {
			continue
		}

		fmt.Fprintf(out, "\n%s (%s): %d issues, %d links\n",
			plan.Project.Key, plan.Project.Name, len(plan.Drafts), len(plan.Links))

		tw := table.NewWriter()
		tw.SetOutputMirror(out)
		tw.AppendHeader(table.Row{"#", "Summary", "Type", "Priority", "Assignee", "Components", "Labels"})
		for i, d := range plan.Drafts {
			tw.AppendRow(table.Row{
				i + 1, d.Summary, d.IssueType, d.Priority, d.Assignee,
				strings.Join(d.Components, ", "), strings.Join(d.Labels, ", "),
			})
		}
		tw.Render()

		if len(plan.Links) == 0 {
			continue
		}
		lw := table.NewWriter()
		lw.SetOutputMirror(out)
		lw.AppendHeader(table.Row{"Inward", "Type", "Outward"})
		for _, l := range plan.Links {
			lw.AppendRow(table.Row{l.InwardKey, l.Type, l.OutwardKey})
		}
		lw.Render()
	}
	return nil
}
