package handlers

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/jiraseed/internal/orchestration"
	"github.com/imamik/jiraseed/internal/provisioning"
)

var (
	colorGreen = lipgloss.Color("#22c55e")
	colorRed   = lipgloss.Color("#ef4444")
	colorBlue  = lipgloss.Color("#3b82f6")
	colorDim   = lipgloss.Color("#6b7280")
	colorWhite = lipgloss.Color("#f9fafb")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	okStyle = lipgloss.NewStyle().
		Foreground(colorGreen)

	failStyle = lipgloss.NewStyle().
			Foreground(colorRed)
)

// renderRunSummary produces the lipgloss-styled summary of a populate run.
func renderRunSummary(target string, result *orchestration.Result, runErr error) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  jiraseed: " + target))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("═", 40)))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("  Entities"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %-14s %8s %8s %10s", "Kind", "Created", "Present", "Recreated")))
	b.WriteString("\n")

	state := result.State
	kinds := state.Kinds()
	if len(kinds) == 0 {
		b.WriteString(dimStyle.Render("  nothing reconciled"))
		b.WriteString("\n")
	}
	for _, kind := range kinds {
		fmt.Fprintf(&b, "  %-14s %8d %8d %10d\n", kind,
			state.Count(kind, provisioning.OutcomeCreated),
			state.Count(kind, provisioning.OutcomePresent),
			state.Count(kind, provisioning.OutcomeRecreated),
		)
	}

	if len(state.LinksCreated) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("  Links"))
		b.WriteString("\n")
		projects := make([]string, 0, len(state.LinksCreated))
		for key := range state.LinksCreated {
			projects = append(projects, key)
		}
		sort.Strings(projects)
		for _, key := range projects {
			fmt.Fprintf(&b, "  %-14s %8d\n", key, state.LinksCreated[key])
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 40)))
	b.WriteString("\n")
	status := okStyle.Render("done")
	if runErr != nil {
		status = failStyle.Render("failed: " + runErr.Error())
	}
	fmt.Fprintf(&b, "  %d phases in %s, %s\n", result.Phases, result.Duration.Round(time.Millisecond), status)

	return b.String()
}
