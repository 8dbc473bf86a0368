// Package observability provides formatted terminal output for the CLI.
package observability

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/academic-tracker/internal/analytics"
	"github.com/jonathan/academic-tracker/internal/grading"
	"github.com/jonathan/academic-tracker/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxSemestersToShow caps the semester list in the standing box
	maxSemestersToShow = 8
)

// Printer handles formatted output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// PrintJSON writes v as indented JSON
func (p *Printer) PrintJSON(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintSemester outputs one semester with its course table.
func (p *Printer) PrintSemester(s *types.Semester) {
	if s == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ID:       %s\n", s.ID))
	sb.WriteString(fmt.Sprintf("Recorded: %s\n", s.Date))
	sb.WriteString(fmt.Sprintf("GPA:      %.2f   Credits: %g\n\n", s.GPA, s.TotalCredits))

	sb.WriteString(fmt.Sprintf("%-28s %7s %6s %6s\n", "Course", "Credits", "Grade", "Points"))
	for _, c := range s.Courses {
		sb.WriteString(fmt.Sprintf("%-28s %7g %6s %6.2f\n", truncate(c.Name, 28), c.Credits, c.Grade, c.GradePoint))
	}

	p.printBox(strings.ToUpper(s.Name), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSemesters outputs a one-line summary per semester.
func (p *Printer) PrintSemesters(semesters []types.Semester) {
	if len(semesters) == 0 {
		p.printBox("SEMESTERS", "No semesters recorded yet.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-3s %-24s %7s %5s  %s\n", "#", "Semester", "Credits", "GPA", "ID"))
	for i, s := range semesters {
		sb.WriteString(fmt.Sprintf("%-3d %-24s %7g %5.2f  %s\n", i+1, truncate(s.Name, 24), s.TotalCredits, s.GPA, shortID(s.ID)))
	}

	p.printBox(fmt.Sprintf("SEMESTERS (%d)", len(semesters)), strings.TrimSuffix(sb.String(), "\n"))
}

// shortID keeps list rows inside the box; full ids are shown by PrintSemester.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// PrintStanding outputs the dashboard figures and the most recent semesters.
func (p *Printer) PrintStanding(st *analytics.Standing, semesters []types.Semester) {
	if st == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("CGPA:          %.2f / %.1f\n", st.CGPA, st.Scale))
	sb.WriteString(fmt.Sprintf("Class:         %s\n", st.Class.Label))
	sb.WriteString(fmt.Sprintf("Total credits: %g\n", st.TotalCredits))
	sb.WriteString(fmt.Sprintf("Semesters:     %d\n", st.SemesterCount))
	if st.SemesterCount > 0 {
		sb.WriteString(fmt.Sprintf("Latest GPA:    %.2f\n", st.LatestGPA))
	}

	if len(semesters) > 0 {
		sb.WriteString("\nRecent semesters:\n")
		start := max(len(semesters)-maxSemestersToShow, 0)
		for _, s := range semesters[start:] {
			sb.WriteString(fmt.Sprintf("  • %-30s %5.2f\n", truncate(s.Name, 30), s.GPA))
		}
		if start > 0 {
			sb.WriteString(fmt.Sprintf("  ... and %d earlier\n", start))
		}
	}

	p.printBox("ACADEMIC STANDING", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalytics outputs highest, lowest and average GPA with the trend.
func (p *Printer) PrintAnalytics(sum *analytics.Summary) {
	if sum == nil {
		return
	}
	if sum.Count == 0 {
		p.printBox("PERFORMANCE", "No semesters recorded yet.")
		return
	}

	trend := map[string]string{
		analytics.TrendImproving: "↑ improving",
		analytics.TrendDeclining: "↓ declining",
		analytics.TrendStable:    "→ stable",
	}[sum.Trend]

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Semesters:   %d\n", sum.Count))
	sb.WriteString(fmt.Sprintf("Highest GPA: %.2f\n", sum.Highest))
	sb.WriteString(fmt.Sprintf("Lowest GPA:  %.2f\n", sum.Lowest))
	sb.WriteString(fmt.Sprintf("Average GPA: %.2f\n", sum.Average))
	sb.WriteString(fmt.Sprintf("Trend:       %s", trend))

	p.printBox("PERFORMANCE", sb.String())
}

// PrintGoal outputs a goal projection.
func (p *Printer) PrintGoal(goal *grading.Goal, target, remaining float64) {
	if goal == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Target CGPA:       %.2f\n", target))
	sb.WriteString(fmt.Sprintf("Remaining credits: %g\n\n", remaining))
	sb.WriteString(fmt.Sprintf("Required GPA:      %.2f\n", goal.Required))
	sb.WriteString(fmt.Sprintf("Difficulty:        %s", goal.Difficulty))
	switch {
	case !goal.Achievable:
		sb.WriteString("\n\nThe target cannot be reached on this grading scale.")
	case goal.Required <= 0:
		sb.WriteString("\n\nThe target is already secured.")
	}

	p.printBox("GOAL PROJECTION", sb.String())
}

// PrintSettings outputs the current settings and the active grade table.
func (p *Printer) PrintSettings(settings *types.AppSettings) {
	if settings == nil {
		return
	}

	scale := grading.ScaleFor(settings.GradingScale)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Grading scale: %s\n", scale))
	sb.WriteString(fmt.Sprintf("Theme:         %s\n\n", settings.Theme))
	sb.WriteString("Grade points:\n")
	for _, grade := range scale.Grades() {
		points, _ := scale.Points(grade)
		sb.WriteString(fmt.Sprintf("  %-3s %.1f\n", grade, points))
	}

	p.printBox("SETTINGS", strings.TrimSuffix(sb.String(), "\n"))
}
