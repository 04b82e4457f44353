package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"gradebook/internal/domain"
	"gradebook/internal/stats"
)

var (
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
)

// colorEnabled honors the configured color mode. lipgloss already degrades on
// dumb terminals, so only the explicit "never" needs handling.
func colorEnabled() bool {
	return cfg == nil || cfg.Output.Color != "never"
}

func renderOK(msg string) string {
	if !colorEnabled() {
		return msg
	}
	return okStyle.Render(msg)
}

func renderWarn(msg string) string {
	if !colorEnabled() {
		return msg
	}
	return warnStyle.Render(msg)
}

func renderError(err error) string {
	msg := "Error: " + err.Error()
	if !colorEnabled() {
		return msg
	}
	return errStyle.Render(msg)
}

func renderTitle(msg string) string {
	if !colorEnabled() {
		return msg
	}
	return titleStyle.Render(msg)
}

// renderRecordLine renders a one-line confirmation for a mutated record
func renderRecordLine(verb string, rec domain.Record) string {
	if avg, ok := rec.Average(); ok {
		return renderOK(fmt.Sprintf("%s %s (average %.2f, %s)",
			verb, rec.Name, avg, domain.BandFor(avg)))
	}
	return renderOK(fmt.Sprintf("%s %s (no scores yet)", verb, rec.Name))
}

// renderRoster renders records as a table: name, one column per subject,
// average, and performance band.
func renderRoster(records []domain.Record) string {
	if len(records) == 0 {
		return renderWarn("No students found.")
	}

	roster, err := domain.RosterOf(records)
	if err != nil {
		// Records out of a store are already valid; fall back to a count.
		return renderWarn(fmt.Sprintf("%d records", len(records)))
	}
	subjects := roster.Subjects()

	headers := append([]string{"Name"}, subjects...)
	headers = append(headers, "Average", "Performance")

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow && colorEnabled() {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...)

	for _, rec := range records {
		row := make([]string, 0, len(headers))
		row = append(row, rec.Name)
		for _, subject := range subjects {
			if score, ok := rec.Score(subject); ok {
				row = append(row, strconv.FormatFloat(score, 'f', 2, 64))
			} else {
				row = append(row, "")
			}
		}
		if avg, ok := rec.Average(); ok {
			row = append(row, fmt.Sprintf("%.2f", avg), string(domain.BandFor(avg)))
		} else {
			row = append(row, "", "")
		}
		t.Row(row...)
	}

	return t.Render()
}

// renderSummary renders a statistics block
func renderSummary(title string, summary *stats.Summary) string {
	var b strings.Builder
	b.WriteString(renderTitle(title))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Scores  : %d\n", summary.Count)
	fmt.Fprintf(&b, "Average : %.2f\n", summary.Average)
	fmt.Fprintf(&b, "Median  : %.2f\n", summary.Median)
	fmt.Fprintf(&b, "Highest : %.2f\n", summary.Max)
	fmt.Fprintf(&b, "Lowest  : %.2f", summary.Min)
	return b.String()
}
