package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"study-time-allocator/internal/allocation"
)

type planReport struct {
	GeneratedAt  string          `json:"generated_at"`
	RunID        string          `json:"run_id"`
	Summary      string          `json:"summary"`
	TotalMinutes float64         `json:"total_minutes"`
	Columns      []string        `json:"columns"`
	Rows         []subjectRecord `json:"rows"`
}

type subjectRecord struct {
	Name      string               `json:"name"`
	Days      []string             `json:"days"`
	Minutes   []int64              `json:"minutes"`
	Priority  float64              `json:"priority"`
	Share     float64              `json:"share"`
	Breakdown allocation.Breakdown `json:"breakdown"`
}

func buildReport(runID string, result *allocation.Result) planReport {
	rows := result.Rows()
	minutes := result.Minutes()
	ratios := result.Ratios()
	breakdowns := result.Breakdowns()

	records := make([]subjectRecord, 0, len(rows))
	for i, row := range rows {
		records = append(records, subjectRecord{
			Name:      row.DisplayName,
			Days:      row.Days,
			Minutes:   minutes[i],
			Priority:  breakdowns[i].Priority,
			Share:     ratios[i],
			Breakdown: breakdowns[i],
		})
	}

	return planReport{
		GeneratedAt:  time.Now().Format(time.RFC3339),
		RunID:        runID,
		Summary:      result.Summary(),
		TotalMinutes: result.TotalMinutes(),
		Columns:      allocation.ColumnNames[:],
		Rows:         records,
	}
}

func encodeJSON(w io.Writer, report planReport) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("unable to write JSON output: %w", err)
	}
	return nil
}

func writeJSON(path string, report planReport) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create JSON output: %w", err)
	}
	defer file.Close()

	return encodeJSON(file, report)
}

func writeCSV(w io.Writer, result *allocation.Result) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(allocation.ColumnNames[:]); err != nil {
		return fmt.Errorf("unable to write CSV output: %w", err)
	}
	if err := writer.WriteAll(result.Table()); err != nil {
		return fmt.Errorf("unable to write CSV output: %w", err)
	}
	return nil
}

func printTable(w io.Writer, result *allocation.Result) {
	renderer := lipgloss.NewRenderer(w)
	headerStyle := renderer.NewStyle().Bold(true).Padding(0, 1)
	nameStyle := renderer.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := renderer.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(renderer.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(allocation.ColumnNames[:]...).
		Rows(result.Table()...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return nameStyle
			default:
				return cellStyle
			}
		})

	fmt.Fprintln(w, t.Render())
}

func printWarnings(w io.Writer, warnings []string) {
	fmt.Fprintln(w, "Warnings:")
	for _, warning := range warnings {
		fmt.Fprintf(w, "- %s\n", warning)
	}
	fmt.Fprintln(w)
}

func printBreakdown(w io.Writer, subjects []allocation.Subject, result *allocation.Result) {
	title := cases.Title(language.English)
	rows := result.Rows()
	ratios := result.Ratios()
	breakdowns := result.Breakdowns()

	fmt.Fprintln(w, "\nPriority Breakdown")
	fmt.Fprintln(w, strings.Repeat("-", 18))
	for i, row := range rows {
		var s allocation.Subject
		if i < len(subjects) {
			s = subjects[i]
		}

		level := allocation.ParseLevel(s.Level).String()
		if level == "" {
			level = "-"
		}
		difficulty := "-"
		switch tier, state := allocation.ParseDifficulty(s.Difficulty); state {
		case allocation.FieldParsed:
			difficulty = tier.String()
		case allocation.FieldUnparseable:
			difficulty = title.String(strings.ToLower(s.Difficulty)) + " (unrecognized)"
		}

		b := breakdowns[i]
		fmt.Fprintf(w, "%d. %s | Level: %s | Difficulty: %s | Priority: %.2f | Share: %.1f%%\n",
			i+1, row.DisplayName, level, difficulty, b.Priority, ratios[i]*100)
		fmt.Fprintf(w, "   base %.2f + level %.2f + grade %.2f + assessment %.2f + difficulty %.2f\n",
			b.Base, b.Level, b.GradeGap, b.Assessment, b.Difficulty)
	}
}
