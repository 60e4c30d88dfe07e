package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"study-time-allocator/internal/allocation"
	"study-time-allocator/internal/config"
)

func newCalculateCommand(a *app) *cobra.Command {
	var inputPath string
	var week string

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Allocate the weekly study budget across subjects",
		Long: `Reads up to six subjects from a CSV or YAML plan file and shares each day's
study time between them.

CSV files need a header row with a "name" column; the optional columns are
level, current_grade, target_grade, upcoming_assessment and difficulty.
YAML plan files hold a "subjects" list and a "week" map keyed by weekday.

Weekly values are Monday-first and read as hours unless --unit minutes is set.`,
		Example: `  study-time-allocator calculate -i subjects.csv --week 2,2,2,2,1.5,3,3
  study-time-allocator calculate -i plan.yaml --format json --json plan.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runCalculate(cmd, inputPath, week)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Path to a subject CSV or YAML plan file")
	cmd.Flags().StringVar(&week, "week", "", "Comma-separated Monday-first study time per day")
	cmd.Flags().String("unit", "", "Unit of weekly values: hours or minutes")
	cmd.Flags().StringP("format", "f", "", "Output format: table, json or csv")
	cmd.Flags().String("json", "", "Optional path to also write the JSON report")
	cmd.Flags().Bool("explain", false, "Show each subject's priority breakdown")
	_ = cmd.MarkFlagRequired("input")

	_ = a.viper.BindPFlag("input.unit", cmd.Flags().Lookup("unit"))
	_ = a.viper.BindPFlag("output.format", cmd.Flags().Lookup("format"))
	_ = a.viper.BindPFlag("output.json_path", cmd.Flags().Lookup("json"))
	_ = a.viper.BindPFlag("output.explain", cmd.Flags().Lookup("explain"))

	return cmd
}

func (a *app) runCalculate(cmd *cobra.Command, inputPath, weekFlag string) error {
	runID := uuid.NewString()
	logger := a.logger.WithRun(runID).With("input", inputPath)

	plan, warnings, err := loadPlan(inputPath)
	if err != nil {
		return err
	}
	for _, warning := range warnings {
		logger.Warn("input skipped", "detail", warning)
	}

	unit := a.cfg.Input.Unit
	if plan.Unit != "" && !cmd.Flags().Changed("unit") {
		unit = strings.ToLower(strings.TrimSpace(plan.Unit))
		if !slices.Contains(config.ValidUnits(), unit) {
			return fmt.Errorf("plan unit must be one of %s, got %q", strings.Join(config.ValidUnits(), ", "), plan.Unit)
		}
	}

	week := plan.Week
	if weekFlag != "" {
		week, err = parseWeek(weekFlag)
		if err != nil {
			return err
		}
	}
	if week == nil {
		return fmt.Errorf("a weekly budget is required: pass --week or add a week section to the plan file")
	}

	perUnit := (&config.InputConfig{Unit: unit}).MinutesPerUnit()
	minutes := make([]float64, len(week))
	for i, value := range week {
		minutes[i] = value * perUnit
	}

	result := allocation.Calculate(plan.Subjects, minutes)
	logger.Info("allocation calculated",
		"subjects", len(plan.Subjects),
		"unit", unit,
		"total_minutes", result.TotalMinutes())
	logger.Debug("priorities", "values", result.Priorities())

	report := buildReport(runID, result)
	out := cmd.OutOrStdout()

	if len(warnings) > 0 && a.cfg.Output.Format == config.FormatTable {
		printWarnings(out, warnings)
	}

	switch a.cfg.Output.Format {
	case config.FormatJSON:
		if err := encodeJSON(out, report); err != nil {
			return err
		}
	case config.FormatCSV:
		if err := writeCSV(out, result); err != nil {
			return err
		}
	default:
		printTable(out, result)
		fmt.Fprintln(out, result.Summary())
	}

	// json reports always carry the breakdown
	if a.cfg.Output.Explain && a.cfg.Output.Format == config.FormatTable {
		printBreakdown(out, plan.Subjects, result)
	}

	if path := a.cfg.Output.JSONPath; path != "" {
		if err := writeJSON(path, report); err != nil {
			return err
		}
		logger.Info("json report written", "path", path)
		if a.cfg.Output.Format == config.FormatTable {
			fmt.Fprintf(out, "\nJSON written to %s\n", path)
		}
	}
	return nil
}
