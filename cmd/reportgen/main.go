/*
main.go - One-shot report generation CLI

PURPOSE:
  Runs the full pipeline against a local workbook without the HTTP server:
  read sheet, detect date columns, parse holidays, aggregate, export the
  styled report. Useful for scripted monthly runs.

USAGE:
  reportgen generate -i turnos.xlsx -o reporte.xlsx --sheet "Enero" \
      --holidays "01-01-2026, 15-01-2026"

CONFIG FILE (optional, --config):
  identity_columns:           override the identity headers
  non_work_marker:            override the "L" day-off code

EXIT BEHAVIOR:
  Data errors (bad headers, no date columns) print their user-facing message;
  holiday parse warnings are logged and never abort the run.
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/turnos/attendance-engine/excel"
	"github.com/turnos/attendance-engine/schedule"
	"github.com/turnos/attendance-engine/summary"
)

var (
	configPath string
	logger     *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "reportgen",
		Short: "Sunday/holiday attendance report generator",
		Long:  "Computes worked Sundays and holidays per employee from a wide attendance workbook and exports the consolidated report.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger, _ = zap.NewProduction()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Optional config file (identity columns, non-work marker)")
	rootCmd.AddCommand(generateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func generateCmd() *cobra.Command {
	var (
		input    string
		output   string
		sheet    string
		holidays string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the consolidated Sundays/holidays report",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer logger.Sync()

			rules, err := loadRules(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			f, err := os.Open(input)
			if err != nil {
				return fmt.Errorf("failed to open input workbook: %w", err)
			}
			defer f.Close()

			if sheet == "" {
				names, err := excel.SheetNames(f)
				if err != nil {
					return fmt.Errorf("failed to inspect workbook: %w", err)
				}
				if len(names) == 0 {
					return fmt.Errorf("workbook %s has no sheets", input)
				}
				sheet = names[0]
				if _, err := f.Seek(0, 0); err != nil {
					return err
				}
			}

			grid, err := excel.ReadGrid(f, sheet)
			if err != nil {
				return fmt.Errorf("failed to read sheet %q: %w", sheet, err)
			}

			if missing := grid.MissingColumns(rules.IdentityColumns); len(missing) > 0 {
				return fmt.Errorf("missing identity columns: %v", missing)
			}

			dateCols := schedule.DetectDateColumns(grid, rules.IdentityColumns)
			holidaySet, warnings := schedule.ParseHolidays(holidays)
			for _, w := range warnings {
				logger.Warn(w.Message, zap.String("code", w.Code))
			}

			rep, err := summary.Aggregate(grid, rules, dateCols, holidaySet)
			if err != nil {
				return err
			}
			for _, w := range rep.Warnings {
				logger.Warn(w.Message, zap.String("code", w.Code))
			}

			workbook, err := excel.WriteReport(rep)
			if err != nil {
				return fmt.Errorf("failed to export report: %w", err)
			}
			if err := os.WriteFile(output, workbook, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}

			logger.Info("report generated",
				zap.String("input", input),
				zap.String("sheet", sheet),
				zap.String("output", output),
				zap.String("period", rep.Period.String()),
				zap.Int("employees", len(rep.Totals)))
			fmt.Printf("Periodo detectado: %s (%d colaboradores) -> %s\n",
				rep.Period.String(), len(rep.Totals), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Attendance workbook (.xlsx)")
	cmd.Flags().StringVarP(&output, "output", "o", excel.ReportFileName, "Output report path")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet with the data (default: first sheet)")
	cmd.Flags().StringVar(&holidays, "holidays", "", "Holiday dates, comma/semicolon/newline separated")
	cmd.MarkFlagRequired("input")

	return cmd
}

// loadRules returns the default classification rules, overridden by the
// config file when one is given.
func loadRules(path string) (schedule.Rules, error) {
	rules := schedule.DefaultRules()
	if path == "" {
		return rules, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return rules, err
	}
	if cols := v.GetStringSlice("identity_columns"); len(cols) > 0 {
		rules.IdentityColumns = cols
	}
	if marker := v.GetString("non_work_marker"); marker != "" {
		rules.NonWorkMarker = marker
	}
	return rules, nil
}
