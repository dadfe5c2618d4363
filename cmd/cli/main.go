package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tsinsight/adapters/ingest"
	"tsinsight/app"
	"tsinsight/domain/arima"
	"tsinsight/domain/series"
	"tsinsight/ports"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tsinsight",
		Short: "ARIMA model identification and forecasting for time series files",
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newForecastCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type engineFlags struct {
	maxP         int
	maxQ         int
	maxD         int
	nModels      int
	significance float64
	alpha        float64
	noAutoDiff   bool
}

func (f *engineFlags) register(cmd *cobra.Command) {
	def := arima.DefaultConfig()
	cmd.Flags().IntVar(&f.maxP, "max-p", def.MaxP, "Maximum AR order to consider")
	cmd.Flags().IntVar(&f.maxQ, "max-q", def.MaxQ, "Maximum MA order to consider")
	cmd.Flags().IntVar(&f.maxD, "max-d", def.MaxD, "Maximum differencing order")
	cmd.Flags().IntVar(&f.nModels, "n-models", def.NModels, "Number of candidate models to evaluate")
	cmd.Flags().Float64Var(&f.significance, "significance", def.SignificanceLevel, "Significance level for stationarity and lag tests")
	cmd.Flags().Float64Var(&f.alpha, "alpha", def.Alpha, "Alpha for forecast confidence intervals")
	cmd.Flags().BoolVar(&f.noAutoDiff, "no-auto-diff", false, "Disable automatic differencing")
}

func (f *engineFlags) config() arima.Config {
	cfg := arima.DefaultConfig()
	cfg.MaxP = f.maxP
	cfg.MaxQ = f.maxQ
	cfg.MaxD = f.maxD
	cfg.NModels = f.nModels
	cfg.SignificanceLevel = f.significance
	cfg.Alpha = f.alpha
	cfg.AutoDiff = !f.noAutoDiff
	return cfg
}

type ingestFlags struct {
	valueColumn string
	dateColumn  string
	dateFormat  string
}

func (f *ingestFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.valueColumn, "value-column", "", "Column holding observations (default: positional)")
	cmd.Flags().StringVar(&f.dateColumn, "date-column", "", "Column holding timestamps")
	cmd.Flags().StringVar(&f.dateFormat, "date-format", "", "Go layout for parsing dates (default 2006-01-02)")
}

func (f *ingestFlags) load(path string) (series.Series, error) {
	reader, err := ingest.ReaderFor(path)
	if err != nil {
		return series.Series{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		return series.Series{}, err
	}
	defer file.Close()

	return reader.Read(file, ports.ReadOptions{
		ValueColumn: f.valueColumn,
		DateColumn:  f.dateColumn,
		DateFormat:  f.dateFormat,
	})
}

func newAnalyzeCmd() *cobra.Command {
	var eng engineFlags
	var ing ingestFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Identify ARIMA models for a series file (CSV, Excel or JSON)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := ing.load(args[0])
			if err != nil {
				return err
			}

			report, err := app.NewInsightService().Analyze(context.Background(), data, eng.config())
			if err != nil {
				return err
			}

			if asJSON {
				return json.NewEncoder(os.Stdout).Encode(report)
			}
			printReport(report)
			return nil
		},
	}

	eng.register(cmd)
	ing.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the full report as JSON")
	return cmd
}

func newForecastCmd() *cobra.Command {
	var eng engineFlags
	var ing ingestFlags
	var steps int

	cmd := &cobra.Command{
		Use:   "forecast <file>",
		Short: "Identify the best model and forecast future values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := ing.load(args[0])
			if err != nil {
				return err
			}

			service := app.NewInsightService()
			cfg := eng.config()
			report, err := service.Analyze(context.Background(), data, cfg)
			if err != nil {
				return err
			}

			best := report.Best()
			result, err := service.Forecast(data, best.Estimation, steps, cfg.Alpha)
			if err != nil {
				return err
			}

			fmt.Printf("Model: ARIMA%s  AIC=%.2f\n\n", formatOrder(best.Order), best.Fit.AIC)
			fmt.Printf("%-6s %12s %12s %12s\n", "step", "forecast", "lower", "upper")
			for i := range result.PointForecast {
				fmt.Printf("%-6d %12.4f %12.4f %12.4f\n",
					i+1, result.PointForecast[i], result.LowerBound[i], result.UpperBound[i])
			}
			return nil
		},
	}

	eng.register(cmd)
	ing.register(cmd)
	cmd.Flags().IntVar(&steps, "steps", 10, "Forecast horizon")
	return cmd
}

func printReport(report arima.AnalysisReport) {
	s := report.Stationarity
	fmt.Printf("Observations: %d  mean=%.4f  std=%.4f\n",
		report.SeriesSummary.Count, report.SeriesSummary.Mean, report.SeriesSummary.StdDev)
	fmt.Printf("Differencing: d=%d", s.DifferencingOrder)
	if s.MaxDiffExceeded {
		fmt.Printf("  (still non-stationary at the differencing cap)")
	}
	fmt.Println()
	fmt.Printf("ACF pattern:  %s\n", formatPattern(report.Autocorrelation.ACFPattern))
	fmt.Printf("PACF pattern: %s\n\n", formatPattern(report.Autocorrelation.PACFPattern))

	fmt.Printf("%-14s %10s %10s %8s %12s\n", "model", "AIC", "BIC", "R2", "Ljung-Box p")
	for _, r := range report.Reports {
		fmt.Printf("%-14s %10.2f %10.2f %8.3f %12.4f\n",
			"ARIMA"+formatOrder(r.Order), r.Fit.AIC, r.Fit.BIC, r.Fit.RSquared, r.Residuals.LjungBoxPValue)
	}
	for _, sk := range report.Skipped {
		fmt.Printf("%-14s skipped: %s\n", "ARIMA"+formatOrder(sk.Order), sk.Reason)
	}
}

func formatOrder(o arima.Order) string {
	return fmt.Sprintf("(%d,%d,%d)", o.P, o.D, o.Q)
}

func formatPattern(p arima.Pattern) string {
	if p.Kind == arima.PatternCutoff {
		return fmt.Sprintf("cutoff at lag %d", p.CutoffLag)
	}
	return strings.ReplaceAll(string(p.Kind), "_", " ")
}
