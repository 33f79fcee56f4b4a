// Command capacity-forecast fits per series capacity trends from the daily capacity timeseries
// and the commissioning trend from the analysis report, then writes the predictions document.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	forecaster "github.com/aouyang1/go-capacity-forecaster"
	"github.com/aouyang1/go-capacity-forecaster/report"
	"github.com/aouyang1/go-capacity-forecaster/timedataset"
)

// timeseriesStart drops the sparse early history of the capacity timeseries
var timeseriesStart = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

type config struct {
	timeseries string
	report     string
	out        string
	plot       string
	options    string
	verbose    bool
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	fs := flag.NewFlagSet("capacity-forecast", flag.ContinueOnError)
	fs.SetOutput(stderr)

	cfg := &config{}
	fs.StringVar(&cfg.timeseries, "timeseries", "capacity_timeseries.csv", "daily capacity timeseries csv with a day column")
	fs.StringVar(&cfg.report, "report", "analysis_report.json", "analysis report json with yearly commissioning")
	fs.StringVar(&cfg.out, "out", "predictions.json", "output predictions json")
	fs.StringVar(&cfg.plot, "plot", "", "optional output html chart page")
	fs.StringVar(&cfg.options, "config", "", "optional forecaster options json")
	fs.BoolVar(&cfg.verbose, "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	opt := forecaster.NewDefaultOptions()
	if cfg.options != "" {
		opt, err = forecaster.LoadOptionsFile(cfg.options)
		if err != nil {
			return fmt.Errorf("unable to load options, %w", err)
		}
		slog.Debug("loaded options", "path", cfg.options, "series", len(opt.Series))
	}
	if err := opt.TablePrint(stdout); err != nil {
		return err
	}

	table, err := timedataset.LoadCSV(cfg.timeseries, nil)
	if err != nil {
		return fmt.Errorf("unable to load capacity timeseries, %w", err)
	}
	table, err = table.Since(timeseriesStart)
	if err != nil {
		return fmt.Errorf("unable to restrict capacity timeseries, %w", err)
	}
	slog.Info("loaded capacity timeseries",
		"path", cfg.timeseries,
		"days", table.Len(),
		"years", len(table.Days.Years()),
		"start", table.Days.StartTime().Format(time.DateOnly),
		"end", table.Days.EndTime().Format(time.DateOnly),
	)

	rep, err := report.LoadFile(cfg.report)
	if err != nil {
		return fmt.Errorf("unable to load analysis report, %w", err)
	}

	f, err := forecaster.New(opt)
	if err != nil {
		return err
	}
	preds, err := f.Run(table, rep)
	if err != nil {
		return err
	}
	if err := preds.TablePrint(stdout); err != nil {
		return err
	}

	if err := preds.WriteFile(cfg.out); err != nil {
		return fmt.Errorf("unable to write predictions, %w", err)
	}
	slog.Info("saved predictions", "path", cfg.out, "series", preds.Len(), "skipped", len(preds.Skipped))

	if cfg.plot != "" {
		if err := preds.PlotFile(cfg.plot); err != nil {
			return fmt.Errorf("unable to plot predictions, %w", err)
		}
		slog.Info("saved chart page", "path", cfg.plot)
	}
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		slog.Error("capacity forecast failed", "error", err.Error())
		os.Exit(1)
	}
}
