package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/app"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/config"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/report"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/pkg/logger"
	"github.com/urfave/cli/v2"
)

func initApp(c *cli.Context) error {
	cfg := config.Load()
	if dir := c.String("data-dir"); dir != "" {
		cfg.Data.Dir = dir
	}
	logger.SetLevel(c.String("log-level"))

	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	c.App.Metadata[appKeyName] = a
	return nil
}

func closeApp(c *cli.Context) error {
	if a, ok := c.App.Metadata[appKeyName].(*app.App); ok && a != nil {
		return a.Close()
	}
	return nil
}

const appKeyName = "app"

func getApp(c *cli.Context) *app.App {
	return c.App.Metadata[appKeyName].(*app.App)
}

func main() {
	cliApp := &cli.App{
		Name:     "marketmind",
		Usage:    "Operate the MarketMind retail intelligence backend",
		Metadata: map[string]interface{}{},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "data-dir",
				Usage:   "Directory containing sales, inventory, reviews and pricing tables",
				EnvVars: []string{"DATA_DIR"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: initApp,
		After:  closeApp,
		Commands: []*cli.Command{
			{
				Name:   "verify",
				Usage:  "Check that the datasets load and credentials are configured",
				Action: runVerify,
			},
			{
				Name:   "sync",
				Usage:  "Pull the four dataset tables from the configured DATA_SOURCE",
				Action: runSync,
			},
			{
				Name:  "export",
				Usage: "Write a report workbook to EXPORT_DIR",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "type",
						Usage:    "Report type: forecast, inventory, sentiment or pricing",
						Required: true,
					},
				},
				Action: runExport,
			},
			{
				Name:   "forecast",
				Usage:  "Print the 7-day demand forecast as JSON",
				Action: runForecast,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("marketmind failed")
	}
}

func runVerify(c *cli.Context) error {
	checks := getApp(c).Verify(c.Context)

	for _, check := range checks {
		status := "PASS"
		switch {
		case !check.Passed:
			status = "FAIL"
		case check.Warning:
			status = "WARN"
		}
		fmt.Fprintf(c.App.Writer, "[%s] %-18s %s\n", status, check.Name, check.Detail)
	}

	if !app.AllPassed(checks) {
		return cli.Exit("some checks failed", 1)
	}
	fmt.Fprintln(c.App.Writer, "All checks passed.")
	return nil
}

func runSync(c *cli.Context) error {
	a := getApp(c)
	paths, err := a.SyncDatasets(c.Context)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		logger.Log.Info().Str("source", a.Config.Data.Source).Msg("Nothing to sync")
		return nil
	}
	for _, p := range paths {
		fmt.Fprintln(c.App.Writer, p)
	}
	return nil
}

func runExport(c *cli.Context) error {
	kind, err := report.ParseKind(c.String("type"))
	if err != nil {
		return err
	}

	path, err := getApp(c).Exporter.Excel(c.Context, kind)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, path)
	return nil
}

func runForecast(c *cli.Context) error {
	forecast, err := getApp(c).Dashboard.DemandForecast(c.Context)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(forecast)
}
