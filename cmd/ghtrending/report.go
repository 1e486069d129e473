package main

import (
	"fmt"

	"github.com/abdulachik/ghtrending/internal/app"
	"github.com/abdulachik/ghtrending/internal/config"
	"github.com/abdulachik/ghtrending/internal/render"
	"github.com/abdulachik/ghtrending/internal/trending"
	"github.com/spf13/cobra"
)

var (
	reportJSON    bool
	reportNoColor bool
)

func init() {
	rootCmd.Flags().BoolVar(&reportJSON, "json", false, "print the result envelope as JSON")
	rootCmd.Flags().BoolVar(&reportNoColor, "no-color", false, "disable colored output")
}

func runReport(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	r := render.NewRenderer(out, render.StyleFor(out, cfg.NoColor || reportNoColor))

	since := trending.Daily
	if len(args) == 1 {
		since, err = trending.ParseTimeRange(args[0])
		if err != nil {
			r.InvalidOption(args[0])
			return errReported
		}
	}

	a, err := app.New(cfg)
	if err != nil {
		return err
	}

	if reportJSON {
		result := a.Service.GetTrendingData(cmd.Context(), since)
		if err := render.WriteJSON(out, result); err != nil {
			return err
		}
		if !result.Success {
			return errReported
		}
		return nil
	}

	r.Header(since)
	r.Progress()

	result := a.Service.GetTrendingData(cmd.Context(), since)

	r.ClearProgress()

	switch {
	case !result.Success:
		r.Failure(result.ErrorMessage())
		return errReported
	case len(result.Entries) == 0:
		r.Empty()
		return errReported
	}

	r.Entries(result.Entries)
	return nil
}
