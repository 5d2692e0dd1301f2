/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/friendsincode/grimnir_planner/internal/clock"
	"github.com/friendsincode/grimnir_planner/internal/models"
	"github.com/friendsincode/grimnir_planner/internal/scheduler"
)

var windowNow string

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Print the dates the next run would plan and the retention cutoff",
	RunE:  runWindow,
}

func init() {
	rootCmd.AddCommand(windowCmd)
	windowCmd.Flags().StringVar(&windowNow, "now", "", "Override the current time")
}

func runWindow(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	loc, _ := clock.LoadLocation(cfg.TimeZone, logger)
	clk, err := clockFor(windowNow, loc)
	if err != nil {
		return err
	}

	dates := clock.Window(clk.Now(), loc, cfg.WindowDays)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Timezone:  %s\n", loc)
	fmt.Fprintf(out, "Retention: keep rows dated %s or later\n", scheduler.RetentionCutoff(dates[0], cfg.RetentionDays))
	for _, d := range dates {
		fmt.Fprintf(out, "  %s %s\n", d.Format(models.DateLayout), d.Weekday())
	}
	return nil
}
