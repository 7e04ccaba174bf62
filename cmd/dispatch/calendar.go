package main

import (
	"fmt"
	"time"

	"github.com/mark3labs/dispatch/internal/calendar"
	"github.com/mark3labs/dispatch/internal/draft"
	"github.com/mark3labs/dispatch/internal/logger"
	"github.com/mark3labs/dispatch/internal/state"
	"github.com/mark3labs/dispatch/internal/store"
	"github.com/mark3labs/dispatch/internal/tui/schedule"
	"github.com/spf13/cobra"
)

var calendarFlags struct {
	view      string
	date      string
	cancelled bool
}

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Browse scheduled service calls by day, week or month",
	RunE: func(cmd *cobra.Command, args []string) error {
		ui := state.Load(cfg.DataDir)
		view := ui.CalendarView()
		if cmd.Flags().Changed("view") {
			v, err := calendar.ParseView(calendarFlags.view)
			if err != nil {
				return err
			}
			view = v
		}

		var err error
		anchor := time.Now()
		if calendarFlags.date != "" {
			anchor, err = time.ParseInLocation(calendar.DateLayout, calendarFlags.date, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --date %q (want YYYY-MM-DD)", calendarFlags.date)
			}
		}

		ctx := cmd.Context()
		st, cleanup, err := openStore(ctx)
		if err != nil {
			return err
		}
		calls, err := st.ListServiceCalls(ctx, store.Query{OrderBy: draft.FieldStartTime})
		cleanup()
		if err != nil {
			return err
		}

		last, err := schedule.Run(calendarItems(calls, calendarFlags.cancelled), view, anchor, cfg.HourHeight)
		if err != nil {
			return err
		}
		ui.Calendar.View = last.String()
		if err := state.Save(cfg.DataDir, ui); err != nil {
			logger.Warn("Saving UI state: %v", err)
		}
		return nil
	},
}

func init() {
	calendarCmd.Flags().StringVar(&calendarFlags.view, "view", "", "Initial view: day, week or month (default: last used)")
	calendarCmd.Flags().StringVarP(&calendarFlags.date, "date", "d", "", "Date to open at (default: today)")
	calendarCmd.Flags().BoolVar(&calendarFlags.cancelled, "cancelled", false, "Include cancelled calls")
}

// calendarItems maps service calls onto calendar entries titled by customer.
func calendarItems(calls []*store.ServiceCall, includeCancelled bool) []calendar.Item {
	items := make([]calendar.Item, 0, len(calls))
	for _, c := range calls {
		if c.Status == draft.StatusCancelled && !includeCancelled {
			continue
		}
		title := c.Customer
		if c.ProjectSite != "" {
			title += " @ " + c.ProjectSite
		}
		items = append(items, calendar.Item{
			ID:        c.ID,
			Title:     title,
			Date:      c.Date,
			StartTime: c.StartTime,
			Status:    c.Status,
		})
	}
	return items
}
