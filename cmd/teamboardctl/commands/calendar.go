package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var onDate string

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show the signed-in user's calendar",
	Long: `Show upcoming events, or every occurrence on one day with --date.
Recurring events are expanded across the surrounding window.`,
	RunE: runCalendar,
}

func init() {
	calendarCmd.Flags().StringVar(&onDate, "date", "", "Show occurrences on this day (YYYY-MM-DD)")
	rootCmd.AddCommand(calendarCmd)
}

func runCalendar(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	user, err := a.currentUser(ctx)
	if err != nil {
		return err
	}

	if onDate != "" {
		events, err := a.calendar.EventsOn(ctx, user, onDate)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			fmt.Println("No events for this day.")
			return nil
		}
		for _, event := range events {
			fmt.Printf("%s  %s (%s)\n", event.Time, event.Name, event.Category)
		}
		return nil
	}

	events, err := a.calendar.Upcoming(ctx, user)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Println("No upcoming events.")
		return nil
	}
	for _, event := range events {
		fmt.Printf("%s  %s (%s)\n", event.Time, event.Name, event.Category)
	}
	return nil
}
