package commands

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var vacationsCmd = &cobra.Command{
	Use:   "vacations [email]",
	Short: "Show vacation tallies and remaining days",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runVacations,
}

func init() {
	rootCmd.AddCommand(vacationsCmd)
}

func runVacations(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	email := ""
	if len(args) == 1 {
		email = args[0]
	} else {
		user, err := a.currentUser(ctx)
		if err != nil {
			return err
		}
		email = user.Email
	}

	tally, err := a.vacations.Tallies(ctx, email)
	if err != nil {
		return err
	}
	remaining, err := a.vacations.RemainingVacationDays(ctx, email)
	if err != nil {
		return err
	}

	color.New(color.Bold).Printf("Vacations — %s\n", email)
	fmt.Printf("  Vacations: %d\n  Sick leave: %d\n  Work remotely: %d\n", tally.Vacation, tally.SickLeave, tally.WorkRemotely)
	fmt.Printf("  Vacation days left: %d\n", remaining)
	return nil
}
