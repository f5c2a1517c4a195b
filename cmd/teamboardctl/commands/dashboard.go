package commands

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"teamboard/collab-core/models"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the dashboard summary for the signed-in user",
	RunE:  runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
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

	summary, err := a.dashboard.Summary(ctx, user)
	if err != nil {
		return err
	}

	header := color.New(color.FgCyan, color.Bold)
	dim := color.New(color.Faint)

	header.Printf("Dashboard — %s\n\n", user.DisplayName())

	header.Println("Nearest Events")
	if len(summary.Events) == 0 {
		dim.Println("  No upcoming events.")
	}
	for _, event := range summary.Events {
		fmt.Printf("  %s  %s (%s)\n", event.Date, event.Name, event.Category)
	}

	header.Println("\nWorkload")
	for _, member := range summary.Members {
		fmt.Printf("  %-24s %-18s %s\n", member.Name, member.Position, member.Level)
	}

	header.Println("\nProjects")
	for _, project := range summary.Projects {
		active := 0
		for _, task := range project.Tasks {
			if task.Status != models.StatusDone {
				active++
			}
		}
		fmt.Printf("  PN%s  %s — %d task(s), %d active\n", project.ID, project.Name, len(project.Tasks), active)
	}

	header.Println("\nActivity Stream")
	if len(summary.Activities) == 0 {
		dim.Println("  No recent activities.")
	}
	for _, entry := range summary.Activities {
		fmt.Printf("  %s  %s\n", entry.CreatedAt, entry.Message)
	}

	return nil
}
