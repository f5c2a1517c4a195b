package commands

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List the projects visible to the signed-in user",
	RunE:  runProjects,
}

func init() {
	rootCmd.AddCommand(projectsCmd)
}

func runProjects(cmd *cobra.Command, args []string) error {
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

	projects, err := a.projectSvc.VisibleProjects(ctx, user.Email)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		fmt.Println("No projects yet.")
		return nil
	}

	bold := color.New(color.Bold)
	for i := range projects {
		project := &projects[i]
		bold.Printf("PN%s  %s\n", project.ID, project.Name)

		assignees, err := a.projectSvc.UniqueAssignees(ctx, project)
		if err != nil {
			return err
		}
		names := make([]string, 0, len(assignees))
		for _, assignee := range assignees {
			names = append(names, assignee.Name)
		}
		fmt.Printf("  %d task(s), team: %s\n", len(project.Tasks), joinOrDash(names))
	}
	return nil
}

func joinOrDash(names []string) string {
	if len(names) == 0 {
		return "—"
	}
	out := names[0]
	for _, n := range names[1:] {
		out += ", " + n
	}
	return out
}
