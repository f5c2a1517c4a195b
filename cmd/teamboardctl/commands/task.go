package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"teamboard/collab-core/models"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Inspect and drive the task lifecycle",
}

var taskShowCmd = &cobra.Command{
	Use:   "show <projectID> <taskID>",
	Short: "Show one task with its activity log",
	Args:  cobra.ExactArgs(2),
	RunE:  runTaskShow,
}

var taskStatusCmd = &cobra.Command{
	Use:   "status <projectID> <taskID> <status>",
	Short: "Move a task to another status column",
	Long: `Move a task to another status column (To Do, In Progress, In Review,
Done). Setting Done does not complete the task; run 'task approve' to close
it for good.`,
	Args: cobra.ExactArgs(3),
	RunE: runTaskStatus,
}

var taskApproveCmd = &cobra.Command{
	Use:   "approve <projectID> <taskID>",
	Short: "Approve a task as completed (irreversible)",
	Args:  cobra.ExactArgs(2),
	RunE:  runTaskApprove,
}

var (
	logHours   string
	logMinutes string
)

var taskLogCmd = &cobra.Command{
	Use:   "log <projectID> <taskID>",
	Short: "Log time spent on a task",
	Args:  cobra.ExactArgs(2),
	RunE:  runTaskLog,
}

var taskDeadlineCmd = &cobra.Command{
	Use:   "deadline <projectID> <taskID> <YYYY-MM-DD>",
	Short: "Move a task's deadline",
	Args:  cobra.ExactArgs(3),
	RunE:  runTaskDeadline,
}

func init() {
	taskLogCmd.Flags().StringVar(&logHours, "hours", "0", "Hours to log")
	taskLogCmd.Flags().StringVar(&logMinutes, "minutes", "0", "Minutes to log")

	taskCmd.AddCommand(taskShowCmd, taskStatusCmd, taskApproveCmd, taskLogCmd, taskDeadlineCmd)
	rootCmd.AddCommand(taskCmd)
}

func runTaskShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	task, err := a.tasks.GetTask(ctx, args[0], args[1])
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	bold.Printf("%s  [%s]\n", task.TaskName, task.Status)
	fmt.Printf("  Reporter: %s\n  Assignee: %s\n", task.CreatedBy, task.Assignee)
	fmt.Printf("  Priority: %s  Deadline: %s\n", task.Priority, task.Deadline)
	fmt.Printf("  Logged: %s  Estimate: %s\n", orDash(task.SpentTime), orDash(task.Estimate))
	if task.Completed {
		color.Green("  Completed")
	}
	if len(task.Activity) > 0 {
		bold.Println("  Recent Activity:")
		for i := len(task.Activity) - 1; i >= 0; i-- {
			entry := task.Activity[i]
			fmt.Printf("    %s  %s — %s\n", entry.CreatedAt, entry.UserName, entry.Message)
		}
	}
	return nil
}

func runTaskStatus(cmd *cobra.Command, args []string) error {
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
	if err := a.tasks.ChangeStatus(ctx, args[0], args[1], models.TaskStatus(args[2]), user.Email); err != nil {
		return err
	}
	fmt.Printf("Status updated to %s\n", args[2])
	return nil
}

func runTaskApprove(cmd *cobra.Command, args []string) error {
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
	if err := a.tasks.Approve(ctx, args[0], args[1], user.Email); err != nil {
		return err
	}
	color.Green("Task approved as completed")
	return nil
}

func runTaskLog(cmd *cobra.Command, args []string) error {
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
	if err := a.tasks.LogTime(ctx, args[0], args[1], logHours, logMinutes, user.Email); err != nil {
		return err
	}

	task, err := a.tasks.GetTask(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Printf("Logged. Total spent: %s\n", task.SpentTime)
	return nil
}

func runTaskDeadline(cmd *cobra.Command, args []string) error {
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
	newDate, err := time.Parse("2006-01-02", args[2])
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", args[2], err)
	}
	if err := a.tasks.ChangeDeadline(ctx, args[0], args[1], newDate, user.Email); err != nil {
		return err
	}
	fmt.Printf("Deadline moved to %s\n", newDate.Format("Mon Jan 02 2006"))
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
