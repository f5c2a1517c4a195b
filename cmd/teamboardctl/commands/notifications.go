package commands

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var markRead bool

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "List the signed-in user's notification feed",
	RunE:  runNotifications,
}

func init() {
	notificationsCmd.Flags().BoolVar(&markRead, "mark-read", false, "Mark every notification as read")
	rootCmd.AddCommand(notificationsCmd)
}

func runNotifications(cmd *cobra.Command, args []string) error {
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

	notifications, err := a.notifications.ForReceiver(ctx, user.Email)
	if err != nil {
		return err
	}
	if len(notifications) == 0 {
		fmt.Println("No notifications to show")
		return nil
	}

	unreadStyle := color.New(color.Bold)
	for _, n := range notifications {
		line := fmt.Sprintf("[%s] %s %s %s  (%s)", n.Type, n.ActorName, n.Message, n.TaskName, n.CreatedAt)
		if n.IsRead {
			fmt.Println(line)
		} else {
			unreadStyle.Println(line)
		}
	}

	if markRead {
		if err := a.notifications.MarkAllRead(ctx, user.Email); err != nil {
			return err
		}
		fmt.Println("All notifications marked as read")
	}
	return nil
}
