package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var messageCmd = &cobra.Command{
	Use:   "message <email> <text...>",
	Short: "Send a direct message",
	Long: `Send a direct message to another user. The direct conversation is
created on first use and reused afterwards.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runMessage,
}

func init() {
	rootCmd.AddCommand(messageCmd)
}

func runMessage(cmd *cobra.Command, args []string) error {
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

	conversation, err := a.conversations.EnsureDirect(ctx, user.Email, args[0])
	if err != nil {
		return err
	}
	if _, err := a.conversations.SendText(ctx, conversation.ID, user.Email, strings.Join(args[1:], " ")); err != nil {
		return err
	}

	fmt.Printf("Sent to %s (conversation %s)\n", args[0], conversation.ID)
	return nil
}
