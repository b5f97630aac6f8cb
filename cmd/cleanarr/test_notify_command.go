package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cleanarr/internal/notifications"
)

func newTestNotifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "test-notify",
		Short: "Send a test notification",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			notifier := notifications.NewService(cfg)
			if !notifications.Enabled(notifier) {
				fmt.Fprintln(cmd.OutOrStdout(), "ntfy topic not configured (notifications.ntfy_topic)")
				return nil
			}
			if err := notifier.TestNotification(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Test notification sent")
			return nil
		},
	}
}
