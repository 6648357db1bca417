package cmd

import (
	"context"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-reminder/internal/logger"
	"github.com/oshokin/alarm-reminder/internal/service/instance"
	"github.com/oshokin/alarm-reminder/internal/service/remind"
)

// atCmd runs a single reminder without the form.
//
//nolint:gochecknoglobals // Cobra commands are package-level by convention.
var atCmd = &cobra.Command{
	Use:   "at <date and time>",
	Short: "Wait for the given time in the foreground and alert.",
	Long: `Arms one reminder and waits in the foreground, logging the time left every second.

When the time is reached the notification is shown, the tone is played and the
command exits. Interrupting the command (ctrl+c) clears the reminder.`,
	Example: `  alarm-reminder at 18:30
  alarm-reminder at 2026-12-31 23:59`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		// Setup graceful shutdown handling.
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer stop()

		cfg, err := loadSettings()
		if err != nil {
			return err
		}

		warnAboutOtherInstances(ctx)

		return remind.Run(ctx, &remind.Options{
			Config: cfg,
			Target: strings.Join(args, " "),
			Mute:   mute,
		})
	},
}

// warnAboutOtherInstances logs when another reminder process is running.
func warnAboutOtherInstances(ctx context.Context) {
	pids, err := instance.Others(nil, "")
	if err != nil {
		logger.DebugKV(ctx, "Unable to list processes", "error", err)
		return
	}

	if len(pids) > 0 {
		logger.WarnKV(ctx, "Another reminder is already running, only one reminder is kept per process", "pids", pids)
	}
}
