package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/vocato/internal/bootstrap"
	"github.com/at-ishikawa/vocato/internal/notification"
	"github.com/at-ishikawa/vocato/internal/study"
)

func newNotifyCommand() *cobra.Command {
	var hour, minute int
	var once bool
	command := &cobra.Command{
		Use:   "notify",
		Short: "Remind you every day when words are due",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			deps, err := openDependencies(ctx)
			if err != nil {
				return err
			}

			location, err := deps.cfg.Notification.Location()
			if err != nil {
				return errors.Join(
					fmt.Errorf("invalid notification timezone %q: %w", deps.cfg.Notification.Timezone, err),
					deps.Close(),
				)
			}

			app := bootstrap.New()
			app.AddShutdownHook(func(ctx context.Context) error {
				return deps.Close()
			})
			reminder := notification.NewReminder(
				location,
				study.NewQueueBuilder(deps.words, deps.clock),
				notification.NewConsoleNotifier(cmd.OutOrStdout()),
			)

			if once {
				return app.Run(ctx, reminder.Remind)
			}

			if !cmd.Flags().Changed("hour") {
				hour = deps.cfg.Notification.Hour
			}
			if !cmd.Flags().Changed("minute") {
				minute = deps.cfg.Notification.Minute
			}
			if err := reminder.ScheduleDaily(hour, minute); err != nil {
				return errors.Join(fmt.Errorf("reminder.ScheduleDaily() > %w", err), deps.Close())
			}

			return app.Run(ctx, func(ctx context.Context) error {
				reminder.Start()
				app.AddShutdownHook(func(ctx context.Context) error {
					reminder.CancelAll()
					reminder.Stop()
					return nil
				})
				if next, ok := reminder.NextRun(); ok {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Next reminder at %s. Press Ctrl+C to stop.\n", next.Format(time.DateTime))
				}
				<-ctx.Done()
				return nil
			})
		},
	}
	command.Flags().IntVar(&hour, "hour", 0, "hour of the daily reminder, defaults to the configured one")
	command.Flags().IntVar(&minute, "minute", 0, "minute of the daily reminder, defaults to the configured one")
	command.Flags().BoolVar(&once, "once", false, "check for due words once and exit")
	return command
}
