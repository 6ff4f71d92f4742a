package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/skynet2/whatsapp-finance-assistant/pkg/reminders"
)

const dateLayout = "2006-01-02"

type App struct {
	Sweeper  Sweeper
	Location *time.Location
	Schedule string
	Now      func() time.Time
}

// SetupFunc builds the sweep dependencies. It runs only once a command is chosen so
// --help never touches the database.
type SetupFunc func(ctx context.Context) (*App, error)

func NewRootCommand(setup SetupFunc) *cobra.Command {
	root := &cobra.Command{
		Use:           "reminders",
		Short:         "Recurring bill reminder sweep",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCommand(setup), newScheduleCommand(setup))

	return root
}

func newRunCommand(setup SetupFunc) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the sweep once and print the counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := setup(cmd.Context())
			if err != nil {
				return err
			}

			now, err := sweepTime(app, date)
			if err != nil {
				return err
			}

			result, err := app.Sweeper.Run(cmd.Context(), now)
			if err != nil {
				return err
			}

			printResult(cmd.OutOrStdout(), now.In(app.Location), result)

			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day to sweep as YYYY-MM-DD, defaults to today")

	return cmd
}

func newScheduleCommand(setup SetupFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Run the sweep on REMINDER_SCHEDULE until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := setup(cmd.Context())
			if err != nil {
				return err
			}

			return Schedule(cmd.Context(), app)
		},
	}
}

// Schedule blocks until ctx is done. A running sweep is allowed to finish.
func Schedule(ctx context.Context, app *App) error {
	lg := zerolog.Ctx(ctx)

	c := cron.New(
		cron.WithLocation(app.Location),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	_, err := c.AddFunc(app.Schedule, func() {
		// the sweep finishes its current pass even when a shutdown signal arrives
		sweepCtx := context.WithoutCancel(ctx)

		if _, runErr := app.Sweeper.Run(sweepCtx, app.Now()); runErr != nil {
			lg.Err(runErr).Msg("bill reminder sweep failed")
		}
	})
	if err != nil {
		return errors.Wrapf(err, "invalid schedule %q", app.Schedule)
	}

	lg.Info().Str("schedule", app.Schedule).Str("timezone", app.Location.String()).
		Msg("bill reminder sweep scheduled")

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()

	return nil
}

func sweepTime(app *App, date string) (time.Time, error) {
	if date == "" {
		return app.Now(), nil
	}

	day, err := time.ParseInLocation(dateLayout, date, app.Location)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "invalid --date %q", date)
	}

	return day.Add(12 * time.Hour), nil
}

func printResult(w io.Writer, day time.Time, result *reminders.Result) {
	_, _ = fmt.Fprintf(w, "%s: sent=%d failed=%d skipped=%d posted=%d\n",
		day.Format(dateLayout), result.Sent, result.Failed, result.Skipped, result.Posted)
}
