package cmd

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the pipeline stages on their schedules until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		scheduler, err := gocron.NewScheduler()
		if err != nil {
			return fmt.Errorf("failed to create scheduler: %w", err)
		}

		if _, err := scheduler.NewJob(
			gocron.DurationJob(5*time.Minute),
			gocron.NewTask(func() {
				if err := app.ingestion.Run(ctx); err != nil {
					log.Printf("⚠️ Message fetch job failed: %v", err)
				}
			}),
		); err != nil {
			return fmt.Errorf("failed to schedule message fetch job: %w", err)
		}

		// Analysis runs twice a day and must never overlap itself: a slow
		// model batch at 09:00 must not race a second batch.
		if _, err := scheduler.NewJob(
			gocron.DailyJob(1, gocron.NewAtTimes(
				gocron.NewAtTime(9, 0, 0),
				gocron.NewAtTime(21, 0, 0),
			)),
			gocron.NewTask(func() {
				if err := app.extraction.Run(ctx); err != nil {
					log.Printf("⚠️ Message analysis job failed: %v", err)
				}
			}),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		); err != nil {
			return fmt.Errorf("failed to schedule message analysis job: %w", err)
		}

		if _, err := scheduler.NewJob(
			gocron.DurationJob(30*time.Minute),
			gocron.NewTask(func() {
				if err := app.notification.Run(ctx); err != nil {
					log.Printf("⚠️ Event notification job failed: %v", err)
				}
			}),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		); err != nil {
			return fmt.Errorf("failed to schedule event notification job: %w", err)
		}

		group, ctx := errgroup.WithContext(ctx)
		group.Go(func() error {
			scheduler.Start()
			log.Printf("✅ Worker started with %d scheduled jobs", len(scheduler.Jobs()))
			<-ctx.Done()
			return scheduler.Shutdown()
		})

		if err := group.Wait(); err != nil && !isContextDone(err) {
			return err
		}
		log.Printf("📋 Worker shut down cleanly")
		return nil
	},
}

func isContextDone(err error) bool {
	return err == context.Canceled || err == context.DeadlineExceeded
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
