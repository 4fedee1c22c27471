package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gilliangoud/gcpv-lynx-generator/internal/adapters/scheduler"
	service "github.com/gilliangoud/gcpv-lynx-generator/internal/app"
	"github.com/gilliangoud/gcpv-lynx-generator/pkg/logger"
)

const shutdownTimeout = 30 * time.Second

func newWatchCmd(c *cli) *cobra.Command {
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Export on every interval until interrupted",
		Args:  cobra.NoArgs,
	}

	watchCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		svc, err := c.newService(c.request())
		if err != nil {
			return err
		}
		sched := c.newScheduler(svc)
		go sched.Run(ctx)

		<-ctx.Done()
		return c.stopScheduler(sched)
	}
	return watchCmd
}

func (c *cli) newScheduler(svc *service.Service) *scheduler.Scheduler {
	return scheduler.New(svc,
		scheduler.WithName("export"),
		scheduler.WithInterval(c.cfg.Interval()),
		scheduler.WithLogger(c.log),
	)
}

// stopScheduler waits for the cycle in flight, bounded by shutdownTimeout.
func (c *cli) stopScheduler(sched *scheduler.Scheduler) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	c.log.Info(ctx, "stopping scheduler")
	if err := sched.Shutdown(ctx); err != nil {
		c.log.Error(ctx, "scheduler shutdown failed", logger.Error(err))
		return err
	}
	return nil
}
