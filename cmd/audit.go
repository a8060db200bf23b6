/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/carevault/apiserver/config"
	"github.com/carevault/apiserver/internal/logging"
	"github.com/carevault/apiserver/internal/mq"
	"github.com/carevault/apiserver/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// auditCmd tails the event channel and writes each event to the log.
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Log published domain events",
	Long: `Subscribes to the configured event channel and logs every event the
API server publishes. Usage:

	carevault audit
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()

		logger, err := logging.NewLogger(cfg.Log.Level, cfg.Log.Format, logging.ServiceName+"-audit")
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		queue, err := mq.Open(ctx, cfg.MQ)
		if err != nil {
			return fmt.Errorf("init mq: %w", err)
		}
		defer queue.Close()

		logger.Info("audit subscriber started",
			zap.String("backend", cfg.MQ.Backend),
			zap.String("channel", cfg.MQ.Channel),
		)
		err = queue.Subscribe(ctx, cfg.MQ.Channel, auditHandler(logger))
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("subscribe: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)
}

// auditHandler acknowledges malformed messages after logging them.
func auditHandler(logger *zap.Logger) mq.Handler {
	return func(ctx context.Context, msg mq.Message) error {
		var event types.Event
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			logger.Warn("malformed event", zap.String("message_id", msg.ID), zap.Error(err))
			return nil
		}
		logger.Info("event",
			zap.String("message_id", msg.ID),
			zap.String("event", event.Name),
			zap.Int("actor_id", event.ActorID),
			zap.Int("resource_id", event.ResourceID),
			zap.Time("occurred_at", event.OccurredAt),
			zap.ByteString("payload", event.Payload),
		)
		return nil
	}
}
