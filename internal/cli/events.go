package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shaiso/Modulo/internal/mq"
)

// NewEventsCmd создаёт группу команд для событий жизненного цикла.
func NewEventsCmd(outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect lifecycle events published to RabbitMQ",
	}

	cmd.AddCommand(newEventsTailCmd(outputFn))

	return cmd
}

func newEventsTailCmd(outputFn func() *Output) *cobra.Command {
	var amqpURL string

	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Follow the audit queue and print events until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if amqpURL == "" {
				return errors.New("--amqp-url or APP_AMQP_URL is required")
			}

			out := outputFn()
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

			conn, err := mq.NewConnection(amqpURL, logger)
			if err != nil {
				return err
			}
			defer conn.Close()

			ctx := cmd.Context()
			if err := mq.SetupTopology(ctx, conn); err != nil {
				return err
			}

			consumer := mq.NewConsumer(conn, logger, mq.ConsumerConfig{
				Queue:   mq.QueueAudit,
				Handler: printEvent(out),
			})

			out.Success(fmt.Sprintf("Listening on %s, press Ctrl+C to stop", mq.QueueAudit))

			err = consumer.Run(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&amqpURL, "amqp-url", os.Getenv("APP_AMQP_URL"), "RabbitMQ URL")

	return cmd
}

// printEvent выводит событие строкой таблицы или JSON-объектом.
func printEvent(out *Output) mq.Handler {
	return func(_ context.Context, msg *mq.Message) error {
		out.Print(
			[]string{"TIME", "TYPE", "ENTITY"},
			[][]string{{msg.Payload.OccurredAt.Format(time.RFC3339), msg.Type, msg.Payload.EntityID.String()}},
			msg,
		)
		return nil
	}
}
