package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewHealthCmd создаёт команду проверки состояния сервиса.
func NewHealthCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show service and database health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			h, err := client.Health(cmd.Context())
			if err != nil {
				return err
			}

			out.Print(
				[]string{"STATUS", "SERVICE", "VERSION", "DATABASE", "STORAGE", "UPTIME"},
				[][]string{{h.Status, h.Service, h.Version, h.Database, h.Storage, fmt.Sprintf("%.0fs", h.Uptime)}},
				h,
			)
			return nil
		},
	}
}
