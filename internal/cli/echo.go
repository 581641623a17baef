package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var echoHeaders = []string{"ID", "MESSAGE", "PROCESSED", "CATEGORY", "PROTECTED", "CREATED"}

func echoRow(e EchoResponse) []string {
	category := "-"
	if e.Category != nil && *e.Category != "" {
		category = *e.Category
	}
	return []string{
		e.ID,
		truncate(e.Message, 40),
		truncate(e.ProcessedMessage, 40),
		category,
		strconv.FormatBool(e.IsProtected),
		e.CreatedAt,
	}
}

// truncate обрезает строку до n символов для таблицы.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// NewEchoCmd создаёт группу команд для ресурса echo.
func NewEchoCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "echo",
		Short: "Manage echo items",
	}

	cmd.AddCommand(
		newEchoListCmd(clientFn, outputFn),
		newEchoShowCmd(clientFn, outputFn),
		newEchoCreateCmd(clientFn, outputFn),
		newEchoProcessCmd(clientFn, outputFn),
		newEchoDeleteCmd(clientFn, outputFn),
	)

	return cmd
}

func newEchoListCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var opts ListOpts

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List echo items",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			page, err := client.ListEchoes(cmd.Context(), opts)
			if err != nil {
				return err
			}

			rows := make([][]string, len(page.Items))
			for i, e := range page.Items {
				rows[i] = echoRow(e)
			}

			out.Print(echoHeaders, rows, page)
			out.pageFooter(page.Page, page.Pages, page.Total)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Page, "page", 0, "Page number (server default: 1)")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 0, "Items per page, 1-100 (server default: 20)")

	return cmd
}

func newEchoShowCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show echo item details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			e, err := client.GetEcho(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out.Print(echoHeaders, [][]string{echoRow(*e)}, e)
			return nil
		},
	}
}

func newEchoCreateCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var (
		message   string
		category  string
		protected bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an echo item",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			req := CreateEchoRequest{Message: message}
			if cmd.Flags().Changed("category") {
				req.Category = &category
			}

			e, err := client.CreateEcho(cmd.Context(), req, protected)
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Echo created: %s", e.ID))
			out.Print(echoHeaders, [][]string{echoRow(*e)}, e)
			return nil
		},
	}

	cmd.Flags().StringVar(&message, "message", "", "Message, 1-1000 characters (required)")
	cmd.Flags().StringVar(&category, "category", "", "Category: general, test, demo or important")
	cmd.Flags().BoolVar(&protected, "protected", false, "Use the protected endpoint (needs --token)")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}

func newEchoProcessCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "process MESSAGE",
		Short: "Process a message without storing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			res, err := client.ProcessEcho(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out.Print(
				[]string{"ORIGINAL", "PROCESSED", "LENGTH"},
				[][]string{{res.Original, res.Processed, strconv.Itoa(res.Length)}},
				res,
			)
			return nil
		},
	}
}

func newEchoDeleteCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Soft-delete an echo item (needs --token)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			if err := client.DeleteEcho(cmd.Context(), args[0]); err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Echo deleted: %s", args[0]))
			return nil
		},
	}
}
