package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var contactHeaders = []string{"ID", "NAME", "PHONE", "CREATED"}

func contactRow(c ContactResponse) []string {
	return []string{c.ID, c.Name, c.Phone, c.CreatedAt}
}

// NewContactCmd создаёт группу команд для контактов.
func NewContactCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Manage contacts",
	}

	cmd.AddCommand(
		newContactListCmd(clientFn, outputFn),
		newContactShowCmd(clientFn, outputFn),
		newContactCreateCmd(clientFn, outputFn),
		newContactDeleteCmd(clientFn, outputFn),
	)

	return cmd
}

func newContactListCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var opts ListOpts

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			page, err := client.ListContacts(cmd.Context(), opts)
			if err != nil {
				return err
			}

			rows := make([][]string, len(page.Items))
			for i, c := range page.Items {
				rows[i] = contactRow(c)
			}

			out.Print(contactHeaders, rows, page)
			out.pageFooter(page.Page, page.Pages, page.Total)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Page, "page", 0, "Page number (server default: 1)")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 0, "Items per page, 1-100 (server default: 20)")

	return cmd
}

func newContactShowCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show contact details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			c, err := client.GetContact(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out.Print(contactHeaders, [][]string{contactRow(*c)}, c)
			return nil
		},
	}
}

func newContactCreateCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var req CreateContactRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a contact (needs --token)",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			c, err := client.CreateContact(cmd.Context(), req)
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Contact created: %s", c.ID))
			out.Print(contactHeaders, [][]string{contactRow(*c)}, c)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Contact name (required)")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "Phone number (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("phone")

	return cmd
}

func newContactDeleteCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Soft-delete a contact (needs --token)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			if err := client.DeleteContact(cmd.Context(), args[0]); err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Contact deleted: %s", args[0]))
			return nil
		},
	}
}
