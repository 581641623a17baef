// Modulo CLI — инструмент командной строки для работы с echo и
// contacts через HTTP API.
//
// Использование:
//
//	modulo [--api-url URL] [--token TOKEN] [--json] <command> <subcommand> [flags]
//
// Команды:
//
//	echo     Управление echo
//	contact  Управление контактами
//	health   Состояние сервиса
//	events   События жизненного цикла из RabbitMQ
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaiso/Modulo/internal/cli"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	var apiURL, token string
	var jsonOutput bool

	rootCmd := &cobra.Command{
		Use:           "modulo",
		Short:         "Modulo CLI for the echo and contacts API",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "http://localhost:8080", "API server URL")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("APP_BEARER_TOKEN"), "Bearer token for protected endpoints")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	clientFn := func() *cli.Client { return cli.NewClient(apiURL, token) }
	outputFn := func() *cli.Output { return cli.NewOutput(jsonOutput) }

	rootCmd.AddCommand(
		cli.NewEchoCmd(clientFn, outputFn),
		cli.NewContactCmd(clientFn, outputFn),
		cli.NewHealthCmd(clientFn, outputFn),
		cli.NewEventsCmd(outputFn),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
