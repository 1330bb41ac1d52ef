package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

const (
	version = "v0.1.0"
)

func main() {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "mcache-cli",
		Short: "A command line interface for the mcache adapter",
		Long:  `A command line interface driving the mcache adapter against a memcached server.`,
	}
	flags.register(rootCmd)

	rootCmd.AddCommand(newVersionCommand())

	rootCmd.AddCommand(
		newGetCommand(flags),
		newSetCommand(flags),
		newInvalidateCommand(flags),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		stop()
		os.Exit(1)
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("mcache-cli version %s\n", version)
		},
	}
}
