// Package main provides the foodcart binary entry point.
// It drives one ordering session from the command line: browse the menu,
// compose a cart, check out and review what was eaten.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "foodcart"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Food ordering cart engine",
		Long: `Foodcart prices menu items with their toppings, keeps them in a cart,
validates the checkout form and collects reviews.

Carts survive between invocations only with the postgres storage backend.
Reviews are kept in the configured key/value store.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&opts.ownerID, "owner", "", "Cart owner id (defaults to one derived from the home directory)")
	cmd.PersistentFlags().BoolVar(&opts.dumpMetrics, "metrics", false, "Print collected metrics to stderr on exit")

	cmd.AddCommand(
		catalogCmd(opts),
		cartCmd(opts),
		checkoutCmd(opts),
		reviewCmd(opts),
		ratingsCmd(opts),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
			},
		},
	)

	return cmd
}
