package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/kanacards/internal/cli"
	"codeberg.org/snonux/kanacards/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	// Config file and environment are applied on top of the flag defaults
	if err := cli.ResolveFlags(flags); err != nil {
		return err
	}

	if err := processor.SetupLogging(flags.LogLevel, os.Stderr); err != nil {
		return err
	}

	// Past flag validation, failures are not usage errors
	cmd.SilenceUsage = true

	proc := processor.NewProcessor(flags)
	return proc.Run(cmd.Context(), args)
}
