package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/taskboard/internal/app"
	"github.com/alexanderramin/taskboard/internal/cli"
	"github.com/alexanderramin/taskboard/internal/config"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	var services *app.Services
	cliApp := &cli.App{
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	// Storage is opened only after flags and config are resolved.
	cliApp.Bootstrap = func(ctx context.Context, a *cli.App) error {
		logger := config.NewLogger(a.Config.Log, os.Stderr)
		svc, err := app.Open(ctx, a.Config, logger)
		if err != nil {
			return err
		}
		services = svc
		a.Board = svc.Board
		a.Activity = svc.Activity
		a.Auth = svc.Gate
		return nil
	}

	rootCmd := cli.NewRootCmd(cliApp)
	err := rootCmd.ExecuteContext(ctx)
	if services != nil {
		if cerr := services.Close(ctx); cerr != nil && err == nil {
			err = fmt.Errorf("closing board: %w", cerr)
		}
	}
	return err
}
