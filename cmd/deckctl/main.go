package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/youruser/cardbinder/internal/app"
	"github.com/youruser/cardbinder/internal/cmd"
	"github.com/youruser/cardbinder/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "deckctl: failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := app.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "deckctl: %v\n", err)
		os.Exit(1)
	}

	root := cmd.NewRootCmd(a)
	execErr := root.ExecuteContext(ctx)
	if err := a.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "deckctl: close: %v\n", err)
	}
	if execErr != nil {
		os.Exit(1)
	}
}
