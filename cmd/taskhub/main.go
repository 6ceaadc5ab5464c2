// Package main is the entry point for the taskhub CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"taskhub/internal/backend/resthub"
	"taskhub/internal/cli"
	"taskhub/internal/commands"
	"taskhub/internal/config"
	"taskhub/internal/httpclient"
	"taskhub/internal/service"
	"taskhub/internal/session"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	log.SetOutput(os.Stderr)

	// Create service factory
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		store := session.NewFileStore(cfg.TokenPath(), cfg.UserPath())
		api := httpclient.New(cfg.BaseURL, cfg.Timeout, store, log.StandardLogger())
		return resthub.New(api), nil
	}

	// Create dispatcher
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	// Run and exit with code
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
