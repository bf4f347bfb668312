package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmcnair/carehub/internal/app"
	"github.com/jmcnair/carehub/internal/common"
	"github.com/jmcnair/carehub/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	common.LoadVersionFromFile()

	if *showVersion {
		fmt.Println(common.GetFullVersion())
		return
	}

	application, err := app.NewApp(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	common.PrintBanner(application.Config, application.Logger)

	srv := server.NewServer(application)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			application.Logger.Error().Err(err).Msg("Server error")
			os.Exit(1)
		}
	case sig := <-sigCh:
		application.Logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		application.Logger.Error().Err(err).Msg("Graceful shutdown failed")
		os.Exit(1)
	}
	application.Logger.Info().Msg("Server stopped")
}
