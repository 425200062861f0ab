package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anilkruz/ParkingLot-repo/internal/config"
	"github.com/anilkruz/ParkingLot-repo/internal/logging"
	"github.com/anilkruz/ParkingLot-repo/internal/parking"
	"github.com/anilkruz/ParkingLot-repo/internal/server"
)

var (
	mode = flag.String("mode", "", "Mode to run: shell, server, or both (overrides APP_MODE)")
	port = flag.String("port", "", "Port for HTTP server (overrides APP_PORT)")
)

func main() {
	flag.Parse()

	cfg := config.Load()
	if *mode != "" {
		cfg.Mode = *mode
	}
	if *port != "" {
		cfg.Port = *port
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	telemetryProvider, err := parking.NewTelemetryProvider(cfg.OTelServiceName, cfg.OTelEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize telemetry: %v", err)
	}

	logging.Init(cfg.OTelServiceName, cfg.Environment)

	lot, err := parking.NewInstrumentedLot(telemetryProvider)
	if err != nil {
		log.Fatalf("Failed to create parking lot: %v", err)
	}

	floors, err := config.LoadLayout(cfg.LayoutPath)
	if err != nil {
		log.Fatalf("Failed to load floor layout: %v", err)
	}

	if err := lot.Configure(ctx, floors); err != nil {
		log.Fatalf("Failed to configure parking lot: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	switch cfg.Mode {
	case "shell":
		runShell(ctx, cancel, lot, telemetryProvider, sigChan)
	case "server":
		runServer(cfg, lot, telemetryProvider, sigChan, cancel)
	case "both":
		runBoth(ctx, cfg, lot, telemetryProvider, sigChan, cancel)
	default:
		log.Fatalf("Invalid mode: %s. Must be shell, server, or both", cfg.Mode)
	}
}

func runShell(ctx context.Context, cancel context.CancelFunc, lot *parking.InstrumentedLot, telemetryProvider *parking.TelemetryProvider, sigChan chan os.Signal) {
	go func() {
		<-sigChan
		log.Println("Shutting down...")
		cancel()
	}()

	shell := parking.NewShell(lot, telemetryProvider)
	shell.Run(ctx)

	shutdownTelemetry(telemetryProvider)
}

func runServer(cfg *config.Config, lot *parking.InstrumentedLot, telemetryProvider *parking.TelemetryProvider, sigChan chan os.Signal, cancel context.CancelFunc) {
	srv := server.NewServer(cfg.Port, lot, cfg.OTelServiceName)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}

		cancel()
	}()

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("Server error: %v", err)
	}

	shutdownTelemetry(telemetryProvider)
}

func runBoth(ctx context.Context, cfg *config.Config, lot *parking.InstrumentedLot, telemetryProvider *parking.TelemetryProvider, sigChan chan os.Signal, cancel context.CancelFunc) {
	srv := server.NewServer(cfg.Port, lot, cfg.OTelServiceName)

	serverDone := make(chan error, 1)
	go func() {
		log.Printf("HTTP server at %s", srv.GetAddress())
		serverDone <- srv.Start()
	}()

	shellDone := make(chan bool, 1)
	go func() {
		shell := parking.NewShell(lot, telemetryProvider)
		shell.Run(ctx)
		shellDone <- true
	}()

	go func() {
		<-sigChan
		log.Println("Received shutdown signal...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}

		cancel()
	}()

	select {
	case err := <-serverDone:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server error: %v", err)
		}
	case <-shellDone:
		log.Println("Shell exited")
	case <-ctx.Done():
		log.Println("Context cancelled")
	}

	shutdownTelemetry(telemetryProvider)
}

func shutdownTelemetry(telemetryProvider *parking.TelemetryProvider) {
	log.Println("Shutting down telemetry...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := telemetryProvider.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down telemetry: %v", err)
	}
}
