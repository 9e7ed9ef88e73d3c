package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Yashhpatill/trading-bot/internal/adapters/binance_auth"
	"github.com/Yashhpatill/trading-bot/internal/adapters/outbound/binance_http"
	"github.com/Yashhpatill/trading-bot/internal/cli"
	"github.com/Yashhpatill/trading-bot/internal/config"
	"github.com/Yashhpatill/trading-bot/internal/core/gateway"
	"github.com/Yashhpatill/trading-bot/internal/telemetry"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Load()
	log, closeLog := telemetry.New(telemetry.ParseLogLevel(cfg.LogLevel), cfg.LogFile)
	defer closeLog()

	log.Info("--- Trading Bot Application Started ---")

	fmt.Println("Welcome to the Binance Futures Testnet Trading Bot")
	fmt.Println(strings.Repeat("=", 50))

	// The first interrupt cancels ctx, which unblocks console prompts and
	// aborts any in-flight API call; stop() then restores default signal
	// handling so a second Ctrl+C kills the process outright.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		stop()
	}()

	console := cli.NewConsole(os.Stdin, os.Stdout)

	apiKey, apiSecret := cfg.APIKey, cfg.APISecret
	if apiKey == "" {
		fmt.Println("API Key not found in environment variables (BINANCE_TESTNET_KEY).")
		apiKey, _ = console.ReadLine(ctx, "Please enter your Testnet API Key: ")
	}
	if apiSecret == "" {
		fmt.Println("API Secret not found in environment variables (BINANCE_TESTNET_SECRET).")
		apiSecret, _ = console.ReadLine(ctx, "Please enter your Testnet API Secret: ")
	}

	if ctx.Err() != nil {
		fmt.Println("\nCaught interrupt. Exiting gracefully.")
		return 0
	}

	signer := binance_auth.NewSigner(apiKey, apiSecret)
	if !signer.Enabled() {
		log.Error("API key or secret is missing")
		fmt.Println("API Key and Secret are required to run the bot. Exiting.")
		return 1
	}

	client := binance_http.NewClient(cfg.BaseURL, signer, cfg.RecvWindowMS)
	gw := gateway.New(client, log)

	if _, err := gw.CheckConnection(ctx); err != nil {
		fmt.Printf("\nFailed to initialize bot. Please check %q for details. Exiting.\n", cfg.LogFile)
		return 1
	}

	filters, err := config.LoadSymbolFilters(cfg.SymbolFiltersPath)
	if err != nil {
		// bad filters file: trade without precision pre-checks
		log.Warn(fmt.Sprintf("symbol filters unavailable: %v", err))
	}

	session := cli.NewSession(console, gw, filters, cfg.WSURL)
	if err := session.Run(ctx); err != nil {
		if errors.Is(err, cli.ErrInputClosed) || errors.Is(err, context.Canceled) {
			log.Warn("session interrupted, shutting down")
			fmt.Println("\nCaught interrupt. Exiting gracefully.")
			logSessionSummary(log)
			return 0
		}
		log.Error(fmt.Sprintf("session ended unexpectedly: %v", err))
		return 1
	}

	logSessionSummary(log)
	log.Info("--- Trading Bot Application Finished ---")
	return 0
}

func logSessionSummary(log *slog.Logger) {
	log.Info(fmt.Sprintf("Session summary  sent=%d  accepted=%d  rejected=%d  transport errors=%d  api latency p50=%s p99=%s",
		telemetry.Metrics.OrdersSent.Value(),
		telemetry.Metrics.OrdersAccepted.Value(),
		telemetry.Metrics.OrderRejections.Value(),
		telemetry.Metrics.TransportErrors.Value(),
		telemetry.Metrics.APILatency.P50(),
		telemetry.Metrics.APILatency.P99(),
	))
}
