package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/stripe/stripe-go/v79"

	"prebuilt-checkout/internal/config"
	"prebuilt-checkout/internal/fulfillment"
	"prebuilt-checkout/internal/payments"
	"prebuilt-checkout/internal/server"
	"prebuilt-checkout/internal/sheets"
	"prebuilt-checkout/internal/tgbot"
	"prebuilt-checkout/internal/webhook"
)

// appInfo identifies this integration in Stripe's User-Agent.
var appInfo = &stripe.AppInfo{
	Name:    "prebuilt-checkout",
	Version: "0.0.1",
	URL:     "https://github.com/stripe-samples",
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	stripe.SetAppInfo(appInfo)

	gw, err := payments.NewGateway(cfg)
	if err != nil {
		log.Fatalf("payments: %v", err)
	}

	var opts []fulfillment.Option
	if cfg.LedgerEnabled() {
		sh, err := sheets.New(context.Background(), cfg.GoogleServiceAccountJSON, cfg.SpreadsheetID)
		if err != nil {
			log.Fatalf("sheets: %v", err)
		}
		opts = append(opts, fulfillment.WithLedger(sh))
	}
	if cfg.NotifyEnabled() {
		n, err := tgbot.New(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatalf("telegram: %v", err)
		}
		opts = append(opts, fulfillment.WithNotifier(n))
	}
	fulfiller := fulfillment.New(gw, logger, opts...)

	if !cfg.SignedWebhooks() {
		logger.Warn("STRIPE_WEBHOOK_SECRET is empty: webhook signatures are NOT verified, use only for local development")
	}

	httpSrv := server.New(cfg, logger, gw, webhook.NewDispatcher(fulfiller, logger))

	go func() {
		logger.Info("HTTP listening", "addr", cfg.HTTPAddr, "provider", gw.Name(), "domain", cfg.Domain)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server: %v", err)
		}
	}()

	// Graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		logger.Error("shutdown", "err", err)
	}

	logger.Info("bye")
}
