package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"prebuilt-checkout/internal/util"
)

type Config struct {
	PaymentProvider string

	StripeSecretKey     string
	StripeWebhookSecret string
	StripeAPIURL        string

	Price              string
	PaymentMethodTypes []string
	Domain             string

	HTTPAddr string
	LogLevel slog.Level

	TelegramToken  string
	TelegramChatID int64

	SpreadsheetID            string
	GoogleServiceAccountJSON string
}

// SignedWebhooks reports whether inbound webhooks are verified. Without a
// secret the receiver trusts any payload, which is only acceptable locally.
func (c Config) SignedWebhooks() bool {
	return c.StripeWebhookSecret != ""
}

func (c Config) NotifyEnabled() bool {
	return c.TelegramToken != ""
}

func (c Config) LedgerEnabled() bool {
	return c.SpreadsheetID != ""
}

func FromEnv() (Config, error) {
	var c Config
	c.PaymentProvider = strings.ToLower(strings.TrimSpace(os.Getenv("PAYMENT_PROVIDER")))
	if c.PaymentProvider == "" {
		c.PaymentProvider = "stripe"
	}

	c.StripeSecretKey = strings.TrimSpace(os.Getenv("STRIPE_SECRET_KEY"))
	c.StripeWebhookSecret = strings.TrimSpace(os.Getenv("STRIPE_WEBHOOK_SECRET"))
	c.StripeAPIURL = strings.TrimRight(strings.TrimSpace(os.Getenv("STRIPE_API_URL")), "/")

	c.Price = strings.TrimSpace(os.Getenv("PRICE"))
	c.PaymentMethodTypes = util.SplitList(os.Getenv("PAYMENT_METHOD_TYPES"))
	if len(c.PaymentMethodTypes) == 0 {
		c.PaymentMethodTypes = []string{"card"}
	}
	c.Domain = strings.TrimRight(strings.TrimSpace(os.Getenv("DOMAIN")), "/")

	c.HTTPAddr = strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if c.HTTPAddr == "" {
		c.HTTPAddr = ":4242"
	}

	lvl, err := parseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return c, err
	}
	c.LogLevel = lvl

	c.TelegramToken = strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN"))
	if raw := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c, fmt.Errorf("TELEGRAM_CHAT_ID is not a number: %q", raw)
		}
		c.TelegramChatID = id
	}

	c.SpreadsheetID = strings.TrimSpace(os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID"))
	c.GoogleServiceAccountJSON = strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))

	switch c.PaymentProvider {
	case "stripe":
		if c.StripeSecretKey == "" {
			return c, fmt.Errorf("STRIPE_SECRET_KEY is empty")
		}
	case "stub":
	default:
		return c, fmt.Errorf("unknown PAYMENT_PROVIDER: %s", c.PaymentProvider)
	}
	if c.Price == "" {
		return c, fmt.Errorf("PRICE is empty")
	}
	if c.Domain == "" {
		return c, fmt.Errorf("DOMAIN is empty")
	}
	if (c.TelegramToken == "") != (c.TelegramChatID == 0) {
		return c, fmt.Errorf("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set together")
	}
	if (c.SpreadsheetID == "") != (c.GoogleServiceAccountJSON == "") {
		return c, fmt.Errorf("GOOGLE_SHEETS_SPREADSHEET_ID and GOOGLE_SERVICE_ACCOUNT_JSON must be set together")
	}

	return c, nil
}

func parseLevel(raw string) (slog.Level, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return slog.LevelInfo, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return lvl, nil
}
