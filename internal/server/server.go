package server

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"prebuilt-checkout/internal/config"
	"prebuilt-checkout/internal/payments"
	"prebuilt-checkout/internal/webhook"
)

//go:embed templates/*.html
var templatesFS embed.FS

// maxWebhookBytes bounds the webhook body read into memory.
const maxWebhookBytes = int64(65536)

type handlers struct {
	cfg        config.Config
	logger     *slog.Logger
	gw         payments.Gateway
	receiver   *webhook.Receiver
	dispatcher *webhook.Dispatcher
	pages      *template.Template
}

func New(cfg config.Config, logger *slog.Logger, gw payments.Gateway, d *webhook.Dispatcher) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewRouter(cfg, logger, gw, d),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func NewRouter(cfg config.Config, logger *slog.Logger, gw payments.Gateway, d *webhook.Dispatcher) http.Handler {
	h := &handlers{
		cfg:        cfg,
		logger:     logger,
		gw:         gw,
		receiver:   webhook.NewReceiver(gw, cfg.StripeWebhookSecret),
		dispatcher: d,
		pages:      template.Must(template.ParseFS(templatesFS, "templates/*.html")),
	}

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.CleanPath,
		requestLogger(logger),
		middleware.Recoverer,
	)

	r.Get("/", h.page("index.html"))
	r.Get("/succ", h.page("success.html"))
	r.Get("/canc", h.page("canceled.html"))

	r.Get("/checkout-session", h.getCheckoutSession)
	r.Post("/create-checkout-session", h.createCheckoutSession)
	r.Post("/webhook", h.receiveWebhook)

	return r
}
