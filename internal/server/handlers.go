package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/render"

	"prebuilt-checkout/internal/checkout"
	"prebuilt-checkout/internal/payments"
)

func (h *handlers) page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := h.pages.ExecuteTemplate(w, name, nil); err != nil {
			h.logger.ErrorContext(r.Context(), "render page", "page", name, "err", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}

// GET /checkout-session?sessionId=cs_...
// Used by the success page to show the session it was redirected for.
func (h *handlers) getCheckoutSession(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("sessionId")
	if id == "" {
		renderError(w, r, http.StatusBadRequest, "sessionId is required")
		return
	}

	s, err := h.gw.RetrieveSession(r.Context(), id)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, payments.ErrNotFound) {
			status = http.StatusNotFound
		}
		h.logger.WarnContext(r.Context(), "retrieve session", "session_id", id, "status", status, "err", err)
		renderError(w, r, status, err.Error())
		return
	}

	render.JSON(w, r, s)
}

// POST /create-checkout-session
// Everything comes from config; the request body is ignored.
func (h *handlers) createCheckoutSession(w http.ResponseWriter, r *http.Request) {
	req := checkout.NewSessionRequest(h.cfg)

	s, err := h.gw.CreateSession(r.Context(), req)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "create checkout session", "provider", h.gw.Name(), "err", err)
		renderError(w, r, http.StatusForbidden, err.Error())
		return
	}

	h.logger.InfoContext(r.Context(), "checkout session created", "session_id", s.ID)
	http.Redirect(w, r, s.URL, http.StatusSeeOther)
}

// POST /webhook
func (h *handlers) receiveWebhook(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBytes)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.WarnContext(r.Context(), "read webhook body", "err", err)
		renderError(w, r, http.StatusBadRequest, "unable to read request body")
		return
	}

	ev, err := h.receiver.Parse(payload, r.Header.Get(payments.SignatureHeader))
	if err != nil {
		h.logger.WarnContext(r.Context(), "webhook rejected", "signed", h.receiver.Signed(), "err", err)
		renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.dispatcher.Dispatch(r.Context(), ev); err != nil {
		// Non-2xx makes the provider redeliver; fulfillment is idempotent.
		h.logger.ErrorContext(r.Context(), "webhook dispatch failed", "event_id", ev.EventID(), "type", ev.Kind(), "err", err)
		renderError(w, r, http.StatusInternalServerError, "fulfillment failed")
		return
	}

	render.JSON(w, r, map[string]string{"status": "success"})
}
