package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prebuilt-checkout/internal/payments"
)

func TestBuildEvent(t *testing.T) {
	now := time.Unix(1760000000, 0)
	payload, err := buildEvent("evt_1", "checkout.session.completed", "cs_test_1", now)
	require.NoError(t, err)

	var ev struct {
		ID      string `json:"id"`
		Type    string `json:"type"`
		Created int64  `json:"created"`
		Data    struct {
			Object map[string]any `json:"object"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(payload, &ev))
	assert.Equal(t, "evt_1", ev.ID)
	assert.Equal(t, "checkout.session.completed", ev.Type)
	assert.Equal(t, int64(1760000000), ev.Created)
	assert.Equal(t, "cs_test_1", ev.Data.Object["id"])
	assert.Equal(t, "paid", ev.Data.Object["payment_status"])
}

func TestSignedDeliveryVerifies(t *testing.T) {
	var gotSig string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotSig = r.Header.Get(payments.SignatureHeader)
		ev, err := payments.ConstructEvent(body, gotSig, "whsec_test")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"status":"success","type":"` + string(ev.Type) + `"}`))
	}))
	defer srv.Close()

	now := time.Now()
	payload, err := buildEvent("evt_1", "checkout.session.completed", "cs_test_1", now)
	require.NoError(t, err)
	sig := signatureHeader(payload, "whsec_test", now)
	require.NotEmpty(t, sig)

	status, body, err := send(srv.Client(), srv.URL, payload, sig)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"success","type":"checkout.session.completed"}`, body)
	assert.Equal(t, sig, gotSig)
}

func TestUnsignedDelivery(t *testing.T) {
	assert.Empty(t, signatureHeader([]byte(`{}`), "", time.Now()))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get(payments.SignatureHeader))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	status, _, err := send(srv.Client(), srv.URL, []byte(`{}`), "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
}

func TestRandomID(t *testing.T) {
	a, b := randomID(), randomID()
	assert.Len(t, a, 16)
	assert.NotEqual(t, a, b)
}
