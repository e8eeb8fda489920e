package tgbot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBotAPI struct {
	mu   sync.Mutex
	sent []map[string]string
}

func (f *fakeBotAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case strings.HasSuffix(r.URL.Path, "/getMe"):
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"shop","username":"shop_bot"}}`))
	case strings.HasSuffix(r.URL.Path, "/sendMessage"):
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		f.sent = append(f.sent, map[string]string{
			"chat_id": r.PostForm.Get("chat_id"),
			"text":    r.PostForm.Get("text"),
		})
		f.mu.Unlock()
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":-100200,"type":"group"},"text":"ok"}}`))
	default:
		_, _ = w.Write([]byte(`{"ok":false,"error_code":404,"description":"Not Found"}`))
	}
}

func TestNotify(t *testing.T) {
	f := &fakeBotAPI{}
	srv := httptest.NewServer(f)
	defer srv.Close()

	n, err := NewWithEndpoint("123:abc", srv.URL+"/bot%s/%s", -100200, srv.Client())
	require.NoError(t, err)

	require.NoError(t, n.Notify(context.Background(), "Order paid"))

	require.Len(t, f.sent, 1)
	assert.Equal(t, "-100200", f.sent[0]["chat_id"])
	assert.Equal(t, "Order paid", f.sent[0]["text"])
}

func TestNotifyCancelledContext(t *testing.T) {
	f := &fakeBotAPI{}
	srv := httptest.NewServer(f)
	defer srv.Close()

	n, err := NewWithEndpoint("123:abc", srv.URL+"/bot%s/%s", 1, srv.Client())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, n.Notify(ctx, "late"), context.Canceled)
	assert.Empty(t, f.sent)
}

func TestNewRejectedToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":false,"error_code":401,"description":"Unauthorized"}`))
	}))
	defer srv.Close()

	_, err := NewWithEndpoint("bad", srv.URL+"/bot%s/%s", 1, srv.Client())
	assert.Error(t, err)
}
