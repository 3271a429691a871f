package notify

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookNotifier_SendsTextPayload(t *testing.T) {
	var received webhookMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(server.URL, time.Second)
	err := notifier.Send(context.Background(), "ledger backup completed")

	require.NoError(t, err)
	assert.Equal(t, "text", received.MsgType)
	assert.Equal(t, "ledger backup completed", received.Content.Text)
}

func TestWebhookNotifier_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(server.URL, time.Second)
	err := notifier.Send(context.Background(), "hello")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestWebhookNotifier_RespectsContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	notifier := NewWebhookNotifier(server.URL, time.Second)
	err := notifier.Send(ctx, "hello")

	assert.Error(t, err)
}

func TestNoopNotifier(t *testing.T) {
	assert.NoError(t, NewNoopNotifier().Send(context.Background(), "anything"))
}

func TestNewEmailNotifier_RequiresRecipients(t *testing.T) {
	_, err := NewEmailNotifier("smtp.example.com", 587, "user", "pass", "from@example.com", " , ")
	assert.Error(t, err)

	notifier, err := NewEmailNotifier("smtp.example.com", 587, "user", "pass", "from@example.com", "a@example.com, b@example.com")
	require.NoError(t, err)
	assert.NotNil(t, notifier)
}

type stubNotifier struct {
	err   error
	calls int
}

func (s *stubNotifier) Send(ctx context.Context, message string) error {
	s.calls++
	return s.err
}

func TestMultiNotifier_SucceedsWhenAnyChannelSucceeds(t *testing.T) {
	failing := &stubNotifier{err: errors.New("boom")}
	working := &stubNotifier{}

	notifier := NewMultiNotifier(slog.Default(), failing, working)
	err := notifier.Send(context.Background(), "hello")

	require.NoError(t, err)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, working.calls)
}

func TestMultiNotifier_FailsWhenAllChannelsFail(t *testing.T) {
	first := &stubNotifier{err: errors.New("boom")}
	second := &stubNotifier{err: errors.New("bust")}

	notifier := NewMultiNotifier(slog.Default(), first, second)
	err := notifier.Send(context.Background(), "hello")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "all notifiers failed")
}

func TestMultiNotifier_NoChannels(t *testing.T) {
	assert.NoError(t, NewMultiNotifier(slog.Default()).Send(context.Background(), "hello"))
}
