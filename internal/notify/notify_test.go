package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWhatsAppSender_Send(t *testing.T) {
	var got whatsAppMessage
	var path, auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.1"}]}`))
	}))
	defer srv.Close()

	s := NewWhatsAppSender(srv.URL+"/", "12345", "secret")
	if err := s.Send(context.Background(), "+54 9 11 5555-0000", "hola"); err != nil {
		t.Fatalf("send: %v", err)
	}

	if path != "/12345/messages" {
		t.Fatalf("unexpected path %q", path)
	}
	if auth != "Bearer secret" {
		t.Fatalf("unexpected auth header %q", auth)
	}
	if got.To != "5491155550000" || got.Text.Body != "hola" || got.MessagingProduct != "whatsapp" || got.Type != "text" {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestWhatsAppSender_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"bad token"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := NewWhatsAppSender(srv.URL, "12345", "secret")
	if err := s.Send(context.Background(), "1", "x"); err == nil {
		t.Fatalf("expected error on 401")
	}
}

func TestWhatsAppSender_NotConfigured(t *testing.T) {
	s := NewWhatsAppSender("https://example.invalid", "", "")
	if err := s.Send(context.Background(), "1", "x"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

type flakySender struct {
	fail map[string]bool
	sent []string
}

func (f *flakySender) ProviderID() string { return "flaky" }

func (f *flakySender) Send(_ context.Context, to string, _ string) error {
	if f.fail[to] {
		return errors.New("boom")
	}
	f.sent = append(f.sent, to)
	return nil
}

func TestBroadcaster_LogAndContinue(t *testing.T) {
	sender := &flakySender{fail: map[string]bool{"2": true}}
	b := &Broadcaster{
		Sender:     sender,
		Recipients: []string{"1", "2", "3"},
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	d := b.Broadcast(context.Background(), "digest")
	if d.Sent != 2 || d.Failed != 1 {
		t.Fatalf("expected 2 sent / 1 failed, got %+v", d)
	}
	if len(sender.sent) != 2 || sender.sent[0] != "1" || sender.sent[1] != "3" {
		t.Fatalf("expected delivery to continue after failure, got %v", sender.sent)
	}
}
