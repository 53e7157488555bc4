package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var ErrNotConfigured = errors.New("whatsapp sender not configured")

// WhatsAppSender отправляет текст через WhatsApp Cloud API:
// POST {baseURL}/{phoneNumberID}/messages с bearer-токеном.
type WhatsAppSender struct {
	baseURL       string
	phoneNumberID string
	token         string
	http          *http.Client
}

func NewWhatsAppSender(baseURL, phoneNumberID, token string) *WhatsAppSender {
	return &WhatsAppSender{
		baseURL:       strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		phoneNumberID: strings.TrimSpace(phoneNumberID),
		token:         strings.TrimSpace(token),
		http: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (s *WhatsAppSender) ProviderID() string {
	return "whatsapp-cloud"
}

type whatsAppText struct {
	Body string `json:"body"`
}

type whatsAppMessage struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Text             whatsAppText `json:"text"`
}

func (s *WhatsAppSender) Send(ctx context.Context, to string, body string) error {
	if s.baseURL == "" || s.phoneNumberID == "" || s.token == "" {
		return ErrNotConfigured
	}
	raw, err := json.Marshal(whatsAppMessage{
		MessagingProduct: "whatsapp",
		To:               normalizePhone(to),
		Type:             "text",
		Text:             whatsAppText{Body: body},
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/messages", s.baseURL, s.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("whatsapp api returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}

// normalizePhone оставляет только цифры: API ждёт номер без "+" и пробелов.
func normalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
