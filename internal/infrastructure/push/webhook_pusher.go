package push

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/notify"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
)

var _ notify.Pusher = (*WebhookPusher)(nil)

// WebhookPusher envía el mensaje como JSON a un gateway push (p.ej. un relay hacia FCM).
// Usa net/http de la librería estándar; el gateway se encarga del proveedor concreto.
type WebhookPusher struct {
	url        string
	httpClient *http.Client
}

// NewWebhookPusher construye el adaptador con el timeout de red dado.
func NewWebhookPusher(url string, timeout time.Duration) *WebhookPusher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &WebhookPusher{url: url, httpClient: &http.Client{Timeout: timeout}}
}

// ── Estructuras del protocolo del gateway ─────────────────────────────────────

type webhookRequest struct {
	Tokens       []string          `json:"tokens"`
	Notification webhookMessage    `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type webhookMessage struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type webhookResponse struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Push envía un solo request con todos los tokens activos del usuario.
func (p *WebhookPusher) Push(ctx context.Context, devices []*entity.UserDevice, msg notify.PushMessage) error {
	if len(devices) == 0 {
		return nil
	}
	if p.url == "" {
		return errors.New("push: PUSH_WEBHOOK_URL no configurado")
	}
	tokens := make([]string, 0, len(devices))
	for _, d := range devices {
		tokens = append(tokens, d.Token)
	}

	body, err := json.Marshal(webhookRequest{
		Tokens:       tokens,
		Notification: webhookMessage{Title: msg.Title, Body: msg.Body},
		Data:         msg.Data,
	})
	if err != nil {
		return fmt.Errorf("push: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("push: crear HTTP request: %w", err)
	}
	req.Header.Set("content-type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("push: timeout o cancelación: %w", ctx.Err())
		}
		return fmt.Errorf("push: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 16*1024))
	if err != nil {
		return fmt.Errorf("push: leer respuesta: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp webhookResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return fmt.Errorf("push: gateway error (%s): %s", errResp.Error.Code, errResp.Error.Message)
		}
		return fmt.Errorf("push: gateway HTTP %d: %s", resp.StatusCode, string(rawBody))
	}
	return nil
}
