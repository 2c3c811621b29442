package notifier

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"intranet-portal/config"
)

// WebhookNotifier : отправляет уведомления во внешний сервис одним POST-запросом.
// Доставка не гарантируется: ошибки логируются, бизнес-операция не откатывается.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

func NewWebhookNotifier(cfg *config.WebhookConfig) *WebhookNotifier {
	timeout := 5 * time.Second
	if cfg.Timeout != "" {
		if parsed, err := time.ParseDuration(cfg.Timeout); err == nil {
			timeout = parsed
		}
	}
	return &WebhookNotifier{
		url:    cfg.URL,
		client: &http.Client{Timeout: timeout},
	}
}

type notificationPayload struct {
	UserUUID   string `json:"user_uuid"`
	Kind       string `json:"kind"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	ContextTag string `json:"context_tag"`
	SentAt     string `json:"sent_at"`
}

// Send : fire-and-forget, уходит в отдельную горутину
func (n *WebhookNotifier) Send(userUUID, kind, title, body, contextTag string) {
	if n.url == "" {
		return
	}

	payload := notificationPayload{
		UserUUID:   userUUID,
		Kind:       kind,
		Title:      title,
		Body:       body,
		ContextTag: contextTag,
		SentAt:     time.Now().UTC().Format(time.RFC3339),
	}

	go func() {
		data, err := json.Marshal(payload)
		if err != nil {
			log.Printf("[WebhookNotifier] ошибка сериализации уведомления: %v", err)
			return
		}

		resp, err := n.client.Post(n.url, "application/json", bytes.NewReader(data))
		if err != nil {
			log.Printf("[WebhookNotifier] не удалось отправить уведомление для %s: %v", userUUID, err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			log.Printf("[WebhookNotifier] сервис уведомлений вернул статус %d", resp.StatusCode)
		}
	}()
}
