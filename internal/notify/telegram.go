// Package notify delivers the formatted report to a Telegram chat via the
// Bot API sendMessage endpoint.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// DeliveryError reports that the messaging API was unreachable or rejected
// the message. It is fatal for the run: there is no retry or queuing, the
// next scheduled run is the retry.
type DeliveryError struct {
	StatusCode  int
	Description string
	Err         error
}

func (e *DeliveryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("deliver message: %v", e.Err)
	}
	return fmt.Sprintf("deliver message: telegram rejected request (status %d): %s", e.StatusCode, e.Description)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// Telegram sends messages to a fixed chat through a bot token.
type Telegram struct {
	baseURL string
	token   string
	chatID  string
	client  *http.Client
	log     *zap.SugaredLogger
}

func NewTelegram(client *http.Client, token, chatID string, log *zap.SugaredLogger) *Telegram {
	return &Telegram{
		baseURL: "https://api.telegram.org",
		token:   token,
		chatID:  chatID,
		client:  client,
		log:     log,
	}
}

// Send posts text to the configured chat as a Markdown message.
func (t *Telegram) Send(ctx context.Context, text string) error {
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.token)

	form := url.Values{}
	form.Set("chat_id", t.chatID)
	form.Set("text", text)
	form.Set("parse_mode", "Markdown")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return &DeliveryError{Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return &DeliveryError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &DeliveryError{Err: err}
	}

	var payload struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return &DeliveryError{Err: fmt.Errorf("parse response: %w", err)}
	}

	// Telegram can answer 200 with ok=false; both paths are a rejection.
	if resp.StatusCode != http.StatusOK || !payload.OK {
		return &DeliveryError{StatusCode: resp.StatusCode, Description: payload.Description}
	}

	t.log.Infow("telegram message sent", "chat", t.chatID, "chars", len(text))
	return nil
}
