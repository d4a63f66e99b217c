package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент почтового шлюза
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента почтового шлюза
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет письмо через почтовый шлюз
func (c *Client) Send(ctx context.Context, message Message) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%w: Send - failed to marshal request: %v", ErrInternal, err)
	}

	endpoint := fmt.Sprintf("%s/send", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: Send - failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: to=%s, error=%v", ErrServiceDegraded, message.To, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		return nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrServiceDegraded, resp.StatusCode, string(body))
	}
}

// SendWithGracefulDegradation отправляет письмо с graceful degradation.
// Недоступность шлюза не отменяет бронь, письмо уходит в лог
func (c *Client) SendWithGracefulDegradation(ctx context.Context, message Message) error {
	c.log.Info("Sending mail to=%s, subject=%q", message.To, message.Subject)

	if err := c.Send(ctx, message); err != nil {
		c.log.Error("Mail gateway unavailable, applying graceful degradation for to=%s: %v", message.To, err)
		return fmt.Errorf("%w: to=%s, error=%v", ErrServiceDegraded, message.To, err)
	}

	c.log.Info("Mail sent to=%s", message.To)
	return nil
}
