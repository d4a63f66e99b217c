package memberapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент сервиса участников клуба
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса участников
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetMember получает профиль участника по его идентификатору
func (c *Client) GetMember(ctx context.Context, userID int64) (*Member, error) {
	endpoint := fmt.Sprintf("%s/internal/members/%d", c.baseURL, userID)

	var member Member
	if err := c.getJSON(ctx, endpoint, &member); err != nil {
		return nil, err
	}

	return &member, nil
}

// GetEntitlements получает подтвержденные права участника на сервисы бронирования
func (c *Client) GetEntitlements(ctx context.Context, userID int64) ([]ServiceEntitlement, error) {
	endpoint := fmt.Sprintf("%s/internal/members/%d/services", c.baseURL, userID)

	var entitlements []ServiceEntitlement
	if err := c.getJSON(ctx, endpoint, &entitlements); err != nil {
		return nil, err
	}

	return entitlements, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Сетевая ошибка или таймаут: профиль недоступен, уровень доступа неизвестен
		c.log.Error("Member service unreachable: %v", err)
		return fmt.Errorf("%w: error=%v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return fmt.Errorf("%w: invalid member ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return ErrMemberNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		c.log.Error("Member service returned status %d", resp.StatusCode)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}

	// Парсим ответ
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
