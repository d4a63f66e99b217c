package accesscard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client клиент системы физического контроля доступа
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента системы доступа
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// AddCard выдает временный доступ по переменному символу в группе считывателей
func (c *Client) AddCard(ctx context.Context, grant CardGrant) error {
	endpoint := fmt.Sprintf("%s/groups/%s/cards", c.baseURL, url.PathEscape(grant.AccessGroup))
	return c.send(ctx, http.MethodPost, endpoint, grant, "AddCard")
}

// UpdateCard изменяет окно действия ранее выданного доступа
func (c *Client) UpdateCard(ctx context.Context, grant CardGrant) error {
	endpoint := fmt.Sprintf("%s/groups/%s/cards/%s",
		c.baseURL, url.PathEscape(grant.AccessGroup), url.PathEscape(grant.VariableSymbol))
	return c.send(ctx, http.MethodPut, endpoint, grant, "UpdateCard")
}

// DeleteCard отзывает доступ по переменному символу из группы считывателей
func (c *Client) DeleteCard(ctx context.Context, accessGroup, variableSymbol string) error {
	endpoint := fmt.Sprintf("%s/groups/%s/cards/%s",
		c.baseURL, url.PathEscape(accessGroup), url.PathEscape(variableSymbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: variable_symbol=%s, error=%v", ErrServiceDegraded, variableSymbol, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return ErrCardNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrServiceDegraded, resp.StatusCode, string(body))
	}
}

// AddCardWithGracefulDegradation выдает доступ с graceful degradation
// При недоступности системы доступа возвращает ErrServiceDegraded:
// бронь остается в силе, менеджер выдает доступ вручную
func (c *Client) AddCardWithGracefulDegradation(ctx context.Context, grant CardGrant) error {
	c.log.Info("Granting access card variable_symbol=%s in group=%s", grant.VariableSymbol, grant.AccessGroup)

	if err := c.AddCard(ctx, grant); err != nil {
		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("Access card system unavailable, applying graceful degradation for variable_symbol=%s: %v",
			grant.VariableSymbol, err)
		return fmt.Errorf("%w: variable_symbol=%s, error=%v", ErrServiceDegraded, grant.VariableSymbol, err)
	}

	c.log.Info("Access card granted for variable_symbol=%s", grant.VariableSymbol)
	return nil
}

func (c *Client) send(ctx context.Context, method, endpoint string, grant CardGrant, op string) error {
	payload, err := json.Marshal(grant)
	if err != nil {
		return fmt.Errorf("%w: %s - failed to marshal request: %v", ErrInternal, op, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %s - failed to create request: %v", ErrInternal, op, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s - variable_symbol=%s, error=%v", ErrServiceDegraded, op, grant.VariableSymbol, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return ErrCardNotFound
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s - invalid grant payload", ErrInvalidResponse, op)
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: %s - unexpected status code %d: %s", ErrServiceDegraded, op, resp.StatusCode, string(body))
	}
}
