package schedule

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

// Client клиент внешнего календарного сервиса
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр календарного клиента
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ListEvents получает события календаря, пересекающие окно [from, to)
func (c *Client) ListEvents(ctx context.Context, calendarID string, from, to time.Time) ([]Event, error) {
	endpoint := fmt.Sprintf("%s/calendars/%s/events?from=%s&to=%s",
		c.baseURL,
		url.PathEscape(calendarID),
		url.QueryEscape(from.Format(time.RFC3339)),
		url.QueryEscape(to.Format(time.RFC3339)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Сетевая ошибка или таймаут: календарь недоступен, оценивать занятость нельзя
		c.log.Error("Schedule service unreachable for calendar_id=%s: %v", calendarID, err)
		return nil, fmt.Errorf("%w: calendar_id=%s, error=%v", ErrUnavailable, calendarID, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid calendar ID or window", ErrInvalidResponse)
	default:
		body, _ := io.ReadAll(resp.Body)
		c.log.Error("Schedule service returned status %d for calendar_id=%s", resp.StatusCode, calendarID)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var events []Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return events, nil
}

// InsertEvent добавляет событие во внешний календарь и возвращает его идентификатор
func (c *Client) InsertEvent(ctx context.Context, request InsertEventRequest) (string, error) {
	endpoint := fmt.Sprintf("%s/calendars/%s/events", c.baseURL, url.PathEscape(request.CalendarID))

	payload, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Schedule service unreachable on insert for calendar_id=%s: %v", request.CalendarID, err)
		return "", fmt.Errorf("%w: calendar_id=%s, error=%v", ErrUnavailable, request.CalendarID, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return "", fmt.Errorf("%w: invalid event payload", ErrInvalidResponse)
	default:
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: unexpected status code %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}

	var created Event
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("Inserted schedule event id=%s into calendar_id=%s", created.ID, request.CalendarID)
	return created.ID, nil
}

// UpdateEvent изменяет событие внешнего календаря
func (c *Client) UpdateEvent(ctx context.Context, calendarID, eventID string, request UpdateEventRequest) error {
	endpoint := fmt.Sprintf("%s/calendars/%s/events/%s",
		c.baseURL, url.PathEscape(calendarID), url.PathEscape(eventID))

	payload, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Schedule service unreachable on update for event_id=%s: %v", eventID, err)
		return fmt.Errorf("%w: event_id=%s, error=%v", ErrUnavailable, eventID, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return ErrEventNotFound
	case http.StatusBadRequest:
		return fmt.Errorf("%w: invalid event payload", ErrInvalidResponse)
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}
}

// DeleteEvent удаляет событие из внешнего календаря
func (c *Client) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	endpoint := fmt.Sprintf("%s/calendars/%s/events/%s",
		c.baseURL, url.PathEscape(calendarID), url.PathEscape(eventID))

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Schedule service unreachable on delete for event_id=%s: %v", eventID, err)
		return fmt.Errorf("%w: event_id=%s, error=%v", ErrUnavailable, eventID, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return ErrEventNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}
}
