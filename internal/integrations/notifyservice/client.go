package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с NotifyService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotifyService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет уведомление получателю
func (c *Client) Send(ctx context.Context, notification Notification) error {
	url := fmt.Sprintf("%s/internal/notifications", c.baseURL)

	body, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal notification: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusCreated:
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}

// SendWithGracefulDegradation отправляет уведомление с graceful degradation.
// Любая ошибка доставки конвертируется в ErrServiceDegraded: вызывающая
// сторона логирует её и продолжает работу - бронирование не откатывается.
func (c *Client) SendWithGracefulDegradation(ctx context.Context, notification Notification) error {
	c.log.Info("Sending notification to %s", notification.Email)

	if err := c.Send(ctx, notification); err != nil {
		c.log.Error("NotifyService unavailable, applying graceful degradation for %s: %v", notification.Email, err)
		return fmt.Errorf("%w: email=%s, error=%v", ErrServiceDegraded, notification.Email, err)
	}

	c.log.Info("Notification delivered to %s", notification.Email)
	return nil
}
