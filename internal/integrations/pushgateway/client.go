package pushgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с push-шлюзом
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента push-шлюза
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Push отправляет уведомление на устройства пользователя
func (c *Client) Push(ctx context.Context, push *PushRequest) error {
	url := fmt.Sprintf("%s/internal/push", c.baseURL)

	body, err := json.Marshal(push)
	if err != nil {
		return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", push.EventID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Push: gateway unavailable for user=%d: %v", push.UserID, err)
		return fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		c.log.Info("Push: delivered %s to user=%d", push.Kind, push.UserID)
		return nil
	case http.StatusNotFound:
		// У пользователя нет зарегистрированных устройств
		c.log.Info("Push: no devices for user=%d", push.UserID)
		return ErrNoDevices
	case http.StatusBadRequest:
		return fmt.Errorf("%w: request rejected", ErrInvalidResponse)
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, decodeError(respBody))
	}
}

// decodeError достает сообщение из ErrorResponse, если тело в этом формате
func decodeError(body []byte) string {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return errResp.Message
	}
	return string(body)
}
