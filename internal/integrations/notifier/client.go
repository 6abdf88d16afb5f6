package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

// Client клиент для работы с NotificationService
//
// Все уведомления отправляются best-effort: транзакция бронирования к этому
// моменту уже закоммичена, поэтому ошибки доставки только логируются и
// никогда не влияют на результат операции
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotificationService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// BookingConfirmed уведомляет об успешном создании бронирования
func (c *Client) BookingConfirmed(ctx context.Context, booking *domain.Booking) error {
	return c.send(ctx, "booking-confirmed", eventFromBooking(booking))
}

// BookingCancelled уведомляет об отмене бронирования
func (c *Client) BookingCancelled(ctx context.Context, booking *domain.Booking) error {
	return c.send(ctx, "booking-cancelled", eventFromBooking(booking))
}

// send отправляет событие в NotificationService
func (c *Client) send(ctx context.Context, event string, payload BookingEvent) error {
	url := fmt.Sprintf("%s/internal/notifications/%s", c.baseURL, event)

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal payload: %v", ErrInternal, err)
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

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	c.log.Info("Notification %s sent for booking id=%d", event, payload.BookingID)
	return nil
}
