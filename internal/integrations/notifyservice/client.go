package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ClubScheduleService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с NotifyService
// Доставка уведомлений для этого сервиса fire-and-forget: ошибка доставки
// логируется и никогда не откатывает переход статуса
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

// Notify отправляет уведомление об изменении статуса заявки
func (c *Client) Notify(ctx context.Context, kind NotificationKind, absence *domain.AbsenceRequest) error {
	url := fmt.Sprintf("%s/internal/notifications", c.baseURL)

	payload := notifyRequest{
		Kind:       string(kind),
		MemberID:   absence.MemberID,
		AbsenceID:  absence.ID,
		SlotID:     absence.SlotID,
		AbsentDate: absence.AbsentDate.Format(domain.DateFormat),
	}
	if absence.MakeupDate != nil {
		d := absence.MakeupDate.Format(domain.DateFormat)
		payload.MakeupDate = &d
	}
	if absence.MakeupDeadline != nil {
		d := absence.MakeupDeadline.Format(time.RFC3339)
		payload.Deadline = &d
	}

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

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusCreated:
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}

// NotifyAsync отправляет уведомление в фоне, не блокируя вызывающий код
// Контекст запроса к этому моменту уже мог завершиться, поэтому для
// доставки выделяется собственный таймаут
func (c *Client) NotifyAsync(kind NotificationKind, absence *domain.AbsenceRequest) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.httpClient.Timeout)
		defer cancel()

		if err := c.Notify(ctx, kind, absence); err != nil {
			c.log.Error("NotifyAsync: failed to deliver %s for absence id=%d: %v", kind, absence.ID, err)
			return
		}
		c.log.Info("NotifyAsync: delivered %s for absence id=%d", kind, absence.ID)
	}()
}
