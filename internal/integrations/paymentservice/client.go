package paymentservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с PaymentService (эскроу средств за занятия)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента PaymentService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ReleaseToTutor переводит удержанные средства репетитору
func (c *Client) ReleaseToTutor(ctx context.Context, heldFundID int64, reference string) error {
	return c.moveFunds(ctx, MoveFundsRequest{
		HeldFundID: heldFundID,
		Operation:  OperationRelease,
		Reference:  reference,
	})
}

// RefundToLearner возвращает удержанные средства ученику
func (c *Client) RefundToLearner(ctx context.Context, heldFundID int64, reference string) error {
	return c.moveFunds(ctx, MoveFundsRequest{
		HeldFundID: heldFundID,
		Operation:  OperationRefund,
		Reference:  reference,
	})
}

// ReturnToTutorAccount возвращает средства на внутренний счет репетитора
func (c *Client) ReturnToTutorAccount(ctx context.Context, heldFundID int64, reference string) error {
	return c.moveFunds(ctx, MoveFundsRequest{
		HeldFundID: heldFundID,
		Operation:  OperationReturnToWallet,
		Reference:  reference,
	})
}

func (c *Client) moveFunds(ctx context.Context, payload MoveFundsRequest) error {
	url := fmt.Sprintf("%s/internal/held-funds/%d/move", c.baseURL, payload.HeldFundID)

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Сетевые ошибки и таймауты оборачиваем в ErrServiceUnavailable
		c.log.Error("PaymentService request failed for held_fund_id=%d operation=%s: %v",
			payload.HeldFundID, payload.Operation, err)
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return ErrFundNotFound
	default:
		respBody, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= http.StatusInternalServerError {
			c.log.Error("PaymentService returned %d for held_fund_id=%d", resp.StatusCode, payload.HeldFundID)
			return fmt.Errorf("%w: status code %d: %s", ErrServiceUnavailable, resp.StatusCode, string(respBody))
		}
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}
