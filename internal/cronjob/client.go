package cronjob

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// TransportError covers network, timeout and bad-response failures while
// talking to the API. Jobs log it and exit cleanly; it never propagates past
// the job boundary.
type TransportError struct {
	Op  string
	Err error
}

func (e TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e TransportError) Unwrap() error {
	return e.Err
}

// Client calls the CRM API on behalf of the scheduled jobs. Every call is
// bounded by the configured timeout.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type RestockedProduct struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type RestockResponse struct {
	Products []RestockedProduct `json:"products"`
	Success  bool               `json:"success"`
	Message  string             `json:"message"`
}

// UpdateLowStockProducts triggers the replenishment mutation.
func (c *Client) UpdateLowStockProducts(ctx context.Context) (*RestockResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/products/restock", nil)
	if err != nil {
		return nil, TransportError{Op: "build restock request", Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, TransportError{Op: "call restock endpoint", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, TransportError{Op: "call restock endpoint", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var result RestockResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, TransportError{Op: "decode restock response", Err: err}
	}
	return &result, nil
}

type ReminderOrder struct {
	ID            string    `json:"id"`
	OrderDate     time.Time `json:"orderDate"`
	CustomerEmail string    `json:"customerEmail"`
}

// OrdersSince queries orders with an order date on or after the given day.
func (c *Client) OrdersSince(ctx context.Context, since time.Time) ([]ReminderOrder, error) {
	url := fmt.Sprintf("%s/orders?since=%s", c.baseURL, since.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, TransportError{Op: "build orders request", Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, TransportError{Op: "call orders endpoint", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, TransportError{Op: "call orders endpoint", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var result struct {
		Orders []ReminderOrder `json:"orders"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, TransportError{Op: "decode orders response", Err: err}
	}
	return result.Orders, nil
}
