package idosell

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vadim/order-metrics/internal/domain/orders/entity"
)

const (
	defaultBaseURL = "https://vedion.pl/api/admin/v5"
	defaultTimeout = 30 * time.Second

	searchOrdersPath = "/orders/orders/search"
)

// Client is an IdoSell admin API client for order search
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// ClientOption is a function that configures the Client
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithAPIKey sets the X-API-KEY credential
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// New creates a new IdoSell API client
func New(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type searchRequest struct {
	Params searchParams `json:"params"`
}

type searchParams struct {
	OrdersStatuses []string `json:"ordersStatuses"`
}

type searchResponse struct {
	Results []entity.Order `json:"Results"`
}

// SearchOrders returns all orders in the given status.
// 207 Multi-Status is treated as success, any other non-200 status yields *entity.FetchError.
func (c *Client) SearchOrders(ctx context.Context, status entity.Status) ([]entity.Order, error) {
	payload, err := json.Marshal(searchRequest{
		Params: searchParams{OrdersStatuses: []string{string(status)}},
	})
	if err != nil {
		return nil, fmt.Errorf("encoding search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+searchOrdersPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	var out searchResponse
	if err := c.do(req, status, &out); err != nil {
		return nil, err
	}

	if out.Results == nil {
		return []entity.Order{}, nil
	}
	return out.Results, nil
}

// do executes an HTTP request and decodes the response
func (c *Client) do(req *http.Request, status entity.Status, out interface{}) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusMultiStatus {
		return &entity.FetchError{
			Status:     status,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
