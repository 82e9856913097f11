// Package platform is the typed client for the hosted backend the portal
// delegates persistence and identity to. The contract is the platform's
// public REST surface: auth token grants, table reads and inserts, and one
// stored-procedure call for balance adjustment. The client never reaches
// below that surface.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sprintstackagency/airtime-niger-simplicity/internal/infra/httpclient"
)

// CallObserver receives the outcome of every platform round trip.
// *metrics.Collector satisfies it; nil disables observation.
type CallObserver interface {
	ObservePlatformCall(operation, result string, duration time.Duration)
}

type Client struct {
	baseURL    string
	anonKey    string
	serviceKey string
	httpClient *http.Client
	logger     *zap.Logger
	observer   CallObserver
}

type Config struct {
	BaseURL    string
	AnonKey    string
	ServiceKey string
	Timeout    time.Duration
	Logger     *zap.Logger
	Observer   CallObserver
}

func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("platform base url is empty")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:    baseURL,
		anonKey:    strings.TrimSpace(cfg.AnonKey),
		serviceKey: strings.TrimSpace(cfg.ServiceKey),
		httpClient: httpclient.New(cfg.Timeout),
		logger:     logger,
		observer:   cfg.Observer,
	}, nil
}

// do performs one round trip. bearer is the Authorization credential: the
// privileged service key for table/RPC calls, or an end-user access token for
// auth endpoints. out may be nil for calls without a response body.
func (c *Client) do(ctx context.Context, operation, method, path string, query url.Values, headers map[string]string, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", operation, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create %s request: %w", operation, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.anonKey != "" {
		req.Header.Set("apikey", c.anonKey)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(operation, "transport_error", start)
		return fmt.Errorf("call platform %s: %w", operation, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		apiErr := decodeAPIError(resp)
		c.observe(operation, fmt.Sprintf("http_%d", resp.StatusCode), start)
		c.logger.Debug("platform call failed",
			zap.String("operation", operation),
			zap.Int("status", resp.StatusCode),
			zap.Error(apiErr),
		)
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.observe(operation, "decode_error", start)
			return fmt.Errorf("decode %s response: %w", operation, err)
		}
	}

	c.observe(operation, "ok", start)
	return nil
}

func (c *Client) observe(operation, result string, start time.Time) {
	if c.observer == nil {
		return
	}
	c.observer.ObservePlatformCall(operation, result, time.Since(start))
}

func (c *Client) serviceHeaders() map[string]string {
	return map[string]string{"Authorization": "Bearer " + c.serviceKey}
}

func bearerHeaders(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func withUserField(userID string, err error) []zap.Field {
	return []zap.Field{zap.String("user_id", userID), zap.Error(err)}
}
