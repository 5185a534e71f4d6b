package minfraud

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/hugochinchilla79/minfraud_sdk/models"
)

// Version is reported in the User-Agent header.
const Version = "1.0.0"

// Client sends transactions to the minFraud legacy scoring service.
type Client struct {
	cfg        Config
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient validates the configuration and prepares a pooled HTTP client
// for the selected minFraud host.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	httpClient, err := newHTTPClient(cfg)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(discardHandler{})
	}

	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		baseURL:    cfg.BaseURL(),
		logger:     logger,
	}, nil
}

// BaseURL returns the host requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

type sendOptions struct {
	path   string
	adjust func(map[string]models.Value)
}

// SendOption configures a single SendTransaction call.
type SendOption func(*sendOptions)

// WithPath overrides the endpoint path for one call.
func WithPath(path string) SendOption {
	return func(o *sendOptions) { o.path = path }
}

// WithAdjustment registers a function that may modify the decoded fields
// before the Response is frozen.
func WithAdjustment(fn func(map[string]models.Value)) SendOption {
	return func(o *sendOptions) { o.adjust = fn }
}

// SendTransaction encodes txn as query parameters, performs the GET request
// and decodes the response.
//
// Connection failures and non-2xx statuses are returned as *TransportError;
// fatal service codes as *ServiceError.
func (c *Client) SendTransaction(ctx context.Context, txn *Transaction, opts ...SendOption) (*Response, error) {
	o := sendOptions{path: c.cfg.EndpointPath()}
	for _, opt := range opts {
		opt(&o)
	}

	target := c.baseURL + "/" + strings.TrimLeft(o.path, "/")
	query := EncodeQuery(txn)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("minfraud: create HTTP request: %w", err)
	}
	httpReq.Header.Set("Connection", "keep-alive")
	httpReq.Header.Set("User-Agent", fmt.Sprintf("minfraud-go/%s (%s)", Version, runtime.Version()))

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.DebugContext(ctx, "minfraud request failed", "url", target, "error", err)
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	c.logger.DebugContext(ctx, "minfraud response received",
		"url", target,
		"status", resp.StatusCode,
		"bytes", len(body),
		"duration", time.Since(start),
	)

	success := resp.StatusCode >= 200 && resp.StatusCode < 300
	return DecodeResponse(resp.StatusCode, body, success, o.adjust)
}

// CloseIdleConnections closes pooled connections that are not in use.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool { return false }

func (discardHandler) Handle(context.Context, slog.Record) error { return nil }

func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h discardHandler) WithGroup(string) slog.Handler { return h }
