package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"creditscores/internal/api"
	"creditscores/internal/config"
	"creditscores/internal/logging"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

const collectionPath = "/creditscores"

// ErrNotFound reports that the server has no record with the requested id.
var ErrNotFound = errors.New("credit score not found")

// APIError describes a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, msg)
}

// Option customizes a Client.
type Option func(*Client)

// WithLogger routes resty diagnostics through the given logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient swaps the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// Client issues credit score API requests.
type Client struct {
	baseURL    string
	timeout    time.Duration
	logger     *slog.Logger
	httpClient *http.Client
	rest       *resty.Client
}

// New constructs a client for the API rooted at baseURL.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		timeout: timeout,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	var rc *resty.Client
	if c.httpClient != nil {
		rc = resty.NewWithClient(c.httpClient)
	} else {
		rc = resty.New()
	}
	rc.SetBaseURL(c.baseURL).
		SetHeader("Accept", "application/json").
		SetLogger(restyLogger{logger: c.logger})
	if timeout > 0 {
		rc.SetTimeout(timeout)
	}
	c.rest = rc
	return c
}

// NewFromConfig builds a client from the [client] config section.
func NewFromConfig(cfg *config.Config, opts ...Option) *Client {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	return New(cfg.Client.ServerURL, cfg.ClientTimeout(), opts...)
}

// BaseURL returns the API root the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) request(ctx context.Context) *resty.Request {
	if ctx == nil {
		ctx = context.Background()
	}
	return c.rest.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, uuid.NewString())
}

// List fetches every record.
func (c *Client) List(ctx context.Context) ([]api.CreditScore, error) {
	var out api.CreditScoreListResponse
	resp, err := c.request(ctx).Get(collectionPath)
	if err != nil {
		return nil, fmt.Errorf("list credit scores: %w", err)
	}
	if err := decode(resp, &out); err != nil {
		return nil, fmt.Errorf("list credit scores: %w", err)
	}
	if out.CreditScores == nil {
		out.CreditScores = []api.CreditScore{}
	}
	return out.CreditScores, nil
}

// Get fetches one record. A missing id returns ErrNotFound.
func (c *Client) Get(ctx context.Context, id int64) (*api.CreditScore, error) {
	var out api.CreditScoreResponse
	resp, err := c.request(ctx).Get(itemPath(id))
	if err != nil {
		return nil, fmt.Errorf("get credit score %d: %w", id, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if err := decode(resp, &out); err != nil {
		return nil, fmt.Errorf("get credit score %d: %w", id, err)
	}
	return &out.CreditScore, nil
}

// Create stores a new record and returns the server's response, including
// the full created record.
func (c *Client) Create(ctx context.Context, score, userID int64) (*api.CreateResponse, error) {
	body := api.CreateRequest{Score: api.NewInt(score), UserID: api.NewInt(userID)}
	var out api.CreateResponse
	resp, err := c.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(collectionPath)
	if err != nil {
		return nil, fmt.Errorf("create credit score: %w", err)
	}
	if err := decode(resp, &out); err != nil {
		return nil, fmt.Errorf("create credit score: %w", err)
	}
	if out.CreditScore.ID == 0 {
		out.CreditScore.ID = out.ID
	}
	return &out, nil
}

// UpdateScore changes a record's score and returns the reported change count.
func (c *Client) UpdateScore(ctx context.Context, id, score int64) (int64, error) {
	body := api.UpdateRequest{Score: api.NewInt(score)}
	var out api.ChangeResponse
	resp, err := c.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Put(itemPath(id))
	if err != nil {
		return 0, fmt.Errorf("update credit score %d: %w", id, err)
	}
	if err := decode(resp, &out); err != nil {
		return 0, fmt.Errorf("update credit score %d: %w", id, err)
	}
	return out.Changes, nil
}

// Delete removes a record and returns the reported change count.
func (c *Client) Delete(ctx context.Context, id int64) (int64, error) {
	var out api.ChangeResponse
	resp, err := c.request(ctx).Delete(itemPath(id))
	if err != nil {
		return 0, fmt.Errorf("delete credit score %d: %w", id, err)
	}
	if err := decode(resp, &out); err != nil {
		return 0, fmt.Errorf("delete credit score %d: %w", id, err)
	}
	return out.Changes, nil
}

// Health queries the server liveness endpoint.
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var out api.HealthResponse
	resp, err := c.request(ctx).Get("/healthz")
	if err != nil {
		return nil, fmt.Errorf("health check: %w", err)
	}
	if err := decode(resp, &out); err != nil {
		return nil, fmt.Errorf("health check: %w", err)
	}
	return &out, nil
}

func itemPath(id int64) string {
	return collectionPath + "/" + strconv.FormatInt(id, 10)
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func decode(resp *resty.Response, out any) error {
	if resp.IsError() || resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode()}
		var body errorBody
		if err := json.Unmarshal(resp.Body(), &body); err == nil {
			apiErr.Message = body.Error
			if apiErr.Message == "" {
				apiErr.Message = body.Message
			}
		}
		if apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(resp.Body()))
		}
		return apiErr
	}
	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type restyLogger struct {
	logger *slog.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), logging.String(logging.FieldComponent, "http-client"))
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.logger.Warn(strings.TrimSpace(fmt.Sprintf(format, v...)), logging.String(logging.FieldComponent, "http-client"))
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)), logging.String(logging.FieldComponent, "http-client"))
}
