package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/cwmarketing/loyalty-go/pkg/config"
	pkgerrors "github.com/cwmarketing/loyalty-go/pkg/errors"
	"github.com/cwmarketing/loyalty-go/pkg/logger"
	"github.com/cwmarketing/loyalty-go/pkg/metrics"
)

const (
	headerAccessKey = "Company-Access-Key"
	// The backend expects this exact spelling.
	headerLoyaltyID = "Loyalaty-Id"
	headerSourceID  = "Source-Id"
)

// Client is the authenticated HTTP core shared by every backend
// service: header injection, retries, error mapping, and metrics live
// here so the services stay declarative.
type Client struct {
	cfg        config.APIConfig
	httpClient *http.Client
	logg       *logger.Logger
	apiMetrics *metrics.APIMetrics

	tokenMu sync.RWMutex
	token   string
}

// New builds the transport. Logger is required; metrics may be nil.
func New(cfg config.APIConfig, logg *logger.Logger, apiMetrics *metrics.APIMetrics) (*Client, error) {
	if logg == nil {
		return nil, fmt.Errorf("transport logger required")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("transport base url required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		logg:       logg,
		apiMetrics: apiMetrics,
	}, nil
}

// SetToken arms the Authorization header for subsequent requests.
func (c *Client) SetToken(token string) {
	c.tokenMu.Lock()
	c.token = token
	c.tokenMu.Unlock()
}

// Token returns the currently armed access token.
func (c *Client) Token() string {
	c.tokenMu.RLock()
	defer c.tokenMu.RUnlock()
	return c.token
}

// PageQuery builds the standard pagination parameters.
func (c *Client) PageQuery(page int64) url.Values {
	q := url.Values{}
	limit := c.cfg.DefaultPageLimit
	if limit <= 0 {
		limit = 100
	}
	q.Set("limit", strconv.FormatInt(limit, 10))
	if page > 0 {
		q.Set("page", strconv.FormatInt(page, 10))
	}
	return q
}

// Get issues an authenticated GET and decodes the JSON response.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues an authenticated JSON POST and decodes the response.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Delete issues an authenticated JSON DELETE.
func (c *Client) Delete(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, body, out)
}

// GetRaw fetches an arbitrary absolute URL and returns the body bytes.
// Used by the image layer, which talks to the CDN rather than the API.
func (c *Client) GetRaw(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "build request")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch "+rawURL)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, pkgerrors.New(pkgerrors.FromStatus(resp.StatusCode), fmt.Sprintf("fetch %s: status %d", rawURL, resp.StatusCode))
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := path
	fullURL := strings.TrimRight(c.cfg.BaseURL, "/") + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "encode request body")
		}
		payload = encoded
	}

	start := time.Now()
	backoff := retry.WithMaxRetries(c.cfg.RetryMax, retry.NewExponential(c.baseDelay()))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		return c.attempt(ctx, method, fullURL, payload, out)
	})

	c.apiMetrics.ObserveDuration(endpoint, time.Since(start))
	if err != nil {
		c.apiMetrics.IncFailure(endpoint)
		lctx := c.logg.WithEndpoint(ctx, endpoint)
		c.logg.Error(lctx, fmt.Sprintf("%s %s failed", method, endpoint), err)
		return err
	}
	c.apiMetrics.IncSuccess(endpoint)
	return nil
}

func (c *Client) attempt(ctx context.Context, method, fullURL string, payload []byte, out any) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "build request")
	}
	c.setHeaders(req, payload != nil)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return retry.RetryableError(pkgerrors.Wrap(pkgerrors.CodeDependency, err, "request failed"))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return retry.RetryableError(pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read response"))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		code := pkgerrors.FromStatus(resp.StatusCode)
		apiErr := pkgerrors.New(code, fmt.Sprintf("%s %s: status %d", method, req.URL.Path, resp.StatusCode)).
			WithDetails(detailFrom(raw))
		if pkgerrors.Retryable(code) {
			return retry.RetryableError(apiErr)
		}
		return apiErr
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode response")
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request, hasBody bool) {
	req.Header.Set(headerAccessKey, c.cfg.CompanyAccessKey)
	req.Header.Set(headerLoyaltyID, c.cfg.LoyaltyID)
	if c.cfg.SourceID != "" {
		req.Header.Set(headerSourceID, c.cfg.SourceID)
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
}

func (c *Client) baseDelay() time.Duration {
	if c.cfg.RetryBaseDelay > 0 {
		return c.cfg.RetryBaseDelay
	}
	return 250 * time.Millisecond
}

// detailFrom pulls the backend's error text out of a failure payload.
func detailFrom(raw []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return strings.TrimSpace(string(raw))
}
