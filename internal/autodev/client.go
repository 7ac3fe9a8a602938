// Package autodev implements the HTTP client for the auto.dev vehicle
// listings API. Requests are context-aware, paced by a shared rate limiter,
// and authenticated with a bearer token; transient transport failures are
// retried per request by the underlying retryable client.
package autodev

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"github.com/unleaded-cli/unleaded/internal/schema"
)

const (
	// DefaultBaseURL is the fixed listings endpoint.
	DefaultBaseURL = "https://api.auto.dev/listings"

	// PageSize is the upper bound on records returned per page request.
	PageSize = 100

	defaultTimeout    = 30 * time.Second
	defaultRatePerSec = 4
)

// StatusError is a non-success HTTP response from the listings endpoint.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("listings API: HTTP %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// Client is the auto.dev listings API client.
type Client struct {
	baseURL string
	apiKey  string
	http    *retryablehttp.Client
	limiter *rate.Limiter
}

// NewClient creates a Client authenticating with apiKey. An empty baseURL
// selects the production endpoint.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	rc := retryablehttp.NewClient()
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.RetryMax = 3
	rc.HTTPClient.Timeout = defaultTimeout
	rc.Logger = nil

	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    rc,
		limiter: rate.NewLimiter(rate.Limit(defaultRatePerSec), defaultRatePerSec),
	}
}

// Page fetches and validates one page of listings (1-based). It returns the
// decoded listings together with the raw response body so callers can
// persist it for diagnostics. A non-2xx status yields a *StatusError; a
// malformed body yields a *schema.ValidationError.
func (c *Client) Page(ctx context.Context, params SearchParams, page int) ([]schema.Listing, []byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, nil, err
	}

	reqURL := c.baseURL + "?" + params.Query(page, PageSize).Encode()
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("listings page %d: %w", page, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("reading page %d body: %w", page, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	listings, err := schema.DecodeAPIResponse(body)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding page %d: %w", page, err)
	}
	return listings, body, nil
}
