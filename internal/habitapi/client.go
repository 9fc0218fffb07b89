// Package habitapi is the HTTP client for the remote habit-tracking API.
package habitapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 512

	// isoTimestampLayout matches JavaScript's Date.prototype.toISOString.
	isoTimestampLayout = "2006-01-02T15:04:05.000Z"

	endpointDay     = "day"
	endpointSummary = "summary"
	endpointToggle  = "toggle"
)

type Options struct {
	BaseURL string
	// Token is sent as a bearer token when set.
	Token   string
	Timeout time.Duration
	// RequestsPerSecond <= 0 disables outbound throttling.
	RequestsPerSecond float64
	Burst             int
	HTTPClient        *http.Client
}

// Client is safe for concurrent use.
type Client struct {
	baseURL    *url.URL
	token      string
	timeout    time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
}

func New(opts Options) (*Client, error) {
	raw := strings.TrimSpace(opts.BaseURL)
	if raw == "" {
		return nil, fmt.Errorf("habit api base url is required")
	}
	baseURL, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse habit api base url: %w", err)
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, fmt.Errorf("habit api base url must be http or https, got %q", raw)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	return &Client{
		baseURL:    baseURL,
		token:      opts.Token,
		timeout:    timeout,
		httpClient: httpClient,
		limiter:    limiter,
	}, nil
}

// GetDay loads the habits possible on date and which of them are completed.
// date is sent as the UTC timestamp of its instant, the way browsers
// serialize a Date.
func (c *Client) GetDay(ctx context.Context, date time.Time) (DayHabits, error) {
	query := url.Values{}
	query.Set("date", date.UTC().Format(isoTimestampLayout))

	var day DayHabits
	if err := c.do(ctx, http.MethodGet, endpointDay, []string{"day"}, query, &day); err != nil {
		return DayHabits{}, err
	}
	if day.PossibleHabits == nil {
		day.PossibleHabits = []Habit{}
	}
	if day.CompletedHabits == nil {
		day.CompletedHabits = []string{}
	}
	return day, nil
}

// GetSummary loads the per-day completion summary.
func (c *Client) GetSummary(ctx context.Context) ([]DaySummary, error) {
	var summary []DaySummary
	if err := c.do(ctx, http.MethodGet, endpointSummary, []string{"summary"}, nil, &summary); err != nil {
		return nil, err
	}
	if summary == nil {
		summary = []DaySummary{}
	}
	return summary, nil
}

// ToggleHabit flips completion of habitID for the current day. The
// response body is ignored.
func (c *Client) ToggleHabit(ctx context.Context, habitID string) error {
	habitID = strings.TrimSpace(habitID)
	if habitID == "" {
		return ErrEmptyHabitID
	}
	return c.do(ctx, http.MethodPatch, endpointToggle, []string{"habits", habitID, "toggle"}, nil, nil)
}

func (c *Client) do(ctx context.Context, method, endpoint string, segments []string, query url.Values, dst any) (err error) {
	start := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		requestsTotal.WithLabelValues(endpoint, outcome).Inc()
		requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("habit api rate limit wait: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target := c.baseURL.JoinPath(segments...)
	if query != nil {
		target.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), nil)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("habit api %s %s: %w", method, target.Path, err)
	}
	defer resp.Body.Close()

	log.Ctx(ctx).Debug().
		Str("method", method).
		Str("url", target.String()).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Habit API request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{
			Method:     method,
			Endpoint:   target.Path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if dst == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode habit api %s response: %w", endpoint, err)
	}
	return nil
}
