// Package datalab provides a resilient client for the search-trend analytics
// endpoint and the trend analyzer built on top of it
package datalab

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	perr "keywordscout/internal/platform/errors"
	"keywordscout/internal/platform/logger"

	"golang.org/x/time/rate"
)

const (
	baseURLDefault   = "https://openapi.naver.com"
	searchPath       = "/v1/datalab/search"
	defaultTimeout   = 10 * time.Second
	defaultUA        = "keywordscout-datalab"
	defaultMaxRetry  = 3
	defaultRetryBase = 500 * time.Millisecond
	defaultWindow    = 90 // days of history requested per search
)

// MaxGroupKeywords is the provider's hard cap on keyword groups per request
const MaxGroupKeywords = 5

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// Provider credentials sent as headers on every request
	ClientID     string
	ClientSecret string

	// Retry config for transient and rate limited responses
	MaxRetries int
	RetryBase  time.Duration

	// MaxRPS throttles outbound requests client side. Zero disables
	MaxRPS float64

	// WindowDays is how much history each search asks for
	WindowDays int
}

// Client is a minimal analytics client with retries and client-side throttling
type Client struct {
	http    *http.Client
	opts    Options
	limiter *rate.Limiter
	log     logger.Logger
	now     func() time.Time
	sleep   func(time.Duration)
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	if o.WindowDays <= 0 {
		o.WindowDays = defaultWindow
	}
	var lim *rate.Limiter
	if o.MaxRPS > 0 {
		lim = rate.NewLimiter(rate.Limit(o.MaxRPS), 1)
	}
	return &Client{
		http:    &http.Client{Timeout: o.Timeout},
		opts:    o,
		limiter: lim,
		log:     *logger.Named("datalab"),
		now:     time.Now,
		sleep:   time.Sleep,
	}
}

// Search fetches relative-interest series for up to MaxGroupKeywords keywords.
// One keyword group per keyword so the provider reports them independently
func (c *Client) Search(ctx context.Context, keywords []string) (*searchResponse, error) {
	end := c.now()
	start := end.AddDate(0, 0, -c.opts.WindowDays)
	reqBody := searchRequest{
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
		TimeUnit:  "date",
	}
	for _, kw := range keywords {
		reqBody.KeywordGroups = append(reqBody.KeywordGroups, keywordGroup{
			GroupName: kw,
			Keywords:  []string{kw},
		})
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "datalab marshal request failed")
	}

	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+searchPath, bytes.NewReader(payload))
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "datalab new request failed")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Naver-Client-Id", c.opts.ClientID)
		req.Header.Set("X-Naver-Client-Secret", c.opts.ClientSecret)

		startAt := c.now()
		resp, err := c.http.Do(req)
		lat := c.now().Sub(startAt)

		if err != nil {
			if !c.shouldRetry(attempts) {
				return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "datalab do failed")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("datalab transport error retrying")
			c.sleep(back)
			attempts++
			continue
		}

		c.log.Debug().
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Int("keywords", len(keywords)).
			Dur("latency", lat).
			Msg("datalab http response")

		switch resp.StatusCode {
		case http.StatusOK:
			var out searchResponse
			derr := json.NewDecoder(resp.Body).Decode(&out)
			_ = resp.Body.Close()
			if derr != nil {
				return nil, perr.Wrapf(derr, perr.ErrorCodeJSON, "datalab decode response failed")
			}
			return &out, nil
		case http.StatusUnauthorized, http.StatusForbidden:
			_ = drainAndClose(resp.Body)
			return nil, perr.Unauthorizedf("datalab rejected credentials status %d", resp.StatusCode)
		case http.StatusTooManyRequests:
			if !c.shouldRetry(attempts) {
				_ = drainAndClose(resp.Body)
				return nil, perr.TooManyf("datalab rate limited")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("sleep", back).Msg("datalab rate limited backing off")
			_ = drainAndClose(resp.Body)
			c.sleep(back)
			attempts++
			continue
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			if !c.shouldRetry(attempts) {
				_ = drainAndClose(resp.Body)
				return nil, perr.Unavailablef("datalab transient server error")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("datalab transient error retrying")
			_ = drainAndClose(resp.Body)
			c.sleep(back)
			attempts++
			continue
		default:
			// read a small tail for diagnostics then return
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			_ = resp.Body.Close()
			return nil, perr.Newf(perr.ErrorCodeUnknown, "datalab unexpected status %d body %s", resp.StatusCode, string(body))
		}
	}
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase
	// simple exponential with cap
	ms := int64(d / time.Millisecond)
	ms = ms << uint(attempt)
	max := int64(30 * time.Second / time.Millisecond)
	if ms > max {
		ms = max
	}
	return time.Duration(ms) * time.Millisecond
}

func (c *Client) shouldRetry(attempt int) bool {
	return attempt < c.opts.MaxRetries
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 1<<20))
	return rc.Close()
}
