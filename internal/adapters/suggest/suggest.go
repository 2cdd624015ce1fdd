// Package suggest provides keyword suggestion sources: a remote autocomplete
// client and a deterministic offline stand-in for unconfigured environments
package suggest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	perr "keywordscout/internal/platform/errors"
	"keywordscout/internal/platform/logger"
)

const (
	baseURLDefault  = "https://ac.search.naver.com"
	acPath          = "/nx/ac"
	defaultTimeout  = 5 * time.Second
	defaultUA       = "keywordscout-suggest"
	defaultMaxItems = 10
)

// offlineSuffixes are the fixed fallback expansions, intent-ordered
var offlineSuffixes = []string{"recommendation", "method", "review"}

// Options configures the Remote suggester
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// MaxResults caps suggestions per seed when the caller passes max <= 0
	MaxResults int
}

// Remote fetches suggestions from the autocomplete endpoint.
// Failures surface as recoverable errors alongside an empty slice so the
// pipeline can degrade instead of aborting
type Remote struct {
	http *http.Client
	opts Options
	log  logger.Logger
}

// NewRemote creates a Remote suggester with sane defaults
func NewRemote(o Options) *Remote {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxResults <= 0 {
		o.MaxResults = defaultMaxItems
	}
	return &Remote{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("suggest"),
	}
}

// acResponse mirrors the provider's nested items array: the first group holds
// the completions, each as an array whose first element is the keyword
type acResponse struct {
	Items [][][]string `json:"items"`
}

// Suggest returns up to max completions for seed. max <= 0 uses the
// configured default
func (r *Remote) Suggest(ctx context.Context, seed string, max int) ([]string, error) {
	seed = strings.TrimSpace(seed)
	if seed == "" {
		return nil, perr.Validationf("seed keyword must not be empty")
	}
	if max <= 0 {
		max = r.opts.MaxResults
	}

	q := url.Values{}
	q.Set("q", seed)
	q.Set("st", "100")
	q.Set("r_format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.opts.BaseURL+acPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "suggest new request failed")
	}
	req.Header.Set("User-Agent", r.opts.UserAgent)

	resp, err := r.http.Do(req)
	if err != nil {
		r.log.Warn().Err(err).Str("seed", seed).Msg("suggest transport error")
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "suggest do failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		r.log.Warn().Int("status", resp.StatusCode).Str("seed", seed).Msg("suggest unexpected status")
		return nil, perr.Unavailablef("suggest unexpected status %d", resp.StatusCode)
	}

	var body acResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "suggest decode failed")
	}
	if len(body.Items) == 0 {
		return nil, nil
	}

	out := make([]string, 0, max)
	for _, entry := range body.Items[0] {
		if len(entry) == 0 {
			continue
		}
		kw := strings.TrimSpace(entry[0])
		if kw == "" {
			continue
		}
		out = append(out, kw)
		if len(out) >= max {
			break
		}
	}
	return out, nil
}

// Offline is the deterministic no-network suggester. It appends a fixed
// suffix set to the seed, which keeps the pipeline usable without credentials
type Offline struct{}

// NewOffline creates the offline suggester
func NewOffline() Offline { return Offline{} }

// Suggest returns seed + suffix variants, capped at max when max > 0
func (Offline) Suggest(_ context.Context, seed string, max int) ([]string, error) {
	seed = strings.TrimSpace(seed)
	if seed == "" {
		return nil, perr.Validationf("seed keyword must not be empty")
	}
	out := make([]string, 0, len(offlineSuffixes))
	for _, suf := range offlineSuffixes {
		out = append(out, seed+" "+suf)
		if max > 0 && len(out) >= max {
			break
		}
	}
	return out, nil
}
