// Package fetch implements the pipeline's network collaborators: the
// listing content fetcher and the search provider adapter.
package fetch

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Options configures the HTTP fetcher.
type Options struct {
	UserAgent      string
	Timeout        time.Duration
	MaxRetries     int
	MaxBodyBytes   int64
	RequestsPerSec float64
}

// Fetcher downloads listing pages and reduces them to plain text.
// Ordinary HTTP failures (4xx/5xx after retries, unreachable hosts)
// yield empty content with a nil error so callers treat the listing as
// unavailable and move on.
type Fetcher struct {
	http         *http.Client
	limiter      *rate.Limiter
	userAgent    string
	maxRetries   int
	maxBodyBytes int64
}

// New creates a Fetcher with courtesy rate limiting.
func New(opts Options) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 512 * 1024
	}
	if opts.RequestsPerSec <= 0 {
		opts.RequestsPerSec = 2
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "Mozilla/5.0 (compatible; rentscout/1.0)"
	}
	return &Fetcher{
		http: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter:      rate.NewLimiter(rate.Limit(opts.RequestsPerSec), 1),
		userAgent:    opts.UserAgent,
		maxRetries:   opts.MaxRetries,
		maxBodyBytes: opts.MaxBodyBytes,
	}
}

// Fetch downloads a listing URL and returns its text content. The
// returned error is reserved for broken machinery (bad URL, canceled
// context); upstream HTTP failures return ("", nil).
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", err
	}

	body, ok, err := f.get(ctx, url)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	return flattenHTML(body), nil
}

// get performs the HTTP GET with retries on transient failures. The
// boolean reports whether usable content came back.
func (f *Fetcher) get(ctx context.Context, url string) (string, bool, error) {
	backoff := 1 * time.Second
	attempts := f.maxRetries + 1

	for attempt := 1; attempt <= attempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return "", false, eris.Wrapf(err, "fetch: create request %s", url)
		}
		req.Header.Set("User-Agent", f.userAgent)
		req.Header.Set("Accept", "text/html,application/xhtml+xml")

		resp, err := f.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return "", false, ctx.Err()
			}
			zap.L().Debug("fetch: request failed",
				zap.String("url", url),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
		} else {
			body, readErr := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes))
			_ = resp.Body.Close()

			switch {
			case readErr != nil:
				zap.L().Debug("fetch: read failed", zap.String("url", url), zap.Error(readErr))
			case resp.StatusCode == http.StatusOK:
				return string(body), true, nil
			case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
				zap.L().Debug("fetch: retryable status",
					zap.String("url", url),
					zap.Int("status", resp.StatusCode),
				)
			default:
				// Hard client errors (404, 410, 403) are final.
				zap.L().Debug("fetch: listing unavailable",
					zap.String("url", url),
					zap.Int("status", resp.StatusCode),
				)
				return "", false, nil
			}
		}

		if attempt < attempts {
			select {
			case <-ctx.Done():
				return "", false, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
	}

	return "", false, nil
}

// flattenHTML strips script/style and collapses markup to text, keeping
// the raw markup appended so attribute extraction can still see img
// tags and inline styles.
func flattenHTML(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return body
	}
	doc.Find("script, style, noscript").Remove()
	text := strings.TrimSpace(doc.Text())
	if text == "" {
		return body
	}
	return text + "\n\n" + body
}
