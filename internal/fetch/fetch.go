package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultUserAgent is the browser-like client identity sent with every request.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36"

const (
	// DefaultMaxAttempts counts the first request, so it allows two retries.
	// It is not a retry budget on top of the initial attempt.
	DefaultMaxAttempts       = 3
	DefaultPerRequestTimeout = 10 * time.Second
	DefaultBackoffBase       = time.Second
	DefaultMaxBackoff        = 30 * time.Second
	DefaultRedirectMaxHops   = 10
	DefaultMaxBodyBytes      = 10 << 20
)

// Result is a successfully fetched page with its body decoded to UTF-8.
type Result struct {
	URL         string
	FinalURL    string
	StatusCode  int
	ContentType string
	// Encoding is the name of the charset the body was decoded from.
	Encoding string
	Body     string
	Attempts int
}

// Client wraps http.Client and provides a fixed user agent, per-request
// timeouts and bounded retry with exponential backoff on transient errors.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	// MaxAttempts includes the initial attempt. Zero means DefaultMaxAttempts.
	MaxAttempts int
	// PerRequestTimeout bounds each attempt, body read included.
	PerRequestTimeout time.Duration
	// BackoffBase is the delay before the second attempt; it doubles after
	// every further failure.
	BackoffBase time.Duration
	MaxBackoff  time.Duration

	// RedirectMaxHops caps redirect following to avoid loops.
	RedirectMaxHops int
	MaxBodyBytes    int64

	Logger *zerolog.Logger

	once sync.Once
	hc   *http.Client
}

// Fetch issues a GET for rawURL, retrying 429/5xx gateway statuses and
// connection-level failures. Failures after the last attempt are returned as
// *HTTPError or *NetworkError. Cancellation of ctx aborts immediately with
// the context error.
func (c *Client) Fetch(ctx context.Context, rawURL string) (Result, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Result{URL: rawURL}, fmt.Errorf("parse url: %w", err)
	}
	if !isHTTPScheme(u) {
		return Result{URL: rawURL}, fmt.Errorf("unsupported URL scheme: %q", u.Scheme)
	}

	logger := c.logger()
	attempts := c.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}

	var lastErr error
	n := 0
	for n < attempts {
		n++
		logger.Debug().Str("url", rawURL).Int("attempt", n).Msg("GET")
		res, wait, err := c.tryOnce(ctx, rawURL)
		if err == nil {
			res.Attempts = n
			return res, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{URL: rawURL, Attempts: n}, ctxErr
		}
		lastErr = err
		if !isRetryable(err) || n == attempts {
			break
		}
		delay := c.backoff(n, wait)
		logger.Warn().Err(err).Str("url", rawURL).Int("attempt", n).Dur("delay", delay).Msg("transient fetch failure; retrying")
		if err := sleep(ctx, delay); err != nil {
			return Result{URL: rawURL, Attempts: n}, err
		}
	}

	res := Result{URL: rawURL, Attempts: n}
	var he *HTTPError
	if errors.As(lastErr, &he) {
		res.StatusCode = he.Status
	}
	return res, lastErr
}

func (c *Client) tryOnce(ctx context.Context, target string) (Result, time.Duration, error) {
	timeout := c.PerRequestTimeout
	if timeout <= 0 {
		timeout = DefaultPerRequestTimeout
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, target, nil)
	if err != nil {
		return Result{}, 0, fmt.Errorf("new request: %w", err)
	}
	ua := c.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := c.getHTTPClient().Do(req)
	if err != nil {
		return Result{}, 0, &NetworkError{Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused by the next attempt.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return Result{StatusCode: resp.StatusCode}, retryAfter(resp, time.Now()), &HTTPError{Status: resp.StatusCode, Reason: reason(resp)}
	}

	limit := c.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return Result{}, 0, &NetworkError{Cause: fmt.Errorf("read body: %w", err)}
	}
	if int64(len(b)) > limit {
		return Result{}, 0, fmt.Errorf("%w: limit %d bytes", ErrBodyTooLarge, limit)
	}

	contentType := resp.Header.Get("Content-Type")
	body, enc := decodeBody(b, contentType)
	res := Result{
		URL:         target,
		FinalURL:    resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Encoding:    enc,
		Body:        body,
	}
	return res, 0, nil
}

// backoff returns the wait before attempt n+1: BackoffBase*2^(n-1), raised to
// a server supplied Retry-After, capped at MaxBackoff.
func (c *Client) backoff(n int, retryAfter time.Duration) time.Duration {
	base := c.BackoffBase
	if base <= 0 {
		base = DefaultBackoffBase
	}
	ceiling := c.MaxBackoff
	if ceiling <= 0 {
		ceiling = DefaultMaxBackoff
	}
	d := base
	for i := 1; i < n && d < ceiling; i++ {
		d *= 2
	}
	if retryAfter > d {
		d = retryAfter
	}
	if d > ceiling {
		d = ceiling
	}
	return d
}

func (c *Client) getHTTPClient() *http.Client {
	c.once.Do(func() {
		if c.HTTPClient != nil {
			// Clone to attach our redirect policy without mutating caller's client
			base := *c.HTTPClient
			base.CheckRedirect = c.checkRedirectFunc()
			c.hc = &base
			return
		}
		c.hc = &http.Client{CheckRedirect: c.checkRedirectFunc()}
	})
	return c.hc
}

func (c *Client) checkRedirectFunc() func(req *http.Request, via []*http.Request) error {
	max := c.RedirectMaxHops
	if max <= 0 {
		max = DefaultRedirectMaxHops
	}
	return func(req *http.Request, via []*http.Request) error {
		if len(via) >= max {
			return fmt.Errorf("%w: stopped after %d redirects", errRedirectPolicy, len(via))
		}
		if req.URL == nil || !isHTTPScheme(req.URL) {
			return fmt.Errorf("%w: unsupported scheme", errRedirectPolicy)
		}
		return nil
	}
}

func (c *Client) logger() *zerolog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	nop := zerolog.Nop()
	return &nop
}

func isHTTPScheme(u *url.URL) bool {
	if u == nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

// retryAfter parses the Retry-After header of a 429/503 response, either in
// delta-seconds or HTTP-date form.
func retryAfter(resp *http.Response, now time.Time) time.Duration {
	if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode != http.StatusServiceUnavailable {
		return 0
	}
	v := strings.TrimSpace(resp.Header.Get("Retry-After"))
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := t.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}

func reason(resp *http.Response) string {
	// resp.Status is "503 Service Unavailable"; keep the phrase only.
	if _, phrase, ok := strings.Cut(resp.Status, " "); ok && strings.TrimSpace(phrase) != "" {
		return strings.TrimSpace(phrase)
	}
	return http.StatusText(resp.StatusCode)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
