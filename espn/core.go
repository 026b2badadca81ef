package espn

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// core is shared by Client and AsyncClient. The two differ only in how
// they wait between attempts and on which goroutine a call runs.
type core struct {
	cfg    Config
	logger zerolog.Logger
	policy RetryPolicy
	wait   Waiter
	exec   *executor
	mode   Mode

	mu         sync.Mutex
	httpClient *http.Client
	custom     Doer
	transport  http.RoundTripper
}

func newCore(cfg Config, mode Mode, wait Waiter, opts []Option) (*core, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultClientOptions()
	o.wait = wait
	for _, opt := range opts {
		opt(&o)
	}

	c := &core{
		cfg:       cfg,
		logger:    o.logger,
		policy:    policyFromConfig(cfg),
		wait:      o.wait,
		mode:      mode,
		custom:    o.doer,
		transport: o.transport,
	}

	var limiter *rate.Limiter
	if o.rateLimit {
		every := cfg.RateLimitPeriod / time.Duration(cfg.RateLimitRequests)
		limiter = rate.NewLimiter(rate.Every(every), cfg.RateLimitRequests)
	}
	c.exec = &executor{conn: c.conn, userAgent: cfg.UserAgent, limiter: limiter}

	return c, nil
}

// Config returns a copy of the client's configuration
func (c *core) Config() Config {
	return c.cfg
}

// Mode reports which lifecycle API the client belongs to
func (c *core) Mode() Mode {
	return c.mode
}

// conn returns the HTTP handle, creating it on first use or after Close.
func (c *core) conn() Doer {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.custom != nil {
		return c.custom
	}
	if c.httpClient == nil {
		rt := c.transport
		if rt == nil {
			rt = http.DefaultTransport.(*http.Transport).Clone()
		}
		c.httpClient = &http.Client{
			Timeout:   c.cfg.Timeout,
			Transport: rt,
		}
	}
	return c.httpClient
}

// Connected reports whether a client-owned HTTP handle currently exists.
func (c *core) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.httpClient != nil
}

// Open creates the HTTP handle eagerly
func (c *core) Open() error {
	c.conn()
	return nil
}

// Close releases idle connections and drops the handle. The next call
// creates a fresh one. An injected Doer is left untouched.
func (c *core) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.httpClient != nil {
		c.httpClient.CloseIdleConnections()
		c.httpClient = nil
	}
	return nil
}

// BuildURL joins the domain's base URL and path. Leading slashes on path
// are ignored, so "x/y" and "/x/y" give the same URL.
func (c *core) BuildURL(d Domain, path string) string {
	return c.cfg.baseURL(d) + "/" + strings.TrimLeft(path, "/")
}

// do runs one logical call through the retry loop.
func (c *core) do(ctx context.Context, r request) (*Response, error) {
	logger := c.logger.With().Str("request_id", uuid.NewString()).Logger()

	if r.event != "" {
		ev := logger.Info()
		for _, f := range r.fields {
			ev = ev.Str(f.key, f.value)
		}
		ev.Msg(r.event)
	}

	target := c.BuildURL(r.domain, r.path)

	policy := c.policy
	policy.OnRetry = func(attempt int, err error, delay time.Duration) {
		logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Dur("delay", delay).
			Msg("espn_retry_scheduled")
	}

	var attempts int
	resp, err := Retry(ctx, policy, c.wait, func(ctx context.Context, n int) (*Response, error) {
		attempts = n
		return c.exec.execute(ctx, logger.With().Int("attempt", n).Logger(), http.MethodGet, target, r.params)
	})

	switch {
	case err == nil:
	case ctx.Err() != nil:
		logger.Warn().Err(err).Str("url", target).Int("attempts", attempts).Msg("espn_request_cancelled")
	case IsRetryable(err) && attempts > 1 && attempts >= policy.attempts():
		logger.Error().Err(err).Str("url", target).Int("attempts", attempts).Msg("espn_retries_exhausted")
	}
	return resp, err
}
