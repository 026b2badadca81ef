package espn

import (
	"net/http"

	"github.com/rs/zerolog"
)

// Option configures a Client or AsyncClient.
type Option func(*clientOptions)

// clientOptions holds optional collaborators for a client.
type clientOptions struct {
	logger    zerolog.Logger
	doer      Doer
	transport http.RoundTripper
	rateLimit bool
	wait      Waiter
}

func defaultClientOptions() clientOptions {
	return clientOptions{
		logger: zerolog.Nop(),
	}
}

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// WithHTTPClient injects a caller-owned transport. It is never recreated
// or closed by the client.
func WithHTTPClient(doer Doer) Option {
	return func(o *clientOptions) {
		o.doer = doer
	}
}

// WithTransport sets the round tripper used when the client builds its own
// *http.Client.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *clientOptions) {
		o.transport = rt
	}
}

// WithRateLimit enforces Config.RateLimitRequests per Config.RateLimitPeriod
// on the client side. Off by default.
func WithRateLimit() Option {
	return func(o *clientOptions) {
		o.rateLimit = true
	}
}

// WithWaiter replaces the backoff wait. Mostly useful in tests.
func WithWaiter(w Waiter) Option {
	return func(o *clientOptions) {
		if w != nil {
			o.wait = w
		}
	}
}
