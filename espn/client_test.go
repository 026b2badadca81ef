package espn

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testConfig points both domains at baseURL and keeps backoff short.
func testConfig(t *testing.T, baseURL string, opts ...ConfigOption) Config {
	t.Helper()

	all := append([]ConfigOption{
		WithSiteAPIBaseURL(baseURL),
		WithCoreAPIBaseURL(baseURL + "/core"),
		WithRetryBackoff(time.Millisecond),
		WithTimeout(2 * time.Second),
	}, opts...)

	cfg, err := NewConfig(all...)
	require.NoError(t, err)
	return cfg
}

func newTestClient(t *testing.T, baseURL string, opts ...ConfigOption) *Client {
	t.Helper()

	client, err := NewClient(testConfig(t, baseURL, opts...), WithLogger(zerolog.Nop()), WithWaiter(recordingWaiter(new([]time.Duration))))
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestBuildURL(t *testing.T) {
	client := newTestClient(t, "http://espn.test")

	tests := []struct {
		name   string
		domain Domain
		path   string
		want   string
	}{
		{"site without slash", DomainSite, "apis/site/v2/sports/basketball/nba/teams", "http://espn.test/apis/site/v2/sports/basketball/nba/teams"},
		{"site with slash", DomainSite, "/apis/site/v2/sports/basketball/nba/teams", "http://espn.test/apis/site/v2/sports/basketball/nba/teams"},
		{"core without slash", DomainCore, "v2/sports/football/leagues/nfl", "http://espn.test/core/v2/sports/football/leagues/nfl"},
		{"core with slash", DomainCore, "/v2/sports/football/leagues/nfl", "http://espn.test/core/v2/sports/football/leagues/nfl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, client.BuildURL(tt.domain, tt.path))
		})
	}

	assert.Equal(t, client.BuildURL(DomainSite, "x/y"), client.BuildURL(DomainSite, "/x/y"))
}

func TestBuildURLTrimsTrailingSlashOnBase(t *testing.T) {
	client := newTestClient(t, "http://espn.test/")
	assert.Equal(t, "http://espn.test/x/y", client.BuildURL(DomainSite, "/x/y"))
}

// capture records the last request a test server saw.
type capture struct {
	path   string
	query  url.Values
	header http.Header
}

func capturingServer(t *testing.T, body string) (*httptest.Server, *capture) {
	t.Helper()

	c := &capture{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.path = r.URL.Path
		c.query = r.URL.Query()
		c.header = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, c
}

func TestEndpoints(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		call      func(c *Client) (*Response, error)
		wantPath  string
		wantQuery url.Values
	}{
		{
			name: "scoreboard without options",
			call: func(c *Client) (*Response, error) {
				return c.GetScoreboard(ctx, "basketball", "nba")
			},
			wantPath:  "/apis/site/v2/sports/basketball/nba/scoreboard",
			wantQuery: url.Values{},
		},
		{
			name: "scoreboard with structured date",
			call: func(c *Client) (*Response, error) {
				return c.GetScoreboard(ctx, "basketball", "nba", WithDate(time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC)))
			},
			wantPath:  "/apis/site/v2/sports/basketball/nba/scoreboard",
			wantQuery: url.Values{"dates": {"20241215"}},
		},
		{
			name: "scoreboard with string date and limit",
			call: func(c *Client) (*Response, error) {
				return c.GetScoreboard(ctx, "football", "nfl", WithDateString("20241215"), WithLimit(5))
			},
			wantPath:  "/apis/site/v2/sports/football/nfl/scoreboard",
			wantQuery: url.Values{"dates": {"20241215"}, "limit": {"5"}},
		},
		{
			name: "teams default limit",
			call: func(c *Client) (*Response, error) {
				return c.GetTeams(ctx, "basketball", "nba")
			},
			wantPath:  "/apis/site/v2/sports/basketball/nba/teams",
			wantQuery: url.Values{"limit": {"100"}},
		},
		{
			name: "teams custom limit",
			call: func(c *Client) (*Response, error) {
				return c.GetTeams(ctx, "basketball", "nba", WithLimit(10))
			},
			wantPath:  "/apis/site/v2/sports/basketball/nba/teams",
			wantQuery: url.Values{"limit": {"10"}},
		},
		{
			name: "single team",
			call: func(c *Client) (*Response, error) {
				return c.GetTeam(ctx, "basketball", "nba", "13")
			},
			wantPath:  "/apis/site/v2/sports/basketball/nba/teams/13",
			wantQuery: url.Values{},
		},
		{
			name: "event summary",
			call: func(c *Client) (*Response, error) {
				return c.GetEvent(ctx, "basketball", "nba", "401584793")
			},
			wantPath:  "/apis/site/v2/sports/basketball/nba/summary",
			wantQuery: url.Values{"event": {"401584793"}},
		},
		{
			name: "league info on core domain",
			call: func(c *Client) (*Response, error) {
				return c.GetLeagueInfo(ctx, "football", "nfl")
			},
			wantPath:  "/core/v2/sports/football/leagues/nfl",
			wantQuery: url.Values{},
		},
		{
			name: "athletes without team",
			call: func(c *Client) (*Response, error) {
				return c.GetAthletes(ctx, "basketball", "nba")
			},
			wantPath:  "/core/v2/sports/basketball/leagues/nba/athletes",
			wantQuery: url.Values{"limit": {"100"}, "page": {"1"}},
		},
		{
			name: "athletes with team",
			call: func(c *Client) (*Response, error) {
				return c.GetAthletes(ctx, "basketball", "nba", WithTeam("1"), WithLimit(25), WithPage(2))
			},
			wantPath:  "/core/v2/sports/basketball/leagues/nba/athletes",
			wantQuery: url.Values{"limit": {"25"}, "page": {"2"}, "teams": {"1"}},
		},
		{
			name: "raw get",
			call: func(c *Client) (*Response, error) {
				return c.Get(ctx, DomainSite, "apis/site/v2/sports/hockey/nhl/news", url.Values{"limit": {"3"}})
			},
			wantPath:  "/apis/site/v2/sports/hockey/nhl/news",
			wantQuery: url.Values{"limit": {"3"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, seen := capturingServer(t, `{"ok":true}`)
			client := newTestClient(t, server.URL)

			resp, err := tt.call(client)
			require.NoError(t, err)

			assert.Equal(t, tt.wantPath, seen.path)
			assert.Equal(t, tt.wantQuery, seen.query)
			assert.Equal(t, 200, resp.StatusCode)
			assert.True(t, resp.IsSuccess())
			assert.Equal(t, true, resp.Data["ok"])
			assert.Equal(t, server.URL+tt.wantPath, resp.URL, "URL excludes the query")
		})
	}
}

func TestRequestHeaders(t *testing.T) {
	server, seen := capturingServer(t, `{}`)
	client := newTestClient(t, server.URL, WithUserAgent("espnapi-test/1.0"))

	_, err := client.GetTeams(context.Background(), "basketball", "nba")
	require.NoError(t, err)

	assert.Equal(t, "espnapi-test/1.0", seen.header.Get("User-Agent"))
	assert.Equal(t, "application/json", seen.header.Get("Accept"))
}

func TestRedirectsAreFollowed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/apis/site/v2/sports/basketball/nba/teams/13", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/moved", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/moved", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"team":{"id":"13"}}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(t, server.URL)
	resp, err := client.GetTeam(context.Background(), "basketball", "nba", "13")
	require.NoError(t, err)

	assert.Equal(t, server.URL+"/apis/site/v2/sports/basketball/nba/teams/13", resp.URL, "URL is the one the client built")
	assert.Equal(t, server.URL+"/moved", resp.FinalURL)
	assert.NotNil(t, resp.Data["team"])
}

func TestStatusClassificationThroughClient(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantSentinel error
		wantReason   Reason
		wantMessage  string
		wantAttempts int32
	}{
		{"not found is not retried", 404, "", ErrNotFound, "", "Resource not found", 1},
		{"rate limit is retried", 429, "", ErrRateLimited, "", "Rate limit exceeded", 3},
		{"server error is retried", 503, "", ErrClient, ReasonServer, "ESPN server error: 503", 3},
		{"bad request is retried", 400, "", ErrClient, ReasonAPI, "ESPN API error: 400", 3},
		{"invalid JSON is retried", 200, "<html>", ErrClient, ReasonParse, "Failed to parse ESPN response", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				hits.Add(1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(t, server.URL, WithMaxRetries(3))
			resp, err := client.GetTeam(context.Background(), "basketball", "nba", "1")

			assert.Nil(t, resp)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantSentinel)
			assert.Equal(t, tt.wantAttempts, hits.Load())

			var e *Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.wantReason, e.Reason)
			assert.Equal(t, tt.wantMessage, e.Message)
			assert.Equal(t, tt.status, e.StatusCode)
		})
	}
}

func TestRetryThenSuccessThroughClient(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"events":[]}`))
	}))
	defer server.Close()

	var delays []time.Duration
	client, err := NewClient(testConfig(t, server.URL, WithMaxRetries(3)), WithWaiter(recordingWaiter(&delays)))
	require.NoError(t, err)
	defer client.Close()

	resp, err := client.GetScoreboard(context.Background(), "basketball", "nba")
	require.NoError(t, err)
	assert.Equal(t, int32(3), hits.Load())
	assert.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond}, delays)
	assert.NotNil(t, resp.Data["events"])
}

func TestTransportFailureIsRetryableClientError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client := newTestClient(t, baseURL, WithMaxRetries(2))
	_, err := client.GetTeams(context.Background(), "basketball", "nba")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrClient)
	assert.NotErrorIs(t, err, ErrNotFound)

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, ReasonTransport, e.Reason)
}

func TestTimeoutIsRetryableClientError(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, WithMaxRetries(2), WithTimeout(20*time.Millisecond))
	_, err := client.GetTeams(context.Background(), "basketball", "nba")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrClient)
	assert.Equal(t, int32(2), hits.Load())
}

func TestConnectionLifecycle(t *testing.T) {
	server, _ := capturingServer(t, `{}`)
	client := newTestClient(t, server.URL)
	ctx := context.Background()

	assert.False(t, client.Connected(), "handle is created lazily")

	_, err := client.GetTeams(ctx, "basketball", "nba")
	require.NoError(t, err)
	assert.True(t, client.Connected())

	first := client.conn()
	_, err = client.GetTeams(ctx, "basketball", "nba")
	require.NoError(t, err)
	assert.Same(t, first, client.conn(), "handle is reused across calls")

	require.NoError(t, client.Close())
	assert.False(t, client.Connected())
	require.NoError(t, client.Close(), "closing twice is harmless")

	_, err = client.GetTeams(ctx, "basketball", "nba")
	require.NoError(t, err)
	assert.True(t, client.Connected(), "handle is recreated after close")
	assert.NotSame(t, first, client.conn())
}

type countingDoer struct {
	calls atomic.Int32
	inner *http.Client
}

func (d *countingDoer) Do(req *http.Request) (*http.Response, error) {
	d.calls.Add(1)
	return d.inner.Do(req)
}

func TestInjectedHTTPClient(t *testing.T) {
	server, _ := capturingServer(t, `{}`)
	doer := &countingDoer{inner: server.Client()}

	client, err := NewClient(testConfig(t, server.URL), WithHTTPClient(doer))
	require.NoError(t, err)

	_, err = client.GetLeagueInfo(context.Background(), "basketball", "nba")
	require.NoError(t, err)
	require.NoError(t, client.Close())
	_, err = client.GetLeagueInfo(context.Background(), "basketball", "nba")
	require.NoError(t, err)

	assert.Equal(t, int32(2), doer.calls.Load())
	assert.False(t, client.Connected(), "injected transports are not owned")
}

func TestClientSideRateLimit(t *testing.T) {
	server, _ := capturingServer(t, `{}`)
	cfg := testConfig(t, server.URL, WithRateLimitHint(1, 50*time.Millisecond))

	client, err := NewClient(cfg, WithRateLimit())
	require.NoError(t, err)
	defer client.Close()

	start := time.Now()
	for range 3 {
		_, err := client.GetTeams(context.Background(), "basketball", "nba")
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestUseRejectsAsyncClient(t *testing.T) {
	async, err := NewAsyncClient(DefaultConfig())
	require.NoError(t, err)

	ran := false
	err = Use(async, func() error {
		ran = true
		return nil
	})

	assert.ErrorIs(t, err, ErrUsage)
	assert.False(t, ran)
	assert.False(t, async.Connected())
}

func TestUseOpensAndCloses(t *testing.T) {
	server, _ := capturingServer(t, `{}`)
	client := newTestClient(t, server.URL)

	err := Use(client, func() error {
		assert.True(t, client.Connected())
		_, err := client.GetTeams(context.Background(), "basketball", "nba")
		return err
	})

	require.NoError(t, err)
	assert.False(t, client.Connected())
}

func TestDefaultClientLifecycle(t *testing.T) {
	t.Cleanup(func() { _ = ShutdownDefault() })

	_, err := Default()
	assert.ErrorIs(t, err, ErrUsage)

	require.NoError(t, InitDefault(DefaultConfig()))
	assert.ErrorIs(t, InitDefault(DefaultConfig()), ErrUsage)

	c, err := Default()
	require.NoError(t, err)
	assert.NotNil(t, c)

	require.NoError(t, ShutdownDefault())
	require.NoError(t, ShutdownDefault())

	_, err = Default()
	assert.ErrorIs(t, err, ErrUsage)
}

func TestInitDefaultRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxRetries = -1

	assert.ErrorIs(t, InitDefault(cfg), ErrValidation)

	_, err := Default()
	assert.ErrorIs(t, err, ErrUsage)
}

func TestRetryOutcomeLogging(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	run := func(t *testing.T, ctx context.Context, maxRetries int, wait Waiter) string {
		t.Helper()

		var buf bytes.Buffer
		client, err := NewClient(testConfig(t, server.URL, WithMaxRetries(maxRetries)),
			WithLogger(zerolog.New(&buf)), WithWaiter(wait))
		require.NoError(t, err)
		defer client.Close()

		_, err = client.GetScoreboard(ctx, "basketball", "nba")
		require.Error(t, err)
		return buf.String()
	}

	t.Run("budget used up", func(t *testing.T) {
		logs := run(t, context.Background(), 3, recordingWaiter(new([]time.Duration)))
		assert.Contains(t, logs, "espn_retries_exhausted")
		assert.NotContains(t, logs, "espn_request_cancelled")
	})

	t.Run("single attempt is not a retry", func(t *testing.T) {
		logs := run(t, context.Background(), 1, recordingWaiter(new([]time.Duration)))
		assert.NotContains(t, logs, "espn_retries_exhausted")
	})

	t.Run("cancelled between attempts", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		wait := func(ctx context.Context, _ time.Duration) error {
			cancel()
			return ctx.Err()
		}

		logs := run(t, ctx, 3, wait)
		assert.Contains(t, logs, "espn_request_cancelled")
		assert.NotContains(t, logs, "espn_retries_exhausted")
	})
}
