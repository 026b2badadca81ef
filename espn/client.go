package espn

import (
	"context"
	"net/url"
)

// Client is the blocking endpoint client. Each call runs on the caller's
// goroutine and sleeps through backoff. A Client is safe for concurrent use
// by multiple goroutines; all of them share one connection pool.
type Client struct {
	*core
}

// NewClient validates cfg and returns a client. No connection is made
// until the first call.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	c, err := newCore(cfg, ModeSync, BlockingWait, opts)
	if err != nil {
		return nil, err
	}
	return &Client{core: c}, nil
}

// GetScoreboard fetches the scoreboard for a league. WithDate,
// WithDateString and WithLimit apply.
func (c *Client) GetScoreboard(ctx context.Context, sport, league string, opts ...RequestOption) (*Response, error) {
	return c.do(ctx, scoreboardRequest(sport, league, opts))
}

// GetTeams fetches the team list. WithLimit applies (default 100).
func (c *Client) GetTeams(ctx context.Context, sport, league string, opts ...RequestOption) (*Response, error) {
	return c.do(ctx, teamsRequest(sport, league, opts))
}

// GetTeam fetches a single team
func (c *Client) GetTeam(ctx context.Context, sport, league, teamID string) (*Response, error) {
	return c.do(ctx, teamRequest(sport, league, teamID))
}

// GetEvent fetches the summary of one event
func (c *Client) GetEvent(ctx context.Context, sport, league, eventID string) (*Response, error) {
	return c.do(ctx, eventRequest(sport, league, eventID))
}

// GetLeagueInfo fetches league metadata from the core API
func (c *Client) GetLeagueInfo(ctx context.Context, sport, league string) (*Response, error) {
	return c.do(ctx, leagueInfoRequest(sport, league))
}

// GetAthletes fetches a page of athletes from the core API. WithLimit
// (default 100), WithPage (default 1) and WithTeam apply.
func (c *Client) GetAthletes(ctx context.Context, sport, league string, opts ...RequestOption) (*Response, error) {
	return c.do(ctx, athletesRequest(sport, league, opts))
}

// Get fetches an arbitrary path on either domain
func (c *Client) Get(ctx context.Context, domain Domain, path string, params url.Values) (*Response, error) {
	return c.do(ctx, rawRequest(domain, path, params))
}
