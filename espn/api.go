package espn

import (
	"context"
	"net/url"
)

// API is the blocking endpoint surface. It is satisfied by *Client and lets
// callers substitute a fake in tests.
type API interface {
	GetScoreboard(ctx context.Context, sport, league string, opts ...RequestOption) (*Response, error)
	GetTeams(ctx context.Context, sport, league string, opts ...RequestOption) (*Response, error)
	GetTeam(ctx context.Context, sport, league, teamID string) (*Response, error)
	GetEvent(ctx context.Context, sport, league, eventID string) (*Response, error)
	GetLeagueInfo(ctx context.Context, sport, league string) (*Response, error)
	GetAthletes(ctx context.Context, sport, league string, opts ...RequestOption) (*Response, error)
	Get(ctx context.Context, domain Domain, path string, params url.Values) (*Response, error)
	Close() error
}

var _ API = (*Client)(nil)
