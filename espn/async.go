package espn

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/sync/errgroup"
)

// AsyncClient issues each call on its own goroutine and returns a *Call
// immediately. Backoff waits select on the call's context instead of
// sleeping. An AsyncClient is safe for concurrent use; calls in flight are
// independent and complete in no particular order.
type AsyncClient struct {
	*core
	inflight sync.WaitGroup
}

// NewAsyncClient validates cfg and returns a client. No connection is made
// until the first call.
func NewAsyncClient(cfg Config, opts ...Option) (*AsyncClient, error) {
	c, err := newCore(cfg, ModeAsync, CooperativeWait, opts)
	if err != nil {
		return nil, err
	}
	return &AsyncClient{core: c}, nil
}

// Call is a pending result.
type Call struct {
	done chan struct{}
	resp *Response
	err  error
}

// Done is closed once the call has finished
func (c *Call) Done() <-chan struct{} {
	return c.done
}

// Await blocks until the call finishes or ctx is done. Giving up on the
// wait does not cancel the call; cancel the context it was started with.
func (c *Call) Await(ctx context.Context) (*Response, error) {
	select {
	case <-c.done:
		return c.resp, c.err
	case <-ctx.Done():
		return nil, cancelled(nil, ctx.Err())
	}
}

func (a *AsyncClient) submit(ctx context.Context, r request) *Call {
	call := &Call{done: make(chan struct{})}

	a.inflight.Add(1)
	go func() {
		defer a.inflight.Done()
		defer close(call.done)
		call.resp, call.err = a.do(ctx, r)
	}()

	return call
}

// Drain waits for every call started so far to finish.
func (a *AsyncClient) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		a.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// GetScoreboard starts a scoreboard fetch
func (a *AsyncClient) GetScoreboard(ctx context.Context, sport, league string, opts ...RequestOption) *Call {
	return a.submit(ctx, scoreboardRequest(sport, league, opts))
}

// GetTeams starts a team list fetch
func (a *AsyncClient) GetTeams(ctx context.Context, sport, league string, opts ...RequestOption) *Call {
	return a.submit(ctx, teamsRequest(sport, league, opts))
}

// GetTeam starts a single team fetch
func (a *AsyncClient) GetTeam(ctx context.Context, sport, league, teamID string) *Call {
	return a.submit(ctx, teamRequest(sport, league, teamID))
}

// GetEvent starts an event summary fetch
func (a *AsyncClient) GetEvent(ctx context.Context, sport, league, eventID string) *Call {
	return a.submit(ctx, eventRequest(sport, league, eventID))
}

// GetLeagueInfo starts a league metadata fetch
func (a *AsyncClient) GetLeagueInfo(ctx context.Context, sport, league string) *Call {
	return a.submit(ctx, leagueInfoRequest(sport, league))
}

// GetAthletes starts an athlete page fetch
func (a *AsyncClient) GetAthletes(ctx context.Context, sport, league string, opts ...RequestOption) *Call {
	return a.submit(ctx, athletesRequest(sport, league, opts))
}

// Get starts a fetch of an arbitrary path
func (a *AsyncClient) Get(ctx context.Context, domain Domain, path string, params url.Values) *Call {
	return a.submit(ctx, rawRequest(domain, path, params))
}

// Gather awaits calls together. Responses are returned in argument order.
// The first failure stops the wait and is returned; calls still running are
// left to finish on their own.
func Gather(ctx context.Context, calls ...*Call) ([]*Response, error) {
	out := make([]*Response, len(calls))

	g, gctx := errgroup.WithContext(ctx)
	for i, call := range calls {
		g.Go(func() error {
			resp, err := call.Await(gctx)
			if err != nil {
				return err
			}
			out[i] = resp
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return out, err
	}
	return out, nil
}
