package espn

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Default page sizes for list endpoints
const (
	DefaultTeamsLimit    = 100
	DefaultAthletesLimit = 100
	DefaultAthletesPage  = 1
)

// dateLayout is the YYYYMMDD form the scoreboard expects
const dateLayout = "20060102"

// request is a fully resolved logical call, independent of how it is executed.
type request struct {
	domain Domain
	path   string
	params url.Values
	event  string
	fields []logField
}

type logField struct {
	key   string
	value string
}

// RequestOption adjusts the query of one endpoint call. Options an endpoint
// does not understand are ignored.
type RequestOption func(*requestOptions)

type requestOptions struct {
	date   string
	limit  int
	page   int
	teamID string
}

// WithDate filters a scoreboard to one day
func WithDate(t time.Time) RequestOption {
	return func(o *requestOptions) {
		if !t.IsZero() {
			o.date = t.Format(dateLayout)
		}
	}
}

// WithDateString passes a date (or ESPN date range such as
// "20241201-20241207") through unchanged
func WithDateString(s string) RequestOption {
	return func(o *requestOptions) {
		o.date = s
	}
}

// WithLimit sets the maximum number of results
func WithLimit(n int) RequestOption {
	return func(o *requestOptions) {
		o.limit = n
	}
}

// WithPage selects a results page (athletes)
func WithPage(n int) RequestOption {
	return func(o *requestOptions) {
		o.page = n
	}
}

// WithTeam restricts athletes to one team
func WithTeam(teamID string) RequestOption {
	return func(o *requestOptions) {
		o.teamID = teamID
	}
}

func applyRequestOptions(opts []RequestOption) requestOptions {
	var o requestOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func sitePath(sport, league string) string {
	return fmt.Sprintf("/apis/site/v2/sports/%s/%s", sport, league)
}

func corePath(sport, league string) string {
	return fmt.Sprintf("/v2/sports/%s/leagues/%s", sport, league)
}

func scoreboardRequest(sport, league string, opts []RequestOption) request {
	o := applyRequestOptions(opts)

	params := url.Values{}
	if o.date != "" {
		params.Set("dates", o.date)
	}
	if o.limit > 0 {
		params.Set("limit", strconv.Itoa(o.limit))
	}

	return request{
		domain: DomainSite,
		path:   sitePath(sport, league) + "/scoreboard",
		params: params,
		event:  "fetching_scoreboard",
		fields: []logField{{"sport", sport}, {"league", league}, {"date", o.date}},
	}
}

func teamsRequest(sport, league string, opts []RequestOption) request {
	o := applyRequestOptions(opts)
	if o.limit <= 0 {
		o.limit = DefaultTeamsLimit
	}

	return request{
		domain: DomainSite,
		path:   sitePath(sport, league) + "/teams",
		params: url.Values{"limit": {strconv.Itoa(o.limit)}},
		event:  "fetching_teams",
		fields: []logField{{"sport", sport}, {"league", league}},
	}
}

func teamRequest(sport, league, teamID string) request {
	return request{
		domain: DomainSite,
		path:   sitePath(sport, league) + "/teams/" + teamID,
		event:  "fetching_team",
		fields: []logField{{"sport", sport}, {"league", league}, {"team_id", teamID}},
	}
}

func eventRequest(sport, league, eventID string) request {
	return request{
		domain: DomainSite,
		path:   sitePath(sport, league) + "/summary",
		params: url.Values{"event": {eventID}},
		event:  "fetching_event",
		fields: []logField{{"sport", sport}, {"league", league}, {"event_id", eventID}},
	}
}

func leagueInfoRequest(sport, league string) request {
	return request{
		domain: DomainCore,
		path:   corePath(sport, league),
		event:  "fetching_league_info",
		fields: []logField{{"sport", sport}, {"league", league}},
	}
}

func athletesRequest(sport, league string, opts []RequestOption) request {
	o := applyRequestOptions(opts)
	if o.limit <= 0 {
		o.limit = DefaultAthletesLimit
	}
	if o.page <= 0 {
		o.page = DefaultAthletesPage
	}

	params := url.Values{
		"limit": {strconv.Itoa(o.limit)},
		"page":  {strconv.Itoa(o.page)},
	}
	if o.teamID != "" {
		params.Set("teams", o.teamID)
	}

	return request{
		domain: DomainCore,
		path:   corePath(sport, league) + "/athletes",
		params: params,
		event:  "fetching_athletes",
		fields: []logField{{"sport", sport}, {"league", league}, {"team_id", o.teamID}},
	}
}

func rawRequest(domain Domain, path string, params url.Values) request {
	return request{domain: domain, path: path, params: params}
}
