package model

import (
	"fmt"
	"maps"

	"github.com/s0up4200/espnapi/espn"
)

// Game is a scoreboard or summary event together with its competitors.
type Game struct {
	Event       *Event        `json:"event"`
	Competitors []*Competitor `json:"competitors"`
}

// Home returns the home competitor, or nil
func (g *Game) Home() *Competitor {
	for _, c := range g.Competitors {
		if c.IsHome() {
			return c
		}
	}
	return nil
}

// Away returns the away competitor, or nil
func (g *Game) Away() *Competitor {
	for _, c := range g.Competitors {
		if c.IsAway() {
			return c
		}
	}
	return nil
}

func newGame(ev *Event, competition map[string]any, league *League) *Game {
	g := &Game{Event: ev}
	for _, m := range getMaps(competition, "competitors") {
		g.Competitors = append(g.Competitors, MapCompetitor(m, ev, league))
	}
	return g
}

// payload returns the decoded body of a response or an ingestion error
func payload(resp *espn.Response) (map[string]any, error) {
	if resp == nil || resp.Data == nil {
		return nil, espn.NewIngestionError("response has no payload", nil)
	}
	return resp.Data, nil
}

// list returns the objects under key. A missing key is an empty list; a
// key holding anything but an array is an ingestion error.
func list(src map[string]any, key string) ([]map[string]any, error) {
	raw, ok := src[key]
	if !ok || raw == nil {
		return nil, nil
	}
	if _, ok := raw.([]any); !ok {
		return nil, espn.NewIngestionError(fmt.Sprintf("%q is %T, want array", key, raw), nil)
	}
	return getMaps(src, key), nil
}

// ScoreboardFromResponse maps every event of a scoreboard response.
func ScoreboardFromResponse(resp *espn.Response, league *League) ([]*Game, error) {
	data, err := payload(resp)
	if err != nil {
		return nil, err
	}

	events, err := list(data, "events")
	if err != nil {
		return nil, err
	}

	games := make([]*Game, 0, len(events))
	for _, raw := range events {
		ev := MapEvent(raw, league)
		var competition map[string]any
		if comps := getMaps(raw, "competitions"); len(comps) > 0 {
			competition = comps[0]
		}
		games = append(games, newGame(ev, competition, league))
	}
	return games, nil
}

// TeamsFromResponse maps the teams of a site API teams response, found
// under sports[0].leagues[0].teams.
func TeamsFromResponse(resp *espn.Response, league *League) ([]*Team, error) {
	data, err := payload(resp)
	if err != nil {
		return nil, err
	}

	sports, err := list(data, "sports")
	if err != nil || len(sports) == 0 {
		return nil, err
	}
	leagues, err := list(sports[0], "leagues")
	if err != nil || len(leagues) == 0 {
		return nil, err
	}
	entries, err := list(leagues[0], "teams")
	if err != nil {
		return nil, err
	}

	teams := make([]*Team, 0, len(entries))
	for _, entry := range entries {
		teams = append(teams, MapTeam(entry, league))
	}
	return teams, nil
}

// TeamFromResponse maps a single-team response.
func TeamFromResponse(resp *espn.Response, league *League) (*Team, error) {
	data, err := payload(resp)
	if err != nil {
		return nil, err
	}
	team := getMap(data, "team")
	if team == nil {
		return nil, espn.NewIngestionError("response has no team object", nil)
	}
	return MapTeam(team, league), nil
}

// EventFromSummary maps an event summary response. The summary header
// keeps date and status on the competition, so those are lifted onto the
// event before mapping.
func EventFromSummary(resp *espn.Response, league *League) (*Game, error) {
	data, err := payload(resp)
	if err != nil {
		return nil, err
	}
	header := getMap(data, "header")
	if header == nil {
		return nil, espn.NewIngestionError("summary has no header object", nil)
	}

	merged := maps.Clone(header)
	var competition map[string]any
	if comps := getMaps(header, "competitions"); len(comps) > 0 {
		competition = comps[0]
		for _, key := range []string{"date", "status"} {
			if _, ok := merged[key]; !ok {
				if v, ok := competition[key]; ok {
					merged[key] = v
				}
			}
		}
	}

	ev := MapEvent(merged, league)
	if ev.Venue == nil {
		if venue := getMap(getMap(data, "gameInfo"), "venue"); venue != nil {
			ev.Venue = MapVenue(venue)
		}
	}
	if ev.Attendance == nil {
		ev.Attendance = getOptInt(getMap(data, "gameInfo"), "attendance")
	}

	return newGame(ev, competition, league), nil
}

// AthletesFromResponse maps athlete objects of a list response. Core API
// pages hold only $ref links; those items are skipped (see AthleteRefs).
func AthletesFromResponse(resp *espn.Response, team *Team) ([]*Athlete, error) {
	data, err := payload(resp)
	if err != nil {
		return nil, err
	}
	items, err := list(data, "items")
	if err != nil {
		return nil, err
	}

	athletes := make([]*Athlete, 0, len(items))
	for _, item := range items {
		src := unwrap(item, "athlete")
		if _, ok := src["id"]; !ok {
			continue
		}
		athletes = append(athletes, MapAthlete(item, team))
	}
	return athletes, nil
}

// AthleteRefs returns the $ref URLs of a core API athletes page.
func AthleteRefs(resp *espn.Response) ([]string, error) {
	data, err := payload(resp)
	if err != nil {
		return nil, err
	}
	items, err := list(data, "items")
	if err != nil {
		return nil, err
	}

	refs := make([]string, 0, len(items))
	for _, item := range items {
		if ref := getString(item, "$ref"); ref != "" {
			refs = append(refs, ref)
		}
	}
	return refs, nil
}

// PageInfo is the paging block of a core API list response
type PageInfo struct {
	Count     int `json:"count"`
	PageIndex int `json:"pageIndex"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
}

// PageFromResponse reads the paging block of a core API list response
func PageFromResponse(resp *espn.Response) (PageInfo, error) {
	data, err := payload(resp)
	if err != nil {
		return PageInfo{}, err
	}
	return PageInfo{
		Count:     getInt(data, "count", 0),
		PageIndex: getInt(data, "pageIndex", 0),
		PageSize:  getInt(data, "pageSize", 0),
		PageCount: getInt(data, "pageCount", 0),
	}, nil
}

// LeagueFromResponse maps a core API league object onto a League of the
// given sport.
func LeagueFromResponse(resp *espn.Response, sportSlug string) (*League, error) {
	data, err := payload(resp)
	if err != nil {
		return nil, err
	}
	slug := getString(data, "slug")
	if slug == "" {
		return nil, espn.NewIngestionError("league has no slug", nil)
	}
	return NewLeague(sportSlug, slug,
		firstNonEmpty(getString(data, "name"), getString(data, "displayName")),
		firstNonEmpty(getString(data, "abbreviation"), getString(data, "shortName"))), nil
}
