package model

import (
	"fmt"
	"strings"
)

// Sport is a sport category such as basketball
type Sport struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// String returns the display name
func (s *Sport) String() string {
	return s.Name
}

// League is a competition within a sport such as the NBA
type League struct {
	Sport        *Sport `json:"sport"`
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation,omitempty"`
}

// String returns "Name (Sport)"
func (l *League) String() string {
	if l.Sport == nil {
		return l.Name
	}
	return fmt.Sprintf("%s (%s)", l.Name, l.Sport.Name)
}

// SportSlug returns the parent sport's slug
func (l *League) SportSlug() string {
	if l.Sport == nil {
		return ""
	}
	return l.Sport.Slug
}

// ShortName is the abbreviation, or the upper-cased slug without one
func (l *League) ShortName() string {
	if l.Abbreviation != "" {
		return l.Abbreviation
	}
	return strings.ToUpper(l.Slug)
}

// Sports holds the predefined sports by slug.
var Sports = map[string]*Sport{
	"basketball": {Slug: "basketball", Name: "Basketball"},
	"football":   {Slug: "football", Name: "Football"},
	"baseball":   {Slug: "baseball", Name: "Baseball"},
	"hockey":     {Slug: "hockey", Name: "Hockey"},
	"soccer":     {Slug: "soccer", Name: "Soccer"},
	"mma":        {Slug: "mma", Name: "Mixed Martial Arts"},
	"golf":       {Slug: "golf", Name: "Golf"},
	"tennis":     {Slug: "tennis", Name: "Tennis"},
	"racing":     {Slug: "racing", Name: "Racing"},
}

// Leagues holds the predefined leagues by slug.
var Leagues = map[string]*League{
	"nba":                     {Sport: Sports["basketball"], Slug: "nba", Name: "NBA", Abbreviation: "NBA"},
	"wnba":                    {Sport: Sports["basketball"], Slug: "wnba", Name: "WNBA", Abbreviation: "WNBA"},
	"nfl":                     {Sport: Sports["football"], Slug: "nfl", Name: "NFL", Abbreviation: "NFL"},
	"mlb":                     {Sport: Sports["baseball"], Slug: "mlb", Name: "MLB", Abbreviation: "MLB"},
	"nhl":                     {Sport: Sports["hockey"], Slug: "nhl", Name: "NHL", Abbreviation: "NHL"},
	"mls":                     {Sport: Sports["soccer"], Slug: "mls", Name: "MLS", Abbreviation: "MLS"},
	"college-football":        {Sport: Sports["football"], Slug: "college-football", Name: "College Football", Abbreviation: "NCAAF"},
	"mens-college-basketball": {Sport: Sports["basketball"], Slug: "mens-college-basketball", Name: "Men's College Basketball", Abbreviation: "NCAAM"},
}

// LookupLeague finds a predefined league by slug or abbreviation,
// ignoring case.
func LookupLeague(name string) (*League, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if l, ok := Leagues[key]; ok {
		return l, true
	}
	for _, l := range Leagues {
		if strings.EqualFold(l.Abbreviation, key) {
			return l, true
		}
	}
	return nil, false
}

// NewLeague builds an ad hoc league. The sport is taken from Sports when
// known, otherwise created with the slug as its name.
func NewLeague(sportSlug, slug, name, abbreviation string) *League {
	sport, ok := Sports[sportSlug]
	if !ok {
		sport = &Sport{Slug: sportSlug, Name: sportSlug}
	}
	return &League{Sport: sport, Slug: slug, Name: name, Abbreviation: abbreviation}
}

// ParseLeague accepts a predefined league ("nba", "NCAAF") or an ad hoc
// "sport/league" pair such as "soccer/eng.1".
func ParseLeague(name string) (*League, error) {
	if l, ok := LookupLeague(name); ok {
		return l, nil
	}
	if sport, slug, ok := strings.Cut(strings.TrimSpace(name), "/"); ok && sport != "" && slug != "" {
		return NewLeague(sport, slug, strings.ToUpper(slug), ""), nil
	}
	return nil, fmt.Errorf("unknown league %q (use a predefined league or sport/league)", name)
}
