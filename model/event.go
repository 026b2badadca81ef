package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EventStatus is the lifecycle state of an event
type EventStatus string

const (
	StatusScheduled  EventStatus = "scheduled"
	StatusInProgress EventStatus = "in_progress"
	StatusFinal      EventStatus = "final"
	StatusPostponed  EventStatus = "postponed"
	StatusCancelled  EventStatus = "cancelled"
)

// StatusFromState maps an upstream state code. Unknown codes are scheduled.
func StatusFromState(state string) EventStatus {
	switch state {
	case "in":
		return StatusInProgress
	case "post":
		return StatusFinal
	default:
		return StatusScheduled
	}
}

// DefaultSeasonType is the regular season
const DefaultSeasonType = 2

// Event is a single game or match.
type Event struct {
	League       *League          `json:"league"`
	Venue        *Venue           `json:"venue,omitempty"`
	ID           string           `json:"id"`
	UID          string           `json:"uid,omitempty"`
	Date         time.Time        `json:"date"`
	Name         string           `json:"name"`
	ShortName    string           `json:"shortName,omitempty"`
	SeasonYear   int              `json:"seasonYear"`
	SeasonType   int              `json:"seasonType"`
	SeasonSlug   string           `json:"seasonSlug,omitempty"`
	Week         *int             `json:"week,omitempty"`
	Status       EventStatus      `json:"status"`
	StatusDetail string           `json:"statusDetail,omitempty"`
	Clock        string           `json:"clock,omitempty"`
	Period       *int             `json:"period,omitempty"`
	Attendance   *int             `json:"attendance,omitempty"`
	Broadcasts   []map[string]any `json:"broadcasts,omitempty"`
	Links        []Link           `json:"links,omitempty"`

	Raw map[string]any `json:"-"`
}

// MapEvent builds an Event from a scoreboard event or summary header.
// An unparsable date falls back to the current time. Venue, attendance
// and broadcasts come from the first competition when one is present.
func MapEvent(data map[string]any, league *League) *Event {
	status := getMap(data, "status")
	statusType := getMap(status, "type")
	season := getMap(data, "season")

	date := parseDateTimeOrNow(getString(data, "date"))

	ev := &Event{
		League:       league,
		ID:           getString(data, "id"),
		UID:          getString(data, "uid"),
		Date:         date,
		Name:         getString(data, "name"),
		ShortName:    getString(data, "shortName"),
		SeasonYear:   getInt(season, "year", date.Year()),
		SeasonType:   getInt(season, "type", DefaultSeasonType),
		SeasonSlug:   getString(season, "slug"),
		Week:         getOptInt(getMap(data, "week"), "number"),
		Status:       StatusFromState(getString(statusType, "state")),
		StatusDetail: getString(statusType, "detail"),
		Clock:        getString(status, "displayClock"),
		Period:       getOptInt(status, "period"),
		Links:        mapLinks(data),
		Raw:          data,
	}

	if comps := getMaps(data, "competitions"); len(comps) > 0 {
		comp := comps[0]
		ev.Attendance = getOptInt(comp, "attendance")
		ev.Broadcasts = getMaps(comp, "broadcasts")
		if venue := getMap(comp, "venue"); venue != nil {
			ev.Venue = MapVenue(venue)
		}
	}

	return ev
}

// IsCompleted reports whether the event is final or cancelled
func (e *Event) IsCompleted() bool {
	return e.Status == StatusFinal || e.Status == StatusCancelled
}

// IsLive reports whether the event is in progress
func (e *Event) IsLive() bool {
	return e.Status == StatusInProgress
}

// DisplayStatus returns the upstream status detail, or the status in words
func (e *Event) DisplayStatus() string {
	if e.StatusDetail != "" {
		return e.StatusDetail
	}
	return strings.ReplaceAll(string(e.Status), "_", " ")
}

// String returns "Short Name (YYYY-MM-DD)"
func (e *Event) String() string {
	name := firstNonEmpty(e.ShortName, e.Name, "Unknown Event")
	return fmt.Sprintf("%s (%s)", name, e.Date.Format("2006-01-02"))
}

// Competitor ties a team to an event with game-specific data.
type Competitor struct {
	Event      *Event           `json:"-"`
	Team       *Team            `json:"team"`
	HomeAway   string           `json:"homeAway"`
	Score      string           `json:"score"`
	Winner     *bool            `json:"winner,omitempty"`
	LineScores []map[string]any `json:"linescores,omitempty"`
	Records    []Record         `json:"records,omitempty"`
	Statistics []Statistic      `json:"statistics,omitempty"`
	Leaders    []map[string]any `json:"leaders,omitempty"`
	Order      int              `json:"order"`

	Raw map[string]any `json:"-"`
}

// MapCompetitor builds a Competitor. HomeAway is "home" or "away",
// defaulting to "away".
func MapCompetitor(data map[string]any, event *Event, league *League) *Competitor {
	homeAway := "away"
	if strings.EqualFold(getString(data, "homeAway"), "home") {
		homeAway = "home"
	}

	return &Competitor{
		Event:      event,
		Team:       MapTeam(getMap(data, "team"), league),
		HomeAway:   homeAway,
		Score:      scoreString(data["score"]),
		Winner:     getOptBool(data, "winner"),
		LineScores: getMaps(data, "linescores"),
		Records:    mapRecords(data),
		Statistics: mapStatistics(data),
		Leaders:    getMaps(data, "leaders"),
		Order:      getInt(data, "order", 0),
		Raw:        data,
	}
}

// scoreString keeps the literal score. The core API nests it in an object.
func scoreString(v any) string {
	if m, ok := v.(map[string]any); ok {
		return firstNonEmpty(getString(m, "displayValue"), getString(m, "value"))
	}
	return SafeString(v, "")
}

// ScoreInt parses the score. Empty or non-numeric scores yield false.
func (c *Competitor) ScoreInt() (int, bool) {
	if c.Score == "" {
		return 0, false
	}
	n, err := strconv.Atoi(c.Score)
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsHome reports whether the competitor is the home side
func (c *Competitor) IsHome() bool {
	return c.HomeAway == "home"
}

// IsAway reports whether the competitor is the away side
func (c *Competitor) IsAway() bool {
	return c.HomeAway == "away"
}

// String returns "ABBR (home) - Event"
func (c *Competitor) String() string {
	abbr := ""
	if c.Team != nil {
		abbr = c.Team.Abbreviation
	}
	name := ""
	if c.Event != nil {
		name = firstNonEmpty(c.Event.ShortName, c.Event.Name)
	}
	return fmt.Sprintf("%s (%s) - %s", abbr, c.HomeAway, name)
}
