package filter

import (
	"strings"

	"github.com/s0up4200/espnapi/model"
)

// GameEnv exposes a game to expressions. Scores are -1 when not yet
// reported, so "HomeScore > 100" never matches a scheduled game.
func GameEnv(g *model.Game) Env {
	ev := g.Event
	home, away := g.Home(), g.Away()
	homeScore, awayScore := competitorScore(home), competitorScore(away)
	homeAbbr, awayAbbr := competitorAbbr(home), competitorAbbr(away)

	env := Env{
		"Event":      ev,
		"Home":       homeAbbr,
		"Away":       awayAbbr,
		"HomeScore":  homeScore,
		"AwayScore":  awayScore,
		"ID":         ev.ID,
		"Name":       ev.Name,
		"ShortName":  ev.ShortName,
		"Date":       ev.Date,
		"Status":     string(ev.Status),
		"Detail":     ev.StatusDetail,
		"SeasonYear": ev.SeasonYear,
		"SeasonType": ev.SeasonType,
		"Week":       derefInt(ev.Week),
		"Period":     derefInt(ev.Period),
		"Attendance": derefInt(ev.Attendance),
		"Venue":      "",
		"City":       "",
		"League":     "",
	}
	if ev.Venue != nil {
		env["Venue"] = ev.Venue.Name
		env["City"] = ev.Venue.City
	}
	if ev.League != nil {
		env["League"] = ev.League.Slug
	}

	env["isLive"] = ev.IsLive
	env["isFinal"] = ev.IsCompleted
	env["isScheduled"] = func() bool { return ev.Status == model.StatusScheduled }
	env["hasTeam"] = func(name string) bool {
		return competitorMatches(home, name) || competitorMatches(away, name)
	}
	env["totalScore"] = func() int {
		if homeScore < 0 || awayScore < 0 {
			return 0
		}
		return homeScore + awayScore
	}
	env["margin"] = func() int {
		if homeScore < 0 || awayScore < 0 {
			return 0
		}
		return abs(homeScore - awayScore)
	}
	env["winner"] = func() string {
		for _, c := range g.Competitors {
			if c.Winner != nil && *c.Winner {
				return competitorAbbr(c)
			}
		}
		return ""
	}

	return env
}

// TeamEnv exposes a team to expressions
func TeamEnv(t *model.Team) Env {
	logo, hasLogo := t.PrimaryLogo()
	env := Env{
		"Team":         t,
		"ID":           t.ID,
		"Abbreviation": t.Abbreviation,
		"Name":         t.DisplayName,
		"ShortName":    t.ShortDisplayName,
		"Location":     t.Location,
		"Color":        t.Color,
		"Active":       t.IsActive,
		"AllStar":      t.IsAllStar,
		"Logo":         logo,
		"League":       "",
	}
	if t.League != nil {
		env["League"] = t.League.Slug
	}

	env["hasLogo"] = func() bool { return hasLogo }
	env["is"] = func(name string) bool { return teamMatches(t, name) }

	return env
}

// AthleteEnv exposes an athlete to expressions. Missing numbers are 0.
func AthleteEnv(a *model.Athlete) Env {
	env := Env{
		"Athlete":   a,
		"ID":        a.ID,
		"Name":      a.Name(),
		"FirstName": a.FirstName,
		"LastName":  a.LastName,
		"Position":  a.PositionDisplay(),
		"Jersey":    a.Jersey,
		"Age":       derefInt(a.Age),
		"Weight":    derefInt(a.Weight),
		"Height":    a.Height,
		"Active":    a.IsActive,
		"FreeAgent": a.IsFreeAgent(),
		"Team":      "",
	}
	if a.Team != nil {
		env["Team"] = a.Team.Abbreviation
	}

	env["isPosition"] = func(pos string) bool {
		return strings.EqualFold(a.PositionAbbreviation, pos) || strings.EqualFold(a.Position, pos)
	}
	env["playsFor"] = func(name string) bool {
		return a.Team != nil && teamMatches(a.Team, name)
	}

	return env
}

func competitorScore(c *model.Competitor) int {
	if c == nil {
		return -1
	}
	n, ok := c.ScoreInt()
	if !ok {
		return -1
	}
	return n
}

func competitorAbbr(c *model.Competitor) string {
	if c == nil || c.Team == nil {
		return ""
	}
	return c.Team.Abbreviation
}

func competitorMatches(c *model.Competitor, name string) bool {
	return c != nil && c.Team != nil && teamMatches(c.Team, name)
}

// teamMatches compares abbreviation, display name and short name, ignoring case
func teamMatches(t *model.Team, name string) bool {
	return strings.EqualFold(t.Abbreviation, name) ||
		strings.EqualFold(t.DisplayName, name) ||
		strings.EqualFold(t.ShortDisplayName, name)
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
