// Package display renders mapped ESPN entities as console trees.
package display

import (
	"fmt"
	"strings"

	"github.com/s0up4200/espnapi/model"
)

// FormatOptions contains options for formatting output
type FormatOptions struct {
	ShowDetails bool
	ShowLinks   bool
}

// ConsoleFormatter provides console output formatting for ESPN entities
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// branch returns the tree prefix and the indent for child lines
func branch(isLast bool) (string, string) {
	if isLast {
		return "╰", "    "
	}
	return "├", "│   "
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// FormatGames formats a scoreboard for console display
func (f *ConsoleFormatter) FormatGames(league *model.League, games []*model.Game, options FormatOptions) string {
	if len(games) == 0 {
		return fmt.Sprintf("No %s games found", league.ShortName())
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s %s (%d):\n\n", league.ShortName(), plural(len(games), "Game"), len(games))

	for i, game := range games {
		isLast := i == len(games)-1
		f.formatGame(&sb, game, isLast, options)

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatGame formats a single game, such as an event summary
func (f *ConsoleFormatter) FormatGame(game *model.Game, options FormatOptions) string {
	var sb strings.Builder
	sb.WriteString("\n")
	f.formatGame(&sb, game, true, options)
	sb.WriteString("\n")
	return sb.String()
}

func (f *ConsoleFormatter) formatGame(sb *strings.Builder, game *model.Game, isLast bool, options FormatOptions) {
	prefix, indent := branch(isLast)
	ev := game.Event

	fmt.Fprintf(sb, "%s── %s\n", prefix, ev)

	// Score line
	away, home := game.Away(), game.Home()
	if away != nil && home != nil {
		if ev.Status == model.StatusScheduled {
			fmt.Fprintf(sb, "%s%s @ %s\n", indent, away.Team.Abbreviation, home.Team.Abbreviation)
		} else {
			fmt.Fprintf(sb, "%s%s %s - %s %s\n", indent,
				away.Team.Abbreviation, away.Score, home.Score, home.Team.Abbreviation)
		}
	}

	status := ev.DisplayStatus()
	if ev.IsLive() && ev.Clock != "" && ev.Period != nil {
		status = fmt.Sprintf("%s (P%d %s)", status, *ev.Period, ev.Clock)
	}
	fmt.Fprintf(sb, "%sStatus: %s\n", indent, status)

	if ev.Status == model.StatusScheduled {
		fmt.Fprintf(sb, "%sStart: %s\n", indent, ev.Date.Local().Format("2006-01-02 15:04 MST"))
	}

	if !options.ShowDetails {
		return
	}

	if ev.Venue != nil {
		fmt.Fprintf(sb, "%sVenue: %s\n", indent, ev.Venue)
	}
	if ev.Attendance != nil && *ev.Attendance > 0 {
		fmt.Fprintf(sb, "%sAttendance: %d\n", indent, *ev.Attendance)
	}
	if ev.Week != nil {
		fmt.Fprintf(sb, "%sWeek: %d\n", indent, *ev.Week)
	}

	var records []string
	for _, c := range game.Competitors {
		for _, r := range c.Records {
			if r.Type == "total" || r.Name == "overall" {
				records = append(records, fmt.Sprintf("%s %s", c.Team.Abbreviation, r.Summary))
				break
			}
		}
	}
	if len(records) > 0 {
		fmt.Fprintf(sb, "%sRecords: %s\n", indent, strings.Join(records, " | "))
	}

	if options.ShowLinks {
		f.formatLinks(sb, indent, ev.Links)
	}
}

// FormatTeams formats a list of teams for console display
func (f *ConsoleFormatter) FormatTeams(teams []*model.Team, options FormatOptions) string {
	if len(teams) == 0 {
		return "No teams found"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s (%d):\n\n", plural(len(teams), "Team"), len(teams))

	for i, team := range teams {
		isLast := i == len(teams)-1
		f.formatTeam(&sb, team, isLast, options)

		if !isLast && options.ShowDetails {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatTeam formats one team with its details
func (f *ConsoleFormatter) FormatTeam(team *model.Team, options FormatOptions) string {
	options.ShowDetails = true

	var sb strings.Builder
	sb.WriteString("\n")
	f.formatTeam(&sb, team, true, options)
	sb.WriteString("\n")
	return sb.String()
}

func (f *ConsoleFormatter) formatTeam(sb *strings.Builder, team *model.Team, isLast bool, options FormatOptions) {
	prefix, indent := branch(isLast)

	fmt.Fprintf(sb, "%s── %s [%s] #%s\n", prefix, team.DisplayName, team.Abbreviation, team.ID)

	if !options.ShowDetails {
		return
	}

	if team.Location != "" {
		fmt.Fprintf(sb, "%sLocation: %s\n", indent, team.Location)
	}
	if team.Color != "" {
		colors := "#" + team.Color
		if team.AlternateColor != "" {
			colors += ", #" + team.AlternateColor
		}
		fmt.Fprintf(sb, "%sColors: %s\n", indent, colors)
	}
	if logo, ok := team.PrimaryLogo(); ok {
		fmt.Fprintf(sb, "%sLogo: %s\n", indent, logo)
	}
	if !team.IsActive {
		fmt.Fprintf(sb, "%sStatus: Inactive\n", indent)
	}

	if options.ShowLinks {
		f.formatLinks(sb, indent, team.Links)
	}
}

// FormatAthletes formats a page of athletes for console display
func (f *ConsoleFormatter) FormatAthletes(athletes []*model.Athlete, page model.PageInfo, options FormatOptions) string {
	if len(athletes) == 0 {
		return "No athletes found"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s (%d)", plural(len(athletes), "Athlete"), len(athletes))
	if page.PageCount > 0 {
		fmt.Fprintf(&sb, " page %d/%d of %d", page.PageIndex, page.PageCount, page.Count)
	}
	sb.WriteString(":\n\n")

	for i, a := range athletes {
		isLast := i == len(athletes)-1
		prefix, indent := branch(isLast)

		line := a.String()
		if a.Jersey != "" {
			line = fmt.Sprintf("#%s %s", a.Jersey, line)
		}
		fmt.Fprintf(&sb, "%s── %s - %s\n", prefix, line, a.PositionDisplay())

		if !options.ShowDetails {
			continue
		}

		var physical []string
		if a.Height != "" {
			physical = append(physical, a.Height)
		}
		if a.Weight != nil {
			physical = append(physical, fmt.Sprintf("%d lbs", *a.Weight))
		}
		if a.Age != nil {
			physical = append(physical, fmt.Sprintf("age %d", *a.Age))
		}
		if len(physical) > 0 {
			fmt.Fprintf(&sb, "%s%s\n", indent, strings.Join(physical, " | "))
		}
		if a.BirthPlace != "" {
			fmt.Fprintf(&sb, "%sBorn: %s\n", indent, a.BirthPlace)
		}
		if !a.IsActive {
			fmt.Fprintf(&sb, "%sStatus: Inactive\n", indent)
		}

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatAthleteRefs lists athlete reference links of a core API page
func (f *ConsoleFormatter) FormatAthleteRefs(refs []string, page model.PageInfo) string {
	if len(refs) == 0 {
		return "No athletes found"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\nAthlete references (%d of %d, page %d/%d):\n\n", len(refs), page.Count, page.PageIndex, page.PageCount)
	for i, ref := range refs {
		prefix, _ := branch(i == len(refs)-1)
		fmt.Fprintf(&sb, "%s── %s\n", prefix, ref)
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatLeague formats core API league information
func (f *ConsoleFormatter) FormatLeague(league *model.League) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s\n", league)
	fmt.Fprintf(&sb, "├── Slug: %s\n", league.Slug)
	fmt.Fprintf(&sb, "├── Abbreviation: %s\n", league.ShortName())
	fmt.Fprintf(&sb, "╰── Sport: %s\n", league.SportSlug())
	return sb.String()
}

func (f *ConsoleFormatter) formatLinks(sb *strings.Builder, indent string, links []model.Link) {
	for _, link := range links {
		label := link.Text
		if label == "" && len(link.Rel) > 0 {
			label = link.Rel[0]
		}
		fmt.Fprintf(sb, "%s  - %s: %s\n", indent, label, link.Href)
	}
}
