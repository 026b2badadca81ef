package model

import "fmt"

// Team is a club or franchise bound to a league.
type Team struct {
	League           *League `json:"league"`
	ID               string  `json:"id"`
	UID              string  `json:"uid,omitempty"`
	Slug             string  `json:"slug,omitempty"`
	Abbreviation     string  `json:"abbreviation"`
	DisplayName      string  `json:"displayName"`
	ShortDisplayName string  `json:"shortDisplayName,omitempty"`
	Name             string  `json:"name,omitempty"`
	Nickname         string  `json:"nickname,omitempty"`
	Location         string  `json:"location,omitempty"`
	Color            string  `json:"color,omitempty"`
	AlternateColor   string  `json:"alternateColor,omitempty"`
	IsActive         bool    `json:"isActive"`
	IsAllStar        bool    `json:"isAllStar"`
	Logos            []Logo  `json:"logos,omitempty"`
	Links            []Link  `json:"links,omitempty"`

	Raw map[string]any `json:"-"`
}

// MapTeam builds a Team from either a flat team object or one nested
// under a "team" key. Missing fields take their zero value; IsActive
// defaults to true.
func MapTeam(data map[string]any, league *League) *Team {
	src := unwrap(data, "team")

	return &Team{
		League:           league,
		ID:               getString(src, "id"),
		UID:              getString(src, "uid"),
		Slug:             getString(src, "slug"),
		Abbreviation:     getString(src, "abbreviation"),
		DisplayName:      getString(src, "displayName"),
		ShortDisplayName: getString(src, "shortDisplayName"),
		Name:             getString(src, "name"),
		Nickname:         getString(src, "nickname"),
		Location:         getString(src, "location"),
		Color:            getString(src, "color"),
		AlternateColor:   getString(src, "alternateColor"),
		IsActive:         getBool(src, "isActive", true),
		IsAllStar:        getBool(src, "isAllStar", false),
		Logos:            mapLogos(src),
		Links:            mapLinks(src),
		Raw:              src,
	}
}

// PrimaryLogo returns the logo tagged "default", else the first logo.
func (t *Team) PrimaryLogo() (string, bool) {
	if len(t.Logos) == 0 {
		return "", false
	}
	for _, logo := range t.Logos {
		for _, rel := range logo.Rel {
			if rel == "default" {
				return logo.Href, true
			}
		}
	}
	return t.Logos[0].Href, true
}

// TeamName prefers the short forms: Name, ShortDisplayName, DisplayName.
func (t *Team) TeamName() string {
	return firstNonEmpty(t.Name, t.ShortDisplayName, t.DisplayName)
}

// FullName returns the display name
func (t *Team) FullName() string {
	return t.DisplayName
}

// String returns "Display Name (LEAGUE)"
func (t *Team) String() string {
	if t.League == nil {
		return t.DisplayName
	}
	return fmt.Sprintf("%s (%s)", t.DisplayName, t.League.ShortName())
}
