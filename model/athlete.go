package model

import (
	"fmt"
	"strings"
	"time"
)

// Athlete is a player. A nil Team means free agent.
type Athlete struct {
	ID                   string     `json:"id"`
	UID                  string     `json:"uid,omitempty"`
	FirstName            string     `json:"firstName"`
	LastName             string     `json:"lastName"`
	FullName             string     `json:"fullName"`
	DisplayName          string     `json:"displayName"`
	ShortName            string     `json:"shortName,omitempty"`
	Team                 *Team      `json:"team,omitempty"`
	Position             string     `json:"position,omitempty"`
	PositionAbbreviation string     `json:"positionAbbreviation,omitempty"`
	Jersey               string     `json:"jersey,omitempty"`
	IsActive             bool       `json:"active"`
	Height               string     `json:"height,omitempty"`
	Weight               *int       `json:"weight,omitempty"`
	Age                  *int       `json:"age,omitempty"`
	BirthDate            *time.Time `json:"dateOfBirth,omitempty"`
	BirthPlace           string     `json:"birthPlace,omitempty"`
	Headshot             string     `json:"headshot,omitempty"`
	Links                []Link     `json:"links,omitempty"`

	Raw map[string]any `json:"-"`
}

// MapAthlete builds an Athlete from a flat object or one nested under an
// "athlete" key. Active defaults to true. Height prefers the display form
// ("6' 9\"") over the raw number of inches.
func MapAthlete(data map[string]any, team *Team) *Athlete {
	src := unwrap(data, "athlete")
	position := getMap(src, "position")

	a := &Athlete{
		ID:                   getString(src, "id"),
		UID:                  getString(src, "uid"),
		FirstName:            getString(src, "firstName"),
		LastName:             getString(src, "lastName"),
		FullName:             getString(src, "fullName"),
		DisplayName:          getString(src, "displayName"),
		ShortName:            getString(src, "shortName"),
		Team:                 team,
		Position:             getString(position, "name"),
		PositionAbbreviation: getString(position, "abbreviation"),
		Jersey:               getString(src, "jersey"),
		IsActive:             getBool(src, "active", true),
		Height:               firstNonEmpty(getString(src, "displayHeight"), getString(src, "height")),
		Weight:               getOptInt(src, "weight"),
		Age:                  getOptInt(src, "age"),
		BirthPlace:           getString(getMap(src, "birthPlace"), "city"),
		Headshot:             getString(getMap(src, "headshot"), "href"),
		Links:                mapLinks(src),
		Raw:                  src,
	}

	if dob, ok := ParseDateTime(getString(src, "dateOfBirth")); ok {
		a.BirthDate = &dob
	}

	return a
}

// Name returns the display name, else the full name
func (a *Athlete) Name() string {
	return firstNonEmpty(a.DisplayName, a.FullName)
}

// TeamName returns the team's display name, empty for free agents
func (a *Athlete) TeamName() string {
	if a.Team == nil {
		return ""
	}
	return a.Team.DisplayName
}

// PositionDisplay returns the position abbreviation, name or "Unknown"
func (a *Athlete) PositionDisplay() string {
	return firstNonEmpty(a.PositionAbbreviation, a.Position, "Unknown")
}

// IsFreeAgent reports whether the athlete has no team
func (a *Athlete) IsFreeAgent() bool {
	return a.Team == nil
}

// String returns "Display Name (ABBR)" or "Display Name (FA)"
func (a *Athlete) String() string {
	abbr := "FA"
	if a.Team != nil {
		abbr = strings.TrimSpace(a.Team.Abbreviation)
	}
	return fmt.Sprintf("%s (%s)", a.DisplayName, abbr)
}
