package model

import (
	"slices"
	"time"
)

// Link is a related URL with relation tags
type Link struct {
	Rel  []string `json:"rel,omitempty"`
	Href string   `json:"href"`
	Text string   `json:"text,omitempty"`
}

// HasRel reports whether the link carries the relation tag
func (l Link) HasRel(rel string) bool {
	return slices.Contains(l.Rel, rel)
}

// Logo is an image with optional dimensions and relation tags
type Logo struct {
	Href        string     `json:"href"`
	Width       *int       `json:"width,omitempty"`
	Height      *int       `json:"height,omitempty"`
	Alt         string     `json:"alt,omitempty"`
	Rel         []string   `json:"rel,omitempty"`
	LastUpdated *time.Time `json:"lastUpdated,omitempty"`
}

// Address is a postal location
type Address struct {
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
}

// Record is a win/loss record such as "overall" or "home"
type Record struct {
	Type         string   `json:"type"`
	Name         string   `json:"name,omitempty"`
	Summary      string   `json:"summary,omitempty"`
	DisplayValue string   `json:"displayValue,omitempty"`
	Value        *float64 `json:"value,omitempty"`
	Rank         *int     `json:"rank,omitempty"`
}

// Statistic is one named stat line
type Statistic struct {
	Name             string   `json:"name"`
	DisplayName      string   `json:"displayName,omitempty"`
	ShortDisplayName string   `json:"shortDisplayName,omitempty"`
	Description      string   `json:"description,omitempty"`
	Abbreviation     string   `json:"abbreviation,omitempty"`
	Value            *float64 `json:"value,omitempty"`
	DisplayValue     string   `json:"displayValue,omitempty"`
	Rank             *int     `json:"rank,omitempty"`
}

// Links and logos without an href are dropped along with non-object elements.
func mapLinks(src map[string]any) []Link {
	var out []Link
	for _, m := range getMaps(src, "links") {
		href := getString(m, "href")
		if href == "" {
			continue
		}
		out = append(out, Link{
			Rel:  getStrings(m, "rel"),
			Href: href,
			Text: getString(m, "text"),
		})
	}
	return out
}

func mapLogos(src map[string]any) []Logo {
	var out []Logo
	for _, m := range getMaps(src, "logos") {
		href := getString(m, "href")
		if href == "" {
			continue
		}
		logo := Logo{
			Href:   href,
			Width:  getOptInt(m, "width"),
			Height: getOptInt(m, "height"),
			Alt:    getString(m, "alt"),
			Rel:    getStrings(m, "rel"),
		}
		if t, ok := ParseDateTime(getString(m, "lastUpdated")); ok {
			logo.LastUpdated = &t
		}
		out = append(out, logo)
	}
	return out
}

func mapAddress(m map[string]any) *Address {
	if len(m) == 0 {
		return nil
	}
	return &Address{
		City:    getString(m, "city"),
		State:   getString(m, "state"),
		Country: getString(m, "country"),
		ZipCode: firstNonEmpty(getString(m, "zipCode"), getString(m, "zip_code")),
	}
}

func mapRecords(src map[string]any) []Record {
	var out []Record
	for _, m := range getMaps(src, "records") {
		out = append(out, Record{
			Type:         getString(m, "type"),
			Name:         getString(m, "name"),
			Summary:      getString(m, "summary"),
			DisplayValue: getString(m, "displayValue"),
			Value:        getOptFloat(m, "value"),
			Rank:         getOptInt(m, "rank"),
		})
	}
	return out
}

func mapStatistics(src map[string]any) []Statistic {
	var out []Statistic
	for _, m := range getMaps(src, "statistics") {
		out = append(out, Statistic{
			Name:             getString(m, "name"),
			DisplayName:      getString(m, "displayName"),
			ShortDisplayName: getString(m, "shortDisplayName"),
			Description:      getString(m, "description"),
			Abbreviation:     getString(m, "abbreviation"),
			Value:            getOptFloat(m, "value"),
			DisplayValue:     getString(m, "displayValue"),
			Rank:             getOptInt(m, "rank"),
		})
	}
	return out
}
