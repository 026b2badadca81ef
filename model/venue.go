package model

import "fmt"

// DefaultCountry is assumed when a venue has no country
const DefaultCountry = "USA"

// Venue is where an event takes place
type Venue struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	City     string   `json:"city,omitempty"`
	State    string   `json:"state,omitempty"`
	Country  string   `json:"country"`
	IsIndoor bool     `json:"indoor"`
	Capacity *int     `json:"capacity,omitempty"`
	Address  *Address `json:"address,omitempty"`

	Raw map[string]any `json:"-"`
}

// MapVenue builds a Venue. The name is fullName, falling back to
// shortName; indoor defaults to true.
func MapVenue(data map[string]any) *Venue {
	addr := getMap(data, "address")

	country := getString(addr, "country")
	if country == "" {
		country = DefaultCountry
	}

	return &Venue{
		ID:       getString(data, "id"),
		Name:     firstNonEmpty(getString(data, "fullName"), getString(data, "shortName")),
		City:     getString(addr, "city"),
		State:    getString(addr, "state"),
		Country:  country,
		IsIndoor: getBool(data, "indoor", true),
		Capacity: getOptInt(data, "capacity"),
		Address:  mapAddress(addr),
		Raw:      data,
	}
}

// Location joins city, state and country, skipping empty parts
func (v *Venue) Location() string {
	return joinNonEmpty(", ", v.City, v.State, v.Country)
}

// FullAddress uses the structured address when present, else Location
func (v *Venue) FullAddress() string {
	if v.Address == nil {
		return v.Location()
	}
	return joinNonEmpty(", ", v.Address.City, v.Address.State, v.Address.ZipCode, v.Address.Country)
}

// String returns "Name (City, State)" or just the name
func (v *Venue) String() string {
	loc := joinNonEmpty(", ", v.City, v.State)
	if loc == "" {
		return v.Name
	}
	return fmt.Sprintf("%s (%s)", v.Name, loc)
}
