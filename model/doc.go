// Package model maps ESPN JSON payloads onto typed entities.
//
// Mappers are pure functions over decoded JSON objects (map[string]any).
// They never fail because a field is missing: absent strings are empty,
// flags take their documented default and unparsable event dates fall back
// to the current time. Elements of nested arrays that are not objects are
// skipped. Every entity keeps the object it was built from in Raw.
//
// The *FromResponse helpers work on an *espn.Response and return an
// espn.ErrIngestion error only when the payload's shape is unusable, such as
// a collection key holding something other than an array.
package model
