// Package restaurant holds the restaurant record, its category tags and the
// HTTP client for the restaurants API.
//
// Records are addressed by name. The client escapes the name as a single
// path segment, so names containing spaces or slashes survive the round trip.
package restaurant
