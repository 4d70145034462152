package restaurant

import (
	"slices"
	"strings"
)

// Restaurant mirrors the record exchanged with the restaurants API.
//
// Rating and Review are pointers so a write can tell "not sent" apart from
// "cleared"; both are only meaningful while TriedBefore is set.
type Restaurant struct {
	Name        string     `json:"name,omitempty"`
	Categories  []Category `json:"categories,omitempty"`
	TriedBefore bool       `json:"triedBefore"`
	Rating      *int       `json:"rating,omitempty"`
	Review      *string    `json:"review,omitempty"`
	Notes       []string   `json:"notes"`
}

// Exists reports whether the record is addressable by name.
func (r Restaurant) Exists() bool {
	return strings.TrimSpace(r.Name) != ""
}

// AddressableName reports whether name can be used as the final segment of
// /restaurants/{name}. "." and ".." are dot segments and would resolve to a
// different path.
func AddressableName(name string) bool {
	return name != "" && name != "." && name != ".."
}

// HasReview reports whether a non-blank review is attached.
func (r Restaurant) HasReview() bool {
	return r.Review != nil && strings.TrimSpace(*r.Review) != ""
}

// Clone returns a deep copy so callers can hold snapshots safely.
func (r Restaurant) Clone() Restaurant {
	dup := r
	dup.Categories = slices.Clone(r.Categories)
	dup.Notes = slices.Clone(r.Notes)
	if r.Rating != nil {
		v := *r.Rating
		dup.Rating = &v
	}
	if r.Review != nil {
		v := *r.Review
		dup.Review = &v
	}
	return dup
}

// Equal compares two records field by field.
func (r Restaurant) Equal(other Restaurant) bool {
	if r.Name != other.Name || r.TriedBefore != other.TriedBefore {
		return false
	}
	if !slices.Equal(r.Categories, other.Categories) || !slices.Equal(r.Notes, other.Notes) {
		return false
	}
	if (r.Rating == nil) != (other.Rating == nil) || (r.Rating != nil && *r.Rating != *other.Rating) {
		return false
	}
	if (r.Review == nil) != (other.Review == nil) || (r.Review != nil && *r.Review != *other.Review) {
		return false
	}
	return true
}

// Criteria configures GET /restaurants requests. Zero values are left out of
// the query, except TriedBefore which is always sent.
type Criteria struct {
	NameBeginsWith string
	Category       Category
	TriedBefore    bool
	RatingAtLeast  int
}

// Rating bounds accepted by the API.
const (
	MinRating = 1
	MaxRating = 10
)

// ValidRating reports whether v is inside the accepted rating range.
func ValidRating(v int) bool {
	return v >= MinRating && v <= MaxRating
}

// IntPtr returns a pointer to v, for optional fields.
func IntPtr(v int) *int { return &v }

// StringPtr returns a pointer to v, for optional fields.
func StringPtr(v string) *string { return &v }

// CloneAll deep-copies a result set. A nil input stays nil.
func CloneAll(items []Restaurant) []Restaurant {
	if items == nil {
		return nil
	}
	dup := make([]Restaurant, len(items))
	for i, item := range items {
		dup[i] = item.Clone()
	}
	return dup
}
