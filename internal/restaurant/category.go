package restaurant

import (
	"log/slog"
	"sort"
	"strings"
	"unicode"
)

// Category is a cuisine/type tag as it travels on the wire (e.g. "FAST_FOOD").
type Category string

const (
	Asian    Category = "ASIAN"
	Beer     Category = "BEER"
	Burger   Category = "BURGER"
	Chicken  Category = "CHICKEN"
	FastFood Category = "FAST_FOOD"
	Indian   Category = "INDIAN"
	Kebab    Category = "KEBAB"
	Lunch    Category = "LUNCH"
	Other    Category = "OTHER"
	Pasta    Category = "PASTA"
	Pizza    Category = "PIZZA"
	Ramen    Category = "RAMEN"
	Sandwich Category = "SANDWICH"
	Sushi    Category = "SUSHI"
	Vegan    Category = "VEGAN"
)

// identifiers maps wire values to their CamelCase identifiers; labels are
// derived from the identifier, not the wire value.
var identifiers = map[Category]string{
	Asian:    "Asian",
	Beer:     "Beer",
	Burger:   "Burger",
	Chicken:  "Chicken",
	FastFood: "FastFood",
	Indian:   "Indian",
	Kebab:    "Kebab",
	Lunch:    "Lunch",
	Other:    "Other",
	Pasta:    "Pasta",
	Pizza:    "Pizza",
	Ramen:    "Ramen",
	Sandwich: "Sandwich",
	Sushi:    "Sushi",
	Vegan:    "Vegan",
}

// AllCategories returns every known category ordered by label.
func AllCategories() []Category {
	all := make([]Category, 0, len(identifiers))
	for c := range identifiers {
		all = append(all, c)
	}
	sortByLabel(all)
	return all
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := identifiers[c]
	return ok
}

// Identifier returns the CamelCase identifier, or "" for unknown codes.
func (c Category) Identifier() string {
	return identifiers[c]
}

// Label returns the human-readable label ("Fast food"), or "" for unknown codes.
func (c Category) Label() string {
	id, ok := identifiers[c]
	if !ok {
		return ""
	}
	return Prettify(id)
}

// ParseCategory resolves a wire value, identifier or label (case-insensitive).
func ParseCategory(value string) (Category, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", false
	}
	for c, id := range identifiers {
		if strings.EqualFold(trimmed, string(c)) ||
			strings.EqualFold(trimmed, id) ||
			strings.EqualFold(trimmed, Prettify(id)) {
			return c, true
		}
	}
	return "", false
}

// Prettify splits an identifier on its case boundaries: the first character is
// kept, every later upper-case character starts a new lower-cased word.
func Prettify(identifier string) string {
	runes := []rune(identifier)
	if len(runes) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteRune(runes[0])
	for _, r := range runes[1:] {
		if unicode.IsUpper(r) {
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// JoinLabels renders categories as one display string: labels sorted, the
// first capitalised and the rest lower-cased ("Burger, fast food"). Unknown
// codes are logged and skipped.
func JoinLabels(categories []Category) string {
	known := make([]Category, 0, len(categories))
	for _, c := range categories {
		if !c.Valid() {
			slog.Warn("unknown category", "category", string(c))
			continue
		}
		known = append(known, c)
	}
	sortByLabel(known)

	labels := make([]string, 0, len(known))
	for i, c := range known {
		label := c.Label()
		if i > 0 {
			label = strings.ToLower(label)
		}
		labels = append(labels, label)
	}
	return strings.Join(labels, ", ")
}

func sortByLabel(categories []Category) {
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Label() < categories[j].Label()
	})
}
