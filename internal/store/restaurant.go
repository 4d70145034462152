package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/five82/platter/internal/restaurant"
)

var (
	// ErrNotFound is returned when no record carries the requested name.
	ErrNotFound = errors.New("restaurant not found")
	// ErrAlreadyExists is returned when a name is taken, compared case-insensitively.
	ErrAlreadyExists = errors.New("restaurant already exists")
	// ErrInvalid wraps validation failures.
	ErrInvalid = errors.New("invalid restaurant")
)

// Filter selects records for Query. TriedBefore nil matches both states.
type Filter struct {
	NameBeginsWith string
	Category       restaurant.Category
	TriedBefore    *bool
	RatingAtLeast  int
}

// Empty reports whether no criterion is set.
func (f Filter) Empty() bool {
	return strings.TrimSpace(f.NameBeginsWith) == "" && f.Category == "" && f.TriedBefore == nil && f.RatingAtLeast == 0
}

// Patch carries the fields of a partial update. Nil fields are left untouched.
type Patch struct {
	Name        *string
	Categories  *[]restaurant.Category
	TriedBefore *bool
	Rating      *int
	Review      *string
	Notes       *[]string
}

type RestaurantStore struct {
	db *sql.DB
}

func NewRestaurantStore(db *sql.DB) *RestaurantStore {
	return &RestaurantStore{db: db}
}

func scanRestaurant(scanner interface{ Scan(...any) error }) (restaurant.Restaurant, error) {
	var r restaurant.Restaurant
	var categories, notes string
	var tried int
	var rating sql.NullInt64
	var review sql.NullString

	if err := scanner.Scan(&r.Name, &categories, &tried, &rating, &review, &notes); err != nil {
		return restaurant.Restaurant{}, err
	}

	r.TriedBefore = tried != 0
	if rating.Valid {
		r.Rating = restaurant.IntPtr(int(rating.Int64))
	}
	if review.Valid {
		r.Review = restaurant.StringPtr(review.String)
	}
	if err := json.Unmarshal([]byte(categories), &r.Categories); err != nil {
		return restaurant.Restaurant{}, fmt.Errorf("decode categories: %w", err)
	}
	if err := json.Unmarshal([]byte(notes), &r.Notes); err != nil {
		return restaurant.Restaurant{}, fmt.Errorf("decode notes: %w", err)
	}
	if r.Notes == nil {
		r.Notes = []string{}
	}
	return r, nil
}

const restaurantCols = `name, categories, tried_before, rating, review, notes`

// Query returns the records matching f ordered by name, case-insensitively.
// The minimum rating only applies when not-tried records are excluded.
func (s *RestaurantStore) Query(ctx context.Context, f Filter) ([]restaurant.Restaurant, error) {
	if f.Empty() {
		return nil, fmt.Errorf("%w: at least one search criterion is required", ErrInvalid)
	}
	if f.Category != "" && !f.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalid, f.Category)
	}
	if f.RatingAtLeast != 0 && !restaurant.ValidRating(f.RatingAtLeast) {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", ErrInvalid, restaurant.MinRating, restaurant.MaxRating)
	}

	var where []string
	var args []any
	if prefix := strings.ToLower(strings.TrimSpace(f.NameBeginsWith)); prefix != "" {
		where = append(where, `name_lower LIKE ? ESCAPE '\'`)
		args = append(args, escapeLike(prefix)+"%")
	}
	if f.Category != "" {
		where = append(where, `EXISTS (SELECT 1 FROM json_each(restaurants.categories) WHERE json_each.value = ?)`)
		args = append(args, string(f.Category))
	}
	if f.TriedBefore != nil {
		where = append(where, `tried_before = ?`)
		args = append(args, boolInt(*f.TriedBefore))
	}
	if f.RatingAtLeast > 0 && (f.TriedBefore == nil || *f.TriedBefore) {
		where = append(where, `rating >= ?`)
		args = append(args, f.RatingAtLeast)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+restaurantCols+` FROM restaurants WHERE `+strings.Join(where, ` AND `)+` ORDER BY name_lower`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("query restaurants: %w", err)
	}
	defer rows.Close()

	items := []restaurant.Restaurant{}
	for rows.Next() {
		r, err := scanRestaurant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan restaurant: %w", err)
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

// Get returns the record whose name matches, case-insensitively.
func (s *RestaurantStore) Get(ctx context.Context, name string) (restaurant.Restaurant, error) {
	return s.get(ctx, s.db, name)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *RestaurantStore) get(ctx context.Context, q queryRower, name string) (restaurant.Restaurant, error) {
	row := q.QueryRowContext(ctx, `SELECT `+restaurantCols+` FROM restaurants WHERE name_lower = ?`, nameKey(name))
	r, err := scanRestaurant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return restaurant.Restaurant{}, ErrNotFound
	}
	if err != nil {
		return restaurant.Restaurant{}, fmt.Errorf("get restaurant: %w", err)
	}
	return r, nil
}

// Create validates and stores a new record. A rating or review marks the
// record as tried.
func (s *RestaurantStore) Create(ctx context.Context, r restaurant.Restaurant) (restaurant.Restaurant, error) {
	r, err := normalize(r)
	if err != nil {
		return restaurant.Restaurant{}, err
	}
	if len(r.Categories) == 0 {
		return restaurant.Restaurant{}, fmt.Errorf("%w: at least one category is required", ErrInvalid)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return restaurant.Restaurant{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := s.get(ctx, tx, r.Name); err == nil {
		return restaurant.Restaurant{}, ErrAlreadyExists
	} else if !errors.Is(err, ErrNotFound) {
		return restaurant.Restaurant{}, err
	}

	args, err := columnArgs(r)
	if err != nil {
		return restaurant.Restaurant{}, err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO restaurants (name, name_lower, categories, tried_before, rating, review, notes) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		args...,
	); err != nil {
		return restaurant.Restaurant{}, fmt.Errorf("insert restaurant: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return restaurant.Restaurant{}, fmt.Errorf("commit: %w", err)
	}
	return r, nil
}

// Update applies p to the record called name. The bool result is false when
// the patch left the record unchanged.
func (s *RestaurantStore) Update(ctx context.Context, name string, p Patch) (restaurant.Restaurant, bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return restaurant.Restaurant{}, false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	existing, err := s.get(ctx, tx, name)
	if err != nil {
		return restaurant.Restaurant{}, false, err
	}

	updated, err := apply(existing, p)
	if err != nil {
		return restaurant.Restaurant{}, false, err
	}
	if updated.Equal(existing) {
		return existing, false, nil
	}

	if nameKey(updated.Name) != nameKey(existing.Name) {
		if _, err := s.get(ctx, tx, updated.Name); err == nil {
			return restaurant.Restaurant{}, false, ErrAlreadyExists
		} else if !errors.Is(err, ErrNotFound) {
			return restaurant.Restaurant{}, false, err
		}
	}

	args, err := columnArgs(updated)
	if err != nil {
		return restaurant.Restaurant{}, false, err
	}
	args = append(args, existing.Name)
	if _, err := tx.ExecContext(ctx,
		`UPDATE restaurants
		 SET name = ?, name_lower = ?, categories = ?, tried_before = ?, rating = ?, review = ?, notes = ?,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE name = ?`,
		args...,
	); err != nil {
		return restaurant.Restaurant{}, false, fmt.Errorf("update restaurant: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return restaurant.Restaurant{}, false, fmt.Errorf("commit: %w", err)
	}
	return updated, true, nil
}

// Delete removes the record called name. Deleting a missing record is not an error.
func (s *RestaurantStore) Delete(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM restaurants WHERE name_lower = ?`, nameKey(name)); err != nil {
		return fmt.Errorf("delete restaurant: %w", err)
	}
	return nil
}

// Count returns the number of stored records.
func (s *RestaurantStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM restaurants`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count restaurants: %w", err)
	}
	return n, nil
}

func apply(r restaurant.Restaurant, p Patch) (restaurant.Restaurant, error) {
	out := r.Clone()
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Categories != nil && len(*p.Categories) > 0 {
		out.Categories = slices.Clone(*p.Categories)
	}
	if p.TriedBefore != nil {
		out.TriedBefore = *p.TriedBefore
	}
	if p.Rating != nil {
		out.Rating = restaurant.IntPtr(*p.Rating)
	}
	if p.Review != nil {
		out.Review = restaurant.StringPtr(*p.Review)
	}
	if p.Notes != nil {
		out.Notes = slices.Clone(*p.Notes)
	}
	if !out.TriedBefore {
		out.Rating = nil
		out.Review = nil
	}
	return normalize(out)
}

// normalize trims and validates r. Rating and review imply TriedBefore, blank
// reviews and notes are dropped and categories are de-duplicated.
func normalize(r restaurant.Restaurant) (restaurant.Restaurant, error) {
	out := r.Clone()
	out.Name = strings.TrimSpace(out.Name)
	if out.Name == "" {
		return restaurant.Restaurant{}, fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if !restaurant.AddressableName(out.Name) {
		return restaurant.Restaurant{}, fmt.Errorf("%w: name %q is reserved", ErrInvalid, out.Name)
	}

	categories := make([]restaurant.Category, 0, len(out.Categories))
	for _, c := range out.Categories {
		if !c.Valid() {
			return restaurant.Restaurant{}, fmt.Errorf("%w: unknown category %q", ErrInvalid, c)
		}
		if !slices.Contains(categories, c) {
			categories = append(categories, c)
		}
	}
	out.Categories = categories

	if out.Rating != nil && !restaurant.ValidRating(*out.Rating) {
		return restaurant.Restaurant{}, fmt.Errorf("%w: rating must be between %d and %d", ErrInvalid, restaurant.MinRating, restaurant.MaxRating)
	}
	if out.Review != nil && strings.TrimSpace(*out.Review) == "" {
		out.Review = nil
	}
	if out.Rating != nil || out.Review != nil {
		out.TriedBefore = true
	}

	notes := make([]string, 0, len(out.Notes))
	for _, n := range out.Notes {
		if n = strings.TrimSpace(n); n != "" {
			notes = append(notes, n)
		}
	}
	out.Notes = notes
	return out, nil
}

// columnArgs returns the insert/update arguments in column order.
func columnArgs(r restaurant.Restaurant) ([]any, error) {
	categories, err := json.Marshal(r.Categories)
	if err != nil {
		return nil, fmt.Errorf("encode categories: %w", err)
	}
	notes, err := json.Marshal(r.Notes)
	if err != nil {
		return nil, fmt.Errorf("encode notes: %w", err)
	}
	var rating sql.NullInt64
	if r.Rating != nil {
		rating = sql.NullInt64{Int64: int64(*r.Rating), Valid: true}
	}
	var review sql.NullString
	if r.Review != nil {
		review = sql.NullString{String: *r.Review, Valid: true}
	}
	return []any{r.Name, nameKey(r.Name), string(categories), boolInt(r.TriedBefore), rating, review, string(notes)}, nil
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// Seed creates every record whose name is not taken yet and returns how many
// were added.
func (s *RestaurantStore) Seed(ctx context.Context, items []restaurant.Restaurant) (int, error) {
	added := 0
	for _, r := range items {
		_, err := s.Create(ctx, r)
		switch {
		case err == nil:
			added++
		case errors.Is(err, ErrAlreadyExists):
		default:
			return added, fmt.Errorf("seed %q: %w", r.Name, err)
		}
	}
	return added, nil
}
