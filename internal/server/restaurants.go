package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/five82/platter/internal/restaurant"
	"github.com/five82/platter/internal/store"
)

// restaurantRequest is the body of POST and PATCH. Absent fields stay nil so a
// PATCH only touches what the client sent.
type restaurantRequest struct {
	Name        *string                `json:"name"`
	Categories  *[]restaurant.Category `json:"categories"`
	TriedBefore *bool                  `json:"triedBefore"`
	Rating      *int                   `json:"rating"`
	Review      *string                `json:"review"`
	Notes       *[]string              `json:"notes"`
}

func (req restaurantRequest) record() restaurant.Restaurant {
	var r restaurant.Restaurant
	if req.Name != nil {
		r.Name = *req.Name
	}
	if req.Categories != nil {
		r.Categories = *req.Categories
	}
	if req.TriedBefore != nil {
		r.TriedBefore = *req.TriedBefore
	}
	r.Rating = req.Rating
	r.Review = req.Review
	if req.Notes != nil {
		r.Notes = *req.Notes
	}
	return r
}

func (req restaurantRequest) patch() store.Patch {
	return store.Patch{
		Name:        req.Name,
		Categories:  req.Categories,
		TriedBefore: req.TriedBefore,
		Rating:      req.Rating,
		Review:      req.Review,
		Notes:       req.Notes,
	}
}

func decodeRequest(r *http.Request) (restaurantRequest, error) {
	var req restaurantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return restaurantRequest{}, err
	}
	return req, nil
}

func parseFilter(q url.Values) (store.Filter, error) {
	f := store.Filter{NameBeginsWith: strings.TrimSpace(q.Get("nameBeginsWith"))}

	if v := strings.TrimSpace(q.Get("category")); v != "" {
		c, ok := restaurant.ParseCategory(v)
		if !ok {
			return store.Filter{}, fmt.Errorf("unknown category %q", v)
		}
		f.Category = c
	}
	if v := strings.TrimSpace(q.Get("triedBefore")); v != "" {
		tried, err := strconv.ParseBool(v)
		if err != nil {
			return store.Filter{}, fmt.Errorf("triedBefore must be true or false")
		}
		f.TriedBefore = &tried
	}
	if v := strings.TrimSpace(q.Get("ratingAtLeast")); v != "" {
		rating, err := strconv.Atoi(v)
		if err != nil {
			return store.Filter{}, fmt.Errorf("ratingAtLeast must be a number")
		}
		f.RatingAtLeast = rating
	}
	return f, nil
}

func (s *Server) queryRestaurants(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r.URL.Query())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	items, err := s.restaurants.Query(r.Context(), f)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) getRestaurant(w http.ResponseWriter, r *http.Request) {
	item, err := s.restaurants.Get(r.Context(), r.PathValue("name"))
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) createRestaurant(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	created, err := s.restaurants.Create(r.Context(), req.record())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.logger.Info("restaurant created", "name", created.Name)
	w.Header().Set("Location", "/restaurants/"+url.PathEscape(created.Name))
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) updateRestaurant(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	name := r.PathValue("name")
	updated, changed, err := s.restaurants.Update(r.Context(), name, req.patch())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	if !changed {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.logger.Info("restaurant updated", "name", name, "new_name", updated.Name)
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteRestaurant(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := s.restaurants.Delete(r.Context(), name); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.logger.Info("restaurant deleted", "name", name)
	w.WriteHeader(http.StatusNoContent)
}
