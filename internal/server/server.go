package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rs/cors"

	"github.com/five82/platter/internal/middleware"
	"github.com/five82/platter/internal/store"
)

// Options tune the HTTP surface of the server.
type Options struct {
	CORSOrigins []string
	RateLimit   float64 // requests per second shared by all clients
	RateBurst   int
}

type Server struct {
	restaurants *store.RestaurantStore
	opts        Options
	logger      *slog.Logger
}

func New(restaurants *store.RestaurantStore, opts Options, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{restaurants: restaurants, opts: opts, logger: logger}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)

	mux.HandleFunc("GET /restaurants", s.queryRestaurants)
	mux.HandleFunc("POST /restaurants", s.createRestaurant)
	mux.HandleFunc("GET /restaurants/{name}", s.getRestaurant)
	mux.HandleFunc("PATCH /restaurants/{name}", s.updateRestaurant)
	mux.HandleFunc("DELETE /restaurants/{name}", s.deleteRestaurant)

	c := cors.New(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", middleware.RequestIDHeader},
		ExposedHeaders: []string{"Location", middleware.RequestIDHeader},
	})

	var h http.Handler = mux
	h = middleware.RateLimit(s.logger.With("component", "ratelimit"), s.opts.RateLimit, s.opts.RateBurst)(h)
	h = c.Handler(h)
	h = middleware.RequestLogger(s.logger.With("component", "http"))(h)
	return middleware.RequestID(h)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeStoreError maps store sentinels to status codes; anything else is a 500.
func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrInvalid):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "restaurant not found"})
	case errors.Is(err, store.ErrAlreadyExists):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "restaurant already exists"})
	default:
		s.logger.Error("store failure",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
