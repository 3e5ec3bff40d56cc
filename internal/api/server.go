// Package api exposes inventory maintenance, build evaluation and optimization over HTTP.
package api

import (
	"bufio"
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/udisondev/athena/internal/combat"
	"github.com/udisondev/athena/internal/model"
	"github.com/udisondev/athena/internal/optimizer"
)

// Store persists inventory changes made through the API.
type Store interface {
	SaveItem(ctx context.Context, item *model.Item) error
	DeleteItem(ctx context.Context, category model.Category, name string) error
}

// Defaults fill request fields the client leaves out.
type Defaults struct {
	CharBaseAtk   float64
	WeaponBaseAtk float64
	Team          model.TeamConfig
	Workers       int
	ProgressEvery int
}

// Server serves the HTTP API over one shared inventory.
type Server struct {
	inv       *model.Inventory
	store     Store
	evaluator *combat.Evaluator
	defaults  Defaults
	router    *mux.Router
	upgrader  websocket.Upgrader
}

// NewServer creates a Server. store may be nil, then changes live only in memory.
func NewServer(inv *model.Inventory, store Store, defaults Defaults) *Server {
	s := &Server{
		inv:       inv,
		store:     store,
		evaluator: combat.Default(),
		defaults:  defaults,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() {
	r := mux.NewRouter()
	r.Use(logRequests)

	// Routes live on the root router: a subrouter answers a method mismatch with 404, not 405.
	r.HandleFunc("/api/inventory", s.handleInventory).Methods(http.MethodGet)
	r.HandleFunc("/api/items", s.handleAddItem).Methods(http.MethodPost)
	r.HandleFunc("/api/items/{category}/{name}", s.handleDeleteItem).Methods(http.MethodDelete)
	r.HandleFunc("/api/evaluate", s.handleEvaluate).Methods(http.MethodPost)
	r.HandleFunc("/api/optimize", s.handleOptimize).Methods(http.MethodPost)
	r.HandleFunc("/api/optimize/ws", s.handleOptimizeWS).Methods(http.MethodGet)

	s.router = r
}

func (s *Server) optimizer(progress optimizer.ProgressFunc) *optimizer.Optimizer {
	return &optimizer.Optimizer{
		Evaluator:     s.evaluator,
		Workers:       s.defaults.Workers,
		ProgressEvery: s.defaults.ProgressEvery,
		Progress:      progress,
	}
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Hijack hands the connection to the websocket upgrader.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (r *statusRecorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}
