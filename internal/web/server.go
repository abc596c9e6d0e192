// Package web serves the interactive dashboard: upload a dataset, choose
// filters and a custom chart, and view the recommendation, time series, and
// country map. Charts are built server-side as Plotly JSON specifications
// and drawn in the browser.
package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/veldt-labs/cropsight/internal/config"
	"github.com/veldt-labs/cropsight/internal/dataset"
)

const sessionCookie = "cropsight_session"

// Server holds the uploaded tables, keyed by session id. Tables live in
// memory for the duration of a session; nothing is persisted.
type Server struct {
	cfg *config.Config
	mux *http.ServeMux

	mu     sync.Mutex
	tables map[string]*dataset.Table
}

// New builds a dashboard server around the given configuration.
func New(cfg *config.Config) *Server {
	s := &Server{
		cfg:    cfg,
		mux:    http.NewServeMux(),
		tables: make(map[string]*dataset.Table),
	}
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/upload", s.handleUpload)
	s.mux.HandleFunc("/dashboard", s.handleDashboard)
	s.mux.HandleFunc("/reset", s.handleReset)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe runs the server on the configured address.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return srv.ListenAndServe()
}

// session returns the request's session id, setting the cookie on first use.
func (s *Server) session(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
	})
	return id
}

func (s *Server) table(r *http.Request) *dataset.Table {
	c, err := r.Cookie(sessionCookie)
	if err != nil || c.Value == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tables[c.Value]
}

func (s *Server) setTable(id string, t *dataset.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[id] = t
}

func (s *Server) clearTable(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tables, id)
}

func (s *Server) maxUploadBytes() int64 {
	mb := s.cfg.MaxUploadMB
	if mb <= 0 {
		mb = 32
	}
	return int64(mb) << 20
}
