// fall-detector - detect falls in video footage using motion heuristics
//  Copyright (C) 2026, The Cacophony Project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package alertserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const recentLimit = 50

// Server handles the alert HTTP API.
type Server struct {
	store Store
	hub   *Hub
	log   *zap.Logger
	mux   *http.ServeMux

	now   func() time.Time
	newID func() string
}

// NewServer builds the API. When staticDir is not empty its files are served
// at the root, which is where the dashboard lives.
func NewServer(store Store, log *zap.Logger, staticDir string) *Server {
	s := &Server{
		store: store,
		hub:   NewHub(log),
		log:   log,
		mux:   http.NewServeMux(),
		now:   time.Now,
		newID: uuid.NewString,
	}
	s.mux.HandleFunc("POST /api/alert", s.handleAlert)
	s.mux.HandleFunc("GET /api/last-alert", s.handleLastAlert)
	s.mux.HandleFunc("GET /api/alerts", s.handleAlerts)
	s.mux.Handle("GET /api/alerts/ws", s.hub)
	if staticDir != "" {
		s.mux.Handle("GET /", http.FileServer(http.Dir(staticDir)))
	}
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Hub returns the websocket hub alerts are broadcast on.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Close disconnects websocket clients and closes the store.
func (s *Server) Close() error {
	s.hub.Close()
	return s.store.Close()
}

// alertRequest uses pointers so an empty object can be told apart from zero
// values.
type alertRequest struct {
	Frame  *int     `json:"frame"`
	Time   *float64 `json:"time"`
	Source *string  `json:"source"`
}

func (r alertRequest) empty() bool {
	return r.Frame == nil && r.Time == nil && r.Source == nil
}

type alertView struct {
	ID         string  `json:"id"`
	Frame      int     `json:"frame"`
	Time       float64 `json:"time"`
	Source     string  `json:"source"`
	ReceivedAt string  `json:"received_at"`
}

func viewOf(a StoredAlert) alertView {
	return alertView{
		ID:         a.ID,
		Frame:      a.Frame,
		Time:       a.Time,
		Source:     a.Source,
		ReceivedAt: a.ReceivedAt.Format(receivedAtFormat),
	}
}

func (s *Server) handleAlert(w http.ResponseWriter, r *http.Request) {
	var req alertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.empty() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
		return
	}

	a := StoredAlert{
		ID:         s.newID(),
		ReceivedAt: s.now(),
	}
	if req.Frame != nil {
		a.Frame = *req.Frame
	}
	if req.Time != nil {
		a.Time = *req.Time
	}
	if req.Source != nil {
		a.Source = *req.Source
	}

	if err := s.store.Save(r.Context(), a); err != nil {
		s.log.Error("failed to save alert", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not save alert"})
		return
	}
	s.log.Info("fall alert received",
		zap.String("id", a.ID),
		zap.Int("frame", a.Frame),
		zap.Float64("time", a.Time),
		zap.String("source", a.Source))

	if msg, err := json.Marshal(viewOf(a)); err == nil {
		s.hub.Broadcast(msg)
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "alert_saved"})
}

func (s *Server) handleLastAlert(w http.ResponseWriter, r *http.Request) {
	a, err := s.store.Last(r.Context())
	if err != nil {
		s.internalError(w, err)
		return
	}
	resp := struct {
		Alert    *alertView `json:"alert"`
		HasAlert bool       `json:"hasAlert"`
	}{}
	if a != nil {
		v := viewOf(*a)
		resp.Alert = &v
		resp.HasAlert = true
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := s.store.Recent(r.Context(), recentLimit)
	if err != nil {
		s.internalError(w, err)
		return
	}
	views := make([]alertView, len(alerts))
	for i, a := range alerts {
		views[i] = viewOf(a)
	}
	writeJSON(w, http.StatusOK, map[string][]alertView{"alerts": views})
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	s.log.Error("failed to read alerts", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not read alerts"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ListenAndServe serves the API on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.hub.Close()
		return srv.Shutdown(shutdownCtx)
	}
}
