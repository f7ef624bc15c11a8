// Package api serves a read only view of a running game. Spectators can fetch
// the session details and recent frames, or follow the game over a websocket.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gridsnake/engine/config"
	"github.com/gridsnake/engine/controller"
	"github.com/gridsnake/engine/rules"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Session describes the game being served.
type Session struct {
	ID           string        `json:"id"`
	Size         int           `json:"size"`
	TickInterval time.Duration `json:"-"`
	TickMS       int64         `json:"tick_ms"`
	Started      time.Time     `json:"started"`
}

// FramesResponse is the body of GET /frames.
type FramesResponse struct {
	Frames []*rules.Frame `json:"frames"`
}

// Server is the spectator http server.
type Server struct {
	// StreamRate and StreamBurst throttle how often each socket polls the
	// store.
	StreamRate  rate.Limit
	StreamBurst int

	hs      *http.Server
	store   controller.Store
	session Session
}

// New creates a server listening on addr that reads frames from store.
func New(addr string, store controller.Store, session Session) *Server {
	session.TickMS = int64(session.TickInterval / time.Millisecond)
	s := &Server{
		StreamRate:  config.StreamRate,
		StreamBurst: config.StreamBurst,
		store:       store,
		session:     session,
	}

	router := httprouter.New()
	router.GET("/session", s.getSession)
	router.GET("/frames", s.listFrames)
	router.GET("/frames/last", s.lastFrame)
	router.GET("/socket", s.framesSocket)

	s.hs = &http.Server{
		Addr:    addr,
		Handler: cors.Default().Handler(router),
	}
	return s
}

// WaitForExit serves until the server is shut down.
func (s *Server) WaitForExit() error {
	log.Infof("Snake spectator api listening on %s", s.hs.Addr)
	err := s.hs.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the server, waiting for open requests until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.hs.Shutdown(ctx)
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, s.session)
}

func (s *Server) lastFrame(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	f, err := s.store.LastFrame(r.Context())
	if err == controller.ErrNotFound {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) listFrames(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	after, err := queryInt(r, "after", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	limit, err := queryInt(r, "limit", 100)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	frames, err := s.store.ListFrames(r.Context(), after, int(limit))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, FramesResponse{Frames: frames})
}

func queryInt(r *http.Request, name string, def int64) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", name)
	}
	if v < 0 {
		return 0, errors.Errorf("invalid %s: must not be negative", name)
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("unable to write response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		log.WithError(err).Error("request failed")
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
