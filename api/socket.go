package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

const socketBatch = 50

// framesSocket streams every frame published after the connection opens,
// starting with the latest one. Polling the store is throttled per
// connection.
func (s *Server) framesSocket(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Error("unable to upgrade connection")
		return
	}
	defer func() {
		if err := ws.Close(); err != nil {
			log.WithError(err).Debug("unable to close websocket stream")
		}
	}()

	ctx := r.Context()
	closed := make(chan struct{})
	go func() {
		// Drain client messages so close frames are processed.
		defer close(closed)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	limiter := rate.NewLimiter(s.StreamRate, s.StreamBurst)

	var after int64
	if last, err := s.store.LastFrame(ctx); err == nil {
		after = last.Seq - 1
	}

	for {
		select {
		case <-closed:
			return
		case <-ctx.Done():
			return
		default:
		}

		if err := limiter.Wait(ctx); err != nil {
			return
		}

		frames, err := s.store.ListFrames(ctx, after, socketBatch)
		if err != nil {
			log.WithError(err).Error("unable to list frames for socket")
			return
		}
		for _, f := range frames {
			data, err := json.Marshal(f)
			if err != nil {
				log.WithError(errors.Wrap(err, "marshal frame")).Error("unable to stream frame")
				return
			}
			if err := ws.WriteMessage(websocket.TextMessage, data); err != nil {
				log.WithError(err).Debug("spectator went away")
				return
			}
			after = f.Seq
		}
	}
}
