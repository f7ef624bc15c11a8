package commands

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/gridsnake/engine/api"
	"github.com/gridsnake/engine/rules"
	termbox "github.com/nsf/termbox-go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	addAPIAddrFlag(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "follows a game served with play --listen",
	RunE: func(*cobra.Command, []string) error {
		return watchGame()
	},
}

func moveFrameForwards(frameIndex int, frames *frameHolder) (int, *rules.Frame) {
	if frameIndex+1 >= frames.count() {
		return frameIndex, frames.get(frameIndex)
	}
	frameIndex++
	return frameIndex, frames.get(frameIndex)
}

func moveFrameBackwards(frameIndex int, frames *frameHolder) (int, *rules.Frame) {
	frameIndex--
	if frameIndex <= 0 {
		frameIndex = 0
	}
	return frameIndex, frames.get(frameIndex)
}

func socketURL(addr string) (string, error) {
	u, err := url.Parse(addr)
	if err != nil {
		return "", errors.Wrapf(err, "invalid api address %s", addr)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/socket"
	return u.String(), nil
}

func loadSession() (*api.Session, *frameHolder, error) {
	client := &http.Client{
		Timeout: 5 * time.Second,
	}
	session := &api.Session{}
	if err := getJSON(client, apiAddr+"/session", session); err != nil {
		return nil, nil, err
	}

	u, err := socketURL(apiAddr)
	if err != nil {
		return nil, nil, err
	}
	log.Debugf("connecting to %s", u)

	c, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		return nil, nil, errors.Wrap(err, "unable to dial spectator socket")
	}

	frames := &frameHolder{}
	go readFrames(c, frames)
	return session, frames, nil
}

func readFrames(c *websocket.Conn, frames *frameHolder) {
	defer func() {
		if err := c.Close(); err != nil {
			log.WithError(err).Debug("failure to close websocket connection")
		}
	}()

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				log.WithError(err).Debug("read")
			}
			return
		}

		switch mt {
		case websocket.TextMessage:
			frame := &rules.Frame{}
			if err := json.Unmarshal(message, frame); err != nil {
				log.WithError(err).Warn("unmarshal frame")
				return
			}
			frames.append(frame)
		default:
			log.Debugf("unhandled message type: %d", mt)
		}
	}
}

func watchGame() error {
	session, frames, err := loadSession()
	if err != nil {
		return err
	}

	var currentFrame *rules.Frame
	select {
	case currentFrame = <-frames.initialFrame():
	case <-time.After(5 * time.Second):
		return errors.New("no frames received from the spectator socket")
	}

	id := session.ID
	if len(id) > 8 {
		id = id[:8]
	}
	r, err := newTermRenderer("Watching " + id)
	if err != nil {
		return errors.Wrap(err, "unable to open terminal")
	}
	defer r.Close()
	r.SetStatus("space pause - arrows step - esc quit")

	interval := time.Duration(session.TickMS) * time.Millisecond
	if interval <= 0 {
		interval = tickInterval
	}
	cycle := time.NewTicker(interval)
	defer cycle.Stop()

	eventQueue := setupEventQueue()
	frameIndex := 0
	paused := false

	for {
		if err := r.Render(currentFrame); err != nil {
			return err
		}

		select {
		case ev := <-eventQueue:
			if isQuit(ev) {
				return nil
			}
			if ev.Type != termbox.EventKey {
				continue
			}
			switch ev.Key {
			case termbox.KeySpace:
				paused = !paused
			case termbox.KeyArrowLeft:
				paused = true
				frameIndex, currentFrame = moveFrameBackwards(frameIndex, frames)
			case termbox.KeyArrowRight:
				paused = true
				frameIndex, currentFrame = moveFrameForwards(frameIndex, frames)
			}
		case <-cycle.C:
			if paused {
				continue
			}
			frameIndex, currentFrame = moveFrameForwards(frameIndex, frames)
		}
	}
}
