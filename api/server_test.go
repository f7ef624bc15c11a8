package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/gridsnake/engine/controller"
	"github.com/gridsnake/engine/rules"
	"github.com/stretchr/testify/require"
)

func frame(seq int64) *rules.Frame {
	return &rules.Frame{
		Seq:       seq,
		Round:     1,
		Turn:      seq - 1,
		Size:      5,
		Snake:     []rules.Cell{{Row: 2, Col: 2}},
		Apple:     rules.Cell{Row: 0, Col: 1},
		Direction: rules.Up,
		Event:     rules.EventMove,
	}
}

func createAPIServer(t *testing.T, frames int) (*Server, controller.Store) {
	store := controller.InMemStore(100)
	for i := 1; i <= frames; i++ {
		require.NoError(t, store.PushFrame(context.Background(), frame(int64(i))))
	}
	s := New(":1234", store, Session{
		ID:           "abc_123",
		Size:         5,
		TickInterval: 250 * time.Millisecond,
	})
	s.StreamRate = 1000
	return s, store
}

func serve(s *Server, method, target string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, target, nil)
	rr := httptest.NewRecorder()
	s.hs.Handler.ServeHTTP(rr, req)
	return rr
}

func TestSession(t *testing.T) {
	s, _ := createAPIServer(t, 0)

	rr := serve(s, "GET", "/session")
	require.Equal(t, http.StatusOK, rr.Code)

	body := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, "abc_123", body["id"])
	require.Equal(t, float64(5), body["size"])
	require.Equal(t, float64(250), body["tick_ms"])
}

func TestLastFrame(t *testing.T) {
	s, _ := createAPIServer(t, 3)

	rr := serve(s, "GET", "/frames/last")
	require.Equal(t, http.StatusOK, rr.Code)

	f := &rules.Frame{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), f))
	require.Equal(t, frame(3), f)
}

func TestLastFrameNotFound(t *testing.T) {
	s, _ := createAPIServer(t, 0)

	rr := serve(s, "GET", "/frames/last")
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Contains(t, rr.Body.String(), "frame not found")
}

func TestListFrames(t *testing.T) {
	s, _ := createAPIServer(t, 6)

	tests := []struct {
		Target   string
		Code     int
		Expected []int64
	}{
		{Target: "/frames", Code: http.StatusOK, Expected: []int64{1, 2, 3, 4, 5, 6}},
		{Target: "/frames?after=4", Code: http.StatusOK, Expected: []int64{5, 6}},
		{Target: "/frames?after=1&limit=2", Code: http.StatusOK, Expected: []int64{2, 3}},
		{Target: "/frames?after=9", Code: http.StatusOK, Expected: []int64{}},
		{Target: "/frames?after=abc", Code: http.StatusBadRequest},
		{Target: "/frames?limit=-1", Code: http.StatusBadRequest},
	}

	for _, test := range tests {
		rr := serve(s, "GET", test.Target)
		require.Equal(t, test.Code, rr.Code, test.Target)
		if test.Code != http.StatusOK {
			continue
		}

		resp := &FramesResponse{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), resp))
		seqs := []int64{}
		for _, f := range resp.Frames {
			seqs = append(seqs, f.Seq)
		}
		require.Equal(t, test.Expected, seqs, test.Target)
	}
}

func TestCORS(t *testing.T) {
	s, _ := createAPIServer(t, 1)

	req, _ := http.NewRequest("GET", "/frames/last", nil)
	req.Header.Set("Origin", "http://example.com")
	rr := httptest.NewRecorder()
	s.hs.Handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestFramesSocket(t *testing.T) {
	s, store := createAPIServer(t, 2)
	srv := httptest.NewServer(s.hs.Handler)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/socket"
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer c.Close()

	go func() {
		for i := int64(3); i <= 5; i++ {
			time.Sleep(5 * time.Millisecond)
			if err := store.PushFrame(context.Background(), frame(i)); err != nil {
				return
			}
		}
	}()

	require.NoError(t, c.SetReadDeadline(time.Now().Add(2*time.Second)))
	seqs := []int64{}
	for len(seqs) < 4 {
		mt, data, err := c.ReadMessage()
		require.NoError(t, err)
		require.Equal(t, websocket.TextMessage, mt)

		f := &rules.Frame{}
		require.NoError(t, json.Unmarshal(data, f))
		seqs = append(seqs, f.Seq)
	}
	// The stream starts at the latest frame.
	require.Equal(t, []int64{2, 3, 4, 5}, seqs)
}
