package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsWriteWait      = 10 * time.Second
	wsReadLimitBytes = 64 * 1024
)

// wsEvent is one message on the progress stream. Stage names arrive
// in pipeline order; "done" carries the result and "error" carries a
// message.
type wsEvent struct {
	Stage  string             `json:"stage"`
	Result *HoroscopeResponse `json:"result,omitempty"`
	Error  string             `json:"error,omitempty"`
}

// HandleHoroscopeWS runs the pipeline over a WebSocket, streaming
// stage events so the UI can show progress during the slow LLM call.
func (s *Server) HandleHoroscopeWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || s.originAllowed(origin)
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warnw("WebSocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(wsReadLimitBytes)

	var req HoroscopeRequest
	if err := conn.ReadJSON(&req); err != nil {
		s.logger.Warnw("Failed to read WebSocket request", "error", err)
		return
	}

	send := func(ev wsEvent) bool {
		conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(ev); err != nil {
			s.logger.Warnw("Failed to write WebSocket event", "error", err, "stage", ev.Stage)
			return false
		}
		return true
	}

	s.wg.Add(1)
	defer s.wg.Done()

	resp, err := s.runPipeline(r.Context(), req, func(stage string) {
		send(wsEvent{Stage: stage})
	})
	if err != nil {
		send(wsEvent{Stage: "error", Error: err.Error()})
		return
	}

	send(wsEvent{Stage: "done", Result: resp})
}
