package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const wsWriteTimeout = 5 * time.Second

// wsMsg is one frame of the optimization stream.
type wsMsg struct {
	Type string `json:"type"` // progress, result, error
	Data any    `json:"data"`
}

type progressData struct {
	Done  int `json:"done"`
	Total int `json:"total"`
}

// handleOptimizeWS runs an optimization and streams its progress.
// The client sends one optimizeRequest frame ({} for defaults), then receives
// progress frames followed by a single result or error frame.
// Closing the connection cancels the search.
func (s *Server) handleOptimizeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("ws: upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	var req optimizeRequest
	if err := conn.ReadJSON(&req); err != nil {
		slog.Debug("ws: reading optimize request", "err", err)
		s.writeWS(conn, wsMsg{Type: "error", Data: errorResponse{Error: "invalid optimize request: " + err.Error()}})
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Any further read error means the client went away.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	opt := s.optimizer(func(done, total int) {
		s.writeWS(conn, wsMsg{Type: "progress", Data: progressData{Done: done, Total: total}})
	})
	best, err := opt.Optimize(ctx, s.optimizeRequest(req))
	if err != nil {
		if ctx.Err() != nil {
			slog.Info("ws: optimization cancelled", "remote", r.RemoteAddr)
			return
		}
		s.writeWS(conn, wsMsg{Type: "error", Data: errorResponse{Error: err.Error()}})
		return
	}

	s.writeWS(conn, wsMsg{Type: "result", Data: newBuildResponse(best.Build, best.Result, best.Evaluated)})
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"),
		time.Now().Add(wsWriteTimeout))
}

func (s *Server) writeWS(conn *websocket.Conn, m wsMsg) {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := conn.WriteJSON(m); err != nil {
		slog.Debug("ws: write failed", "type", m.Type, "err", err)
	}
}
