// internal/httpserver/ws.go
//
// GET /puzzles/{id}/ws streams pointer events over a websocket so a client
// can get per-event feedback without a request per move.
//
// Client → server (JSON text frames):
//
//	{"type":"event","phase":"down","x":12,"y":40}
//	{"type":"geometry","geometry":{"origin":{"x":0,"y":0},"cellSize":40}}
//
// Server → client: one frame per inbound frame, "result", "geometry" or
// "error". The connection is kept alive with pings.
package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/game"
	"github.com/robalobadob/wordsearch/internal/gesture"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxWSFrame = 4096
)

type wsIn struct {
	Type string `json:"type"`
	gesture.Event
	Geometry *gesture.Geometry `json:"geometry,omitempty"`
}

type wsOut struct {
	Type      string            `json:"type"`
	Result    *gesture.Result   `json:"result,omitempty"`
	Geometry  *gesture.Geometry `json:"geometry,omitempty"`
	Found     []string          `json:"found,omitempty"`
	ElapsedMs int64             `json:"elapsedMs,omitempty"`
	Error     string            `json:"error,omitempty"`
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go keepAlive(ctx, conn)

	conn.SetReadLimit(maxWSFrame)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	log.Debug().Str("session", sess.ID).Msg("websocket attached")
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("session", sess.ID).Msg("websocket read")
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		out := wsOut{Type: "error", Error: "bad_json"}
		var in wsIn
		if err := json.Unmarshal(data, &in); err == nil {
			out = s.applyWS(ctx, sess, in)
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(out); err != nil {
			log.Warn().Err(err).Str("session", sess.ID).Msg("websocket write")
			return
		}
	}
}

func (s *Server) applyWS(ctx context.Context, sess *game.Session, in wsIn) wsOut {
	switch in.Type {
	case "event", "":
		res, done := sess.Handle(in.Event)
		if done {
			s.recordCompletion(ctx, sess)
		}
		return wsOut{
			Type:      "result",
			Result:    &res,
			Found:     sess.Found(),
			ElapsedMs: sess.Elapsed().Milliseconds(),
		}
	case "geometry":
		if in.Geometry == nil || in.Geometry.CellSize <= 0 {
			return wsOut{Type: "error", Error: "cellSize must be positive"}
		}
		sess.SetGeometry(*in.Geometry)
		g := sess.Geometry()
		return wsOut{Type: "geometry", Geometry: &g}
	}
	return wsOut{Type: "error", Error: "unknown message type " + in.Type}
}

// keepAlive pings until ctx ends. WriteControl may run concurrently with
// the handler's writes.
func keepAlive(ctx context.Context, conn *websocket.Conn) {
	t := time.NewTicker(pingPeriod)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
