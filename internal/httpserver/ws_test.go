package httpserver

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordsearch/internal/gesture"
)

func (h *harness) dial(c *http.Client, id string) *websocket.Conn {
	h.t.Helper()
	url := "ws" + strings.TrimPrefix(h.srv.URL, "http") + "/puzzles/" + id + "/ws"
	d := websocket.Dialer{Jar: c.Jar}
	conn, resp, err := d.Dial(url, nil)
	require.NoError(h.t, err)
	resp.Body.Close()
	h.t.Cleanup(func() { conn.Close() })
	return conn
}

func TestWebsocketStream(t *testing.T) {
	h := newHarness(t)
	res := h.start(h.client, 1)
	conn := h.dial(h.client, res.ID)

	require.NoError(t, conn.WriteJSON(map[string]any{
		"type":     "geometry",
		"geometry": gesture.Geometry{CellSize: cell},
	}))
	var out wsOut
	require.NoError(t, conn.ReadJSON(&out))
	assert.Equal(t, "geometry", out.Type)
	require.NotNil(t, out.Geometry)
	assert.Equal(t, 10, out.Geometry.Size)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	out = wsOut{}
	require.NoError(t, conn.ReadJSON(&out))
	assert.Equal(t, "error", out.Type)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "dance"}))
	out = wsOut{}
	require.NoError(t, conn.ReadJSON(&out))
	assert.Equal(t, "error", out.Type)

	pl := h.puzzle(1).Placements[0]
	var final wsOut
	for i, ev := range swipeEvents(pl) {
		require.NoError(t, conn.WriteJSON(map[string]any{"type": "event", "phase": ev.Phase, "x": ev.X, "y": ev.Y}))
		final = wsOut{}
		require.NoError(t, conn.ReadJSON(&final))
		require.Equal(t, "result", final.Type)
		require.NotNil(t, final.Result)
		if i == 0 {
			assert.Equal(t, gesture.DraggingUnlocked, final.Result.State)
			assert.NotNil(t, final.Result.Feedback)
		}
	}
	require.NotNil(t, final.Result.Found)
	assert.Equal(t, pl.Word, final.Result.Found.Word)
	assert.Equal(t, []string{pl.Word}, final.Found)

	// The HTTP view of the session reflects websocket input.
	var snap map[string]any
	require.Equal(t, http.StatusOK, h.call(h.client, http.MethodGet, "/puzzles/"+res.ID, nil, &snap))
	assert.Equal(t, []any{pl.Word}, snap["found"])
}

func TestWebsocketRejectsStrangers(t *testing.T) {
	h := newHarness(t)
	res := h.start(h.client, 0)

	url := "ws" + strings.TrimPrefix(h.srv.URL, "http") + "/puzzles/" + res.ID + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
