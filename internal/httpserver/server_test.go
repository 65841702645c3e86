package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordsearch/internal/config"
	"github.com/robalobadob/wordsearch/internal/daily"
	"github.com/robalobadob/wordsearch/internal/db"
	"github.com/robalobadob/wordsearch/internal/gesture"
	"github.com/robalobadob/wordsearch/internal/grid"
	"github.com/robalobadob/wordsearch/internal/store"
	"github.com/robalobadob/wordsearch/internal/words"
)

const (
	testPack = "2026-10-19"
	cell     = 40.0
)

type harness struct {
	t      *testing.T
	srv    *httptest.Server
	clock  *quartz.Mock
	cache  *daily.Cache
	client *http.Client
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	conn, err := db.Open(db.Memory)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, db.Migrate(context.Background(), conn))

	bank, err := words.Load("")
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Auth.JWTSecret = "test-secret"
	p := cfg.Puzzle
	cache := daily.NewCache(bank, daily.Settings{
		GridSize:       p.GridSize,
		WordsPerPuzzle: p.WordsPerPuzzle,
		PuzzlesPerPack: p.PuzzlesPerPack,
	}, 0)

	clock := quartz.NewMock(t)
	s := New(Deps{
		Config:   cfg,
		DB:       conn,
		Sessions: store.NewMemoryStore(),
		Puzzles:  cache,
		Clock:    clock,
	})
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	h := &harness{t: t, srv: srv, clock: clock, cache: cache}
	h.client = h.newClient()
	return h
}

func (h *harness) newClient() *http.Client {
	jar, err := cookiejar.New(nil)
	require.NoError(h.t, err)
	return &http.Client{Jar: jar}
}

// call sends body as JSON and decodes the reply into out when non-nil.
func (h *harness) call(c *http.Client, method, path string, body, out any) int {
	h.t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(h.t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, h.srv.URL+path, rd)
	require.NoError(h.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.Do(req)
	require.NoError(h.t, err)
	defer resp.Body.Close()
	assert.Contains(h.t, resp.Header.Get("Content-Type"), "application/json")
	if out != nil {
		require.NoError(h.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type created struct {
	ID     string   `json:"id"`
	PackID string   `json:"packId"`
	Index  int      `json:"index"`
	Size   int      `json:"size"`
	Words  []string `json:"words"`
	Grid   []string `json:"grid"`
	Played bool     `json:"played"`
}

func (h *harness) start(c *http.Client, index int) created {
	h.t.Helper()
	var res created
	code := h.call(c, http.MethodPost, "/puzzles", map[string]any{"date": testPack, "index": index}, &res)
	require.Equal(h.t, http.StatusCreated, code)
	require.NotEmpty(h.t, res.ID)
	return res
}

// swipeEvents drags from the first to the last cell of p.
func swipeEvents(p grid.Placement) []gesture.Event {
	geom := gesture.Geometry{CellSize: cell}
	from, to := geom.Center(p.Start), geom.Center(p.End())
	return []gesture.Event{
		gesture.DownAt(from.X, from.Y),
		gesture.MoveTo(to.X, to.Y),
		gesture.UpAt(to.X, to.Y),
	}
}

func (h *harness) puzzle(index int) *daily.Puzzle {
	p, err := h.cache.Puzzle(testPack, index)
	require.NoError(h.t, err)
	return p
}

func TestHealthAndRoot(t *testing.T) {
	h := newHarness(t)
	var health map[string]bool
	assert.Equal(t, http.StatusOK, h.call(h.client, http.MethodGet, "/health", nil, &health))
	assert.True(t, health["ok"])

	var root map[string]any
	assert.Equal(t, http.StatusOK, h.call(h.client, http.MethodGet, "/", nil, &root))
	assert.Equal(t, "wordsearch", root["service"])
	assert.EqualValues(t, 174, root["words"])

	var nf map[string]string
	assert.Equal(t, http.StatusNotFound, h.call(h.client, http.MethodGet, "/nope", nil, &nf))
	assert.Equal(t, "not_found", nf["error"])
}

func TestCORSPreflight(t *testing.T) {
	h := newHarness(t)
	req, err := http.NewRequest(http.MethodOptions, h.srv.URL+"/puzzles", nil)
	require.NoError(t, err)
	resp, err := h.client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestNewPuzzleMatchesDailyDerivation(t *testing.T) {
	h := newHarness(t)
	res := h.start(h.client, 0)
	p := h.puzzle(0)
	assert.Equal(t, testPack, res.PackID)
	assert.Equal(t, 10, res.Size)
	assert.Equal(t, p.Words, res.Words)
	assert.Equal(t, p.Grid.Rows(), res.Grid)

	// The default date is today on the server clock.
	var today created
	require.Equal(t, http.StatusCreated, h.call(h.client, http.MethodPost, "/puzzles", map[string]any{"index": 1}, &today))
	assert.Equal(t, daily.PackID(h.clock.Now()), today.PackID)
}

func TestNewPuzzleValidation(t *testing.T) {
	h := newHarness(t)
	var e map[string]string
	assert.Equal(t, http.StatusBadRequest, h.call(h.client, http.MethodPost, "/puzzles", map[string]any{"date": "19-10-2026"}, &e))
	assert.Equal(t, http.StatusBadRequest, h.call(h.client, http.MethodPost, "/puzzles", map[string]any{"date": testPack, "index": 3}, &e))
	assert.Equal(t, daily.ErrBadIndex.Error(), e["error"])
}

type eventsReply struct {
	Results []struct {
		State string         `json:"state"`
		Found *gesture.Match `json:"found"`
	} `json:"results"`
	Found     []string `json:"found"`
	Complete  bool     `json:"complete"`
	ElapsedMs int64    `json:"elapsedMs"`
}

func TestSolvePuzzleOverHTTP(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	res := h.start(h.client, 0)
	base := "/puzzles/" + res.ID

	var geom gesture.Geometry
	require.Equal(t, http.StatusOK, h.call(h.client, http.MethodPost, base+"/geometry", gesture.Geometry{CellSize: cell}, &geom))
	assert.Equal(t, 10, geom.Size)

	// A swipe that goes nowhere matches nothing.
	var miss eventsReply
	require.Equal(t, http.StatusOK, h.call(h.client, http.MethodPost, base+"/events", map[string]any{
		"events": []map[string]any{
			{"phase": "pointerdown", "x": 20, "y": 20},
			{"phase": "pointerup", "x": 22, "y": 21},
		},
	}, &miss))
	require.Len(t, miss.Results, 2)
	assert.Nil(t, miss.Results[1].Found)
	assert.Empty(t, miss.Found)

	h.clock.Advance(42 * time.Second).MustWait(ctx)

	p := h.puzzle(0)
	var last eventsReply
	for i, pl := range p.Placements {
		require.Equal(t, http.StatusOK, h.call(h.client, http.MethodPost, base+"/events",
			map[string]any{"events": swipeEvents(pl)}, &last))
		require.NotNil(t, last.Results[2].Found, pl.Word)
		assert.Equal(t, pl.Word, last.Results[2].Found.Word)
		assert.Equal(t, i == len(p.Placements)-1, last.Complete)
	}
	assert.ElementsMatch(t, p.Words, last.Found)
	assert.Equal(t, int64(42000), last.ElapsedMs)

	var snap map[string]any
	require.Equal(t, http.StatusOK, h.call(h.client, http.MethodGet, base, nil, &snap))
	assert.Equal(t, "complete", snap["status"])

	var lb struct {
		Top []daily.LBRow `json:"top"`
	}
	require.Equal(t, http.StatusOK, h.call(h.client, http.MethodGet, "/daily/leaderboard?date="+testPack+"&index=0", nil, &lb))
	require.Len(t, lb.Top, 1)
	assert.Equal(t, int64(42000), lb.Top[0].ElapsedMs)
	assert.Equal(t, len(p.Words), lb.Top[0].Found)

	// Completed puzzles are not offered again.
	var again created
	require.Equal(t, http.StatusOK, h.call(h.client, http.MethodPost, "/puzzles", map[string]any{"date": testPack, "index": 0}, &again))
	assert.True(t, again.Played)
	assert.Empty(t, again.ID)

	var pack packRes
	require.Equal(t, http.StatusOK, h.call(h.client, http.MethodGet, "/daily/pack?date="+testPack, nil, &pack))
	require.Len(t, pack.Puzzles, 3)
	assert.True(t, pack.Puzzles[0].Completed)
	assert.False(t, pack.Puzzles[1].Completed)
}

func TestSessionsArePrivate(t *testing.T) {
	h := newHarness(t)
	res := h.start(h.client, 0)

	stranger := h.newClient()
	var e map[string]string
	assert.Equal(t, http.StatusNotFound, h.call(stranger, http.MethodGet, "/puzzles/"+res.ID, nil, &e))
	assert.Equal(t, http.StatusNotFound, h.call(h.client, http.MethodGet, "/puzzles/unknown", nil, &e))
}

func TestPauseResume(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	res := h.start(h.client, 0)
	base := "/puzzles/" + res.ID

	h.clock.Advance(time.Second).MustWait(ctx)
	var snap map[string]any
	require.Equal(t, http.StatusOK, h.call(h.client, http.MethodPost, base+"/pause", nil, &snap))
	assert.Equal(t, "paused", snap["status"])
	h.clock.Advance(time.Minute).MustWait(ctx)
	require.Equal(t, http.StatusOK, h.call(h.client, http.MethodPost, base+"/resume", nil, &snap))
	assert.Equal(t, "playing", snap["status"])
	assert.Equal(t, float64(1000), snap["elapsedMs"])
}

func TestGeometryValidation(t *testing.T) {
	h := newHarness(t)
	res := h.start(h.client, 0)
	var e map[string]string
	assert.Equal(t, http.StatusBadRequest, h.call(h.client, http.MethodPost, "/puzzles/"+res.ID+"/geometry", gesture.Geometry{}, &e))
}

func TestRate(t *testing.T) {
	h := newHarness(t)
	var e map[string]string
	assert.Equal(t, http.StatusBadRequest, h.call(h.client, http.MethodPost, "/daily/rate", rateReq{Date: testPack, Stars: 6}, &e))
	assert.Equal(t, http.StatusBadRequest, h.call(h.client, http.MethodPost, "/daily/rate", rateReq{Date: testPack, Index: 9, Stars: 3}, &e))

	var sum daily.RatingSummary
	require.Equal(t, http.StatusOK, h.call(h.client, http.MethodPost, "/daily/rate", rateReq{Date: testPack, Stars: 4}, &sum))
	assert.Equal(t, daily.RatingSummary{Average: 4, Count: 1}, sum)

	other := h.newClient()
	require.Equal(t, http.StatusOK, h.call(other, http.MethodPost, "/daily/rate", rateReq{Date: testPack, Stars: 2}, &sum))
	assert.Equal(t, daily.RatingSummary{Average: 3, Count: 2}, sum)
}

func TestLeaderboardValidation(t *testing.T) {
	h := newHarness(t)
	var e map[string]string
	assert.Equal(t, http.StatusBadRequest, h.call(h.client, http.MethodGet, "/daily/leaderboard?index=x", nil, &e))
	assert.Equal(t, http.StatusBadRequest, h.call(h.client, http.MethodGet, "/daily/leaderboard?date=bad", nil, &e))

	var lb lbRes
	require.Equal(t, http.StatusOK, h.call(h.client, http.MethodGet, "/daily/leaderboard?date="+testPack, nil, &lb))
	assert.Empty(t, lb.Top)
}
