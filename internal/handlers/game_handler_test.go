package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/otterc137/GuessAnime/internal/catalog"
	"github.com/otterc137/GuessAnime/internal/game"
	"github.com/otterc137/GuessAnime/internal/service"
)

type stubSource struct{ imagesPerEntry int }

func (s stubSource) AllImages(_ context.Context, malID int) []string {
	urls := make([]string, s.imagesPerEntry)
	for i := range urls {
		urls[i] = fmt.Sprintf("https://cdn.example/%d/%d.jpg", malID, i)
	}
	return urls
}

func testCatalog(n int) []catalog.Entry {
	entries := make([]catalog.Entry, n)
	for i := range entries {
		entries[i] = catalog.Entry{
			MALID:  1000 + i,
			Title:  fmt.Sprintf("Show %d", i),
			Accept: []string{fmt.Sprintf("show %d", i)},
		}
	}
	return entries
}

func newTestGameHandler() *GameHandler {
	builder := &game.Builder{Source: stubSource{imagesPerEntry: 3}, BatchSize: 2}
	return NewGameHandler(service.NewGameService(builder, testCatalog(13), time.Hour))
}

func playerRequest(method, path, body, player string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	return r.WithContext(context.WithValue(r.Context(), PlayerContextKey, player))
}

func waitReady(t *testing.T, h *GameHandler, player string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		w := httptest.NewRecorder()
		h.Status(w, playerRequest(http.MethodGet, "/api/game/status", "", player))
		if w.Code != http.StatusOK {
			t.Fatalf("status returned %d: %s", w.Code, w.Body.String())
		}
		var status service.GameStatus
		if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
			t.Fatalf("bad status body: %v", err)
		}
		if status.State == service.StateReady {
			return
		}
		if status.State == service.StateFailed {
			t.Fatalf("build failed: %+v", status)
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("game never became ready")
}

func TestGameFlowOverHTTP(t *testing.T) {
	h := newTestGameHandler()
	const player = "11111111-1111-1111-1111-111111111111"

	w := httptest.NewRecorder()
	h.Start(w, playerRequest(http.MethodPost, "/api/game/start", "", player))
	if w.Code != http.StatusAccepted {
		t.Fatalf("start returned %d", w.Code)
	}
	waitReady(t, h, player)

	// Fetch the state to learn the round's image, then reveal a tile.
	w = httptest.NewRecorder()
	h.State(w, playerRequest(http.MethodGet, "/api/game/state", "", player))
	if w.Code != http.StatusOK {
		t.Fatalf("state returned %d: %s", w.Code, w.Body.String())
	}
	var snap game.Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("bad state body: %v", err)
	}
	if snap.Image == "" || snap.RoundCount != game.NumRounds {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}

	w = httptest.NewRecorder()
	h.Reveal(w, playerRequest(http.MethodPost, "/api/game/reveal", `{"tile":5}`, player))
	if w.Code != http.StatusOK {
		t.Fatalf("reveal returned %d: %s", w.Code, w.Body.String())
	}

	// A wrong guess keeps the round running and returns a flavor line.
	w = httptest.NewRecorder()
	h.Guess(w, playerRequest(http.MethodPost, "/api/game/guess", `{"guess":"definitely wrong"}`, player))
	if w.Code != http.StatusOK {
		t.Fatalf("guess returned %d: %s", w.Code, w.Body.String())
	}
	var guessResp struct {
		Correct      bool          `json:"correct"`
		WrongMessage string        `json:"wrongMessage"`
		State        game.Snapshot `json:"state"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &guessResp); err != nil {
		t.Fatalf("bad guess body: %v", err)
	}
	if guessResp.Correct {
		t.Error("wrong guess reported as correct")
	}
	if guessResp.WrongMessage == "" {
		t.Error("expected a wrong-guess message")
	}
	if guessResp.State.RoundOver {
		t.Error("wrong guess should not end the round")
	}

	// Give up, then advance.
	w = httptest.NewRecorder()
	h.GiveUp(w, playerRequest(http.MethodPost, "/api/game/giveup", "", player))
	if w.Code != http.StatusOK {
		t.Fatalf("giveup returned %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("bad giveup body: %v", err)
	}
	if !snap.RoundOver || snap.Result == nil || !snap.Result.GaveUp {
		t.Fatalf("giveup snapshot wrong: %+v", snap)
	}
	if snap.Result.Answer == "" {
		t.Error("answer should be revealed once the round ends")
	}

	w = httptest.NewRecorder()
	h.Next(w, playerRequest(http.MethodPost, "/api/game/next", "", player))
	if w.Code != http.StatusOK {
		t.Fatalf("next returned %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("bad next body: %v", err)
	}
	if snap.RoundIndex != 1 || snap.RoundOver {
		t.Fatalf("expected fresh round 1, got %+v", snap)
	}
}

func TestGameEndpointsWithoutGame(t *testing.T) {
	h := newTestGameHandler()
	const player = "22222222-2222-2222-2222-222222222222"

	w := httptest.NewRecorder()
	h.State(w, playerRequest(http.MethodGet, "/api/game/state", "", player))
	if w.Code != http.StatusNotFound {
		t.Errorf("state without game returned %d, expected 404", w.Code)
	}

	w = httptest.NewRecorder()
	h.Status(w, playerRequest(http.MethodGet, "/api/game/status", "", player))
	if w.Code != http.StatusNotFound {
		t.Errorf("status without game returned %d, expected 404", w.Code)
	}
}

func TestResultsBeforeFinish(t *testing.T) {
	h := newTestGameHandler()
	const player = "33333333-3333-3333-3333-333333333333"

	w := httptest.NewRecorder()
	h.Start(w, playerRequest(http.MethodPost, "/api/game/start", "", player))
	waitReady(t, h, player)

	w = httptest.NewRecorder()
	h.Results(w, playerRequest(http.MethodGet, "/api/game/results", "", player))
	if w.Code != http.StatusConflict {
		t.Errorf("results before finish returned %d, expected 409", w.Code)
	}
}

func TestNextWhileRoundRunning(t *testing.T) {
	h := newTestGameHandler()
	const player = "44444444-4444-4444-4444-444444444444"

	w := httptest.NewRecorder()
	h.Start(w, playerRequest(http.MethodPost, "/api/game/start", "", player))
	waitReady(t, h, player)

	w = httptest.NewRecorder()
	h.Next(w, playerRequest(http.MethodPost, "/api/game/next", "", player))
	if w.Code != http.StatusConflict {
		t.Errorf("next during round returned %d, expected 409", w.Code)
	}
}

func TestRevealRejectsBadTile(t *testing.T) {
	h := newTestGameHandler()
	const player = "55555555-5555-5555-5555-555555555555"

	w := httptest.NewRecorder()
	h.Start(w, playerRequest(http.MethodPost, "/api/game/start", "", player))
	waitReady(t, h, player)

	w = httptest.NewRecorder()
	h.Reveal(w, playerRequest(http.MethodPost, "/api/game/reveal", `{"tile":99}`, player))
	if w.Code != http.StatusBadRequest {
		t.Errorf("out-of-range tile returned %d, expected 400", w.Code)
	}
}
