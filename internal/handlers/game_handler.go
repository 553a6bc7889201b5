package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/otterc137/GuessAnime/internal/game"
	"github.com/otterc137/GuessAnime/internal/service"
)

// GameHandler exposes the game session as a JSON API.
type GameHandler struct {
	games *service.GameService
}

// NewGameHandler creates a new game handler.
func NewGameHandler(games *service.GameService) *GameHandler {
	return &GameHandler{games: games}
}

// Start kicks off building a new game for the player.
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.games.Start(playerID(r))
	respondJSON(w, http.StatusAccepted, service.GameStatus{State: service.StateBuilding})
}

// Status reports build progress, or the failure that ended the build.
func (h *GameHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.games.Status(playerID(r))
	if err != nil {
		h.respondGameError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, status)
}

// State returns the player-visible snapshot of the current round.
func (h *GameHandler) State(w http.ResponseWriter, r *http.Request) {
	session, err := h.games.Session(playerID(r))
	if err != nil {
		h.respondGameError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session.Snapshot())
}

// Reveal uncovers one tile of the current round's image.
func (h *GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	session, err := h.games.Session(playerID(r))
	if err != nil {
		h.respondGameError(w, err)
		return
	}

	var req struct {
		Tile int `json:"tile"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	if err := session.RevealTile(req.Tile); err != nil {
		h.respondGameError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session.Snapshot())
}

// Guess submits a title guess for the current round.
func (h *GameHandler) Guess(w http.ResponseWriter, r *http.Request) {
	session, err := h.games.Session(playerID(r))
	if err != nil {
		h.respondGameError(w, err)
		return
	}

	var req struct {
		Guess string `json:"guess"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	outcome, err := session.SubmitGuess(req.Guess)
	if err != nil {
		h.respondGameError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Ignored      bool          `json:"ignored"`
		Correct      bool          `json:"correct"`
		Score        int           `json:"score"`
		WrongMessage string        `json:"wrongMessage,omitempty"`
		State        game.Snapshot `json:"state"`
	}{
		Ignored:      outcome.Ignored,
		Correct:      outcome.Correct,
		Score:        outcome.Score,
		WrongMessage: outcome.WrongMessage,
		State:        session.Snapshot(),
	})
}

// GiveUp forfeits the current round.
func (h *GameHandler) GiveUp(w http.ResponseWriter, r *http.Request) {
	session, err := h.games.Session(playerID(r))
	if err != nil {
		h.respondGameError(w, err)
		return
	}
	if err := session.GiveUp(); err != nil {
		h.respondGameError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session.Snapshot())
}

// Next advances to the next round, or finishes the game.
func (h *GameHandler) Next(w http.ResponseWriter, r *http.Request) {
	session, err := h.games.Session(playerID(r))
	if err != nil {
		h.respondGameError(w, err)
		return
	}
	if err := session.NextRound(); err != nil {
		if errors.Is(err, game.ErrFinished) {
			h.respondGameError(w, err)
			return
		}
		respondWithError(w, http.StatusConflict, "Round still in progress", "", nil)
		return
	}
	respondJSON(w, http.StatusOK, session.Snapshot())
}

// Results returns the final summary of a finished game.
func (h *GameHandler) Results(w http.ResponseWriter, r *http.Request) {
	session, err := h.games.Session(playerID(r))
	if err != nil {
		h.respondGameError(w, err)
		return
	}
	if !session.Finished() {
		respondWithError(w, http.StatusConflict, "Game is not finished yet", "", nil)
		return
	}
	respondJSON(w, http.StatusOK, session.Results())
}

func (h *GameHandler) respondGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNoGame):
		respondWithError(w, http.StatusNotFound, "No active game. Start one first.", "", nil)
	case errors.Is(err, service.ErrNotReady):
		respondWithError(w, http.StatusConflict, "Game is still loading", "", nil)
	case errors.Is(err, game.ErrFinished):
		respondWithError(w, http.StatusConflict, "Game is already finished", "", nil)
	default:
		respondWithError(w, http.StatusBadRequest, err.Error(), "game action failed", err)
	}
}
