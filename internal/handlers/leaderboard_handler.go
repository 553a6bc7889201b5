package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/otterc137/GuessAnime/internal/models"
	"github.com/otterc137/GuessAnime/internal/service"
)

// LeaderboardHandler exposes the weekly leaderboard.
type LeaderboardHandler struct {
	leaderboard *service.LeaderboardService
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(leaderboard *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboard: leaderboard}
}

// Get returns this week's top entries.
func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	entries, err := h.leaderboard.Top()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load leaderboard", "leaderboard query failed", err)
		return
	}
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}
	respondJSON(w, http.StatusOK, entries)
}

// Submit records a finished game on the leaderboard.
func (h *LeaderboardHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Score   int    `json:"score"`
		Correct int    `json:"correct"`
		Avatar  string `json:"avatar,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	id, err := h.leaderboard.Submit(req.Name, req.Score, req.Correct, req.Avatar)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid submission", "leaderboard submit failed", err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]int64{"id": id})
}
