package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/otterc137/GuessAnime/internal/service"
)

const adminSessionTTL = 12 * time.Hour

// AdminHandler provides password-gated leaderboard moderation.
type AdminHandler struct {
	leaderboard  *service.LeaderboardService
	passwordHash string
	tokenSecret  string
	issueToken   func(secret string, ttl time.Duration) (string, error)
}

// NewAdminHandler creates a new admin handler. passwordHash is a bcrypt
// hash of the admin password; an empty hash disables login entirely.
func NewAdminHandler(leaderboard *service.LeaderboardService, passwordHash, tokenSecret string,
	issueToken func(secret string, ttl time.Duration) (string, error)) *AdminHandler {
	return &AdminHandler{
		leaderboard:  leaderboard,
		passwordHash: passwordHash,
		tokenSecret:  tokenSecret,
		issueToken:   issueToken,
	}
}

// Login checks the admin password and sets the admin token cookie.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.passwordHash == "" {
		respondWithError(w, http.StatusForbidden, "Admin access is not configured", "", nil)
		return
	}

	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.passwordHash), []byte(req.Password)); err != nil {
		respondWithError(w, http.StatusUnauthorized, "Invalid password", "", nil)
		return
	}

	token, err := h.issueToken(h.tokenSecret, adminSessionTTL)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create session", "admin token issue failed", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     adminCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(adminSessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Leaderboard lists every entry for moderation.
func (h *AdminHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.leaderboard.All()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load leaderboard", "admin leaderboard query failed", err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

// DeleteEntry removes a leaderboard entry.
func (h *AdminHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid entry ID", "", err)
		return
	}

	if err := h.leaderboard.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondWithError(w, http.StatusNotFound, "Entry not found", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to delete entry", "admin delete failed", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
