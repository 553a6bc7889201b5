package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/otterc137/GuessAnime/internal/security"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

// PlayerContextKey holds the player's UUID for the request.
const PlayerContextKey ContextKey = "player"

const (
	playerCookieName = "player_id"
	adminCookieName  = "admin_token"
)

// Middleware holds dependencies for middleware functions.
type Middleware struct {
	limiter          *security.RateLimiter
	adminTokenSecret string
}

// NewMiddleware creates a new middleware instance.
func NewMiddleware(limiter *security.RateLimiter, adminTokenSecret string) *Middleware {
	return &Middleware{
		limiter:          limiter,
		adminTokenSecret: adminTokenSecret,
	}
}

// WithPlayer ensures the request carries a player_id cookie, minting one
// on first touch, and stores the ID in the request context.
func (m *Middleware) WithPlayer(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var playerID string
		if cookie, err := r.Cookie(playerCookieName); err == nil {
			if _, err := uuid.Parse(cookie.Value); err == nil {
				playerID = cookie.Value
			}
		}
		if playerID == "" {
			playerID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     playerCookieName,
				Value:    playerID,
				Path:     "/",
				MaxAge:   int((365 * 24 * time.Hour).Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), PlayerContextKey, playerID)
		next(w, r.WithContext(ctx))
	}
}

// playerID extracts the player's UUID from the request context.
func playerID(r *http.Request) string {
	id, _ := r.Context().Value(PlayerContextKey).(string)
	return id
}

// RateLimit rejects requests over the per-IP budget.
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.limiter.Allow(security.ClientIP(r)) {
			respondWithError(w, http.StatusTooManyRequests, "Too many requests. Please slow down.", "", nil)
			return
		}
		next(w, r)
	}
}

// RequireAdmin gates a handler behind a valid admin token cookie.
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(adminCookieName)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "Admin login required", "", nil)
			return
		}
		if err := security.VerifyAdminToken(m.adminTokenSecret, cookie.Value); err != nil {
			http.SetCookie(w, &http.Cookie{
				Name:     adminCookieName,
				Value:    "",
				Path:     "/",
				MaxAge:   -1,
				HttpOnly: true,
			})
			respondWithError(w, http.StatusUnauthorized, "Admin login required", "invalid admin token", err)
			return
		}
		next(w, r)
	}
}

// Logging records method, path, and duration for every request.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
