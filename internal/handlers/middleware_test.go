package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/otterc137/GuessAnime/internal/security"
)

func TestWithPlayerMintsCookie(t *testing.T) {
	m := NewMiddleware(security.NewRateLimiter(100, time.Minute), "secret")

	var seen string
	handler := m.WithPlayer(func(w http.ResponseWriter, r *http.Request) {
		seen = playerID(r)
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("expected a UUID player ID, got %q", seen)
	}

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == playerCookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("player_id cookie not set")
	}
	if cookie.Value != seen {
		t.Errorf("cookie %q does not match context player %q", cookie.Value, seen)
	}
}

func TestWithPlayerKeepsExistingCookie(t *testing.T) {
	m := NewMiddleware(security.NewRateLimiter(100, time.Minute), "secret")
	existing := uuid.NewString()

	var seen string
	handler := m.WithPlayer(func(w http.ResponseWriter, r *http.Request) {
		seen = playerID(r)
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: playerCookieName, Value: existing})
	w := httptest.NewRecorder()
	handler(w, r)

	if seen != existing {
		t.Errorf("expected existing player ID %q, got %q", existing, seen)
	}
	if len(w.Result().Cookies()) != 0 {
		t.Error("no new cookie should be set when a valid one exists")
	}
}

func TestWithPlayerReplacesInvalidCookie(t *testing.T) {
	m := NewMiddleware(security.NewRateLimiter(100, time.Minute), "secret")

	var seen string
	handler := m.WithPlayer(func(w http.ResponseWriter, r *http.Request) {
		seen = playerID(r)
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: playerCookieName, Value: "not-a-uuid"})
	w := httptest.NewRecorder()
	handler(w, r)

	if seen == "not-a-uuid" {
		t.Error("invalid player ID should be replaced")
	}
	if _, err := uuid.Parse(seen); err != nil {
		t.Errorf("expected a fresh UUID, got %q", seen)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	m := NewMiddleware(security.NewRateLimiter(2, time.Minute), "secret")

	calls := 0
	handler := m.RateLimit(func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	for i := 0; i < 3; i++ {
		r := httptest.NewRequest(http.MethodPost, "/api/leaderboard", nil)
		r.RemoteAddr = "10.0.0.1:1234"
		handler(httptest.NewRecorder(), r)
	}

	if calls != 2 {
		t.Errorf("expected 2 requests through, got %d", calls)
	}
}

func TestRequireAdmin(t *testing.T) {
	m := NewMiddleware(security.NewRateLimiter(100, time.Minute), "secret")

	handler := m.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// No cookie.
	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/admin/leaderboard", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("missing cookie returned %d, expected 401", w.Code)
	}

	// Bad token.
	r := httptest.NewRequest(http.MethodGet, "/admin/leaderboard", nil)
	r.AddCookie(&http.Cookie{Name: adminCookieName, Value: "garbage"})
	w = httptest.NewRecorder()
	handler(w, r)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad token returned %d, expected 401", w.Code)
	}

	// Valid token.
	token, err := security.IssueAdminToken("secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	r = httptest.NewRequest(http.MethodGet, "/admin/leaderboard", nil)
	r.AddCookie(&http.Cookie{Name: adminCookieName, Value: token})
	w = httptest.NewRecorder()
	handler(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("valid token returned %d, expected 200", w.Code)
	}
}
