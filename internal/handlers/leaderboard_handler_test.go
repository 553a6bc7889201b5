package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/otterc137/GuessAnime/internal/database"
	"github.com/otterc137/GuessAnime/internal/models"
	"github.com/otterc137/GuessAnime/internal/repository"
	"github.com/otterc137/GuessAnime/internal/security"
	"github.com/otterc137/GuessAnime/internal/service"
)

func setupLeaderboardHandler(t *testing.T) (*LeaderboardHandler, *service.LeaderboardService) {
	t.Helper()

	db, err := database.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	repo := repository.NewLeaderboardRepository(db)
	svc := service.NewLeaderboardService(repo, db, t.TempDir(), 1<<21)
	return NewLeaderboardHandler(svc), svc
}

func TestSubmitAndGetLeaderboard(t *testing.T) {
	h, _ := setupLeaderboardHandler(t)

	w := httptest.NewRecorder()
	body := `{"name":"Riko","score":7400,"correct":8}`
	h.Submit(w, httptest.NewRequest(http.MethodPost, "/api/leaderboard", strings.NewReader(body)))
	if w.Code != http.StatusCreated {
		t.Fatalf("submit returned %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	h.Get(w, httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("get returned %d", w.Code)
	}

	var entries []models.LeaderboardEntry
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatalf("bad leaderboard body: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "Riko" || entries[0].Score != 7400 {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestGetEmptyLeaderboardIsArray(t *testing.T) {
	h, _ := setupLeaderboardHandler(t)

	w := httptest.NewRecorder()
	h.Get(w, httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("get returned %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Errorf("empty leaderboard should encode as [], got %s", got)
	}
}

func TestSubmitRejectsBadBody(t *testing.T) {
	h, _ := setupLeaderboardHandler(t)

	w := httptest.NewRecorder()
	h.Submit(w, httptest.NewRequest(http.MethodPost, "/api/leaderboard", strings.NewReader("not json")))
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad body returned %d, expected 400", w.Code)
	}

	w = httptest.NewRecorder()
	h.Submit(w, httptest.NewRequest(http.MethodPost, "/api/leaderboard", strings.NewReader(`{"name":"x","score":-1}`)))
	if w.Code != http.StatusBadRequest {
		t.Errorf("negative score returned %d, expected 400", w.Code)
	}
}

func TestAdminLoginAndDelete(t *testing.T) {
	_, svc := setupLeaderboardHandler(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	admin := NewAdminHandler(svc, string(hash), "secret", security.IssueAdminToken)

	// Wrong password.
	w := httptest.NewRecorder()
	admin.Login(w, httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(`{"password":"wrong"}`)))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password returned %d, expected 401", w.Code)
	}

	// Right password sets the admin cookie.
	w = httptest.NewRecorder()
	admin.Login(w, httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(`{"password":"hunter2"}`)))
	if w.Code != http.StatusOK {
		t.Fatalf("login returned %d: %s", w.Code, w.Body.String())
	}
	var token string
	for _, c := range w.Result().Cookies() {
		if c.Name == adminCookieName {
			token = c.Value
		}
	}
	if token == "" {
		t.Fatal("admin cookie not set")
	}
	if err := security.VerifyAdminToken("secret", token); err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}

	// Delete an entry through the admin surface.
	id, err := svc.Submit("Troll", 9999, 10, "")
	if err != nil {
		t.Fatal(err)
	}
	r := httptest.NewRequest(http.MethodPost, "/admin/leaderboard/1/delete", nil)
	r.SetPathValue("id", strconv.FormatInt(id, 10))
	w = httptest.NewRecorder()
	admin.DeleteEntry(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("delete returned %d: %s", w.Code, w.Body.String())
	}

	entries, err := svc.All()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("entry not deleted: %+v", entries)
	}

	// Deleting again is a 404.
	r = httptest.NewRequest(http.MethodPost, "/admin/leaderboard/1/delete", nil)
	r.SetPathValue("id", strconv.FormatInt(id, 10))
	w = httptest.NewRecorder()
	admin.DeleteEntry(w, r)
	if w.Code != http.StatusNotFound {
		t.Errorf("double delete returned %d, expected 404", w.Code)
	}
}

func TestAdminLoginDisabledWithoutHash(t *testing.T) {
	_, svc := setupLeaderboardHandler(t)
	admin := NewAdminHandler(svc, "", "secret", security.IssueAdminToken)

	w := httptest.NewRecorder()
	admin.Login(w, httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(`{"password":"anything"}`)))
	if w.Code != http.StatusForbidden {
		t.Errorf("unconfigured admin login returned %d, expected 403", w.Code)
	}
}
