package service

import (
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/otterc137/GuessAnime/internal/database"
	"github.com/otterc137/GuessAnime/internal/models"
	"github.com/otterc137/GuessAnime/internal/repository"
)

const (
	maxNameLength = 32
	topEntryLimit = 10
	fallbackName  = "Anonymous"
	avatarsSubdir = "avatars"
)

// LeaderboardService handles leaderboard submissions and queries.
type LeaderboardService struct {
	repo          *repository.LeaderboardRepository
	db            *database.DB
	staticPath    string
	avatarMaxSize int64
}

// NewLeaderboardService creates a new leaderboard service.
func NewLeaderboardService(repo *repository.LeaderboardRepository, db *database.DB, staticPath string, avatarMaxSize int64) *LeaderboardService {
	return &LeaderboardService{
		repo:          repo,
		db:            db,
		staticPath:    staticPath,
		avatarMaxSize: avatarMaxSize,
	}
}

// Submit validates and stores a game result. Names that are empty, too
// long, or contain filtered words are replaced with a fallback rather
// than rejected, so a finished game always lands on the board.
func (s *LeaderboardService) Submit(name string, score, correct int, avatarData string) (int64, error) {
	if score < 0 || correct < 0 {
		return 0, fmt.Errorf("invalid submission: score=%d correct=%d", score, correct)
	}

	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxNameLength {
		name = fallbackName
	}
	ok, err := s.db.ContainsBadWord(name)
	if err != nil {
		log.Printf("Bad word check failed, allowing name: %v", err)
	} else if ok {
		name = fallbackName
	}

	var avatarURL *string
	if avatarData != "" {
		url, err := s.saveAvatar(avatarData)
		if err != nil {
			// A broken avatar should not block the score.
			log.Printf("Failed to save avatar: %v", err)
		} else {
			avatarURL = &url
		}
	}

	return s.repo.Insert(name, score, correct, avatarURL)
}

// Top returns this week's best entries, highest score first.
func (s *LeaderboardService) Top() ([]models.LeaderboardEntry, error) {
	return s.repo.TopSince(WeekStart(time.Now().UTC()), topEntryLimit)
}

// Delete removes a leaderboard entry. Used by admin moderation.
func (s *LeaderboardService) Delete(id int64) error {
	return s.repo.Delete(id)
}

// All returns every stored entry.
func (s *LeaderboardService) All() ([]models.LeaderboardEntry, error) {
	return s.repo.All()
}

// WeekStart returns the most recent Monday at 00:00 UTC, the boundary
// the weekly leaderboard resets on.
func WeekStart(now time.Time) time.Time {
	now = now.UTC()
	daysSinceMonday := (int(now.Weekday()) + 6) % 7
	monday := now.AddDate(0, 0, -daysSinceMonday)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
}

// saveAvatar decodes a base64 data URL and writes it under the static
// avatars directory, returning the public URL path.
func (s *LeaderboardService) saveAvatar(dataURL string) (string, error) {
	var ext string
	var payload string
	switch {
	case strings.HasPrefix(dataURL, "data:image/png;base64,"):
		ext, payload = "png", strings.TrimPrefix(dataURL, "data:image/png;base64,")
	case strings.HasPrefix(dataURL, "data:image/jpeg;base64,"):
		ext, payload = "jpg", strings.TrimPrefix(dataURL, "data:image/jpeg;base64,")
	case strings.HasPrefix(dataURL, "data:image/webp;base64,"):
		ext, payload = "webp", strings.TrimPrefix(dataURL, "data:image/webp;base64,")
	default:
		return "", fmt.Errorf("unsupported avatar format")
	}

	if int64(len(payload)) > s.avatarMaxSize {
		return "", fmt.Errorf("avatar exceeds %d byte limit", s.avatarMaxSize)
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("failed to decode avatar: %w", err)
	}

	dir := filepath.Join(s.staticPath, avatarsSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create avatars directory: %w", err)
	}

	filename := uuid.NewString() + "." + ext
	if err := os.WriteFile(filepath.Join(dir, filename), raw, 0o644); err != nil {
		return "", fmt.Errorf("failed to write avatar file: %w", err)
	}

	return "/static/" + avatarsSubdir + "/" + filename, nil
}
