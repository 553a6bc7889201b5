package service

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/otterc137/GuessAnime/internal/models"
	"github.com/otterc137/GuessAnime/internal/repository"
)

const backupVersion = "1"

// BackupData is the on-disk backup format.
type BackupData struct {
	Version     string                    `json:"version"`
	ExportedAt  time.Time                 `json:"exported_at"`
	Leaderboard []models.LeaderboardEntry `json:"leaderboard"`
}

// BackupService exports and restores the leaderboard as JSON.
type BackupService struct {
	repo *repository.LeaderboardRepository
}

// NewBackupService creates a new backup service.
func NewBackupService(repo *repository.LeaderboardRepository) *BackupService {
	return &BackupService{repo: repo}
}

// Export writes every leaderboard entry to a JSON file.
func (s *BackupService) Export(outputPath string) error {
	entries, err := s.repo.All()
	if err != nil {
		return fmt.Errorf("failed to read leaderboard: %w", err)
	}

	backup := BackupData{
		Version:     backupVersion,
		ExportedAt:  time.Now().UTC(),
		Leaderboard: entries,
	}

	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup: %w", err)
	}

	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}

	log.Printf("Exported %d leaderboard entries", len(entries))
	return nil
}

// Import merges entries from a backup file into the leaderboard. Entries
// get fresh IDs; original timestamps are preserved.
func (s *BackupService) Import(inputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read backup file: %w", err)
	}

	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version != backupVersion {
		return fmt.Errorf("unsupported backup version: %q", backup.Version)
	}

	for _, e := range backup.Leaderboard {
		if err := s.repo.InsertWithTimestamp(e.Name, e.Score, e.Correct, e.AvatarURL, e.CreatedAt); err != nil {
			return fmt.Errorf("failed to import entry %q: %w", e.Name, err)
		}
	}

	log.Printf("Imported %d leaderboard entries", len(backup.Leaderboard))
	return nil
}
