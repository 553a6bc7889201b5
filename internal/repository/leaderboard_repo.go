package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/otterc137/GuessAnime/internal/database"
	"github.com/otterc137/GuessAnime/internal/models"
)

// LeaderboardRepository handles leaderboard data access.
type LeaderboardRepository struct {
	db *database.DB
}

// NewLeaderboardRepository creates a new leaderboard repository.
func NewLeaderboardRepository(db *database.DB) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

// Insert stores a new leaderboard entry and returns its ID.
func (r *LeaderboardRepository) Insert(name string, score, correct int, avatarURL *string) (int64, error) {
	query := `INSERT INTO leaderboard (name, score, correct, avatar_url, created_at)
			  VALUES (?, ?, ?, ?, ?)`
	id, err := r.db.ExecReturningID(query, name, score, correct, avatarURL, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to insert leaderboard entry: %w", err)
	}
	return id, nil
}

// InsertWithTimestamp stores an entry with an explicit creation time.
// Used when restoring from a backup.
func (r *LeaderboardRepository) InsertWithTimestamp(name string, score, correct int, avatarURL *string, createdAt time.Time) error {
	query := `INSERT INTO leaderboard (name, score, correct, avatar_url, created_at)
			  VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.Exec(query, name, score, correct, avatarURL, createdAt); err != nil {
		return fmt.Errorf("failed to insert leaderboard entry: %w", err)
	}
	return nil
}

// TopSince returns the highest-scoring entries created at or after the
// given cutoff, best first.
func (r *LeaderboardRepository) TopSince(cutoff time.Time, limit int) ([]models.LeaderboardEntry, error) {
	query := `SELECT id, name, score, correct, avatar_url, created_at
			  FROM leaderboard
			  WHERE created_at >= ?
			  ORDER BY score DESC, created_at ASC
			  LIMIT ?`

	rows, err := r.db.Query(query, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.Score, &e.Correct, &e.AvatarURL, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// All returns every entry, newest first. Used by the backup tool.
func (r *LeaderboardRepository) All() ([]models.LeaderboardEntry, error) {
	query := `SELECT id, name, score, correct, avatar_url, created_at
			  FROM leaderboard
			  ORDER BY created_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.Score, &e.Correct, &e.AvatarURL, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes an entry by ID. Returns sql.ErrNoRows if it did not exist.
func (r *LeaderboardRepository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM leaderboard WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete leaderboard entry: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
