package database

import (
	"bufio"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

const badWordsURL = "https://raw.githubusercontent.com/LDNOOBW/List-of-Dirty-Naughty-Obscene-and-Otherwise-Bad-Words/refs/heads/master/en"

// SeedBadWords populates the bad_words table used to screen leaderboard
// display names. No-op if already seeded.
func (db *DB) SeedBadWords() error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM bad_words").Scan(&count); err != nil {
		return fmt.Errorf("failed to check bad words count: %w", err)
	}
	if count > 0 {
		log.Printf("Bad words filter already populated with %d words", count)
		return nil
	}

	log.Println("Downloading bad words list...")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(badWordsURL)
	if err != nil {
		return fmt.Errorf("failed to download bad words list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status code from bad words URL: %d", resp.StatusCode)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(db.Dialect.RewriteQuery("INSERT INTO bad_words (word) VALUES (?)"))
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	added := 0
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word == "" {
			continue
		}
		if _, err := stmt.Exec(word); err != nil {
			return fmt.Errorf("failed to insert word: %w", err)
		}
		added++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read bad words list: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit bad words: %w", err)
	}

	log.Printf("Bad words filter seeded with %d words", added)
	return nil
}

// ContainsBadWord reports whether any token of the candidate display name
// appears in the filter. Matching is per whitespace-separated token; this
// deliberately avoids substring matching so names like "Scunthorpe" pass.
func (db *DB) ContainsBadWord(name string) (bool, error) {
	for _, token := range strings.Fields(strings.ToLower(name)) {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM bad_words WHERE word = ?", token).Scan(&count)
		if err != nil {
			return false, fmt.Errorf("failed to check bad words: %w", err)
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}
