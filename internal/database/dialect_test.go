package database

import "testing"

func TestPostgresRewriteQuery(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{
			name:     "no placeholders",
			query:    "SELECT 1",
			expected: "SELECT 1",
		},
		{
			name:     "single placeholder",
			query:    "SELECT * FROM leaderboard WHERE id = ?",
			expected: "SELECT * FROM leaderboard WHERE id = $1",
		},
		{
			name:     "numbered in order",
			query:    "INSERT INTO leaderboard (name, score) VALUES (?, ?)",
			expected: "INSERT INTO leaderboard (name, score) VALUES ($1, $2)",
		},
	}

	d := postgresDialect{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.RewriteQuery(tt.query); got != tt.expected {
				t.Errorf("RewriteQuery(%q) = %q, expected %q", tt.query, got, tt.expected)
			}
		})
	}
}

func TestSQLiteAndMySQLPassThrough(t *testing.T) {
	query := "SELECT * FROM leaderboard WHERE id = ?"
	if got := (sqliteDialect{}).RewriteQuery(query); got != query {
		t.Errorf("sqlite rewrote query: %q", got)
	}
	if got := (mysqlDialect{}).RewriteQuery(query); got != query {
		t.Errorf("mysql rewrote query: %q", got)
	}
}

func TestExecReturningIDSQLite(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec("CREATE TABLE things (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT)"); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}

	id, err := db.ExecReturningID("INSERT INTO things (name) VALUES (?)", "first")
	if err != nil {
		t.Fatalf("ExecReturningID failed: %v", err)
	}
	if id != 1 {
		t.Errorf("first insert ID = %d, expected 1", id)
	}

	id, err = db.ExecReturningID("INSERT INTO things (name) VALUES (?)", "second")
	if err != nil {
		t.Fatalf("ExecReturningID failed: %v", err)
	}
	if id != 2 {
		t.Errorf("second insert ID = %d, expected 2", id)
	}
}
