package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/meur/lorequiz/internal/models"
)

// Store handles all database operations
type Store struct {
	db *sql.DB
}

// New creates a new Store with SQLite
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate runs database migrations
func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS item_types (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS items (
			id INTEGER PRIMARY KEY,
			type_id INTEGER NOT NULL REFERENCES item_types(id),
			fame INTEGER NOT NULL,
			name TEXT NOT NULL,
			link TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_items_type ON items(type_id)`,
		`CREATE INDEX IF NOT EXISTS idx_items_fame ON items(fame)`,
		`CREATE TABLE IF NOT EXISTS modifiers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			item_id INTEGER NOT NULL REFERENCES items(id),
			modifier_text TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_modifiers_item ON modifiers(item_id)`,
		`CREATE TABLE IF NOT EXISTS leaderboard (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			score INTEGER NOT NULL,
			date DATETIME NOT NULL,
			total_time_ms INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_leaderboard_rank ON leaderboard(score DESC, date ASC)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// --- Catalog ---

// GetAllItems returns the full catalog with type names resolved and
// modifier lines attached. The result is a snapshot: one
// question-generation call works off one return value.
func (s *Store) GetAllItems() ([]models.Item, error) {
	rows, err := s.db.Query(`
		SELECT i.id, i.type_id, t.name, i.fame, i.name, COALESCE(i.link, '')
		FROM items i
		JOIN item_types t ON t.id = i.type_id
		ORDER BY i.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Item
	index := make(map[int]int)
	for rows.Next() {
		var it models.Item
		err := rows.Scan(&it.ID, &it.TypeID, &it.TypeName, &it.Fame, &it.Name, &it.Link)
		if err != nil {
			return nil, err
		}
		index[it.ID] = len(items)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	modRows, err := s.db.Query(`SELECT item_id, modifier_text FROM modifiers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer modRows.Close()

	for modRows.Next() {
		var itemID int
		var text string
		if err := modRows.Scan(&itemID, &text); err != nil {
			return nil, err
		}
		if i, ok := index[itemID]; ok {
			items[i].Modifiers = append(items[i].Modifiers, text)
		}
	}
	return items, modRows.Err()
}

// CreateItemType creates an item type
func (s *Store) CreateItemType(t *models.ItemType) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO item_types (id, name) VALUES (?, ?)
	`, t.ID, t.Name)
	return err
}

// CreateItem creates an item together with its modifier lines
func (s *Store) CreateItem(item *models.Item) error {
	return s.BulkCreateItems([]models.Item{*item})
}

// BulkCreateItems upserts items and their modifiers in one transaction.
// An existing item's modifiers are replaced, not extended.
func (s *Store) BulkCreateItems(items []models.Item) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	itemStmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO items (id, type_id, fame, name, link)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer itemStmt.Close()

	modStmt, err := tx.Prepare(`
		INSERT INTO modifiers (item_id, modifier_text) VALUES (?, ?)
	`)
	if err != nil {
		return err
	}
	defer modStmt.Close()

	for _, item := range items {
		if _, err := itemStmt.Exec(item.ID, item.TypeID, item.Fame, item.Name, item.Link); err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM modifiers WHERE item_id = ?`, item.ID); err != nil {
			return err
		}
		for _, m := range item.Modifiers {
			if _, err := modStmt.Exec(item.ID, m); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// --- Leaderboard ---

// AddLeaderboardEntry records a finished run
func (s *Store) AddLeaderboardEntry(name string, score int, totalTimeMs int64) (*models.LeaderboardEntry, error) {
	now := time.Now().UTC()
	res, err := s.db.Exec(`
		INSERT INTO leaderboard (name, score, date, total_time_ms)
		VALUES (?, ?, ?, ?)
	`, name, score, now, totalTimeMs)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &models.LeaderboardEntry{
		ID:          int(id),
		Name:        name,
		Score:       score,
		Date:        now,
		TotalTimeMs: totalTimeMs,
	}, nil
}

// TopLeaderboard returns the best entries, highest score first; equal
// scores rank the earlier submission higher.
func (s *Store) TopLeaderboard(limit int) ([]models.LeaderboardEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, name, score, date, total_time_ms
		FROM leaderboard
		ORDER BY score DESC, date ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		err := rows.Scan(&e.ID, &e.Name, &e.Score, &e.Date, &e.TotalTimeMs)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
