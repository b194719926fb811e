package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"barcodereader/internal/repository"
)

var _ repository.SeenRepository = (*SeenRepository)(nil)

// SeenRepository stores reported payload texts. It satisfies tracker.SeenStore.
type SeenRepository struct {
	db *DB
}

// NewSeenRepository creates a new SQLite seen-payload repository.
func NewSeenRepository(db *DB) *SeenRepository {
	return &SeenRepository{db: db}
}

// Contains reports whether text was already recorded.
func (r *SeenRepository) Contains(text string) (bool, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var id int64
	err := r.db.Conn().QueryRow(`SELECT id FROM seen_payloads WHERE text = ?`, text).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query seen payload: %w", err)
	}
	return true, nil
}

// Insert records text. Recording the same text twice is a no-op.
func (r *SeenRepository) Insert(text, symbology string) error {
	r.db.Lock()
	defer r.db.Unlock()

	_, err := r.db.Conn().Exec(`
		INSERT OR IGNORE INTO seen_payloads (text, symbology)
		VALUES (?, ?)
	`, text, symbology)
	if err != nil {
		return fmt.Errorf("failed to insert seen payload: %w", err)
	}
	return nil
}

// Count returns the number of recorded payloads.
func (r *SeenRepository) Count() (int, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var count int
	if err := r.db.Conn().QueryRow(`SELECT COUNT(*) FROM seen_payloads`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count seen payloads: %w", err)
	}
	return count, nil
}

// CountBySymbology returns recorded payload counts per symbology.
func (r *SeenRepository) CountBySymbology() (map[string]int, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`SELECT symbology, COUNT(*) FROM seen_payloads GROUP BY symbology`)
	if err != nil {
		return nil, fmt.Errorf("failed to query symbology counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var symbology string
		var count int
		if err := rows.Scan(&symbology, &count); err != nil {
			return nil, fmt.Errorf("failed to scan symbology count: %w", err)
		}
		counts[symbology] = count
	}
	return counts, rows.Err()
}
