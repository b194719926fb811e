package sqlite

import (
	"testing"

	"barcodereader/internal/services/tracker"
)

var _ tracker.SeenStore = (*SeenRepository)(nil)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewMemory()
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSeenRepository_InsertAndContains(t *testing.T) {
	repo := NewSeenRepository(setupTestDB(t))

	seen, err := repo.Contains("ABC123")
	if err != nil {
		t.Fatalf("Contains failed: %v", err)
	}
	if seen {
		t.Error("Expected ABC123 to be unseen")
	}

	if err := repo.Insert("ABC123", "CODE128"); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	seen, err = repo.Contains("ABC123")
	if err != nil {
		t.Fatalf("Contains failed: %v", err)
	}
	if !seen {
		t.Error("Expected ABC123 to be seen")
	}
}

func TestSeenRepository_DuplicateInsertIsNoop(t *testing.T) {
	repo := NewSeenRepository(setupTestDB(t))

	for i := 0; i < 3; i++ {
		if err := repo.Insert("X", "EAN13"); err != nil {
			t.Fatalf("Insert %d failed: %v", i, err)
		}
	}

	count, err := repo.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 payload, got %d", count)
	}
}

func TestSeenRepository_CountBySymbology(t *testing.T) {
	repo := NewSeenRepository(setupTestDB(t))

	inserts := []struct {
		text      string
		symbology string
	}{
		{"a", "QRCODE"},
		{"b", "QRCODE"},
		{"c", "EAN13"},
	}
	for _, in := range inserts {
		if err := repo.Insert(in.text, in.symbology); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	counts, err := repo.CountBySymbology()
	if err != nil {
		t.Fatalf("CountBySymbology failed: %v", err)
	}
	if counts["QRCODE"] != 2 || counts["EAN13"] != 1 {
		t.Errorf("Unexpected counts: %v", counts)
	}
}

func TestMemoryDatabase_IsPrivate(t *testing.T) {
	first := NewSeenRepository(setupTestDB(t))
	second := NewSeenRepository(setupTestDB(t))

	if err := first.Insert("only-here", "QRCODE"); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	seen, err := second.Contains("only-here")
	if err != nil {
		t.Fatalf("Contains failed: %v", err)
	}
	if seen {
		t.Error("Separate in-memory databases must not share rows")
	}
}

func TestSeenRepository_WithTracker(t *testing.T) {
	repo := NewSeenRepository(setupTestDB(t))
	if err := repo.Insert("ABC123", "CODE128"); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	tr := tracker.New(repo, tracker.DefaultCooldown, testEpoch.Add(-tracker.DefaultCooldown*10))
	out, err := tr.Consider(normalized("ABC123", "NEW1"), testEpoch)
	if err != nil {
		t.Fatalf("Consider failed: %v", err)
	}
	if len(out) != 1 || out[0].Text != "NEW1" {
		t.Errorf("Expected only NEW1 to be reported, got %v", out)
	}
	if tr.Seen() != 2 {
		t.Errorf("Expected 2 seen payloads, got %d", tr.Seen())
	}
}
