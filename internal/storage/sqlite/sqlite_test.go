package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/splitledger/splitledger/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testSnapshot() models.Snapshot {
	return models.Snapshot{
		Members: []models.Member{
			{ID: "m1", Name: "Alice", Email: "alice@example.com", CreatedAt: 100},
			{ID: "m2", Name: "Bob", CreatedAt: 200},
		},
		Expenses: []models.Expense{{
			ID:          "e1",
			Description: "Pizza night",
			TotalCents:  4200,
			Contributions: []models.Contribution{
				{MemberID: "m1", AmountCents: 4200},
			},
			Shares: []models.Share{
				{MemberID: "m1", Weight: 1, Included: true},
				{MemberID: "m2", Weight: 2, Included: true},
			},
			CreatedAt: 300,
		}},
	}
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("Load on fresh database returns empty snapshot", func(t *testing.T) {
		snapshot, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(snapshot.Members) != 0 || len(snapshot.Expenses) != 0 {
			t.Errorf("expected empty snapshot, got %d members, %d expenses",
				len(snapshot.Members), len(snapshot.Expenses))
		}
	})

	t.Run("Save and Load round trip", func(t *testing.T) {
		original := testSnapshot()
		if err := store.Save(ctx, original); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		loaded, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		if len(loaded.Members) != 2 {
			t.Fatalf("got %d members, want 2", len(loaded.Members))
		}
		if loaded.Members[0].ID != "m1" || loaded.Members[1].ID != "m2" {
			t.Errorf("member order not preserved: %v", loaded.Members)
		}
		if loaded.Members[0].Email != "alice@example.com" {
			t.Errorf("email = %q, want alice@example.com", loaded.Members[0].Email)
		}

		if len(loaded.Expenses) != 1 {
			t.Fatalf("got %d expenses, want 1", len(loaded.Expenses))
		}
		e := loaded.Expenses[0]
		if e.TotalCents != 4200 {
			t.Errorf("total = %d, want 4200", e.TotalCents)
		}
		if len(e.Contributions) != 1 || e.Contributions[0].AmountCents != 4200 {
			t.Errorf("contributions not preserved: %v", e.Contributions)
		}
		if len(e.Shares) != 2 {
			t.Fatalf("got %d shares, want 2", len(e.Shares))
		}
		if e.Shares[1].Weight != 2 {
			t.Errorf("weight = %v, want 2", e.Shares[1].Weight)
		}
		if !e.Shares[0].Included || !e.Shares[1].Included {
			t.Error("included flags not preserved")
		}
	})

	t.Run("Save replaces previous state", func(t *testing.T) {
		if err := store.Save(ctx, testSnapshot()); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		replacement := models.Snapshot{
			Members: []models.Member{{ID: "m9", Name: "Zoe", CreatedAt: 900}},
		}
		if err := store.Save(ctx, replacement); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		loaded, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(loaded.Members) != 1 || loaded.Members[0].ID != "m9" {
			t.Errorf("expected only replacement member, got %v", loaded.Members)
		}
		if len(loaded.Expenses) != 0 {
			t.Errorf("expected no expenses, got %d", len(loaded.Expenses))
		}
	})

	t.Run("Reopening the database keeps state", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "persist.db")
		first, err := New(dbPath)
		if err != nil {
			t.Fatalf("Failed to create store: %v", err)
		}
		if err := first.Save(ctx, testSnapshot()); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		first.Close()

		second, err := New(dbPath)
		if err != nil {
			t.Fatalf("Failed to reopen store: %v", err)
		}
		defer second.Close()

		loaded, err := second.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(loaded.Members) != 2 || len(loaded.Expenses) != 1 {
			t.Errorf("state lost across reopen: %d members, %d expenses",
				len(loaded.Members), len(loaded.Expenses))
		}
	})
}
