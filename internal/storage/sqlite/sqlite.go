// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite. A snapshot is stored
// normalized across members/expenses/contributions/shares tables; Save
// replaces all of it in one transaction.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path. It creates the
// parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save replaces the persisted snapshot in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, snapshot models.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// The snapshot is authoritative: clear everything, then write it out.
	for _, table := range []string{"shares", "contributions", "expenses", "members"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i, m := range snapshot.Members {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO members (id, name, email, created_at, position) VALUES (?, ?, ?, ?, ?)",
			m.ID, m.Name, m.Email, m.CreatedAt, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert member: %w", err)
		}
	}

	for i, e := range snapshot.Expenses {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO expenses (id, description, total_cents, created_at, position) VALUES (?, ?, ?, ?, ?)",
			e.ID, e.Description, e.TotalCents, e.CreatedAt, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}

		for j, c := range e.Contributions {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO contributions (expense_id, member_id, amount_cents, position) VALUES (?, ?, ?, ?)",
				e.ID, c.MemberID, c.AmountCents, j,
			)
			if err != nil {
				return fmt.Errorf("failed to insert contribution: %w", err)
			}
		}

		for j, sh := range e.Shares {
			included := 0
			if sh.Included {
				included = 1
			}
			_, err := tx.ExecContext(ctx,
				"INSERT INTO shares (expense_id, member_id, weight, included, position) VALUES (?, ?, ?, ?, ?)",
				e.ID, sh.MemberID, sh.Weight, included, j,
			)
			if err != nil {
				return fmt.Errorf("failed to insert share: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Load reads the full snapshot back in insertion order. A fresh database
// yields an empty snapshot, not an error.
func (s *SQLiteStore) Load(ctx context.Context) (models.Snapshot, error) {
	var snapshot models.Snapshot

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, email, created_at FROM members ORDER BY position")
	if err != nil {
		return snapshot, fmt.Errorf("failed to load members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.CreatedAt); err != nil {
			return snapshot, fmt.Errorf("failed to scan member: %w", err)
		}
		snapshot.Members = append(snapshot.Members, m)
	}
	if err := rows.Err(); err != nil {
		return snapshot, fmt.Errorf("failed to iterate members: %w", err)
	}

	expenseRows, err := s.db.QueryContext(ctx,
		"SELECT id, description, total_cents, created_at FROM expenses ORDER BY position")
	if err != nil {
		return snapshot, fmt.Errorf("failed to load expenses: %w", err)
	}
	defer expenseRows.Close()

	for expenseRows.Next() {
		var e models.Expense
		if err := expenseRows.Scan(&e.ID, &e.Description, &e.TotalCents, &e.CreatedAt); err != nil {
			return snapshot, fmt.Errorf("failed to scan expense: %w", err)
		}
		snapshot.Expenses = append(snapshot.Expenses, e)
	}
	if err := expenseRows.Err(); err != nil {
		return snapshot, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for i := range snapshot.Expenses {
		e := &snapshot.Expenses[i]
		if e.Contributions, err = s.loadContributions(ctx, e.ID); err != nil {
			return snapshot, err
		}
		if e.Shares, err = s.loadShares(ctx, e.ID); err != nil {
			return snapshot, err
		}
	}

	return snapshot, nil
}

func (s *SQLiteStore) loadContributions(ctx context.Context, expenseID string) ([]models.Contribution, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT member_id, amount_cents FROM contributions WHERE expense_id = ? ORDER BY position",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load contributions: %w", err)
	}
	defer rows.Close()

	var contributions []models.Contribution
	for rows.Next() {
		var c models.Contribution
		if err := rows.Scan(&c.MemberID, &c.AmountCents); err != nil {
			return nil, fmt.Errorf("failed to scan contribution: %w", err)
		}
		contributions = append(contributions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contributions: %w", err)
	}
	return contributions, nil
}

func (s *SQLiteStore) loadShares(ctx context.Context, expenseID string) ([]models.Share, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT member_id, weight, included FROM shares WHERE expense_id = ? ORDER BY position",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load shares: %w", err)
	}
	defer rows.Close()

	var shares []models.Share
	for rows.Next() {
		var (
			sh       models.Share
			included int
		)
		if err := rows.Scan(&sh.MemberID, &sh.Weight, &included); err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		sh.Included = included != 0
		shares = append(shares, sh)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shares: %w", err)
	}
	return shares, nil
}
