// Package service coordinates the ledger engine with storage and
// notifications. All engine computation is synchronous; the only external
// boundary is the notifier, and one failed notice never blocks the rest.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/splitledger/splitledger/internal/calculator"
	"github.com/splitledger/splitledger/internal/jsonio"
	"github.com/splitledger/splitledger/internal/ledger"
	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/notify"
	"github.com/splitledger/splitledger/internal/storage"
)

// LedgerService owns the authoritative ledger state. Mutations validate,
// persist the new snapshot, and only then swap it in, so a failed save never
// leaves state and storage disagreeing.
type LedgerService struct {
	mu       sync.RWMutex
	current  ledger.Ledger
	store    storage.Store
	notifier notify.Notifier
	epsilon  int64
}

// NewLedgerService loads the persisted snapshot and returns a ready service.
func NewLedgerService(ctx context.Context, store storage.Store, notifier notify.Notifier, epsilon int64) (*LedgerService, error) {
	snapshot, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if notifier == nil {
		notifier = notify.Nop{}
	}

	slog.Info("Ledger loaded",
		"members", len(snapshot.Members),
		"expenses", len(snapshot.Expenses),
	)

	return &LedgerService{
		current:  ledger.FromSnapshot(snapshot),
		store:    store,
		notifier: notifier,
		epsilon:  epsilon,
	}, nil
}

// commit persists next and swaps it in as the authoritative state.
// Called with the mutex held.
func (s *LedgerService) commit(ctx context.Context, next ledger.Ledger) error {
	if err := s.store.Save(ctx, next.Snapshot()); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	s.current = next
	return nil
}

// AddMember registers a new member.
func (s *LedgerService) AddMember(ctx context.Context, name, email string) (models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, member, err := s.current.AddMember(name, email)
	if err != nil {
		return models.Member{}, err
	}
	if err := s.commit(ctx, next); err != nil {
		return models.Member{}, err
	}

	slog.Info("Member added", "member_id", member.ID, "name", member.Name)
	return member, nil
}

// RenameMember changes a member's display name.
func (s *LedgerService) RenameMember(ctx context.Context, id, name string) (models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.current.RenameMember(id, name)
	if err != nil {
		return models.Member{}, err
	}
	if err := s.commit(ctx, next); err != nil {
		return models.Member{}, err
	}

	slog.Info("Member renamed", "member_id", id)
	return s.current.Member(id)
}

// RemoveMember deletes a member and prunes their expense references.
func (s *LedgerService) RemoveMember(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.current.Expenses())
	next, err := s.current.RemoveMember(id)
	if err != nil {
		return err
	}
	if err := s.commit(ctx, next); err != nil {
		return err
	}

	slog.Info("Member removed",
		"member_id", id,
		"expenses_dropped", before-len(s.current.Expenses()),
	)
	return nil
}

// AddExpense validates and records an expense.
func (s *LedgerService) AddExpense(ctx context.Context, expense models.Expense) (models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, added, err := s.current.AddExpense(expense)
	if err != nil {
		return models.Expense{}, err
	}
	if err := s.commit(ctx, next); err != nil {
		return models.Expense{}, err
	}

	slog.Info("Expense added",
		"expense_id", added.ID,
		"total_cents", added.TotalCents,
		"participants", len(added.IncludedShares()),
	)
	return added, nil
}

// RemoveExpense deletes an expense by ID.
func (s *LedgerService) RemoveExpense(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.current.RemoveExpense(id)
	if err != nil {
		return err
	}
	if err := s.commit(ctx, next); err != nil {
		return err
	}

	slog.Info("Expense removed", "expense_id", id)
	return nil
}

// Members returns the registered members.
func (s *LedgerService) Members() []models.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Members()
}

// Expenses returns the recorded expenses in insertion order.
func (s *LedgerService) Expenses() []models.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Expenses()
}

// Balances computes every member's net position from the current snapshot.
func (s *LedgerService) Balances() map[string]int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return calculator.Balances(s.current.Members(), s.current.Expenses())
}

// Settlement computes the transfer plan that zeroes the current balances.
func (s *LedgerService) Settlement() []models.Transfer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	balances := calculator.Balances(s.current.Members(), s.current.Expenses())
	return calculator.Simplify(balances, s.epsilon)
}

// NotifySettlement computes the settlement plan and hands each transfer to
// the notifier, addressed to the debtor. Members without an email are
// skipped. Failures are logged and counted but never abort the remaining
// notices. Returns the plan plus how many notices went out.
func (s *LedgerService) NotifySettlement(ctx context.Context) ([]models.Transfer, int, error) {
	s.mu.RLock()
	members := s.current.Members()
	balances := calculator.Balances(members, s.current.Expenses())
	s.mu.RUnlock()

	transfers := calculator.Simplify(balances, s.epsilon)

	byID := make(map[string]models.Member, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}

	sent := 0
	for _, t := range transfers {
		from, to := byID[t.From], byID[t.To]
		if from.Email == "" {
			slog.Debug("Skipping notice, member has no email", "member_id", from.ID)
			continue
		}
		subject, body := notify.SettlementNotice(t, from, to)
		if err := s.notifier.Send(ctx, from.Email, subject, body); err != nil {
			slog.Error("Failed to send settlement notice",
				"from", t.From,
				"to", t.To,
				"error", err,
			)
			continue
		}
		sent++
	}

	slog.Info("Settlement notices dispatched", "transfers", len(transfers), "sent", sent)
	return transfers, sent, nil
}

// Export renders the current snapshot in the JSON interchange shape.
func (s *LedgerService) Export() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return jsonio.Export(s.current.Snapshot())
}

// Import validates the document shape and contents, replaces the entire
// state, and persists it. A rejected document leaves the current state
// untouched.
func (s *LedgerService) Import(ctx context.Context, data []byte) error {
	snapshot, err := jsonio.Import(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ledger.ErrValidation, err)
	}

	next, err := ledger.FromSnapshotStrict(snapshot)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.commit(ctx, next); err != nil {
		return err
	}

	slog.Info("Snapshot imported",
		"members", len(snapshot.Members),
		"expenses", len(snapshot.Expenses),
	)
	return nil
}
