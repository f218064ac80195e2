// Package ledger holds the authoritative (members, expenses) state and the
// mutations on it. Every mutation validates first and returns a NEW Ledger;
// existing values are never changed in place. That keeps the calculator a
// pure function of a snapshot and makes persistence an explicit save of the
// returned state.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/splitledger/splitledger/internal/models"
)

// Ledger is an immutable snapshot of members and expenses. The zero value is
// an empty, usable ledger.
type Ledger struct {
	members  []models.Member
	expenses []models.Expense
}

// FromSnapshot builds a ledger from persisted state. The state was validated
// when it was written, so no checks are repeated here.
func FromSnapshot(s models.Snapshot) Ledger {
	s = s.Clone()
	return Ledger{members: s.Members, expenses: s.Expenses}
}

// FromSnapshotStrict builds a ledger from an untrusted snapshot, such as an
// imported document. Members need unique non-empty IDs and names; every
// expense passes the same validation AddExpense applies, so dangling member
// references or negative amounts never enter the ledger.
func FromSnapshotStrict(s models.Snapshot) (Ledger, error) {
	s = s.Clone()

	seen := make(map[string]bool, len(s.Members))
	for _, m := range s.Members {
		if m.ID == "" {
			return Ledger{}, fmt.Errorf("%w: member with empty ID", ErrValidation)
		}
		if strings.TrimSpace(m.Name) == "" {
			return Ledger{}, fmt.Errorf("%w: member %s has an empty name", ErrValidation, m.ID)
		}
		if seen[m.ID] {
			return Ledger{}, fmt.Errorf("%w: duplicate member ID %s", ErrValidation, m.ID)
		}
		seen[m.ID] = true
	}

	next := Ledger{members: s.Members}
	for i := range s.Expenses {
		e := &s.Expenses[i]
		if err := next.validateExpense(e); err != nil {
			return Ledger{}, fmt.Errorf("expense %s: %w", e.ID, err)
		}
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
	}
	next.expenses = s.Expenses
	return next, nil
}

// Snapshot returns a deep copy of the current state, ordered by creation.
func (l Ledger) Snapshot() models.Snapshot {
	return models.Snapshot{Members: l.members, Expenses: l.expenses}.Clone()
}

// Members returns the registered members in registration order.
func (l Ledger) Members() []models.Member {
	return append([]models.Member(nil), l.members...)
}

// Expenses returns the recorded expenses in insertion order.
func (l Ledger) Expenses() []models.Expense {
	out := make([]models.Expense, len(l.expenses))
	for i, e := range l.expenses {
		e.Contributions = append([]models.Contribution(nil), e.Contributions...)
		e.Shares = append([]models.Share(nil), e.Shares...)
		out[i] = e
	}
	return out
}

// Member looks up a member by ID.
func (l Ledger) Member(id string) (models.Member, error) {
	for _, m := range l.members {
		if m.ID == id {
			return m, nil
		}
	}
	return models.Member{}, fmt.Errorf("%w: member %s", ErrNotFound, id)
}

// AddMember registers a new member with a fresh ID. The name must be
// non-empty after trimming; the email is optional.
func (l Ledger) AddMember(name, email string) (Ledger, models.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return l, models.Member{}, fmt.Errorf("%w: member name is required", ErrValidation)
	}

	member := models.Member{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     strings.TrimSpace(email),
		CreatedAt: time.Now().Unix(),
	}

	next := l
	next.members = append(l.Members(), member)
	return next, member, nil
}

// RenameMember changes a member's display name. Identity and email are
// untouched.
func (l Ledger) RenameMember(id, name string) (Ledger, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return l, fmt.Errorf("%w: member name is required", ErrValidation)
	}

	members := l.Members()
	for i := range members {
		if members[i].ID == id {
			members[i].Name = name
			next := l
			next.members = members
			return next, nil
		}
	}
	return l, fmt.Errorf("%w: member %s", ErrNotFound, id)
}

// RemoveMember deletes a member and prunes every reference to them. Any
// contribution or share naming the member is dropped from its expense; an
// expense whose included participant set becomes empty is removed outright.
// Pruning whole expenses rather than leaving orphaned partial ones is what
// keeps the sum of balances at zero.
func (l Ledger) RemoveMember(id string) (Ledger, error) {
	members := l.Members()
	found := false
	for i := range members {
		if members[i].ID == id {
			members = append(members[:i], members[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return l, fmt.Errorf("%w: member %s", ErrNotFound, id)
	}

	var expenses []models.Expense
	for _, e := range l.Expenses() {
		var contributions []models.Contribution
		for _, c := range e.Contributions {
			if c.MemberID != id {
				contributions = append(contributions, c)
			}
		}
		var shares []models.Share
		for _, s := range e.Shares {
			if s.MemberID != id {
				shares = append(shares, s)
			}
		}
		e.Contributions = contributions
		e.Shares = shares
		if len(e.IncludedShares()) == 0 {
			continue
		}
		expenses = append(expenses, e)
	}

	next := l
	next.members = members
	next.expenses = expenses
	return next, nil
}

// AddExpense validates and appends an expense. A missing ID and timestamp
// are assigned; a zero total is derived as the contribution sum. When both a
// total and contributions are supplied the sums must match to the cent.
func (l Ledger) AddExpense(e models.Expense) (Ledger, models.Expense, error) {
	e.Contributions = append([]models.Contribution(nil), e.Contributions...)
	e.Shares = append([]models.Share(nil), e.Shares...)
	if err := l.validateExpense(&e); err != nil {
		return l, models.Expense{}, err
	}

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt == 0 {
		e.CreatedAt = time.Now().Unix()
	}

	next := l
	next.expenses = append(l.Expenses(), e)
	return next, e, nil
}

// RemoveExpense deletes an expense by ID.
func (l Ledger) RemoveExpense(id string) (Ledger, error) {
	expenses := l.Expenses()
	for i := range expenses {
		if expenses[i].ID == id {
			next := l
			next.expenses = append(expenses[:i], expenses[i+1:]...)
			return next, nil
		}
	}
	return l, fmt.Errorf("%w: expense %s", ErrNotFound, id)
}

func (l Ledger) validateExpense(e *models.Expense) error {
	if e.TotalCents < 0 {
		return fmt.Errorf("%w: total amount must not be negative", ErrValidation)
	}

	var contributed int64
	seen := make(map[string]bool, len(e.Contributions))
	for _, c := range e.Contributions {
		if c.AmountCents < 0 {
			return fmt.Errorf("%w: contribution amount must not be negative", ErrValidation)
		}
		if seen[c.MemberID] {
			return fmt.Errorf("%w: duplicate contribution for member %s", ErrValidation, c.MemberID)
		}
		seen[c.MemberID] = true
		if _, err := l.Member(c.MemberID); err != nil {
			return fmt.Errorf("%w: contribution references unknown member %s", ErrValidation, c.MemberID)
		}
		contributed += c.AmountCents
	}

	// A stated total must be fully covered by contributions; otherwise the
	// credited and debited sides diverge and balances stop summing to zero.
	if e.TotalCents == 0 {
		e.TotalCents = contributed
	} else if contributed != e.TotalCents {
		return fmt.Errorf("%w: contributions sum to %d but total is %d", ErrValidation, contributed, e.TotalCents)
	}

	included := 0
	seen = make(map[string]bool, len(e.Shares))
	for i := range e.Shares {
		s := &e.Shares[i]
		if seen[s.MemberID] {
			return fmt.Errorf("%w: duplicate share for member %s", ErrValidation, s.MemberID)
		}
		seen[s.MemberID] = true
		if _, err := l.Member(s.MemberID); err != nil {
			return fmt.Errorf("%w: share references unknown member %s", ErrValidation, s.MemberID)
		}
		if s.Weight <= 0 {
			s.Weight = 1 // equal-split default
		}
		if s.Included {
			included++
		}
	}
	if included == 0 {
		return fmt.Errorf("%w: expense needs at least one included participant", ErrValidation)
	}

	return nil
}
