// Package jsonio implements the JSON import/export contract. The interchange
// shape is {"members": [...], "expenses": [...]}; both top-level fields must
// be present and array-typed before an import replaces any state.
package jsonio

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/splitledger/splitledger/internal/models"
)

// ErrInvalidShape is returned when the document is not the expected
// {members, expenses} object.
var ErrInvalidShape = errors.New("invalid snapshot shape")

// Export renders the snapshot in the canonical interchange form. The two
// top-level arrays are always present, never null.
func Export(s models.Snapshot) ([]byte, error) {
	if s.Members == nil {
		s.Members = []models.Member{}
	}
	if s.Expenses == nil {
		s.Expenses = []models.Expense{}
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// Import parses and validates an exported document. Both top-level fields
// must exist and hold arrays; anything else is rejected without touching
// state.
func Import(data []byte) (models.Snapshot, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return models.Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidShape, err)
	}

	var snapshot models.Snapshot
	if err := decodeArray(raw, "members", &snapshot.Members); err != nil {
		return models.Snapshot{}, err
	}
	if err := decodeArray(raw, "expenses", &snapshot.Expenses); err != nil {
		return models.Snapshot{}, err
	}

	return snapshot, nil
}

func decodeArray[T any](raw map[string]json.RawMessage, field string, dst *[]T) error {
	msg, ok := raw[field]
	if !ok {
		return fmt.Errorf("%w: missing field %q", ErrInvalidShape, field)
	}
	if err := json.Unmarshal(msg, dst); err != nil {
		return fmt.Errorf("%w: field %q is not an array of the expected shape", ErrInvalidShape, field)
	}
	if *dst == nil {
		// JSON null unmarshals to a nil slice; the contract wants arrays.
		return fmt.Errorf("%w: field %q must be an array", ErrInvalidShape, field)
	}
	return nil
}
