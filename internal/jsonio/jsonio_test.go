package jsonio

import (
	"errors"
	"testing"

	"github.com/splitledger/splitledger/internal/models"
)

func TestExportImportRoundTrip(t *testing.T) {
	snapshot := models.Snapshot{
		Members: []models.Member{
			{ID: "m1", Name: "Alice", Email: "alice@example.com", CreatedAt: 100},
			{ID: "m2", Name: "Bob", CreatedAt: 200},
		},
		Expenses: []models.Expense{{
			ID:            "e1",
			Description:   "Dinner",
			TotalCents:    4500,
			Contributions: []models.Contribution{{MemberID: "m1", AmountCents: 4500}},
			Shares: []models.Share{
				{MemberID: "m1", Weight: 1, Included: true},
				{MemberID: "m2", Weight: 1, Included: true},
			},
			CreatedAt: 300,
		}},
	}

	data, err := Export(snapshot)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	imported, err := Import(data)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(imported.Members) != 2 || len(imported.Expenses) != 1 {
		t.Fatalf("round trip lost data: %d members, %d expenses",
			len(imported.Members), len(imported.Expenses))
	}
	if imported.Expenses[0].TotalCents != 4500 {
		t.Errorf("total = %d, want 4500", imported.Expenses[0].TotalCents)
	}
}

func TestExportEmptySnapshotHasArrays(t *testing.T) {
	data, err := Export(models.Snapshot{})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if _, err := Import(data); err != nil {
		t.Errorf("empty export must import cleanly, got %v", err)
	}
}

func TestImportRejectsBadShapes(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{nope"},
		{"not an object", `[1, 2, 3]`},
		{"missing members", `{"expenses": []}`},
		{"missing expenses", `{"members": []}`},
		{"members not array", `{"members": {}, "expenses": []}`},
		{"expenses null", `{"members": [], "expenses": null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Import([]byte(tt.data)); !errors.Is(err, ErrInvalidShape) {
				t.Errorf("Import(%s) error = %v, want ErrInvalidShape", tt.data, err)
			}
		})
	}
}
