package models

// Member represents a participant in the shared ledger.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	// Identity is immutable once assigned.
	ID string `json:"id"`

	// Name is the display name of the member.
	Name string `json:"name"`

	// Email is the member's email address, used as the notification
	// recipient. Optional; members without an email are never notified.
	Email string `json:"email,omitempty"`

	// CreatedAt is the Unix timestamp when the member was registered.
	CreatedAt int64 `json:"created_at"`
}
