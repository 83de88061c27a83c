package models

import "time"

// Activity event types.
const (
	EventRegister    = "REGISTER"
	EventLogin       = "LOGIN"
	EventLogout      = "LOGOUT"
	EventNoteCreated = "NOTE_CREATED"
	EventNoteUpdated = "NOTE_UPDATED"
	EventNoteDeleted = "NOTE_DELETED"
)

// ActivityEvent is a single audit entry owned by one user.
type ActivityEvent struct {
	EventID     string    `json:"event_id"`
	UserID      int       `json:"-"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // REGISTER | LOGIN | LOGOUT | NOTE_*
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
