package service

import "time"

// ActivityFilter supports history filtering by time range and type.
type ActivityFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "REGISTER", "LOGIN", "LOGOUT", "NOTE_CREATED", "NOTE_UPDATED", "NOTE_DELETED"
}
