package models

import "time"

// Note is a titled text owned by exactly one user.
type Note struct {
	ID        int       `json:"id"`
	OwnerID   int       `json:"-"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
