package student

import "time"

// Student is a registry entry. UserID links the student to a login
// account when one exists; imported students without credentials have
// no account.
type Student struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	Name      string    `json:"name"`
	Batch     string    `json:"batch"`
	ClassID   string    `json:"class_id"`
	Board     string    `json:"board"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}
