package types

import "time"

type ContactMessage struct {
	ID      string  `db:"id"`
	Name    string  `db:"name"`
	Email   string  `db:"email"`
	Phone   *string `db:"phone"`
	Subject string  `db:"subject"`
	Message string  `db:"message"`

	IsRead      bool `db:"is_read"`
	IsResponded bool `db:"is_responded"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type ContactFilters struct {
	// Read is "read", "unread" or empty for all.
	Read   string `form:"read"`
	Search string `form:"search"`
}
