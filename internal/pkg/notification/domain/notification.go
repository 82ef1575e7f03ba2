package notification

import "time"

// Notification is a per-user feed entry pointing at the place the event
// happened (a conversation, a posting). Rows are immutable except for the
// read flag.
type Notification struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Message   string    `db:"message"`
	LinkTo    *string   `db:"link_to"`
	IsRead    bool      `db:"is_read"`
	CreatedAt time.Time `db:"created_at"`
}
