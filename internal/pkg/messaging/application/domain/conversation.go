package messaging

import "time"

// Conversation is a 1:1 thread between an applicant and the company owner,
// tied to exactly one application. The one-per-application rule is enforced
// by a unique constraint on application_id, not by client-side checks.
type Conversation struct {
	ID             string    `db:"id"`
	ApplicationID  string    `db:"application_id"`
	UserID         string    `db:"user_id"`
	CompanyOwnerID string    `db:"company_owner_id"`
	CreatedAt      time.Time `db:"created_at"`
}

// OtherParty returns the participant that is not viewerID. The second return
// is false when viewerID is not a participant at all.
func (c Conversation) OtherParty(viewerID string) (string, bool) {
	switch viewerID {
	case c.UserID:
		return c.CompanyOwnerID, true
	case c.CompanyOwnerID:
		return c.UserID, true
	default:
		return "", false
	}
}

// ConversationView is a Conversation enriched with display metadata for the
// conversation list: the other participant's name and the linked posting title.
type ConversationView struct {
	Conversation
	OtherPartyID   string     `db:"other_party_id"`
	OtherPartyName string     `db:"other_party_name"`
	PostingTitle   string     `db:"posting_title"`
	LastMessageAt  *time.Time `db:"last_message_at"`
}
