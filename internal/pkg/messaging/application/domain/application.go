package messaging

// ApplicationRef is the read-only slice of an application that messaging
// needs: who applied, which posting, and who owns the company behind it.
// The application itself is owned by the board domain.
type ApplicationRef struct {
	ID             string `db:"id"`
	ApplicantID    string `db:"applicant_id"`
	PostingID      string `db:"posting_id"`
	PostingTitle   string `db:"posting_title"`
	CompanyOwnerID string `db:"company_owner_id"`
}
