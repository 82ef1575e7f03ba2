package board

import (
	"errors"
	"time"
)

// ErrAlreadyApplied marks a second apply against the same posting; the
// (user, posting) pair is unique in storage.
var ErrAlreadyApplied = errors.New("board: user has already applied to this posting")

// Company is an employer profile owned by a single user account.
type Company struct {
	ID          string    `db:"id"`
	OwnerID     string    `db:"owner_id"`
	Name        string    `db:"name"`
	Description *string   `db:"description"`
	Website     *string   `db:"website"`
	CreatedAt   time.Time `db:"created_at"`
}

// Posting is a role published by a company. OwnerID and CompanyName are
// joined from the owning company on reads.
type Posting struct {
	ID           string    `db:"id"`
	CompanyID    string    `db:"company_id"`
	OwnerID      string    `db:"owner_id"`
	CompanyName  string    `db:"company_name"`
	Title        string    `db:"title"`
	Description  string    `db:"description"`
	PositionType *string   `db:"position_type"`
	Location     *string   `db:"location"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// ApplicationStatus tracks where an application sits in the pipeline.
type ApplicationStatus string

const (
	StatusApplied   ApplicationStatus = "applied"
	StatusScreening ApplicationStatus = "screening"
	StatusAccepted  ApplicationStatus = "accepted"
	StatusRejected  ApplicationStatus = "rejected"
)

// Application is a user's expression of interest in a posting. At most one
// exists per (user, posting) pair.
type Application struct {
	ID        string            `db:"id"`
	PostingID string            `db:"posting_id"`
	UserID    string            `db:"user_id"`
	Status    ApplicationStatus `db:"status"`
	CreatedAt time.Time         `db:"created_at"`
}

// ApplicantView is an application enriched for the company-side applicant
// table: who applied and to which posting.
type ApplicantView struct {
	Application
	ApplicantName string `db:"applicant_name"`
	PostingTitle  string `db:"posting_title"`
}

// MyApplicationView is an application enriched for the applicant's own list.
type MyApplicationView struct {
	Application
	PostingTitle string `db:"posting_title"`
	CompanyName  string `db:"company_name"`
}

// PostingSearch filters the public posting list. Zero values mean "no filter".
type PostingSearch struct {
	Keyword      string
	Location     string
	PositionType string
	Limit        int
	Offset       int
}
