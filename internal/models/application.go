package models

import "time"

// ApplicationStatus is the tracked state of a job application
type ApplicationStatus string

// Application statuses
const (
	StatusApplied      ApplicationStatus = "Applied"
	StatusInterviewing ApplicationStatus = "Interviewing"
	StatusOffered      ApplicationStatus = "Offered"
	StatusRejected     ApplicationStatus = "Rejected"
)

// ApplicationStatuses lists every valid status
var ApplicationStatuses = []ApplicationStatus{
	StatusApplied,
	StatusInterviewing,
	StatusOffered,
	StatusRejected,
}

// Valid reports whether the status is one of the known statuses
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusApplied, StatusInterviewing, StatusOffered, StatusRejected:
		return true
	}
	return false
}

// JobApplication represents a user's application to a job posting
// UserID and JobID are immutable after creation
type JobApplication struct {
	ID          string            `json:"id"`
	Status      ApplicationStatus `json:"status"`
	DateApplied Date              `json:"dateApplied"`
	Notes       string            `json:"notes,omitempty"`
	UserID      string            `json:"userId"`
	JobID       string            `json:"jobId"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// ApplicationDetail is an application together with its job posting and applicant summary
type ApplicationDetail struct {
	JobApplication
	Job       Job              `json:"job"`
	Applicant ApplicantSummary `json:"user"`
}

// CreateApplicationRequest is the payload for POST /applications
// Any client-supplied userId is ignored: the owner is always the caller
type CreateApplicationRequest struct {
	JobID       string            `json:"jobId"`
	Status      ApplicationStatus `json:"status"`
	DateApplied Date              `json:"dateApplied"`
	Notes       string            `json:"notes"`
}

// UpdateApplicationRequest is the payload for PATCH /applications/{id}
// Nil fields are left unchanged
type UpdateApplicationRequest struct {
	Status      *ApplicationStatus `json:"status"`
	DateApplied *Date              `json:"dateApplied"`
	Notes       *string            `json:"notes"`
}
