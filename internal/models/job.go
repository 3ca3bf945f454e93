package models

import "time"

// JobType is the employment type of a job posting
type JobType string

// Job types
const (
	JobTypeFullTime JobType = "Full-time"
	JobTypePartTime JobType = "Part-time"
	JobTypeContract JobType = "Contract"
)

// Valid reports whether the job type is one of the known types
// The empty value is valid because the field is optional
func (t JobType) Valid() bool {
	switch t {
	case "", JobTypeFullTime, JobTypePartTime, JobTypeContract:
		return true
	}
	return false
}

// Job represents an admin-managed job posting
type Job struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	Company             string    `json:"company"`
	Description         string    `json:"description,omitempty"`
	Location            string    `json:"location,omitempty"`
	JobType             JobType   `json:"jobType,omitempty"`
	SalaryRange         string    `json:"salaryRange,omitempty"`
	Requirements        string    `json:"requirements,omitempty"`
	PostedDate          Date      `json:"postedDate"`
	ApplicationDeadline Date      `json:"applicationDeadline"`
	IsActive            bool      `json:"isActive"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// CreateJobRequest is the payload for POST /jobs
type CreateJobRequest struct {
	Title               string  `json:"title"`
	Company             string  `json:"company"`
	Description         string  `json:"description"`
	Location            string  `json:"location"`
	JobType             JobType `json:"jobType"`
	SalaryRange         string  `json:"salaryRange"`
	Requirements        string  `json:"requirements"`
	PostedDate          Date    `json:"postedDate"`
	ApplicationDeadline Date    `json:"applicationDeadline"`
	IsActive            *bool   `json:"isActive"`
}

// UpdateJobRequest is the payload for PATCH /jobs/{id}
// Nil fields are left unchanged
type UpdateJobRequest struct {
	Title               *string  `json:"title"`
	Company             *string  `json:"company"`
	Description         *string  `json:"description"`
	Location            *string  `json:"location"`
	JobType             *JobType `json:"jobType"`
	SalaryRange         *string  `json:"salaryRange"`
	Requirements        *string  `json:"requirements"`
	PostedDate          *Date    `json:"postedDate"`
	ApplicationDeadline *Date    `json:"applicationDeadline"`
	IsActive            *bool    `json:"isActive"`
}
