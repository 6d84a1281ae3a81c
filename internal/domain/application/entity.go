package application

import (
	"errors"
	"time"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusAccepted Status = "Accepted"
	StatusRejected Status = "Rejected"
)

var ErrInvalidStatus = errors.New("invalid application status")

// ParseStatus accepts exactly the three stored values. Any status may move to
// any other.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusAccepted, StatusRejected:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

type Application struct {
	ID          int64
	JobID       int64
	ApplicantID int64
	Status      Status
	AppliedAt   time.Time
}

// Scoped is an application loaded together with the owner of its job, read in
// the same statement so ownership checks see current data.
type Scoped struct {
	Application
	JobCompanyID int64
}

type Detail struct {
	Application
	ApplicantName     string
	ApplicantEmail    *string
	ApplicantPhotoURL *string
	ResumeURL         *string
	JobTitle          string
	JobLocation       string
	CompanyID         int64
	CompanyName       string
}
