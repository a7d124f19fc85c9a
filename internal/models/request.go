package models

import (
	"time"

	"github.com/lib/pq"
)

// RequestStatus enumerates the lifecycle states of a registrar request.
type RequestStatus string

const (
	StatusSubmitted            RequestStatus = "Submitted"
	StatusUnderReview          RequestStatus = "Under Review"
	StatusPendingDeanApproval  RequestStatus = "Pending Dean Approval"
	StatusAppointmentScheduled RequestStatus = "Appointment Scheduled"
	StatusApproved             RequestStatus = "Approved"
	StatusReadyForPickup       RequestStatus = "Ready for Pickup"
	StatusReleased             RequestStatus = "Released"
	StatusCompleted            RequestStatus = "Completed"
	StatusRejected             RequestStatus = "Rejected"
)

// ValidStatus reports whether s is a member of the status enumeration.
func ValidStatus(s RequestStatus) bool {
	switch s {
	case StatusSubmitted, StatusUnderReview, StatusPendingDeanApproval,
		StatusAppointmentScheduled, StatusApproved, StatusReadyForPickup,
		StatusReleased, StatusCompleted, StatusRejected:
		return true
	default:
		return false
	}
}

// Request represents a persisted registrar request row. Student and
// Appointment are hydrated by the repository from their own tables.
type Request struct {
	ID            string         `db:"id" json:"id"`
	StudentUserID string         `db:"student_id" json:"-"`
	RequestType   string         `db:"request_type" json:"requestType"`
	Reason        string         `db:"reason" json:"reason,omitempty"`
	Documents     pq.StringArray `db:"documents" json:"documents"`
	Status        RequestStatus  `db:"status" json:"status"`
	AdminComment  string         `db:"admin_comment" json:"adminComment,omitempty"`
	AppointmentID *string        `db:"appointment_id" json:"-"`
	CreatedAt     time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updatedAt"`

	Student     *StudentInfo `db:"-" json:"student,omitempty"`
	Appointment *Appointment `db:"-" json:"appointment,omitempty"`
}

// RequestFilter captures listing criteria for requests.
type RequestFilter struct {
	StudentUserID string
	Status        *RequestStatus
}
