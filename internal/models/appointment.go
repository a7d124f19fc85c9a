package models

import "time"

// AppointmentStatus enumerates the states of a scheduled registrar visit.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "Scheduled"
	AppointmentCompleted AppointmentStatus = "Completed"
	AppointmentCancelled AppointmentStatus = "Cancelled"
)

// Appointment is an in-person slot bound one-to-one to a request. Date is a
// calendar day in "2006-01-02" form; the (Date, TimeSlot) pair is globally
// unique so two requests can never hold the same window.
type Appointment struct {
	ID        string            `db:"id" json:"id"`
	RequestID string            `db:"request_id" json:"requestId"`
	Date      string            `db:"visit_date" json:"date"`
	TimeSlot  string            `db:"time_slot" json:"timeSlot"`
	Notes     string            `db:"notes" json:"notes,omitempty"`
	Status    AppointmentStatus `db:"status" json:"status"`
	CreatedAt time.Time         `db:"created_at" json:"createdAt"`
}
