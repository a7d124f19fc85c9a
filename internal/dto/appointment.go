package dto

// ScheduleAppointmentRequest is the admin payload booking a slot for a
// request. Date uses the "2006-01-02" form sent by the portal date picker.
type ScheduleAppointmentRequest struct {
	RequestID string `json:"requestId" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot  string `json:"timeSlot" validate:"required"`
	Notes     string `json:"notes" validate:"max=1000"`
}
