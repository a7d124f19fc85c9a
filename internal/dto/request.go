package dto

// UpdateStatusRequest is the admin payload driving the status workflow.
type UpdateStatusRequest struct {
	Status       string `json:"status" validate:"required"`
	AdminComment string `json:"adminComment"`
}

// CreateRequestInput carries the multipart form fields of a new request.
// Documents are the stored file names, resolved by the handler after upload.
type CreateRequestInput struct {
	RequestType string   `validate:"required"`
	Reason      string   `validate:"max=2000"`
	Documents   []string `validate:"max=10"`
}
