package models

import "github.com/lib/pq"

// RequestType describes a category of registrar request and its requirements.
// The catalog is keyed by RequestType.Key; requests reference types by key.
type RequestType struct {
	Key                 string         `db:"key" json:"-"`
	Label               string         `db:"label" json:"label"`
	RequiresAppointment bool           `db:"requires_appointment" json:"requiresAppointment"`
	RequiredDocuments   pq.StringArray `db:"required_documents" json:"requiredDocuments"`
	Position            int            `db:"position" json:"-"`
}
