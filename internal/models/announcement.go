package models

import "time"

// AnnouncementType drives banner styling on the student dashboard.
type AnnouncementType string

const (
	AnnouncementUrgent  AnnouncementType = "urgent"
	AnnouncementWarning AnnouncementType = "warning"
	AnnouncementInfo    AnnouncementType = "info"
)

// Announcement is a read-only broadcast shown to students.
type Announcement struct {
	ID        string           `db:"id" json:"id"`
	Type      AnnouncementType `db:"type" json:"type"`
	Title     string           `db:"title" json:"title"`
	Message   string           `db:"message" json:"message"`
	Active    bool             `db:"active" json:"-"`
	CreatedAt time.Time        `db:"created_at" json:"createdAt"`
}
