package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/teamsyntaxerror/selyo-api/internal/models"
)

// AnnouncementRepository provides read access to registrar announcements.
type AnnouncementRepository struct {
	db *sqlx.DB
}

// NewAnnouncementRepository creates the repository.
func NewAnnouncementRepository(db *sqlx.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

// ListActive returns the full active set, newest first.
func (r *AnnouncementRepository) ListActive(ctx context.Context) ([]models.Announcement, error) {
	const query = `SELECT id, type, title, message, active, created_at
FROM announcements WHERE active ORDER BY created_at DESC`
	var announcements []models.Announcement
	if err := r.db.SelectContext(ctx, &announcements, query); err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	return announcements, nil
}
