package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/teamsyntaxerror/selyo-api/internal/models"
	appErrors "github.com/teamsyntaxerror/selyo-api/pkg/errors"
)

const pgUniqueViolation = "23505"

type bookingMetrics interface {
	RecordSlotConflict()
}

// AppointmentRepository provides persistence for registrar appointments.
type AppointmentRepository struct {
	db      *sqlx.DB
	metrics bookingMetrics
}

// NewAppointmentRepository creates the repository. Metrics may be nil.
func NewAppointmentRepository(db *sqlx.DB, metrics bookingMetrics) *AppointmentRepository {
	return &AppointmentRepository{db: db, metrics: metrics}
}

// BookedSlots returns the time slots already taken on the given date.
// Cancelled appointments release their slot.
func (r *AppointmentRepository) BookedSlots(ctx context.Context, date string) ([]string, error) {
	const query = `SELECT time_slot FROM appointments WHERE visit_date = $1 AND status <> $2`
	var slots []string
	if err := r.db.SelectContext(ctx, &slots, query, date, string(models.AppointmentCancelled)); err != nil {
		return nil, fmt.Errorf("booked slots: %w", err)
	}
	return slots, nil
}

// CreateForRequest inserts the appointment and links it to its request as one
// transaction. The unique index on (visit_date, time_slot) makes exactly one
// of two racing bookings win; the loser gets ErrSlotTaken.
func (r *AppointmentRepository) CreateForRequest(ctx context.Context, appointment *models.Appointment) error {
	if appointment.ID == "" {
		appointment.ID = uuid.NewString()
	}
	if appointment.CreatedAt.IsZero() {
		appointment.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin booking: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const insert = `INSERT INTO appointments (id, request_id, visit_date, time_slot, notes, status, created_at)
VALUES (:id, :request_id, :visit_date, :time_slot, :notes, :status, :created_at)`
	if _, err := tx.NamedExecContext(ctx, insert, appointment); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			if r.metrics != nil {
				r.metrics.RecordSlotConflict()
			}
			return appErrors.Clone(appErrors.ErrSlotTaken, "")
		}
		return fmt.Errorf("create appointment: %w", err)
	}

	const link = `UPDATE requests SET appointment_id = $1, status = $2, updated_at = $3 WHERE id = $4`
	if _, err := tx.ExecContext(ctx, link, appointment.ID, string(models.StatusAppointmentScheduled), time.Now().UTC(), appointment.RequestID); err != nil {
		return fmt.Errorf("link appointment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit booking: %w", err)
	}
	return nil
}

// GetByRequestID returns the appointment bound to a request, if any.
func (r *AppointmentRepository) GetByRequestID(ctx context.Context, requestID string) (*models.Appointment, error) {
	const query = `SELECT id, request_id, visit_date, time_slot, notes, status, created_at FROM appointments WHERE request_id = $1`
	var appointment models.Appointment
	if err := r.db.GetContext(ctx, &appointment, query, requestID); err != nil {
		return nil, err
	}
	return &appointment, nil
}
