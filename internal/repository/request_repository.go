package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/teamsyntaxerror/selyo-api/internal/models"
)

// RequestRepository provides persistence for registrar requests.
type RequestRepository struct {
	db *sqlx.DB
}

// NewRequestRepository creates the repository.
func NewRequestRepository(db *sqlx.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// requestRow joins a request with the submitting student's profile snapshot.
type requestRow struct {
	models.Request
	models.StudentInfo
}

const requestColumns = `r.id, r.student_id, r.request_type, r.reason, r.documents, r.status, r.admin_comment, r.appointment_id, r.created_at, r.updated_at,
u.full_name AS student_name, u.student_number, u.program, u.year_level, u.email AS student_email`

// Create inserts a new request.
func (r *RequestRepository) Create(ctx context.Context, request *models.Request) error {
	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if request.CreatedAt.IsZero() {
		request.CreatedAt = now
	}
	request.UpdatedAt = now
	if request.Documents == nil {
		request.Documents = pq.StringArray{}
	}
	query := `INSERT INTO requests (id, student_id, request_type, reason, documents, status, admin_comment, created_at, updated_at)
VALUES (:id, :student_id, :request_type, :reason, :documents, :status, :admin_comment, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, request); err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return nil
}

// GetByID returns a request with its student snapshot and appointment.
func (r *RequestRepository) GetByID(ctx context.Context, id string) (*models.Request, error) {
	query := fmt.Sprintf(`SELECT %s FROM requests r JOIN users u ON u.id = r.student_id WHERE r.id = $1`, requestColumns)
	var row requestRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	request := row.Request
	student := row.StudentInfo
	request.Student = &student
	if err := r.attachAppointments(ctx, []*models.Request{&request}); err != nil {
		return nil, err
	}
	return &request, nil
}

// List returns requests matching the filter, newest first.
func (r *RequestRepository) List(ctx context.Context, filter models.RequestFilter) ([]models.Request, error) {
	query := fmt.Sprintf(`SELECT %s FROM requests r JOIN users u ON u.id = r.student_id`, requestColumns)
	where := ""
	args := []interface{}{}
	if filter.StudentUserID != "" {
		args = append(args, filter.StudentUserID)
		where = fmt.Sprintf(" WHERE r.student_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		clause := fmt.Sprintf("r.status = $%d", len(args))
		if where == "" {
			where = " WHERE " + clause
		} else {
			where += " AND " + clause
		}
	}
	query += where + " ORDER BY r.created_at DESC"

	var rows []requestRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}

	requests := make([]models.Request, len(rows))
	refs := make([]*models.Request, len(rows))
	for i := range rows {
		requests[i] = rows[i].Request
		student := rows[i].StudentInfo
		requests[i].Student = &student
		refs[i] = &requests[i]
	}
	if err := r.attachAppointments(ctx, refs); err != nil {
		return nil, err
	}
	return requests, nil
}

// UpdateStatus overwrites the status and admin comment of a request. The
// returned count is zero when the id is unknown.
func (r *RequestRepository) UpdateStatus(ctx context.Context, id string, status models.RequestStatus, comment string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE requests SET status = $1, admin_comment = $2, updated_at = $3 WHERE id = $4`,
		string(status), comment, time.Now().UTC(), id)
	if err != nil {
		return 0, fmt.Errorf("update request status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update request status: %w", err)
	}
	return affected, nil
}

func (r *RequestRepository) attachAppointments(ctx context.Context, requests []*models.Request) error {
	ids := make([]string, 0, len(requests))
	byID := make(map[string]*models.Request, len(requests))
	for _, request := range requests {
		if request.AppointmentID == nil {
			continue
		}
		ids = append(ids, request.ID)
		byID[request.ID] = request
	}
	if len(ids) == 0 {
		return nil
	}
	const query = `SELECT id, request_id, visit_date, time_slot, notes, status, created_at FROM appointments WHERE request_id = ANY($1)`
	var appointments []models.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, pq.Array(ids)); err != nil {
		return fmt.Errorf("load appointments: %w", err)
	}
	for i := range appointments {
		if request, ok := byID[appointments[i].RequestID]; ok {
			request.Appointment = &appointments[i]
		}
	}
	return nil
}
