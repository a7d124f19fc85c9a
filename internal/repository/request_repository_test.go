package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamsyntaxerror/selyo-api/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var requestSelectColumns = []string{
	"id", "student_id", "request_type", "reason", "documents", "status",
	"admin_comment", "appointment_id", "created_at", "updated_at",
	"student_name", "student_number", "program", "year_level", "student_email",
}

func TestRequestRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO requests")).
		WithArgs(sqlmock.AnyArg(), "student-1", "TOR", "need copy", pq.StringArray{}, "Submitted", "", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewRequestRepository(db)
	request := &models.Request{
		StudentUserID: "student-1",
		RequestType:   "TOR",
		Reason:        "need copy",
		Status:        models.StatusSubmitted,
	}
	require.NoError(t, repo.Create(context.Background(), request))
	assert.NotEmpty(t, request.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepositoryGetByIDWithAppointment(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	apptID := "appt-1"
	yearLevel := 3
	now := time.Now().UTC()
	rows := sqlmock.NewRows(requestSelectColumns).
		AddRow("req-9", "student-1", "Irregular Enrollment", "overlapping schedule", "{\"advising-form.pdf\"}",
			"Appointment Scheduled", "", apptID, now, now,
			"Juan Dela Cruz", "2021-00123", "BSCS", yearLevel, "juan@school.edu")
	mock.ExpectQuery(regexp.QuoteMeta("FROM requests r JOIN users u ON u.id = r.student_id WHERE r.id = $1")).
		WithArgs("req-9").
		WillReturnRows(rows)

	apptRows := sqlmock.NewRows([]string{"id", "request_id", "visit_date", "time_slot", "notes", "status", "created_at"}).
		AddRow(apptID, "req-9", "2024-06-03", "9:00 AM", "bring study plan", "Scheduled", now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, request_id, visit_date, time_slot, notes, status, created_at FROM appointments WHERE request_id = ANY($1)")).
		WithArgs(pq.Array([]string{"req-9"})).
		WillReturnRows(apptRows)

	repo := NewRequestRepository(db)
	request, err := repo.GetByID(context.Background(), "req-9")
	require.NoError(t, err)
	assert.Equal(t, models.StatusAppointmentScheduled, request.Status)
	require.NotNil(t, request.Student)
	assert.Equal(t, "Juan Dela Cruz", request.Student.Name)
	require.NotNil(t, request.Student.YearLevel)
	assert.Equal(t, 3, *request.Student.YearLevel)
	require.NotNil(t, request.Appointment)
	assert.Equal(t, "2024-06-03", request.Appointment.Date)
	assert.Equal(t, "9:00 AM", request.Appointment.TimeSlot)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepositoryListByStatus(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	now := time.Now().UTC()
	rows := sqlmock.NewRows(requestSelectColumns).
		AddRow("req-1", "student-1", "TOR", "need copy", "{}", "Submitted", "", nil, now, now,
			"Juan Dela Cruz", "2021-00123", "BSCS", 3, "juan@school.edu").
		AddRow("req-2", "student-2", "Shifting", "", "{}", "Submitted", "", nil, now, now,
			"Maria Santos", "2022-00456", "BSIT", 2, "maria@school.edu")
	mock.ExpectQuery(regexp.QuoteMeta("WHERE r.status = $1 ORDER BY r.created_at DESC")).
		WithArgs("Submitted").
		WillReturnRows(rows)

	status := models.StatusSubmitted
	repo := NewRequestRepository(db)
	requests, err := repo.List(context.Background(), models.RequestFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, "Maria Santos", requests[1].Student.Name)
	assert.Nil(t, requests[0].Appointment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepositoryUpdateStatus(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE requests SET status = $1, admin_comment = $2, updated_at = $3 WHERE id = $4")).
		WithArgs("Approved", "ok", sqlmock.AnyArg(), "req-9").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewRequestRepository(db)
	affected, err := repo.UpdateStatus(context.Background(), "req-9", models.StatusApproved, "ok")
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepositoryUpdateStatusUnknownID(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE requests SET status")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewRequestRepository(db)
	affected, err := repo.UpdateStatus(context.Background(), "missing", models.StatusApproved, "")
	require.NoError(t, err)
	assert.Zero(t, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}
