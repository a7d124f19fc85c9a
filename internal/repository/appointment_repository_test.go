package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamsyntaxerror/selyo-api/internal/models"
	appErrors "github.com/teamsyntaxerror/selyo-api/pkg/errors"
)

func TestAppointmentRepositoryBookedSlots(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"time_slot"}).AddRow("9:00 AM").AddRow("1:00 PM")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT time_slot FROM appointments WHERE visit_date = $1 AND status <> $2")).
		WithArgs("2024-06-03", "Cancelled").
		WillReturnRows(rows)

	repo := NewAppointmentRepository(db, nil)
	slots, err := repo.BookedSlots(context.Background(), "2024-06-03")
	require.NoError(t, err)
	assert.Equal(t, []string{"9:00 AM", "1:00 PM"}, slots)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentRepositoryCreateForRequest(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO appointments")).
		WithArgs(sqlmock.AnyArg(), "req-9", "2024-06-03", "9:00 AM", "bring study plan", "Scheduled", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE requests SET appointment_id = $1, status = $2, updated_at = $3 WHERE id = $4")).
		WithArgs(sqlmock.AnyArg(), "Appointment Scheduled", sqlmock.AnyArg(), "req-9").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewAppointmentRepository(db, nil)
	appointment := &models.Appointment{
		RequestID: "req-9",
		Date:      "2024-06-03",
		TimeSlot:  "9:00 AM",
		Notes:     "bring study plan",
		Status:    models.AppointmentScheduled,
	}
	require.NoError(t, repo.CreateForRequest(context.Background(), appointment))
	assert.NotEmpty(t, appointment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

type conflictRecorder struct {
	count int
}

func (r *conflictRecorder) RecordSlotConflict() { r.count++ }

func TestAppointmentRepositoryCreateForRequestSlotTaken(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO appointments")).
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	recorder := &conflictRecorder{}
	repo := NewAppointmentRepository(db, recorder)
	err := repo.CreateForRequest(context.Background(), &models.Appointment{
		RequestID: "req-9",
		Date:      "2024-06-03",
		TimeSlot:  "9:00 AM",
		Status:    models.AppointmentScheduled,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSlotTaken.Code, appErrors.FromError(err).Code)
	assert.Equal(t, 1, recorder.count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
