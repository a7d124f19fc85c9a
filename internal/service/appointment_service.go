package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/teamsyntaxerror/selyo-api/internal/dto"
	"github.com/teamsyntaxerror/selyo-api/internal/models"
	appErrors "github.com/teamsyntaxerror/selyo-api/pkg/errors"
)

const visitDateLayout = "2006-01-02"

type appointmentRepository interface {
	BookedSlots(ctx context.Context, date string) ([]string, error)
	CreateForRequest(ctx context.Context, appointment *models.Appointment) error
}

type requestLoader interface {
	Get(ctx context.Context, id string) (*models.Request, error)
}

// AppointmentService computes availability and books registrar visits for
// appointment-requiring request types.
type AppointmentService struct {
	repo         appointmentRepository
	requests     requestLoader
	types        typeResolver
	slotCatalog  []string
	openWeekends bool
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewAppointmentService constructs the service. slotCatalog is the ordered
// business-hour slot list from configuration.
func NewAppointmentService(repo appointmentRepository, requests requestLoader, types typeResolver, slotCatalog []string, openWeekends bool, validate *validator.Validate, logger *zap.Logger) *AppointmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AppointmentService{
		repo:         repo,
		requests:     requests,
		types:        types,
		slotCatalog:  slotCatalog,
		openWeekends: openWeekends,
		validator:    validate,
		logger:       logger,
	}
}

// AvailableSlots returns the unbooked slots for a date in catalog order. A
// closed date yields an empty list, not an error.
func (s *AppointmentService) AvailableSlots(ctx context.Context, date string) ([]string, error) {
	day, err := time.Parse(visitDateLayout, date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must use the YYYY-MM-DD format")
	}
	if !s.openWeekends && (day.Weekday() == time.Saturday || day.Weekday() == time.Sunday) {
		return []string{}, nil
	}

	booked, err := s.repo.BookedSlots(ctx, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load booked slots")
	}
	taken := make(map[string]struct{}, len(booked))
	for _, slot := range booked {
		taken[slot] = struct{}{}
	}

	available := make([]string, 0, len(s.slotCatalog))
	for _, slot := range s.slotCatalog {
		if _, ok := taken[slot]; !ok {
			available = append(available, slot)
		}
	}
	return available, nil
}

// Schedule books a slot for a request and links the two atomically. The slot
// list a client fetched earlier is advisory only: availability is re-checked
// here and the insert itself is guarded by a unique index, so of two racing
// admins exactly one wins and the other sees a Conflict.
func (s *AppointmentService) Schedule(ctx context.Context, req dto.ScheduleAppointmentRequest) (*models.Appointment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid appointment payload")
	}

	request, err := s.requests.Get(ctx, req.RequestID)
	if err != nil {
		return nil, err
	}

	requestType, err := s.types.Resolve(ctx, request.RequestType)
	if err != nil {
		return nil, err
	}
	if !requestType.RequiresAppointment {
		return nil, appErrors.Clone(appErrors.ErrValidation, "this request type does not require an appointment")
	}
	if request.AppointmentID != nil || request.Appointment != nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "request already has an appointment")
	}

	available, err := s.AvailableSlots(ctx, req.Date)
	if err != nil {
		return nil, err
	}
	found := false
	for _, slot := range available {
		if slot == req.TimeSlot {
			found = true
			break
		}
	}
	if !found {
		if s.inCatalog(req.TimeSlot) {
			return nil, appErrors.Clone(appErrors.ErrSlotTaken, "")
		}
		return nil, appErrors.Clone(appErrors.ErrValidation, "time slot is not offered on this date")
	}

	appointment := &models.Appointment{
		RequestID: request.ID,
		Date:      req.Date,
		TimeSlot:  req.TimeSlot,
		Notes:     req.Notes,
		Status:    models.AppointmentScheduled,
	}
	if err := s.repo.CreateForRequest(ctx, appointment); err != nil {
		var appErr = appErrors.FromError(err)
		if appErr.Code == appErrors.ErrSlotTaken.Code {
			return nil, err
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to schedule appointment")
	}

	s.logger.Info("appointment scheduled",
		zap.String("request_id", request.ID),
		zap.String("date", req.Date),
		zap.String("time_slot", req.TimeSlot),
	)
	return appointment, nil
}

func (s *AppointmentService) inCatalog(slot string) bool {
	for _, candidate := range s.slotCatalog {
		if candidate == slot {
			return true
		}
	}
	return false
}
