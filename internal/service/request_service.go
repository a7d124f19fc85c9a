package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/teamsyntaxerror/selyo-api/internal/dto"
	"github.com/teamsyntaxerror/selyo-api/internal/models"
	appErrors "github.com/teamsyntaxerror/selyo-api/pkg/errors"
)

type requestRepository interface {
	Create(ctx context.Context, request *models.Request) error
	GetByID(ctx context.Context, id string) (*models.Request, error)
	List(ctx context.Context, filter models.RequestFilter) ([]models.Request, error)
	UpdateStatus(ctx context.Context, id string, status models.RequestStatus, comment string) (int64, error)
}

type typeResolver interface {
	Resolve(ctx context.Context, key string) (*models.RequestType, error)
}

// RequestService handles the registrar request workflow: submission, listing
// and the admin status transition engine.
type RequestService struct {
	repo      requestRepository
	types     typeResolver
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRequestService constructs the service.
func NewRequestService(repo requestRepository, types typeResolver, validate *validator.Validate, logger *zap.Logger) *RequestService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RequestService{repo: repo, types: types, validator: validate, logger: logger}
}

// Create submits a new request for the given student. Requests enter the
// workflow as Submitted. Document uploads are only accepted for types that do
// not require an in-person appointment; appointment types hand documents over
// at the registrar window.
func (s *RequestService) Create(ctx context.Context, studentUserID string, input dto.CreateRequestInput) (*models.Request, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request payload")
	}

	requestType, err := s.types.Resolve(ctx, input.RequestType)
	if err != nil {
		return nil, err
	}
	if requestType.RequiresAppointment && len(input.Documents) > 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "this request type requires an appointment; documents are submitted in person")
	}

	request := &models.Request{
		StudentUserID: studentUserID,
		RequestType:   requestType.Key,
		Reason:        strings.TrimSpace(input.Reason),
		Documents:     pq.StringArray(input.Documents),
		Status:        models.StatusSubmitted,
	}
	if err := s.repo.Create(ctx, request); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create request")
	}

	created, err := s.repo.GetByID(ctx, request.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load created request")
	}
	s.logger.Info("request submitted",
		zap.String("request_id", created.ID),
		zap.String("request_type", created.RequestType),
		zap.String("student_id", studentUserID),
	)
	return created, nil
}

// ListForStudent returns the student's own requests, newest first.
func (s *RequestService) ListForStudent(ctx context.Context, studentUserID string) ([]models.Request, error) {
	requests, err := s.repo.List(ctx, models.RequestFilter{StudentUserID: studentUserID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list requests")
	}
	return requests, nil
}

// ListAll returns every request, optionally filtered by status (admin view).
func (s *RequestService) ListAll(ctx context.Context, status *models.RequestStatus) ([]models.Request, error) {
	if status != nil && !models.ValidStatus(*status) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown status filter")
	}
	requests, err := s.repo.List(ctx, models.RequestFilter{Status: status})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list requests")
	}
	return requests, nil
}

// Get returns one request by id.
func (s *RequestService) Get(ctx context.Context, id string) (*models.Request, error) {
	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load request")
	}
	return request, nil
}

// GetOwned returns one request by id, restricted to its submitting student.
// A foreign id reads as NotFound rather than Forbidden so ids stay opaque.
func (s *RequestService) GetOwned(ctx context.Context, id, studentUserID string) (*models.Request, error) {
	request, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.StudentUserID != studentUserID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "request not found")
	}
	return request, nil
}

// UpdateStatus applies an admin-driven status change. The status must be a
// member of the enumeration and a rejection must carry a reason; on any
// validation failure the request is left untouched. Transitions are otherwise
// unrestricted, including re-applying the current status: the admin comment
// is overwritten on every update.
func (s *RequestService) UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (*models.Request, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid status payload")
	}
	status := models.RequestStatus(req.Status)
	if !models.ValidStatus(status) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown status")
	}
	if status == models.StatusRejected && strings.TrimSpace(req.AdminComment) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "rejection reason is required")
	}

	affected, err := s.repo.UpdateStatus(ctx, id, status, req.AdminComment)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update status")
	}
	if affected == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "request not found")
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info("request status updated",
		zap.String("request_id", id),
		zap.String("status", string(status)),
	)
	return updated, nil
}
