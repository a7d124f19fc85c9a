package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teamsyntaxerror/selyo-api/internal/dto"
	"github.com/teamsyntaxerror/selyo-api/internal/models"
	appErrors "github.com/teamsyntaxerror/selyo-api/pkg/errors"
	"github.com/teamsyntaxerror/selyo-api/pkg/export"
	"github.com/teamsyntaxerror/selyo-api/pkg/response"
)

type adminRequestService interface {
	ListAll(ctx context.Context, status *models.RequestStatus) ([]models.Request, error)
	Get(ctx context.Context, id string) (*models.Request, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (*models.Request, error)
}

type schedulerService interface {
	AvailableSlots(ctx context.Context, date string) ([]string, error)
	Schedule(ctx context.Context, req dto.ScheduleAppointmentRequest) (*models.Appointment, error)
}

type claimSlipRenderer interface {
	Render(slip export.ClaimSlip) ([]byte, error)
}

// AdminHandler exposes the admin review endpoints.
type AdminHandler struct {
	requests  adminRequestService
	scheduler schedulerService
	slips     claimSlipRenderer
}

// NewAdminHandler builds a new handler.
func NewAdminHandler(requests adminRequestService, scheduler schedulerService, slips claimSlipRenderer) *AdminHandler {
	return &AdminHandler{requests: requests, scheduler: scheduler, slips: slips}
}

// ListRequests godoc
// @Summary List all requests
// @Tags Admin
// @Produce json
// @Param status query string false "Status filter"
// @Success 200 {object} map[string]interface{}
// @Router /admin/requests [get]
func (h *AdminHandler) ListRequests(c *gin.Context) {
	var status *models.RequestStatus
	if raw := c.Query("status"); raw != "" {
		s := models.RequestStatus(raw)
		status = &s
	}
	requests, err := h.requests.ListAll(c.Request.Context(), status)
	if err != nil {
		response.Error(c, err)
		return
	}
	if requests == nil {
		requests = []models.Request{}
	}
	response.JSON(c, http.StatusOK, gin.H{"requests": requests})
}

// GetRequest godoc
// @Summary Fetch one request
// @Tags Admin
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} map[string]interface{}
// @Router /admin/requests/{id} [get]
func (h *AdminHandler) GetRequest(c *gin.Context) {
	request, err := h.requests.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"request": request})
}

// UpdateStatus godoc
// @Summary Update a request's status
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param payload body dto.UpdateStatusRequest true "Status payload"
// @Success 200 {object} map[string]interface{}
// @Router /admin/requests/{id} [put]
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid status payload"))
		return
	}
	request, err := h.requests.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"request": request})
}

// Slots godoc
// @Summary Available appointment slots for a date
// @Tags Admin
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Router /admin/slots [get]
func (h *AdminHandler) Slots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date query parameter is required"))
		return
	}
	slots, err := h.scheduler.AvailableSlots(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"availableSlots": slots})
}

// ScheduleAppointment godoc
// @Summary Schedule an appointment for a request
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body dto.ScheduleAppointmentRequest true "Appointment payload"
// @Success 201 {object} map[string]interface{}
// @Router /admin/appointments [post]
func (h *AdminHandler) ScheduleAppointment(c *gin.Context) {
	var req dto.ScheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid appointment payload"))
		return
	}
	appointment, err := h.scheduler.Schedule(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"appointment": appointment})
}

// ClaimSlip godoc
// @Summary Download the printable claim slip for a request
// @Tags Admin
// @Produce application/pdf
// @Param id path string true "Request ID"
// @Success 200 {file} binary
// @Router /admin/requests/{id}/claim-slip [get]
func (h *AdminHandler) ClaimSlip(c *gin.Context) {
	request, err := h.requests.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	slip := export.ClaimSlip{
		RequestID:   request.ID,
		RequestType: request.RequestType,
		Status:      string(request.Status),
		CreatedAt:   request.CreatedAt,
		AdminNote:   request.AdminComment,
	}
	if request.Student != nil {
		slip.StudentName = request.Student.Name
		if request.Student.StudentID != nil {
			slip.StudentID = *request.Student.StudentID
		}
		if request.Student.Program != nil {
			slip.Program = *request.Student.Program
		}
	}
	if request.Appointment != nil {
		slip.Appointment = fmt.Sprintf("%s %s", request.Appointment.Date, request.Appointment.TimeSlot)
	}

	pdf, err := h.slips.Render(slip)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render claim slip"))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=claim-slip-%s.pdf", request.ID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
