package handler

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamsyntaxerror/selyo-api/internal/dto"
	"github.com/teamsyntaxerror/selyo-api/internal/models"
	appErrors "github.com/teamsyntaxerror/selyo-api/pkg/errors"
	"github.com/teamsyntaxerror/selyo-api/pkg/export"
)

type adminServiceStub struct {
	requests   map[string]models.Request
	lastStatus dto.UpdateStatusRequest
	updateErr  error
}

func (s *adminServiceStub) ListAll(ctx context.Context, status *models.RequestStatus) ([]models.Request, error) {
	result := []models.Request{}
	for _, request := range s.requests {
		if status != nil && request.Status != *status {
			continue
		}
		result = append(result, request)
	}
	return result, nil
}

func (s *adminServiceStub) Get(ctx context.Context, id string) (*models.Request, error) {
	request, ok := s.requests[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "request not found")
	}
	return &request, nil
}

func (s *adminServiceStub) UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (*models.Request, error) {
	s.lastStatus = req
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	request, ok := s.requests[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "request not found")
	}
	request.Status = models.RequestStatus(req.Status)
	request.AdminComment = req.AdminComment
	return &request, nil
}

type schedulerStub struct {
	slots       []string
	slotsErr    error
	scheduleErr error
}

func (s schedulerStub) AvailableSlots(ctx context.Context, date string) ([]string, error) {
	if s.slotsErr != nil {
		return nil, s.slotsErr
	}
	return s.slots, nil
}

func (s schedulerStub) Schedule(ctx context.Context, req dto.ScheduleAppointmentRequest) (*models.Appointment, error) {
	if s.scheduleErr != nil {
		return nil, s.scheduleErr
	}
	return &models.Appointment{
		ID:        "appt-1",
		RequestID: req.RequestID,
		Date:      req.Date,
		TimeSlot:  req.TimeSlot,
		Status:    models.AppointmentScheduled,
	}, nil
}

type slipRendererStub struct{}

func (slipRendererStub) Render(slip export.ClaimSlip) ([]byte, error) {
	return []byte("%PDF-1.4"), nil
}

func buildAdminRouter(svc *adminServiceStub, scheduler schedulerStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAdminHandler(svc, scheduler, slipRendererStub{})
	router := gin.New()
	group := router.Group("/admin")
	group.GET("/requests", h.ListRequests)
	group.GET("/requests/:id", h.GetRequest)
	group.PUT("/requests/:id", h.UpdateStatus)
	group.GET("/requests/:id/claim-slip", h.ClaimSlip)
	group.GET("/slots", h.Slots)
	group.POST("/appointments", h.ScheduleAppointment)
	return router
}

func adminRequests() map[string]models.Request {
	return map[string]models.Request{
		"req-9": {ID: "req-9", RequestType: "TOR", Status: models.StatusUnderReview},
	}
}

func jsonRequest(t *testing.T, method, target, body string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, target, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAdminHandlerListRequestsWithStatusFilter(t *testing.T) {
	svc := &adminServiceStub{requests: adminRequests()}
	router := buildAdminRouter(svc, schedulerStub{})

	req, _ := http.NewRequest(http.MethodGet, "/admin/requests?status=Under+Review", nil)
	resp := performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"req-9"`)

	req, _ = http.NewRequest(http.MethodGet, "/admin/requests?status=Rejected", nil)
	resp = performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"requests":[]`)
}

func TestAdminHandlerUpdateStatus(t *testing.T) {
	svc := &adminServiceStub{requests: adminRequests()}
	router := buildAdminRouter(svc, schedulerStub{})

	req := jsonRequest(t, http.MethodPut, "/admin/requests/req-9", `{"status":"Approved","adminComment":"ok"}`)
	resp := performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"status":"Approved"`)
	assert.Equal(t, "ok", svc.lastStatus.AdminComment)
}

func TestAdminHandlerUpdateStatusBadJSON(t *testing.T) {
	router := buildAdminRouter(&adminServiceStub{requests: adminRequests()}, schedulerStub{})

	req := jsonRequest(t, http.MethodPut, "/admin/requests/req-9", `{"status":`)
	resp := performRequest(router, req)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), `"message"`)
}

func TestAdminHandlerSlotsRequiresDate(t *testing.T) {
	router := buildAdminRouter(&adminServiceStub{}, schedulerStub{})

	req, _ := http.NewRequest(http.MethodGet, "/admin/slots", nil)
	resp := performRequest(router, req)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "date query parameter is required")
}

func TestAdminHandlerSlots(t *testing.T) {
	router := buildAdminRouter(&adminServiceStub{}, schedulerStub{slots: []string{"9:00 AM", "10:00 AM"}})

	req, _ := http.NewRequest(http.MethodGet, "/admin/slots?date=2024-06-03", nil)
	resp := performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"availableSlots":["9:00 AM","10:00 AM"]`)
}

func TestAdminHandlerScheduleAppointment(t *testing.T) {
	router := buildAdminRouter(&adminServiceStub{}, schedulerStub{})

	req := jsonRequest(t, http.MethodPost, "/admin/appointments", `{"requestId":"req-9","date":"2024-06-03","timeSlot":"9:00 AM"}`)
	resp := performRequest(router, req)
	require.Equal(t, http.StatusCreated, resp.Code)
	assert.Contains(t, resp.Body.String(), `"appointment"`)
	assert.Contains(t, resp.Body.String(), `"timeSlot":"9:00 AM"`)
}

func TestAdminHandlerScheduleAppointmentSlotTaken(t *testing.T) {
	router := buildAdminRouter(&adminServiceStub{}, schedulerStub{scheduleErr: appErrors.Clone(appErrors.ErrSlotTaken, "")})

	req := jsonRequest(t, http.MethodPost, "/admin/appointments", `{"requestId":"req-9","date":"2024-06-03","timeSlot":"9:00 AM"}`)
	resp := performRequest(router, req)
	require.Equal(t, http.StatusConflict, resp.Code)
	assert.Contains(t, resp.Body.String(), appErrors.ErrSlotTaken.Code)
}

func TestAdminHandlerClaimSlip(t *testing.T) {
	router := buildAdminRouter(&adminServiceStub{requests: adminRequests()}, schedulerStub{})

	req, _ := http.NewRequest(http.MethodGet, "/admin/requests/req-9/claim-slip", nil)
	resp := performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "application/pdf", resp.Header().Get("Content-Type"))
	assert.Contains(t, resp.Header().Get("Content-Disposition"), "claim-slip-req-9.pdf")
	assert.True(t, bytes.HasPrefix(resp.Body.Bytes(), []byte("%PDF")))
}
