package handler

import (
	"context"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/teamsyntaxerror/selyo-api/internal/dto"
	"github.com/teamsyntaxerror/selyo-api/internal/models"
	"github.com/teamsyntaxerror/selyo-api/pkg/config"
	appErrors "github.com/teamsyntaxerror/selyo-api/pkg/errors"
	"github.com/teamsyntaxerror/selyo-api/pkg/response"
)

type studentRequestService interface {
	Create(ctx context.Context, studentUserID string, input dto.CreateRequestInput) (*models.Request, error)
	ListForStudent(ctx context.Context, studentUserID string) ([]models.Request, error)
	GetOwned(ctx context.Context, id, studentUserID string) (*models.Request, error)
}

type typeCatalogService interface {
	GetTypes(ctx context.Context) (map[string]models.RequestType, error)
}

type announcementFeedService interface {
	List(ctx context.Context) ([]models.Announcement, error)
}

type documentStorage interface {
	SaveUpload(file *multipart.FileHeader) (string, error)
	Delete(name string) error
}

// RequestHandler exposes the student-facing request endpoints.
type RequestHandler struct {
	requests      studentRequestService
	types         typeCatalogService
	announcements announcementFeedService
	storage       documentStorage
	uploads       config.UploadsConfig
	logger        *zap.Logger
}

// NewRequestHandler builds a new handler.
func NewRequestHandler(requests studentRequestService, types typeCatalogService, announcements announcementFeedService, storage documentStorage, uploads config.UploadsConfig, logger *zap.Logger) *RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RequestHandler{
		requests:      requests,
		types:         types,
		announcements: announcements,
		storage:       storage,
		uploads:       uploads,
		logger:        logger,
	}
}

// Types godoc
// @Summary Request type catalog
// @Tags Requests
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /requests/types [get]
func (h *RequestHandler) Types(c *gin.Context) {
	types, err := h.types.GetTypes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"types": types})
}

// List godoc
// @Summary List the caller's requests
// @Tags Requests
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /requests [get]
func (h *RequestHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	requests, err := h.requests.ListForStudent(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if requests == nil {
		requests = []models.Request{}
	}
	response.JSON(c, http.StatusOK, gin.H{"requests": requests})
}

// Get godoc
// @Summary Fetch one of the caller's requests
// @Tags Requests
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} map[string]interface{}
// @Router /requests/{id} [get]
func (h *RequestHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	request, err := h.requests.GetOwned(c.Request.Context(), c.Param("id"), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"request": request})
}

// Announcements godoc
// @Summary List active announcements
// @Tags Requests
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /requests/announcements [get]
func (h *RequestHandler) Announcements(c *gin.Context) {
	announcements, err := h.announcements.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"announcements": announcements})
}

// Create godoc
// @Summary Submit a new request
// @Tags Requests
// @Accept multipart/form-data
// @Produce json
// @Param requestType formData string true "Request type key"
// @Param reason formData string false "Reason"
// @Param documents formData file false "Supporting documents"
// @Success 201 {object} models.Request
// @Router /requests [post]
func (h *RequestHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid multipart payload"))
		return
	}

	input := dto.CreateRequestInput{
		RequestType: c.PostForm("requestType"),
		Reason:      c.PostForm("reason"),
	}

	files := form.File["documents"]
	stored := make([]string, 0, len(files))
	cleanup := func() {
		for _, name := range stored {
			if err := h.storage.Delete(name); err != nil {
				h.logger.Warn("failed to remove orphaned upload", zap.String("file", name), zap.Error(err))
			}
		}
	}
	for _, file := range files {
		if h.uploads.MaxFileSizeBytes > 0 && file.Size > h.uploads.MaxFileSizeBytes {
			cleanup()
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "document exceeds the maximum upload size"))
			return
		}
		if !h.mimeAllowed(file.Header.Get("Content-Type")) {
			cleanup()
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "document type is not accepted"))
			return
		}
		name, err := h.storage.SaveUpload(file)
		if err != nil {
			cleanup()
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store document"))
			return
		}
		stored = append(stored, name)
	}
	input.Documents = stored

	created, err := h.requests.Create(c.Request.Context(), claims.UserID, input)
	if err != nil {
		cleanup()
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

func (h *RequestHandler) mimeAllowed(contentType string) bool {
	if len(h.uploads.AllowedMIMEs) == 0 {
		return true
	}
	for _, allowed := range h.uploads.AllowedMIMEs {
		if contentType == allowed {
			return true
		}
	}
	return false
}
