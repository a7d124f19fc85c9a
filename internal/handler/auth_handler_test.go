package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamsyntaxerror/selyo-api/internal/models"
	appErrors "github.com/teamsyntaxerror/selyo-api/pkg/errors"
)

type authServiceStub struct {
	response *models.LoginResponse
	err      error
}

func (s authServiceStub) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

func buildAuthRouter(svc authServiceStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auth/login", NewAuthHandler(svc).Login)
	return router
}

func TestAuthHandlerLogin(t *testing.T) {
	router := buildAuthRouter(authServiceStub{response: &models.LoginResponse{
		AccessToken: "token-123",
		ExpiresIn:   3600,
		User:        models.UserInfo{ID: "user-1", Role: models.RoleStudent},
	}})

	req := jsonRequest(t, http.MethodPost, "/auth/login", `{"email":"juan@school.edu","password":"s3cret"}`)
	resp := performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"token-123"`)
}

func TestAuthHandlerLoginBadJSON(t *testing.T) {
	router := buildAuthRouter(authServiceStub{})

	req := jsonRequest(t, http.MethodPost, "/auth/login", `{"email":`)
	resp := performRequest(router, req)
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestAuthHandlerLoginInvalidCredentials(t *testing.T) {
	router := buildAuthRouter(authServiceStub{err: appErrors.Clone(appErrors.ErrInvalidCredentials, "")})

	req := jsonRequest(t, http.MethodPost, "/auth/login", `{"email":"juan@school.edu","password":"nope"}`)
	resp := performRequest(router, req)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), `"message"`)
}
