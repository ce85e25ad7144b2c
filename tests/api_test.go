package tests

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"unimarket/internal/adapter/api"
	"unimarket/internal/adapter/api/handler"
)

func TestHealthCheck(t *testing.T) {
	// Setup
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	healthHandler := handler.NewHealthHandler(nil)

	// Assertions
	if assert.NoError(t, healthHandler.CheckHealth(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "ok")
	}
}

func TestValidatorRejectsOutOfRangeRating(t *testing.T) {
	e := echo.New()
	e.Validator = api.NewValidator()

	body := `{"rating": 9}`
	req := httptest.NewRequest(http.MethodPost, "/v1/services/svc-1/ratings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var payload struct {
		Rating int `json:"rating" validate:"required,min=1,max=5"`
	}
	assert.NoError(t, c.Bind(&payload))
	assert.Error(t, c.Validate(&payload))
}
