package handler

import (
	"github.com/labstack/echo/v4"

	"unimarket/internal/usecase"
	"unimarket/pkg/errors"
	"unimarket/pkg/response"
	"unimarket/pkg/utils"
)

type PremiumHandler struct {
	premiumUseCase *usecase.PremiumUseCase
}

func NewPremiumHandler(premiumUseCase *usecase.PremiumUseCase) *PremiumHandler {
	return &PremiumHandler{
		premiumUseCase: premiumUseCase,
	}
}

type premiumRequestRequest struct {
	ScreenshotURL string `json:"screenshot_url" validate:"required,url"`
	Note          string `json:"note,omitempty"`
}

func (h *PremiumHandler) SubmitRequest(c echo.Context) error {
	var req premiumRequestRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	request, err := h.premiumUseCase.SubmitRequest(c.Request().Context(), userID, req.ScreenshotURL, req.Note)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, request)
}

func (h *PremiumHandler) ListMyRequests(c echo.Context) error {
	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	requests, total, err := h.premiumUseCase.ListMyRequests(c.Request().Context(), userID, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, requests, total, pagination.Page, pagination.PageSize)
}

// Admin handlers

func (h *PremiumHandler) ListRequests(c echo.Context) error {
	status := c.QueryParam("status")
	pagination := utils.GetPaginationParams(c)

	requests, total, err := h.premiumUseCase.ListRequests(c.Request().Context(), status, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, requests, total, pagination.Page, pagination.PageSize)
}

type resolvePremiumRequest struct {
	Decision  string `json:"decision" validate:"required,oneof=approved rejected"`
	AdminNote string `json:"admin_note,omitempty"`
}

func (h *PremiumHandler) ResolveRequest(c echo.Context) error {
	requestID := c.Param("id")
	if requestID == "" {
		return response.Error(c, errors.BadRequest("Request ID is required", nil))
	}

	var req resolvePremiumRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	adminID := c.Get("uid").(string)

	request, err := h.premiumUseCase.Resolve(c.Request().Context(), adminID, requestID, req.Decision, req.AdminNote)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, request)
}
