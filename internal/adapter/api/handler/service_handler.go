package handler

import (
	"github.com/labstack/echo/v4"

	"unimarket/internal/usecase"
	"unimarket/pkg/errors"
	"unimarket/pkg/response"
	"unimarket/pkg/utils"
)

type ServiceHandler struct {
	serviceUseCase *usecase.ServiceUseCase
}

func NewServiceHandler(serviceUseCase *usecase.ServiceUseCase) *ServiceHandler {
	return &ServiceHandler{
		serviceUseCase: serviceUseCase,
	}
}

type serviceRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Price       float64  `json:"price" validate:"required,min=0"`
	PriceUnit   string   `json:"price_unit,omitempty" validate:"omitempty,oneof=hour session fixed"`
	ImageURLs   []string `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
}

func (h *ServiceHandler) CreateService(c echo.Context) error {
	var req serviceRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	service, err := h.serviceUseCase.CreateService(c.Request().Context(), userID, usecase.ServiceInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		PriceUnit:   req.PriceUnit,
		ImageURLs:   req.ImageURLs,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, service)
}

func (h *ServiceHandler) GetService(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return response.Error(c, errors.BadRequest("Service ID is required", nil))
	}

	service, err := h.serviceUseCase.GetService(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, service)
}

func (h *ServiceHandler) ListServices(c echo.Context) error {
	category := c.QueryParam("category")
	sort := c.QueryParam("sort")
	pagination := utils.GetPaginationParams(c)

	services, total, err := h.serviceUseCase.ListServices(c.Request().Context(), category, sort, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, services, total, pagination.Page, pagination.PageSize)
}

func (h *ServiceHandler) SearchServices(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return response.Error(c, errors.BadRequest("Search query is required", nil))
	}
	pagination := utils.GetPaginationParams(c)

	services, total, err := h.serviceUseCase.SearchServices(c.Request().Context(), query, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, services, total, pagination.Page, pagination.PageSize)
}

func (h *ServiceHandler) ListMyServices(c echo.Context) error {
	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	services, total, err := h.serviceUseCase.ListMyServices(c.Request().Context(), userID, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, services, total, pagination.Page, pagination.PageSize)
}

func (h *ServiceHandler) UpdateService(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return response.Error(c, errors.BadRequest("Service ID is required", nil))
	}

	var req serviceRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	service, err := h.serviceUseCase.UpdateService(c.Request().Context(), userID, id, usecase.ServiceInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		PriceUnit:   req.PriceUnit,
		ImageURLs:   req.ImageURLs,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, service)
}

func (h *ServiceHandler) DeleteService(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return response.Error(c, errors.BadRequest("Service ID is required", nil))
	}

	userID := c.Get("uid").(string)

	if err := h.serviceUseCase.DeleteService(c.Request().Context(), userID, id); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Service deleted"})
}

// Admin handler

func (h *ServiceHandler) RemoveService(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return response.Error(c, errors.BadRequest("Service ID is required", nil))
	}

	if err := h.serviceUseCase.RemoveService(c.Request().Context(), id); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Service removed"})
}
