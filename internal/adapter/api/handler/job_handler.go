package handler

import (
	"github.com/labstack/echo/v4"

	"unimarket/internal/usecase"
	"unimarket/pkg/errors"
	"unimarket/pkg/response"
	"unimarket/pkg/utils"
)

type JobHandler struct {
	jobUseCase *usecase.JobUseCase
}

func NewJobHandler(jobUseCase *usecase.JobUseCase) *JobHandler {
	return &JobHandler{
		jobUseCase: jobUseCase,
	}
}

type jobRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Location    string  `json:"location,omitempty"`
	Pay         float64 `json:"pay" validate:"required,min=0"`
	PayUnit     string  `json:"pay_unit,omitempty" validate:"omitempty,oneof=hour day fixed"`
}

func (h *JobHandler) CreateJob(c echo.Context) error {
	var req jobRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	job, err := h.jobUseCase.CreateJob(c.Request().Context(), userID, usecase.JobInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Pay:         req.Pay,
		PayUnit:     req.PayUnit,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, job)
}

func (h *JobHandler) GetJob(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return response.Error(c, errors.BadRequest("Job ID is required", nil))
	}

	job, err := h.jobUseCase.GetJob(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, job)
}

func (h *JobHandler) ListJobs(c echo.Context) error {
	category := c.QueryParam("category")
	pagination := utils.GetPaginationParams(c)

	jobs, total, err := h.jobUseCase.ListJobs(c.Request().Context(), category, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, jobs, total, pagination.Page, pagination.PageSize)
}

func (h *JobHandler) ListMyJobs(c echo.Context) error {
	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	jobs, total, err := h.jobUseCase.ListMyJobs(c.Request().Context(), userID, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, jobs, total, pagination.Page, pagination.PageSize)
}

func (h *JobHandler) CloseJob(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return response.Error(c, errors.BadRequest("Job ID is required", nil))
	}

	userID := c.Get("uid").(string)

	job, err := h.jobUseCase.CloseJob(c.Request().Context(), userID, id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, job)
}

type applyRequest struct {
	Message      string `json:"message,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty"`
}

func (h *JobHandler) Apply(c echo.Context) error {
	jobID := c.Param("id")
	if jobID == "" {
		return response.Error(c, errors.BadRequest("Job ID is required", nil))
	}

	var req applyRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	application, err := h.jobUseCase.Apply(c.Request().Context(), userID, jobID, usecase.ApplyInput{
		Message:      req.Message,
		ContactPhone: req.ContactPhone,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, application)
}

func (h *JobHandler) Withdraw(c echo.Context) error {
	jobID := c.Param("id")
	if jobID == "" {
		return response.Error(c, errors.BadRequest("Job ID is required", nil))
	}

	userID := c.Get("uid").(string)

	application, err := h.jobUseCase.Withdraw(c.Request().Context(), userID, jobID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, application)
}

func (h *JobHandler) ListApplicants(c echo.Context) error {
	jobID := c.Param("id")
	if jobID == "" {
		return response.Error(c, errors.BadRequest("Job ID is required", nil))
	}

	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	applications, total, err := h.jobUseCase.ListApplicants(c.Request().Context(), userID, jobID, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, applications, total, pagination.Page, pagination.PageSize)
}

func (h *JobHandler) ListMyApplications(c echo.Context) error {
	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	applications, total, err := h.jobUseCase.ListMyApplications(c.Request().Context(), userID, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, applications, total, pagination.Page, pagination.PageSize)
}
