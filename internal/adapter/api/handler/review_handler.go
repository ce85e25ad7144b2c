package handler

import (
	"github.com/labstack/echo/v4"

	"unimarket/internal/usecase"
	"unimarket/pkg/errors"
	"unimarket/pkg/response"
	"unimarket/pkg/utils"
)

type ReviewHandler struct {
	ratingUseCase *usecase.RatingUseCase
}

func NewReviewHandler(ratingUseCase *usecase.RatingUseCase) *ReviewHandler {
	return &ReviewHandler{
		ratingUseCase: ratingUseCase,
	}
}

type submitRatingRequest struct {
	Rating       int    `json:"rating" validate:"required,min=1,max=5"`
	UserName     string `json:"user_name,omitempty"`
	UserPhotoURL string `json:"user_photo_url,omitempty"`
}

// SubmitRating handles POST /v1/:kind/:id/ratings where kind is "services"
// or "products".
func (h *ReviewHandler) SubmitRating(c echo.Context) error {
	kind := c.Param("kind")
	itemID := c.Param("id")
	if itemID == "" {
		return response.Error(c, errors.BadRequest("Item ID is required", nil))
	}

	var req submitRatingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	review, err := h.ratingUseCase.SubmitRating(c.Request().Context(), kind, itemID, userID, usecase.SubmitRatingInput{
		Rating:       req.Rating,
		UserName:     req.UserName,
		UserPhotoURL: req.UserPhotoURL,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, review)
}

// ListRatings handles GET /v1/:kind/:id/ratings.
func (h *ReviewHandler) ListRatings(c echo.Context) error {
	kind := c.Param("kind")
	itemID := c.Param("id")
	if itemID == "" {
		return response.Error(c, errors.BadRequest("Item ID is required", nil))
	}

	pagination := utils.GetPaginationParams(c)

	reviews, total, err := h.ratingUseCase.ListItemReviews(
		c.Request().Context(),
		kind,
		itemID,
		pagination.Page,
		pagination.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, reviews, total, pagination.Page, pagination.PageSize)
}
