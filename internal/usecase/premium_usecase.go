package usecase

import (
	"context"
	"time"

	"unimarket/internal/domain/entity"
	"unimarket/internal/domain/repository"
	"unimarket/pkg/errors"
	"unimarket/pkg/logger"
)

// PremiumUseCase runs the manual payment-verification workflow: a user
// uploads a transfer screenshot and submits a request; an admin reviews the
// screenshot and approves or rejects. Approval flips the user's premium flag.
type PremiumUseCase struct {
	premiumRepo repository.PremiumRequestRepository
	userRepo    repository.UserRepository
}

func NewPremiumUseCase(premiumRepo repository.PremiumRequestRepository, userRepo repository.UserRepository) *PremiumUseCase {
	return &PremiumUseCase{
		premiumRepo: premiumRepo,
		userRepo:    userRepo,
	}
}

func (uc *PremiumUseCase) SubmitRequest(ctx context.Context, userID, screenshotURL, note string) (*entity.PremiumRequest, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Premium {
		return nil, errors.BadRequest("Account is already premium", nil)
	}

	pending, err := uc.premiumRepo.GetPendingByUserID(ctx, userID)
	if err == nil && pending != nil {
		return nil, errors.Conflict("PENDING_REQUEST", "A premium request is already pending review")
	}

	request := &entity.PremiumRequest{
		UserID:        userID,
		UserEmail:     user.Email,
		ScreenshotURL: screenshotURL,
		Note:          note,
		Status:        "pending",
	}

	if err := uc.premiumRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	return request, nil
}

func (uc *PremiumUseCase) ListMyRequests(ctx context.Context, userID string, page, limit int) ([]*entity.PremiumRequest, int64, error) {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	return uc.premiumRepo.ListByUserID(ctx, userID, limit, offset)
}

// Admin methods

func (uc *PremiumUseCase) ListRequests(ctx context.Context, status string, page, limit int) ([]*entity.PremiumRequest, int64, error) {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	return uc.premiumRepo.ListByStatus(ctx, status, limit, offset)
}

func (uc *PremiumUseCase) Resolve(ctx context.Context, adminID, requestID, decision, adminNote string) (*entity.PremiumRequest, error) {
	if decision != "approved" && decision != "rejected" {
		return nil, errors.BadRequest("Decision must be approved or rejected", nil)
	}

	request, err := uc.premiumRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != "pending" {
		return nil, errors.Conflict("ALREADY_RESOLVED", "Request has already been resolved")
	}

	now := time.Now()
	request.Status = decision
	request.AdminNote = adminNote
	request.ResolvedBy = adminID
	request.ResolvedAt = &now

	if err := uc.premiumRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	if decision == "approved" {
		if err := uc.userRepo.SetPremium(ctx, request.UserID, true); err != nil {
			// The request is resolved; flag the grant failure loudly so an
			// admin can re-run it.
			logger.Error("Premium request %s approved but grant failed for user %s: %v", requestID, request.UserID, err)
			return nil, errors.Internal("Request approved but premium grant failed", err)
		}
	}

	return request, nil
}
