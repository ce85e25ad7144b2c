package repository

import (
	"context"

	"unimarket/internal/domain/entity"
)

type PremiumRequestRepository interface {
	Create(ctx context.Context, request *entity.PremiumRequest) error
	GetByID(ctx context.Context, id string) (*entity.PremiumRequest, error)
	GetPendingByUserID(ctx context.Context, userID string) (*entity.PremiumRequest, error)
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.PremiumRequest, int64, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.PremiumRequest, int64, error)
	Update(ctx context.Context, request *entity.PremiumRequest) error
}
