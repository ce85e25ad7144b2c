package repository

import (
	"context"

	"unimarket/internal/domain/entity"
)

type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	GetByID(ctx context.Context, id string) (*entity.Service, error)
	List(ctx context.Context, filter map[string]interface{}, sort string, limit, offset int) ([]*entity.Service, int64, error)
	ListByOwnerID(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Service, int64, error)
	SearchByTitle(ctx context.Context, query string, limit, offset int) ([]*entity.Service, int64, error)
	Update(ctx context.Context, service *entity.Service) error
	SoftDelete(ctx context.Context, id string) error
}
