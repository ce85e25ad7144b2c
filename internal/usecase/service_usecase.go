package usecase

import (
	"context"

	"github.com/google/uuid"

	"unimarket/internal/domain/entity"
	"unimarket/internal/domain/repository"
	"unimarket/pkg/errors"
)

type ServiceUseCase struct {
	serviceRepo repository.ServiceRepository
}

func NewServiceUseCase(serviceRepo repository.ServiceRepository) *ServiceUseCase {
	return &ServiceUseCase{
		serviceRepo: serviceRepo,
	}
}

type ServiceInput struct {
	Title       string
	Description string
	Category    string
	Price       float64
	PriceUnit   string
	ImageURLs   []string
}

func (uc *ServiceUseCase) CreateService(ctx context.Context, ownerID string, input ServiceInput) (*entity.Service, error) {
	service := &entity.Service{
		OwnerID:     ownerID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		PriceUnit:   input.PriceUnit,
		Images:      serviceImages(input.ImageURLs),
		Status:      "active",
	}

	if err := uc.serviceRepo.Create(ctx, service); err != nil {
		return nil, err
	}

	return service, nil
}

func (uc *ServiceUseCase) GetService(ctx context.Context, id string) (*entity.Service, error) {
	return uc.serviceRepo.GetByID(ctx, id)
}

func (uc *ServiceUseCase) ListServices(ctx context.Context, category, sort string, page, limit int) ([]*entity.Service, int64, error) {
	filter := make(map[string]interface{})
	if category != "" {
		filter["category"] = category
	}
	filter["status"] = "active"

	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	return uc.serviceRepo.List(ctx, filter, sort, limit, offset)
}

func (uc *ServiceUseCase) ListMyServices(ctx context.Context, ownerID string, page, limit int) ([]*entity.Service, int64, error) {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	return uc.serviceRepo.ListByOwnerID(ctx, ownerID, limit, offset)
}

func (uc *ServiceUseCase) SearchServices(ctx context.Context, query string, page, limit int) ([]*entity.Service, int64, error) {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	return uc.serviceRepo.SearchByTitle(ctx, query, limit, offset)
}

func (uc *ServiceUseCase) UpdateService(ctx context.Context, ownerID, id string, input ServiceInput) (*entity.Service, error) {
	service, err := uc.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if service.OwnerID != ownerID {
		return nil, errors.Forbidden("You do not own this service", nil)
	}

	service.Title = input.Title
	service.Description = input.Description
	service.Category = input.Category
	service.Price = input.Price
	service.PriceUnit = input.PriceUnit
	if input.ImageURLs != nil {
		service.Images = serviceImages(input.ImageURLs)
	}

	if err := uc.serviceRepo.Update(ctx, service); err != nil {
		return nil, err
	}

	return service, nil
}

func (uc *ServiceUseCase) DeleteService(ctx context.Context, ownerID, id string) error {
	service, err := uc.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if service.OwnerID != ownerID {
		return errors.Forbidden("You do not own this service", nil)
	}

	return uc.serviceRepo.SoftDelete(ctx, id)
}

// RemoveService takes a listing down without an ownership check. Callers must
// gate this behind the admin role.
func (uc *ServiceUseCase) RemoveService(ctx context.Context, id string) error {
	if _, err := uc.serviceRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.serviceRepo.SoftDelete(ctx, id)
}

func serviceImages(urls []string) []entity.ServiceImage {
	images := make([]entity.ServiceImage, 0, len(urls))
	for i, url := range urls {
		images = append(images, entity.ServiceImage{
			ID:           uuid.New().String(),
			URL:          url,
			DisplayOrder: i,
		})
	}
	return images
}
