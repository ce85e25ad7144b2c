package usecase

import (
	"context"

	"github.com/google/uuid"

	"unimarket/internal/domain/entity"
	"unimarket/internal/domain/repository"
	"unimarket/pkg/errors"
	"unimarket/pkg/logger"
)

type ProductUseCase struct {
	productRepo repository.ProductRepository
}

func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
	}
}

type ProductInput struct {
	Title       string
	Description string
	Category    string
	Price       float64
	Condition   string
	Stock       int
	ImageURLs   []string
}

func (uc *ProductUseCase) CreateProduct(ctx context.Context, ownerID string, input ProductInput) (*entity.Product, error) {
	product := &entity.Product{
		OwnerID:     ownerID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		Condition:   input.Condition,
		Stock:       input.Stock,
		Images:      productImages(input.ImageURLs),
		Status:      "active",
	}

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (uc *ProductUseCase) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Best effort; a missed count is not worth failing the read.
	if err := uc.productRepo.IncrementViews(ctx, id); err != nil {
		logger.Warn("Failed to increment views for product %s: %v", id, err)
	}

	return product, nil
}

func (uc *ProductUseCase) ListProducts(ctx context.Context, category, sort string, page, limit int) ([]*entity.Product, int64, error) {
	filter := make(map[string]interface{})
	if category != "" {
		filter["category"] = category
	}
	filter["status"] = "active"

	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	return uc.productRepo.List(ctx, filter, sort, limit, offset)
}

func (uc *ProductUseCase) ListMyProducts(ctx context.Context, ownerID string, page, limit int) ([]*entity.Product, int64, error) {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	return uc.productRepo.ListByOwnerID(ctx, ownerID, limit, offset)
}

func (uc *ProductUseCase) SearchProducts(ctx context.Context, query string, page, limit int) ([]*entity.Product, int64, error) {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	return uc.productRepo.SearchByTitle(ctx, query, limit, offset)
}

func (uc *ProductUseCase) UpdateProduct(ctx context.Context, ownerID, id string, input ProductInput) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.OwnerID != ownerID {
		return nil, errors.Forbidden("You do not own this product", nil)
	}

	product.Title = input.Title
	product.Description = input.Description
	product.Category = input.Category
	product.Price = input.Price
	product.Condition = input.Condition
	product.Stock = input.Stock
	if input.ImageURLs != nil {
		product.Images = productImages(input.ImageURLs)
	}

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (uc *ProductUseCase) DeleteProduct(ctx context.Context, ownerID, id string) error {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product.OwnerID != ownerID {
		return errors.Forbidden("You do not own this product", nil)
	}

	return uc.productRepo.SoftDelete(ctx, id)
}

// RemoveProduct takes a listing down without an ownership check. Callers must
// gate this behind the admin role.
func (uc *ProductUseCase) RemoveProduct(ctx context.Context, id string) error {
	if _, err := uc.productRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.productRepo.SoftDelete(ctx, id)
}

func productImages(urls []string) []entity.ProductImage {
	images := make([]entity.ProductImage, 0, len(urls))
	for i, url := range urls {
		images = append(images, entity.ProductImage{
			ID:           uuid.New().String(),
			URL:          url,
			DisplayOrder: i,
		})
	}
	return images
}
