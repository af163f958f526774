package usecase

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"mercato/internal/domain/entity"
	"mercato/internal/domain/repository"
	"mercato/pkg/errors"
	"mercato/pkg/utils"
)

type ProductUseCase struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

func NewProductUseCase(productRepo repository.ProductRepository, userRepo repository.UserRepository) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

type ProductImageInput struct {
	URL          string `json:"url" validate:"required,url"`
	DisplayOrder int    `json:"display_order"`
}

type CreateProductInput struct {
	Title       string              `json:"title" validate:"required,min=3,max=200"`
	Description string              `json:"description" validate:"max=5000"`
	Category    string              `json:"category" validate:"required"`
	Price       float64             `json:"price" validate:"required,gt=0"`
	Stock       int                 `json:"stock" validate:"required,gt=0"`
	Images      []ProductImageInput `json:"images" validate:"max=10,dive"`
}

func (uc *ProductUseCase) CreateProduct(ctx context.Context, sellerID string, input CreateProductInput) (*entity.Product, error) {
	seller, err := uc.userRepo.GetByID(ctx, sellerID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}
	if !seller.IsSeller() {
		return nil, errors.Forbidden("Only sellers can list products", nil)
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SellerID:    sellerID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Price:       round2(input.Price),
		Stock:       input.Stock,
		Status:      entity.ProductStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	for _, img := range input.Images {
		product.Images = append(product.Images, entity.ProductImage{
			ID:           uuid.New().String(),
			URL:          img.URL,
			DisplayOrder: img.DisplayOrder,
		})
	}

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	log.Printf("Product created: id=%s seller=%s title=%q", product.ID, sellerID, product.Title)
	return product, nil
}

type UpdateProductInput struct {
	Title       *string             `json:"title" validate:"omitempty,min=3,max=200"`
	Description *string             `json:"description" validate:"omitempty,max=5000"`
	Category    *string             `json:"category"`
	Price       *float64            `json:"price" validate:"omitempty,gt=0"`
	Stock       *int                `json:"stock" validate:"omitempty,gte=0"`
	Status      *string             `json:"status" validate:"omitempty,oneof=active inactive"`
	Images      []ProductImageInput `json:"images" validate:"omitempty,max=10,dive"`
}

func (uc *ProductUseCase) UpdateProduct(ctx context.Context, sellerID, productID string, input UpdateProductInput) (*entity.Product, error) {
	product, err := uc.getOwnedProduct(ctx, sellerID, productID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		product.Title = *input.Title
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Price != nil {
		product.Price = round2(*input.Price)
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
		if product.Stock > 0 && product.Status == entity.ProductStatusSoldOut {
			product.Status = entity.ProductStatusActive
		}
	}
	if input.Status != nil {
		product.Status = *input.Status
	}
	if input.Images != nil {
		product.Images = nil
		for _, img := range input.Images {
			product.Images = append(product.Images, entity.ProductImage{
				ID:           uuid.New().String(),
				URL:          img.URL,
				DisplayOrder: img.DisplayOrder,
			})
		}
	}
	product.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (uc *ProductUseCase) DeleteProduct(ctx context.Context, sellerID, productID string) error {
	if _, err := uc.getOwnedProduct(ctx, sellerID, productID); err != nil {
		return err
	}

	if err := uc.productRepo.SoftDelete(ctx, productID); err != nil {
		return err
	}

	log.Printf("Product %s deleted by seller %s", productID, sellerID)
	return nil
}

// GetProduct is the public detail view and bumps the view counter best-effort.
func (uc *ProductUseCase) GetProduct(ctx context.Context, productID string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, errors.NotFound("Product", err)
	}
	if product.DeletedAt != nil {
		return nil, errors.NotFound("Product", nil)
	}

	product.Views++
	if err := uc.productRepo.Update(ctx, product); err != nil {
		log.Printf("Failed to bump view count for product %s: %v", productID, err)
	}

	return product, nil
}

type ProductFilter struct {
	Category string  `query:"category"`
	SellerID string  `query:"seller_id"`
	Search   string  `query:"search"`
	MinPrice float64 `query:"min_price"`
	MaxPrice float64 `query:"max_price"`
}

// ListProducts is the public catalog: active, non-deleted listings only.
func (uc *ProductUseCase) ListProducts(ctx context.Context, filter ProductFilter, pagination *utils.Pagination) ([]*entity.Product, int64, error) {
	repoFilter := map[string]interface{}{
		"status": entity.ProductStatusActive,
	}
	if filter.Category != "" {
		repoFilter["category"] = filter.Category
	}
	if filter.SellerID != "" {
		repoFilter["sellerId"] = filter.SellerID
	}
	if filter.Search != "" {
		repoFilter["search"] = filter.Search
	}
	if filter.MinPrice > 0 {
		repoFilter["min_price"] = filter.MinPrice
	}
	if filter.MaxPrice > 0 {
		repoFilter["max_price"] = filter.MaxPrice
	}

	return uc.productRepo.List(ctx, repoFilter, pagination)
}

func (uc *ProductUseCase) ListSellerProducts(ctx context.Context, sellerID string, pagination *utils.Pagination) ([]*entity.Product, int64, error) {
	return uc.productRepo.ListBySellerID(ctx, sellerID, pagination)
}

func (uc *ProductUseCase) getOwnedProduct(ctx context.Context, sellerID, productID string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, errors.NotFound("Product", err)
	}
	if product.SellerID != sellerID || product.DeletedAt != nil {
		return nil, errors.NotFound("Product", nil)
	}
	return product, nil
}
