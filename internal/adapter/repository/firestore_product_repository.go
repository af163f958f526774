package repository

import (
	"context"
	"log"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"mercato/internal/domain/entity"
	"mercato/internal/domain/repository"
	"mercato/pkg/errors"
	"mercato/pkg/utils"
)

type firestoreProductRepository struct {
	client *firestore.Client
}

func NewFirestoreProductRepository(client *firestore.Client) repository.ProductRepository {
	return &firestoreProductRepository{
		client: client,
	}
}

func (r *firestoreProductRepository) Create(ctx context.Context, product *entity.Product) error {
	_, err := r.client.Collection("products").Doc(product.ID).Set(ctx, product)
	if err != nil {
		return errors.Internal("Failed to create product", err)
	}
	return nil
}

func (r *firestoreProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	doc, err := r.client.Collection("products").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Product", err)
		}
		return nil, errors.Internal("Failed to get product", err)
	}

	var product entity.Product
	if err := doc.DataTo(&product); err != nil {
		return nil, errors.Internal("Failed to parse product data", err)
	}

	return &product, nil
}

func (r *firestoreProductRepository) Update(ctx context.Context, product *entity.Product) error {
	product.UpdatedAt = time.Now()
	_, err := r.client.Collection("products").Doc(product.ID).Set(ctx, product)
	if err != nil {
		return errors.Internal("Failed to update product", err)
	}
	return nil
}

func (r *firestoreProductRepository) SoftDelete(ctx context.Context, id string) error {
	now := time.Now()
	_, err := r.client.Collection("products").Doc(id).Update(ctx, []firestore.Update{
		{Path: "deletedAt", Value: now},
		{Path: "status", Value: entity.ProductStatusInactive},
		{Path: "updatedAt", Value: now},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Product", err)
		}
		return errors.Internal("Failed to delete product", err)
	}
	return nil
}

// List queries by equality filters server side; price range and text search
// are applied in memory to avoid composite index requirements.
func (r *firestoreProductRepository) List(ctx context.Context, filter map[string]interface{}, pagination *utils.Pagination) ([]*entity.Product, int64, error) {
	query := r.client.Collection("products").Query
	if v, ok := filter["status"]; ok {
		query = query.Where("status", "==", v)
	}
	if v, ok := filter["category"]; ok {
		query = query.Where("category", "==", v)
	}
	if v, ok := filter["sellerId"]; ok {
		query = query.Where("sellerId", "==", v)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var matched []*entity.Product
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to list products", err)
		}

		var product entity.Product
		if err := doc.DataTo(&product); err != nil {
			log.Printf("Error converting document to product: %v", err)
			continue
		}

		if product.DeletedAt != nil {
			continue
		}
		if !matchesProductFilter(&product, filter) {
			continue
		}

		matched = append(matched, &product)
	}

	total := int64(len(matched))
	start := pagination.Offset()
	if start >= len(matched) {
		return []*entity.Product{}, total, nil
	}
	end := start + pagination.Limit
	if end > len(matched) {
		end = len(matched)
	}

	return matched[start:end], total, nil
}

func matchesProductFilter(product *entity.Product, filter map[string]interface{}) bool {
	if v, ok := filter["min_price"]; ok {
		if minPrice, ok := v.(float64); ok && product.Price < minPrice {
			return false
		}
	}
	if v, ok := filter["max_price"]; ok {
		if maxPrice, ok := v.(float64); ok && product.Price > maxPrice {
			return false
		}
	}
	if v, ok := filter["search"]; ok {
		if search, ok := v.(string); ok && search != "" {
			needle := strings.ToLower(search)
			if !strings.Contains(strings.ToLower(product.Title), needle) &&
				!strings.Contains(strings.ToLower(product.Description), needle) {
				return false
			}
		}
	}
	return true
}

func (r *firestoreProductRepository) ListBySellerID(ctx context.Context, sellerID string, pagination *utils.Pagination) ([]*entity.Product, int64, error) {
	query := r.client.Collection("products").Where("sellerId", "==", sellerID)

	total, err := countDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	if pagination.Page > 1 {
		query = query.Offset(pagination.Offset())
	}
	query = query.Limit(pagination.Limit)

	iter := query.Documents(ctx)
	defer iter.Stop()

	var products []*entity.Product
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to list products", err)
		}

		var product entity.Product
		if err := doc.DataTo(&product); err != nil {
			log.Printf("Error converting document to product: %v", err)
			continue
		}

		products = append(products, &product)
	}

	return products, total, nil
}
