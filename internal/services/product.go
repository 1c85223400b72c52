package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mandilink/mandilink/internal/cache"
	appErrors "github.com/mandilink/mandilink/internal/errors"
	"github.com/mandilink/mandilink/internal/models"
	repository "github.com/mandilink/mandilink/internal/repositories"
)

const featuredProductLimit = 8

type ProductService struct {
	repo  repository.ProductRepository
	cache cache.Cache
}

func NewProductService(repo repository.ProductRepository, cache cache.Cache) *ProductService {
	return &ProductService{repo: repo, cache: cache}
}

func (s *ProductService) CreateProduct(ctx context.Context, wholesalerID int64, req *models.CreateProductRequest) (*models.Product, error) {
	product := &models.Product{
		WholesalerID: wholesalerID,
		Name:         req.Name,
		Category:     req.Category,
		Price:        req.Price,
		Stock:        req.Stock,
		Status:       models.StatusForStock(req.Stock),
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, appErrors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found")
		}

		return nil, appErrors.DatabaseError("Failed to load product").WithError(err)
	}

	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, wholesalerID, productID int64, req *models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.repo.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found")
		}

		return nil, appErrors.DatabaseError("Failed to load product").WithError(err)
	}

	if product.WholesalerID != wholesalerID {
		return nil, appErrors.ForbiddenError("Product belongs to another wholesaler")
	}

	if req.Name != nil {
		product.Name = *req.Name
	}

	if req.Category != nil {
		product.Category = *req.Category
	}

	if req.Price != nil {
		product.Price = *req.Price
	}

	if req.Stock != nil {
		product.Stock = *req.Stock
		product.Status = models.StatusForStock(*req.Stock)
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found")
		}

		return nil, appErrors.DatabaseError("Failed to update product").WithError(err)
	}

	return product, nil
}

// UpdateStock sets the absolute stock level and re-derives the listing badge.
func (s *ProductService) UpdateStock(ctx context.Context, wholesalerID int64, req *models.UpdateStockRequest) (string, error) {
	status := models.StatusForStock(req.Stock)

	err := s.repo.UpdateStock(ctx, req.ProductID, wholesalerID, req.Stock, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.NotFoundError("Product not found")
		}

		return "", appErrors.DatabaseError("Failed to update stock").WithError(err)
	}

	return status, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, wholesalerID int64, req *models.DeleteProductRequest) error {
	err := s.repo.DeleteProduct(ctx, req.ProductID, wholesalerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("Product not found")
		}

		return appErrors.DatabaseError("Failed to delete product").WithError(err)
	}

	return nil
}

func (s *ProductService) ListByWholesaler(ctx context.Context, wholesalerID int64) ([]*models.Product, error) {
	products, err := s.repo.ListByWholesaler(ctx, wholesalerID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list products").WithError(err)
	}

	return products, nil
}

// Storefront is the vendor-facing view of one wholesaler's catalog.
func (s *ProductService) Storefront(ctx context.Context, wholesalerID int64) ([]*models.Product, error) {
	products, err := s.repo.ListAvailableByWholesaler(ctx, wholesalerID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list products").WithError(err)
	}

	return products, nil
}

func (s *ProductService) ListByCategory(ctx context.Context, category string) ([]*models.Product, error) {
	products, err := s.repo.ListByCategory(ctx, category)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list products").WithError(err)
	}

	return products, nil
}

func (s *ProductService) Search(ctx context.Context, query string) ([]*models.Product, error) {
	if query == "" {
		return []*models.Product{}, nil
	}

	products, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to search products").WithError(err)
	}

	return products, nil
}

func (s *ProductService) Filter(ctx context.Context, req *models.FilterProductsRequest) ([]*models.Product, error) {
	products, err := s.repo.Filter(ctx, req)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to filter products").WithError(err)
	}

	return products, nil
}

// Featured serves the landing-page strip from cache, falling back to the
// most-viewed in-stock products.
func (s *ProductService) Featured(ctx context.Context) ([]*models.Product, error) {
	key := cache.Key(cache.FeaturedKeyPrefix, featuredProductLimit)

	var cached []*models.Product
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	products, err := s.repo.ListFeatured(ctx, featuredProductLimit)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list featured products").WithError(err)
	}

	_ = s.cache.Set(ctx, key, products, 5*time.Minute)

	return products, nil
}
