// Package mocks provides testify mocks for the repository interfaces.
package mocks

import (
	"context"

	"github.com/mandilink/mandilink/internal/models"
	"github.com/stretchr/testify/mock"
)

type CartRepository struct {
	mock.Mock
}

func (m *CartRepository) Get(ctx context.Context, vendorID int64) (map[int64]int, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(map[int64]int), args.Error(1)
}

func (m *CartRepository) Save(ctx context.Context, vendorID int64, items map[int64]int) error {
	args := m.Called(ctx, vendorID, items)
	return args.Error(0)
}

func (m *CartRepository) Clear(ctx context.Context, vendorID int64) error {
	args := m.Called(ctx, vendorID)
	return args.Error(0)
}

type ProductRepository struct {
	mock.Mock
}

func (m *ProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *ProductRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *ProductRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *ProductRepository) UpdateStock(ctx context.Context, productID, wholesalerID int64, stock int, status string) error {
	args := m.Called(ctx, productID, wholesalerID, stock, status)
	return args.Error(0)
}

func (m *ProductRepository) DeleteProduct(ctx context.Context, productID, wholesalerID int64) error {
	args := m.Called(ctx, productID, wholesalerID)
	return args.Error(0)
}

func (m *ProductRepository) ListByWholesaler(ctx context.Context, wholesalerID int64) ([]*models.Product, error) {
	args := m.Called(ctx, wholesalerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *ProductRepository) ListAvailableByWholesaler(ctx context.Context, wholesalerID int64) ([]*models.Product, error) {
	args := m.Called(ctx, wholesalerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *ProductRepository) ListByCategory(ctx context.Context, category string) ([]*models.Product, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *ProductRepository) Search(ctx context.Context, query string) ([]*models.Product, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *ProductRepository) Filter(ctx context.Context, req *models.FilterProductsRequest) ([]*models.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *ProductRepository) ListFeatured(ctx context.Context, limit int) ([]*models.Product, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Product), args.Error(1)
}

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) CreateOrders(ctx context.Context, orders []*models.Order) error {
	args := m.Called(ctx, orders)
	return args.Error(0)
}

func (m *OrderRepository) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *OrderRepository) ListByVendor(ctx context.Context, vendorID int64) ([]models.Order, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *OrderRepository) ListByWholesaler(ctx context.Context, wholesalerID int64) ([]models.Order, error) {
	args := m.Called(ctx, wholesalerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *OrderRepository) UpdateStatus(ctx context.Context, orderID, wholesalerID int64, status models.OrderStatus) error {
	args := m.Called(ctx, orderID, wholesalerID, status)
	return args.Error(0)
}

func (m *OrderRepository) VendorStats(ctx context.Context, vendorID int64) (*models.VendorOrderStats, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.VendorOrderStats), args.Error(1)
}

type VendorRepository struct {
	mock.Mock
}

func (m *VendorRepository) CreateVendor(ctx context.Context, vendor *models.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *VendorRepository) GetVendorByPhone(ctx context.Context, phone string) (*models.Vendor, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Vendor), args.Error(1)
}

func (m *VendorRepository) GetVendorByID(ctx context.Context, id int64) (*models.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Vendor), args.Error(1)
}

func (m *VendorRepository) UpdateProfile(ctx context.Context, vendor *models.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

type WholesalerRepository struct {
	mock.Mock
}

func (m *WholesalerRepository) CreateWholesaler(ctx context.Context, wholesaler *models.Wholesaler) error {
	args := m.Called(ctx, wholesaler)
	return args.Error(0)
}

func (m *WholesalerRepository) GetWholesalerByPhone(ctx context.Context, phone string) (*models.Wholesaler, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Wholesaler), args.Error(1)
}

func (m *WholesalerRepository) GetWholesalerByID(ctx context.Context, id int64) (*models.Wholesaler, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Wholesaler), args.Error(1)
}

func (m *WholesalerRepository) UpdateProfile(ctx context.Context, wholesaler *models.Wholesaler) error {
	args := m.Called(ctx, wholesaler)
	return args.Error(0)
}

func (m *WholesalerRepository) UpdatePassword(ctx context.Context, id int64, password string) error {
	args := m.Called(ctx, id, password)
	return args.Error(0)
}

func (m *WholesalerRepository) ListPending(ctx context.Context) ([]models.Wholesaler, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Wholesaler), args.Error(1)
}

func (m *WholesalerRepository) Approve(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *WholesalerRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *WholesalerRepository) ListTop(ctx context.Context, sortBy string, limit int) ([]models.WholesalerSummary, error) {
	args := m.Called(ctx, sortBy, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.WholesalerSummary), args.Error(1)
}

type RateLimitRepository struct {
	mock.Mock
}

func (m *RateLimitRepository) CheckLoginRateLimit(ctx context.Context, phone string) (bool, int, int, error) {
	args := m.Called(ctx, phone)
	return args.Bool(0), args.Int(1), args.Int(2), args.Error(3)
}

type ReviewRepository struct {
	mock.Mock
}

func (m *ReviewRepository) CreateReview(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *ReviewRepository) GetReviewByID(ctx context.Context, id int64) (*models.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *ReviewRepository) ListByWholesaler(ctx context.Context, wholesalerID int64) ([]models.Review, error) {
	args := m.Called(ctx, wholesalerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *ReviewRepository) SaveReply(ctx context.Context, reviewID, wholesalerID int64, reply string) error {
	args := m.Called(ctx, reviewID, wholesalerID, reply)
	return args.Error(0)
}

func (m *ReviewRepository) AverageRating(ctx context.Context, wholesalerID int64) (float64, int, error) {
	args := m.Called(ctx, wholesalerID)
	return args.Get(0).(float64), args.Int(1), args.Error(2)
}

type DonationRepository struct {
	mock.Mock
}

func (m *DonationRepository) Create(ctx context.Context, donation *models.Donation) error {
	args := m.Called(ctx, donation)
	return args.Error(0)
}

func (m *DonationRepository) ListByVendor(ctx context.Context, vendorID int64) ([]models.Donation, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Donation), args.Error(1)
}
