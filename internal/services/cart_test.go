package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	appErrors "github.com/mandilink/mandilink/internal/errors"
	"github.com/mandilink/mandilink/internal/models"
	"github.com/mandilink/mandilink/internal/repositories/mocks"
	service "github.com/mandilink/mandilink/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupCartService() (*mocks.CartRepository, *mocks.ProductRepository, *service.CartService) {
	cartRepo := new(mocks.CartRepository)
	productRepo := new(mocks.ProductRepository)
	cartService := service.NewCartService(cartRepo, productRepo)

	return cartRepo, productRepo, cartService
}

func TestAddItem(t *testing.T) {
	ctx := context.Background()
	vendorID := int64(7)

	onions := &models.Product{ID: 10, WholesalerID: 1, Name: "Onions 10kg", Price: 40, Stock: 25}

	t.Run("Success - Adds On Top Of Existing Quantity", func(t *testing.T) {
		// Arrange
		cartRepo, productRepo, cartService := setupCartService()
		productRepo.On("GetProductByID", ctx, int64(10)).Return(onions, nil).Once()
		cartRepo.On("Get", ctx, vendorID).Return(map[int64]int{10: 3}, nil).Once()
		cartRepo.On("Save", ctx, vendorID, map[int64]int{10: 5}).Return(nil).Once()

		// Act
		snapshot, err := cartService.AddItem(ctx, vendorID, &models.AddItemRequest{ProductID: 10, Quantity: 2})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, 5, snapshot.Items[10])
		assert.Equal(t, 5, snapshot.TotalItems)
		cartRepo.AssertExpectations(t)
		productRepo.AssertExpectations(t)
	})

	t.Run("Failure - Combined Quantity Exceeds Stock", func(t *testing.T) {
		// Arrange
		cartRepo, productRepo, cartService := setupCartService()
		productRepo.On("GetProductByID", ctx, int64(10)).Return(onions, nil).Once()
		cartRepo.On("Get", ctx, vendorID).Return(map[int64]int{10: 20}, nil).Once()

		// Act
		snapshot, err := cartService.AddItem(ctx, vendorID, &models.AddItemRequest{ProductID: 10, Quantity: 6})

		// Assert
		assert.Nil(t, snapshot)
		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeInsufficientStock, appErr.Code)
		assert.Equal(t, "Only 25 available", appErr.Detail)
		cartRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Product Not Found", func(t *testing.T) {
		// Arrange
		_, productRepo, cartService := setupCartService()
		productRepo.On("GetProductByID", ctx, int64(99)).Return(nil, sql.ErrNoRows).Once()

		// Act
		snapshot, err := cartService.AddItem(ctx, vendorID, &models.AddItemRequest{ProductID: 99, Quantity: 1})

		// Assert
		assert.Nil(t, snapshot)
		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})

	t.Run("Failure - Cart Store Unavailable", func(t *testing.T) {
		// Arrange
		cartRepo, productRepo, cartService := setupCartService()
		productRepo.On("GetProductByID", ctx, int64(10)).Return(onions, nil).Once()
		cartRepo.On("Get", ctx, vendorID).Return(nil, errors.New("redis: connection refused")).Once()

		// Act
		snapshot, err := cartService.AddItem(ctx, vendorID, &models.AddItemRequest{ProductID: 10, Quantity: 1})

		// Assert
		assert.Nil(t, snapshot)
		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeThirdPartyError, appErr.Code)
	})
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	vendorID := int64(7)

	tomatoes := &models.Product{ID: 11, WholesalerID: 2, Name: "Tomatoes 5kg", Price: 60, Stock: 8}

	t.Run("Success - Sets Absolute Quantity", func(t *testing.T) {
		// Arrange
		cartRepo, productRepo, cartService := setupCartService()
		cartRepo.On("Get", ctx, vendorID).Return(map[int64]int{11: 2}, nil).Once()
		productRepo.On("GetProductByID", ctx, int64(11)).Return(tomatoes, nil).Once()
		cartRepo.On("Save", ctx, vendorID, map[int64]int{11: 8}).Return(nil).Once()

		// Act
		snapshot, err := cartService.UpdateQuantity(ctx, vendorID, &models.UpdateQuantityRequest{ProductID: 11, Quantity: 8})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, 8, snapshot.Items[11])
		cartRepo.AssertExpectations(t)
	})

	t.Run("Success - Quantity Below One Removes The Item", func(t *testing.T) {
		// Arrange
		cartRepo, productRepo, cartService := setupCartService()
		cartRepo.On("Get", ctx, vendorID).Return(map[int64]int{11: 2, 12: 1}, nil).Once()
		cartRepo.On("Save", ctx, vendorID, map[int64]int{12: 1}).Return(nil).Once()

		// Act
		snapshot, err := cartService.UpdateQuantity(ctx, vendorID, &models.UpdateQuantityRequest{ProductID: 11, Quantity: 0})

		// Assert
		assert.NoError(t, err)
		assert.NotContains(t, snapshot.Items, int64(11))
		assert.Equal(t, 1, snapshot.TotalItems)
		productRepo.AssertNotCalled(t, "GetProductByID", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Requested Quantity Exceeds Stock", func(t *testing.T) {
		// Arrange
		cartRepo, productRepo, cartService := setupCartService()
		cartRepo.On("Get", ctx, vendorID).Return(map[int64]int{}, nil).Once()
		productRepo.On("GetProductByID", ctx, int64(11)).Return(tomatoes, nil).Once()

		// Act
		snapshot, err := cartService.UpdateQuantity(ctx, vendorID, &models.UpdateQuantityRequest{ProductID: 11, Quantity: 9})

		// Assert
		assert.Nil(t, snapshot)
		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeInsufficientStock, appErr.Code)
		cartRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	vendorID := int64(7)

	t.Run("Success - Removes Existing Item", func(t *testing.T) {
		// Arrange
		cartRepo, _, cartService := setupCartService()
		cartRepo.On("Get", ctx, vendorID).Return(map[int64]int{10: 3, 11: 1}, nil).Once()
		cartRepo.On("Save", ctx, vendorID, map[int64]int{11: 1}).Return(nil).Once()

		// Act
		snapshot, err := cartService.RemoveItem(ctx, vendorID, &models.RemoveItemRequest{ProductID: 10})

		// Assert
		assert.NoError(t, err)
		assert.NotContains(t, snapshot.Items, int64(10))
		cartRepo.AssertExpectations(t)
	})

	t.Run("Success - Removing Absent Item Is A No-Op", func(t *testing.T) {
		// Arrange
		cartRepo, _, cartService := setupCartService()
		cartRepo.On("Get", ctx, vendorID).Return(map[int64]int{11: 1}, nil).Once()
		cartRepo.On("Save", ctx, vendorID, map[int64]int{11: 1}).Return(nil).Once()

		// Act
		snapshot, err := cartService.RemoveItem(ctx, vendorID, &models.RemoveItemRequest{ProductID: 999})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, 1, snapshot.TotalItems)
		cartRepo.AssertExpectations(t)
	})
}

func TestSyncCart(t *testing.T) {
	ctx := context.Background()
	vendorID := int64(7)

	t.Run("Success - Replaces Entire Cart Without Stock Checks", func(t *testing.T) {
		// Arrange
		cartRepo, productRepo, cartService := setupCartService()
		cartRepo.On("Save", ctx, vendorID, map[int64]int{10: 4, 12: 2}).Return(nil).Once()

		// Act
		snapshot, err := cartService.Sync(ctx, vendorID, &models.SyncCartRequest{
			Cart: []models.SyncCartItem{{ID: 10, Quantity: 4}, {ID: 12, Quantity: 2}},
		})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, 6, snapshot.TotalItems)
		productRepo.AssertNotCalled(t, "GetProductByID", mock.Anything, mock.Anything)
		cartRepo.AssertExpectations(t)
	})

	t.Run("Success - Empty Payload Clears The Cart", func(t *testing.T) {
		// Arrange
		cartRepo, _, cartService := setupCartService()
		cartRepo.On("Save", ctx, vendorID, map[int64]int{}).Return(nil).Once()

		// Act
		snapshot, err := cartService.Sync(ctx, vendorID, &models.SyncCartRequest{Cart: nil})

		// Assert
		assert.NoError(t, err)
		assert.Empty(t, snapshot.Items)
		cartRepo.AssertExpectations(t)
	})
}

func TestViewCart(t *testing.T) {
	ctx := context.Background()
	vendorID := int64(7)

	onions := &models.Product{ID: 10, WholesalerID: 1, WholesalerName: "Azad Mandi Traders", Name: "Onions 10kg", Price: 40, Stock: 25}
	tomatoes := &models.Product{ID: 11, WholesalerID: 2, WholesalerName: "Fresh Farms", Name: "Tomatoes 5kg", Price: 60, Stock: 8}
	potatoes := &models.Product{ID: 12, WholesalerID: 1, WholesalerName: "Azad Mandi Traders", Name: "Potatoes 10kg", Price: 30, Stock: 100}

	t.Run("Success - Groups Lines By Wholesaler In First-Encounter Order", func(t *testing.T) {
		// Arrange
		cartRepo, productRepo, cartService := setupCartService()
		cartRepo.On("Get", ctx, vendorID).Return(map[int64]int{12: 1, 10: 3, 11: 2}, nil).Once()
		productRepo.On("GetProductByID", ctx, int64(10)).Return(onions, nil).Once()
		productRepo.On("GetProductByID", ctx, int64(11)).Return(tomatoes, nil).Once()
		productRepo.On("GetProductByID", ctx, int64(12)).Return(potatoes, nil).Once()

		// Act
		view, err := cartService.View(ctx, vendorID)

		// Assert
		assert.NoError(t, err)
		assert.Len(t, view.Groups, 2)
		// Product ids are walked ascending, so wholesaler 1 (product 10) comes first.
		assert.Equal(t, int64(1), view.Groups[0].WholesalerID)
		assert.Equal(t, int64(2), view.Groups[1].WholesalerID)
		assert.Equal(t, []int64{10, 12}, []int64{view.Groups[0].Items[0].ProductID, view.Groups[0].Items[1].ProductID})
		assert.Equal(t, float64(150), view.Groups[0].Subtotal)
		assert.Equal(t, float64(120), view.Groups[1].Subtotal)
		assert.Equal(t, float64(270), view.GrandTotal)
		assert.Equal(t, 6, view.TotalItems)
	})

	t.Run("Success - Vanished Products Drop Out Silently", func(t *testing.T) {
		// Arrange
		cartRepo, productRepo, cartService := setupCartService()
		cartRepo.On("Get", ctx, vendorID).Return(map[int64]int{10: 3, 99: 2}, nil).Once()
		productRepo.On("GetProductByID", ctx, int64(10)).Return(onions, nil).Once()
		productRepo.On("GetProductByID", ctx, int64(99)).Return(nil, sql.ErrNoRows).Once()

		// Act
		view, err := cartService.View(ctx, vendorID)

		// Assert
		assert.NoError(t, err)
		assert.Len(t, view.Groups, 1)
		assert.Equal(t, float64(120), view.GrandTotal)
	})

	t.Run("Success - Empty Cart Yields Empty View", func(t *testing.T) {
		// Arrange
		cartRepo, _, cartService := setupCartService()
		cartRepo.On("Get", ctx, vendorID).Return(map[int64]int{}, nil).Once()

		// Act
		view, err := cartService.View(ctx, vendorID)

		// Assert
		assert.NoError(t, err)
		assert.Empty(t, view.Groups)
		assert.Equal(t, float64(0), view.GrandTotal)
	})
}

func TestCartCount(t *testing.T) {
	ctx := context.Background()
	vendorID := int64(7)

	t.Run("Success - Counts Distinct Items", func(t *testing.T) {
		// Arrange
		cartRepo, productRepo, cartService := setupCartService()
		cartRepo.On("Get", ctx, vendorID).Return(map[int64]int{10: 3, 11: 2}, nil).Once()
		productRepo.On("GetProductByID", ctx, int64(10)).Return(
			&models.Product{ID: 10, WholesalerID: 1, Price: 40, Stock: 25}, nil).Once()
		productRepo.On("GetProductByID", ctx, int64(11)).Return(
			&models.Product{ID: 11, WholesalerID: 2, Price: 60, Stock: 8}, nil).Once()

		// Act
		count, err := cartService.Count(ctx, vendorID)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, 2, count.Count)
		assert.Equal(t, float64(240), count.Total)
	})
}
