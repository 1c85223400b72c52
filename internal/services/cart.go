package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	appErrors "github.com/mandilink/mandilink/internal/errors"
	"github.com/mandilink/mandilink/internal/models"
	repository "github.com/mandilink/mandilink/internal/repositories"
)

// CartService owns the per-vendor quantity map and its projection into the
// checkout-ready view. The stored cart never holds prices or names; those are
// resolved from the live catalog at read time, so stale entries simply drop
// out of the projection.
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo}
}

// AddItem adds quantity on top of whatever is already in the cart, capped by
// the product's live stock.
func (s *CartService) AddItem(ctx context.Context, vendorID int64, req *models.AddItemRequest) (*models.Snapshot, error) {
	product, err := s.productRepo.GetProductByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found")
		}

		return nil, appErrors.DatabaseError("Failed to load product").WithError(err)
	}

	items, err := s.cartRepo.Get(ctx, vendorID)
	if err != nil {
		return nil, appErrors.ThirdPartyError("Failed to load cart").WithError(err)
	}

	newQuantity := items[req.ProductID] + req.Quantity
	if newQuantity > product.Stock {
		return nil, appErrors.InsufficientStockError(product.Stock)
	}

	items[req.ProductID] = newQuantity

	if err := s.cartRepo.Save(ctx, vendorID, items); err != nil {
		return nil, appErrors.ThirdPartyError("Failed to save cart").WithError(err)
	}

	return snapshot(items), nil
}

// UpdateQuantity sets the absolute quantity for an item. Anything below one
// removes the item instead.
func (s *CartService) UpdateQuantity(ctx context.Context, vendorID int64, req *models.UpdateQuantityRequest) (*models.Snapshot, error) {
	items, err := s.cartRepo.Get(ctx, vendorID)
	if err != nil {
		return nil, appErrors.ThirdPartyError("Failed to load cart").WithError(err)
	}

	if req.Quantity < 1 {
		delete(items, req.ProductID)
	} else {
		product, err := s.productRepo.GetProductByID(ctx, req.ProductID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.NotFoundError("Product not found")
			}

			return nil, appErrors.DatabaseError("Failed to load product").WithError(err)
		}

		if req.Quantity > product.Stock {
			return nil, appErrors.InsufficientStockError(product.Stock)
		}

		items[req.ProductID] = req.Quantity
	}

	if err := s.cartRepo.Save(ctx, vendorID, items); err != nil {
		return nil, appErrors.ThirdPartyError("Failed to save cart").WithError(err)
	}

	return snapshot(items), nil
}

// RemoveItem deletes an item from the cart. Removing an absent item is a
// no-op, not an error.
func (s *CartService) RemoveItem(ctx context.Context, vendorID int64, req *models.RemoveItemRequest) (*models.Snapshot, error) {
	items, err := s.cartRepo.Get(ctx, vendorID)
	if err != nil {
		return nil, appErrors.ThirdPartyError("Failed to load cart").WithError(err)
	}

	delete(items, req.ProductID)

	if err := s.cartRepo.Save(ctx, vendorID, items); err != nil {
		return nil, appErrors.ThirdPartyError("Failed to save cart").WithError(err)
	}

	return snapshot(items), nil
}

func (s *CartService) Clear(ctx context.Context, vendorID int64) error {
	if err := s.cartRepo.Clear(ctx, vendorID); err != nil {
		return appErrors.ThirdPartyError("Failed to clear cart").WithError(err)
	}

	return nil
}

// Sync replaces the whole cart with the client's copy. No stock checks here;
// checkout and the next add both re-validate against the live catalog.
func (s *CartService) Sync(ctx context.Context, vendorID int64, req *models.SyncCartRequest) (*models.Snapshot, error) {
	items := make(map[int64]int, len(req.Cart))

	for _, entry := range req.Cart {
		items[entry.ID] = entry.Quantity
	}

	if err := s.cartRepo.Save(ctx, vendorID, items); err != nil {
		return nil, appErrors.ThirdPartyError("Failed to save cart").WithError(err)
	}

	return snapshot(items), nil
}

func (s *CartService) Snapshot(ctx context.Context, vendorID int64) (*models.Snapshot, error) {
	items, err := s.cartRepo.Get(ctx, vendorID)
	if err != nil {
		return nil, appErrors.ThirdPartyError("Failed to load cart").WithError(err)
	}

	return snapshot(items), nil
}

// View projects the cart against the live catalog: lines resolved to current
// name and price, grouped per wholesaler. Products that have vanished from
// the catalog are skipped without complaint.
func (s *CartService) View(ctx context.Context, vendorID int64) (*models.CartView, error) {
	items, err := s.cartRepo.Get(ctx, vendorID)
	if err != nil {
		return nil, appErrors.ThirdPartyError("Failed to load cart").WithError(err)
	}

	return s.project(ctx, items)
}

// Count backs the cart badge: number of distinct items plus the running total.
func (s *CartService) Count(ctx context.Context, vendorID int64) (*models.CartCount, error) {
	view, err := s.View(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	count := 0
	for _, group := range view.Groups {
		count += len(group.Items)
	}

	return &models.CartCount{Count: count, Total: view.GrandTotal}, nil
}

// project walks the quantity map in ascending product id order so the output
// is stable across calls, grouping lines by wholesaler as they are first
// encountered.
func (s *CartService) project(ctx context.Context, items map[int64]int) (*models.CartView, error) {
	productIDs := make([]int64, 0, len(items))
	for id := range items {
		productIDs = append(productIDs, id)
	}

	sort.Slice(productIDs, func(i, j int) bool { return productIDs[i] < productIDs[j] })

	view := &models.CartView{Groups: []models.WholesalerGroup{}}
	groupIndex := map[int64]int{}

	for _, productID := range productIDs {
		quantity := items[productID]

		product, err := s.productRepo.GetProductByID(ctx, productID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}

			return nil, appErrors.DatabaseError("Failed to load product").WithError(err)
		}

		line := models.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			ImagePath: product.ImagePath,
			Quantity:  quantity,
			LineTotal: product.Price * float64(quantity),
		}

		idx, ok := groupIndex[product.WholesalerID]
		if !ok {
			view.Groups = append(view.Groups, models.WholesalerGroup{
				WholesalerID:   product.WholesalerID,
				WholesalerName: product.WholesalerName,
			})
			idx = len(view.Groups) - 1
			groupIndex[product.WholesalerID] = idx
		}

		view.Groups[idx].Items = append(view.Groups[idx].Items, line)
		view.Groups[idx].Subtotal += line.LineTotal
		view.GrandTotal += line.LineTotal
		view.TotalItems += quantity
	}

	return view, nil
}

func snapshot(items map[int64]int) *models.Snapshot {
	total := 0
	for _, quantity := range items {
		total += quantity
	}

	return &models.Snapshot{Items: items, TotalItems: total}
}
