package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mandilink/mandilink/internal/models"
	"github.com/mandilink/mandilink/internal/utils"
)

// ProductRepository is the catalog reader plus the wholesaler-side catalog
// writes. Cart and checkout consume it read-only.
type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	UpdateStock(ctx context.Context, productID, wholesalerID int64, stock int, status string) error
	DeleteProduct(ctx context.Context, productID, wholesalerID int64) error
	ListByWholesaler(ctx context.Context, wholesalerID int64) ([]*models.Product, error)
	ListAvailableByWholesaler(ctx context.Context, wholesalerID int64) ([]*models.Product, error)
	ListByCategory(ctx context.Context, category string) ([]*models.Product, error)
	Search(ctx context.Context, query string) ([]*models.Product, error)
	Filter(ctx context.Context, req *models.FilterProductsRequest) ([]*models.Product, error)
	ListFeatured(ctx context.Context, limit int) ([]*models.Product, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO products (wholesaler_id, name, category, price, stock, group_buy_eligible, image_path, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		product.WholesalerID, product.Name, product.Category, product.Price,
		product.Stock, product.GroupBuyEligible, product.ImagePath, product.Status,
	).Scan(&product.ID, &product.CreatedAt)
}

func (r *productRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	product := &models.Product{}

	query := `
		SELECT p.id, p.wholesaler_id, p.name, p.category, p.price, p.stock,
		       p.group_buy_eligible, COALESCE(p.image_path, ''), p.views, p.likes, p.status, p.created_at,
		       w.name, w.trust_score
		FROM products p
		JOIN wholesalers w ON p.wholesaler_id = w.id
		WHERE p.id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(
		&product.ID, &product.WholesalerID, &product.Name, &product.Category,
		&product.Price, &product.Stock, &product.GroupBuyEligible, &product.ImagePath,
		&product.Views, &product.Likes, &product.Status, &product.CreatedAt,
		&product.WholesalerName, &product.TrustScore,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products
		SET name = $1, category = $2, price = $3, stock = $4, status = $5, image_path = $6
		WHERE id = $7 AND wholesaler_id = $8
	`

	result, err := r.DB.ExecContext(dbCtx, query,
		product.Name, product.Category, product.Price, product.Stock,
		product.Status, product.ImagePath, product.ID, product.WholesalerID)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	return requireRowsAffected(result)
}

func (r *productRepository) UpdateStock(ctx context.Context, productID, wholesalerID int64, stock int, status string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE products SET stock = $1, status = $2 WHERE id = $3 AND wholesaler_id = $4`

	result, err := r.DB.ExecContext(dbCtx, query, stock, status, productID, wholesalerID)
	if err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}

	return requireRowsAffected(result)
}

func (r *productRepository) DeleteProduct(ctx context.Context, productID, wholesalerID int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM products WHERE id = $1 AND wholesaler_id = $2`

	result, err := r.DB.ExecContext(dbCtx, query, productID, wholesalerID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return requireRowsAffected(result)
}

func (r *productRepository) ListByWholesaler(ctx context.Context, wholesalerID int64) ([]*models.Product, error) {
	query := `
		SELECT p.id, p.wholesaler_id, p.name, p.category, p.price, p.stock,
		       p.group_buy_eligible, COALESCE(p.image_path, ''), p.views, p.likes, p.status, p.created_at
		FROM products p
		WHERE p.wholesaler_id = $1
		ORDER BY p.created_at DESC
	`

	return r.queryProducts(ctx, query, false, wholesalerID)
}

// ListAvailableByWholesaler is the vendor-facing storefront view: in-stock
// items only.
func (r *productRepository) ListAvailableByWholesaler(ctx context.Context, wholesalerID int64) ([]*models.Product, error) {
	query := `
		SELECT p.id, p.wholesaler_id, p.name, p.category, p.price, p.stock,
		       p.group_buy_eligible, COALESCE(p.image_path, ''), p.views, p.likes, p.status, p.created_at
		FROM products p
		WHERE p.wholesaler_id = $1 AND p.stock > 0
		ORDER BY p.name
	`

	return r.queryProducts(ctx, query, false, wholesalerID)
}

func (r *productRepository) ListByCategory(ctx context.Context, category string) ([]*models.Product, error) {
	query := `
		SELECT p.id, p.wholesaler_id, p.name, p.category, p.price, p.stock,
		       p.group_buy_eligible, COALESCE(p.image_path, ''), p.views, p.likes, p.status, p.created_at,
		       w.name, w.trust_score
		FROM products p
		JOIN wholesalers w ON p.wholesaler_id = w.id
		WHERE p.category = $1 AND w.is_approved = TRUE AND p.stock > 0
		ORDER BY w.trust_score DESC, p.views DESC
	`

	return r.queryProducts(ctx, query, true, category)
}

func (r *productRepository) Search(ctx context.Context, query string) ([]*models.Product, error) {
	sqlQuery := `
		SELECT p.id, p.wholesaler_id, p.name, p.category, p.price, p.stock,
		       p.group_buy_eligible, COALESCE(p.image_path, ''), p.views, p.likes, p.status, p.created_at,
		       w.name, w.trust_score
		FROM products p
		JOIN wholesalers w ON p.wholesaler_id = w.id
		WHERE p.name ILIKE $1 AND w.is_approved = TRUE AND p.stock > 0
		ORDER BY w.trust_score DESC, p.views DESC
	`

	return r.queryProducts(ctx, sqlQuery, true, "%"+query+"%")
}

func (r *productRepository) Filter(ctx context.Context, req *models.FilterProductsRequest) ([]*models.Product, error) {

	sqlQuery := `
		SELECT p.id, p.wholesaler_id, p.name, p.category, p.price, p.stock,
		       p.group_buy_eligible, COALESCE(p.image_path, ''), p.views, p.likes, p.status, p.created_at,
		       w.name, w.trust_score
		FROM products p
		JOIN wholesalers w ON p.wholesaler_id = w.id
		WHERE w.is_approved = TRUE AND p.stock > 0
	`

	var args []any

	if req.MaxBudget > 0 {
		args = append(args, req.MaxBudget)
		sqlQuery += fmt.Sprintf(" AND p.price <= $%d", len(args))
	}

	if req.Category != "" && req.Category != "All Categories" {
		args = append(args, req.Category)
		sqlQuery += fmt.Sprintf(" AND p.category = $%d", len(args))
	}

	switch req.SortBy {
	case "Price Low to High":
		sqlQuery += " ORDER BY p.price ASC"
	case "Price High to Low":
		sqlQuery += " ORDER BY p.price DESC"
	default:
		sqlQuery += " ORDER BY p.views DESC"
	}

	if req.Limit > 0 {
		args = append(args, req.Limit)
		sqlQuery += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	return r.queryProducts(ctx, sqlQuery, true, args...)
}

func (r *productRepository) ListFeatured(ctx context.Context, limit int) ([]*models.Product, error) {
	query := `
		SELECT p.id, p.wholesaler_id, p.name, p.category, p.price, p.stock,
		       p.group_buy_eligible, COALESCE(p.image_path, ''), p.views, p.likes, p.status, p.created_at,
		       w.name, w.trust_score
		FROM products p
		JOIN wholesalers w ON p.wholesaler_id = w.id
		WHERE w.is_approved = TRUE AND p.stock > 0
		ORDER BY p.views DESC
		LIMIT $1
	`

	return r.queryProducts(ctx, query, true, limit)
}

func (r *productRepository) queryProducts(ctx context.Context, query string, withWholesaler bool, args ...any) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	defer rows.Close()

	var products []*models.Product

	for rows.Next() {
		product := &models.Product{}

		dest := []any{
			&product.ID, &product.WholesalerID, &product.Name, &product.Category,
			&product.Price, &product.Stock, &product.GroupBuyEligible, &product.ImagePath,
			&product.Views, &product.Likes, &product.Status, &product.CreatedAt,
		}
		if withWholesaler {
			dest = append(dest, &product.WholesalerName, &product.TrustScore)
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func requireRowsAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
