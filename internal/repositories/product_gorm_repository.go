package repositories

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"products/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// Find retrieves the products matching the filter. Each present dimension
// is folded into the query as one more WHERE clause; an empty filter returns
// every product. Row order is whatever the store returns.
func (r *GORMProductRepository) Find(filter models.ProductFilter) ([]models.Product, error) {
	tx := r.db.Model(&models.Product{})
	if filter.Name != nil {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(*filter.Name)+"%")
	}
	if filter.Category != nil {
		tx = tx.Where("LOWER(category) = ?", strings.ToLower(*filter.Category))
	}
	if filter.Description != nil {
		tx = tx.Where("LOWER(description) LIKE ?", "%"+strings.ToLower(*filter.Description)+"%")
	}
	if filter.Price != nil {
		tx = tx.Where("price BETWEEN ? AND ?", filter.Price.Minimum, filter.Price.Maximum)
	}

	var products []models.Product
	if err := tx.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	return products, nil
}

// Create inserts a new product. Any caller-supplied id is discarded so the
// database always assigns one.
func (r *GORMProductRepository) Create(product *models.Product) error {
	product.ID = 0
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update persists changes to an existing product.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Save does not return ErrRecordNotFound when nothing matched,
		// so we check RowsAffected ourselves.
		return ErrProductNotFound
	}
	return nil
}

// Delete removes a product by its ID. Deleting an absent product is not an
// error; the operation is idempotent.
func (r *GORMProductRepository) Delete(id uint) error {
	if err := r.db.Delete(&models.Product{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}
