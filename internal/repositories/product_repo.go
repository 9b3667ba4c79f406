package repositories

import (
	"errors"

	"products/internal/models"
)

// ErrProductNotFound is returned by lookups for ids that have no row.
// "Not found" is an expected outcome, not a storage failure.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	Find(filter models.ProductFilter) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
}
