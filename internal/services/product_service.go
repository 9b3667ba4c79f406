package services

import (
	"errors"
	"fmt"
	"log"

	"products/internal/models"
	"products/internal/repositories"
	"products/pkg/shopcart"
)

// ErrShopcartNotFound is returned by PurchaseProduct when the companion
// shopcart service does not know the cart or refuses the item.
var ErrShopcartNotFound = errors.New("shopcart does not exist")

// ShopcartClient is the outbound contract to the companion shopcart service.
type ShopcartClient interface {
	Exists(body interface{}) (bool, error)
	AddItem(shopcartID int, item shopcart.Item) (bool, error)
}

// EventPublisher publishes product lifecycle events.
type EventPublisher interface {
	PublishProductEvent(eventType string, payload map[string]interface{}) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo     repositories.ProductRepository
	shopcart ShopcartClient
	events   EventPublisher
}

// NewProductService creates a new ProductService. The shopcart client and
// event publisher may be nil; purchasing then fails cleanly and events are
// skipped.
func NewProductService(repo repositories.ProductRepository, cart ShopcartClient, events EventPublisher) *ProductService {
	return &ProductService{
		repo:     repo,
		shopcart: cart,
		events:   events,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// FindProducts retrieves the products matching the filter.
func (s *ProductService) FindProducts(filter models.ProductFilter) ([]models.Product, error) {
	return s.repo.Find(filter)
}

// CreateProduct persists a new product. Any id the caller set is discarded;
// the store assigns one.
func (s *ProductService) CreateProduct(product *models.Product) error {
	product.ID = 0
	if err := s.repo.Create(product); err != nil {
		return err
	}
	s.publishEvent("product.created", product.Serialize())
	return nil
}

// UpdateProduct persists changes to an existing product. The product must
// already carry the id of a persisted row.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	if product.ID == 0 {
		return models.ErrMissingID()
	}
	return s.repo.Update(product)
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id uint) error {
	return s.repo.Delete(id)
}

// PurchaseProduct adds the product to a shopcart held by the companion
// shopcart service. The cart must exist and accept the item; otherwise
// ErrShopcartNotFound is returned.
func (s *ProductService) PurchaseProduct(id uint, req models.PurchaseRequest) error {
	if s.shopcart == nil {
		return fmt.Errorf("shopcart client is not configured")
	}

	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	exists, err := s.shopcart.Exists(req)
	if err != nil {
		return fmt.Errorf("failed to check shopcart %d: %w", req.ShopcartID, err)
	}
	if !exists {
		return ErrShopcartNotFound
	}

	item := shopcart.Item{
		SID:    req.ShopcartID,
		SKU:    product.ID,
		Amount: req.Amount,
		Name:   product.Name,
		Price:  product.Price.Raw(),
	}
	added, err := s.shopcart.AddItem(req.ShopcartID, item)
	if err != nil {
		return fmt.Errorf("failed to add product %d to shopcart %d: %w", product.ID, req.ShopcartID, err)
	}
	if !added {
		return ErrShopcartNotFound
	}

	s.publishEvent("product.purchased", map[string]interface{}{
		"product_id":  product.ID,
		"shopcart_id": req.ShopcartID,
		"amount":      req.Amount,
	})
	return nil
}

// publishEvent is fire and forget: a broker outage must not fail the
// request that triggered the event.
func (s *ProductService) publishEvent(eventType string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishProductEvent(eventType, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", eventType, err)
	}
}
