package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"products/internal/models"
	"products/internal/repositories"
	"products/internal/services"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
	productRoutes.Post("/:id/purchase", h.HandlePurchaseProduct)
}

// HandleListProducts returns the products matching the optional query
// dimensions name, category, description, and minimum/maximum price. With
// no parameters it returns every product.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	var filter models.ProductFilter

	if name := c.Query("name"); name != "" {
		filter.Name = &name
	}
	if category := c.Query("category"); category != "" {
		filter.Category = &category
	}
	if description := c.Query("description"); description != "" {
		filter.Description = &description
	}

	minimum := c.Query("minimum")
	maximum := c.Query("maximum")
	if minimum != "" || maximum != "" {
		if minimum == "" || maximum == "" {
			return badRequest(c, "Minimum and Maximum cannot be empty")
		}
		min, err := strconv.ParseFloat(minimum, 64)
		if err != nil {
			return badRequest(c, fmt.Sprintf("Invalid minimum price: %s", minimum))
		}
		max, err := strconv.ParseFloat(maximum, 64)
		if err != nil {
			return badRequest(c, fmt.Sprintf("Invalid maximum price: %s", maximum))
		}
		filter.Price = &models.PriceRange{Minimum: min, Maximum: max}
	}

	var (
		products []models.Product
		err      error
	)
	if filter.IsZero() {
		products, err = h.service.GetAllProducts()
	} else {
		products, err = h.service.FindProducts(filter)
	}
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return internalError(c, "Could not retrieve products")
	}

	results := make([]map[string]interface{}, 0, len(products))
	for i := range products {
		results = append(results, products[i].Serialize())
	}
	log.Printf("Returning %d products", len(results))
	return c.JSON(results)
}

// HandleCreateProduct creates a product from the posted JSON body.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	if !hasJSONContentType(c) {
		return unsupportedMediaType(c)
	}

	product := &models.Product{}
	if _, err := product.Deserialize(requestBody(c)); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.service.CreateProduct(product); err != nil {
		log.Printf("Error creating product: %v", err)
		return internalError(c, "Could not create product")
	}

	log.Printf("Product with ID [%d] created.", product.ID)
	c.Set(fiber.HeaderLocation, fmt.Sprintf("/products/%d", product.ID))
	return c.Status(fiber.StatusCreated).JSON(product.Serialize())
}

// HandleGetProduct returns a single product by its id.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 0 {
		return productNotFound(c, c.Params("id"))
	}

	product, err := h.service.GetProductByID(uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return productNotFound(c, c.Params("id"))
		}
		log.Printf("Error getting product %d: %v", id, err)
		return internalError(c, "Could not retrieve product")
	}

	return c.JSON(product.Serialize())
}

// HandleUpdateProduct overwrites the business fields of an existing product
// with the posted JSON body, preserving its id.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	if !hasJSONContentType(c) {
		return unsupportedMediaType(c)
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 0 {
		return productNotFound(c, c.Params("id"))
	}

	product, err := h.service.GetProductByID(uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return productNotFound(c, c.Params("id"))
		}
		log.Printf("Error getting product %d for update: %v", id, err)
		return internalError(c, "Could not retrieve product")
	}

	if _, err := product.Deserialize(requestBody(c)); err != nil {
		return badRequest(c, err.Error())
	}
	product.ID = uint(id)

	if err := h.service.UpdateProduct(product); err != nil {
		// The row can vanish between the lookup above and the update.
		if errors.Is(err, repositories.ErrProductNotFound) {
			return productNotFound(c, c.Params("id"))
		}
		log.Printf("Error updating product %d: %v", id, err)
		return internalError(c, "Could not update product")
	}

	log.Printf("Product with ID [%d] updated.", product.ID)
	return c.JSON(product.Serialize())
}

// HandleDeleteProduct deletes a product by its id. Deleting a product that
// does not exist still returns 204.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 0 {
		return productNotFound(c, c.Params("id"))
	}

	if err := h.service.DeleteProduct(uint(id)); err != nil {
		log.Printf("Error deleting product %d: %v", id, err)
		return internalError(c, "Could not delete product")
	}

	log.Printf("Product with ID [%d] delete complete.", id)
	return c.SendStatus(fiber.StatusNoContent)
}

// HandlePurchaseProduct adds an existing product to a shopcart held by the
// companion shopcart service.
func (h *ProductHandler) HandlePurchaseProduct(c *fiber.Ctx) error {
	if !hasJSONContentType(c) {
		return unsupportedMediaType(c)
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 0 {
		return productNotFound(c, c.Params("id"))
	}

	var req models.PurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid purchase request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, fmt.Sprintf("Invalid purchase request: %v", err))
	}

	err = h.service.PurchaseProduct(uint(id), req)
	switch {
	case err == nil:
		return c.SendString("Product successfully added into the shopping cart")
	case errors.Is(err, repositories.ErrProductNotFound):
		return productNotFound(c, c.Params("id"))
	case errors.Is(err, services.ErrShopcartNotFound):
		return c.Status(fiber.StatusNotFound).
			SendString("Product was not added in the shopping cart because shopcart does not exist")
	default:
		log.Printf("Error purchasing product %d: %v", id, err)
		return internalError(c, "Could not purchase product")
	}
}

// requestBody decodes the request body into the untyped map Deserialize
// consumes. A body that is not a JSON object comes back nil, which
// Deserialize reports as a malformed body.
func requestBody(c *fiber.Ctx) map[string]interface{} {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return nil
	}
	return body
}

func hasJSONContentType(c *fiber.Ctx) bool {
	return c.Get(fiber.HeaderContentType) == fiber.MIMEApplicationJSON
}

func badRequest(c *fiber.Ctx, message string) error {
	log.Printf("Bad request: %s", message)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"status":  fiber.StatusBadRequest,
		"error":   "Bad Request",
		"message": message,
	})
}

func productNotFound(c *fiber.Ctx, id string) error {
	message := fmt.Sprintf("Product with id '%s' was not found.", id)
	log.Printf("Not found: %s", message)
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"status":  fiber.StatusNotFound,
		"error":   "Not Found",
		"message": message,
	})
}

func internalError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"status":  fiber.StatusInternalServerError,
		"error":   "Internal Server Error",
		"message": message,
	})
}

func unsupportedMediaType(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{
		"status":  fiber.StatusUnsupportedMediaType,
		"error":   "Unsupported media type",
		"message": "Content-Type must be application/json",
	})
}
