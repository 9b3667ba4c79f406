package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

// Product represents a product in the catalog.
type Product struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"type:varchar(63);not null"`
	Description string `json:"description" gorm:"type:varchar(256);not null"`
	Category    string `json:"category" gorm:"type:varchar(63);not null"`
	Price       Price  `json:"price" gorm:"not null"`
}

// priceRx matches an unsigned decimal: optional leading +, digits with an
// optional fractional part, or a leading-dot form like ".5".
var priceRx = regexp.MustCompile(`^\+?([0-9]+(\.[0-9]*)?|\.[0-9]+)$`)

// Price carries a product price exactly as the client supplied it: a JSON
// number, a numeric string such as "9.99" or "+.5", or the empty string.
// The raw value is preserved through serialization and only projected to a
// number when it reaches the database or a price-range comparison.
type Price struct {
	raw interface{}
}

// PriceOf wraps a plain numeric price.
func PriceOf(v float64) Price {
	return Price{raw: v}
}

// Raw returns the value as received, or nil if the price was never set.
func (p Price) Raw() interface{} {
	return p.raw
}

// Float64 returns the numeric projection of the price. Unset prices, empty
// strings, and unparseable strings project to 0.
func (p Price) Float64() float64 {
	switch v := p.raw.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// MarshalJSON writes the raw value back out unchanged.
func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.raw)
}

// UnmarshalJSON stores whatever the client sent. Validation happens in
// Product.Deserialize, not here.
func (p *Price) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	p.raw = v
	return nil
}

// GormDataType tells the migrator what column to create for a Price.
func (Price) GormDataType() string {
	return "decimal(10,2)"
}

// Value implements driver.Valuer so GORM stores the numeric projection.
func (p Price) Value() (driver.Value, error) {
	return p.Float64(), nil
}

// Scan implements sql.Scanner.
func (p *Price) Scan(src interface{}) error {
	switch v := src.(type) {
	case float64:
		p.raw = v
	case int64:
		p.raw = float64(v)
	case []byte:
		f, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return fmt.Errorf("cannot scan %q into Price: %w", v, err)
		}
		p.raw = f
	case nil:
		p.raw = nil
	default:
		return fmt.Errorf("cannot scan %T into Price", src)
	}
	return nil
}

// Serialize projects the product into a flat string-keyed map, the exact
// inverse shape of what Deserialize consumes plus the id. A zero id
// serializes as nil because the product has not been persisted yet.
func (p *Product) Serialize() map[string]interface{} {
	var id interface{}
	if p.ID != 0 {
		id = p.ID
	}
	return map[string]interface{}{
		"id":          id,
		"name":        p.Name,
		"description": p.Description,
		"category":    p.Category,
		"price":       p.Price.Raw(),
	}
}

// Deserialize populates the product's business fields from an untyped
// request body. The id is never read from the body. Fields are assigned in
// order name, description, category, price; a failure on a later field does
// not roll back earlier assignments.
func (p *Product) Deserialize(data map[string]interface{}) (*Product, error) {
	if data == nil {
		return nil, ErrMalformedBody()
	}

	if raw, ok := data["price"]; ok {
		if err := validatePrice(raw); err != nil {
			return nil, err
		}
	}

	v, ok := data["name"]
	if !ok {
		return nil, ErrMissingField("name")
	}
	p.Name = stringValue(v)

	v, ok = data["description"]
	if !ok {
		return nil, ErrMissingField("description")
	}
	p.Description = stringValue(v)

	v, ok = data["category"]
	if !ok {
		return nil, ErrMissingField("category")
	}
	p.Category = stringValue(v)

	v, ok = data["price"]
	if !ok {
		return nil, ErrMissingField("price")
	}
	p.Price = Price{raw: v}

	return p, nil
}

// validatePrice accepts numeric values, strings matching priceRx, and the
// empty string. The empty string bypasses the pattern check entirely; that
// quirk is part of the service's public contract.
func validatePrice(raw interface{}) error {
	switch v := raw.(type) {
	case float64, float32, int, int64:
		return nil
	case string:
		if v == "" {
			return nil
		}
		if !priceRx.MatchString(v) {
			return ErrInvalidPrice()
		}
		return nil
	default:
		return ErrInvalidPrice()
	}
}

func stringValue(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
