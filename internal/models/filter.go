package models

import "strings"

// PriceRange is an inclusive price interval. Both bounds are always set
// together; the HTTP layer rejects queries that supply only one.
type PriceRange struct {
	Minimum float64
	Maximum float64
}

// ProductFilter describes which query dimensions a caller supplied. A nil
// field imposes no constraint, so the zero filter matches every product.
type ProductFilter struct {
	Name        *string
	Category    *string
	Description *string
	Price       *PriceRange
}

// IsZero reports whether no dimension is set.
func (f ProductFilter) IsZero() bool {
	return f.Name == nil && f.Category == nil && f.Description == nil && f.Price == nil
}

// Matches folds the present dimensions into a single AND predicate:
// case-insensitive substring on name and description, case-insensitive
// equality on category, and inclusive bounds on price.
func (f ProductFilter) Matches(p *Product) bool {
	if f.Name != nil && !containsFold(p.Name, *f.Name) {
		return false
	}
	if f.Category != nil && !strings.EqualFold(p.Category, *f.Category) {
		return false
	}
	if f.Description != nil && !containsFold(p.Description, *f.Description) {
		return false
	}
	if f.Price != nil {
		price := p.Price.Float64()
		if price < f.Price.Minimum || price > f.Price.Maximum {
			return false
		}
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
