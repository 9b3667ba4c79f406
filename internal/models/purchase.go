package models

// PurchaseRequest is the body of a purchase call: how many units to add and
// which shopcart to add them to.
type PurchaseRequest struct {
	Amount     int `json:"amount" validate:"required,gt=0"`
	ShopcartID int `json:"shopcart_id" validate:"required"`
}
