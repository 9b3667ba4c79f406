package shopcart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Item is the wire shape the shopcart service expects when adding a product
// to a cart. ID, CreateTime, and UpdateTime are assigned by the shopcart
// service and sent as null.
type Item struct {
	ID         *uint       `json:"id"`
	SID        int         `json:"sid"`
	SKU        uint        `json:"sku"`
	Amount     int         `json:"amount"`
	Name       string      `json:"name"`
	Price      interface{} `json:"price"`
	CreateTime *time.Time  `json:"create_time"`
	UpdateTime *time.Time  `json:"update_time"`
}

// Client talks to the companion shopcart service.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a shopcart client for the given endpoint, e.g.
// "http://localhost:5000/shopcarts".
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
	}
}

// Exists checks whether the shopcart referenced by the request body exists.
// The shopcart API reads the cart id out of a JSON body on GET.
func (c *Client) Exists(body interface{}) (bool, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return false, fmt.Errorf("failed to marshal shopcart lookup body: %w", err)
	}

	req, err := http.NewRequest(http.MethodGet, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return false, fmt.Errorf("failed to build shopcart lookup request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("shopcart lookup failed: %w", err)
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK, nil
}

// AddItem posts an item into the given shopcart and reports whether the
// shopcart service accepted it.
func (c *Client) AddItem(shopcartID int, item Item) (bool, error) {
	payload, err := json.Marshal(item)
	if err != nil {
		return false, fmt.Errorf("failed to marshal shopcart item: %w", err)
	}

	url := fmt.Sprintf("%s/%d/items", c.endpoint, shopcartID)
	resp, err := c.httpClient.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return false, fmt.Errorf("failed to add item to shopcart %d: %w", shopcartID, err)
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK, nil
}
