package domain

import "time"

// Cart is the single mutable per-user collection of line items. One cart per
// user, created lazily on first access.
type Cart struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CartItem is one (product, size, color) line. Name, image and price are
// snapshots of the catalog at the time of the last write to the line.
type CartItem struct {
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	ProductImage string  `json:"productImage"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unitPrice"`
	Size         string  `json:"size,omitempty"`
	Color        string  `json:"color,omitempty"`
}

// ItemKey identifies a cart line for merging. Missing size/color are treated
// as the empty string.
type ItemKey struct {
	ProductID string
	Size      string
	Color     string
}

// Key returns the merge identity of the line.
func (i CartItem) Key() ItemKey {
	return ItemKey{ProductID: i.ProductID, Size: i.Size, Color: i.Color}
}
