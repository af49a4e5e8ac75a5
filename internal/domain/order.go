package domain

import "time"

// OrderStatus enumerates the order lifecycle states.
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusProcessing     OrderStatus = "processing"
	StatusShipped        OrderStatus = "shipped"
	StatusOutForDelivery OrderStatus = "outForDelivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
	StatusRefunded       OrderStatus = "refunded"
)

// OrderItem is an immutable line snapshotted from the catalog at order
// creation. Never re-derived from current catalog state.
type OrderItem struct {
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	ProductImage string  `json:"productImage"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unitPrice"`
	Size         string  `json:"size,omitempty"`
	Color        string  `json:"color,omitempty"`
}

// TrackingEvent is an append-only record in the order history.
type TrackingEvent struct {
	Status      string    `json:"status"`
	Description string    `json:"description"`
	Location    string    `json:"location,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// ShippingAddress is a snapshot of the destination, not a reference.
type ShippingAddress struct {
	ID       string `json:"id,omitempty"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Street   string `json:"street"`
	City     string `json:"city"`
	State    string `json:"state,omitempty"`
	ZipCode  string `json:"zipCode"`
	Country  string `json:"country"`
}

// PaymentMethod is a snapshot of the instrument used at checkout.
type PaymentMethod struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Last4 string `json:"last4,omitempty"`
}

// DeliveryPerson is the courier identity shown to the customer.
type DeliveryPerson struct {
	DriverID  string  `json:"driverId,omitempty"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Vehicle   string  `json:"vehicle"`
	Rating    float64 `json:"rating"`
	AvatarURL string  `json:"avatarUrl,omitempty"`
}

// GeoPoint is a WGS84 coordinate with the time it was reported.
type GeoPoint struct {
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Order is created once by checkout and mutated only through status
// transitions and location updates. It is never deleted; cancellation is a
// status, not a deletion.
type Order struct {
	ID                 string          `json:"id"`
	UserID             string          `json:"userId"`
	Items              []OrderItem     `json:"items"`
	ShippingAddress    ShippingAddress `json:"shippingAddress"`
	PaymentMethod      PaymentMethod   `json:"paymentMethod"`
	Subtotal           float64         `json:"subtotal"`
	ShippingFee        float64         `json:"shippingFee"`
	Tax                float64         `json:"tax"`
	Total              float64         `json:"total"`
	Status             OrderStatus     `json:"status"`
	TrackingNumber     string          `json:"trackingNumber"`
	Tracking           []TrackingEvent `json:"tracking"`
	CancellationReason string          `json:"cancellationReason,omitempty"`
	DeliveryPerson     *DeliveryPerson `json:"deliveryPerson,omitempty"`
	LiveLocation       *GeoPoint       `json:"liveLocation,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
	DeliveredAt        *time.Time      `json:"deliveredAt,omitempty"`
}
