package domain

import "time"

// DeliveryDriver is an entry in the courier directory.
type DeliveryDriver struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	VehicleNumber string    `json:"vehicleNumber"`
	IsActive      bool      `json:"isActive"`
	AvatarURL     string    `json:"avatarUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}
