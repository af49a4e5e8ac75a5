package domain

import "time"

// Role controls access to the admin back office.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is a registered account.
type User struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"-"`
	FullName           string    `json:"fullName"`
	Role               Role      `json:"role"`
	PhoneNumber        string    `json:"phoneNumber,omitempty"`
	ShoppingPreference string    `json:"shoppingPreference,omitempty"`
	ProfilePicture     string    `json:"profilePicture,omitempty"`
	Country            string    `json:"country,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
