package domain

import "time"

// Activity actions recorded in the audit log.
const (
	ActivityLogin                = "LOGIN"
	ActivityLogout               = "LOGOUT"
	ActivityRegister             = "REGISTER"
	ActivityPasswordResetRequest = "PASSWORD_RESET_REQUEST"
	ActivityPasswordReset        = "PASSWORD_RESET"
	ActivityProfileUpdate        = "PROFILE_UPDATE"
	ActivityAccountDeleted       = "ACCOUNT_DELETED"
)

// UserActivity is one append-only audit log entry.
type UserActivity struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Action    string    `json:"action"`
	Details   string    `json:"details,omitempty"`
	IPAddress string    `json:"ipAddress,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
