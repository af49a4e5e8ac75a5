package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tapto-backend/internal/domain"
	usersvc "tapto-backend/internal/service/user"
)

// envelope is the wire shape of every API response.
type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, envelope{Success: true, Data: data})
}

func respondMessage(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, envelope{Success: true, Message: message, Data: data})
}

func respondFail(c *gin.Context, status int, message string) {
	c.JSON(status, envelope{Success: false, Message: message})
}

// respondError maps domain errors onto statuses. Anything unrecognized is a
// 500 with a generic message so internals never leak to clients.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondFail(c, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrItemNotFound):
		respondFail(c, http.StatusNotFound, "item not found in cart")
	case errors.Is(err, domain.ErrAlreadyExists):
		respondFail(c, http.StatusBadRequest, "already exists")
	case errors.Is(err, domain.ErrInvalidTransition):
		respondFail(c, http.StatusBadRequest, "invalid status transition")
	case errors.Is(err, usersvc.ErrInvalidCredentials):
		respondFail(c, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, domain.ErrUnauthorized):
		respondFail(c, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		respondFail(c, http.StatusForbidden, "forbidden")
	default:
		respondFail(c, http.StatusInternalServerError, "internal error")
	}
}

// respondServiceError surfaces validation messages to the client and defers
// everything else to the domain error mapping.
func respondServiceError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		respondFail(c, http.StatusBadRequest, ve.Error())
		return
	}
	respondError(c, err)
}
