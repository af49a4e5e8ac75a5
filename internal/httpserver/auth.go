package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	usersvc "tapto-backend/internal/service/user"
)

func requestMeta(c *gin.Context) usersvc.RequestMeta {
	return usersvc.RequestMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	}
}

func registerHandler(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in usersvc.RegisterInput
		if err := c.ShouldBindJSON(&in); err != nil {
			respondFail(c, http.StatusBadRequest, "invalid request body")
			return
		}
		user, token, err := users.Register(c.Request.Context(), in, requestMeta(c))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		respondMessage(c, http.StatusCreated, "account created", gin.H{"user": user, "token": token})
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func loginHandler(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in loginRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			respondFail(c, http.StatusBadRequest, "email and password are required")
			return
		}
		user, token, err := users.Login(c.Request.Context(), in.Email, in.Password, requestMeta(c))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		respond(c, http.StatusOK, gin.H{"user": user, "token": token})
	}
}

func profileHandler(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := currentClaims(c)
		user, err := users.Profile(c.Request.Context(), claims.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, user)
	}
}

func updateProfileHandler(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in usersvc.UpdateProfileInput
		if err := c.ShouldBindJSON(&in); err != nil {
			respondFail(c, http.StatusBadRequest, "invalid request body")
			return
		}
		claims := currentClaims(c)
		user, err := users.UpdateProfile(c.Request.Context(), claims.UserID, in, requestMeta(c))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		respondMessage(c, http.StatusOK, "profile updated", user)
	}
}

func myActivityHandler(activities activityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := activities.ListForUser(
			c.Request.Context(),
			currentClaims(c).UserID,
			queryInt(c, "page"),
			queryInt(c, "limit"),
		)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, page)
	}
}
