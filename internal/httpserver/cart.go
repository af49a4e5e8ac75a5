package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cartsvc "tapto-backend/internal/service/cart"
)

func getCartHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := carts.GetOrCreate(c.Request.Context(), currentClaims(c).UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, cart)
	}
}

func addCartItemHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in cartsvc.ItemInput
		if err := c.ShouldBindJSON(&in); err != nil {
			respondFail(c, http.StatusBadRequest, "invalid request body")
			return
		}
		cart, err := carts.AddItem(c.Request.Context(), currentClaims(c).UserID, in)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		respond(c, http.StatusCreated, cart)
	}
}

func updateCartItemHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in cartsvc.ItemInput
		if err := c.ShouldBindJSON(&in); err != nil {
			respondFail(c, http.StatusBadRequest, "invalid request body")
			return
		}
		cart, err := carts.UpdateItemQuantity(c.Request.Context(), currentClaims(c).UserID, in)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		respond(c, http.StatusOK, cart)
	}
}

func removeCartItemHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := carts.RemoveItem(
			c.Request.Context(),
			currentClaims(c).UserID,
			c.Param("productId"),
			c.Query("size"),
			c.Query("color"),
		)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, cart)
	}
}

func clearCartHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := carts.Clear(c.Request.Context(), currentClaims(c).UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, http.StatusOK, "cart cleared", cart)
	}
}

type syncCartRequest struct {
	Items []cartsvc.ItemInput `json:"items"`
}

func syncCartHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in syncCartRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			respondFail(c, http.StatusBadRequest, "invalid request body")
			return
		}
		cart, err := carts.Sync(c.Request.Context(), currentClaims(c).UserID, in.Items)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		respond(c, http.StatusOK, cart)
	}
}
