package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	addrsvc "tapto-backend/internal/service/address"
)

func listAddressesHandler(addresses addressService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := addresses.List(c.Request.Context(), currentClaims(c).UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, list)
	}
}

func getAddressHandler(addresses addressService) gin.HandlerFunc {
	return func(c *gin.Context) {
		addr, err := addresses.Get(c.Request.Context(), c.Param("addressId"), currentClaims(c).UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, addr)
	}
}

func createAddressHandler(addresses addressService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in addrsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			respondFail(c, http.StatusBadRequest, "invalid request body")
			return
		}
		addr, err := addresses.Create(c.Request.Context(), currentClaims(c).UserID, in)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		respondMessage(c, http.StatusCreated, "address added", addr)
	}
}

func updateAddressHandler(addresses addressService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in addrsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			respondFail(c, http.StatusBadRequest, "invalid request body")
			return
		}
		addr, err := addresses.Update(c.Request.Context(), c.Param("addressId"), currentClaims(c).UserID, in)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		respondMessage(c, http.StatusOK, "address updated", addr)
	}
}

func deleteAddressHandler(addresses addressService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := addresses.Delete(c.Request.Context(), c.Param("addressId"), currentClaims(c).UserID); err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, http.StatusOK, "address removed", nil)
	}
}

func setDefaultAddressHandler(addresses addressService) gin.HandlerFunc {
	return func(c *gin.Context) {
		addr, err := addresses.SetDefault(c.Request.Context(), c.Param("addressId"), currentClaims(c).UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, http.StatusOK, "default address set", addr)
	}
}
