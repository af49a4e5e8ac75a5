package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tapto-backend/internal/domain"
	ordersvc "tapto-backend/internal/service/order"
)

func createOrderHandler(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in ordersvc.CreateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			respondFail(c, http.StatusBadRequest, "invalid request body")
			return
		}
		order, err := orders.Create(c.Request.Context(), currentClaims(c).UserID, in)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		respondMessage(c, http.StatusCreated, "order placed", order)
	}
}

func myOrdersHandler(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := orders.ListMine(c.Request.Context(), currentClaims(c).UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, list)
	}
}

func getOrderHandler(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := currentClaims(c)
		order, err := orders.GetForUser(c.Request.Context(), c.Param("orderId"), claims.UserID, claims.IsAdmin())
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, order)
	}
}

func trackOrderHandler(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := currentClaims(c)
		// Ownership gate first so tracking does not leak foreign orders.
		if _, err := orders.GetForUser(c.Request.Context(), c.Param("orderId"), claims.UserID, claims.IsAdmin()); err != nil {
			respondError(c, err)
			return
		}
		info, err := orders.Track(c.Request.Context(), c.Param("orderId"))
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, info)
	}
}

type cancelOrderRequest struct {
	Reason string `json:"reason"`
}

func cancelOrderHandler(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in cancelOrderRequest
		if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Reason) == "" {
			respondFail(c, http.StatusBadRequest, "cancellation reason is required")
			return
		}
		claims := currentClaims(c)
		if _, err := orders.GetForUser(c.Request.Context(), c.Param("orderId"), claims.UserID, claims.IsAdmin()); err != nil {
			respondError(c, err)
			return
		}
		order, err := orders.Cancel(c.Request.Context(), c.Param("orderId"), in.Reason)
		if err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, http.StatusOK, "order cancelled", order)
	}
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func updateOrderStatusHandler(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in updateStatusRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			respondFail(c, http.StatusBadRequest, "status is required")
			return
		}
		order, err := orders.UpdateStatus(c.Request.Context(), c.Param("orderId"), domain.OrderStatus(in.Status))
		if err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, http.StatusOK, "status updated", order)
	}
}

type assignDriverRequest struct {
	DriverID string `json:"driverId" binding:"required"`
}

func assignDriverHandler(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in assignDriverRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			respondFail(c, http.StatusBadRequest, "driverId is required")
			return
		}
		order, err := orders.AssignDriver(c.Request.Context(), c.Param("orderId"), in.DriverID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, http.StatusOK, "driver assigned to order", order)
	}
}

type updateLocationRequest struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lng *float64 `json:"lng" binding:"required"`
}

func updateLocationHandler(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in updateLocationRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			respondFail(c, http.StatusBadRequest, "lat and lng are required")
			return
		}
		order, err := orders.UpdateLiveLocation(c.Request.Context(), c.Param("orderId"), *in.Lat, *in.Lng)
		if err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, http.StatusOK, "location updated", order)
	}
}
