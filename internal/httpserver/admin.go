package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	activityrepo "tapto-backend/internal/repository/activity"
	driversvc "tapto-backend/internal/service/driver"
)

func dashboardStatsHandler(admin adminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		dash, err := admin.Dashboard(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, dash)
	}
}

func listUsersHandler(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := users.ListAll(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, list)
	}
}

func listAllOrdersHandler(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := orders.ListAll(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, list)
	}
}

func listActivitiesHandler(activities activityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := activityrepo.Filter{
			UserID: c.Query("userId"),
			Action: c.Query("action"),
			Page:   queryInt(c, "page"),
			Limit:  queryInt(c, "limit"),
		}
		if t, err := time.Parse(time.RFC3339, c.Query("startDate")); err == nil {
			f.StartDate = &t
		}
		if t, err := time.Parse(time.RFC3339, c.Query("endDate")); err == nil {
			f.EndDate = &t
		}

		page, err := activities.List(c.Request.Context(), f)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, page)
	}
}

func activityStatsHandler(activities activityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := activities.Stats(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, stats)
	}
}

func listDriversHandler(drivers driverService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := drivers.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, list)
	}
}

func getDriverHandler(drivers driverService) gin.HandlerFunc {
	return func(c *gin.Context) {
		driver, err := drivers.Get(c.Request.Context(), c.Param("driverId"))
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, driver)
	}
}

func createDriverHandler(drivers driverService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in driversvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			respondFail(c, http.StatusBadRequest, "invalid request body")
			return
		}
		driver, err := drivers.Create(c.Request.Context(), in)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		respondMessage(c, http.StatusCreated, "driver added", driver)
	}
}

func updateDriverHandler(drivers driverService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in driversvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			respondFail(c, http.StatusBadRequest, "invalid request body")
			return
		}
		driver, err := drivers.Update(c.Request.Context(), c.Param("driverId"), in)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		respondMessage(c, http.StatusOK, "driver updated", driver)
	}
}

func deleteDriverHandler(drivers driverService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := drivers.Delete(c.Request.Context(), c.Param("driverId")); err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, http.StatusOK, "driver removed", nil)
	}
}
