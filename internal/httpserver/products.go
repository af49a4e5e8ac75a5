package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	productsvc "tapto-backend/internal/service/product"
)

func listProductsHandler(products productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		in := productsvc.ListInput{
			Category: c.Query("category"),
			Search:   c.Query("search"),
			Page:     queryInt(c, "page"),
			Limit:    queryInt(c, "limit"),
		}
		if v, err := strconv.ParseFloat(c.Query("minPrice"), 64); err == nil {
			in.MinPrice = &v
		}
		if v, err := strconv.ParseFloat(c.Query("maxPrice"), 64); err == nil {
			in.MaxPrice = &v
		}

		page, err := products.List(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, page)
	}
}

func queryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}

func getProductHandler(products productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := products.Get(c.Request.Context(), c.Param("productId"))
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, p)
	}
}

func listCategoriesHandler(products productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := products.Categories(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, categories)
	}
}

func createProductHandler(products productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in productsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			respondFail(c, http.StatusBadRequest, "invalid request body")
			return
		}
		p, err := products.Create(c.Request.Context(), currentClaims(c).UserID, in)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		respondMessage(c, http.StatusCreated, "product created", p)
	}
}

func updateProductHandler(products productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in productsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			respondFail(c, http.StatusBadRequest, "invalid request body")
			return
		}
		p, err := products.Update(c.Request.Context(), c.Param("productId"), in)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		respondMessage(c, http.StatusOK, "product updated", p)
	}
}

func deleteProductHandler(products productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := products.Delete(c.Request.Context(), c.Param("productId")); err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, http.StatusOK, "product deleted", nil)
	}
}
