package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"crm/internal/crm"
	"crm/internal/models"
)

type createProductRequest struct {
	Name     string       `json:"name" binding:"required"`
	Price    models.Money `json:"price"`
	Quantity int          `json:"quantity"`
}

func CreateProduct(svc *crm.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /products"
		defer handlePanic(c, route)

		var req createProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, bindingErrorMessage(err))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		product, message, err := svc.CreateProduct(ctx, crm.ProductInput{
			Name:     req.Name,
			Price:    req.Price,
			Quantity: req.Quantity,
		})
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"product": product,
			"message": message,
		})
	}
}

// RestockProducts runs the low-stock replenishment and reports the outcome
// through the success flag; the HTTP status stays 200 either way so the cron
// client reads one response shape.
func RestockProducts(svc *crm.Service, threshold, amount int) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /products/restock"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		result := svc.RestockLowStock(ctx, threshold, amount)

		products := make([]gin.H, 0, len(result.Products))
		for _, p := range result.Products {
			products = append(products, gin.H{
				"id":       p.ID.Hex(),
				"name":     p.Name,
				"quantity": p.Quantity,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"products": products,
			"success":  result.Success,
			"message":  result.Message,
		})
	}
}
