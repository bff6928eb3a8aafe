package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"crm/internal/crm"
)

type createOrderRequest struct {
	CustomerID string `json:"customerId" binding:"required"`
	// No binding tag: an empty list must fail in the engine with its own
	// message, not as a generic binding error.
	ProductIDs []string   `json:"productIds"`
	OrderDate  *time.Time `json:"orderDate"`
}

func CreateOrder(svc *crm.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders"
		defer handlePanic(c, route)

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, bindingErrorMessage(err))
			return
		}

		// A malformed customer id can never resolve, so it reads the same
		// as a missing customer to the caller.
		customerID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.CustomerID))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "Customer does not exist")
			return
		}

		productIDs := make([]primitive.ObjectID, 0, len(req.ProductIDs))
		for _, raw := range req.ProductIDs {
			id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "One or more product IDs are invalid")
				return
			}
			productIDs = append(productIDs, id)
		}

		input := crm.OrderInput{
			CustomerID: customerID,
			ProductIDs: productIDs,
		}
		if req.OrderDate != nil {
			input.OrderDate = *req.OrderDate
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		order, err := svc.CreateOrder(ctx, input)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"order": order})
	}
}

/* =========================
   GET ORDERS
========================= */

// GetOrders lists orders, optionally restricted to ?since=YYYY-MM-DD (or
// RFC 3339). The reminder sweep calls this with since = 7 days ago.
func GetOrders(svc *crm.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders"
		defer handlePanic(c, route)

		var since time.Time
		if raw := strings.TrimSpace(c.Query("since")); raw != "" {
			parsed, err := parseSinceDate(raw)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid since date")
				return
			}
			since = parsed
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		orders, err := svc.OrdersSince(ctx, since)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		rows := make([]gin.H, 0, len(orders))
		for _, order := range orders {
			rows = append(rows, gin.H{
				"id":            order.ID.Hex(),
				"orderDate":     order.OrderDate,
				"customerEmail": order.CustomerEmail,
			})
		}

		c.JSON(http.StatusOK, gin.H{"orders": rows})
	}
}

func parseSinceDate(raw string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", raw)
}
