package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"crm/internal/crm"
)

/* =========================
   REQUEST DTOs
========================= */

type customerRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"omitempty,phone"`
}

// Bulk items deliberately carry no per-field phone or email rules: the
// engine runs those checks itself so it can collect one message per failing
// item and roll the whole batch back. A binding tag here would short-circuit
// the batch with a single generic error instead.
type bulkCustomerRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Phone     string `json:"phone"`
}

type bulkCreateCustomersRequest struct {
	Customers []bulkCustomerRequest `json:"customers" binding:"required,min=1,dive"`
}

func (r customerRequest) toInput() crm.CustomerInput {
	return crm.CustomerInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
	}
}

func (r bulkCustomerRequest) toInput() crm.CustomerInput {
	return crm.CustomerInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
	}
}

/* =========================
   CREATE CUSTOMER
========================= */

func CreateCustomer(svc *crm.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /customers"
		defer handlePanic(c, route)

		var req customerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, bindingErrorMessage(err))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		customer, message, err := svc.CreateCustomer(ctx, req.toInput())
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"customer": customer,
			"message":  message,
		})
	}
}

/* =========================
   BULK CREATE CUSTOMERS
========================= */

func BulkCreateCustomers(svc *crm.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /customers/bulk"
		defer handlePanic(c, route)

		var req bulkCreateCustomersRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, bindingErrorMessage(err))
			return
		}

		inputs := make([]crm.CustomerInput, 0, len(req.Customers))
		for _, item := range req.Customers {
			inputs = append(inputs, item.toInput())
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		created, err := svc.BulkCreateCustomers(ctx, inputs)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"customers": created,
			"errors":    []string{},
		})
	}
}
