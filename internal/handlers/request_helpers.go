package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"crm/internal/crm"
)

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		log.Printf("[%s] panic recovered: %v", route, r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func ensureDBConnection(ctx context.Context, db *mongo.Database) error {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return db.Client().Ping(checkCtx, readpref.Primary())
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	log.Printf("[%s] returning error %d: %s", route, status, message)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// respondServiceError maps engine errors onto the API shapes: single rule
// violations become {"error": reason}, bulk failures become {"errors": [...]}
// and storage failures stay opaque.
func respondServiceError(c *gin.Context, route string, err error) {
	var aggregate crm.AggregateValidationError
	if errors.As(err, &aggregate) {
		log.Printf("[%s] bulk validation failed with %d errors", route, len(aggregate.Errors))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": aggregate.Errors})
		return
	}

	var validation crm.ValidationError
	if errors.As(err, &validation) {
		respondWithError(c, http.StatusBadRequest, route, validation.Reason)
		return
	}

	log.Printf("[%s] storage error: %v", route, err)
	respondWithError(c, http.StatusInternalServerError, route, "db error")
}
