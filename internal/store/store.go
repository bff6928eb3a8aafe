package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"crm/internal/models"
)

// ErrNotFound is returned by lookups when no record matches.
var ErrNotFound = errors.New("not found")

// Store is the persistence capability the mutation engine and the
// replenishment scan depend on. Implementations must make writes performed
// inside InTransaction invisible to other readers until commit and discard
// them entirely when the callback returns an error.
type Store interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	GetCustomer(ctx context.Context, id primitive.ObjectID) (*models.Customer, error)
	InsertCustomer(ctx context.Context, customer *models.Customer) error

	// FindProducts returns the products matching the given ids, in scan
	// order. Missing ids are not an error; callers compare counts.
	FindProducts(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
	ProductsBelowQuantity(ctx context.Context, threshold int) ([]models.Product, error)
	InsertProduct(ctx context.Context, product *models.Product) error

	// IncrementProductQuantity adds amount to the product's quantity only
	// while its quantity is still below the given guard, and reports
	// whether the update matched. The guard keeps a concurrent restock
	// from double-applying the increment.
	IncrementProductQuantity(ctx context.Context, id primitive.ObjectID, amount, guard int) (bool, error)

	InsertOrder(ctx context.Context, order *models.Order) error
	OrdersSince(ctx context.Context, since time.Time) ([]models.Order, error)

	// InTransaction runs fn inside one transaction scope: commit when fn
	// returns nil, roll back when it returns an error. Store calls made by
	// fn must use the context it receives.
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
