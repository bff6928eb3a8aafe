package crm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"crm/internal/models"
	"crm/internal/store"
)

// Service is the mutation engine. It owns the write-path rules and drives
// them through the store capability; it knows nothing about HTTP.
type Service struct {
	store store.Store
}

func NewService(s store.Store) *Service {
	return &Service{store: s}
}

/* =========================
   CUSTOMERS
========================= */

type CustomerInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// CreateCustomer validates the phone format, then email uniqueness; the
// first failure aborts with no write. An absent phone is stored as "".
func (s *Service) CreateCustomer(ctx context.Context, input CustomerInput) (*models.Customer, string, error) {
	if err := ValidatePhone(input.Phone); err != nil {
		return nil, "", err
	}

	exists, err := s.store.EmailExists(ctx, input.Email)
	if err != nil {
		return nil, "", StorageError{Op: "check email uniqueness", Err: err}
	}
	if exists {
		return nil, "", ValidationError{Reason: "A customer with this email already exists"}
	}

	customer := &models.Customer{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		CreatedAt: time.Now(),
	}
	if err := s.store.InsertCustomer(ctx, customer); err != nil {
		return nil, "", StorageError{Op: "insert customer", Err: err}
	}

	return customer, "Customer created successfully", nil
}

// BulkCreateCustomers processes the batch in order inside one transaction.
// Items that fail validation are recorded and skipped; if any item failed by
// the end, the whole transaction rolls back and the collected messages come
// back as an AggregateValidationError, discarding every customer created in
// the same call.
func (s *Service) BulkCreateCustomers(ctx context.Context, inputs []CustomerInput) ([]models.Customer, error) {
	var created []models.Customer
	var failures []string

	err := s.store.InTransaction(ctx, func(ctx context.Context) error {
		created = created[:0]
		failures = failures[:0]

		for _, input := range inputs {
			if !ValidPhone(input.Phone) {
				failures = append(failures, fmt.Sprintf("Invalid phone number format for %s: %s", input.FirstName, input.Phone))
				continue
			}

			// Reads inside the transaction see the batch's own inserts,
			// so a duplicate email later in the same batch fails too.
			exists, err := s.store.EmailExists(ctx, input.Email)
			if err != nil {
				return err
			}
			if exists {
				failures = append(failures, fmt.Sprintf("Email already exists: %s", input.Email))
				continue
			}

			customer := models.Customer{
				FirstName: input.FirstName,
				LastName:  input.LastName,
				Email:     input.Email,
				Phone:     input.Phone,
				CreatedAt: time.Now(),
			}
			if err := s.store.InsertCustomer(ctx, &customer); err != nil {
				return err
			}
			created = append(created, customer)
		}

		if len(failures) > 0 {
			return AggregateValidationError{Errors: failures}
		}
		return nil
	})
	if err != nil {
		var aggregate AggregateValidationError
		if errors.As(err, &aggregate) {
			return nil, aggregate
		}
		return nil, StorageError{Op: "bulk create customers", Err: err}
	}

	return created, nil
}

/* =========================
   PRODUCTS
========================= */

type ProductInput struct {
	Name     string
	Price    models.Money
	Quantity int
}

func (s *Service) CreateProduct(ctx context.Context, input ProductInput) (*models.Product, string, error) {
	if err := ValidatePrice(input.Price); err != nil {
		return nil, "", err
	}
	if err := ValidateQuantity(input.Quantity); err != nil {
		return nil, "", err
	}

	product := &models.Product{
		Name:      input.Name,
		Price:     input.Price,
		Quantity:  input.Quantity,
		CreatedAt: time.Now(),
	}
	if err := s.store.InsertProduct(ctx, product); err != nil {
		return nil, "", StorageError{Op: "insert product", Err: err}
	}

	return product, "Product created successfully", nil
}

/* =========================
   ORDERS
========================= */

type OrderInput struct {
	CustomerID primitive.ObjectID
	ProductIDs []primitive.ObjectID
	OrderDate  time.Time
}

// CreateOrder checks customer existence, a non-empty product list and full
// resolvability of every product id, then writes the order with its product
// snapshots in a single document. The total is the sum of the resolved
// products' prices at call time and is never recomputed.
func (s *Service) CreateOrder(ctx context.Context, input OrderInput) (*models.Order, error) {
	customer, err := s.store.GetCustomer(ctx, input.CustomerID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ValidationError{Reason: "Customer does not exist"}
	}
	if err != nil {
		return nil, StorageError{Op: "look up customer", Err: err}
	}

	if len(input.ProductIDs) == 0 {
		return nil, ValidationError{Reason: "At least one product is required"}
	}

	products, err := s.store.FindProducts(ctx, input.ProductIDs)
	if err != nil {
		return nil, StorageError{Op: "resolve products", Err: err}
	}
	if len(products) != len(input.ProductIDs) {
		return nil, ValidationError{Reason: "One or more product IDs are invalid"}
	}

	items := make([]models.OrderProduct, 0, len(products))
	prices := make([]models.Money, 0, len(products))
	for _, product := range products {
		items = append(items, models.OrderProduct{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
		})
		prices = append(prices, product.Price)
	}

	orderDate := input.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	order := &models.Order{
		CustomerID:    customer.ID,
		CustomerEmail: customer.Email,
		Products:      items,
		OrderDate:     orderDate,
		TotalAmount:   models.SumMoney(prices),
	}
	if err := s.store.InsertOrder(ctx, order); err != nil {
		return nil, StorageError{Op: "insert order", Err: err}
	}

	return order, nil
}

// OrdersSince returns orders whose order date is on or after the given time,
// newest first. A zero time returns all orders.
func (s *Service) OrdersSince(ctx context.Context, since time.Time) ([]models.Order, error) {
	orders, err := s.store.OrdersSince(ctx, since)
	if err != nil {
		return nil, StorageError{Op: "list orders", Err: err}
	}
	return orders, nil
}
