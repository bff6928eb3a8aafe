// Package storetest provides an in-memory store.Store for tests.
package storetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"crm/internal/models"
	"crm/internal/store"
)

// Memory implements store.Store over slices. InTransaction snapshots the
// data and restores it when the callback fails, matching the rollback
// contract. The error fields let tests inject storage failures.
type Memory struct {
	mu sync.Mutex

	Customers []models.Customer
	Products  []models.Product
	Orders    []models.Order

	InsertCustomerErr    error
	IncrementQuantityErr error
}

var _ store.Store = (*Memory)(nil)

func New() *Memory {
	return &Memory{}
}

// AddProduct seeds a product and returns its assigned id.
func (m *Memory) AddProduct(name string, price models.Money, quantity int) primitive.ObjectID {
	m.mu.Lock()
	defer m.mu.Unlock()

	product := models.Product{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Price:     price,
		Quantity:  quantity,
		CreatedAt: time.Now(),
	}
	m.Products = append(m.Products, product)
	return product.ID
}

// AddCustomer seeds a customer and returns its assigned id.
func (m *Memory) AddCustomer(firstName, lastName, email string) primitive.ObjectID {
	m.mu.Lock()
	defer m.mu.Unlock()

	customer := models.Customer{
		ID:        primitive.NewObjectID(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		CreatedAt: time.Now(),
	}
	m.Customers = append(m.Customers, customer)
	return customer.ID
}

func (m *Memory) EmailExists(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.Customers {
		if c.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) GetCustomer(_ context.Context, id primitive.ObjectID) (*models.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.Customers {
		if c.ID == id {
			found := c
			return &found, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *Memory) InsertCustomer(_ context.Context, customer *models.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.InsertCustomerErr != nil {
		return m.InsertCustomerErr
	}
	if customer.ID.IsZero() {
		customer.ID = primitive.NewObjectID()
	}
	m.Customers = append(m.Customers, *customer)
	return nil
}

func (m *Memory) FindProducts(_ context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	wanted := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	var found []models.Product
	for _, p := range m.Products {
		if _, ok := wanted[p.ID]; ok {
			found = append(found, p)
		}
	}
	return found, nil
}

func (m *Memory) ProductsBelowQuantity(_ context.Context, threshold int) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var low []models.Product
	for _, p := range m.Products {
		if p.Quantity < threshold {
			low = append(low, p)
		}
	}
	return low, nil
}

func (m *Memory) InsertProduct(_ context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	m.Products = append(m.Products, *product)
	return nil
}

func (m *Memory) IncrementProductQuantity(_ context.Context, id primitive.ObjectID, amount, guard int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.IncrementQuantityErr != nil {
		return false, m.IncrementQuantityErr
	}
	for i := range m.Products {
		if m.Products[i].ID == id && m.Products[i].Quantity < guard {
			m.Products[i].Quantity += amount
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) InsertOrder(_ context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	m.Orders = append(m.Orders, *order)
	return nil
}

func (m *Memory) OrdersSince(_ context.Context, since time.Time) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []models.Order
	for _, o := range m.Orders {
		if since.IsZero() || !o.OrderDate.Before(since) {
			matched = append(matched, o)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].OrderDate.After(matched[j].OrderDate)
	})
	return matched, nil
}

func (m *Memory) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	customers := append([]models.Customer(nil), m.Customers...)
	products := append([]models.Product(nil), m.Products...)
	orders := append([]models.Order(nil), m.Orders...)
	m.mu.Unlock()

	if err := fn(ctx); err != nil {
		m.mu.Lock()
		m.Customers = customers
		m.Products = products
		m.Orders = orders
		m.mu.Unlock()
		return err
	}
	return nil
}
