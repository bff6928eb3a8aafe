package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"crm/internal/crm"
	"crm/internal/models"
	"crm/internal/store/storetest"
)

func newTestRouter(mem *storetest.Memory) *gin.Engine {
	gin.SetMode(gin.TestMode)
	RegisterValidations()

	svc := crm.NewService(mem)

	r := gin.New()
	r.POST("/customers", CreateCustomer(svc))
	r.POST("/customers/bulk", BulkCreateCustomers(svc))
	r.POST("/products", CreateProduct(svc))
	r.POST("/products/restock", RestockProducts(svc, 10, 10))
	r.POST("/orders", CreateOrder(svc))
	r.GET("/orders", GetOrders(svc))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("response is not JSON: %v\n%s", err, w.Body.String())
		}
	}
	return w, decoded
}

func money(t *testing.T, value string) models.Money {
	t.Helper()
	m, err := models.MoneyFromString(value)
	if err != nil {
		t.Fatalf("MoneyFromString(%q) returned error: %v", value, err)
	}
	return m
}

func TestCreateCustomerEndpoint(t *testing.T) {
	mem := storetest.New()
	r := newTestRouter(mem)

	w, body := doJSON(t, r, http.MethodPost, "/customers",
		`{"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com", "phone": "+1 555 123 4567"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if body["message"] != "Customer created successfully" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
	customer, ok := body["customer"].(map[string]interface{})
	if !ok || customer["email"] != "ada@example.com" {
		t.Fatalf("unexpected customer payload: %v", body["customer"])
	}
	if len(mem.Customers) != 1 {
		t.Fatalf("expected 1 persisted customer, got %d", len(mem.Customers))
	}
}

func TestCreateCustomerEndpointInvalidPhone(t *testing.T) {
	mem := storetest.New()
	r := newTestRouter(mem)

	w, body := doJSON(t, r, http.MethodPost, "/customers",
		`{"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com", "phone": "nope"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if body["error"] != "Invalid phone number format" {
		t.Fatalf("unexpected error: %v", body["error"])
	}
	if len(mem.Customers) != 0 {
		t.Fatal("expected no customer to be persisted")
	}
}

func TestCreateCustomerEndpointDuplicateEmail(t *testing.T) {
	mem := storetest.New()
	mem.AddCustomer("Ada", "Lovelace", "ada@example.com")
	r := newTestRouter(mem)

	w, body := doJSON(t, r, http.MethodPost, "/customers",
		`{"firstName": "Other", "lastName": "Person", "email": "ada@example.com"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if body["error"] != "A customer with this email already exists" {
		t.Fatalf("unexpected error: %v", body["error"])
	}
}

func TestBulkCreateCustomersEndpointRollsBack(t *testing.T) {
	mem := storetest.New()
	r := newTestRouter(mem)

	w, body := doJSON(t, r, http.MethodPost, "/customers/bulk", `{"customers": [
		{"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com"},
		{"firstName": "Bad", "lastName": "Phone", "email": "bad@example.com", "phone": "nope"}
	]}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	errs, ok := body["errors"].([]interface{})
	if !ok || len(errs) != 1 {
		t.Fatalf("expected 1 collected error, got %v", body["errors"])
	}
	if errs[0] != "Invalid phone number format for Bad: nope" {
		t.Fatalf("unexpected collected error: %v", errs[0])
	}
	if len(mem.Customers) != 0 {
		t.Fatalf("expected rollback, found %d customers", len(mem.Customers))
	}
}

func TestBulkCreateCustomersEndpointOneErrorPerFailingItem(t *testing.T) {
	mem := storetest.New()
	mem.AddCustomer("Ada", "Lovelace", "ada@example.com")
	r := newTestRouter(mem)

	w, body := doJSON(t, r, http.MethodPost, "/customers/bulk", `{"customers": [
		{"firstName": "Bad", "lastName": "Phone", "email": "bad@example.com", "phone": "nope"},
		{"firstName": "Dup", "lastName": "Email", "email": "ada@example.com"},
		{"firstName": "Alan", "lastName": "Turing", "email": "alan@example.com"}
	]}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	errs, ok := body["errors"].([]interface{})
	if !ok || len(errs) != 2 {
		t.Fatalf("expected 2 collected errors, got %v", body["errors"])
	}
	if errs[0] != "Invalid phone number format for Bad: nope" {
		t.Fatalf("unexpected first error: %v", errs[0])
	}
	if errs[1] != "Email already exists: ada@example.com" {
		t.Fatalf("unexpected second error: %v", errs[1])
	}
	if len(mem.Customers) != 1 {
		t.Fatalf("expected only the seeded customer after rollback, got %d", len(mem.Customers))
	}
}

func TestBulkCreateCustomersEndpointAllValid(t *testing.T) {
	mem := storetest.New()
	r := newTestRouter(mem)

	w, body := doJSON(t, r, http.MethodPost, "/customers/bulk", `{"customers": [
		{"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com"},
		{"firstName": "Alan", "lastName": "Turing", "email": "alan@example.com"}
	]}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	customers, ok := body["customers"].([]interface{})
	if !ok || len(customers) != 2 {
		t.Fatalf("expected 2 created customers, got %v", body["customers"])
	}
}

func TestCreateProductEndpointNegativePrice(t *testing.T) {
	mem := storetest.New()
	r := newTestRouter(mem)

	w, body := doJSON(t, r, http.MethodPost, "/products",
		`{"name": "Keyboard", "price": -5, "quantity": 1}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if body["error"] != "Price cannot be negative" {
		t.Fatalf("unexpected error: %v", body["error"])
	}
}

func TestRestockEndpointResponseShape(t *testing.T) {
	mem := storetest.New()
	mem.AddProduct("Widget", money(t, "5"), 3)
	mem.AddProduct("Gadget", money(t, "5"), 15)
	r := newTestRouter(mem)

	w, body := doJSON(t, r, http.MethodPost, "/products/restock", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body["success"] != true {
		t.Fatalf("expected success=true, got %v", body["success"])
	}
	if body["message"] != "Updated 1 low-stock products" {
		t.Fatalf("unexpected message: %v", body["message"])
	}

	products, ok := body["products"].([]interface{})
	if !ok || len(products) != 1 {
		t.Fatalf("expected 1 updated product, got %v", body["products"])
	}
	row := products[0].(map[string]interface{})
	if row["name"] != "Widget" || row["quantity"] != float64(13) {
		t.Fatalf("unexpected product row: %v", row)
	}
	if _, ok := row["id"].(string); !ok {
		t.Fatalf("expected hex id field, got %v", row["id"])
	}
}

func TestCreateOrderEndpointEmptyProducts(t *testing.T) {
	mem := storetest.New()
	customerID := mem.AddCustomer("Ada", "Lovelace", "ada@example.com")
	r := newTestRouter(mem)

	w, body := doJSON(t, r, http.MethodPost, "/orders",
		`{"customerId": "`+customerID.Hex()+`", "productIds": []}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if body["error"] != "At least one product is required" {
		t.Fatalf("unexpected error: %v", body["error"])
	}
}

func TestCreateOrderEndpointComputesTotal(t *testing.T) {
	mem := storetest.New()
	customerID := mem.AddCustomer("Ada", "Lovelace", "ada@example.com")
	keyboardID := mem.AddProduct("Keyboard", money(t, "49.90"), 5)
	mouseID := mem.AddProduct("Mouse", money(t, "20.10"), 3)
	r := newTestRouter(mem)

	w, body := doJSON(t, r, http.MethodPost, "/orders",
		`{"customerId": "`+customerID.Hex()+`", "productIds": ["`+keyboardID.Hex()+`", "`+mouseID.Hex()+`"]}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	order, ok := body["order"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing order payload: %v", body)
	}
	if order["totalAmount"] != "70" {
		t.Fatalf("expected total 70, got %v", order["totalAmount"])
	}
}

func TestGetOrdersEndpointSinceFilter(t *testing.T) {
	mem := storetest.New()
	customerID := mem.AddCustomer("Ada", "Lovelace", "ada@example.com")
	productID := mem.AddProduct("Keyboard", money(t, "49.90"), 5)

	svc := crm.NewService(mem)
	recent, err := svc.CreateOrder(context.Background(), crm.OrderInput{
		CustomerID: customerID,
		ProductIDs: []primitive.ObjectID{productID},
		OrderDate:  time.Now().AddDate(0, 0, -2),
	})
	if err != nil {
		t.Fatalf("seed recent order failed: %v", err)
	}
	if _, err := svc.CreateOrder(context.Background(), crm.OrderInput{
		CustomerID: customerID,
		ProductIDs: []primitive.ObjectID{productID},
		OrderDate:  time.Now().AddDate(0, 0, -30),
	}); err != nil {
		t.Fatalf("seed old order failed: %v", err)
	}

	r := newTestRouter(mem)
	since := time.Now().AddDate(0, 0, -7).Format("2006-01-02")
	w, body := doJSON(t, r, http.MethodGet, "/orders?since="+since, "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	orders, ok := body["orders"].([]interface{})
	if !ok || len(orders) != 1 {
		t.Fatalf("expected 1 recent order, got %v", body["orders"])
	}
	row := orders[0].(map[string]interface{})
	if row["id"] != recent.ID.Hex() || row["customerEmail"] != "ada@example.com" {
		t.Fatalf("unexpected order row: %v", row)
	}
}

func TestGetOrdersEndpointBadSince(t *testing.T) {
	mem := storetest.New()
	r := newTestRouter(mem)

	w, body := doJSON(t, r, http.MethodGet, "/orders?since=yesterday", "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if body["error"] != "invalid since date" {
		t.Fatalf("unexpected error: %v", body["error"])
	}
}
