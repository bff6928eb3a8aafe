package crm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"crm/internal/store/storetest"
)

func TestRestockLowStockUpdatesOnlyBelowThreshold(t *testing.T) {
	mem := storetest.New()
	svc := NewService(mem)

	mem.AddProduct("A", money(t, "1"), 3)
	mem.AddProduct("B", money(t, "1"), 9)
	mem.AddProduct("C", money(t, "1"), 10)
	mem.AddProduct("D", money(t, "1"), 15)

	result := svc.RestockLowStock(context.Background(), 10, 10)
	if !result.Success {
		t.Fatalf("expected success, got message %q", result.Message)
	}
	if result.Message != "Updated 2 low-stock products" {
		t.Fatalf("unexpected message: %s", result.Message)
	}

	if len(result.Products) != 2 {
		t.Fatalf("expected 2 updated products, got %d", len(result.Products))
	}
	if result.Products[0].Name != "A" || result.Products[0].Quantity != 13 {
		t.Fatalf("unexpected first update: %+v", result.Products[0])
	}
	if result.Products[1].Name != "B" || result.Products[1].Quantity != 19 {
		t.Fatalf("unexpected second update: %+v", result.Products[1])
	}

	wantQuantities := map[string]int{"A": 13, "B": 19, "C": 10, "D": 15}
	for _, p := range mem.Products {
		if p.Quantity != wantQuantities[p.Name] {
			t.Fatalf("product %s: expected quantity %d, got %d", p.Name, wantQuantities[p.Name], p.Quantity)
		}
	}
}

func TestRestockLowStockSecondRunFindsNothing(t *testing.T) {
	mem := storetest.New()
	svc := NewService(mem)

	mem.AddProduct("A", money(t, "1"), 3)

	if result := svc.RestockLowStock(context.Background(), 10, 10); !result.Success {
		t.Fatalf("first run failed: %s", result.Message)
	}

	result := svc.RestockLowStock(context.Background(), 10, 10)
	if !result.Success {
		t.Fatalf("second run failed: %s", result.Message)
	}
	if len(result.Products) != 0 {
		t.Fatalf("expected no updates on second run, got %d", len(result.Products))
	}
	if result.Message != "Updated 0 low-stock products" {
		t.Fatalf("unexpected message: %s", result.Message)
	}
}

func TestRestockLowStockStorageFailureRollsBack(t *testing.T) {
	mem := storetest.New()
	svc := NewService(mem)

	mem.AddProduct("A", money(t, "1"), 3)
	mem.IncrementQuantityErr = errors.New("connection reset")

	result := svc.RestockLowStock(context.Background(), 10, 10)
	if result.Success {
		t.Fatal("expected failure result")
	}
	if !strings.HasPrefix(result.Message, "Failed to update low-stock products:") {
		t.Fatalf("unexpected message: %s", result.Message)
	}
	if len(result.Products) != 0 {
		t.Fatalf("expected empty product list on failure, got %d", len(result.Products))
	}
	if mem.Products[0].Quantity != 3 {
		t.Fatalf("expected rollback, quantity is %d", mem.Products[0].Quantity)
	}
}
