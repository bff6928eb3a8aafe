package crm

import (
	"context"
	"fmt"

	"crm/internal/models"
)

// RestockResult is the outcome of one replenishment run. Products holds the
// post-increment rows in scan order.
type RestockResult struct {
	Products []models.Product
	Success  bool
	Message  string
}

// RestockLowStock scans for products with quantity below the threshold and
// increments each by amount, all inside one transaction. Any storage failure
// rolls the whole run back and comes back as Success=false; the API surface
// reports restock failure through the flag rather than an error.
func (s *Service) RestockLowStock(ctx context.Context, threshold, amount int) RestockResult {
	var updated []models.Product

	err := s.store.InTransaction(ctx, func(ctx context.Context) error {
		updated = updated[:0]

		low, err := s.store.ProductsBelowQuantity(ctx, threshold)
		if err != nil {
			return err
		}

		for _, product := range low {
			// The guard re-checks quantity < threshold at update time, so
			// a row already pushed past the threshold by a concurrent run
			// is skipped instead of incremented twice.
			matched, err := s.store.IncrementProductQuantity(ctx, product.ID, amount, threshold)
			if err != nil {
				return err
			}
			if !matched {
				continue
			}
			product.Quantity += amount
			updated = append(updated, product)
		}
		return nil
	})
	if err != nil {
		return RestockResult{
			Products: []models.Product{},
			Success:  false,
			Message:  fmt.Sprintf("Failed to update low-stock products: %v", err),
		}
	}

	if updated == nil {
		updated = []models.Product{}
	}
	return RestockResult{
		Products: updated,
		Success:  true,
		Message:  fmt.Sprintf("Updated %d low-stock products", len(updated)),
	}
}
