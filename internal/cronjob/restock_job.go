package cronjob

import (
	"context"

	"github.com/google/uuid"
)

// RunLowStockJob triggers the replenishment mutation and logs one line per
// restocked product plus a summary. Failures are written to the log and
// swallowed: the external scheduler must never see this job crash.
func RunLowStockJob(ctx context.Context, client *Client, logFile *LogFile) {
	runID := uuid.NewString()[:8]

	logFile.Infof("[run %s] Starting low-stock product update", runID)

	result, err := client.UpdateLowStockProducts(ctx)
	if err != nil {
		logFile.Errorf("[run %s] Failed to execute restock: %v", runID, err)
		return
	}

	if !result.Success {
		logFile.Errorf("[run %s] Restock failed: %s", runID, result.Message)
		return
	}

	if len(result.Products) == 0 {
		logFile.Warnf("[run %s] No low-stock products found to update", runID)
		return
	}

	for _, product := range result.Products {
		logFile.Infof("[run %s] Updated product: %s (ID: %s), New stock: %d", runID, product.Name, product.ID, product.Quantity)
	}

	logFile.Infof("[run %s] Processed %d low-stock product updates", runID, len(result.Products))
}
