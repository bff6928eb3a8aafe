package cronjob

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// reminderWindow is how far back the sweep looks for orders to remind about.
const reminderWindow = 7

// RunOrderRemindersJob queries orders from the last seven days and logs a
// reminder line per order. Like the restock job it is fire-and-log: any
// failure ends the run with an error line, not a non-zero exit.
func RunOrderRemindersJob(ctx context.Context, client *Client, logFile *LogFile) {
	runID := uuid.NewString()[:8]

	logFile.Infof("[run %s] Starting order reminders processing", runID)

	since := time.Now().AddDate(0, 0, -reminderWindow)
	orders, err := client.OrdersSince(ctx, since)
	if err != nil {
		logFile.Errorf("[run %s] Orders query failed: %v", runID, err)
		return
	}

	if len(orders) == 0 {
		logFile.Warnf("[run %s] No orders found in the last %d days", runID, reminderWindow)
		fmt.Println("Order reminders processed!")
		return
	}

	for _, order := range orders {
		logFile.Infof("[run %s] Order ID: %s, Customer: %s", runID, order.ID, order.CustomerEmail)
	}

	logFile.Infof("[run %s] Processed %d order reminders", runID, len(orders))
	fmt.Println("Order reminders processed!")
}
