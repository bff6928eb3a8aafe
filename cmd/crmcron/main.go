// crmcron runs the scheduled jobs. It is meant to be invoked by an external
// scheduler, e.g.:
//
//	0 */12 * * * /usr/local/bin/crmcron low-stock
//	0 8 * * *   /usr/local/bin/crmcron order-reminders
//
// Both commands always exit 0; failures are reported through the job's log
// file only.
package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"crm/internal/config"
	"crm/internal/cronjob"
)

func main() {
	root := &cobra.Command{
		Use:           "crmcron",
		Short:         "Scheduled CRM jobs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newLowStockCmd(), newOrderRemindersCmd())

	if err := root.Execute(); err != nil {
		log.Println("crmcron:", err)
		os.Exit(1)
	}
}

func newLowStockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "low-stock",
		Short: "Restock products below the low-stock threshold",
		RunE: func(cmd *cobra.Command, args []string) error {
			config.Load()
			runJob(config.AppEnv.LowStockLog, cronjob.RunLowStockJob)
			return nil
		},
	}
}

func newOrderRemindersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "order-reminders",
		Short: "Log reminders for orders placed in the last 7 days",
		RunE: func(cmd *cobra.Command, args []string) error {
			config.Load()
			runJob(config.AppEnv.OrderRemindersLog, cronjob.RunOrderRemindersJob)
			return nil
		},
	}
}

func runJob(logPath string, job func(context.Context, *cronjob.Client, *cronjob.LogFile)) {
	logFile, err := cronjob.OpenLogFile(logPath, config.AppEnv.LogMaxSizeBytes)
	if err != nil {
		// Without a log file there is nowhere to report; still exit 0 so
		// the scheduler is not disturbed.
		log.Printf("could not open log file %s: %v", logPath, err)
		return
	}
	defer logFile.Close()

	client := cronjob.NewClient(config.AppEnv.APIURL, config.AppEnv.HTTPTimeout)
	job(context.Background(), client, logFile)
}
