package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/companion-booking/internal/notifier"
	"github.com/frahmantamala/companion-booking/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start worker pools for background services",
	Long:  `Start and manage worker pools, currently the outbound notification dispatcher`,
}

var notifierWorkerCmd = &cobra.Command{
	Use:   "notifier",
	Short: "Start notification worker pool",
	Long:  `Start the worker pool delivering booking notifications to the external gateway`,
	Run: func(cmd *cobra.Command, args []string) {
		startNotifierWorker()
	},
}

var (
	maxWorkers   int
	jobQueueSize int
	apiURL       string
	apiKey       string
)

func startNotifierWorker() {
	config, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.LoggerWrapper()

	// Use command line flags if provided, otherwise use config values
	notifierConfig := notifier.Config{
		APIURL:       getStringFlag(apiURL, config.Notifier.APIURL),
		APIKey:       getStringFlag(apiKey, config.Notifier.APIKey),
		SendTimeout:  config.Notifier.SendTimeout,
		MaxWorkers:   getIntFlag(maxWorkers, config.Notifier.MaxWorkers),
		JobQueueSize: getIntFlag(jobQueueSize, config.Notifier.JobQueueSize),
	}

	log.Info("starting notifier worker",
		"max_workers", notifierConfig.MaxWorkers,
		"job_queue_size", notifierConfig.JobQueueSize,
		"api_url", notifierConfig.APIURL)

	client := notifier.NewClient(notifierConfig, log)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	log.Info("notifier worker is running. Press Ctrl+C to stop.")

	sig := <-sigChan
	log.Info("received signal, shutting down notifier worker", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	shutdownDone := make(chan struct{})
	go func() {
		client.Shutdown()
		close(shutdownDone)
	}()

	select {
	case <-shutdownDone:
		log.Info("notifier worker pool shutdown complete")
	case <-ctx.Done():
		log.Warn("shutdown timeout reached, forcing exit")
	}
}

func getStringFlag(flagValue, configValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return configValue
}

func getIntFlag(flagValue, configValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	return configValue
}

func init() {
	notifierWorkerCmd.Flags().IntVar(&maxWorkers, "max-workers", 0, "Maximum number of workers (overrides config)")
	notifierWorkerCmd.Flags().IntVar(&jobQueueSize, "job-queue-size", 0, "Job queue buffer size (overrides config)")
	notifierWorkerCmd.Flags().StringVar(&apiURL, "api-url", "", "Notification gateway API URL (overrides config)")
	notifierWorkerCmd.Flags().StringVar(&apiKey, "api-key", "", "Notification gateway API key (overrides config)")

	workerCmd.AddCommand(notifierWorkerCmd)

	rootCmd.AddCommand(workerCmd)
}
