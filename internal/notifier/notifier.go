package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// Job is one outbound message to the external notification gateway.
type Job struct {
	Channel    string
	Recipient  int64
	OrderID    string
	Message    string
	EnqueuedAt time.Time
}

type Worker struct {
	ID         int
	WorkerPool chan chan Job
	JobChannel chan Job
	Logger     *slog.Logger
}

func NewWorker(id int, workerPool chan chan Job, logger *slog.Logger) *Worker {
	return &Worker{
		ID:         id,
		WorkerPool: workerPool,
		JobChannel: make(chan Job),
		Logger:     logger,
	}
}

func (w *Worker) Start(ctx context.Context, wg *sync.WaitGroup, processFunc func(Job)) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		for {

			w.WorkerPool <- w.JobChannel

			select {
			case job := <-w.JobChannel:
				w.Logger.Debug("worker processing notification", "worker_id", w.ID, "order_id", job.OrderID)
				processFunc(job)
			case <-ctx.Done():
				w.Logger.Debug("worker shutting down", "worker_id", w.ID)
				return
			}
		}
	}()
}

// Client delivers booking notifications through the external SMS/chat gateway
// with a bounded worker pool. Delivery is fire-and-forget from the caller's
// point of view; failures are logged, never propagated into reconciliation.
type Client struct {
	apiURL      string
	apiKey      string
	sendTimeout time.Duration
	logger      *slog.Logger

	jobQueue   chan Job
	workerPool chan chan Job
	maxWorkers int
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	once       sync.Once
}

type Config struct {
	APIURL       string
	APIKey       string
	SendTimeout  time.Duration
	MaxWorkers   int
	JobQueueSize int
}

func NewClient(config Config, logger *slog.Logger) *Client {
	ctx, cancel := context.WithCancel(context.Background())

	maxWorkers := config.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 5
	}

	jobQueueSize := config.JobQueueSize
	if jobQueueSize <= 0 {
		jobQueueSize = 100
	}

	sendTimeout := config.SendTimeout
	if sendTimeout <= 0 {
		sendTimeout = 10 * time.Second
	}

	client := &Client{
		apiURL:      config.APIURL,
		apiKey:      config.APIKey,
		sendTimeout: sendTimeout,
		logger:      logger,

		maxWorkers: maxWorkers,
		jobQueue:   make(chan Job, jobQueueSize),
		workerPool: make(chan chan Job, maxWorkers),
		ctx:        ctx,
		cancel:     cancel,
	}

	client.startWorkerPool()

	return client
}

func (c *Client) startWorkerPool() {
	c.once.Do(func() {

		for i := 0; i < c.maxWorkers; i++ {
			worker := NewWorker(i, c.workerPool, c.logger)
			worker.Start(c.ctx, &c.wg, c.deliver)
		}

		go c.dispatch()

		c.logger.Info("notifier worker pool started",
			"max_workers", c.maxWorkers,
			"queue_size", cap(c.jobQueue))
	})
}

func (c *Client) dispatch() {
	c.wg.Add(1)
	defer c.wg.Done()

	for {
		select {
		case job := <-c.jobQueue:

			select {
			case jobChannel := <-c.workerPool:

				select {
				case jobChannel <- job:

				case <-c.ctx.Done():
					c.logger.Info("notifier dispatcher shutting down")
					return
				}
			case <-c.ctx.Done():
				c.logger.Info("notifier dispatcher shutting down")
				return
			}
		case <-c.ctx.Done():
			c.logger.Info("notifier dispatcher shutting down")
			return
		}
	}
}

func (c *Client) Shutdown() {
	c.logger.Info("shutting down notifier client")
	c.cancel()
	c.wg.Wait()
	c.logger.Info("notifier client shutdown complete")
}

// Enqueue queues a notification for background delivery. A full queue drops
// the message with a warning rather than blocking the caller.
func (c *Client) Enqueue(job Job) error {
	job.EnqueuedAt = time.Now().UTC()

	select {
	case c.jobQueue <- job:
		c.logger.Debug("notification queued",
			"order_id", job.OrderID,
			"recipient", job.Recipient,
			"queue_length", len(c.jobQueue))
		return nil
	default:
		c.logger.Warn("notification queue full, dropping message",
			"order_id", job.OrderID,
			"queue_capacity", cap(c.jobQueue))
		return fmt.Errorf("notification queue full")
	}
}

func (c *Client) deliver(job Job) {
	payload := map[string]interface{}{
		"channel":   job.Channel,
		"recipient": job.Recipient,
		"message":   job.Message,
		"reference": job.OrderID,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		c.logger.Error("failed to marshal notification payload", "error", err, "order_id", job.OrderID)
		return
	}

	ctx, cancel := context.WithTimeout(c.ctx, c.sendTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/messages", bytes.NewBuffer(jsonData))
	if err != nil {
		c.logger.Error("failed to create notification request", "error", err, "order_id", job.OrderID)
		return
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	client := &http.Client{Timeout: c.sendTimeout}
	resp, err := client.Do(httpReq)
	if err != nil {
		c.logger.Error("notification delivery failed", "error", err, "order_id", job.OrderID)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Error("notification gateway returned error",
			"status", resp.StatusCode,
			"order_id", job.OrderID)
		return
	}

	c.logger.Info("notification delivered",
		"order_id", job.OrderID,
		"recipient", job.Recipient,
		"channel", job.Channel)
}
