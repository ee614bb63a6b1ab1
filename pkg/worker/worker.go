// worker package runs dequeued jobs & tells the submitter (via their webhook) when they're done.
package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/voidshard/jobgate/pkg/structs"
)

const (
	defaultTimeout = 10 * time.Second

	// StatusCompleted is the status sent to a job's webhook once it has been processed
	StatusCompleted = "Processing completed"
)

// Processor does the actual work of a job.
type Processor interface {
	Process(ctx context.Context, job *structs.Job) error
}

// ProcessorFunc allows a plain func to be used as a Processor.
type ProcessorFunc func(ctx context.Context, job *structs.Job) error

func (f ProcessorFunc) Process(ctx context.Context, job *structs.Job) error {
	return f(ctx, job)
}

// Options for a Worker
type Options struct {
	// Processor run for each job. Defaults to one that only logs the job.
	Processor Processor

	// Client used to call webhooks. Defaults to a client with Timeout.
	Client *http.Client

	// Timeout for webhook calls, when no Client is given.
	Timeout time.Duration

	Logger *slog.Logger
}

func (o *Options) SetDefaults() {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.Client == nil {
		o.Client = &http.Client{Timeout: o.Timeout}
	}
	if o.Processor == nil {
		log := o.Logger
		o.Processor = ProcessorFunc(func(ctx context.Context, job *structs.Job) error {
			log.Debug("processing job", "job", job.ID, "resource", job.Resource, "payload", job.Payload)
			return nil
		})
	}
}

// Worker handles jobs handed to it by the queue.
type Worker struct {
	opts *Options
	log  *slog.Logger
}

// New returns a Worker; it should be registered with a queue.Queue via Handle.
func New(opts *Options) *Worker {
	opts.SetDefaults()
	return &Worker{opts: opts, log: opts.Logger.With("component", "worker")}
}

// Handle processes a job & then notifies its webhook.
//
// Processing errors are returned (so the queue marks the job failed) & no notification is sent.
// Webhook failures are logged only; they're never retried & never fail the job.
func (w *Worker) Handle(ctx context.Context, job *structs.Job) error {
	err := w.opts.Processor.Process(ctx, job)
	if err != nil {
		w.log.Error("job processing failed", "job", job.ID, "resource", job.Resource, "err", err)
		return err
	}

	url := job.WebhookURL()
	if url == "" {
		w.log.Debug("job has no webhook", "job", job.ID)
		return nil
	}

	err = w.notify(ctx, url)
	if err != nil {
		w.log.Warn("webhook call failed", "job", job.ID, "url", url, "err", err)
	}
	return nil
}

func (w *Worker) notify(ctx context.Context, url string) error {
	body, err := json.Marshal(map[string]string{"status": StatusCompleted})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.opts.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned %d", resp.StatusCode)
	}
	return nil
}
