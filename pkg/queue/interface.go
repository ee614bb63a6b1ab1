package queue

import (
	"context"

	"github.com/voidshard/jobgate/pkg/structs"
)

// Handler processes a single dequeued job. A returned error marks the job as failed.
type Handler func(ctx context.Context, job *structs.Job) error

type Queue interface {
	// Register the job handler. This is the function called when a job is dequeued.
	// Only workers need to call this.
	Register(handler Handler) error

	// Run the queue & process jobs (via the Register func). This should block until Close() is called
	// (or the process is signalled).
	Run() error

	// Enqueue a job. The job's ID is used as the queued task ID, so it can be looked up
	// with Status later. Returns once the queue has accepted the job.
	Enqueue(ctx context.Context, job *structs.Job) (*structs.JobHandle, error)

	// Status of a job previously enqueued. Returns ErrNotFound for jobs the queue doesn't
	// know (or has forgotten).
	Status(ctx context.Context, id string) (*structs.JobHandle, error)

	// Close & shutdown the queue.
	Close() error
}
