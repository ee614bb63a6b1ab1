package queue

import (
	"crypto/tls"
	"log/slog"
	"time"
)

const (
	defaultConcurrency = 10
	defaultRetention   = 24 * time.Hour
)

// Options are options for the queue.
type Options struct {
	// URL encodes how we'll connect to the queue (redis host:port).
	URL string

	// Password for redis (optional).
	Password string

	// DB is the redis database number.
	DB int

	// TLSConfig needed to connect to the queue (optional).
	TLSConfig *tls.Config

	// Concurrency is the number of jobs a worker processes at once.
	// Defaults to 10.
	Concurrency int

	// Retention is how long finished jobs are kept, so their status can still be looked up.
	// Defaults to 24h.
	Retention time.Duration

	// Logger for the queue (& the asynq server, if this is a worker).
	// Defaults to slog.Default()
	Logger *slog.Logger
}

func (o *Options) SetDefaults() {
	if o.Concurrency <= 0 {
		o.Concurrency = defaultConcurrency
	}
	if o.Retention <= 0 {
		o.Retention = defaultRetention
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}
