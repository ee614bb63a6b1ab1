package api

import (
	"log/slog"
)

// Options passed to the jobgate API on creation
type Options struct {
	// Logger for the service. Defaults to slog.Default()
	Logger *slog.Logger
}

func (o *Options) SetDefaults() {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}
