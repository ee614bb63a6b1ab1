package api

import (
	"github.com/voidshard/jobgate/internal/core"
	"github.com/voidshard/jobgate/pkg/auth"
	"github.com/voidshard/jobgate/pkg/queue"
	"github.com/voidshard/jobgate/pkg/schema"
)

// NewAPI wires the schema store, credential gate & queue into an API.
func NewAPI(schemas *schema.Store, gate *auth.Gate, qu queue.Queue, opts *Options) (API, error) {
	if opts == nil {
		opts = &Options{}
	}
	opts.SetDefaults()
	return core.NewService(schemas, gate, qu, opts.Logger)
}
