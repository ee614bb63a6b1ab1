package api

import (
	"context"

	"github.com/voidshard/jobgate/pkg/model"
	"github.com/voidshard/jobgate/pkg/structs"
)

// API represents the functions jobgate servers should expose.
type API interface {
	// Implemented in jobgate/internal/core.Service

	// Authenticate returns nil if the credential is known.
	Authenticate(ctx context.Context, credential string) error

	// Admit validates & enqueues a job request, returning the acknowledgment for the caller.
	Admit(ctx context.Context, req *structs.AdmissionRequest) (structs.Acknowledgment, error)

	// Job returns the status of an admitted job.
	Job(ctx context.Context, credential, id string) (*structs.JobHandle, error)

	// Model returns the documentation model of a resource's request schema.
	Model(ctx context.Context, resource string) (*model.DescriptorSet, error)
}

type Server interface {
	ServeForever(api API) error
	Close() error
}
