package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/voidshard/jobgate/internal/utils"
	ie "github.com/voidshard/jobgate/pkg/errors"
	"github.com/voidshard/jobgate/pkg/model"
	"github.com/voidshard/jobgate/pkg/queue"
	"github.com/voidshard/jobgate/pkg/schema"
	"github.com/voidshard/jobgate/pkg/structs"
)

// SchemaLoader returns the schema document for a resource.
// Implemented by schema.Store
type SchemaLoader interface {
	Load(ctx context.Context, resource string, dir schema.Direction) (*schema.Document, error)
}

// Authenticator says if a credential may use the service.
// Implemented by auth.Gate
type Authenticator interface {
	Authenticate(ctx context.Context, credential string) error
}

type Service struct {
	schemas SchemaLoader
	gate    Authenticator
	qu      queue.Queue
	log     *slog.Logger
}

func NewService(schemas SchemaLoader, gate Authenticator, qu queue.Queue, log *slog.Logger) (*Service, error) {
	if schemas == nil || gate == nil || qu == nil {
		return nil, fmt.Errorf("%w: schemas, gate & queue are required", ie.ErrInvalidArg)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{schemas: schemas, gate: gate, qu: qu, log: log.With("component", "service")}, nil
}

// Authenticate returns nil if the credential is valid.
func (c *Service) Authenticate(ctx context.Context, credential string) error {
	err := c.gate.Authenticate(ctx, credential)
	if err != nil && !errors.Is(err, ie.ErrUnauthorized) {
		c.log.Error("credential lookup failed", "err", err)
	}
	return err
}

// Job returns the status of a previously admitted job.
func (c *Service) Job(ctx context.Context, credential, id string) (*structs.JobHandle, error) {
	err := c.Authenticate(ctx, credential)
	if err != nil {
		return nil, err
	}
	if !utils.IsValidID(id) {
		return nil, fmt.Errorf("%w: job id %s is not valid", ie.ErrInvalidArg, id)
	}
	return c.qu.Status(ctx, id)
}

// Model returns the documentation model of a resource's request schema.
func (c *Service) Model(ctx context.Context, resource string) (*model.DescriptorSet, error) {
	doc, err := c.schemas.Load(ctx, resource, schema.Request)
	if err != nil {
		c.configFault(resource, schema.Request, err)
		return nil, err
	}
	set, err := model.Project(resource, doc)
	if err != nil {
		c.log.Error("schema can't be documented", "resource", resource, "key", schema.Key(resource, schema.Request), "err", err)
		return nil, err
	}
	return set, nil
}

// configFault logs errors that mean a schema is missing or broken, as opposed to the caller
// having done something wrong.
func (c *Service) configFault(resource string, dir schema.Direction, err error) {
	c.log.Error("schema configuration fault", "resource", resource, "key", schema.Key(resource, dir), "err", err)
}
