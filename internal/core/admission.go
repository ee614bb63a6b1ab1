package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/voidshard/jobgate/internal/utils"
	ie "github.com/voidshard/jobgate/pkg/errors"
	"github.com/voidshard/jobgate/pkg/schema"
	"github.com/voidshard/jobgate/pkg/structs"
)

// Admit runs a request through each admission step in turn; any step failing stops the request
// there. Nothing is enqueued unless every check passes.
//
//  1. the payload must be a JSON object (ErrMalformedPayload)
//  2. the credential must be known (ErrUnauthorized)
//  3. the resource's request schema must load
//  4. the payload must be valid (an InvalidPayloadError)
//  5. undeclared fields are dropped
//  6. the job is enqueued (ErrQueueUnavailable)
//  7. the acknowledgment is built from the response schema defaults & the job handle
//
// The response schema is loaded before the job is enqueued.
func (c *Service) Admit(ctx context.Context, req *structs.AdmissionRequest) (structs.Acknowledgment, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: nil request", ie.ErrInvalidArg)
	}

	payload, err := decodePayload(req.Payload)
	if err != nil {
		return nil, err
	}

	err = c.Authenticate(ctx, req.Credential)
	if err != nil {
		return nil, err
	}

	reqDoc, err := c.schemas.Load(ctx, req.Resource, schema.Request)
	if err != nil {
		c.configFault(req.Resource, schema.Request, err)
		return nil, err
	}

	result, err := schema.Validate(reqDoc, payload)
	if err != nil {
		c.configFault(req.Resource, schema.Request, err)
		return nil, err
	}
	if !result.Valid() {
		c.log.Debug("payload rejected", "resource", req.Resource, "errors", result.Errors)
		return nil, &ie.InvalidPayloadError{Errors: result.Errors}
	}

	ack, err := c.acknowledgment(ctx, req.Resource)
	if err != nil {
		return nil, err
	}

	job := &structs.Job{
		ID:       utils.NewRandomID(),
		Resource: req.Resource,
		Payload:  schema.Filter(reqDoc, result.Data),
	}
	handle, err := c.qu.Enqueue(ctx, job)
	if err != nil {
		c.log.Error("failed to enqueue job", "resource", req.Resource, "job", job.ID, "err", err)
		if !errors.Is(err, ie.ErrQueueUnavailable) {
			err = fmt.Errorf("%w: %v", ie.ErrQueueUnavailable, err)
		}
		return nil, err
	}
	c.log.Info("job admitted", "resource", req.Resource, "job", handle.ID, "status", handle.Status)

	ack[structs.FieldID] = handle.ID
	ack[structs.FieldStatus] = string(handle.Status)
	return ack, nil
}

// acknowledgment returns the response schema's defaults. A resource with no response schema
// gets an empty acknowledgment.
func (c *Service) acknowledgment(ctx context.Context, resource string) (structs.Acknowledgment, error) {
	doc, err := c.schemas.Load(ctx, resource, schema.Response)
	if errors.Is(err, ie.ErrSchemaNotFound) {
		return structs.Acknowledgment{}, nil
	} else if err != nil {
		c.configFault(resource, schema.Response, err)
		return nil, err
	}
	return structs.Acknowledgment(schema.Defaults(doc)), nil
}

// decodePayload returns the payload as a JSON object. Numbers are kept as json.Number.
func decodePayload(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var payload map[string]any
	err := dec.Decode(&payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ie.ErrMalformedPayload, err)
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: expected a json object", ie.ErrMalformedPayload)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected data after json object", ie.ErrMalformedPayload)
	}
	return payload, nil
}
