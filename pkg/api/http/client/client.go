package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-openapi/spec"

	"github.com/voidshard/jobgate/pkg/api/http/common"
	ie "github.com/voidshard/jobgate/pkg/errors"
	"github.com/voidshard/jobgate/pkg/structs"
)

const (
	defaultTimeout = 30 * time.Second
)

type Client struct {
	url  *url.URL
	key  string
	http *http.Client
}

// New returns a client for the server at address, sending key as the caller's credential.
func New(address, key string) (*Client, error) {
	u, err := url.Parse(address)
	if err != nil {
		return nil, err
	}
	return &Client{url: u, key: key, http: &http.Client{Timeout: defaultTimeout}}, nil
}

// Authenticate returns nil if the server accepts our key.
func (c *Client) Authenticate(ctx context.Context) error {
	var out common.MessageResponse
	return c.do(ctx, http.MethodGet, c.addr(common.API_AUTHENTICATE), nil, &out)
}

// Submit sends a job payload to a resource, returning the server's acknowledgment.
func (c *Client) Submit(ctx context.Context, resource string, payload interface{}) (structs.Acknowledgment, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	out := structs.Acknowledgment{}
	return out, c.do(ctx, http.MethodPost, c.addr(common.API_SUBMIT+url.PathEscape(resource)), data, &out)
}

// Job returns the status of a submitted job.
func (c *Client) Job(ctx context.Context, id string) (*structs.JobHandle, error) {
	var out structs.JobHandle
	err := c.do(ctx, http.MethodGet, c.addr(fmt.Sprintf("%s/%s", common.API_JOBS, url.PathEscape(id))), nil, &out)
	if err != nil {
		return nil, err
	}
	out.Status = structs.ToStatus(string(out.Status))
	return &out, nil
}

// Wait polls a job's status every interval until it reaches a final status or ctx is done.
func (c *Client) Wait(ctx context.Context, id string, interval time.Duration) (*structs.JobHandle, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: poll interval must be positive, got %v", ie.ErrInvalidArg, interval)
	}
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		job, err := c.Job(ctx, id)
		if err != nil {
			return nil, err
		}
		if structs.IsFinalStatus(job.Status) {
			return job, nil
		}
		select {
		case <-ctx.Done():
			return job, ctx.Err()
		case <-tick.C:
		}
	}
}

// Model returns the OpenAPI definitions of a resource's request schema.
func (c *Client) Model(ctx context.Context, resource string) (spec.Definitions, error) {
	out := spec.Definitions{}
	return out, c.do(ctx, http.MethodGet, c.addr(fmt.Sprintf("%s/%s", common.API_MODELS, url.PathEscape(resource))), nil, &out)
}

func (c *Client) addr(path string) *url.URL {
	return &url.URL{Scheme: c.url.Scheme, Host: c.url.Host, Path: path}
}
