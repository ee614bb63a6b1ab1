package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/voidshard/jobgate/internal/mocks/pkg/queue_mock"
	"github.com/voidshard/jobgate/pkg/api"
	"github.com/voidshard/jobgate/pkg/api/http/server"
	"github.com/voidshard/jobgate/pkg/auth"
	ie "github.com/voidshard/jobgate/pkg/errors"
	"github.com/voidshard/jobgate/pkg/schema"
	"github.com/voidshard/jobgate/pkg/structs"
)

const (
	validKey = "test-key"
	jobID    = "0b8a7c43-6a3d-4d67-8f3c-97f5b71f6c2e"
)

var schemas = fstest.MapFS{
	"process_request_request.json": &fstest.MapFile{Data: []byte(`{
		"type": "object",
		"properties": {
			"webhook_url": {"type": "string", "default": ""},
			"options": {"type": "object", "properties": {"fast": {"type": "boolean"}}}
		},
		"required": ["webhook_url"]
	}`)},
	"clash_request.json": &fstest.MapFile{Data: []byte(`{
		"properties": {
			"a": {"type": "object", "properties": {"b_c": {"type": "object"}}},
			"a_b": {"type": "object", "properties": {"c": {"type": "object"}}}
		}
	}`)},
	"process_request_response.json": &fstest.MapFile{Data: []byte(`{
		"properties": {"message": {"type": "string", "default": "Processing started"}}
	}`)},
}

// newStack runs the real API behind the real HTTP server, with only the queue mocked
func newStack(t *testing.T) (*queue_mock.MockQueue, *Client) {
	keys := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(keys, validKey), 0755))

	qu := queue_mock.NewMockQueue(gomock.NewController(t))
	svc, err := api.NewAPI(
		schema.NewStore(schema.NewFSSource(schemas), nil),
		auth.NewGate(auth.NewDirRegistry(keys)),
		qu,
		nil,
	)
	require.NoError(t, err)

	srv := httptest.NewServer(server.NewServer("", false, nil).Handler(svc))
	t.Cleanup(srv.Close)

	cli, err := New(srv.URL, validKey)
	require.NoError(t, err)
	return qu, cli
}

func TestAuthenticate(t *testing.T) {
	_, cli := newStack(t)

	assert.NoError(t, cli.Authenticate(context.Background()))

	cli.key = "other-key"
	err := cli.Authenticate(context.Background())
	cerr := &Error{}
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, http.StatusForbidden, cerr.Code)
	assert.Equal(t, "Invalid API key", cerr.Message)

	cli.key = ""
	err = cli.Authenticate(context.Background())
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, http.StatusBadRequest, cerr.Code)
	assert.Equal(t, "API key is missing", cerr.Message)
}

func TestSubmit(t *testing.T) {
	qu, cli := newStack(t)

	var job *structs.Job
	qu.EXPECT().Enqueue(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, j *structs.Job) (*structs.JobHandle, error) {
		job = j
		return &structs.JobHandle{ID: j.ID, Status: structs.PENDING}, nil
	})

	ack, err := cli.Submit(context.Background(), "process_request", map[string]any{
		"webhook_url": "http://example.com",
		"extra":       1,
	})

	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, map[string]any{"webhook_url": "http://example.com"}, job.Payload)
	assert.Equal(t, structs.Acknowledgment{
		"id":      job.ID,
		"status":  "pending",
		"message": "Processing started",
	}, ack)
}

func TestSubmitInvalid(t *testing.T) {
	_, cli := newStack(t)

	_, err := cli.Submit(context.Background(), "process_request", map[string]any{"options": map[string]any{"fast": "yes"}})

	cerr := &Error{}
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, http.StatusBadRequest, cerr.Code)
	assert.Equal(t, []string{
		"'webhook_url' is a required property",
		"options.fast: 'yes' is not of type 'boolean'",
	}, cerr.Errors)
}

func TestSubmitUnknownResource(t *testing.T) {
	_, cli := newStack(t)

	_, err := cli.Submit(context.Background(), "nothing_here", map[string]any{})

	cerr := &Error{}
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, http.StatusInternalServerError, cerr.Code)
	assert.Equal(t, "Internal server error", cerr.Message)
}

func TestJob(t *testing.T) {
	qu, cli := newStack(t)
	qu.EXPECT().Status(gomock.Any(), jobID).Return(&structs.JobHandle{ID: jobID, Status: structs.SUCCESS}, nil)

	handle, err := cli.Job(context.Background(), jobID)

	require.NoError(t, err)
	assert.Equal(t, &structs.JobHandle{ID: jobID, Status: structs.SUCCESS}, handle)
}

func TestWait(t *testing.T) {
	qu, cli := newStack(t)
	gomock.InOrder(
		qu.EXPECT().Status(gomock.Any(), jobID).Return(&structs.JobHandle{ID: jobID, Status: structs.PENDING}, nil),
		qu.EXPECT().Status(gomock.Any(), jobID).Return(&structs.JobHandle{ID: jobID, Status: structs.STARTED}, nil),
		qu.EXPECT().Status(gomock.Any(), jobID).Return(&structs.JobHandle{ID: jobID, Status: structs.FAILURE}, nil),
	)

	handle, err := cli.Wait(context.Background(), jobID, time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, structs.FAILURE, handle.Status)
}

func TestWaitContextDone(t *testing.T) {
	qu, cli := newStack(t)
	qu.EXPECT().Status(gomock.Any(), jobID).Return(&structs.JobHandle{ID: jobID, Status: structs.PENDING}, nil).MinTimes(1)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := cli.Wait(ctx, jobID, 10*time.Millisecond)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestModel(t *testing.T) {
	_, cli := newStack(t)

	defs, err := cli.Model(context.Background(), "process_request")

	require.NoError(t, err)
	require.Contains(t, defs, "process_request")
	require.Contains(t, defs, "process_request_options")
	assert.Equal(t, []string{"webhook_url"}, defs["process_request"].Required)
	options := defs["process_request"].Properties["options"]
	assert.Equal(t, "#/definitions/process_request_options", options.Ref.String())
}

func TestModelNameCollision(t *testing.T) {
	_, cli := newStack(t)

	_, err := cli.Model(context.Background(), "clash")

	cerr := &Error{}
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, http.StatusInternalServerError, cerr.Code)
	assert.Equal(t, "model name collision: model name 'clash_a_b_c' is used twice", cerr.Message)
}

func TestWaitBadInterval(t *testing.T) {
	_, cli := newStack(t)

	for _, interval := range []time.Duration{0, -time.Second} {
		_, err := cli.Wait(context.Background(), jobID, interval)
		assert.ErrorIs(t, err, ie.ErrInvalidArg)
	}
}
