package schema

import (
	"context"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/voidshard/jobgate/internal/mocks/pkg/schema_mock"
	ie "github.com/voidshard/jobgate/pkg/errors"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "process_request_request.json", Key("process_request", Request))
	assert.Equal(t, "process_request_response.json", Key("process_request", Response))
}

func TestStoreLoadCaches(t *testing.T) {
	src := schema_mock.NewMockSource(gomock.NewController(t))
	store := NewStore(src, nil)

	src.EXPECT().Read(gomock.Any(), "process_request_request.json").Return([]byte(webhookSchema), nil).Times(1)

	first, err := store.Load(context.Background(), "process_request", Request)
	assert.Nil(t, err)
	second, err := store.Load(context.Background(), "process_request", Request)
	assert.Nil(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, []string{"webhook_url"}, first.Required)
}

func TestStoreKeysAreSeparate(t *testing.T) {
	src := schema_mock.NewMockSource(gomock.NewController(t))
	store := NewStore(src, nil)

	src.EXPECT().Read(gomock.Any(), "job_request.json").Return([]byte(webhookSchema), nil).Times(1)
	src.EXPECT().Read(gomock.Any(), "job_response.json").Return([]byte(`{"properties": {"status": {"type": "string"}}}`), nil).Times(1)

	req, err := store.Load(context.Background(), "job", Request)
	assert.Nil(t, err)
	resp, err := store.Load(context.Background(), "job", Response)
	assert.Nil(t, err)

	assert.NotSame(t, req, resp)
	assert.Equal(t, []string{"status"}, names(resp))
}

func TestStoreFailedLoadsAreNotCached(t *testing.T) {
	src := schema_mock.NewMockSource(gomock.NewController(t))
	store := NewStore(src, nil)

	src.EXPECT().Read(gomock.Any(), "broken_request.json").Return([]byte(`{"properties": `), nil).Times(2)

	for i := 0; i < 2; i++ {
		doc, err := store.Load(context.Background(), "broken", Request)
		assert.Nil(t, doc)
		assert.ErrorIs(t, err, ie.ErrSchemaMalformed)
	}
}

func TestStoreBadArgs(t *testing.T) {
	src := schema_mock.NewMockSource(gomock.NewController(t))
	store := NewStore(src, nil)
	// nothing is read

	doc, err := store.Load(context.Background(), "../secrets", Request)
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, ie.ErrSchemaNotFound)

	doc, err = store.Load(context.Background(), "job", Direction("sideways"))
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, ie.ErrInvalidArg)
}

func TestStoreConcurrentFirstLoad(t *testing.T) {
	src := schema_mock.NewMockSource(gomock.NewController(t))
	store := NewStore(src, nil)

	src.EXPECT().Read(gomock.Any(), "process_request_request.json").DoAndReturn(func(ctx context.Context, key string) ([]byte, error) {
		time.Sleep(50 * time.Millisecond) // hold the load open while everyone piles in
		return []byte(webhookSchema), nil
	}).Times(1)

	callers := 32
	start := make(chan struct{})
	results := make([]*Document, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			results[i], errs[i] = store.Load(context.Background(), "process_request", Request)
		}(i)
	}
	close(start)
	wg.Wait()

	for i := 0; i < callers; i++ {
		assert.Nil(t, errs[i])
		assert.Same(t, results[0], results[i])
	}
}

func TestDirSource(t *testing.T) {
	fsys := fstest.MapFS{
		"job_request.json": &fstest.MapFile{Data: []byte(webhookSchema)},
		"bad_request.json": &fstest.MapFile{Data: []byte(`{{{`)},
	}
	store := NewStore(NewFSSource(fsys), nil)

	doc, err := store.Load(context.Background(), "job", Request)
	assert.Nil(t, err)
	assert.Equal(t, []string{"webhook_url"}, names(doc))

	doc, err = store.Load(context.Background(), "job", Response)
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, ie.ErrSchemaNotFound)

	doc, err = store.Load(context.Background(), "bad", Request)
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, ie.ErrSchemaMalformed)
}

func TestDirSourceRejectsPaths(t *testing.T) {
	src := NewFSSource(fstest.MapFS{})

	data, err := src.Read(context.Background(), "../job_request.json")

	assert.Nil(t, data)
	assert.ErrorIs(t, err, ie.ErrSchemaNotFound)
}
