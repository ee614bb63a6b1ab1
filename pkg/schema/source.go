package schema

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	ie "github.com/voidshard/jobgate/pkg/errors"
)

// Source is wherever schema files are kept.
type Source interface {
	// Read returns the raw bytes of the schema with the given key (a file name like
	// "process_request_request.json"). If there is no such schema the error wraps
	// ErrSchemaNotFound.
	Read(ctx context.Context, key string) ([]byte, error)
}

// DirSource reads schema files from a directory.
type DirSource struct {
	fsys fs.FS
}

// NewDirSource returns a Source reading from the given directory.
func NewDirSource(dir string) *DirSource {
	return &DirSource{fsys: os.DirFS(dir)}
}

// NewFSSource returns a Source reading from the given file system.
func NewFSSource(fsys fs.FS) *DirSource {
	return &DirSource{fsys: fsys}
}

// Read the schema file named key.
func (s *DirSource) Read(ctx context.Context, key string) ([]byte, error) {
	if !fs.ValidPath(key) {
		return nil, fmt.Errorf("%w: bad key %s", ie.ErrSchemaNotFound, key)
	}
	data, err := fs.ReadFile(s.fsys, key)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ie.ErrSchemaNotFound, key)
	}
	return data, err
}

// Key returns the key a schema for the given resource & direction is stored under.
func Key(resource string, dir Direction) string {
	return fmt.Sprintf("%s_%s.json", resource, dir)
}
