package schema

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/voidshard/jobgate/internal/utils"
	ie "github.com/voidshard/jobgate/pkg/errors"
)

// Store loads documents from a Source & keeps them for the life of the process.
//
// Documents are never reloaded; changing a schema means a restart.
type Store struct {
	src Source
	log *slog.Logger

	lock  sync.RWMutex
	cache map[string]*Document

	// loads of the same key in flight at the same time share one read
	flight singleflight.Group
}

// NewStore returns an empty Store reading from src.
func NewStore(src Source, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{src: src, log: log, cache: map[string]*Document{}}
}

// Load returns the document for the given resource & direction.
//
// The first successful load of a key is cached; every later (or concurrent) caller gets
// the same *Document. Failed loads are not cached.
func (s *Store) Load(ctx context.Context, resource string, dir Direction) (*Document, error) {
	if !utils.IsValidName(resource) {
		return nil, fmt.Errorf("%w: bad resource name %q", ie.ErrSchemaNotFound, resource)
	}
	if dir != Request && dir != Response {
		return nil, fmt.Errorf("%w: bad direction %q", ie.ErrInvalidArg, dir)
	}
	key := Key(resource, dir)

	if doc, ok := s.cached(key); ok {
		return doc, nil
	}

	result, err, _ := s.flight.Do(key, func() (interface{}, error) {
		// someone may have finished loading this between our check & getting here
		if doc, ok := s.cached(key); ok {
			return doc, nil
		}

		data, err := s.src.Read(ctx, key)
		if err != nil {
			return nil, err
		}
		doc, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%w (%s)", err, key)
		}

		s.lock.Lock()
		s.cache[key] = doc
		s.lock.Unlock()

		s.log.Debug("loaded schema", "key", key, "properties", len(doc.Properties))
		return doc, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*Document), nil
}

func (s *Store) cached(key string) (*Document, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	doc, ok := s.cache[key]
	return doc, ok
}
