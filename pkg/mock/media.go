package mock

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"TubeFuss.com/pkg/oss"
	"TubeFuss.com/pkg/search"
	"github.com/google/uuid"
)

// Storage is an in-memory media host. Objects are keyed by public id.
type Storage struct {
	mu      sync.Mutex
	objects map[string]string

	// FailUpload and FailDelete make the next calls fail.
	FailUpload bool
	FailDelete bool
	Duration   float64
}

var _ oss.Storage = (*Storage)(nil)

func NewStorage() *Storage {
	return &Storage{objects: make(map[string]string), Duration: 12.5}
}

func (s *Storage) Upload(_ context.Context, localPath, resourceType string) (*oss.Upload, error) {
	_ = os.Remove(localPath)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailUpload {
		return nil, errors.New("media host unavailable")
	}
	id := uuid.NewString()
	s.objects[id] = resourceType
	up := &oss.Upload{
		URL:      "http://media.local/" + resourceType + "/" + id + strings.ToLower(filepath.Ext(localPath)),
		PublicID: id,
	}
	if resourceType == oss.ResourceVideo {
		up.Duration = s.Duration
	}
	return up, nil
}

func (s *Storage) Delete(_ context.Context, publicID, resourceType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailDelete {
		return errors.New("media host unavailable")
	}
	delete(s.objects, publicID)
	return nil
}

func (s *Storage) Has(publicID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[publicID]
	return ok
}

func (s *Storage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

// Index is an in-memory search.VideoIndex doing case-insensitive substring matches.
type Index struct {
	mu   sync.Mutex
	docs map[string]search.VideoDoc
	Err  error
}

var _ search.VideoIndex = (*Index)(nil)

func NewIndex() *Index {
	return &Index{docs: make(map[string]search.VideoDoc)}
}

func (i *Index) Index(_ context.Context, doc search.VideoDoc) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.docs[doc.ID] = doc
	return nil
}

func (i *Index) Delete(_ context.Context, id string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.docs, id)
	return nil
}

func (i *Index) SearchIDs(_ context.Context, query string) ([]string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.Err != nil {
		return nil, i.Err
	}
	q := strings.ToLower(query)
	ids := []string{}
	for id, d := range i.docs {
		if d.IsPublished && (strings.Contains(strings.ToLower(d.Title), q) || strings.Contains(strings.ToLower(d.Description), q)) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
