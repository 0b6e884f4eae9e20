package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/w-h-a/recall/storer"
)

type memoryStorer struct {
	options storer.Options
	records map[string]storer.Record
	mtx     sync.RWMutex
}

func (s *memoryStorer) Insert(ctx context.Context, rec storer.Record) (string, error) {
	if s.options.Dimensions > 0 && len(rec.Embedding) != s.options.Dimensions {
		return "", fmt.Errorf("embedding has %d dimensions, store expects %d", len(rec.Embedding), s.options.Dimensions)
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	id := uuid.New().String()

	cpy := make([]float32, len(rec.Embedding))
	copy(cpy, rec.Embedding)

	rec.Id = id
	rec.Embedding = cpy
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	s.records[id] = rec

	return id, nil
}

func (s *memoryStorer) Delete(ctx context.Context, id string) (bool, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, exists := s.records[id]; !exists {
		return false, nil
	}

	delete(s.records, id)

	return true, nil
}

func (s *memoryStorer) Search(ctx context.Context, vector []float32, limit int, opts ...storer.SearchOption) ([]storer.Match, error) {
	if limit < 1 {
		return nil, nil
	}

	options := storer.NewSearchOptions(opts...)

	s.mtx.RLock()
	defer s.mtx.RUnlock()

	candidates := make([]storer.Match, 0, len(s.records))

	for _, rec := range s.records {
		if len(options.Owner) > 0 && len(rec.Owner) > 0 && rec.Owner != options.Owner {
			continue
		}
		distance := storer.CosineDistance(vector, rec.Embedding)
		candidates = append(candidates, storer.Match{Record: rec, Distance: float32(distance)})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Distance != candidates[j].Distance {
			return candidates[i].Distance < candidates[j].Distance
		}
		return candidates[i].Record.CreatedAt.After(candidates[j].Record.CreatedAt)
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	return candidates, nil
}

func NewStorer(opts ...storer.Option) storer.Storer {
	options := storer.NewOptions(opts...)

	s := &memoryStorer{
		options: options,
		records: map[string]storer.Record{},
		mtx:     sync.RWMutex{},
	}

	return s
}
