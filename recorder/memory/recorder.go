package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/w-h-a/recall/recorder"
)

type memoryRecorder struct {
	options recorder.Options
	turns   map[string][]recorder.Turn
	mtx     sync.RWMutex
}

func (r *memoryRecorder) Record(ctx context.Context, owner string, question string, answer string) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	now := time.Now().UTC()

	// the answer turn gets a later timestamp so ordering survives round-trips
	// through stores with coarser clocks
	r.turns[owner] = append(r.turns[owner],
		recorder.Turn{
			Id:        uuid.New().String(),
			Owner:     owner,
			Role:      recorder.RoleUser,
			Content:   question,
			CreatedAt: now,
		},
		recorder.Turn{
			Id:        uuid.New().String(),
			Owner:     owner,
			Role:      recorder.RoleAssistant,
			Content:   answer,
			CreatedAt: now.Add(time.Microsecond),
		},
	)

	return nil
}

func (r *memoryRecorder) List(ctx context.Context, owner string, limit int) ([]recorder.Turn, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	turns := r.turns[owner]
	if limit > 0 && len(turns) > limit {
		turns = turns[:limit]
	}

	cpy := make([]recorder.Turn, len(turns))
	copy(cpy, turns)

	return cpy, nil
}

func NewRecorder(opts ...recorder.Option) recorder.Recorder {
	options := recorder.NewOptions(opts...)

	r := &memoryRecorder{
		options: options,
		turns:   map[string][]recorder.Turn{},
		mtx:     sync.RWMutex{},
	}

	return r
}
