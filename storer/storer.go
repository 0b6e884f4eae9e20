package storer

import (
	"context"
	"errors"
)

// ErrUnavailable indicates the backing store could not serve the request.
var ErrUnavailable = errors.New("store unavailable")

type Storer interface {
	Insert(ctx context.Context, rec Record) (string, error)
	Delete(ctx context.Context, id string) (bool, error)
	Search(ctx context.Context, vector []float32, limit int, opts ...SearchOption) ([]Match, error)
}
