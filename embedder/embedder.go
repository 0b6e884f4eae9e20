package embedder

import (
	"context"
	"errors"
)

var (
	// ErrUnavailable indicates the remote embedding backend could not be reached.
	ErrUnavailable = errors.New("embedder unavailable")
	// ErrMalformed indicates the backend answered with a vector of the wrong
	// shape, most often after a backend swap changed the output dimensionality.
	ErrMalformed = errors.New("malformed embedding")
)

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
