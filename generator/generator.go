package generator

import (
	"context"
	"errors"
)

var (
	// ErrUnavailable indicates the remote generation backend could not be reached.
	ErrUnavailable = errors.New("generator unavailable")
	// ErrEmpty indicates the backend returned nothing. An empty completion is a
	// failure, not a valid "no answer".
	ErrEmpty = errors.New("empty generation")
)

type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
