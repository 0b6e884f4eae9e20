package retriever

import (
	"context"
	"errors"
	"fmt"

	"github.com/w-h-a/recall/storer"
)

// ErrBadLimit indicates a top-k outside (0, MaxTopK]. It marks caller input
// problems, as opposed to storer.ErrUnavailable which marks store problems.
var ErrBadLimit = errors.New("top-k out of range")

// Retriever guards a storer with top-k bounds. An owner with no stored records
// retrieves an empty result, which is a legitimate "no context" outcome and
// never an error.
type Retriever struct {
	options Options
	storer  storer.Storer
}

func (r *Retriever) Retrieve(ctx context.Context, owner string, vector []float32, k int) ([]storer.Match, error) {
	if k < 1 || k > r.options.MaxTopK {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrBadLimit, k, r.options.MaxTopK)
	}

	opts := []storer.SearchOption{}
	if len(owner) > 0 {
		opts = append(opts, storer.WithOwner(owner))
	}

	matches, err := r.storer.Search(ctx, vector, k, opts...)
	if err != nil {
		return nil, err
	}

	return matches, nil
}

func (r *Retriever) MaxTopK() int {
	return r.options.MaxTopK
}

func NewRetriever(s storer.Storer, opts ...Option) *Retriever {
	options := NewOptions(opts...)

	return &Retriever{
		options: options,
		storer:  s,
	}
}
