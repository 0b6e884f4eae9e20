package retriever

import "context"

type Option func(*Options)

type Options struct {
	MaxTopK int
	Context context.Context
}

// WithMaxTopK sets the ceiling on how many records a single retrieval may pull
// into the prompt.
func WithMaxTopK(max int) Option {
	return func(o *Options) {
		o.MaxTopK = max
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		MaxTopK: 20,
		Context: context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
