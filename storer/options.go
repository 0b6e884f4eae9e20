package storer

import "context"

type Option func(*Options)

type Options struct {
	Location   string
	Dimensions int
	Context    context.Context
}

func WithLocation(loc string) Option {
	return func(o *Options) {
		o.Location = loc
	}
}

func WithDimensions(dims int) Option {
	return func(o *Options) {
		o.Dimensions = dims
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Dimensions: 768,
		Context:    context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

type SearchOption func(*SearchOptions)

type SearchOptions struct {
	Owner   string
	Context context.Context
}

// WithOwner scopes a search to one owner. Records with no owner stay visible;
// records belonging to other owners never are. Leaving the owner unset searches
// the global scope.
func WithOwner(owner string) SearchOption {
	return func(o *SearchOptions) {
		o.Owner = owner
	}
}

func NewSearchOptions(opts ...SearchOption) SearchOptions {
	options := SearchOptions{
		Context: context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
