package recall

import (
	"context"
	"time"

	"github.com/w-h-a/recall/embedder"
	"github.com/w-h-a/recall/generator"
	"github.com/w-h-a/recall/recorder"
	"github.com/w-h-a/recall/storer"
)

type Option func(*Options)

type Options struct {
	Embedder  embedder.Embedder
	Storer    storer.Storer
	Generator generator.Generator
	Recorder  recorder.Recorder

	Dimensions      int
	DefaultTopK     int
	MaxTopK         int
	MaxPromptLength int
	Instruction     string

	EmbedTimeout    time.Duration
	SearchTimeout   time.Duration
	GenerateTimeout time.Duration

	Context context.Context
}

func WithEmbedder(e embedder.Embedder) Option {
	return func(o *Options) {
		o.Embedder = e
	}
}

func WithStorer(s storer.Storer) Option {
	return func(o *Options) {
		o.Storer = s
	}
}

func WithGenerator(g generator.Generator) Option {
	return func(o *Options) {
		o.Generator = g
	}
}

func WithRecorder(r recorder.Recorder) Option {
	return func(o *Options) {
		o.Recorder = r
	}
}

// WithDimensions pins the vector length shared by the embedder and the store.
// A vector of any other length is a hard failure, never truncated or padded.
func WithDimensions(dims int) Option {
	return func(o *Options) {
		o.Dimensions = dims
	}
}

func WithDefaultTopK(k int) Option {
	return func(o *Options) {
		o.DefaultTopK = k
	}
}

func WithMaxTopK(max int) Option {
	return func(o *Options) {
		o.MaxTopK = max
	}
}

func WithMaxPromptLength(max int) Option {
	return func(o *Options) {
		o.MaxPromptLength = max
	}
}

func WithInstruction(instruction string) Option {
	return func(o *Options) {
		o.Instruction = instruction
	}
}

func WithTimeouts(embed, search, generate time.Duration) Option {
	return func(o *Options) {
		o.EmbedTimeout = embed
		o.SearchTimeout = search
		o.GenerateTimeout = generate
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Dimensions:      768,
		DefaultTopK:     5,
		MaxTopK:         20,
		MaxPromptLength: 8000,
		EmbedTimeout:    15 * time.Second,
		SearchTimeout:   5 * time.Second,
		GenerateTimeout: 60 * time.Second,
		Context:         context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
