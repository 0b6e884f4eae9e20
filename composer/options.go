package composer

import "context"

const defaultInstruction = "Answer concisely with actionable steps based on the context above."

type Option func(*Options)

type Options struct {
	MaxLength   int
	Instruction string
	Context     context.Context
}

// WithMaxLength caps the composed prompt in characters. Zero disables the cap.
func WithMaxLength(max int) Option {
	return func(o *Options) {
		o.MaxLength = max
	}
}

func WithInstruction(instruction string) Option {
	return func(o *Options) {
		o.Instruction = instruction
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		MaxLength:   8000,
		Instruction: defaultInstruction,
		Context:     context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
