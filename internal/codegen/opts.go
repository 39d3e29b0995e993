package codegen

type emitterOpts struct {
	indent string
}

var defaultEmitterOpts = emitterOpts{}

type Option func(*emitterOpts)

// WithIndent prefixes every emitted instruction line.
func WithIndent(indent string) Option {
	return func(opts *emitterOpts) {
		opts.indent = indent
	}
}

func newEmitterOpts(options ...Option) *emitterOpts {
	opts := defaultEmitterOpts
	for _, opt := range options {
		opt(&opts)
	}

	return &opts
}
