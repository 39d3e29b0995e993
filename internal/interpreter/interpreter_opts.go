package interpreter

// MaxPrecision is the largest decimal count Interpret and Stringify render.
// Beyond 17 decimals a float64 carries no further information.
const MaxPrecision = 17

type interpreterOpts struct {
	strictDivision bool
	precision      int
}

var defaultInterpreterOpts = interpreterOpts{
	precision: -1,
}

type InterpreterOption func(*interpreterOpts)

// WithStrictDivision turns division by zero into an EvalError instead of ±Inf or NaN.
func WithStrictDivision() InterpreterOption {
	return func(opts *interpreterOpts) {
		opts.strictDivision = true
	}
}

// WithPrecision sets the number of decimals Interpret renders, -1 for the shortest exact form.
// Values above MaxPrecision are capped.
func WithPrecision(precision int) InterpreterOption {
	return func(opts *interpreterOpts) {
		opts.precision = precision
	}
}

func newInterpreterOpts(options ...InterpreterOption) *interpreterOpts {
	opts := defaultInterpreterOpts
	for _, opt := range options {
		opt(&opts)
	}

	if opts.precision < -1 {
		opts.precision = -1
	}
	if opts.precision > MaxPrecision {
		opts.precision = MaxPrecision
	}

	return &opts
}
