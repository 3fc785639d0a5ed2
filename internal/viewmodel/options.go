package viewmodel

import "github.com/samvad-hq/nyc-schools/internal/logger"

type options struct {
	log logger.Logger
}

// Option customizes a view model.
type Option func(*options)

// WithLogger overrides the viewcycle logger.
func WithLogger(log logger.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{log: logger.For(logger.CategoryViewCycle)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
