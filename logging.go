package parquetcore

import "go.uber.org/zap"

// Option configures a File at open time.
type Option func(*openOptions)

type openOptions struct {
	logger *zap.SugaredLogger
}

// WithLogger attaches a logger used for ambient debug logging. Only opening
// a file logs (one debug entry with the row-group, leaf and row counts);
// the column readers and page decoding do not log. Defaults to a no-op
// logger when not supplied.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(o *openOptions) {
		o.logger = logger
	}
}

func resolveOptions(opts []Option) *openOptions {
	o := &openOptions{}
	for _, apply := range opts {
		apply(o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop().Sugar()
	}
	return o
}
