// Package charts turns normalized profile data into drawing commands on an
// svg.Target.
package charts

// options holds renderer settings shared by both charts.
type options struct {
	enhanced bool
}

// Option applies a configuration option to a renderer.
type Option func(*options)

// WithEnhanced toggles the enhanced look: glow filters on skill rings and
// gradient fills on audit bars.
func WithEnhanced(enabled bool) Option {
	return func(o *options) {
		o.enhanced = enabled
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
