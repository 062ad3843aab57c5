package typecache

import (
	"github.com/jonwraymond/typepipe/observe"
	"github.com/jonwraymond/typepipe/participant"
)

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l observe.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics sets the metrics sink. Nil is ignored.
func WithMetrics(m observe.Metrics) Option {
	return func(c *Cache) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithTracer sets the tracer used for miss-path spans. Nil is ignored.
func WithTracer(t observe.Tracer) Option {
	return func(c *Cache) {
		if t != nil {
			c.tracer = t
		}
	}
}

// WithState sets the participant state shared with assembly and
// reconciliation. Nil is ignored.
func WithState(s *participant.State) Option {
	return func(c *Cache) {
		if s != nil {
			c.state = s
		}
	}
}
