package pipeline

import (
	"github.com/jonwraymond/typepipe/flush"
	"github.com/jonwraymond/typepipe/observe"
	"github.com/jonwraymond/typepipe/typemodel"
)

// Option configures a Pipeline.
type Option func(*options)

type options struct {
	observer     observe.Observer
	logger       observe.Logger
	resolver     flush.Resolver
	types        []typemodel.Type
	defaultShape typemodel.Type
}

// WithObserver reports metrics and traces through obs and logs through its
// logger unless WithLogger is also given.
func WithObserver(obs observe.Observer) Option {
	return func(o *options) { o.observer = obs }
}

// WithLogger sets the logger.
func WithLogger(l observe.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithResolver sets the resolver used to map flushed type names back to
// types. It replaces the registry built from WithTypes.
func WithResolver(r flush.Resolver) Option {
	return func(o *options) { o.resolver = r }
}

// WithTypes makes types resolvable by name when loading flushed output.
func WithTypes(types ...typemodel.Type) Option {
	return func(o *options) { o.types = append(o.types, types...) }
}

// WithDefaultShape sets the delegate shape Create uses. The default shape
// takes no parameters.
func WithDefaultShape(shape typemodel.Type) Option {
	return func(o *options) { o.defaultShape = shape }
}
