package mempool

import "go.uber.org/zap"

// Option customizes a Pool beyond what Config carries.
type Option[T any] func(*Pool[T])

// WithSource replaces the default heap-backed memory source used to obtain
// raw storage for each chunk.
func WithSource[T any](src Source[T]) Option[T] {
	return func(p *Pool[T]) { p.source = src }
}

// WithLogger sets the logger used for chunk growth and close diagnostics.
// Defaults to a no-op logger.
func WithLogger[T any](logger *zap.Logger) Option[T] {
	return func(p *Pool[T]) { p.logger = logger }
}

// WithReset registers a hook invoked on an element by Put just before its
// slot is released. Use it to tear down element state the way a destructor
// would; the pool only calls it, never defines what it does.
func WithReset[T any](fn func(*T)) Option[T] {
	return func(p *Pool[T]) { p.reset = fn }
}
