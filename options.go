package hakoniwa

import "github.com/rs/zerolog"

// Option configures a World at construction.
type Option func(w *World)

// WithCapacity pre-sizes the entity directory for the expected entity count,
// avoiding growth reallocations during the first spawns.
func WithCapacity(capacity int) Option {
	return func(w *World) {
		if capacity > cap(w.metas) {
			metas := make([]entityMeta, len(w.metas), capacity)
			copy(metas, w.metas)
			w.metas = metas
		}
	}
}

// WithLogger installs a logger. The default world logs nothing.
func WithLogger(logger zerolog.Logger) Option {
	return func(w *World) {
		w.logger = Logger{&logger}
	}
}
