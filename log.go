package hakoniwa

import (
	"github.com/rs/zerolog"
)

// Logger wraps a zerolog.Logger with world-aware log events.
type Logger struct {
	*zerolog.Logger
}

func (l *Logger) loadComponentsToEvent(event *zerolog.Event, w *World) *zerolog.Event {
	event.Int("total_components", w.registry.Len())
	arrayLogger := zerolog.Arr()
	for id := 0; id < w.registry.Len(); id++ {
		dict := zerolog.Dict().
			Int("component_id", id).
			Str("component_name", w.registry.typeName(ComponentID(id)))
		arrayLogger = arrayLogger.Dict(dict)
	}
	return event.Array("components", arrayLogger)
}

func (l *Logger) loadSystemsToEvent(event *zerolog.Event, w *World) *zerolog.Event {
	event.Int("total_systems", len(w.systemNames))
	arrayLogger := zerolog.Arr()
	for _, name := range w.systemNames {
		arrayLogger = arrayLogger.Str(name)
	}
	return event.Array("systems", arrayLogger)
}

// LogWorld logs the world's registered components and systems.
func (l *Logger) LogWorld(w *World, level zerolog.Level) {
	event := l.WithLevel(level)
	event = l.loadComponentsToEvent(event, w)
	event = l.loadSystemsToEvent(event, w)
	event.Send()
}

// LogArchetypes logs every archetype's mask and row count.
func (l *Logger) LogArchetypes(w *World, level zerolog.Level) {
	event := l.WithLevel(level)
	event.Int("total_archetypes", len(w.archetypes))
	arrayLogger := zerolog.Arr()
	for _, a := range w.archetypes {
		dict := zerolog.Dict().
			Int("archetype_index", a.index).
			Uint64("mask", uint64(a.mask)).
			Int("entities", len(a.entities))
		arrayLogger = arrayLogger.Dict(dict)
	}
	event.Array("archetypes", arrayLogger)
	event.Send()
}

// CreateSystemLogger creates a sub-logger with the entry {"system": name}.
func (l *Logger) CreateSystemLogger(name string) Logger {
	sub := l.Logger.With().Str("system", name).Logger()
	return Logger{&sub}
}
