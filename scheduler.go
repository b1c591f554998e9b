package hakoniwa

import (
	"path/filepath"
	"reflect"
	"runtime"

	"github.com/rotisserie/eris"
)

// System is a unit of game logic scheduled against the world once per run.
// Returning an error stops the current run.
type System func(w *World) error

// RegisterSystems appends systems to the schedule in call order. A system's
// name is derived from its function name; duplicate names are rejected and
// none of the batch is registered, so registration is all-or-nothing.
func (w *World) RegisterSystems(systems ...System) error {
	names := make([]string, 0, len(systems))
	for _, system := range systems {
		name := systemName(system)
		for _, existing := range w.systemNames {
			if existing == name {
				return eris.Errorf("failed to register system: %s is already registered", name)
			}
		}
		for _, pending := range names {
			if pending == name {
				return eris.Errorf("failed to register system: %s is already registered", name)
			}
		}
		names = append(names, name)
	}
	for i, name := range names {
		w.systemNames = append(w.systemNames, name)
		w.systems = append(w.systems, systems[i])
		w.logger.Debug().Str("system", name).Msg("system registered")
	}
	return nil
}

// SystemNames returns the registered system names in schedule order.
func (w *World) SystemNames() []string {
	return w.systemNames
}

// RunSystems invokes every registered system in registration order. The
// first failing system stops the run and its error is surfaced, wrapped with
// the system's name.
func (w *World) RunSystems() error {
	for i, system := range w.systems {
		name := w.systemNames[i]
		if err := system(w); err != nil {
			w.logger.Error().Str("system", name).Err(err).Msg("system failed")
			return eris.Wrapf(err, "system %s generated an error", name)
		}
	}
	return nil
}

// systemName derives a display name from the system's function symbol.
func systemName(system System) string {
	return filepath.Base(runtime.FuncForPC(reflect.ValueOf(system).Pointer()).Name())
}
