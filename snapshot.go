package hakoniwa

import (
	"reflect"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
)

// archetypeSnapshot describes one archetype in a world snapshot.
type archetypeSnapshot struct {
	Mask       uint64   `json:"mask"`
	Index      int      `json:"index"`
	Components []string `json:"components"`
	Entities   int      `json:"entities"`
}

// entitySnapshot describes one live entity and its decoded component values.
type entitySnapshot struct {
	ID         uint32         `json:"id"`
	Generation uint32         `json:"generation"`
	Archetype  int            `json:"archetype"`
	Components map[string]any `json:"components"`
}

// worldSnapshot is the JSON document produced by Snapshot.
type worldSnapshot struct {
	EntityCount int                 `json:"entity_count"`
	Archetypes  []archetypeSnapshot `json:"archetypes"`
	Entities    []entitySnapshot    `json:"entities"`
}

// Snapshot encodes the current world state as a JSON document: archetypes
// with their masks and row counts, and every live entity with its component
// values decoded through the registry's type information. Inspection only;
// the engine writes nothing, the caller owns the returned bytes.
func (w *World) Snapshot() ([]byte, error) {
	snap := worldSnapshot{
		EntityCount: w.EntityCount(),
		Archetypes:  make([]archetypeSnapshot, 0, len(w.archetypes)),
		Entities:    make([]entitySnapshot, 0, w.EntityCount()),
	}
	for _, a := range w.archetypes {
		names := make([]string, 0, len(a.columns))
		for _, c := range a.columns {
			names = append(names, w.registry.typeName(c.typeIndex))
		}
		snap.Archetypes = append(snap.Archetypes, archetypeSnapshot{
			Mask:       uint64(a.mask),
			Index:      a.index,
			Components: names,
			Entities:   len(a.entities),
		})
		for row, e := range a.entities {
			comps := make(map[string]any, len(a.columns))
			for slot, c := range a.columns {
				typ := w.registry.types[c.typeIndex]
				val := reflect.NewAt(typ, a.cellPtr(slot, row)).Elem().Interface()
				comps[w.registry.typeName(c.typeIndex)] = val
			}
			snap.Entities = append(snap.Entities, entitySnapshot{
				ID:         e.ID,
				Generation: e.Generation,
				Archetype:  a.index,
				Components: comps,
			})
		}
	}
	bz, err := json.Marshal(snap)
	if err != nil {
		return nil, eris.Wrap(err, "")
	}
	return bz, nil
}
