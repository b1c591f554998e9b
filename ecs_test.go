package hakoniwa_test

import (
	"testing"

	"github.com/kazedev/hakoniwa"
)

// --- Test Components ---
type Position struct{ X, Y float32 }
type Velocity struct{ VX, VY float32 }
type Health struct{ Current, Max int }
type Tag struct{}
type UnregisteredComponent struct{}

// --- Test Suite Setup ---
func setupWorld(_ *testing.T) (*hakoniwa.World, hakoniwa.Mask, hakoniwa.Mask, hakoniwa.Mask) {
	reg := hakoniwa.NewRegistry()
	posID := hakoniwa.Register[Position](reg)
	velID := hakoniwa.Register[Velocity](reg)
	healthID := hakoniwa.Register[Health](reg)
	hakoniwa.Register[Tag](reg)
	w := hakoniwa.NewWorld(reg)
	return w, hakoniwa.MaskOf(posID), hakoniwa.MaskOf(velID), hakoniwa.MaskOf(healthID)
}

// --- Tests ---

// go test -run ^TestBasicLifecycle$ . -count 1
func TestBasicLifecycle(t *testing.T) {
	world, _, _, _ := setupWorld(t)

	e := hakoniwa.Spawn2(world, Position{1, 2}, Velocity{3, 4})
	if e.ID != 0 || e.Generation != 0 {
		t.Fatalf("Expected first handle (0,0), got (%d,%d)", e.ID, e.Generation)
	}

	p := hakoniwa.GetComponent[Position](world, e)
	if p == nil || p.X != 1 || p.Y != 2 {
		t.Fatalf("Position data incorrect after spawn. Got %+v", p)
	}
	if h := hakoniwa.GetComponent[Health](world, e); h != nil {
		t.Errorf("Expected nil for absent Health component, got %+v", h)
	}

	if !hakoniwa.SetComponent(world, e, Position{10, 20}) {
		t.Fatal("SetComponent failed on a present component")
	}
	p = hakoniwa.GetComponent[Position](world, e)
	if p.X != 10 || p.Y != 20 {
		t.Errorf("Position data incorrect after SetComponent. Got %+v", p)
	}

	if !world.Despawn(e) {
		t.Fatal("Despawn failed on a live entity")
	}
	if world.IsAlive(e) {
		t.Error("Entity still alive after Despawn")
	}

	e2 := hakoniwa.Spawn2(world, Position{5, 6}, Velocity{7, 8})
	if e2.ID != 0 || e2.Generation != 1 {
		t.Errorf("Expected recycled handle (0,1), got (%d,%d)", e2.ID, e2.Generation)
	}
}

// go test -run ^TestSpawnEmptyMask$ . -count 1
func TestSpawnEmptyMask(t *testing.T) {
	world, _, _, _ := setupWorld(t)
	e := world.Spawn(0)
	if e != hakoniwa.Nil {
		t.Errorf("Expected Nil handle for empty spawn, got (%d,%d)", e.ID, e.Generation)
	}
	if world.EntityCount() != 0 {
		t.Errorf("Entity count changed on empty spawn: %d", world.EntityCount())
	}
	if ents := world.SpawnWithMask(0, 5); ents != nil {
		t.Errorf("Expected no entities from SpawnWithMask(0, 5), got %d", len(ents))
	}
}

// go test -run ^TestSwapRemoveIntegrity$ . -count 1
func TestSwapRemoveIntegrity(t *testing.T) {
	world, _, _, _ := setupWorld(t)

	e1 := hakoniwa.Spawn(world, Position{X: 1})
	e2 := hakoniwa.Spawn(world, Position{X: 2})
	e3 := hakoniwa.Spawn(world, Position{X: 3})

	if !world.Despawn(e2) {
		t.Fatal("Despawn of middle entity failed")
	}
	if p := hakoniwa.GetComponent[Position](world, e1); p == nil || p.X != 1 {
		t.Errorf("e1 data corrupted after swap-remove. Got %+v", p)
	}
	if p := hakoniwa.GetComponent[Position](world, e3); p == nil || p.X != 3 {
		t.Errorf("e3 data corrupted after swap-remove. Got %+v", p)
	}
	if world.EntityCount() != 2 {
		t.Errorf("Expected 2 live entities, got %d", world.EntityCount())
	}
}

// go test -run ^TestStructuralMutation$ . -count 1
func TestStructuralMutation(t *testing.T) {
	world, _, _, _ := setupWorld(t)

	e := hakoniwa.Spawn(world, Position{1, 2})
	if !hakoniwa.AddComponent(world, e, Velocity{5, 6}) {
		t.Fatal("AddComponent failed")
	}
	if !hakoniwa.HasComponent[Velocity](world, e) {
		t.Error("HasComponent is false after AddComponent")
	}
	if p := hakoniwa.GetComponent[Position](world, e); p == nil || p.X != 1 || p.Y != 2 {
		t.Errorf("Position lost across migration. Got %+v", p)
	}
	if v := hakoniwa.GetComponent[Velocity](world, e); v == nil || v.VX != 5 || v.VY != 6 {
		t.Errorf("Velocity data incorrect after AddComponent. Got %+v", v)
	}
	if world.ArchetypeCount() != 2 {
		t.Errorf("Expected 2 archetypes, got %d", world.ArchetypeCount())
	}
}

// go test -run ^TestAddOverwritesExisting$ . -count 1
func TestAddOverwritesExisting(t *testing.T) {
	world, _, _, _ := setupWorld(t)

	e := hakoniwa.Spawn(world, Position{1, 2})
	if !hakoniwa.AddComponent(world, e, Position{9, 9}) {
		t.Fatal("AddComponent on a present component failed")
	}
	if p := hakoniwa.GetComponent[Position](world, e); p.X != 9 || p.Y != 9 {
		t.Errorf("Value not overwritten. Got %+v", p)
	}
	if world.ArchetypeCount() != 1 {
		t.Errorf("Archetype changed on overwrite: %d archetypes", world.ArchetypeCount())
	}
}

// go test -run ^TestAddRemoveRoundTrip$ . -count 1
func TestAddRemoveRoundTrip(t *testing.T) {
	world, _, _, _ := setupWorld(t)

	e := hakoniwa.Spawn2(world, Position{1, 2}, Health{50, 100})
	before, _ := world.ComponentMask(e)

	hakoniwa.AddComponent(world, e, Velocity{3, 4})
	if !hakoniwa.RemoveComponent[Velocity](world, e) {
		t.Fatal("RemoveComponent failed")
	}

	after, ok := world.ComponentMask(e)
	if !ok || after != before {
		t.Errorf("Mask not restored: before=%b after=%b", before, after)
	}
	if p := hakoniwa.GetComponent[Position](world, e); p == nil || p.X != 1 {
		t.Errorf("Position lost across round trip. Got %+v", p)
	}
	if h := hakoniwa.GetComponent[Health](world, e); h == nil || h.Current != 50 {
		t.Errorf("Health lost across round trip. Got %+v", h)
	}
}

// go test -run ^TestRemoveLastComponentDespawns$ . -count 1
func TestRemoveLastComponentDespawns(t *testing.T) {
	world, _, _, _ := setupWorld(t)

	e := hakoniwa.Spawn(world, Position{1, 2})
	if !hakoniwa.RemoveComponent[Position](world, e) {
		t.Fatal("RemoveComponent of the last component failed")
	}
	if world.IsAlive(e) {
		t.Error("Entity still alive after losing its last component")
	}
	if world.EntityCount() != 0 {
		t.Errorf("Expected 0 live entities, got %d", world.EntityCount())
	}
}

// go test -run ^TestDespawnStaleHandle$ . -count 1
func TestDespawnStaleHandle(t *testing.T) {
	world, _, _, _ := setupWorld(t)

	e := hakoniwa.Spawn(world, Position{})
	world.Despawn(e)
	if world.Despawn(e) {
		t.Error("Second Despawn of the same handle succeeded")
	}
	if world.Despawn(hakoniwa.Entity{ID: 999, Generation: 0}) {
		t.Error("Despawn of a never-issued ID succeeded")
	}

	// The recycled slot must carry a later generation.
	e2 := hakoniwa.Spawn(world, Position{})
	if e2.ID != e.ID || e2.Generation <= e.Generation {
		t.Errorf("Recycled handle (%d,%d) does not supersede (%d,%d)", e2.ID, e2.Generation, e.ID, e.Generation)
	}
	if world.IsAlive(e) {
		t.Error("Stale handle is alive after slot reuse")
	}
}

// go test -run ^TestSetComponent$ . -count 1
func TestSetComponent(t *testing.T) {
	world, _, _, _ := setupWorld(t)
	e := hakoniwa.Spawn(world, Position{1, 2})

	t.Run("UpdateExistingComponent", func(t *testing.T) {
		if !hakoniwa.SetComponent(world, e, Position{100, 200}) {
			t.Fatal("SetComponent failed on a present component")
		}
		p := hakoniwa.GetComponent[Position](world, e)
		if p.X != 100 || p.Y != 200 {
			t.Errorf("Component data incorrect after SetComponent. Got %+v", p)
		}
	})

	t.Run("SetDoesNotAdd", func(t *testing.T) {
		if hakoniwa.SetComponent(world, e, Velocity{1, 2}) {
			t.Fatal("SetComponent added a missing component; it must not")
		}
		if hakoniwa.HasComponent[Velocity](world, e) {
			t.Error("Velocity present after rejected SetComponent")
		}
	})

	t.Run("SetUnregisteredComponent", func(t *testing.T) {
		if hakoniwa.SetComponent(world, e, UnregisteredComponent{}) {
			t.Fatal("SetComponent should return false for an unregistered component")
		}
	})

	t.Run("SetOnDeadEntity", func(t *testing.T) {
		world.Despawn(e)
		if hakoniwa.SetComponent(world, e, Position{}) {
			t.Fatal("SetComponent succeeded on a dead entity")
		}
	})
}

// go test -run ^TestHasComponents$ . -count 1
func TestHasComponents(t *testing.T) {
	world, posBit, velBit, healthBit := setupWorld(t)

	e := hakoniwa.Spawn2(world, Position{}, Velocity{})
	if !world.HasComponents(e, posBit|velBit) {
		t.Error("HasComponents false for the entity's own component set")
	}
	if world.HasComponents(e, posBit|healthBit) {
		t.Error("HasComponents true for a component the entity lacks")
	}

	mask, ok := world.ComponentMask(e)
	if !ok || mask != posBit|velBit {
		t.Errorf("ComponentMask mismatch: got %b", mask)
	}

	world.Despawn(e)
	if _, ok := world.ComponentMask(e); ok {
		t.Error("ComponentMask reported a mask for a dead entity")
	}
}

// go test -run ^TestZeroSizeComponent$ . -count 1
func TestZeroSizeComponent(t *testing.T) {
	world, _, _, _ := setupWorld(t)

	e := hakoniwa.Spawn2(world, Position{1, 1}, Tag{})
	if !hakoniwa.HasComponent[Tag](world, e) {
		t.Error("Tag component missing after spawn")
	}
	if !hakoniwa.RemoveComponent[Tag](world, e) {
		t.Fatal("RemoveComponent of a tag failed")
	}
	if p := hakoniwa.GetComponent[Position](world, e); p == nil || p.X != 1 {
		t.Errorf("Position corrupted by tag removal. Got %+v", p)
	}
}

// go test -run ^TestClearEntities$ . -count 1
func TestClearEntities(t *testing.T) {
	world, _, _, _ := setupWorld(t)

	e1 := hakoniwa.Spawn(world, Position{})
	e2 := hakoniwa.Spawn2(world, Position{}, Velocity{})
	world.ClearEntities()

	if world.EntityCount() != 0 {
		t.Errorf("Expected 0 entities after ClearEntities, got %d", world.EntityCount())
	}
	if world.IsAlive(e1) || world.IsAlive(e2) {
		t.Error("Handles still alive after ClearEntities")
	}

	e3 := hakoniwa.Spawn(world, Position{})
	if !world.IsAlive(e3) {
		t.Error("Spawn after ClearEntities produced a dead handle")
	}
}

// go test -run ^TestGetComponentUnchecked$ . -count 1
func TestGetComponentUnchecked(t *testing.T) {
	world, _, _, _ := setupWorld(t)

	e := hakoniwa.Spawn(world, Position{7, 8})
	p := hakoniwa.GetComponentUnchecked[Position](world, e)
	if p.X != 7 || p.Y != 8 {
		t.Errorf("Unchecked access returned wrong data: %+v", p)
	}
	p.X = 42
	if q := hakoniwa.GetComponent[Position](world, e); q.X != 42 {
		t.Error("Write through unchecked pointer not visible")
	}
}
