// Profiling:
// go build ./profile/entities
// go tool pprof -http=":8000" -nodefraction=0.001 ./entities mem.pprof

package main

import (
	"github.com/pkg/profile"

	"github.com/kazedev/hakoniwa"
)

type comp1 struct {
	V int64
	W int64
}

type comp2 struct {
	V int64
	W int64
}

func main() {
	count := 50
	iters := 10000
	entities := 1000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(count, iters, entities)
	p.Stop()
}

func run(rounds, iters, numEntities int) {
	for i := 0; i < rounds; i++ {
		reg := hakoniwa.NewRegistry()
		c1 := hakoniwa.Register[comp1](reg)
		c2 := hakoniwa.Register[comp2](reg)
		mask := hakoniwa.MaskOf(c1, c2)
		w := hakoniwa.NewWorld(reg, hakoniwa.WithCapacity(numEntities))

		for j := 0; j < iters; j++ {
			entities := w.SpawnWithMask(mask, numEntities)
			for _, e := range entities {
				w.Despawn(e)
			}
		}
	}
}
