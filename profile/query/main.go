// Profiling:
// go build ./profile/query
// go tool pprof -http=":8000" -nodefraction=0.001 ./query mem.pprof

package main

import (
	"os"
	"runtime"
	"runtime/pprof"

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
	run(count, iters, entities)

	f, err := os.Create("mem.pprof")
	if err != nil {
		panic(err)
	}
	defer f.Close()
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		panic(err)
	}
}

func run(rounds, iters, numEntities int) {
	for i := 0; i < rounds; i++ {
		reg := hakoniwa.NewRegistry()
		c1 := hakoniwa.Register[comp1](reg)
		c2 := hakoniwa.Register[comp2](reg)
		bit1 := hakoniwa.MaskOf(c1)
		bit2 := hakoniwa.MaskOf(c2)
		mask := bit1 | bit2
		w := hakoniwa.NewWorld(reg, hakoniwa.WithCapacity(numEntities))

		for j := 0; j < iters; j++ {
			entities := w.SpawnWithMask(mask, numEntities)
			it := w.Tables(mask, 0)
			for it.Next() {
				a := it.Archetype()
				col1 := hakoniwa.ColumnUnchecked[comp1](a, bit1)
				col2 := hakoniwa.ColumnUnchecked[comp2](a, bit2)
				for i := range col1 {
					col1[i].V += col2[i].V
					col1[i].W += col2[i].W
				}
			}
			for _, e := range entities {
				w.Despawn(e)
			}
		}
	}
}
