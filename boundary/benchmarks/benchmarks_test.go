package benchmarks

import (
	"fmt"
	"testing"

	"github.com/notargets/gridbc/boundary"
	"github.com/notargets/gridbc/lattice"
	"github.com/notargets/gridbc/stencil"
)

const (
	fluid = uint32(0b01)
	wall  = uint32(0b10)
)

// channelWithCylinder is the classic benchmark domain: walls along the
// channel and a cylinder obstacle a quarter of the way downstream.
func channelWithCylinder(nx, ny int) (f *lattice.FlagField[uint32]) {
	var (
		err error
	)
	if f, err = lattice.NewFlagField[uint32](2, [3]int{nx, ny, 1}, 1); err != nil {
		panic(err)
	}
	f.Fill(fluid)
	f.FillSides(1, -1, 1, wall)
	f.FillSides(1, 1, 1, wall)
	f.FillCylinder(2, [2]float64{float64(nx) / 4, float64(ny) / 2}, float64(ny)/5, wall)
	return
}

func ballInBox(n int) (f *lattice.FlagField[uint32]) {
	var (
		err error
	)
	if f, err = lattice.NewFlagField[uint32](3, [3]int{n, n, n}, 1); err != nil {
		panic(err)
	}
	f.Fill(fluid)
	for axis := 0; axis < 3; axis++ {
		f.FillSides(axis, -1, 1, wall)
		f.FillSides(axis, 1, 1, wall)
	}
	c := float64(n)/2 + 1
	f.FillSphere([3]float64{c, c, c}, float64(n)/4, wall)
	return
}

func BenchmarkBuildIndexList(b *testing.B) {
	var (
		f2     = channelWithCylinder(1024, 256)
		f3     = ballInBox(96)
		st2, _ = stencil.New("D2Q9")
		st3, _ = stencil.New("D3Q19")
		nLinks int
	)
	b.Run("D2Q9 1024x256", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			il, err := boundary.BuildIndexList(f2, st2, wall, fluid, false)
			if err != nil {
				b.Fatal(err)
			}
			nLinks = il.Len()
		}
	})
	b.Run("D3Q19 96^3", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			il, err := boundary.BuildIndexList(f3, st3, wall, fluid, false)
			if err != nil {
				b.Fatal(err)
			}
			nLinks = il.Len()
		}
	})
	b.Run("D3Q19 96^3 single link", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			il, err := boundary.BuildIndexList(f3, st3, wall, fluid, true)
			if err != nil {
				b.Fatal(err)
			}
			nLinks = il.Len()
		}
	})
	b.Run("D3Q19 96^3 unchecked", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			il := boundary.BuildIndexListUnchecked(f3, st3, wall, fluid, false)
			nLinks = il.Len()
		}
	})
	fmt.Printf("nLinks = %d\n", nLinks)
}

func BenchmarkBuildIndexListParallel(b *testing.B) {
	var (
		f     = channelWithCylinder(2048, 512)
		st, _ = stencil.New("D2Q9")
	)
	for _, np := range []int{1, 2, 4, 8} {
		b.Run(fmt.Sprintf("np=%d", np), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := boundary.BuildIndexListParallel(f, st, wall, fluid, false, np); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkBuildBoundaryCellList(b *testing.B) {
	var (
		f     = channelWithCylinder(1024, 256)
		st, _ = stencil.New("D2Q9")
	)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := boundary.BuildBoundaryCellList(f, st, wall, fluid, false); err != nil {
			b.Fatal(err)
		}
	}
}
