package lattice

import (
	"fmt"
)

// Flags constrains the storage type of a flag field to the integer widths the builders accept.
type Flags interface {
	~int16 | ~int32 | ~int64 | ~uint16 | ~uint32 | ~uint64
}

/*
FlagField is a dense cartesian field of bitmask flags with ghost layers on every side. Storage is linear with
x fastest, then y, then z, so the linear index of cell [x,y,z] is x + Ex*(y + Ey*z) with [Ex,Ey,Ez] the
allocated extent. Two dimensional fields are stored with Extent[2] == 1 and all cells at z == 0, which lets
scans over either dimensionality share one set of loops.

Cell coordinates are in allocated space, including ghosts, so the first interior cell of each axis is at
coordinate Ghost.
*/
type FlagField[T Flags] struct {
	Dim    int
	Extent [3]int // Allocated extent per axis, including ghost layers
	Ghost  int
	Data   []T
}

func NewFlagField[T Flags](dim int, interior [3]int, ghost int) (f *FlagField[T], err error) {
	if dim != 2 && dim != 3 {
		err = fmt.Errorf("flag field dimension must be 2 or 3, got %d", dim)
		return
	}
	if ghost < 0 {
		err = fmt.Errorf("ghost layer count must not be negative, got %d", ghost)
		return
	}
	var extent [3]int
	for d := 0; d < 3; d++ {
		if d >= dim {
			if interior[d] > 1 {
				err = fmt.Errorf("axis %d exceeds field dimension %d: interior extent %d", d, dim, interior[d])
				return
			}
			extent[d] = 1
			continue
		}
		if interior[d] < 1 {
			err = fmt.Errorf("interior extent of axis %d must be positive, got %d", d, interior[d])
			return
		}
		extent[d] = interior[d] + 2*ghost
	}
	f = &FlagField[T]{
		Dim:    dim,
		Extent: extent,
		Ghost:  ghost,
		Data:   make([]T, extent[0]*extent[1]*extent[2]),
	}
	return
}

func (f *FlagField[T]) NumCells() int {
	return f.Extent[0] * f.Extent[1] * f.Extent[2]
}

func (f *FlagField[T]) InteriorExtent() (interior [3]int) {
	for d := 0; d < 3; d++ {
		if d >= f.Dim {
			interior[d] = 1
			continue
		}
		interior[d] = f.Extent[d] - 2*f.Ghost
	}
	return
}

func (f *FlagField[T]) LinearIndex(x, y, z int) int {
	return x + f.Extent[0]*(y+f.Extent[1]*z)
}

func (f *FlagField[T]) Coords(lin int) (x, y, z int) {
	x = lin % f.Extent[0]
	lin /= f.Extent[0]
	y = lin % f.Extent[1]
	z = lin / f.Extent[1]
	return
}

func (f *FlagField[T]) At(x, y, z int) T {
	return f.Data[f.LinearIndex(x, y, z)]
}

func (f *FlagField[T]) Set(x, y, z int, flags T) {
	f.Data[f.LinearIndex(x, y, z)] = flags
}

// Or merges mask into the flags of one cell, leaving the other role bits in place.
func (f *FlagField[T]) Or(x, y, z int, mask T) {
	f.Data[f.LinearIndex(x, y, z)] |= mask
}

// AndNot clears the mask bits of one cell.
func (f *FlagField[T]) AndNot(x, y, z int, mask T) {
	f.Data[f.LinearIndex(x, y, z)] &^= mask
}

// Fill overwrites every cell, ghosts included, with flags.
func (f *FlagField[T]) Fill(flags T) {
	for i := range f.Data {
		f.Data[i] = flags
	}
}

// Count reports how many cells have at least one bit of mask set.
func (f *FlagField[T]) Count(mask T) (n int) {
	for _, flags := range f.Data {
		if flags&mask != 0 {
			n++
		}
	}
	return
}

func (f *FlagField[T]) Validate() (err error) {
	if f.Dim != 2 && f.Dim != 3 {
		err = fmt.Errorf("flag field dimension must be 2 or 3, got %d", f.Dim)
		return
	}
	if f.Ghost < 0 {
		err = fmt.Errorf("ghost layer count must not be negative, got %d", f.Ghost)
		return
	}
	for d := 0; d < 3; d++ {
		if f.Extent[d] < 1 {
			err = fmt.Errorf("allocated extent of axis %d must be positive, got %d", d, f.Extent[d])
			return
		}
		if d >= f.Dim && f.Extent[d] != 1 {
			err = fmt.Errorf("axis %d exceeds field dimension %d: allocated extent %d", d, f.Dim, f.Extent[d])
			return
		}
	}
	if len(f.Data) != f.NumCells() {
		err = fmt.Errorf("flag storage has %d cells, extent %v needs %d", len(f.Data), f.Extent, f.NumCells())
		return
	}
	return
}
