package lattice

// Geometry painters for boundary setup. Painting assigns the cell flags outright, so a cell painted as a
// boundary role stops being fluid, which matches how flag fields are prepared for index list construction.

func clip(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// FillBox paints every cell with lo <= [x,y,z] < hi, clipped to the allocated extent. It reports the number
// of painted cells.
func (f *FlagField[T]) FillBox(lo, hi [3]int, flags T) (n int) {
	var c [3]int
	for d := 0; d < 3; d++ {
		lo[d] = clip(lo[d], 0, f.Extent[d])
		hi[d] = clip(hi[d], 0, f.Extent[d])
	}
	for c[2] = lo[2]; c[2] < hi[2]; c[2]++ {
		for c[1] = lo[1]; c[1] < hi[1]; c[1]++ {
			for c[0] = lo[0]; c[0] < hi[0]; c[0]++ {
				f.Set(c[0], c[1], c[2], flags)
				n++
			}
		}
	}
	return
}

// FillSides paints depth layers on one side of an axis, the low side for side < 0 and the high side
// otherwise. Painting starts at the edge of the allocated extent, so with depth equal to the ghost layer
// count it covers exactly the ghost slab of that side.
func (f *FlagField[T]) FillSides(axis, side, depth int, flags T) (n int) {
	var (
		lo = [3]int{0, 0, 0}
		hi = f.Extent
	)
	if side < 0 {
		hi[axis] = depth
	} else {
		lo[axis] = f.Extent[axis] - depth
	}
	return f.FillBox(lo, hi, flags)
}

// FillCylinder paints every cell whose midpoint lies within radius of an axis aligned line. center holds the
// midpoint coordinates of the two remaining axes in ascending axis order, and the painted shape spans the
// full allocated extent along axis.
func (f *FlagField[T]) FillCylinder(axis int, center [2]float64, radius float64, flags T) (n int) {
	var (
		c     [3]int
		r2    = radius * radius
		plane [2]int
	)
	for d, i := 0, 0; d < 3; d++ {
		if d != axis {
			plane[i] = d
			i++
		}
	}
	for c[2] = 0; c[2] < f.Extent[2]; c[2]++ {
		for c[1] = 0; c[1] < f.Extent[1]; c[1]++ {
			for c[0] = 0; c[0] < f.Extent[0]; c[0]++ {
				var dist2 float64
				for i, d := range plane {
					if d >= f.Dim {
						continue
					}
					delta := float64(c[d]) + 0.5 - center[i]
					dist2 += delta * delta
				}
				if dist2 <= r2 {
					f.Set(c[0], c[1], c[2], flags)
					n++
				}
			}
		}
	}
	return
}

// FillSphere paints every cell whose midpoint lies within radius of center. For 2D fields the z component is
// ignored, so the shape is a disk spanning the single z layer.
func (f *FlagField[T]) FillSphere(center [3]float64, radius float64, flags T) (n int) {
	var (
		c  [3]int
		r2 = radius * radius
	)
	for c[2] = 0; c[2] < f.Extent[2]; c[2]++ {
		for c[1] = 0; c[1] < f.Extent[1]; c[1]++ {
			for c[0] = 0; c[0] < f.Extent[0]; c[0]++ {
				var dist2 float64
				for d := 0; d < f.Dim; d++ {
					delta := float64(c[d]) + 0.5 - center[d]
					dist2 += delta * delta
				}
				if dist2 <= r2 {
					f.Set(c[0], c[1], c[2], flags)
					n++
				}
			}
		}
	}
	return
}
