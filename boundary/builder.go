package boundary

import (
	"fmt"

	"github.com/notargets/gridbc/lattice"
	"github.com/notargets/gridbc/stencil"
	"github.com/notargets/gridbc/utils"
)

/*
BuildIndexList scans the interior of the flag field and emits one Link for every fluid cell and stencil
direction whose neighbor carries a boundary flag. A cell is fluid when its flags intersect fluidMask and a
neighbor is a boundary when its flags intersect boundaryMask. With singleLink set, only the first qualifying
direction of each cell is emitted.

The scan covers allocated coordinates from Ghost to Extent-Ghost on each axis, so ghost cells are never
emitted as fluid cells but are probed as neighbors. An interior that is empty after ghost exclusion yields an
empty list, not an error.
*/
func BuildIndexList[T lattice.Flags](f *lattice.FlagField[T], st stencil.Stencil, boundaryMask, fluidMask T,
	singleLink bool) (il IndexList, err error) {
	if err = validateBuild(f, st, boundaryMask, fluidMask); err != nil {
		return
	}
	il = BuildIndexListUnchecked(f, st, boundaryMask, fluidMask, singleLink)
	return
}

/*
BuildIndexListUnchecked is the unvalidated fast path of BuildIndexList. The caller promises that the field
and stencil validate, that both masks are nonzero, that their dimensions agree, and that the ghost layer
count covers the stencil reach. Neighbor probes are unguarded, so a broken promise reads out of bounds.
*/
func BuildIndexListUnchecked[T lattice.Flags](f *lattice.FlagField[T], st stencil.Stencil, boundaryMask,
	fluidMask T, singleLink bool) (il IndexList) {
	var (
		bounds = interiorBounds(f)
		buf    = utils.NewDynBuffer[Link](crossSection(bounds, f.Dim) * (st.Q() - 1))
	)
	il = newIndexList(f, st)
	scanInner(f, st, boundaryMask, fluidMask, singleLink, bounds, buf)
	il.Links = buf.Cells()
	return
}

/*
BuildBoundaryCellList is the reverse scan: it emits one Link for every boundary cell and direction whose
neighbor is fluid, which identifies the boundary cells a solver must supply values for and the directions
they feed. All allocated cells are scanned, ghosts included, and neighbor probes are bounds checked, so any
ghost layer count is acceptable.
*/
func BuildBoundaryCellList[T lattice.Flags](f *lattice.FlagField[T], st stencil.Stencil, boundaryMask,
	fluidMask T, singleLink bool) (il IndexList, err error) {
	// The reverse scan probes with bounds checks, so the ghost layer requirement does not apply
	if err = validateMasks(f, st, boundaryMask, fluidMask); err != nil {
		return
	}
	var (
		ex, ey, ez = f.Extent[0], f.Extent[1], f.Extent[2]
		data       = f.Data
		ndir       = st.Q()
		buf        = utils.NewDynBuffer[Link](crossSection(interiorBounds(f), f.Dim) * (ndir - 1))
		lin        int
	)
	il = newIndexList(f, st)
	for z := 0; z < ez; z++ {
		for y := 0; y < ey; y++ {
			for x := 0; x < ex; x++ {
				if data[lin]&boundaryMask != 0 {
					for d := 1; d < ndir; d++ {
						var (
							o  = st.Offsets[d]
							nx = x + o[0]
							ny = y + o[1]
							nz = z + o[2]
						)
						if nx < 0 || nx >= ex || ny < 0 || ny >= ey || nz < 0 || nz >= ez {
							continue
						}
						if data[f.LinearIndex(nx, ny, nz)]&fluidMask != 0 {
							buf.Add(Link{X: x, Y: y, Z: z, Dir: d})
							if singleLink {
								break
							}
						}
					}
				}
				lin++
			}
		}
	}
	il.Links = buf.Cells()
	return
}

// scanInner is the shared hot loop. It walks the half open box given by bounds in z, y, x order with x
// fastest and probes neighbors through precomputed linear offsets, so it must only be called when every
// probe stays inside the allocation.
func scanInner[T lattice.Flags](f *lattice.FlagField[T], st stencil.Stencil, boundaryMask, fluidMask T,
	singleLink bool, bounds scanBounds, buf *utils.DynBuffer[Link]) {
	var (
		data = f.Data
		ndir = st.Q()
		doff = make([]int, ndir)
	)
	for d := 1; d < ndir; d++ {
		o := st.Offsets[d]
		doff[d] = o[0] + f.Extent[0]*(o[1]+f.Extent[1]*o[2])
	}
	for z := bounds.lo[2]; z < bounds.hi[2]; z++ {
		for y := bounds.lo[1]; y < bounds.hi[1]; y++ {
			lin := f.LinearIndex(bounds.lo[0], y, z)
			for x := bounds.lo[0]; x < bounds.hi[0]; x++ {
				if data[lin]&fluidMask != 0 {
					for d := 1; d < ndir; d++ {
						if data[lin+doff[d]]&boundaryMask != 0 {
							buf.Add(Link{X: x, Y: y, Z: z, Dir: d})
							if singleLink {
								break
							}
						}
					}
				}
				lin++
			}
		}
	}
}

type scanBounds struct {
	lo, hi [3]int // Half open per axis, in allocated coordinates
}

func interiorBounds[T lattice.Flags](f *lattice.FlagField[T]) (b scanBounds) {
	for d := 0; d < 3; d++ {
		if d >= f.Dim {
			b.lo[d], b.hi[d] = 0, 1
			continue
		}
		b.lo[d] = f.Ghost
		b.hi[d] = f.Extent[d] - f.Ghost
	}
	return
}

// crossSection sizes the link buffer from one outer axis layer of the scan box, a reasonable first guess
// for fields whose boundaries run along the outer axis.
func crossSection(b scanBounds, dim int) (n int) {
	n = 1
	for d := 0; d < dim-1; d++ {
		if span := b.hi[d] - b.lo[d]; span > 0 {
			n *= span
		}
	}
	return
}

func validateBuild[T lattice.Flags](f *lattice.FlagField[T], st stencil.Stencil, boundaryMask,
	fluidMask T) (err error) {
	if err = validateMasks(f, st, boundaryMask, fluidMask); err != nil {
		return
	}
	if reach := st.MaxOffset(); f.Ghost < reach {
		err = fmt.Errorf("stencil reaches %d cells but the field has only %d ghost layers", reach, f.Ghost)
		return
	}
	return
}

func validateMasks[T lattice.Flags](f *lattice.FlagField[T], st stencil.Stencil, boundaryMask,
	fluidMask T) (err error) {
	if err = f.Validate(); err != nil {
		return
	}
	if err = st.Validate(); err != nil {
		return
	}
	if st.Dim != f.Dim {
		err = fmt.Errorf("stencil dimension %d does not match field dimension %d", st.Dim, f.Dim)
		return
	}
	if fluidMask == 0 {
		err = fmt.Errorf("fluid mask must not be zero")
		return
	}
	if boundaryMask == 0 {
		err = fmt.Errorf("boundary mask must not be zero")
		return
	}
	return
}

func newIndexList[T lattice.Flags](f *lattice.FlagField[T], st stencil.Stencil) IndexList {
	return IndexList{
		Dim:    f.Dim,
		Extent: f.Extent,
		Q:      st.Q(),
	}
}
