package boundary

import (
	"github.com/notargets/gridbc/types"
	"github.com/notargets/gridbc/utils"
)

/*
A Link is one boundary crossing: the flag field cell at [X,Y,Z] has a neighbor in stencil direction Dir whose
flags match the boundary mask. Coordinates are in allocated space, ghost layers included, exactly as they
index the source field. Dir is never 0 since direction 0 is the rest direction.
*/
type Link struct {
	X, Y, Z int
	Dir     int
}

/*
An IndexList is the ordered result of one build. Links appear in scan order, z slowest and x fastest with
directions ascending within a cell, so two builds over the same inputs are comparable element by element.
The allocated extent and the stencil size are carried along for the exporters.
*/
type IndexList struct {
	Dim    int
	Extent [3]int
	Q      int
	Links  []Link
}

func (il IndexList) Len() int {
	return len(il.Links)
}

// CellIndex flattens each link's cell coordinates to its linear index in the source field.
func (il IndexList) CellIndex() (I utils.Index) {
	var (
		ex, ey = il.Extent[0], il.Extent[1]
	)
	I = utils.NewIndex(il.Len())
	for i, lk := range il.Links {
		I[i] = lk.X + ex*(lk.Y+ey*lk.Z)
	}
	return
}

// Keys packs every link into a sortable (cell, direction) key. In scan order the keys are strictly
// increasing, which is how tests check ordering and how merged lists are deduplicated.
func (il IndexList) Keys() (keys []types.LinkKey) {
	var (
		cells = il.CellIndex()
	)
	keys = make([]types.LinkKey, il.Len())
	for i, lk := range il.Links {
		keys[i] = types.NewLinkKey(cells[i], lk.Dir)
	}
	return
}

// Counts tallies links per stencil direction. Index 0 stays zero because the rest direction never links.
func (il IndexList) Counts() (counts []int) {
	counts = make([]int, il.Q)
	for _, lk := range il.Links {
		counts[lk.Dir]++
	}
	return
}

// NumCells reports how many distinct fluid cells appear in the list. Links of one cell are contiguous in
// scan order, so a single pass suffices.
func (il IndexList) NumCells() (n int) {
	var (
		prev Link
	)
	for i, lk := range il.Links {
		if i == 0 || lk.X != prev.X || lk.Y != prev.Y || lk.Z != prev.Z {
			n++
		}
		prev = lk
	}
	return
}
