package boundary

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/notargets/gridbc/stencil"
	"github.com/notargets/gridbc/utils"
)

/*
Report summarizes an index list for logging: the link and cell totals, the per direction histogram in
compass notation, and the links per cell statistics. The stencil must be the one the list was built with.
*/
func (il IndexList) Report(st stencil.Stencil) (txt string) {
	var (
		b      strings.Builder
		counts = il.Counts()
	)
	if il.Len() == 0 {
		return "empty index list: no boundary links\n"
	}
	fmt.Fprintf(&b, "%d boundary links over %d fluid cells, stencil %s\n", il.Len(), il.NumCells(), st)
	for d := 1; d < il.Q; d++ {
		if counts[d] == 0 {
			continue
		}
		fmt.Fprintf(&b, "  dir %3d %-3s %v: %d links\n", d, st.DirectionName(d), st.Offsets[d], counts[d])
	}
	perCell := il.linksPerCell()
	var sigma float64
	if perCell.Len() > 1 {
		sigma = stat.StdDev(perCell.DataP, nil)
	}
	fmt.Fprintf(&b, "  links per cell: mean %.3f sigma %.3f min %g max %g\n",
		stat.Mean(perCell.DataP, nil), sigma, perCell.Min(), perCell.Max())
	txt = b.String()
	return
}

// linksPerCell tallies how many links each distinct cell contributes, relying on links of one cell being
// contiguous in scan order.
func (il IndexList) linksPerCell() (V utils.Vector) {
	var (
		counts []float64
		prev   Link
	)
	for i, lk := range il.Links {
		if i == 0 || lk.X != prev.X || lk.Y != prev.Y || lk.Z != prev.Z {
			counts = append(counts, 0)
		}
		counts[len(counts)-1]++
		prev = lk
	}
	V = utils.NewVector(len(counts), counts)
	return
}
