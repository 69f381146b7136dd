package boundary

import (
	"github.com/notargets/gridbc/utils"
)

/*
ToMatrix lays the list out as a dense matrix with one row per link and integer values stored as float64.
Columns are [x y dir] for 2D lists and [x y z dir] for 3D ones, matching the named members of the structured
index arrays this format descends from. An empty list yields the zero Matrix since a dense matrix cannot
have zero rows.
*/
func (il IndexList) ToMatrix() (R utils.Matrix) {
	var (
		n    = il.Len()
		cols = il.Dim + 1
	)
	if n == 0 {
		return
	}
	data := make([]float64, n*cols)
	for i, lk := range il.Links {
		row := data[cols*i : cols*(i+1)]
		row[0] = float64(lk.X)
		row[1] = float64(lk.Y)
		if il.Dim == 3 {
			row[2] = float64(lk.Z)
		}
		row[cols-1] = float64(lk.Dir)
	}
	R = utils.NewMatrix(n, cols, data)
	return
}

/*
ToCSR builds the sparse cell by direction incidence matrix of the list: entry [cell, dir] counts the links
of that cell in that direction, 1 everywhere for lists from a single build. Rows are linear cell indices
over the allocated extent and columns are stencil direction indices.
*/
func (il IndexList) ToCSR() (R utils.CSR) {
	var (
		nr    = il.Extent[0] * il.Extent[1] * il.Extent[2]
		cells = il.CellIndex()
		D     = utils.NewDOK(nr, il.Q)
	)
	for i, lk := range il.Links {
		D.Accumulate(cells[i], lk.Dir, 1)
	}
	R = D.ToCSR()
	return
}
