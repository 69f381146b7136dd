package types

import (
	"fmt"
)

/*
LinkKey is an always positive number that stores a (cell, direction) boundary link in a way that can be compared
and sorted. Keys sort by cell index first, then by direction index, which matches the emission order of a
cell-major scan of the flag field.
*/
type LinkKey uint64

const (
	linkKeyDirBits  = 8
	linkKeyDirLimit = 1<<linkKeyDirBits - 1
	linkKeyCellMax  = 1<<(64-linkKeyDirBits) - 1
)

func NewLinkKey(cell, dir int) (packed LinkKey) {
	// This packs the linear cell index and the stencil direction index into a uint64 to act as a hash and a sort key
	if cell < 0 || cell > linkKeyCellMax {
		panic(fmt.Errorf("unable to pack cell index into a LinkKey, have %d as input", cell))
	}
	if dir < 0 || dir > linkKeyDirLimit {
		panic(fmt.Errorf("unable to pack direction index into a LinkKey, have %d as input", dir))
	}
	packed = LinkKey(dir + cell<<linkKeyDirBits)
	return
}

func (lk LinkKey) GetLink() (cell, dir int) {
	cell = int(lk >> linkKeyDirBits)
	dir = int(lk & linkKeyDirLimit)
	return
}

func (lk LinkKey) GetCell() (cell int) {
	cell, _ = lk.GetLink()
	return
}

func (lk LinkKey) GetDir() (dir int) {
	_, dir = lk.GetLink()
	return
}
