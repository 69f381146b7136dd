package stencil

import (
	"fmt"
	"sort"
	"strings"
)

/*
Offset is one stencil direction as a coordinate displacement [dx, dy, dz]. Two dimensional stencils carry a
zero dz component so that scan loops can treat both dimensionalities uniformly.
*/
type Offset [3]int

func (o Offset) IsZero() bool {
	return o[0] == 0 && o[1] == 0 && o[2] == 0
}

func (o Offset) Negate() (r Offset) {
	r[0], r[1], r[2] = -o[0], -o[1], -o[2]
	return
}

/*
A Stencil is an ordered set of direction offsets. Index 0 is always the rest direction (zero offset) and the
remaining indices are the neighbor directions in the order boundary links will be emitted.
*/
type Stencil struct {
	Name    string
	Dim     int
	Offsets []Offset
}

var stencilTables = map[string]struct {
	dim     int
	offsets []Offset
}{
	"D2Q5": {2, []Offset{
		{0, 0, 0},
		{0, 1, 0}, {0, -1, 0}, {-1, 0, 0}, {1, 0, 0},
	}},
	"D2Q9": {2, []Offset{
		{0, 0, 0},
		{0, 1, 0}, {0, -1, 0}, {-1, 0, 0}, {1, 0, 0},
		{-1, 1, 0}, {1, 1, 0}, {-1, -1, 0}, {1, -1, 0},
	}},
	"D3Q7": {3, []Offset{
		{0, 0, 0},
		{0, 1, 0}, {0, -1, 0}, {-1, 0, 0}, {1, 0, 0}, {0, 0, 1}, {0, 0, -1},
	}},
	"D3Q15": {3, []Offset{
		{0, 0, 0},
		{0, 1, 0}, {0, -1, 0}, {-1, 0, 0}, {1, 0, 0}, {0, 0, 1}, {0, 0, -1},
		{1, 1, 1}, {-1, 1, 1}, {1, -1, 1}, {-1, -1, 1},
		{1, 1, -1}, {-1, 1, -1}, {1, -1, -1}, {-1, -1, -1},
	}},
	"D3Q19": {3, []Offset{
		{0, 0, 0},
		{0, 1, 0}, {0, -1, 0}, {-1, 0, 0}, {1, 0, 0}, {0, 0, 1}, {0, 0, -1},
		{-1, 1, 0}, {1, 1, 0}, {-1, -1, 0}, {1, -1, 0},
		{0, 1, 1}, {0, -1, 1}, {-1, 0, 1}, {1, 0, 1},
		{0, 1, -1}, {0, -1, -1}, {-1, 0, -1}, {1, 0, -1},
	}},
	"D3Q27": {3, []Offset{
		{0, 0, 0},
		{0, 1, 0}, {0, -1, 0}, {-1, 0, 0}, {1, 0, 0}, {0, 0, 1}, {0, 0, -1},
		{-1, 1, 0}, {1, 1, 0}, {-1, -1, 0}, {1, -1, 0},
		{0, 1, 1}, {0, -1, 1}, {-1, 0, 1}, {1, 0, 1},
		{0, 1, -1}, {0, -1, -1}, {-1, 0, -1}, {1, 0, -1},
		{1, 1, 1}, {-1, 1, 1}, {1, -1, 1}, {-1, -1, 1},
		{1, 1, -1}, {-1, 1, -1}, {1, -1, -1}, {-1, -1, -1},
	}},
}

func New(name string) (st Stencil, err error) {
	var (
		key = strings.ToUpper(strings.TrimSpace(name))
	)
	table, ok := stencilTables[key]
	if !ok {
		err = fmt.Errorf("unknown stencil %q, must be one of %v", name, Names())
		return
	}
	offsets := make([]Offset, len(table.offsets))
	copy(offsets, table.offsets)
	st = Stencil{
		Name:    key,
		Dim:     table.dim,
		Offsets: offsets,
	}
	return
}

func FromOffsets(name string, dim int, offsets []Offset) (st Stencil, err error) {
	st = Stencil{
		Name:    name,
		Dim:     dim,
		Offsets: offsets,
	}
	err = st.Validate()
	return
}

func Names() (names []string) {
	for name := range stencilTables {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

func (st Stencil) Q() int {
	return len(st.Offsets)
}

func (st Stencil) String() string {
	if len(st.Name) != 0 {
		return st.Name
	}
	return fmt.Sprintf("D%dQ%d", st.Dim, st.Q())
}

// MaxOffset is the largest coordinate displacement in any direction, which is the number of ghost layers the
// scan needs so that every neighbor probe stays inside the allocated field.
func (st Stencil) MaxOffset() (max int) {
	for _, o := range st.Offsets {
		for d := 0; d < 3; d++ {
			mag := o[d]
			if mag < 0 {
				mag = -mag
			}
			if mag > max {
				max = mag
			}
		}
	}
	return
}

// Inverse finds the direction index whose offset is the negation of direction i.
func (st Stencil) Inverse(i int) (j int, ok bool) {
	neg := st.Offsets[i].Negate()
	for j = range st.Offsets {
		if st.Offsets[j] == neg {
			ok = true
			return
		}
	}
	return -1, false
}

func (st Stencil) Validate() (err error) {
	if st.Dim != 2 && st.Dim != 3 {
		err = fmt.Errorf("stencil dimension must be 2 or 3, got %d", st.Dim)
		return
	}
	if len(st.Offsets) == 0 {
		err = fmt.Errorf("stencil has no directions")
		return
	}
	if !st.Offsets[0].IsZero() {
		err = fmt.Errorf("stencil direction 0 must be the rest direction, got %v", st.Offsets[0])
		return
	}
	if len(st.Offsets) > 256 {
		err = fmt.Errorf("stencil has %d directions, the limit is 256", len(st.Offsets))
		return
	}
	seen := make(map[Offset]int, len(st.Offsets))
	for i, o := range st.Offsets {
		if st.Dim == 2 && o[2] != 0 {
			err = fmt.Errorf("direction %d of a 2D stencil has a nonzero z offset: %v", i, o)
			return
		}
		if prev, dup := seen[o]; dup {
			err = fmt.Errorf("duplicate stencil direction %v at indices %d and %d", o, prev, i)
			return
		}
		seen[o] = i
	}
	return
}

// DirectionName labels direction i in compass notation, T/B for z, N/S for y, W/E for x, "C" for rest.
func (st Stencil) DirectionName(i int) string {
	var (
		o = st.Offsets[i]
		b strings.Builder
	)
	if o.IsZero() {
		return "C"
	}
	switch {
	case o[2] > 0:
		b.WriteByte('T')
	case o[2] < 0:
		b.WriteByte('B')
	}
	switch {
	case o[1] > 0:
		b.WriteByte('N')
	case o[1] < 0:
		b.WriteByte('S')
	}
	switch {
	case o[0] > 0:
		b.WriteByte('E')
	case o[0] < 0:
		b.WriteByte('W')
	}
	return b.String()
}
