package boundary

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/notargets/gridbc/lattice"
	"github.com/notargets/gridbc/stencil"
)

/*
A Set holds one index list per boundary role, keyed by role name. Names preserves the registry bit order so
iteration over the set is deterministic.
*/
type Set struct {
	Names []string
	Lists map[string]IndexList
}

// TotalLinks sums the links over all role lists.
func (s Set) TotalLinks() (n int) {
	for _, name := range s.Names {
		n += s.Lists[name].Len()
	}
	return
}

/*
BuildSet builds one index list per registered boundary role, each against the fluid mask of the registry,
one goroutine per role. A cell bordering two roles shows up in both lists, which is exactly what a solver
dispatching one handler per role needs.
*/
func BuildSet[T lattice.Flags](f *lattice.FlagField[T], st stencil.Stencil, reg *lattice.RoleRegistry,
	singleLink bool) (s Set, err error) {
	var (
		names = reg.BoundaryNames()
		g     errgroup.Group
	)
	if len(names) == 0 {
		err = fmt.Errorf("no boundary roles are registered")
		return
	}
	fluidMask, err := lattice.FluidMask[T](reg)
	if err != nil {
		return
	}
	masks := make([]T, len(names))
	for i, name := range names {
		if masks[i], err = lattice.MaskOf[T](reg, name); err != nil {
			return
		}
	}
	results := make([]IndexList, len(names))
	for i := range names {
		i := i
		g.Go(func() error {
			il, berr := BuildIndexList(f, st, masks[i], fluidMask, singleLink)
			if berr != nil {
				return fmt.Errorf("building index list for role %q: %w", names[i], berr)
			}
			results[i] = il
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return
	}
	s = Set{
		Names: names,
		Lists: make(map[string]IndexList, len(names)),
	}
	for i, name := range names {
		s.Lists[name] = results[i]
	}
	return
}
