package boundary

import (
	"runtime"
	"sync"

	"github.com/notargets/gridbc/lattice"
	"github.com/notargets/gridbc/stencil"
	"github.com/notargets/gridbc/utils"
)

/*
BuildIndexListParallel produces the same list as BuildIndexList using procLimit goroutines. The outermost
scan axis, y in 2D and z in 3D, is split into contiguous slabs with a PartitionMap and each worker scans one
slab into its own buffer. Concatenating the buffers in partition order restores the serial scan order, so
the output is deterministic and equal to the serial build.

A procLimit of 0 uses all CPUs. The degree is capped at the outer axis span so no worker is left with an
empty slab.
*/
func BuildIndexListParallel[T lattice.Flags](f *lattice.FlagField[T], st stencil.Stencil, boundaryMask,
	fluidMask T, singleLink bool, procLimit int) (il IndexList, err error) {
	if err = validateBuild(f, st, boundaryMask, fluidMask); err != nil {
		return
	}
	var (
		bounds = interiorBounds(f)
		outer  = f.Dim - 1
		span   = bounds.hi[outer] - bounds.lo[outer]
		wg     = sync.WaitGroup{}
	)
	il = newIndexList(f, st)
	if span <= 0 {
		il.Links = []Link{}
		return
	}
	NP := resolveParallelDegree(procLimit, span)
	pm := utils.NewPartitionMap(NP, span)
	bufs := make([]*utils.DynBuffer[Link], NP)
	for np := 0; np < NP; np++ {
		wg.Add(1)
		go func(np int) {
			kMin, kMax := pm.GetBucketRange(np)
			slab := bounds
			slab.lo[outer] = bounds.lo[outer] + kMin
			slab.hi[outer] = bounds.lo[outer] + kMax
			bufs[np] = utils.NewDynBuffer[Link](crossSection(slab, f.Dim) * (st.Q() - 1))
			scanInner(f, st, boundaryMask, fluidMask, singleLink, slab, bufs[np])
			wg.Done()
		}(np)
	}
	wg.Wait()
	var total int
	for np := 0; np < NP; np++ {
		total += bufs[np].Len()
	}
	il.Links = make([]Link, 0, total)
	for np := 0; np < NP; np++ {
		il.Links = append(il.Links, bufs[np].Cells()...)
	}
	return
}

func resolveParallelDegree(procLimit, span int) (NP int) {
	if procLimit != 0 {
		NP = procLimit
	} else {
		NP = runtime.NumCPU()
	}
	if NP < 1 {
		NP = 1
	}
	if NP > span {
		NP = span
	}
	return
}
