package lattice

import (
	"testing"

	"github.com/notargets/gridbc/types"
	"github.com/stretchr/testify/assert"
)

func TestFlagField(t *testing.T) {
	{ // Test allocation adds ghost layers on both sides of each axis
		f, err := NewFlagField[uint32](2, [3]int{3, 3, 1}, 1)
		assert.NoError(t, err)
		assert.Equal(t, [3]int{5, 5, 1}, f.Extent)
		assert.Equal(t, [3]int{3, 3, 1}, f.InteriorExtent())
		assert.Equal(t, 25, f.NumCells())
		assert.Equal(t, 25, len(f.Data))
		assert.NoError(t, f.Validate())

		f3, err := NewFlagField[uint32](3, [3]int{4, 5, 6}, 2)
		assert.NoError(t, err)
		assert.Equal(t, [3]int{8, 9, 10}, f3.Extent)
		assert.Equal(t, 8*9*10, f3.NumCells())
	}
	{ // Test linear storage is x fastest, then y, then z
		f, _ := NewFlagField[uint32](3, [3]int{2, 2, 2}, 0)
		assert.Equal(t, 1, f.LinearIndex(1, 0, 0))
		assert.Equal(t, 2, f.LinearIndex(0, 1, 0))
		assert.Equal(t, 4, f.LinearIndex(0, 0, 1))
		assert.Equal(t, 7, f.LinearIndex(1, 1, 1))
		for lin := 0; lin < f.NumCells(); lin++ {
			x, y, z := f.Coords(lin)
			assert.Equal(t, lin, f.LinearIndex(x, y, z))
		}
	}
	{ // Test cell updates
		f, _ := NewFlagField[uint16](2, [3]int{2, 2, 1}, 0)
		f.Fill(0b01)
		assert.Equal(t, 4, f.Count(0b01))
		f.Or(1, 1, 0, 0b10)
		assert.Equal(t, uint16(0b11), f.At(1, 1, 0))
		f.AndNot(1, 1, 0, 0b01)
		assert.Equal(t, uint16(0b10), f.At(1, 1, 0))
		assert.Equal(t, 3, f.Count(0b01))
		assert.Equal(t, 1, f.Count(0b10))
		f.Set(0, 0, 0, 0)
		assert.Equal(t, 2, f.Count(0b01))
	}
	{ // Test constructor rejects bad geometry
		_, err := NewFlagField[uint32](4, [3]int{2, 2, 2}, 1)
		assert.Error(t, err)
		_, err = NewFlagField[uint32](2, [3]int{0, 3, 1}, 1)
		assert.Error(t, err)
		_, err = NewFlagField[uint32](2, [3]int{3, 3, 2}, 1)
		assert.Error(t, err)
		_, err = NewFlagField[uint32](3, [3]int{3, 3, 3}, -1)
		assert.Error(t, err)
	}
	{ // Test Validate catches inconsistent state
		f, _ := NewFlagField[uint32](2, [3]int{3, 3, 1}, 1)
		f.Data = f.Data[:10]
		assert.Error(t, f.Validate())
		f, _ = NewFlagField[uint32](2, [3]int{3, 3, 1}, 1)
		f.Extent[2] = 2
		assert.Error(t, f.Validate())
	}
}

func TestRoles(t *testing.T) {
	{ // Test fluid occupies bit 0 and registration is ordered
		reg := NewRoleRegistry()
		bit, ok := reg.Bit(FluidTag)
		assert.True(t, ok)
		assert.Equal(t, uint(0), bit)

		wall, err := reg.Register("Wall-top")
		assert.NoError(t, err)
		assert.Equal(t, uint(1), wall)
		inflow, err := reg.Register("inlet")
		assert.NoError(t, err)
		assert.Equal(t, uint(2), inflow)

		// Re-registration returns the existing bit
		again, err := reg.Register("wall-top")
		assert.NoError(t, err)
		assert.Equal(t, wall, again)

		assert.Equal(t, []string{"fluid", "wall-top", "inlet"}, reg.Names())
		assert.Equal(t, []string{"wall-top", "inlet"}, reg.BoundaryNames())
		assert.Equal(t, 3, reg.NumRoles())
		assert.Equal(t, types.Role_Wall, reg.Kind("wall-top"))
		assert.Equal(t, types.Role_Inflow, reg.Kind("inlet"))
	}
	{ // Test typed masks
		reg := NewRoleRegistry()
		_, _ = reg.Register("wall")
		_, _ = reg.Register("outflow")

		fluid, err := FluidMask[uint32](reg)
		assert.NoError(t, err)
		assert.Equal(t, uint32(0b001), fluid)

		bcs, err := BoundaryMask[uint32](reg)
		assert.NoError(t, err)
		assert.Equal(t, uint32(0b110), bcs)

		walls, err := MaskOf[uint32](reg, "wall")
		assert.NoError(t, err)
		assert.Equal(t, uint32(0b010), walls)

		_, err = MaskOf[uint32](reg, "slip")
		assert.Error(t, err)
	}
	{ // Test a too narrow storage type is caught at mask build time
		m, err := Mask[uint16](15)
		assert.NoError(t, err)
		assert.Equal(t, uint16(1<<15), m)
		_, err = Mask[uint16](16)
		assert.Error(t, err)

		// The sign bit of a signed type is still a usable mask
		mi, err := Mask[int16](15)
		assert.NoError(t, err)
		assert.NotZero(t, mi)
	}
	{ // Test masks without any boundary role are rejected
		reg := NewRoleRegistry()
		_, err := BoundaryMask[uint64](reg)
		assert.Error(t, err)
	}
}

func TestFills(t *testing.T) {
	const (
		fluid = uint32(0b01)
		wall  = uint32(0b10)
	)
	{ // Test box painting replaces cell flags and clips to the extent
		f, _ := NewFlagField[uint32](2, [3]int{3, 3, 1}, 1)
		f.Fill(fluid)
		n := f.FillBox([3]int{0, 0, 0}, [3]int{1, 5, 1}, wall)
		assert.Equal(t, 5, n)
		assert.Equal(t, wall, f.At(0, 2, 0))
		assert.Equal(t, fluid, f.At(1, 2, 0))
		assert.Equal(t, 5, f.Count(wall))
		assert.Equal(t, 20, f.Count(fluid))

		n = f.FillBox([3]int{-10, 4, 0}, [3]int{10, 99, 9}, wall)
		assert.Equal(t, 5, n) // Clipped to the top row
	}
	{ // Test side painting covers the ghost slab
		f, _ := NewFlagField[uint32](2, [3]int{3, 3, 1}, 1)
		f.Fill(fluid)
		assert.Equal(t, 5, f.FillSides(0, -1, f.Ghost, wall))
		assert.Equal(t, wall, f.At(0, 0, 0))
		assert.Equal(t, wall, f.At(0, 4, 0))
		assert.Equal(t, 5, f.FillSides(1, 1, f.Ghost, wall))
		assert.Equal(t, wall, f.At(2, 4, 0))
		assert.Equal(t, fluid, f.At(2, 3, 0))
	}
	{ // Test disk painting uses cell midpoints
		f, _ := NewFlagField[uint32](2, [3]int{5, 5, 1}, 0)
		f.Fill(fluid)
		n := f.FillSphere([3]float64{2.5, 2.5, 0}, 1.0, wall)
		assert.Equal(t, 5, n)
		assert.Equal(t, wall, f.At(2, 2, 0))
		assert.Equal(t, wall, f.At(1, 2, 0))
		assert.Equal(t, wall, f.At(3, 2, 0))
		assert.Equal(t, wall, f.At(2, 1, 0))
		assert.Equal(t, wall, f.At(2, 3, 0))
		assert.Equal(t, fluid, f.At(1, 1, 0))
	}
	{ // Test sphere painting in 3D
		f, _ := NewFlagField[uint32](3, [3]int{5, 5, 5}, 0)
		f.Fill(fluid)
		n := f.FillSphere([3]float64{2.5, 2.5, 2.5}, 1.0, wall)
		assert.Equal(t, 7, n)
		assert.Equal(t, wall, f.At(2, 2, 2))
		assert.Equal(t, wall, f.At(2, 2, 1))
		assert.Equal(t, wall, f.At(2, 2, 3))
	}
	{ // Test cylinder painting spans the full axis extent
		f, _ := NewFlagField[uint32](3, [3]int{5, 5, 4}, 0)
		f.Fill(fluid)
		n := f.FillCylinder(2, [2]float64{2.5, 2.5}, 1.0, wall)
		// The disk cross section has 5 cells and repeats on each of the 4 z layers
		assert.Equal(t, 20, n)
		for z := 0; z < 4; z++ {
			assert.Equal(t, wall, f.At(2, 2, z))
			assert.Equal(t, wall, f.At(1, 2, z))
			assert.Equal(t, fluid, f.At(1, 1, z))
		}
	}
	{ // Test a z axis cylinder on a 2D field matches the disk
		f, _ := NewFlagField[uint32](2, [3]int{5, 5, 1}, 0)
		f.Fill(fluid)
		n := f.FillCylinder(2, [2]float64{2.5, 2.5}, 1.0, wall)
		assert.Equal(t, 5, n)
		assert.Equal(t, wall, f.At(2, 2, 0))
		assert.Equal(t, fluid, f.At(1, 1, 0))
	}
}
