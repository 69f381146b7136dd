package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrix(t *testing.T) {
	{ // Test DataP aliases the backing store
		M := NewMatrix(2, 3)
		M.Set(1, 2, 5)
		assert.Equal(t, 5., M.DataP[2+3*1])
		M.DataP[0] = 2
		assert.Equal(t, 2., M.At(0, 0))
	}
	{ // Test row and column extraction
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		assert.Equal(t, []float64{4, 5, 6}, M.Row(1).DataP)
		assert.Equal(t, []float64{2, 5}, M.Col(1).DataP)
		assert.Equal(t, 1., M.Min())
		assert.Equal(t, 6., M.Max())
	}
	{ // Test transpose and copy do not change the receiver
		M := NewMatrix(2, 2, []float64{1, 2, 3, 4})
		MT := M.Transpose()
		assert.Equal(t, []float64{1, 3, 2, 4}, MT.DataP)
		C := M.Copy()
		C.Set(0, 0, 99)
		assert.Equal(t, 1., M.At(0, 0))
	}
	{ // Test read only protection
		M := NewMatrix(1, 1)
		M = M.SetReadOnly("Protected")
		assert.Panics(t, func() { M.Set(0, 0, 1) })
		M = M.SetWritable()
		assert.NotPanics(t, func() { M.Set(0, 0, 1) })
	}
}

func TestVector(t *testing.T) {
	{ // Test construction and reductions
		V := NewVector(4, []float64{3, 1, 4, 1})
		assert.Equal(t, 4, V.Len())
		assert.Equal(t, 1., V.Min())
		assert.Equal(t, 4., V.Max())
		assert.Equal(t, 9., V.Sum())
		assert.Equal(t, Index{3, 1, 4, 1}, V.ToIndex())
	}
	{ // Test Apply mutates in place through DataP
		V := NewVector(3, []float64{1, 2, 3})
		V.Apply(func(x float64) float64 { return 2 * x })
		assert.Equal(t, []float64{2, 4, 6}, V.DataP)
	}
}

func TestIndex(t *testing.T) {
	{ // Test ranges are inclusive
		I := NewRange(2, 5)
		assert.Equal(t, Index{2, 3, 4, 5}, I)
		assert.Equal(t, Index{3, 4, 5, 6}, I.Add(1))
		assert.Equal(t, 5, I.Max())
		J := I.Apply(func(v int) int { return v * v })
		assert.Equal(t, Index{4, 9, 16, 25}, J)
	}
}

func TestSparse(t *testing.T) {
	{ // Test DOK accumulate and CSR conversion
		D := NewDOK(3, 4)
		D.Set(0, 1, 1)
		D.Accumulate(0, 1, 1)
		D.Set(2, 3, 5)
		assert.Equal(t, 2, D.NNZ())
		assert.Equal(t, 2., D.At(0, 1))
		C := D.ToCSR()
		assert.Equal(t, 2, C.NNZ())
		assert.Equal(t, 2., C.At(0, 1))
		assert.Equal(t, 5., C.At(2, 3))
		nr, nc := C.Dims()
		assert.Equal(t, 3, nr)
		assert.Equal(t, 4, nc)
	}
	{ // Test read only protection
		D := NewDOK(1, 1)
		D = D.SetReadOnly("Incidence")
		assert.Panics(t, func() { D.Set(0, 0, 1) })
	}
}
