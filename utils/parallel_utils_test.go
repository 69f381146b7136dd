package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionMap(t *testing.T) {
	{ // Test partition sizing - maximum imbalance of one item
		getHisto := func(K, Np int) (histo map[int]int) {
			pm := NewPartitionMap(Np, K)
			histo = make(map[int]int)
			for np := 0; np < pm.ParallelDegree; np++ {
				maxK := pm.GetBucketDimension(np)
				histo[maxK]++
			}
			return
		}
		getTotal := func(histo map[int]int) (total int) {
			for key, count := range histo {
				total += key * count
			}
			return
		}
		assert.Equal(t, map[int]int{0: 30, 1: 2}, getHisto(2, 32))
		assert.Equal(t, map[int]int{1: 32}, getHisto(32, 32))
		assert.Equal(t, map[int]int{8: 32}, getHisto(256, 32))
		assert.Equal(t, map[int]int{8: 1, 9: 31}, getHisto(287, 32))
		assert.Equal(t, 287, getTotal(getHisto(287, 32)))
		for n := 64; n < 10000; n++ {
			var (
				keys   [2]float64
				keyNum int
			)
			histo := getHisto(n, 32)
			for key := range histo {
				keys[keyNum] = float64(key)
				keyNum++
			}
			if keyNum == 2 {
				assert.Equal(t, 1., math.Abs(keys[0]-keys[1])) // Maximum imbalance of 1
			}
			assert.Equal(t, n, getTotal(histo))
		}
	}
	{ // Test inverted bucket probe - find bucket that contains index
		for maxIndex := 10; maxIndex < 1000; maxIndex++ {
			pm := NewPartitionMap(5, maxIndex)
			for k := 0; k < maxIndex; k++ {
				bn, min, max := pm.GetBucket(k)
				mmin, mmax := pm.GetBucketRange(bn)
				assert.True(t, k >= min && k < max && min == mmin && max == mmax)
			}
		}
	}
	{ // Test partitions tile [0,MaxIndex) contiguously
		pm := NewPartitionMap(7, 23)
		next := 0
		for n := 0; n < pm.ParallelDegree; n++ {
			kMin, kMax := pm.GetBucketRange(n)
			assert.Equal(t, next, kMin)
			next = kMax
		}
		assert.Equal(t, 23, next)
	}
}

func TestDynBuffer(t *testing.T) {
	{ // Test Add / Cells / Reset cycle
		db := NewDynBuffer[int](4)
		assert.Equal(t, 0, db.Len())
		for i := 0; i < 10; i++ {
			db.Add(i * i)
		}
		assert.Equal(t, 10, db.Len())
		cells := db.Cells()
		assert.Equal(t, 10, len(cells))
		assert.Equal(t, 81, cells[9])
		db.Reset()
		assert.Equal(t, 0, db.Len())
		db.Add(42)
		assert.Equal(t, []int{42}, db.Cells())
	}
	{ // Test bulk append
		db := NewDynBuffer[string](0)
		db.AddCells([]string{"a", "b"})
		db.Add("c")
		assert.Equal(t, []string{"a", "b", "c"}, db.Cells())
	}
}
