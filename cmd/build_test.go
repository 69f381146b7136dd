package cmd

import (
	"testing"

	"github.com/magiconair/properties/assert"
	"go.uber.org/zap"

	"github.com/notargets/gridbc/InputParameters"
	"github.com/notargets/gridbc/readfiles"
)

func TestRunBuild(t *testing.T) {
	var (
		err error
	)
	fileInput := []byte(`
Title: West wall channel
DomainSize: [3, 3]
Stencil: D2Q5
Sides:
  West: wall
`)
	var input InputParameters.CaseParameters
	if err = input.Parse(fileInput); err != nil {
		panic(err)
	}
	assert.Equal(t, input.Dim, 2)
	assert.Equal(t, input.GhostLayers, 1)
	assert.Equal(t, input.FlagType, "uint32")
	input.Print()
	lists, st, err := BuildCase(&input, nil, zap.NewNop())
	if err != nil {
		panic(err)
	}
	assert.Equal(t, st.Q(), 5)
	assert.Equal(t, len(lists), 1)
	assert.Equal(t, lists[0].Name, "boundary")
	assert.Equal(t, lists[0].List.Len(), 3)
	assert.Equal(t, lists[0].List.NumCells(), 3)
	// Each link points west into the wall slab
	for _, link := range lists[0].List.Links {
		assert.Equal(t, link.X, 1)
		assert.Equal(t, link.Dir, 3)
	}
}

func TestBuildBoundaries(t *testing.T) {
	var (
		err error
	)
	fileInput := []byte(`
Title: Grouped boundaries
DomainSize: [4, 4]
FlagType: int16
Stencil: D2Q9
Sides:
  West: inflow
  East: outflow
  South: wall
  North: wall
Boundaries:
  - Name: noslip
    Roles: [wall]
  - Name: openings
    Roles: [inflow, outflow]
`)
	var input InputParameters.CaseParameters
	if err = input.Parse(fileInput); err != nil {
		panic(err)
	}
	lists, _, err := BuildCase(&input, nil, zap.NewNop())
	if err != nil {
		panic(err)
	}
	assert.Equal(t, len(lists), 2)
	assert.Equal(t, lists[0].Name, "noslip")
	assert.Equal(t, lists[1].Name, "openings")
	// The wall rows also own the four corners, painted last in face order
	assert.Equal(t, lists[0].List.Len(), 24)
	assert.Equal(t, lists[0].List.NumCells(), 8)
	assert.Equal(t, lists[1].List.Len(), 20)
	assert.Equal(t, lists[1].List.NumCells(), 8)
}

func TestBuildSketch(t *testing.T) {
	sk, err := readfiles.ParseSketch([]byte("######\n>....<\n>....<\n######\n"))
	if err != nil {
		panic(err)
	}
	cp := &InputParameters.CaseParameters{DomainSize: []int{sk.Nx, sk.Ny}}
	if err = cp.Validate(); err != nil {
		panic(err)
	}
	lists, st, err := BuildCase(cp, sk, zap.NewNop())
	if err != nil {
		panic(err)
	}
	assert.Equal(t, st.Name, "D2Q9")
	assert.Equal(t, len(lists), 1)
	assert.Equal(t, lists[0].List.Len(), 32)
	assert.Equal(t, lists[0].List.NumCells(), 8)
}
