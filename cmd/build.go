/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/notargets/gridbc/InputParameters"
	"github.com/notargets/gridbc/boundary"
	"github.com/notargets/gridbc/lattice"
	"github.com/notargets/gridbc/readfiles"
	"github.com/notargets/gridbc/stencil"
	"github.com/notargets/gridbc/utils"
)

type ModelBuild struct {
	CaseFile    string
	HCLCaseFile string
	SketchFile  string
	OutputFile  string
	NProc       int
	SingleLink  bool
	Sparse      bool
	Profile     string
	Perf        bool
	Verbose     bool
}

// BuildCmd represents the build command
var BuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Construct boundary index lists from a case or sketch file",
	Long: `
Loads a domain description, paints its cell roles onto a flag field and scans
the field with the case's stencil, emitting one (cell, direction) index list
per configured boundary,

gridbc build -I case.yaml
gridbc build -S channel.sketch -o links.txt`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		mb := &ModelBuild{}
		if mb.CaseFile, err = cmd.Flags().GetString("caseFile"); err != nil {
			panic(err)
		}
		if mb.HCLCaseFile, err = cmd.Flags().GetString("hclCaseFile"); err != nil {
			panic(err)
		}
		if mb.SketchFile, err = cmd.Flags().GetString("sketchFile"); err != nil {
			panic(err)
		}
		mb.OutputFile, _ = cmd.Flags().GetString("output")
		mb.NProc, _ = cmd.Flags().GetInt("nproc")
		mb.SingleLink, _ = cmd.Flags().GetBool("singleLink")
		mb.Sparse, _ = cmd.Flags().GetBool("sparse")
		mb.Profile, _ = cmd.Flags().GetString("profile")
		mb.Perf, _ = cmd.Flags().GetBool("perf")
		mb.Verbose, _ = cmd.Flags().GetBool("verbose")
		cp, sk := processBuildInput(mb)
		RunBuild(mb, cp, sk)
	},
}

func init() {
	rootCmd.AddCommand(BuildCmd)
	BuildCmd.Flags().StringP("caseFile", "I", "", "YAML case file with the domain, roles and geometry")
	BuildCmd.Flags().StringP("hclCaseFile", "H", "", "HCL case file, geometry may use nx/ny/nz expressions")
	BuildCmd.Flags().StringP("sketchFile", "S", "", "ASCII sketch of a 2D domain, one glyph per cell")
	BuildCmd.Flags().StringP("output", "o", "", "write the boundary links as a whitespace table to this file")
	BuildCmd.Flags().IntP("nproc", "p", 0, "parallel workers for the scan, 0 uses all CPUs")
	BuildCmd.Flags().Bool("singleLink", false, "record only the first boundary link of each fluid cell")
	BuildCmd.Flags().Bool("sparse", false, "assemble the cell by direction CSR matrix and report its fill")
	BuildCmd.Flags().String("profile", "", "write a profile of the build: cpu, mem or block")
	BuildCmd.Flags().Bool("perf", false, "count CPU instructions and cycles of the build (Linux only)")
	BuildCmd.Flags().BoolP("verbose", "v", false, "debug logging and memory usage output")
}

func processBuildInput(mb *ModelBuild) (cp *InputParameters.CaseParameters, sk *readfiles.Sketch) {
	var (
		err      error
		willExit bool
	)
	if len(mb.CaseFile) == 0 && len(mb.HCLCaseFile) == 0 && len(mb.SketchFile) == 0 {
		err := fmt.Errorf("must supply a case file (-I, --caseFile in YAML or -H, --hclCaseFile in HCL) or a sketch (-S, --sketchFile)")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Lid driven cavity"
DomainSize: [64, 64]
Stencil: D2Q9
Sides:
  West: wall
  East: wall
  South: wall
  North: velocity
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		willExit = true
	}
	if willExit {
		os.Exit(1)
	}
	switch {
	case len(mb.CaseFile) != 0:
		var data []byte
		if data, err = os.ReadFile(mb.CaseFile); err != nil {
			panic(err)
		}
		cp = &InputParameters.CaseParameters{}
		if err = cp.Parse(data); err != nil {
			panic(err)
		}
	case len(mb.HCLCaseFile) != 0:
		if cp, err = readfiles.ReadHCLCase(mb.HCLCaseFile, mb.Verbose); err != nil {
			panic(err)
		}
	default:
		if sk, err = readfiles.ReadSketch(mb.SketchFile, mb.Verbose); err != nil {
			panic(err)
		}
		cp = &InputParameters.CaseParameters{
			Title:      mb.SketchFile,
			DomainSize: []int{sk.Nx, sk.Ny},
		}
		if err = cp.Validate(); err != nil {
			panic(err)
		}
	}
	// Command line overrides
	if mb.NProc != 0 {
		cp.Parallel = mb.NProc
	}
	if mb.SingleLink {
		cp.SingleLink = true
	}
	return
}

// BuiltList pairs a boundary name from the case with its index list
type BuiltList struct {
	Name string
	List boundary.IndexList
}

func RunBuild(mb *ModelBuild, cp *InputParameters.CaseParameters, sk *readfiles.Sketch) {
	var (
		err   error
		lists []BuiltList
		st    stencil.Stencil
	)
	config := zap.NewProductionConfig()
	if mb.Verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	switch mb.Profile {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	case "block":
		defer profile.Start(profile.BlockProfile, profile.ProfilePath(".")).Stop()
	case "":
	default:
		logger.Fatal("unknown profile mode, must be cpu, mem or block", zap.String("profile", mb.Profile))
	}

	cp.Print()
	build := func() error {
		var berr error
		lists, st, berr = BuildCase(cp, sk, logger)
		return berr
	}
	if mb.Perf {
		err = measureBuild(build)
	} else {
		err = build()
	}
	if err != nil {
		logger.Fatal("building index lists", zap.Error(err))
	}

	for _, bl := range lists {
		fmt.Printf("boundary %q: %s", bl.Name, bl.List.Report(st))
	}
	if mb.Sparse {
		for _, bl := range lists {
			m := bl.List.ToCSR()
			nr, nc := m.Dims()
			fmt.Printf("boundary %q: %d x %d CSR with %d stored links\n", bl.Name, nr, nc, m.NNZ())
		}
	}
	if len(mb.OutputFile) != 0 {
		if err = writeLinkTable(mb.OutputFile, lists); err != nil {
			logger.Fatal("writing link table", zap.Error(err))
		}
		logger.Info("wrote link table", zap.String("file", mb.OutputFile))
	}
	if mb.Verbose {
		fmt.Printf("%s\n", utils.GetMemUsage())
	}
}

// BuildCase runs the whole pipeline for one case: resolve the stencil,
// instantiate the flag field at the case's storage width, paint the
// geometry and build one index list per configured boundary.
func BuildCase(cp *InputParameters.CaseParameters, sk *readfiles.Sketch,
	logger *zap.Logger) (lists []BuiltList, st stencil.Stencil, err error) {
	if st, err = stencil.New(cp.Stencil); err != nil {
		return
	}
	if st.Dim != cp.Dim {
		err = fmt.Errorf("stencil %s is %dD, the case domain is %dD", st.Name, st.Dim, cp.Dim)
		return
	}
	switch cp.FlagType {
	case "int16":
		lists, err = buildCaseTyped[int16](cp, sk, st, logger)
	case "int32":
		lists, err = buildCaseTyped[int32](cp, sk, st, logger)
	case "int64":
		lists, err = buildCaseTyped[int64](cp, sk, st, logger)
	case "uint16":
		lists, err = buildCaseTyped[uint16](cp, sk, st, logger)
	case "uint64":
		lists, err = buildCaseTyped[uint64](cp, sk, st, logger)
	case "uint32":
		fallthrough
	default:
		lists, err = buildCaseTyped[uint32](cp, sk, st, logger)
	}
	return
}

func buildCaseTyped[T lattice.Flags](cp *InputParameters.CaseParameters, sk *readfiles.Sketch,
	st stencil.Stencil, logger *zap.Logger) (lists []BuiltList, err error) {
	var (
		interior [3]int
		reg      = lattice.NewRoleRegistry()
		f        *lattice.FlagField[T]
	)
	copy(interior[:], cp.DomainSize)
	if f, err = lattice.NewFlagField[T](cp.Dim, interior, cp.GhostLayers); err != nil {
		return
	}
	logger.Debug("allocated flag field",
		zap.Int("dim", f.Dim),
		zap.Ints("extent", f.Extent[:]),
		zap.Int("ghost", f.Ghost))
	if sk != nil {
		var painted int
		if painted, err = readfiles.PaintSketch(f, reg, sk); err != nil {
			return
		}
		logger.Debug("painted sketch", zap.Int("cells", painted))
	} else if err = paintCase(f, reg, cp); err != nil {
		return
	}
	if len(reg.BoundaryNames()) == 0 {
		err = fmt.Errorf("the case paints no boundary roles")
		return
	}
	var fluidMask T
	if fluidMask, err = lattice.FluidMask[T](reg); err != nil {
		return
	}
	specs := cp.Boundaries
	if len(specs) == 0 {
		// One combined list of every non fluid role
		specs = []InputParameters.BoundarySpec{{Name: "boundary", Roles: reg.BoundaryNames()}}
	}
	lists = make([]BuiltList, len(specs))
	for i, bs := range specs {
		var (
			mask T
			il   boundary.IndexList
		)
		if mask, err = lattice.MaskOf[T](reg, bs.Roles...); err != nil {
			return
		}
		if il, err = boundary.BuildIndexListParallel(f, st, mask, fluidMask, cp.SingleLink, cp.Parallel); err != nil {
			err = fmt.Errorf("building index list for boundary %q: %s", bs.Name, err)
			return
		}
		logger.Info("built index list",
			zap.String("boundary", bs.Name),
			zap.Int("links", il.Len()),
			zap.Int("cells", il.NumCells()))
		lists[i] = BuiltList{Name: bs.Name, List: il}
	}
	return
}

// paintCase fills the interior with fluid and paints the case's sides and
// obstacles. Case geometry is in domain coordinates, ghost layers excluded,
// so painting shifts everything by the ghost layer count.
func paintCase[T lattice.Flags](f *lattice.FlagField[T], reg *lattice.RoleRegistry,
	cp *InputParameters.CaseParameters) (err error) {
	var (
		fluid T
	)
	if fluid, err = lattice.FluidMask[T](reg); err != nil {
		return
	}
	var lo, hi [3]int
	for d := 0; d < 3; d++ {
		if d >= f.Dim {
			hi[d] = 1
			continue
		}
		lo[d], hi[d] = f.Ghost, f.Extent[d]-f.Ghost
	}
	f.FillBox(lo, hi, fluid)
	// Roles register in face order, then obstacle order, for reproducible bits
	for _, face := range InputParameters.FaceNames {
		if role, ok := cp.Sides[face]; ok {
			if _, err = reg.Register(role); err != nil {
				return
			}
		}
	}
	for _, ob := range cp.Obstacles {
		if _, err = reg.Register(ob.Role); err != nil {
			return
		}
	}
	for _, face := range InputParameters.FaceNames {
		role, ok := cp.Sides[face]
		if !ok {
			continue
		}
		var (
			axis, side int
			mask       T
		)
		if axis, side, err = InputParameters.FaceAxisSide(face); err != nil {
			return
		}
		if mask, err = lattice.MaskOf[T](reg, role); err != nil {
			return
		}
		// The painted slab is exactly the ghost layer of that face
		f.FillSides(axis, side, f.Ghost, mask)
	}
	for _, ob := range cp.Obstacles {
		var mask T
		if mask, err = lattice.MaskOf[T](reg, ob.Role); err != nil {
			return
		}
		switch ob.Shape {
		case "box":
			var lo, hi [3]int
			for d := range ob.Min {
				lo[d], hi[d] = ob.Min[d]+f.Ghost, ob.Max[d]+f.Ghost
			}
			for d := len(ob.Min); d < 3; d++ {
				hi[d] = 1
			}
			f.FillBox(lo, hi, mask)
		case "sphere":
			var center [3]float64
			for d := range ob.Center {
				center[d] = ob.Center[d] + float64(f.Ghost)
			}
			f.FillSphere(center, ob.Radius, mask)
		case "cylinder":
			axis := InputParameters.AxisNumber(ob.Axis)
			center := [2]float64{ob.Center[0] + float64(f.Ghost), ob.Center[1] + float64(f.Ghost)}
			f.FillCylinder(axis, center, ob.Radius, mask)
		}
	}
	return
}

func writeLinkTable(filename string, lists []BuiltList) (err error) {
	var (
		file *os.File
	)
	if file, err = os.Create(filename); err != nil {
		return
	}
	defer file.Close()
	w := bufio.NewWriter(file)
	defer w.Flush()
	for _, bl := range lists {
		il := bl.List
		fmt.Fprintf(w, "%% boundary %s: %d links over %d cells\n", bl.Name, il.Len(), il.NumCells())
		for _, link := range il.Links {
			if il.Dim == 3 {
				fmt.Fprintf(w, "%d %d %d %d\n", link.X, link.Y, link.Z, link.Dir)
			} else {
				fmt.Fprintf(w, "%d %d %d\n", link.X, link.Y, link.Dir)
			}
		}
	}
	return
}
