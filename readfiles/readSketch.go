package readfiles

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/notargets/gridbc/lattice"
)

// A Sketch is a 2D domain drawn as rows of glyphs, one cell per glyph, the
// way the domain would appear on paper: the first row is the north edge and
// the last row is the south edge. Lines starting with % are comments, lines
// starting with = extend the legend ("= o obstacle" paints cells drawn as o
// with the obstacle role), and a space leaves a cell without any role.
type Sketch struct {
	Nx, Ny int
	Rows   []string // Top row first, exactly as drawn
	Legend map[byte]string
}

// DefaultLegend maps the built in sketch glyphs to role names
func DefaultLegend() map[byte]string {
	return map[byte]string{
		'.': lattice.FluidTag,
		'#': "wall",
		'>': "inflow",
		'<': "outflow",
	}
}

func ReadSketch(filename string, verbose bool) (sk *Sketch, err error) {
	var (
		data []byte
	)
	if verbose {
		fmt.Printf("Reading sketch file named: %s\n", filename)
	}
	if data, err = os.ReadFile(filename); err != nil {
		return nil, fmt.Errorf("unable to open file %s\n %s", filename, err)
	}
	if sk, err = ParseSketch(data); err != nil {
		return nil, fmt.Errorf("unable to read sketch file %s: %s", filename, err)
	}
	if verbose {
		fmt.Printf("Read %d x %d sketch with %d boundary roles\n", sk.Nx, sk.Ny, len(sk.Roles()))
	}
	return
}

func ParseSketch(data []byte) (sk *Sketch, err error) {
	sk = &Sketch{Legend: DefaultLegend()}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		switch {
		case len(trimmed) == 0:
			continue
		case strings.HasPrefix(trimmed, "%"):
			continue
		case strings.HasPrefix(trimmed, "="):
			if err = sk.addLegend(trimmed); err != nil {
				return nil, err
			}
		default:
			sk.Rows = append(sk.Rows, line)
		}
	}
	if len(sk.Rows) == 0 {
		return nil, fmt.Errorf("sketch has no grid rows")
	}
	sk.Ny = len(sk.Rows)
	sk.Nx = len(sk.Rows[0])
	for i, row := range sk.Rows {
		if len(row) != sk.Nx {
			return nil, fmt.Errorf("sketch row %d has %d glyphs, the first row has %d", i+1, len(row), sk.Nx)
		}
		for x := 0; x < sk.Nx; x++ {
			if row[x] == ' ' {
				continue
			}
			if _, ok := sk.Legend[row[x]]; !ok {
				return nil, fmt.Errorf("sketch row %d has unknown glyph %q", i+1, string(row[x]))
			}
		}
	}
	return
}

func (sk *Sketch) addLegend(line string) (err error) {
	fields := strings.Fields(strings.TrimPrefix(line, "="))
	if len(fields) != 2 || len(fields[0]) != 1 {
		return fmt.Errorf("badly formed legend line [%s], should be \"= <glyph> <role>\"", line)
	}
	glyph := fields[0][0]
	if glyph == '%' || glyph == '=' || glyph == ' ' {
		return fmt.Errorf("legend glyph %q is reserved", string(glyph))
	}
	sk.Legend[glyph] = strings.ToLower(fields[1])
	return
}

// RoleAt returns the role name drawn at interior cell (x, y), counted from
// the southwest corner, or an empty string where the sketch leaves the cell
// without a role.
func (sk *Sketch) RoleAt(x, y int) string {
	glyph := sk.Rows[sk.Ny-1-y][x]
	if glyph == ' ' {
		return ""
	}
	return sk.Legend[glyph]
}

// Roles returns the boundary role names the sketch actually draws, sorted
// for a reproducible registration order.
func (sk *Sketch) Roles() (names []string) {
	used := make(map[string]bool)
	for _, row := range sk.Rows {
		for x := 0; x < len(row); x++ {
			if row[x] == ' ' {
				continue
			}
			if role := sk.Legend[row[x]]; role != lattice.FluidTag {
				used[role] = true
			}
		}
	}
	for role := range used {
		names = append(names, role)
	}
	sort.Strings(names)
	return
}

// PaintSketch registers the sketch's roles and paints its glyphs onto the
// interior of f, leaving ghost cells without roles. The field's interior
// extent must match the sketch.
func PaintSketch[T lattice.Flags](f *lattice.FlagField[T], reg *lattice.RoleRegistry, sk *Sketch) (n int, err error) {
	var (
		interior = f.InteriorExtent()
	)
	if f.Dim != 2 {
		return 0, fmt.Errorf("sketches are 2D, the field has dimension %d", f.Dim)
	}
	if interior[0] != sk.Nx || interior[1] != sk.Ny {
		return 0, fmt.Errorf("sketch is %d x %d, the field interior is %d x %d",
			sk.Nx, sk.Ny, interior[0], interior[1])
	}
	for _, role := range sk.Roles() {
		if _, err = reg.Register(role); err != nil {
			return 0, err
		}
	}
	masks := make(map[string]T)
	for _, role := range append(sk.Roles(), lattice.FluidTag) {
		if masks[role], err = lattice.MaskOf[T](reg, role); err != nil {
			return 0, err
		}
	}
	for y := 0; y < sk.Ny; y++ {
		for x := 0; x < sk.Nx; x++ {
			role := sk.RoleAt(x, y)
			if len(role) == 0 {
				continue
			}
			f.Set(x+f.Ghost, y+f.Ghost, 0, masks[role])
			n++
		}
	}
	return
}
