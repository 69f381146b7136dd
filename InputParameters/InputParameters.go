package InputParameters

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ghodss/yaml"
)

// Face names accepted as keys of the Sides map, in axis order. The last two
// apply to 3D cases only.
var FaceNames = []string{"west", "east", "south", "north", "bottom", "top"}

// FlagTypeNames lists the accepted FlagType values, each naming the integer
// width of the flag field storage.
var FlagTypeNames = []string{"int16", "int32", "int64", "uint16", "uint32", "uint64"}

// Obstacle paints one shape of boundary cells into the domain interior. All
// coordinates are domain coordinates, with the first interior cell at 0 and
// ghost layers excluded. Box uses Min/Max (Max exclusive), Sphere uses
// Center/Radius, Cylinder uses Center (the two axes remaining after Axis, in
// ascending order) with Radius and spans the whole domain along Axis.
type Obstacle struct {
	Shape  string    `yaml:"Shape"`
	Role   string    `yaml:"Role"`
	Center []float64 `yaml:"Center"`
	Radius float64   `yaml:"Radius"`
	Axis   string    `yaml:"Axis"`
	Min    []int     `yaml:"Min"`
	Max    []int     `yaml:"Max"`
}

// BoundarySpec names one index list and the roles whose cells feed it
type BoundarySpec struct {
	Name  string   `yaml:"Name"`
	Roles []string `yaml:"Roles"`
}

// Parameters obtained from the YAML case file
type CaseParameters struct {
	Title       string            `yaml:"Title"`
	Dim         int               `yaml:"Dim"`
	DomainSize  []int             `yaml:"DomainSize"` // Interior cells per axis, ghost layers excluded
	GhostLayers int               `yaml:"GhostLayers"`
	FlagType    string            `yaml:"FlagType"`
	Stencil     string            `yaml:"Stencil"`
	SingleLink  bool              `yaml:"SingleLink"`
	Parallel    int               `yaml:"Parallel"`
	Sides       map[string]string `yaml:"Sides"` // First key is the face name, value is the role painted on it
	Obstacles   []Obstacle        `yaml:"Obstacles"`
	Boundaries  []BoundarySpec    `yaml:"Boundaries"`
}

func (cp *CaseParameters) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, cp); err != nil {
		return err
	}
	return cp.Validate()
}

// Validate fills defaults and checks the case for consistency. The stencil
// name is resolved later, when the build instantiates it.
func (cp *CaseParameters) Validate() error {
	if cp.Dim == 0 {
		cp.Dim = len(cp.DomainSize)
	}
	if cp.Dim != 2 && cp.Dim != 3 {
		return fmt.Errorf("case dimension must be 2 or 3, got %d", cp.Dim)
	}
	if len(cp.DomainSize) != cp.Dim {
		return fmt.Errorf("DomainSize needs %d entries, got %d", cp.Dim, len(cp.DomainSize))
	}
	for d, size := range cp.DomainSize {
		if size < 1 {
			return fmt.Errorf("DomainSize[%d] must be positive, got %d", d, size)
		}
	}
	if cp.GhostLayers < 0 {
		return fmt.Errorf("GhostLayers must not be negative, got %d", cp.GhostLayers)
	}
	// A case without ghost layers cannot feed the interior scan, so zero means unset
	if cp.GhostLayers == 0 {
		cp.GhostLayers = 1
	}
	if len(cp.FlagType) == 0 {
		cp.FlagType = "uint32"
	}
	if !nameKnown(cp.FlagType, FlagTypeNames) {
		return fmt.Errorf("unknown FlagType %q, must be one of %v", cp.FlagType, FlagTypeNames)
	}
	if len(cp.Stencil) == 0 {
		if cp.Dim == 2 {
			cp.Stencil = "D2Q9"
		} else {
			cp.Stencil = "D3Q19"
		}
	}
	if cp.Parallel < 0 {
		return fmt.Errorf("Parallel must not be negative, got %d", cp.Parallel)
	}
	faces := FaceNames[:2*cp.Dim]
	normalized := make(map[string]string, len(cp.Sides))
	for face, role := range cp.Sides {
		key := strings.ToLower(strings.TrimSpace(face))
		if !nameKnown(key, faces) {
			return fmt.Errorf("unknown side %q, must be one of %v", face, faces)
		}
		if len(role) == 0 {
			return fmt.Errorf("side %q has an empty role", face)
		}
		normalized[key] = role
	}
	cp.Sides = normalized
	for i := range cp.Obstacles {
		if err := cp.validateObstacle(i); err != nil {
			return err
		}
	}
	seen := make(map[string]bool, len(cp.Boundaries))
	for i, bs := range cp.Boundaries {
		if len(bs.Name) == 0 {
			return fmt.Errorf("Boundaries[%d] has no name", i)
		}
		if seen[bs.Name] {
			return fmt.Errorf("duplicate boundary name %q", bs.Name)
		}
		seen[bs.Name] = true
		if len(bs.Roles) == 0 {
			return fmt.Errorf("boundary %q lists no roles", bs.Name)
		}
	}
	return nil
}

func (cp *CaseParameters) validateObstacle(i int) error {
	var (
		ob = &cp.Obstacles[i]
	)
	if len(ob.Role) == 0 {
		return fmt.Errorf("Obstacles[%d] has no role", i)
	}
	switch strings.ToLower(ob.Shape) {
	case "box":
		ob.Shape = "box"
		if len(ob.Min) != cp.Dim || len(ob.Max) != cp.Dim {
			return fmt.Errorf("box obstacle %d needs Min and Max with %d entries", i, cp.Dim)
		}
	case "sphere":
		ob.Shape = "sphere"
		if len(ob.Center) != cp.Dim {
			return fmt.Errorf("sphere obstacle %d needs a Center with %d entries", i, cp.Dim)
		}
		if ob.Radius <= 0 {
			return fmt.Errorf("sphere obstacle %d needs a positive Radius", i)
		}
	case "cylinder":
		ob.Shape = "cylinder"
		if len(ob.Axis) == 0 {
			ob.Axis = "z"
		}
		ob.Axis = strings.ToLower(ob.Axis)
		if AxisNumber(ob.Axis) < 0 {
			return fmt.Errorf("cylinder obstacle %d has unknown axis %q", i, ob.Axis)
		}
		if cp.Dim == 2 && ob.Axis != "z" {
			return fmt.Errorf("cylinder obstacle %d must use axis z in 2D", i)
		}
		if len(ob.Center) != 2 {
			return fmt.Errorf("cylinder obstacle %d needs a Center with 2 entries", i)
		}
		if ob.Radius <= 0 {
			return fmt.Errorf("cylinder obstacle %d needs a positive Radius", i)
		}
	default:
		return fmt.Errorf("unknown obstacle shape %q, must be box, sphere or cylinder", ob.Shape)
	}
	return nil
}

// AxisNumber maps an axis name to its dimension number, -1 when unknown
func AxisNumber(name string) int {
	switch name {
	case "x":
		return 0
	case "y":
		return 1
	case "z":
		return 2
	}
	return -1
}

// FaceAxisSide maps a face name to its axis and side (-1 low, +1 high), in
// the orientation used by the geometry painters.
func FaceAxisSide(face string) (axis, side int, err error) {
	for i, name := range FaceNames {
		if name == face {
			axis, side = i/2, 2*(i%2)-1
			return
		}
	}
	err = fmt.Errorf("unknown side %q, must be one of %v", face, FaceNames)
	return
}

func nameKnown(name string, names []string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func (cp *CaseParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", cp.Title)
	fmt.Printf("[%d]\t\t\t\t= Dim\n", cp.Dim)
	fmt.Printf("%v\t\t= DomainSize\n", cp.DomainSize)
	fmt.Printf("[%d]\t\t\t\t= GhostLayers\n", cp.GhostLayers)
	fmt.Printf("[%s]\t\t\t= Flag Type\n", cp.FlagType)
	fmt.Printf("[%s]\t\t\t= Stencil\n", cp.Stencil)
	fmt.Printf("[%v]\t\t\t= SingleLink\n", cp.SingleLink)
	keys := make([]string, len(cp.Sides))
	i := 0
	for k := range cp.Sides {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("Sides[%s] = %s\n", key, cp.Sides[key])
	}
	for i, ob := range cp.Obstacles {
		fmt.Printf("Obstacles[%d] = %+v\n", i, ob)
	}
	for _, bs := range cp.Boundaries {
		fmt.Printf("Boundaries[%s] = %v\n", bs.Name, bs.Roles)
	}
}
