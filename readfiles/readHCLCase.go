package readfiles

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/notargets/gridbc/InputParameters"
)

// hclCaseRoot decodes the literal part of a case file. The geometry blocks
// stay in Remain for the second pass, which runs with nx/ny/nz in scope.
type hclCaseRoot struct {
	Title    string     `hcl:"title,optional"`
	FlagType string     `hcl:"flag_type,optional"`
	Domain   *hclDomain `hcl:"domain,block"`
	Remain   hcl.Body   `hcl:",remain"`
}

type hclDomain struct {
	Size        []int  `hcl:"size"`
	GhostLayers int    `hcl:"ghost_layers,optional"`
	Stencil     string `hcl:"stencil,optional"`
}

type hclCaseGeometry struct {
	SingleLink bool          `hcl:"single_link,optional"`
	Parallel   int           `hcl:"parallel,optional"`
	Sides      []hclSide     `hcl:"side,block"`
	Obstacles  []hclObstacle `hcl:"obstacle,block"`
	Boundaries []hclBoundary `hcl:"boundary,block"`
}

type hclSide struct {
	Face string `hcl:"face,label"`
	Role string `hcl:"role"`
}

type hclObstacle struct {
	Shape  string    `hcl:"shape,label"`
	Role   string    `hcl:"role"`
	Center []float64 `hcl:"center,optional"`
	Radius float64   `hcl:"radius,optional"`
	Axis   string    `hcl:"axis,optional"`
	Min    []int     `hcl:"min,optional"`
	Max    []int     `hcl:"max,optional"`
}

type hclBoundary struct {
	Name  string   `hcl:"name,label"`
	Roles []string `hcl:"roles"`
}

// ReadHCLCase loads a case written in HCL. The decode runs in two passes:
// the first reads the title, flag type and domain block, the second decodes
// the side/obstacle/boundary blocks against an evaluation context carrying
// nx, ny and nz, so geometry can be written as expressions of the domain
// size such as center = [nx / 4, ny / 2].
func ReadHCLCase(filename string, verbose bool) (cp *InputParameters.CaseParameters, err error) {
	if verbose {
		fmt.Printf("Reading HCL case file named: %s\n", filename)
	}
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL case file %s: %s", filename, diags.Error())
	}
	return decodeHCLCase(file.Body, filename)
}

// ParseHCLCase decodes an in-memory case, filename only labels diagnostics
func ParseHCLCase(data []byte, filename string) (cp *InputParameters.CaseParameters, err error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL case %s: %s", filename, diags.Error())
	}
	return decodeHCLCase(file.Body, filename)
}

func decodeHCLCase(body hcl.Body, filename string) (cp *InputParameters.CaseParameters, err error) {
	var (
		root hclCaseRoot
		geo  hclCaseGeometry
	)
	diags := gohcl.DecodeBody(body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL case %s: %s", filename, diags.Error())
	}
	if root.Domain == nil {
		return nil, fmt.Errorf("HCL case %s has no domain block", filename)
	}
	if len(root.Domain.Size) < 2 || len(root.Domain.Size) > 3 {
		return nil, fmt.Errorf("HCL case %s: domain size needs 2 or 3 entries, got %d",
			filename, len(root.Domain.Size))
	}
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"nx": cty.NumberIntVal(int64(root.Domain.Size[0])),
			"ny": cty.NumberIntVal(int64(root.Domain.Size[1])),
		},
	}
	if len(root.Domain.Size) == 3 {
		evalCtx.Variables["nz"] = cty.NumberIntVal(int64(root.Domain.Size[2]))
	}
	diags = gohcl.DecodeBody(root.Remain, evalCtx, &geo)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL case %s: %s", filename, diags.Error())
	}
	cp = &InputParameters.CaseParameters{
		Title:       root.Title,
		DomainSize:  root.Domain.Size,
		GhostLayers: root.Domain.GhostLayers,
		Stencil:     root.Domain.Stencil,
		FlagType:    root.FlagType,
		SingleLink:  geo.SingleLink,
		Parallel:    geo.Parallel,
	}
	if len(geo.Sides) > 0 {
		cp.Sides = make(map[string]string, len(geo.Sides))
		for _, side := range geo.Sides {
			if _, ok := cp.Sides[side.Face]; ok {
				return nil, fmt.Errorf("HCL case %s paints side %q twice", filename, side.Face)
			}
			cp.Sides[side.Face] = side.Role
		}
	}
	for _, ob := range geo.Obstacles {
		cp.Obstacles = append(cp.Obstacles, InputParameters.Obstacle{
			Shape:  ob.Shape,
			Role:   ob.Role,
			Center: ob.Center,
			Radius: ob.Radius,
			Axis:   ob.Axis,
			Min:    ob.Min,
			Max:    ob.Max,
		})
	}
	for _, bs := range geo.Boundaries {
		cp.Boundaries = append(cp.Boundaries, InputParameters.BoundarySpec{Name: bs.Name, Roles: bs.Roles})
	}
	if err = cp.Validate(); err != nil {
		return nil, fmt.Errorf("HCL case %s: %s", filename, err)
	}
	return
}
