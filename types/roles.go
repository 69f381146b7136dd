package types

import "strings"

type RoleKind uint8

const (
	Role_None RoleKind = iota
	Role_Fluid
	Role_Wall
	Role_Inflow
	Role_Outflow
	Role_Pressure
	Role_Velocity
	Role_Periodic
	Role_Symmetry
)

func (rk RoleKind) String() string {
	names := map[RoleKind]string{
		Role_None:     "None",
		Role_Fluid:    "Fluid",
		Role_Wall:     "Wall",
		Role_Inflow:   "Inflow",
		Role_Outflow:  "Outflow",
		Role_Pressure: "Pressure",
		Role_Velocity: "Velocity",
		Role_Periodic: "Periodic",
		Role_Symmetry: "Symmetry",
	}
	if name, ok := names[rk]; ok {
		return name
	}
	return "Unknown"
}

// RoleNameMap provides a mapping from common cell role names to RoleKind
// Keys are lowercase for case-insensitive matching
var RoleNameMap = map[string]RoleKind{
	"fluid":    Role_Fluid,
	"interior": Role_Fluid,
	"wall":     Role_Wall,
	"noslip":   Role_Wall,
	"obstacle": Role_Wall,
	"inflow":   Role_Inflow,
	"in":       Role_Inflow,
	"inlet":    Role_Inflow,
	"outflow":  Role_Outflow,
	"out":      Role_Outflow,
	"outlet":   Role_Outflow,
	"pressure": Role_Pressure,
	"velocity": Role_Velocity,
	"periodic": Role_Periodic,
	"symmetry": Role_Symmetry,
}

/*
A RoleTag names one cell role in a case file or sketch legend. The base name selects the RoleKind and an
optional suffix after the first dash labels the instance, so "wall-top" and "wall-bottom" are distinct roles
of the same kind.
*/
type RoleTag string

func NewRoleTag(token string) (rt RoleTag) {
	rt = RoleTag(strings.ToLower(strings.TrimSpace(token)))
	return
}

func (rt RoleTag) GetKind() (kind RoleKind) {
	base := string(rt)
	if i := strings.Index(base, "-"); i >= 0 {
		base = base[:i]
	}
	kind = RoleNameMap[base]
	return
}

func (rt RoleTag) GetLabel() (label string) {
	if i := strings.Index(string(rt), "-"); i >= 0 {
		label = string(rt)[i+1:]
	}
	return
}
