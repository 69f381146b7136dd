package lattice

import (
	"fmt"

	"github.com/notargets/gridbc/types"
)

// FluidTag is the reserved role name for cells the solver updates. It always occupies bit 0.
const FluidTag = "fluid"

/*
A RoleRegistry assigns one flag bit to each named cell role. Role names are RoleTag tokens, so "wall-top" and
"wall-bottom" are distinct roles that both parse as Role_Wall. Whether a bit fits the chosen flag storage type
is checked when a typed mask is built with Mask or MaskOf, since the registry itself is untyped.
*/
type RoleRegistry struct {
	bits  map[string]uint
	kinds map[string]types.RoleKind
	order []string
}

func NewRoleRegistry() (reg *RoleRegistry) {
	reg = &RoleRegistry{
		bits:  make(map[string]uint),
		kinds: make(map[string]types.RoleKind),
	}
	// Bit 0 is always the fluid role
	_, _ = reg.Register(FluidTag)
	return
}

// Register assigns the next free bit to the role named by token, or returns the existing bit when the role
// is already known.
func (reg *RoleRegistry) Register(token string) (bit uint, err error) {
	var (
		tag  = types.NewRoleTag(token)
		name = string(tag)
	)
	if len(name) == 0 {
		err = fmt.Errorf("role name must not be empty")
		return
	}
	if existing, ok := reg.bits[name]; ok {
		bit = existing
		return
	}
	bit = uint(len(reg.order))
	if bit > 63 {
		err = fmt.Errorf("role %q does not fit: all 64 flag bits are taken", name)
		return
	}
	reg.bits[name] = bit
	reg.kinds[name] = tag.GetKind()
	reg.order = append(reg.order, name)
	return
}

func (reg *RoleRegistry) Bit(token string) (bit uint, ok bool) {
	bit, ok = reg.bits[string(types.NewRoleTag(token))]
	return
}

func (reg *RoleRegistry) Kind(token string) (kind types.RoleKind) {
	kind = reg.kinds[string(types.NewRoleTag(token))]
	return
}

// Names lists the registered roles in bit order, fluid first.
func (reg *RoleRegistry) Names() (names []string) {
	names = make([]string, len(reg.order))
	copy(names, reg.order)
	return
}

func (reg *RoleRegistry) NumRoles() int {
	return len(reg.order)
}

// BoundaryNames lists the registered roles that are not the fluid role, in bit order.
func (reg *RoleRegistry) BoundaryNames() (names []string) {
	for _, name := range reg.order {
		if name == FluidTag {
			continue
		}
		names = append(names, name)
	}
	return
}

// Mask converts a flag bit to a typed mask. The shift result is zero exactly when the bit does not fit the
// storage type, which is how a too narrow flag type is detected.
func Mask[T Flags](bit uint) (mask T, err error) {
	mask = T(1) << bit
	if mask == 0 {
		err = fmt.Errorf("role bit %d does not fit the flag storage type", bit)
		return
	}
	return
}

// MaskOf builds the union mask of the named roles.
func MaskOf[T Flags](reg *RoleRegistry, tokens ...string) (mask T, err error) {
	for _, token := range tokens {
		bit, ok := reg.Bit(token)
		if !ok {
			err = fmt.Errorf("unknown role %q, registered roles are %v", token, reg.Names())
			return
		}
		var m T
		if m, err = Mask[T](bit); err != nil {
			return
		}
		mask |= m
	}
	return
}

// FluidMask is the typed mask of the reserved fluid role.
func FluidMask[T Flags](reg *RoleRegistry) (mask T, err error) {
	return MaskOf[T](reg, FluidTag)
}

// BoundaryMask is the union mask of every registered role except fluid.
func BoundaryMask[T Flags](reg *RoleRegistry) (mask T, err error) {
	names := reg.BoundaryNames()
	if len(names) == 0 {
		err = fmt.Errorf("no boundary roles are registered")
		return
	}
	return MaskOf[T](reg, names...)
}
