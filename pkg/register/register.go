// Package register models the amd64 register file as ptrace exposes it: a
// declarative table of register definitions laid over the user area, plus
// typed reads and writes against point-in-time snapshots of a tracee.
package register

import (
	"fmt"
)

type Kind uint8

const (
	KindGeneralPurpose Kind = iota
	KindSubGeneralPurpose
	KindFloatingPoint
	KindDebug
)

func (k Kind) String() string {
	switch k {
	case KindGeneralPurpose:
		return "general purpose"
	case KindSubGeneralPurpose:
		return "sub general purpose"
	case KindFloatingPoint:
		return "floating point"
	case KindDebug:
		return "debug"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

type Repr uint8

const (
	ReprUint Repr = iota
	ReprLongDouble
	ReprVector
)

func (r Repr) String() string {
	switch r {
	case ReprUint:
		return "uint"
	case ReprLongDouble:
		return "long double"
	case ReprVector:
		return "vector"
	}
	return fmt.Sprintf("repr(%d)", uint8(r))
}

// Register describes a single amd64 register and where it lives inside the
// user area.
type Register struct {
	Name      string
	DwarfID   int // -1 when the register has no DWARF number
	Kind      Kind
	Repr      Repr
	ByteWidth int

	offset uintptr
}

// NoDwarfID marks registers without a DWARF mapping.
const NoDwarfID = -1

type table struct {
	regs   []*Register
	byName map[string]*Register
}

func (t *table) add(r *Register) *Register {
	if _, ok := t.byName[r.Name]; ok {
		panic(fmt.Sprintf("duplicate register definition: %s", r.Name))
	}
	t.regs = append(t.regs, r)
	t.byName[r.Name] = r
	return r
}

// gpr64 defines a 64-bit general purpose register backed by a field of
// user_regs_struct. off is the field offset within User.
func (t *table) gpr64(name string, dwarfID int, off uintptr) {
	t.add(&Register{
		Name:      name,
		DwarfID:   dwarfID,
		Kind:      KindGeneralPurpose,
		Repr:      ReprUint,
		ByteWidth: 8,
		offset:    off,
	})
}

// gprSub defines a narrower alias of an already-defined 64-bit register,
// width bytes wide at byte offset offOnBase into the base register.
func (t *table) gprSub(name, base string, width int, offOnBase uintptr) {
	br, ok := t.byName[base]
	if !ok {
		panic(fmt.Sprintf("sub register %s refers to unknown base %s", name, base))
	}
	t.add(&Register{
		Name:      name,
		DwarfID:   NoDwarfID,
		Kind:      KindSubGeneralPurpose,
		Repr:      ReprUint,
		ByteWidth: width,
		offset:    br.offset + offOnBase,
	})
}

func (t *table) gpr32(name, base string) { t.gprSub(name, base, 4, 0) }
func (t *table) gpr16(name, base string) { t.gprSub(name, base, 2, 0) }
func (t *table) gpr8l(name, base string) { t.gprSub(name, base, 1, 0) }
func (t *table) gpr8h(name, base string) { t.gprSub(name, base, 1, 1) }

// fpr defines a floating point environment register backed by a field of
// user_fpregs_struct. off is the field offset within User, width its size.
func (t *table) fpr(name string, dwarfID int, off, width uintptr) {
	t.add(&Register{
		Name:      name,
		DwarfID:   dwarfID,
		Kind:      KindFloatingPoint,
		Repr:      ReprUint,
		ByteWidth: int(width),
		offset:    off,
	})
}

// fpSt defines one of the eight x87 stack slots. DWARF numbers them 33..40.
func (t *table) fpSt(stBase uintptr, n int) {
	t.add(&Register{
		Name:      fmt.Sprintf("st%d", n),
		DwarfID:   33 + n,
		Kind:      KindFloatingPoint,
		Repr:      ReprLongDouble,
		ByteWidth: 16,
		offset:    stBase + uintptr(n)*16,
	})
}

// fpMM defines one of the eight MMX registers, aliasing the low half of the
// matching x87 slot. DWARF numbers them 41..48.
func (t *table) fpMM(stBase uintptr, n int) {
	t.add(&Register{
		Name:      fmt.Sprintf("mm%d", n),
		DwarfID:   41 + n,
		Kind:      KindFloatingPoint,
		Repr:      ReprVector,
		ByteWidth: 8,
		offset:    stBase + uintptr(n)*16,
	})
}

// fpXMM defines one of the sixteen XMM registers. DWARF numbers them 17..32.
func (t *table) fpXMM(xmmBase uintptr, n int) {
	t.add(&Register{
		Name:      fmt.Sprintf("xmm%d", n),
		DwarfID:   17 + n,
		Kind:      KindFloatingPoint,
		Repr:      ReprVector,
		ByteWidth: 16,
		offset:    xmmBase + uintptr(n)*16,
	})
}

// dr defines one of the eight debug registers, living in u_debugreg.
func (t *table) dr(drBase uintptr, n int) {
	t.add(&Register{
		Name:      fmt.Sprintf("dr%d", n),
		DwarfID:   NoDwarfID,
		Kind:      KindDebug,
		Repr:      ReprUint,
		ByteWidth: 8,
		offset:    drBase + uintptr(n)*8,
	})
}

// All returns every known register in definition order.
func All() []*Register {
	return amd64.regs
}

// Lookup finds a register by its lowercase name.
func Lookup(name string) (*Register, bool) {
	r, ok := amd64.byName[name]
	return r, ok
}
