// Package cell defines the values manipulated by the Seax virtual machine.
//
// A Cell is an Atom, a list of Cells, or an Instruction. It is the only value
// type the VM knows about; compiled programs are lists of Cells in
// control-list order.
package cell

import (
	"fmt"

	"github.com/seax-vm/seaxtools/list"
	"github.com/seax-vm/seaxtools/op"
)

// Kind identifies which variant a Cell holds.
type Kind uint8

const (
	KindList Kind = iota
	KindAtom
	KindInst
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindList:
		return "list"
	case KindAtom:
		return "atom"
	case KindInst:
		return "instruction"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Cell is a tagged union of Atom, list of Cell, and instruction. The zero
// Cell is the empty list, nil.
type Cell struct {
	kind Kind
	atom Atom
	list list.List[Cell]
	inst op.Code
}

// AtomCell wraps an atom.
func AtomCell(a Atom) Cell {
	return Cell{kind: KindAtom, atom: a}
}

// ListCell wraps a list of cells.
func ListCell(l list.List[Cell]) Cell {
	return Cell{kind: KindList, list: l}
}

// InstCell wraps an instruction.
func InstCell(code op.Code) Cell {
	return Cell{kind: KindInst, inst: code}
}

// ListOf returns a list cell holding cells in the given order.
func ListOf(cells ...Cell) Cell {
	return ListCell(list.FromSlice(cells))
}

// Nil returns the empty list cell.
func Nil() Cell {
	return Cell{}
}

// Kind returns the active variant.
func (c Cell) Kind() Kind {
	return c.kind
}

// AsAtom returns the atom held by an atom cell.
func (c Cell) AsAtom() (Atom, bool) {
	return c.atom, c.kind == KindAtom
}

// AsList returns the list held by a list cell.
func (c Cell) AsList() (list.List[Cell], bool) {
	return c.list, c.kind == KindList
}

// AsInst returns the opcode held by an instruction cell.
func (c Cell) AsInst() (op.Code, bool) {
	return c.inst, c.kind == KindInst
}

// IsNil returns true for the empty list cell.
func (c Cell) IsNil() bool {
	return c.kind == KindList && c.list.IsEmpty()
}

// Equal reports whether two cells hold the same variant and value. Lists are
// compared element by element.
func (c Cell) Equal(other Cell) bool {
	if c.kind != other.kind {
		return false
	}
	switch c.kind {
	case KindAtom:
		return c.atom.Equal(other.atom)
	case KindInst:
		return c.inst == other.inst
	case KindList:
		return list.Equal(c.list, other.list, Cell.Equal)
	default:
		return false
	}
}

// Clone returns a deep copy of the cell. The copy shares no list nodes with
// the original.
func (c Cell) Clone() Cell {
	if c.kind != KindList {
		return c
	}
	return ListCell(list.Map(c.list, Cell.Clone))
}

// String renders the active variant: atoms in display form, lists as
// "(a, b, c)" and instructions by mnemonic.
func (c Cell) String() string {
	switch c.kind {
	case KindAtom:
		return c.atom.String()
	case KindInst:
		return c.inst.String()
	case KindList:
		return c.list.Format(Cell.String)
	default:
		return fmt.Sprintf("<invalid cell kind %d>", uint8(c.kind))
	}
}

// GoString renders the active variant in debug form, used by %#v.
func (c Cell) GoString() string {
	switch c.kind {
	case KindAtom:
		return c.atom.GoString()
	case KindInst:
		return c.inst.String()
	case KindList:
		return c.list.Format(Cell.GoString)
	default:
		return fmt.Sprintf("<invalid cell kind %d>", uint8(c.kind))
	}
}

// Equal reports whether two cell sequences are element-wise equal.
func Equal(a, b []Cell) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
