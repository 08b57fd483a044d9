package ast

import (
	"github.com/seax-vm/seaxtools/cell"
	"github.com/seax-vm/seaxtools/errz"
	"github.com/seax-vm/seaxtools/op"
	"github.com/seax-vm/seaxtools/scope"
)

// Literal is a constant atom. It compiles to LDC followed by the atom.
type Literal struct {
	Value cell.Atom
}

// NewLiteral returns a literal node for value.
func NewLiteral(value cell.Atom) *Literal {
	return &Literal{Value: value}
}

func (x *Literal) Compile(s *scope.Table) ([]cell.Cell, error) {
	return []cell.Cell{cell.InstCell(op.Ldc), cell.AtomCell(x.Value)}, nil
}

func (x *Literal) PrintLevel(level int) string {
	return Indentation(level) + "Literal " + x.Value.GoString()
}

// Ident is a reference to a bound name. It compiles to LD followed by the
// (level position) pair the scope chain resolves the name to.
type Ident struct {
	Name string
}

// NewIdent returns an identifier node for name.
func NewIdent(name string) *Ident {
	return &Ident{Name: name}
}

func (x *Ident) Compile(s *scope.Table) ([]cell.Cell, error) {
	idx, ok := s.Lookup(x.Name)
	if !ok {
		return nil, errz.NewUnboundNameError(x.Name, s.Visible()...)
	}
	return []cell.Cell{cell.InstCell(op.Ld), IndexCell(idx)}, nil
}

func (x *Ident) PrintLevel(level int) string {
	return Indentation(level) + "Ident " + x.Name
}

// IndexCell encodes an environment index as the operand of LD: a list of
// two UInt atoms, level then position.
func IndexCell(idx scope.Index) cell.Cell {
	return cell.ListOf(
		cell.AtomCell(cell.UInt(idx.Level)),
		cell.AtomCell(cell.UInt(idx.Position)),
	)
}
