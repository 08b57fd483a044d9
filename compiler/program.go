package compiler

import (
	"github.com/seax-vm/seaxtools/cell"
	"github.com/seax-vm/seaxtools/list"
)

// Program is a compiled instruction sequence in control-list order.
type Program struct {
	cells list.List[cell.Cell]
}

// List returns the program as a persistent list, ready to be loaded as the
// initial control register.
func (p Program) List() list.List[cell.Cell] {
	return p.cells
}

// Cells returns a copy of the program's cells.
func (p Program) Cells() []cell.Cell {
	return p.cells.Slice()
}

// Len returns the number of top-level cells in the program.
func (p Program) Len() int {
	return p.cells.Length()
}

func (p Program) String() string {
	return p.cells.String()
}
