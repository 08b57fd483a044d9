// Package ast defines the contract between a compiler front end's syntax
// tree and the Seax cell model.
//
// Concrete languages supply their own node types. Each node compiles itself
// to a flat sequence of Cells against the scope chain visible at that point,
// forking a child scope when it introduces bindings, and never mutating an
// enclosing scope. The nodes in this package are small reference
// implementations of the contract.
package ast

import (
	"strings"

	"github.com/seax-vm/seaxtools/cell"
	"github.com/seax-vm/seaxtools/scope"
)

// Indent is the width of one indentation level in pretty-printed output.
const Indent = "\t"

// Node represents a portion of the syntax tree.
type Node interface {
	// Compile returns the instructions for this node in control-list order.
	// Failures, such as an unbound name, are returned as errors and never
	// abort the process.
	Compile(s *scope.Table) ([]cell.Cell, error)

	// PrintLevel renders the node indented by level copies of Indent,
	// rendering children at level+1.
	PrintLevel(level int) string
}

// Prettyprint renders a node starting at indentation level zero.
func Prettyprint(n Node) string {
	return n.PrintLevel(0)
}

// Indentation returns level copies of Indent.
func Indentation(level int) string {
	if level <= 0 {
		return ""
	}
	return strings.Repeat(Indent, level)
}
