package ast

import (
	"fmt"
	"strings"

	"github.com/seax-vm/seaxtools/cell"
	"github.com/seax-vm/seaxtools/errz"
	"github.com/seax-vm/seaxtools/location"
	"github.com/seax-vm/seaxtools/op"
	"github.com/seax-vm/seaxtools/scope"
)

// Binary applies an arithmetic or comparison opcode to two operands. The
// left operand is pushed first, so for SUB the right operand is subtracted
// from the left.
type Binary struct {
	Op    op.Code
	Left  Node
	Right Node
}

func (x *Binary) Compile(s *scope.Table) ([]cell.Cell, error) {
	_, arith := x.Op.BinaryOp()
	_, cmp := x.Op.CompareOp()
	if !arith && !cmp {
		return nil, errz.CompileErrorf("%s is not a binary operator", x.Op)
	}
	left, err := x.Left.Compile(s)
	if err != nil {
		return nil, err
	}
	right, err := x.Right.Compile(s)
	if err != nil {
		return nil, err
	}
	out := make([]cell.Cell, 0, len(left)+len(right)+1)
	out = append(out, left...)
	out = append(out, right...)
	return append(out, cell.InstCell(x.Op)), nil
}

func (x *Binary) PrintLevel(level int) string {
	return Indentation(level) + "Binary " + x.Op.String() + "\n" +
		x.Left.PrintLevel(level+1) + "\n" +
		x.Right.PrintLevel(level+1)
}

// If selects between two branches. It compiles to the condition, SEL, and
// the two branches as lists each terminated by JOIN.
type If struct {
	Cond Node
	Then Node
	Else Node
}

func (x *If) Compile(s *scope.Table) ([]cell.Cell, error) {
	cond, err := x.Cond.Compile(s)
	if err != nil {
		return nil, err
	}
	then, err := compileBranch(x.Then, s, op.Join)
	if err != nil {
		return nil, err
	}
	els, err := compileBranch(x.Else, s, op.Join)
	if err != nil {
		return nil, err
	}
	return append(cond, cell.InstCell(op.Sel), then, els), nil
}

func (x *If) PrintLevel(level int) string {
	return Indentation(level) + "If\n" +
		x.Cond.PrintLevel(level+1) + "\n" +
		x.Then.PrintLevel(level+1) + "\n" +
		x.Else.PrintLevel(level+1)
}

// Lambda is a function literal. Its parameters are bound in a forked scope
// at level 1, the frame AP pushes onto the environment, and the body is
// compiled into a list terminated by RET and loaded with LDF.
type Lambda struct {
	Params []string
	Body   Node
}

func (x *Lambda) Compile(s *scope.Table) (out []cell.Cell, err error) {
	child := s.Fork()
	defer func() {
		if derr := child.Discard(); derr != nil && err == nil {
			err = derr
		}
	}()
	for _, name := range x.Params {
		if _, err := child.Bind(name, 1); err != nil {
			return nil, errz.CompileErrorf("duplicate parameter %q", name)
		}
	}
	body, err := compileBranch(x.Body, child, op.Ret)
	if err != nil {
		return nil, err
	}
	return []cell.Cell{cell.InstCell(op.Ldf), body}, nil
}

func (x *Lambda) PrintLevel(level int) string {
	return Indentation(level) + "Lambda (" + strings.Join(x.Params, ", ") + ")\n" +
		x.Body.PrintLevel(level+1)
}

// Apply calls a function with arguments. The arguments are consed onto nil
// last to first, so the first argument ends up at the head of the list
// handed to AP.
type Apply struct {
	Fn   Node
	Args []Node
}

func (x *Apply) Compile(s *scope.Table) ([]cell.Cell, error) {
	out := []cell.Cell{cell.InstCell(op.Nil)}
	for i := len(x.Args) - 1; i >= 0; i-- {
		arg, err := x.Args[i].Compile(s)
		if err != nil {
			return nil, err
		}
		out = append(out, arg...)
		out = append(out, cell.InstCell(op.Cons))
	}
	fn, err := x.Fn.Compile(s)
	if err != nil {
		return nil, err
	}
	out = append(out, fn...)
	return append(out, cell.InstCell(op.Ap)), nil
}

func (x *Apply) PrintLevel(level int) string {
	var b strings.Builder
	b.WriteString(Indentation(level) + "Apply\n")
	b.WriteString(x.Fn.PrintLevel(level + 1))
	for _, arg := range x.Args {
		b.WriteString("\n")
		b.WriteString(arg.PrintLevel(level + 1))
	}
	return b.String()
}

// Located attaches a source location to a node. Compile errors from the
// wrapped node that have no location yet are given this one.
type Located struct {
	location.At[Node]
}

// At wraps n with the location line, col.
func At(n Node, line, col int) *Located {
	return &Located{At: location.NewAt(n, location.New(line, col))}
}

func (x *Located) Compile(s *scope.Table) ([]cell.Cell, error) {
	out, err := x.Get().Compile(s)
	if err != nil {
		return nil, errz.AtLocation(err, x.Location)
	}
	return out, nil
}

func (x *Located) PrintLevel(level int) string {
	return x.Get().PrintLevel(level)
}

// String renders the wrapped node and its location.
func (x *Located) String() string {
	return fmt.Sprintf("%s at %s", Prettyprint(x.Get()), x.Location)
}

func compileBranch(n Node, s *scope.Table, terminator op.Code) (cell.Cell, error) {
	code, err := n.Compile(s)
	if err != nil {
		return cell.Cell{}, err
	}
	return cell.ListOf(append(code, cell.InstCell(terminator))...), nil
}
