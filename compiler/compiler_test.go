package compiler

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/seax-vm/seaxtools/ast"
	"github.com/seax-vm/seaxtools/cell"
	"github.com/seax-vm/seaxtools/errz"
	"github.com/seax-vm/seaxtools/op"
	"github.com/stretchr/testify/require"
)

func inst(code op.Code) cell.Cell { return cell.InstCell(code) }
func u(v uint64) cell.Cell        { return cell.AtomCell(cell.UInt(v)) }

func TestCompileEmpty(t *testing.T) {
	prog, err := Compile()
	require.NoError(t, err)
	require.Equal(t, 0, prog.Len())
	require.Equal(t, "()", prog.String())
	require.Empty(t, prog.Cells())
}

func TestCompileConcatenates(t *testing.T) {
	prog, err := Compile(
		ast.NewLiteral(cell.UInt(1)),
		&ast.Binary{Op: op.Add, Left: ast.NewLiteral(cell.SInt(-2)), Right: ast.NewLiteral(cell.Char('a'))},
	)
	require.NoError(t, err)
	want := []cell.Cell{
		inst(op.Ldc), u(1),
		inst(op.Ldc), cell.AtomCell(cell.SInt(-2)),
		inst(op.Ldc), cell.AtomCell(cell.Char('a')),
		inst(op.Add),
	}
	require.True(t, cell.Equal(want, prog.Cells()))
	require.Equal(t, 7, prog.Len())
	require.Equal(t, "(LDC, 1, LDC, -2, LDC, 'a', ADD)", prog.String())
}

func TestCompileTerminate(t *testing.T) {
	prog, err := New(&Config{Terminate: true}).Compile(ast.NewLiteral(cell.UInt(9)))
	require.NoError(t, err)
	require.Equal(t, "(LDC, 9, STOP)", prog.String())

	last := prog.List().At(prog.Len() - 1)
	code, ok := last.AsInst()
	require.True(t, ok)
	require.Equal(t, op.Stop, code)
}

func TestEachNodeGetsFreshScope(t *testing.T) {
	// A lambda parameter bound while compiling the first node must not be
	// visible to the second.
	_, err := Compile(
		&ast.Lambda{Params: []string{"x"}, Body: ast.NewIdent("x")},
		ast.NewIdent("x"),
	)
	require.Error(t, err)
	require.True(t, errz.IsUnbound(err))
}

func TestGlobalNames(t *testing.T) {
	c := New(&Config{GlobalNames: []string{"zeta", "alpha", "alpha"}})
	prog, err := c.Compile(ast.NewIdent("zeta"), ast.NewIdent("alpha"))
	require.NoError(t, err)
	require.True(t, cell.Equal([]cell.Cell{
		inst(op.Ld), cell.ListOf(u(1), u(1)),
		inst(op.Ld), cell.ListOf(u(1), u(0)),
	}, prog.Cells()))
}

func TestGlobalNamesFromNestedLambdas(t *testing.T) {
	c := New(&Config{GlobalNames: []string{"out"}})
	prog, err := c.Compile(&ast.Lambda{
		Params: []string{"a"},
		Body: &ast.Lambda{
			Params: []string{"b"},
			Body:   &ast.Apply{Fn: ast.NewIdent("out"), Args: []ast.Node{ast.NewIdent("a")}},
		},
	})
	require.NoError(t, err)
	require.Equal(t,
		"(LDF, (LDF, (NIL, LD, (2, 0), CONS, LD, (3, 0), AP, RET), RET))",
		prog.String())
}

func TestGlobalNamesIsolatedFromCaller(t *testing.T) {
	names := []string{"a"}
	c := New(&Config{GlobalNames: names})
	names[0] = "b"
	_, err := c.Compile(ast.NewIdent("a"))
	require.NoError(t, err)
}

func TestErrorsAreAggregated(t *testing.T) {
	_, err := Compile(
		ast.At(ast.NewIdent("first"), 1, 1),
		ast.NewLiteral(cell.UInt(1)),
		ast.At(ast.NewIdent("second"), 2, 5),
	)
	require.Error(t, err)
	require.True(t, strings.HasPrefix(err.Error(), "2 compile errors:"))
	require.Contains(t, err.Error(), `unbound name "first"`)
	require.Contains(t, err.Error(), `unbound name "second"`)

	var unbound *errz.UnboundNameError
	require.True(t, errors.As(err, &unbound))
	require.Equal(t, "first", unbound.Name)
}

func TestSingleErrorIsUnwrapped(t *testing.T) {
	_, err := Compile(ast.NewLiteral(cell.UInt(1)), ast.NewIdent("ghost"))
	require.Equal(t, `compile error: unbound name "ghost"`, err.Error())
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	_, err := New(&Config{Logger: logger}).Compile(
		ast.NewLiteral(cell.UInt(1)),
		ast.NewIdent("missing"),
	)
	require.Error(t, err)
	out := buf.String()
	require.Contains(t, out, `"message":"compiled node"`)
	require.Contains(t, out, `"message":"node failed to compile"`)
	require.Contains(t, out, `"message":"created root scope"`)
}
