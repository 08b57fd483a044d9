package dis

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/seax-vm/seaxtools/ast"
	"github.com/seax-vm/seaxtools/cell"
	"github.com/seax-vm/seaxtools/compiler"
	"github.com/seax-vm/seaxtools/op"
	"github.com/stretchr/testify/require"
)

func inst(code op.Code) cell.Cell { return cell.InstCell(code) }
func u(v uint64) cell.Cell        { return cell.AtomCell(cell.UInt(v)) }

func disableColor(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = saved })
}

func TestDisassemble(t *testing.T) {
	cells := []cell.Cell{
		inst(op.Ldc), u(42),
		inst(op.Ld), cell.ListOf(u(0), u(1)),
		inst(op.Ldf), cell.ListOf(inst(op.Ld), cell.ListOf(u(1), u(0)), inst(op.Ret)),
		inst(op.Sel),
		cell.ListOf(inst(op.Ldc), u(1), inst(op.Join)),
		cell.ListOf(inst(op.Ldc), u(2), inst(op.Join)),
		inst(op.Apcc),
		inst(op.Stop),
		cell.AtomCell(cell.Char('x')),
	}
	instructions, err := Disassemble(cells)
	require.NoError(t, err)
	require.Len(t, instructions, 7)

	type row struct {
		offset     int
		name       string
		operands   int
		annotation string
	}
	want := []row{
		{0, "LDC", 1, "42u"},
		{2, "LD", 1, "level 0, position 1"},
		{4, "LDF", 1, "func: 3 cells"},
		{6, "SEL", 2, "then: 3 cells, else: 3 cells"},
		{9, "APCC", 0, "experimental"},
		{10, "STOP", 0, ""},
		{11, "DATA", 1, ""},
	}
	for i, w := range want {
		got := instructions[i]
		require.Equal(t, w.offset, got.Offset, "instruction %d", i)
		require.Equal(t, w.name, got.Name, "instruction %d", i)
		require.Len(t, got.Operands, w.operands, "instruction %d", i)
		require.Equal(t, w.annotation, got.Annotation, "instruction %d", i)
	}
	require.True(t, instructions[6].Data)
	require.False(t, instructions[5].Data)
	require.Equal(t, op.Stop, instructions[5].Opcode)
}

func TestDisassembleMissingOperand(t *testing.T) {
	_, err := Disassemble([]cell.Cell{inst(op.Ldc), u(1), inst(op.Sel), cell.ListOf()})
	require.ErrorIs(t, err, ErrMissingOperand)
	require.Equal(t, "missing operand at offset 2: SEL takes 2, found 1", err.Error())
}

func TestDisassembleInvalidOpcode(t *testing.T) {
	_, err := Disassemble([]cell.Cell{inst(op.Code(0x7f))})
	require.ErrorIs(t, err, ErrInvalidOpcode)
}

func TestDisassembleEmpty(t *testing.T) {
	instructions, err := Disassemble(nil)
	require.NoError(t, err)
	require.Empty(t, instructions)
}

func TestPrint(t *testing.T) {
	disableColor(t)
	prog, err := compiler.New(&compiler.Config{Terminate: true}).
		Compile(ast.NewLiteral(cell.UInt(7)))
	require.NoError(t, err)
	instructions, err := Disassemble(prog.Cells())
	require.NoError(t, err)

	var buf bytes.Buffer
	Print(instructions, &buf)

	expected := strings.TrimSpace(`
+--------+--------+----------+------+
| OFFSET | OPCODE | OPERANDS | INFO |
+--------+--------+----------+------+
|      0 | LDC    |        7 | 7u   |
|      2 | STOP   |          |      |
+--------+--------+----------+------+
`)
	require.Equal(t, expected+"\n", buf.String())
}

func TestPrintNestedProgram(t *testing.T) {
	disableColor(t)
	prog, err := compiler.Compile(&ast.Apply{
		Fn:   &ast.Lambda{Params: []string{"n"}, Body: ast.NewIdent("n")},
		Args: []ast.Node{ast.NewLiteral(cell.Char('z'))},
	})
	require.NoError(t, err)
	instructions, err := Disassemble(prog.Cells())
	require.NoError(t, err)

	var names []string
	for _, instr := range instructions {
		names = append(names, instr.Name)
	}
	require.Equal(t, []string{"NIL", "LDC", "CONS", "LDF", "AP"}, names)

	// The lambda body disassembles on its own.
	body, ok := instructions[3].Operands[0].AsList()
	require.True(t, ok)
	inner, err := Disassemble(body.Slice())
	require.NoError(t, err)
	require.Equal(t, "LD", inner[0].Name)
	require.Equal(t, "level 1, position 0", inner[0].Annotation)

	var buf bytes.Buffer
	Print(instructions, &buf)
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 9)
	for _, line := range lines {
		require.Equal(t, len(lines[0]), len(line))
	}
	require.Contains(t, buf.String(), "'z'")
	require.Contains(t, buf.String(), "func: 3 cells")
}
