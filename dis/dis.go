// Package dis supports analysis of Seax programs by disassembling them.
// This works with the opcodes defined in the `op` package and the Cells
// produced by the `compiler` package.
package dis

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/seax-vm/seaxtools/cell"
	"github.com/seax-vm/seaxtools/internal/table"
	"github.com/seax-vm/seaxtools/op"
)

var (
	// ErrMissingOperand is returned when a program ends before an
	// instruction's operands.
	ErrMissingOperand = errors.New("missing operand")

	// ErrInvalidOpcode is returned for an instruction cell whose tag is not
	// a defined opcode.
	ErrInvalidOpcode = errors.New("invalid opcode")
)

// Instruction represents a single instruction and its operands. Cells that
// are not consumed as operands of an instruction are reported as data
// entries, with the cell itself as the only operand.
type Instruction struct {
	Offset     int
	Name       string
	Opcode     op.Code
	Operands   []cell.Cell
	Annotation string
	Data       bool
}

// Disassemble returns a parsed representation of the given cells. Nested
// code, such as the branches of SEL or the body of LDF, is left as list
// operands; pass their cells to Disassemble to inspect them.
func Disassemble(cells []cell.Cell) ([]Instruction, error) {
	var instructions []Instruction
	for offset := 0; offset < len(cells); {
		code, ok := cells[offset].AsInst()
		if !ok {
			instructions = append(instructions, Instruction{
				Offset:   offset,
				Name:     "DATA",
				Operands: cells[offset : offset+1],
				Data:     true,
			})
			offset++
			continue
		}
		if !code.Valid() {
			return nil, fmt.Errorf("%w at offset %d: %s", ErrInvalidOpcode, offset, code)
		}
		info := op.GetInfo(code)
		end := offset + 1 + info.OperandCount
		if end > len(cells) {
			return nil, fmt.Errorf("%w at offset %d: %s takes %d, found %d",
				ErrMissingOperand, offset, info.Name, info.OperandCount, len(cells)-offset-1)
		}
		operands := cells[offset+1 : end]
		instructions = append(instructions, Instruction{
			Offset:     offset,
			Name:       info.Name,
			Opcode:     code,
			Operands:   operands,
			Annotation: annotate(info, operands),
		})
		offset = end
	}
	return instructions, nil
}

func annotate(info op.Info, operands []cell.Cell) string {
	if info.Experimental {
		return "experimental"
	}
	switch info.Code {
	case op.Ld:
		if level, pos, ok := envIndex(operands[0]); ok {
			return fmt.Sprintf("level %d, position %d", level, pos)
		}
	case op.Ldf:
		if body, ok := operands[0].AsList(); ok {
			return fmt.Sprintf("func: %d cells", body.Length())
		}
	case op.Sel:
		then, ok1 := operands[0].AsList()
		els, ok2 := operands[1].AsList()
		if ok1 && ok2 {
			return fmt.Sprintf("then: %d cells, else: %d cells", then.Length(), els.Length())
		}
	case op.Ldc:
		return operands[0].GoString()
	}
	return ""
}

// envIndex decodes the (level position) operand of LD.
func envIndex(c cell.Cell) (uint64, uint64, bool) {
	l, ok := c.AsList()
	if !ok || l.Length() != 2 {
		return 0, 0, false
	}
	first, _ := l.At(0).AsAtom()
	second, _ := l.At(1).AsAtom()
	level, ok1 := first.UInt()
	pos, ok2 := second.UInt()
	return level, pos, ok1 && ok2
}

var (
	bold    = color.New(color.Bold).SprintFunc()
	yellow  = color.New(color.FgYellow).SprintFunc()
	magenta = color.New(color.FgMagenta).SprintFunc()
	cyan    = color.New(color.FgHiCyan).SprintFunc()
	red     = color.New(color.FgRed).SprintFunc()
)

// Print a string representation of the given instructions to the given
// writer. Colors follow color.NoColor.
func Print(instructions []Instruction, writer io.Writer) {
	var lines [][]string
	for _, instr := range instructions {
		var values []string
		values = append(values, fmt.Sprintf("%d", instr.Offset))
		if instr.Data {
			values = append(values, magenta(instr.Name))
		} else {
			values = append(values, bold(instr.Name))
		}
		values = append(values, formatOperands(instr.Operands))
		switch {
		case instr.Annotation == "":
			values = append(values, "")
		case instr.Opcode == op.Apcc:
			values = append(values, red(instr.Annotation))
		case instr.Opcode == op.Ldc:
			values = append(values, yellow(instr.Annotation))
		default:
			values = append(values, cyan(instr.Annotation))
		}
		lines = append(lines, values)
	}

	table.NewTable(writer).
		WithHeader([]string{"OFFSET", "OPCODE", "OPERANDS", "INFO"}).
		WithColumnAlignment([]table.Alignment{
			table.AlignRight,
			table.AlignLeft,
			table.AlignRight,
			table.AlignLeft,
		}).
		WithHeaderAlignment([]table.Alignment{
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
		}).
		WithRows(lines).
		Render()
}

func formatOperands(operands []cell.Cell) string {
	var s string
	for i, operand := range operands {
		if i > 0 {
			s += ", "
		}
		s += operand.String()
	}
	return s
}
