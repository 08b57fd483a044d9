// Package table renders bordered text tables whose cells may carry ANSI
// color codes.
package table

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Alignment of text within a column.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripAnsi(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// visibleWidth is the number of terminal columns s occupies once color codes
// are removed.
func visibleWidth(s string) int {
	return runewidth.StringWidth(stripAnsi(s))
}

// Table accumulates rows and writes them with Render.
type Table struct {
	w           io.Writer
	header      []string
	rows        [][]string
	columnAlign []Alignment
	headerAlign []Alignment
}

func NewTable(w io.Writer) *Table {
	return &Table{w: w}
}

func (t *Table) WithHeader(header []string) *Table {
	t.header = header
	return t
}

func (t *Table) WithColumnAlignment(align []Alignment) *Table {
	t.columnAlign = align
	return t
}

func (t *Table) WithHeaderAlignment(align []Alignment) *Table {
	t.headerAlign = align
	return t
}

func (t *Table) WithRows(rows [][]string) *Table {
	t.rows = append(t.rows, rows...)
	return t
}

func (t *Table) Append(row []string) *Table {
	t.rows = append(t.rows, row)
	return t
}

func (t *Table) columns() int {
	n := len(t.header)
	for _, row := range t.rows {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}

func (t *Table) widths(n int) []int {
	widths := make([]int, n)
	measure := func(row []string) {
		for i, cell := range row {
			if w := visibleWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(t.header)
	for _, row := range t.rows {
		measure(row)
	}
	return widths
}

// Render writes the table. Nothing is written if the table has no columns.
func (t *Table) Render() {
	n := t.columns()
	if n == 0 {
		return
	}
	widths := t.widths(n)
	border := t.border(widths)
	fmt.Fprintln(t.w, border)
	if len(t.header) > 0 {
		fmt.Fprintln(t.w, t.line(t.header, widths, t.headerAlign))
		fmt.Fprintln(t.w, border)
	}
	for _, row := range t.rows {
		fmt.Fprintln(t.w, t.line(row, widths, t.columnAlign))
	}
	fmt.Fprintln(t.w, border)
}

func (t *Table) border(widths []int) string {
	var b strings.Builder
	b.WriteByte('+')
	for _, w := range widths {
		b.WriteString(strings.Repeat("-", w+2))
		b.WriteByte('+')
	}
	return b.String()
}

func (t *Table) line(row []string, widths []int, align []Alignment) string {
	var b strings.Builder
	b.WriteByte('|')
	for i, w := range widths {
		var cell string
		if i < len(row) {
			cell = row[i]
		}
		a := AlignLeft
		if i < len(align) {
			a = align[i]
		}
		b.WriteByte(' ')
		b.WriteString(pad(cell, w, a))
		b.WriteString(" |")
	}
	return b.String()
}

func pad(s string, width int, align Alignment) string {
	gap := width - visibleWidth(s)
	if gap <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", gap) + s
	case AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
	default:
		return s + strings.Repeat(" ", gap)
	}
}
