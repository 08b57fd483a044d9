package cell

import (
	"fmt"
	"testing"

	"github.com/seax-vm/seaxtools/list"
	"github.com/seax-vm/seaxtools/op"
	"github.com/stretchr/testify/require"
)

func TestCellKinds(t *testing.T) {
	a := AtomCell(UInt(5))
	require.Equal(t, KindAtom, a.Kind())
	atom, ok := a.AsAtom()
	require.True(t, ok)
	require.True(t, UInt(5).Equal(atom))
	_, ok = a.AsList()
	require.False(t, ok)

	i := InstCell(op.Ldc)
	require.Equal(t, KindInst, i.Kind())
	code, ok := i.AsInst()
	require.True(t, ok)
	require.Equal(t, op.Ldc, code)

	l := ListOf(a, i)
	require.Equal(t, KindList, l.Kind())
	items, ok := l.AsList()
	require.True(t, ok)
	require.Equal(t, 2, items.Length())
	require.Equal(t, "list", KindList.String())
}

func TestNil(t *testing.T) {
	var zero Cell
	require.True(t, zero.IsNil())
	require.True(t, Nil().IsNil())
	require.True(t, ListOf().IsNil())
	require.False(t, ListOf(AtomCell(UInt(1))).IsNil())
	require.False(t, AtomCell(UInt(0)).IsNil())
	require.Equal(t, "()", Nil().String())
}

func TestCellString(t *testing.T) {
	c := ListOf(
		InstCell(op.Ldc),
		AtomCell(SInt(-3)),
		ListOf(AtomCell(Char('x')), AtomCell(Float(1))),
		InstCell(op.Stop),
	)
	require.Equal(t, "(LDC, -3, ('x', 1), STOP)", c.String())
	require.Equal(t, "(LDC, -3, ('x', 1.0f), STOP)", fmt.Sprintf("%#v", c))
	require.Equal(t, "1u", fmt.Sprintf("%#v", AtomCell(UInt(1))))
	require.Equal(t, "AP", InstCell(op.Ap).String())
}

func TestCellListOfNumbers(t *testing.T) {
	c := ListCell(list.Of(AtomCell(UInt(1)), AtomCell(UInt(2)), AtomCell(UInt(3))))
	require.Equal(t, "(1, 2, 3)", c.String())
}

func TestCellEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Cell
		want bool
	}{
		{"same atom", AtomCell(UInt(1)), AtomCell(UInt(1)), true},
		{"atom kinds differ", AtomCell(UInt(1)), AtomCell(SInt(1)), false},
		{"same inst", InstCell(op.Car), InstCell(op.Car), true},
		{"different inst", InstCell(op.Car), InstCell(op.Cdr), false},
		{"atom vs inst", AtomCell(UInt(0)), InstCell(op.Nil), false},
		{"nil vs atom", Nil(), AtomCell(UInt(0)), false},
		{"nested lists", ListOf(ListOf(AtomCell(Char('a')))), ListOf(ListOf(AtomCell(Char('a')))), true},
		{"nested differ", ListOf(ListOf(AtomCell(Char('a')))), ListOf(ListOf(AtomCell(Char('b')))), false},
		{"length differs", ListOf(Nil()), ListOf(Nil(), Nil()), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.a.Equal(tt.b))
			require.Equal(t, tt.want, tt.b.Equal(tt.a))
		})
	}
}

func TestClone(t *testing.T) {
	inner := list.Of(AtomCell(UInt(1)))
	orig := ListOf(ListCell(inner), InstCell(op.Ap))
	clone := orig.Clone()
	require.True(t, orig.Equal(clone))

	// Pushing onto the clone's nested list does not affect the original.
	items, _ := clone.AsList()
	head, _ := items.Peek()
	nested, _ := head.AsList()
	grown := nested.Push(AtomCell(UInt(0)))
	require.Equal(t, 2, grown.Length())
	require.Equal(t, "((1), AP)", orig.String())

	a := AtomCell(Float(2))
	require.True(t, a.Equal(a.Clone()))
}

func TestEqualSequences(t *testing.T) {
	a := []Cell{InstCell(op.Ldc), AtomCell(UInt(5))}
	b := []Cell{InstCell(op.Ldc), AtomCell(UInt(5))}
	require.True(t, Equal(a, b))
	require.False(t, Equal(a, b[:1]))
	require.False(t, Equal(a, []Cell{InstCell(op.Ldc), AtomCell(UInt(6))}))
}
