// Package op defines the instruction catalog of the Seax virtual machine.
//
// Each opcode's numeric tag is the value written into bytecode and decoded by
// the interpreter, so tags are fixed and must never be renumbered. Operands
// are not part of an instruction: they travel as the Cells that follow the
// opcode on the control list.
//
// Operational semantics are written as state transitions over the four
// machine registers, (s, e, c, d) → (s', e', c', d'), where (x.y) is a cons
// of x onto y and nil is the empty list.
package op

import (
	"fmt"
	"strings"
)

// Code is the numeric tag of a Seax instruction.
type Code uint8

const (
	Nil    Code = 0x00
	Ld     Code = 0x01
	Ldf    Code = 0x02
	Ap     Code = 0x03
	Apcc   Code = 0x04 // experimental: apply with current continuation
	Join   Code = 0x05
	Rap    Code = 0x06
	Ret    Code = 0x07
	Dum    Code = 0x08
	Sel    Code = 0x09
	Add    Code = 0x0A
	Sub    Code = 0x0B
	Mul    Code = 0x0C
	Div    Code = 0x0D
	Mod    Code = 0x0E
	FDiv   Code = 0x0F
	Eq     Code = 0x10
	Gt     Code = 0x11
	Gte    Code = 0x12
	Lt     Code = 0x13
	Lte    Code = 0x14
	Atom   Code = 0x15
	Null   Code = 0x16
	ReadC  Code = 0x17
	WriteC Code = 0x18
	Cons   Code = 0x19
	Car    Code = 0x1A
	Cdr    Code = 0x1B
	Ldc    Code = 0x1C
	Stop   Code = 0x1D
)

// MaxCode is the highest defined opcode tag.
const MaxCode = Stop

// BinaryOpType describes an arithmetic or bitwise operation on two atoms.
type BinaryOpType uint8

const (
	Addition       BinaryOpType = 1
	Subtraction    BinaryOpType = 2
	Multiplication BinaryOpType = 3
	Division       BinaryOpType = 4
	Remainder      BinaryOpType = 5
	BitwiseAnd     BinaryOpType = 6
	BitwiseOr      BinaryOpType = 7
	BitwiseXor     BinaryOpType = 8
)

// String returns the operator symbol, for example "+" for addition.
func (bop BinaryOpType) String() string {
	switch bop {
	case Addition:
		return "+"
	case Subtraction:
		return "-"
	case Multiplication:
		return "*"
	case Division:
		return "/"
	case Remainder:
		return "%"
	case BitwiseAnd:
		return "&"
	case BitwiseOr:
		return "|"
	case BitwiseXor:
		return "^"
	default:
		return ""
	}
}

// IsBitwise returns true for the operators that are undefined on floats.
func (bop BinaryOpType) IsBitwise() bool {
	return bop == BitwiseAnd || bop == BitwiseOr || bop == BitwiseXor
}

// CompareOpType describes a comparison between two atoms.
type CompareOpType uint8

const (
	Equal              CompareOpType = 1
	GreaterThan        CompareOpType = 2
	GreaterThanOrEqual CompareOpType = 3
	LessThan           CompareOpType = 4
	LessThanOrEqual    CompareOpType = 5
)

// String returns the comparison symbol, for example "<" for less than.
func (cop CompareOpType) String() string {
	switch cop {
	case Equal:
		return "=="
	case GreaterThan:
		return ">"
	case GreaterThanOrEqual:
		return ">="
	case LessThan:
		return "<"
	case LessThanOrEqual:
		return "<="
	default:
		return ""
	}
}

// Info contains information about an opcode.
type Info struct {
	Code Code
	Name string
	// OperandCount is the number of Cells that follow the opcode on the
	// control list.
	OperandCount int
	// Semantics is the documented state transition of the opcode.
	Semantics    string
	Experimental bool
}

var (
	infos  [int(MaxCode) + 1]Info
	byName = map[string]Code{}
)

func init() {
	type opInfo struct {
		op        Code
		name      string
		count     int
		semantics string
	}
	ops := []opInfo{
		{Nil, "NIL", 0, "(s, e, (NIL.c), d) → ((nil.s), e, c, d)"},
		{Ld, "LD", 1, "(s, e, (LD (i.j).c), d) → ((x.s), e, c, d) where x is element j (from 0) of the i-th frame of e, the head of e being frame 1"},
		{Ldf, "LDF", 1, "(s, e, (LDF f.c), d) → (([f e].s), e, c, d)"},
		{Ap, "AP", 0, "(([f e'] v.s), e, (AP.c), d) → (nil, (v.e'), f, (s e c.d))"},
		{Apcc, "APCC", 0, "(([f e'] v.s), e, (APCC.c), d) → (nil, (v [s e c d].e'), f, (s e c.d))"},
		{Join, "JOIN", 0, "(s, e, (JOIN.c), (c'.d)) → (s, e, c', d)"},
		{Rap, "RAP", 0, "(([f (nil.e')] v.s), (nil.e), (RAP.c), d) → (nil, rplaca((nil.e'), v), f, (s e c.d))"},
		{Ret, "RET", 0, "((x.z), e', (RET.c'), (s e c.d)) → ((x.s), e, c, d)"},
		{Dum, "DUM", 0, "(s, e, (DUM.c), d) → (s, (nil.e), c, d)"},
		{Sel, "SEL", 2, "((x.s), e, (SEL ct cf.c), d) → (s, e, c', (c.d)) where c' = ct if x is truthy else cf"},
		{Add, "ADD", 0, "((a b.s), e, (ADD.c), d) → ((b+a.s), e, c, d)"},
		{Sub, "SUB", 0, "((a b.s), e, (SUB.c), d) → ((b-a.s), e, c, d)"},
		{Mul, "MUL", 0, "((a b.s), e, (MUL.c), d) → ((b*a.s), e, c, d)"},
		{Div, "DIV", 0, "((a b.s), e, (DIV.c), d) → ((b/a.s), e, c, d) using integer division"},
		{Mod, "MOD", 0, "((a b.s), e, (MOD.c), d) → ((b%a.s), e, c, d)"},
		{FDiv, "FDIV", 0, "((a b.s), e, (FDIV.c), d) → ((b/a.s), e, c, d) using float division"},
		{Eq, "EQ", 0, "((a b.s), e, (EQ.c), d) → ((b==a.s), e, c, d)"},
		{Gt, "GT", 0, "((a b.s), e, (GT.c), d) → ((b>a.s), e, c, d)"},
		{Gte, "GTE", 0, "((a b.s), e, (GTE.c), d) → ((b>=a.s), e, c, d)"},
		{Lt, "LT", 0, "((a b.s), e, (LT.c), d) → ((b<a.s), e, c, d)"},
		{Lte, "LTE", 0, "((a b.s), e, (LTE.c), d) → ((b<=a.s), e, c, d)"},
		{Atom, "ATOM", 0, "((x.s), e, (ATOM.c), d) → ((atom?(x).s), e, c, d)"},
		{Null, "NULL", 0, "((x.s), e, (NULL.c), d) → ((x==nil.s), e, c, d)"},
		{ReadC, "READC", 0, "(s, e, (READC.c), d) → ((ch.s), e, c, d) where ch is read from input"},
		{WriteC, "WRITEC", 0, "((ch.s), e, (WRITEC.c), d) → (s, e, c, d) writing ch to output"},
		{Cons, "CONS", 0, "((a b.s), e, (CONS.c), d) → (((a.b).s), e, c, d)"},
		{Car, "CAR", 0, "(((a.b).s), e, (CAR.c), d) → ((a.s), e, c, d)"},
		{Cdr, "CDR", 0, "(((a.b).s), e, (CDR.c), d) → ((b.s), e, c, d)"},
		{Ldc, "LDC", 1, "(s, e, (LDC x.c), d) → ((x.s), e, c, d)"},
		{Stop, "STOP", 0, "(s, e, (STOP.c), d) → halt with final state (s, e, c, d)"},
	}
	for _, o := range ops {
		infos[o.op] = Info{
			Code:         o.op,
			Name:         o.name,
			OperandCount: o.count,
			Semantics:    o.semantics,
			Experimental: o.op == Apcc,
		}
		byName[o.name] = o.op
	}
}

// GetInfo returns information about the given opcode. The zero Info is
// returned for undefined codes.
func GetInfo(code Code) Info {
	if !code.Valid() {
		return Info{}
	}
	return infos[code]
}

// Lookup resolves a mnemonic such as "ldc" to its opcode.
func Lookup(name string) (Code, bool) {
	code, ok := byName[strings.ToUpper(name)]
	return code, ok
}

// All returns every defined opcode in tag order.
func All() []Code {
	codes := make([]Code, 0, len(infos))
	for _, info := range infos {
		codes = append(codes, info.Code)
	}
	return codes
}

// Valid returns true if the code is a defined opcode tag.
func (c Code) Valid() bool {
	return c <= MaxCode
}

// String returns the mnemonic of the opcode.
func (c Code) String() string {
	if !c.Valid() {
		return fmt.Sprintf("OP(0x%02x)", uint8(c))
	}
	return infos[c].Name
}

// BinaryOp returns the atom operation performed by an arithmetic opcode.
// FDIV maps to Division; the interpreter is responsible for coercing its
// operands to floats first.
func (c Code) BinaryOp() (BinaryOpType, bool) {
	switch c {
	case Add:
		return Addition, true
	case Sub:
		return Subtraction, true
	case Mul:
		return Multiplication, true
	case Div, FDiv:
		return Division, true
	case Mod:
		return Remainder, true
	default:
		return 0, false
	}
}

// CompareOp returns the comparison performed by a comparison opcode.
func (c Code) CompareOp() (CompareOpType, bool) {
	switch c {
	case Eq:
		return Equal, true
	case Gt:
		return GreaterThan, true
	case Gte:
		return GreaterThanOrEqual, true
	case Lt:
		return LessThan, true
	case Lte:
		return LessThanOrEqual, true
	default:
		return 0, false
	}
}
