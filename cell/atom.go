package cell

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/seax-vm/seaxtools/errz"
	"github.com/seax-vm/seaxtools/op"
)

// AtomKind identifies which of the four leaf value kinds an Atom holds.
type AtomKind uint8

const (
	UIntKind AtomKind = iota
	SIntKind
	FloatKind
	CharKind
)

// String returns the name of the kind.
func (k AtomKind) String() string {
	switch k {
	case UIntKind:
		return "uint"
	case SIntKind:
		return "sint"
	case FloatKind:
		return "float"
	case CharKind:
		return "char"
	default:
		return fmt.Sprintf("AtomKind(%d)", uint8(k))
	}
}

// Atom is a numeric or character leaf value. Atoms are immutable and are
// compared by value. The payload is stored as raw bits and decoded according
// to the kind.
type Atom struct {
	kind AtomKind
	bits uint64
}

// UInt returns an unsigned 64-bit integer atom.
func UInt(v uint64) Atom { return Atom{kind: UIntKind, bits: v} }

// SInt returns a signed 64-bit integer atom.
func SInt(v int64) Atom { return Atom{kind: SIntKind, bits: uint64(v)} }

// Float returns a 64-bit floating point atom.
func Float(v float64) Atom { return Atom{kind: FloatKind, bits: math.Float64bits(v)} }

// Char returns a character atom. v must be a Unicode scalar value; negative
// runes, surrogates and values past U+10FFFF panic with
// errz.ErrUnsupportedOperation.
func Char(v rune) Atom {
	if !utf8.ValidRune(v) {
		errz.Fatalf(errz.ErrUnsupportedOperation, "invalid char %U", v)
	}
	return Atom{kind: CharKind, bits: uint64(uint32(v))}
}

// Kind returns the kind of the atom.
func (a Atom) Kind() AtomKind { return a.kind }

// UInt returns the value of a UInt atom.
func (a Atom) UInt() (uint64, bool) { return a.bits, a.kind == UIntKind }

// SInt returns the value of a SInt atom.
func (a Atom) SInt() (int64, bool) { return int64(a.bits), a.kind == SIntKind }

// Float returns the value of a Float atom.
func (a Atom) Float() (float64, bool) { return math.Float64frombits(a.bits), a.kind == FloatKind }

// Char returns the value of a Char atom.
func (a Atom) Char() (rune, bool) { return rune(uint32(a.bits)), a.kind == CharKind }

// Equal reports whether a and b have the same kind and value. Atoms of
// different kinds are never equal, and a NaN float is not equal to itself.
func (a Atom) Equal(b Atom) bool {
	if a.kind != b.kind {
		return false
	}
	if a.kind == FloatKind {
		return math.Float64frombits(a.bits) == math.Float64frombits(b.bits)
	}
	return a.bits == b.bits
}

// String renders the atom in its display form: decimal numbers, and chars
// wrapped in single quotes.
func (a Atom) String() string {
	switch a.kind {
	case UIntKind:
		return strconv.FormatUint(a.bits, 10)
	case SIntKind:
		return strconv.FormatInt(int64(a.bits), 10)
	case FloatKind:
		return formatFloat(math.Float64frombits(a.bits))
	case CharKind:
		return "'" + string(rune(uint32(a.bits))) + "'"
	default:
		return "<invalid atom>"
	}
}

// GoString renders the atom in its debug form, used by %#v. UInts carry a
// "u" suffix and floats an "f" suffix.
func (a Atom) GoString() string {
	switch a.kind {
	case UIntKind:
		return a.String() + "u"
	case FloatKind:
		return debugFloat(math.Float64frombits(a.bits)) + "f"
	default:
		return a.String()
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// debugFloat switches to exponent notation, "1e21" or "1.5e-7", outside
// [1e-4, 1e16). Integral values inside the range keep a trailing ".0".
func debugFloat(f float64) string {
	if abs := math.Abs(f); f != 0 && !math.IsInf(f, 0) && !math.IsNaN(f) && (abs < 1e-4 || abs >= 1e16) {
		mant, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
		e, _ := strconv.Atoi(exp)
		return mant + "e" + strconv.Itoa(e)
	}
	s := formatFloat(f)
	if isPlainInteger(s) {
		s += ".0"
	}
	return s
}

func isPlainInteger(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (a Atom) asFloat() float64 {
	switch a.kind {
	case UIntKind:
		return float64(a.bits)
	case SIntKind:
		return float64(int64(a.bits))
	case CharKind:
		return float64(rune(uint32(a.bits)))
	default:
		return math.Float64frombits(a.bits)
	}
}

// asByte truncates the atom to its low byte. Floats are converted toward
// zero and clamped to [0, 255], with NaN becoming 0.
func (a Atom) asByte() uint8 {
	if a.kind != FloatKind {
		return uint8(a.bits)
	}
	f := math.Float64frombits(a.bits)
	switch {
	case math.IsNaN(f), f <= 0:
		return 0
	case f >= math.MaxUint8:
		return math.MaxUint8
	default:
		return uint8(f)
	}
}

func involves(a, b Atom, kind AtomKind) bool {
	return a.kind == kind || b.kind == kind
}

// Apply performs the binary operation bop on two atoms, coercing the
// operands by these rules, in order:
//
//   - either operand is a Char: both are truncated to a byte, the operation
//     is done on bytes with wraparound, and the result is a Char.
//   - either operand is a Float: the other is converted to float and the
//     result is a Float. Bitwise operations panic with
//     errz.ErrUnsupportedOperation instead.
//   - either operand is a SInt: a UInt operand is reinterpreted as signed
//     and the result is a SInt.
//   - otherwise both are UInts and so is the result.
//
// Integer overflow wraps. Integer division or remainder by zero panics with
// errz.ErrDivisionByZero.
func Apply(bop op.BinaryOpType, a, b Atom) Atom {
	if bop.IsBitwise() && involves(a, b, FloatKind) {
		errz.Fatalf(errz.ErrUnsupportedOperation,
			"floats do not support bitwise operations (%#v %s %#v)", a, bop, b)
	}
	switch {
	case involves(a, b, CharKind):
		return Char(rune(byteOp(bop, a.asByte(), b.asByte())))
	case involves(a, b, FloatKind):
		return Float(floatOp(bop, a.asFloat(), b.asFloat()))
	case involves(a, b, SIntKind):
		return SInt(sintOp(bop, int64(a.bits), int64(b.bits)))
	default:
		return UInt(uintOp(bop, a.bits, b.bits))
	}
}

// Add returns a + b.
func Add(a, b Atom) Atom { return Apply(op.Addition, a, b) }

// Sub returns a - b.
func Sub(a, b Atom) Atom { return Apply(op.Subtraction, a, b) }

// Mul returns a * b.
func Mul(a, b Atom) Atom { return Apply(op.Multiplication, a, b) }

// Div returns a / b.
func Div(a, b Atom) Atom { return Apply(op.Division, a, b) }

// Rem returns a % b.
func Rem(a, b Atom) Atom { return Apply(op.Remainder, a, b) }

// And returns a & b.
func And(a, b Atom) Atom { return Apply(op.BitwiseAnd, a, b) }

// Or returns a | b.
func Or(a, b Atom) Atom { return Apply(op.BitwiseOr, a, b) }

// Xor returns a ^ b.
func Xor(a, b Atom) Atom { return Apply(op.BitwiseXor, a, b) }

func byteOp(bop op.BinaryOpType, a, b uint8) uint8 {
	switch bop {
	case op.Addition:
		return a + b
	case op.Subtraction:
		return a - b
	case op.Multiplication:
		return a * b
	case op.Division:
		checkDivisor(b == 0)
		return a / b
	case op.Remainder:
		checkDivisor(b == 0)
		return a % b
	case op.BitwiseAnd:
		return a & b
	case op.BitwiseOr:
		return a | b
	case op.BitwiseXor:
		return a ^ b
	}
	unknownOp(bop)
	return 0
}

func floatOp(bop op.BinaryOpType, a, b float64) float64 {
	switch bop {
	case op.Addition:
		return a + b
	case op.Subtraction:
		return a - b
	case op.Multiplication:
		return a * b
	case op.Division:
		return a / b
	case op.Remainder:
		return math.Mod(a, b)
	}
	unknownOp(bop)
	return 0
}

func sintOp(bop op.BinaryOpType, a, b int64) int64 {
	switch bop {
	case op.Addition:
		return a + b
	case op.Subtraction:
		return a - b
	case op.Multiplication:
		return a * b
	case op.Division:
		checkDivisor(b == 0)
		return a / b
	case op.Remainder:
		checkDivisor(b == 0)
		return a % b
	case op.BitwiseAnd:
		return a & b
	case op.BitwiseOr:
		return a | b
	case op.BitwiseXor:
		return a ^ b
	}
	unknownOp(bop)
	return 0
}

func uintOp(bop op.BinaryOpType, a, b uint64) uint64 {
	switch bop {
	case op.Addition:
		return a + b
	case op.Subtraction:
		return a - b
	case op.Multiplication:
		return a * b
	case op.Division:
		checkDivisor(b == 0)
		return a / b
	case op.Remainder:
		checkDivisor(b == 0)
		return a % b
	case op.BitwiseAnd:
		return a & b
	case op.BitwiseOr:
		return a | b
	case op.BitwiseXor:
		return a ^ b
	}
	unknownOp(bop)
	return 0
}

func checkDivisor(zero bool) {
	if zero {
		errz.Fatalf(errz.ErrDivisionByZero, "integer division by zero")
	}
}

func unknownOp(bop op.BinaryOpType) {
	errz.Fatalf(errz.ErrUnsupportedOperation, "unknown binary operation %d", uint8(bop))
}

// Compare orders two atoms numerically, returning -1, 0 or 1. Operands are
// promoted as in Apply except that chars compare by code point instead of
// being truncated. The boolean is false if the operands are unordered, which
// only happens when a float is NaN.
func Compare(a, b Atom) (int, bool) {
	switch {
	case involves(a, b, FloatKind):
		x, y := a.asFloat(), b.asFloat()
		if math.IsNaN(x) || math.IsNaN(y) {
			return 0, false
		}
		return cmp3(x < y, x > y), true
	case involves(a, b, SIntKind):
		x, y := a.asSigned(), b.asSigned()
		return cmp3(x < y, x > y), true
	default:
		// UInt and Char bits are both non-negative integers.
		return cmp3(a.bits < b.bits, a.bits > b.bits), true
	}
}

// CompareOp evaluates the comparison cop between two atoms. Equal uses
// numeric equality, so UInt(1) and SInt(1) compare equal here even though
// Atom.Equal reports them as different values.
func CompareOp(cop op.CompareOpType, a, b Atom) bool {
	c, ok := Compare(a, b)
	if !ok {
		return false
	}
	switch cop {
	case op.Equal:
		return c == 0
	case op.GreaterThan:
		return c > 0
	case op.GreaterThanOrEqual:
		return c >= 0
	case op.LessThan:
		return c < 0
	case op.LessThanOrEqual:
		return c <= 0
	}
	errz.Fatalf(errz.ErrUnsupportedOperation, "unknown comparison %d", uint8(cop))
	return false
}

func (a Atom) asSigned() int64 {
	if a.kind == CharKind {
		return int64(rune(uint32(a.bits)))
	}
	return int64(a.bits)
}

func cmp3(less, greater bool) int {
	switch {
	case less:
		return -1
	case greater:
		return 1
	default:
		return 0
	}
}
