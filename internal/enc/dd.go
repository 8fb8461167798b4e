package enc

import (
	"github.com/dalzilio/rudd"

	"github.com/mwolf76/gnuSMV/internal/errs"
)

// DD is the ADD handle used throughout the compiler and SAT driver: a
// little-endian (I4) vector of boolean BDD nodes (§6 names the ADD
// package's arbitrary-terminal algebra as an external contract; rudd
// supplies the boolean substrate underneath, and the integer-valued
// arithmetic required by the Monolithic family is built on top as
// fixed-width bit-vector circuits — see DESIGN.md).
type DD struct {
	Width  int
	Signed bool
	Bits   []rudd.Node // LSB first, len == Width
}

// Flatten concatenates a little-endian DDVector's digits into one wide
// bit-vector DD (digit 0's bits are the least significant), the
// representation the ADD package's native relationals/arithmetic operate
// on once a DDVector is treated as a single algebraic value.
func Flatten(v []*DD) *DD {
	var bits []rudd.Node
	signed := false
	for i, d := range v {
		bits = append(bits, d.Bits...)
		if i == len(v)-1 {
			signed = d.Signed
		}
	}
	return &DD{Width: len(bits), Signed: signed, Bits: bits}
}

// Substrate owns the single process-wide rudd.BDD instance and the
// running count of allocated boolean variables (rudd requires a Varnum
// upper bound at construction; we size generously and grow by recreating
// when the bound is hit, mirroring EncodingMgr's lazy bit allocation).
type Substrate struct {
	bdd     *rudd.BDD
	nextVar int
	cap     int
}

func NewSubstrate(initialCap int) (*Substrate, error) {
	if initialCap <= 0 {
		initialCap = 256
	}
	b, err := rudd.New(initialCap, rudd.Nodesize(1<<16), rudd.Cachesize(1<<12))
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, err, "rudd.New")
	}
	return &Substrate{bdd: b, cap: initialCap}, nil
}

func (s *Substrate) grow() error {
	newCap := s.cap * 2
	b, err := rudd.New(newCap, rudd.Nodesize(1<<16), rudd.Cachesize(1<<12))
	if err != nil {
		return errs.Wrap(errs.KindInternal, err, "rudd.New (grow to %d)", newCap)
	}
	s.bdd = b
	s.cap = newCap
	return nil
}

// bit allocates one fresh boolean BDD variable and returns its positive
// literal node — the substrate for make_bit().
func (s *Substrate) bit() (rudd.Node, error) {
	if s.nextVar >= s.cap {
		if err := s.grow(); err != nil {
			return nil, err
		}
	}
	n := s.bdd.Ithvar(s.nextVar)
	s.nextVar++
	return n, nil
}

// --- DD constructors ---

// Bit returns a fresh width-1 DD: a new boolean variable.
func (s *Substrate) Bit() (*DD, error) {
	n, err := s.bit()
	if err != nil {
		return nil, err
	}
	return &DD{Width: 1, Bits: []rudd.Node{n}}, nil
}

// Zero returns the all-zero constant of the given width.
func (s *Substrate) Zero(width int) *DD {
	bits := make([]rudd.Node, width)
	for i := range bits {
		bits[i] = s.bdd.False()
	}
	return &DD{Width: width, Bits: bits}
}

// One returns the constant DD of value 1 at the given width.
func (s *Substrate) One(width int) *DD {
	return s.Constant(1, width, false)
}

// Base returns the literal constant 16: algebraic digits are nibbles.
func (s *Substrate) Base() int64 { return 16 }

// Constant returns the DD representing the fixed integer value at the
// given width/signedness (two's complement for signed).
func (s *Substrate) Constant(value int64, width int, signed bool) *DD {
	bits := make([]rudd.Node, width)
	for i := 0; i < width; i++ {
		if (value>>uint(i))&1 == 1 {
			bits[i] = s.bdd.True()
		} else {
			bits[i] = s.bdd.False()
		}
	}
	return &DD{Width: width, Signed: signed, Bits: bits}
}

// IsConstant reports whether every bit of d is a BDD terminal.
func (d *DD) IsConstant(s *Substrate) bool {
	for _, b := range d.Bits {
		if !isTerminal(s, b) {
			return false
		}
	}
	return true
}

func isTerminal(s *Substrate, n rudd.Node) bool {
	return s.bdd.Equal(n, s.bdd.True()) || s.bdd.Equal(n, s.bdd.False())
}

// IsTrue, IsFalse, Label, Low and High expose the rudd BDD walk primitives
// the SAT driver's CNFization needs (path-to-false enumeration for the
// no-cut strategy, node->variable Tseitin assertions for the cut
// strategy) without leaking the rudd.BDD handle itself outside this
// package.
func (s *Substrate) IsTrue(n rudd.Node) bool    { return s.bdd.Equal(n, s.bdd.True()) }
func (s *Substrate) IsFalse(n rudd.Node) bool   { return s.bdd.Equal(n, s.bdd.False()) }
func (s *Substrate) Label(n rudd.Node) int      { return s.bdd.Label(n) }
func (s *Substrate) Low(n rudd.Node) rudd.Node  { return s.bdd.Low(n) }
func (s *Substrate) High(n rudd.Node) rudd.Node { return s.bdd.High(n) }
func (s *Substrate) Equal(a, b rudd.Node) bool  { return s.bdd.Equal(a, b) }

// Var returns the Ithvar node for boolean-variable level, the node handle
// a witness extraction pass needs to ask the SAT driver for that
// variable's CNF literal (§4.8, Eval's assignment-array contract).
func (s *Substrate) Var(level int) rudd.Node { return s.bdd.Ithvar(level) }

// NumVars reports how many boolean substrate variables have been
// allocated so far (the width an assignment array passed to Eval needs).
func (s *Substrate) NumVars() int { return s.nextVar }

// V returns the constant integer value of d, valid only if IsConstant.
func (d *DD) V(s *Substrate) int64 {
	var v int64
	for i, b := range d.Bits {
		if s.bdd.Equal(b, s.bdd.True()) {
			v |= int64(1) << uint(i)
		}
	}
	if d.Signed && d.Width > 0 && (v>>(uint(d.Width)-1))&1 == 1 {
		v -= int64(1) << uint(d.Width)
	}
	return v
}

// Eval collapses d against a SAT assignment keyed by the substrate's
// boolean-variable index (polarity array indexed by rudd variable level),
// reconstructing the scalar literal the encoding represents (§4.4
// expr(assignment), P8).
func (d *DD) Eval(s *Substrate, assignment []bool) int64 {
	var v int64
	for i, b := range d.Bits {
		bit := evalNode(s, b, assignment)
		if bit {
			v |= int64(1) << uint(i)
		}
	}
	if d.Signed && d.Width > 0 && (v>>(uint(d.Width)-1))&1 == 1 {
		v -= int64(1) << uint(d.Width)
	}
	return v
}

func evalNode(s *Substrate, n rudd.Node, assignment []bool) bool {
	if s.bdd.Equal(n, s.bdd.True()) {
		return true
	}
	if s.bdd.Equal(n, s.bdd.False()) {
		return false
	}
	level := s.bdd.Label(n)
	if level < 0 || level >= len(assignment) {
		return false
	}
	if assignment[level] {
		return evalNode(s, s.bdd.High(n), assignment)
	}
	return evalNode(s, s.bdd.Low(n), assignment)
}
