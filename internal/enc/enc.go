// Package enc implements the Encoding manager (C4): the boolean ADD
// substrate (wired to github.com/dalzilio/rudd) plus the process-wide
// registry mapping each fully-qualified timed expression to the Encoding
// that represents it, honoring the four operand-family shapes (boolean,
// monolithic, algebraic, enumerative) and I3 (registration uniqueness)
// and I4 (little-endian DDVector ordering).
package enc

import (
	"sync"

	"github.com/dalzilio/rudd"
	"github.com/mwolf76/gnuSMV/internal/errs"
	"github.com/mwolf76/gnuSMV/internal/fqx"
	"github.com/mwolf76/gnuSMV/internal/typesys"
)

// Shape classifies how an Encoding packs its underlying DD(s).
type Shape int

const (
	ShapeBoolean Shape = iota
	ShapeMonolithic
	ShapeAlgebraic
	ShapeArray
)

// Encoding is the DD (or DDVector, or nested array of Encodings) bound to
// one fully-qualified timed expression.
type Encoding struct {
	Shape Shape
	Type  *typesys.Type

	Mono *DD // ShapeBoolean / ShapeMonolithic

	// Digits holds nibble-width DDs, little-endian (I4): Digits[0] is the
	// least-significant nibble.
	Digits []*DD // ShapeAlgebraic

	Elems []*Encoding // ShapeArray
}

// Mgr is the process-wide EncodingMgr.
type Mgr struct {
	mu       sync.Mutex
	sub      *Substrate
	registry map[string]*Encoding
}

func New(sub *Substrate) *Mgr {
	return &Mgr{sub: sub, registry: make(map[string]*Encoding)}
}

func (m *Mgr) Substrate() *Substrate { return m.sub }

// RegisterEncoding binds fqe to enc. I3: a given fqe may only ever be
// registered once; a second registration with an encoding that is not
// the same object is a conflict.
func (m *Mgr) RegisterEncoding(fqe fqx.FQExpr, enc *Encoding) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := fqe.Key()
	if existing, ok := m.registry[k]; ok {
		if existing != enc {
			return errs.New(errs.KindEncodingRegistryConflict, "%s already has an encoding", fqe)
		}
		return nil
	}
	m.registry[k] = enc
	return nil
}

// FindEncoding looks up the Encoding previously registered for fqe.
func (m *Mgr) FindEncoding(fqe fqx.FQExpr) (*Encoding, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.registry[fqe.Key()]
	return e, ok
}

// MakeEncoding allocates a fresh Encoding of the shape dictated by t,
// filling it with freshly-allocated boolean variables (make_bit), and
// registers it against fqe. Calling MakeEncoding twice for the same fqe
// returns the first Encoding unchanged (idempotent allocation), matching
// register_encoding/find_encoding's combined contract in §4.4.
func (m *Mgr) MakeEncoding(fqe fqx.FQExpr, t *typesys.Type) (*Encoding, error) {
	if existing, ok := m.FindEncoding(fqe); ok {
		return existing, nil
	}
	enc, err := m.buildEncoding(t)
	if err != nil {
		return nil, err
	}
	if err := m.RegisterEncoding(fqe, enc); err != nil {
		return nil, err
	}
	return enc, nil
}

func (m *Mgr) buildEncoding(t *typesys.Type) (*Encoding, error) {
	switch {
	case typesys.IsArray(t):
		elems := make([]*Encoding, t.Size)
		for i := range elems {
			e, err := m.buildEncoding(t.Elem)
			if err != nil {
				return nil, err
			}
			elems[i] = e
		}
		return &Encoding{Shape: ShapeArray, Type: t, Elems: elems}, nil

	case typesys.IsBoolean(t):
		bit, err := m.sub.Bit()
		if err != nil {
			return nil, err
		}
		return &Encoding{Shape: ShapeBoolean, Type: t, Mono: bit}, nil

	case typesys.IsEnumerative(t):
		width := enumOrdinalWidth(len(t.Literals))
		dd, err := m.makeBits(width, false)
		if err != nil {
			return nil, err
		}
		return &Encoding{Shape: ShapeMonolithic, Type: t, Mono: dd}, nil

	case typesys.IsAlgebraic(t):
		n := typesys.NibbleWidth(t)
		if n <= 0 {
			n = 1
		}
		digits := make([]*DD, n)
		for i := range digits {
			d, err := m.makeBits(4, false)
			if err != nil {
				return nil, err
			}
			digits[i] = d
		}
		// the sign lives in the top bit of the most-significant nibble.
		if typesys.IsSigned(t) {
			digits[len(digits)-1].Signed = true
		}
		return &Encoding{Shape: ShapeAlgebraic, Type: t, Digits: digits}, nil

	default:
		return nil, errs.New(errs.KindInternal, "no encoding shape for type family %d", t.Family)
	}
}

func enumOrdinalWidth(nLiterals int) int {
	w := 1
	for (1 << w) < nLiterals {
		w++
	}
	return w
}

// makeBits allocates width fresh boolean variables packed LSB-first into
// one DD handle (the Monolithic family's composite and every algebraic
// nibble bottom out here; Boolean encodings use Substrate.Bit directly).
func (m *Mgr) makeBits(width int, signed bool) (*DD, error) {
	dd := &DD{Width: width, Signed: signed, Bits: make([]rudd.Node, width)}
	for i := 0; i < width; i++ {
		bit, err := m.sub.bit()
		if err != nil {
			return nil, err
		}
		dd.Bits[i] = bit
	}
	return dd, nil
}

// Zero, One, Base and Constant are the EncodingMgr's literal-construction
// operations (§4.4), thin forwards onto the Substrate that keep callers
// from having to reach past the manager.
func (m *Mgr) Zero(width int) *DD { return m.sub.Zero(width) }
func (m *Mgr) One(width int) *DD  { return m.sub.One(width) }
func (m *Mgr) Base() int64        { return m.sub.Base() }
func (m *Mgr) Constant(v int64, width int, signed bool) *DD {
	return m.sub.Constant(v, width, signed)
}

// ZeroVector and OneVector build an all-zero / value-one DDVector with
// nDigits little-endian nibbles, for algebraic-family literals.
func (m *Mgr) ZeroVector(nDigits int) []*DD {
	v := make([]*DD, nDigits)
	for i := range v {
		v[i] = m.Zero(4)
	}
	return v
}

func (m *Mgr) OneVector(nDigits int) []*DD {
	v := m.ZeroVector(nDigits)
	if nDigits > 0 {
		v[0] = m.Constant(1, 4, false)
	}
	return v
}

// ConstantVector splits value into nDigits little-endian (I4) nibbles,
// each a 4-bit monolithic constant DD — an algebraic literal.
func (m *Mgr) ConstantVector(value int64, nDigits int, signed bool) []*DD {
	v := make([]*DD, nDigits)
	for i := 0; i < nDigits; i++ {
		nibble := (value >> uint(4*i)) & 0xF
		v[i] = m.Constant(nibble, 4, signed && i == nDigits-1)
	}
	return v
}

// FreshBit allocates one fresh boolean variable as a width-1 DD
// (make_bit, exposed at the manager level for the compiler's MUX
// activation witnesses).
func (m *Mgr) FreshBit() (*DD, error) { return m.sub.Bit() }

// FreshDigits allocates nDigits fresh nibble-monolithic digit DDs — the
// "auto-DDs" an algebraic MicroDescriptor's result vector is made of
// (make_auto_ddvect), not yet tied to any operand by an ADD-level
// operation.
func (m *Mgr) FreshDigits(nDigits int) ([]*DD, error) {
	v := make([]*DD, nDigits)
	for i := 0; i < nDigits; i++ {
		d, err := m.makeBits(4, false)
		if err != nil {
			return nil, err
		}
		v[i] = d
	}
	return v, nil
}
