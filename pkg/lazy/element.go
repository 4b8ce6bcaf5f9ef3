// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package lazy

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/go-padic/pkg/digits"
	"github.com/consensys/go-padic/pkg/padic"
	"github.com/consensys/go-padic/pkg/util/math"
	"github.com/consensys/go-padic/smallfield"
)

// Element is a handle on a lazily evaluated p-adic number within some ring.
// Digits are computed on demand and memoised, hence handles are cheap to copy
// and share.  A handle may bound the absolute precision to which its number is
// known (e.g. after conversion from a bounded element).  Arithmetic which
// cannot otherwise fail carries any error in the resulting handle, where it is
// reported by every subsequent operation.
type Element struct {
	ring *Ring
	id   NodeID
	// absolute precision of this handle
	prec math.InfInt
	// sticky error
	err error
}

// ============================================================================
// Construction
// ============================================================================

// Zero returns an exact zero.
func (r *Ring) Zero() Element {
	return r.FromInt64(0)
}

// One returns the multiplicative identity.
func (r *Ring) One() Element {
	return r.FromInt64(1)
}

// FromInt64 constructs an element from a given integer.
func (r *Ring) FromInt64(x int64) Element {
	return r.FromBig(big.NewInt(x))
}

// FromBig constructs an element from a given (arbitrary sized) integer.
func (r *Ring) FromBig(x *big.Int) Element {
	return r.constant(x, big.NewInt(1))
}

// FromRat constructs an element from a given rational.
func (r *Ring) FromRat(x *big.Rat) Element {
	return r.constant(x.Num(), x.Denom())
}

// FromRational constructs the element num/den, failing if den is zero.
func (r *Ring) FromRational(num, den *big.Int) (Element, error) {
	if den.Sign() == 0 {
		return Element{}, fmt.Errorf("%w: zero denominator", padic.ErrInvalidOperation)
	}
	//
	return r.constant(num, den), nil
}

// FromBounded converts a bounded element into this ring.  The result is known
// to the same absolute precision.
func (r *Ring) FromBounded(x padic.Element) (Element, error) {
	if x.Policy().Prime() != r.Prime() {
		return Element{}, fmt.Errorf("%w: cannot convert %d-adic element into %s", padic.ErrInvalidOperation,
			x.Policy().Prime(), r)
	}
	//
	return r.FromRat(x.Rat()).AtPrecisionAbsolute(x.PrecisionAbsolute()), nil
}

func (r *Ring) constant(num, den *big.Int) Element {
	var radix = r.ctx.Radix()
	// Obtain lock
	r.mux.Lock()
	defer r.mux.Unlock()
	//
	if num.Sign() == 0 {
		id := r.push(0, zeroGen{})
		r.nodes[id].zero = true
		//
		return Element{r, id, math.PosInfinity, nil}
	}
	//
	var (
		vn, un = radix.Split(num)
		vd, ud = radix.Split(den)
		gen    = newConstGen(uint64(r.Prime()), un, ud)
	)
	//
	return Element{r, r.push(vn-vd, gen), math.PosInfinity, nil}
}

// node constructs an element for a new node.
func (r *Ring) node(start int, gen generator, prec math.InfInt) Element {
	// Obtain lock
	r.mux.Lock()
	defer r.mux.Unlock()
	//
	return Element{r, r.push(start, gen), prec, nil}
}

// start returns the lower bound on the valuation of a given node.
func (r *Ring) start(id NodeID) int {
	// Obtain lock
	r.mux.Lock()
	defer r.mux.Unlock()
	//
	return r.nodes[id].start
}

// ============================================================================
// Accessors
// ============================================================================

// Ring returns the ring of this element.
func (x Element) Ring() *Ring {
	return x.ring
}

// Err returns the error carried by this handle, if any.
func (x Element) Err() error {
	return x.err
}

// PrecisionAbsolute returns the absolute precision of this handle, which is +∞
// unless explicitly bounded.
func (x Element) PrecisionAbsolute() math.InfInt {
	return x.prec
}

// PrecisionRelative returns the number of digits known beyond the valuation.
func (x Element) PrecisionRelative() (math.InfInt, error) {
	if x.err != nil {
		return math.InfInt{}, x.err
	} else if x.prec.IsInfinite() {
		return math.PosInfinity, nil
	}
	//
	v, err := x.Valuation()
	if err != nil {
		return math.InfInt{}, err
	}
	//
	return math.Finite(x.prec.Int() - v.Int()), nil
}

// Valuation returns the exponent of the first non-zero digit.  This is +∞ for
// an exact zero and, when no non-zero digit is known, the absolute precision.
// This fails if no non-zero digit is found amongst the halting digits.
func (x Element) Valuation() (math.InfInt, error) {
	if x.err != nil {
		return math.InfInt{}, x.err
	}
	// Obtain lock
	x.ring.mux.Lock()
	defer x.ring.mux.Unlock()
	//
	return x.valuation()
}

// valuation implements Valuation.  The mutex must be held.
func (x Element) valuation() (math.InfInt, error) {
	var (
		r    = x.ring
		halt = r.halting(x.id)
	)
	//
	if r.nodes[x.id].zero {
		return math.PosInfinity, nil
	}
	//
	v, found, err := r.search(x.id, x.prec.MinInt(halt))
	//
	switch {
	case err != nil:
		return math.InfInt{}, err
	case found:
		return math.Finite(v), nil
	case x.prec.CmpInt(halt) <= 0:
		return x.prec, nil
	}
	//
	return math.InfInt{}, fmt.Errorf("%w: no non-zero digit amongst first %d", padic.ErrPrecision,
		r.options.HaltingDigits)
}

// Digit returns the digit at exponent i, which must be below the absolute
// precision.
func (x Element) Digit(i int) (uint32, error) {
	if x.err != nil {
		return 0, x.err
	} else if x.prec.CmpInt(i) <= 0 {
		return 0, fmt.Errorf("%w: digit %d beyond precision %s", padic.ErrPrecision, i, x.prec)
	}
	// Obtain lock
	x.ring.mux.Lock()
	defer x.ring.mux.Unlock()
	//
	return x.ring.digit(x.id, i)
}

// Digits returns the digits of this element below exponent n (or the absolute
// precision, whichever is lower).
func (x Element) Digits(n int) (digits.Sequence, error) {
	if x.err != nil {
		return digits.Sequence{}, x.err
	}
	// Obtain lock
	x.ring.mux.Lock()
	defer x.ring.mux.Unlock()
	//
	var (
		lo = x.ring.nodes[x.id].start
		hi = x.prec.MinInt(n)
	)
	//
	if hi <= lo {
		return digits.Sequence{}, nil
	}
	//
	ds, err := x.ring.window(x.id, lo, hi)
	if err != nil {
		return digits.Sequence{}, err
	}
	//
	return digits.NewSequence(lo, ds), nil
}

// ============================================================================
// Precision
// ============================================================================

// AtPrecisionAbsolute bounds the absolute precision of this element by n.
func (x Element) AtPrecisionAbsolute(n math.InfInt) Element {
	if x.err == nil {
		x.prec = x.prec.Min(n)
	}
	//
	return x
}

// At is shorthand for bounding the absolute precision by a finite n.
func (x Element) At(n int) Element {
	return x.AtPrecisionAbsolute(math.Finite(n))
}

// AtPrecisionRelative bounds the relative precision of this element by n.
// This requires the valuation, which is determined by searching the digits.
func (x Element) AtPrecisionRelative(n int) (Element, error) {
	v, err := x.Valuation()
	//
	if err != nil {
		return Element{}, err
	}
	//
	return x.AtPrecisionAbsolute(v.Add(n)), nil
}

// Approximate converts this element into a bounded element under a given
// policy, retaining as many digits as the policy permits.
func (x Element) Approximate(policy *padic.Policy) (padic.Element, error) {
	var hi = math.Finite(policy.Cap())
	//
	if x.err != nil {
		return padic.Element{}, x.err
	} else if policy.Prime() != x.ring.Prime() {
		return padic.Element{}, fmt.Errorf("%w: cannot approximate %d-adic element in %s",
			padic.ErrInvalidOperation, x.ring.Prime(), policy)
	}
	//
	if policy.Kind() == padic.CappedRelative {
		v, err := x.Valuation()
		//
		if err != nil {
			return padic.Element{}, err
		} else if v.IsInfinite() {
			return padic.Zero(policy), nil
		}
		//
		hi = v.Add(policy.Cap())
	}
	//
	abs := x.prec.Min(hi)
	//
	seq, err := x.Digits(abs.Int())
	if err != nil {
		return padic.Element{}, err
	} else if seq.IsZero() {
		return padic.FromDigits(policy, 0, nil, abs)
	}
	//
	return padic.FromDigits(policy, seq.Valuation().Int(), seq.Digits(), abs)
}

// ============================================================================
// Arithmetic
// ============================================================================

// check that two handles can be combined.
func (x Element) check(y Element) error {
	switch {
	case x.err != nil:
		return x.err
	case y.err != nil:
		return y.err
	case x.ring != y.ring:
		return fmt.Errorf("%w: elements of different rings", padic.ErrInvalidOperation)
	}
	//
	return nil
}

// Add returns x + y.
func (x Element) Add(y Element) Element {
	if err := x.check(y); err != nil {
		return Element{err: err}
	}
	//
	var (
		r     = x.ring
		start = min(r.start(x.id), r.start(y.id))
	)
	//
	return r.node(start, &addGen{a: x.id, b: y.id}, x.prec.Min(y.prec))
}

// Sub returns x - y.
func (x Element) Sub(y Element) Element {
	if err := x.check(y); err != nil {
		return Element{err: err}
	}
	//
	var (
		r     = x.ring
		start = min(r.start(x.id), r.start(y.id))
	)
	//
	return r.node(start, &subGen{a: x.id, b: y.id}, x.prec.Min(y.prec))
}

// Neg returns -x.
func (x Element) Neg() Element {
	if x.err != nil {
		return x
	}
	//
	return x.ring.node(x.ring.start(x.id), &negGen{a: x.id}, x.prec)
}

// Mul returns x * y.
func (x Element) Mul(y Element) Element {
	if err := x.check(y); err != nil {
		return Element{err: err}
	}
	//
	var (
		r      = x.ring
		sx, sy = r.start(x.id), r.start(y.id)
		// min(px + vy, py + vx)
		prec = x.prec.Add(sy).Min(y.prec.Add(sx))
	)
	//
	return r.node(sx+sy, &mulGen{a: x.id, b: y.id}, prec)
}

// Pow returns xᵏ, computed by repeated squaring.
func (x Element) Pow(k uint) Element {
	if x.err != nil {
		return x
	}
	//
	var res = x.ring.One()
	//
	for base := x; k > 0; k >>= 1 {
		if k&1 == 1 {
			res = res.Mul(base)
		}
		//
		if k > 1 {
			base = base.Mul(base)
		}
	}
	//
	return res
}

// ShiftLeft returns x·pᵏ, where k may be negative.
func (x Element) ShiftLeft(k int) Element {
	if x.err != nil {
		return x
	}
	//
	return x.ring.node(x.ring.start(x.id)+k, &shiftGen{x.id, k}, x.prec.Add(k))
}

// ShiftRight returns x·p⁻ᵏ, which is exact.
func (x Element) ShiftRight(k int) Element {
	return x.ShiftLeft(-k)
}

// FloorDivP returns x // p, dropping any digits at negative exponents.
func (x Element) FloorDivP() Element {
	if x.err != nil {
		return x
	}
	//
	y := x.ShiftRight(1)
	//
	return x.ring.node(max(x.ring.start(y.id), 0), &truncGen{y.id}, y.prec)
}

// Div returns x / y, where y need only be non-zero.  The valuation of y is
// determined by searching its digits, and this fails if y is zero (to its
// precision) or has no non-zero digit amongst the halting digits.
func (x Element) Div(y Element) (Element, error) {
	if err := x.check(y); err != nil {
		return Element{}, err
	}
	//
	var (
		r     = x.ring
		field = r.ctx.Radix().Field()
	)
	// Obtain lock
	r.mux.Lock()
	defer r.mux.Unlock()
	//
	vb, err := y.valuation()
	//
	switch {
	case err != nil:
		return Element{}, err
	case vb.Cmp(y.prec) >= 0:
		return Element{}, fmt.Errorf("%w: division by zero", padic.ErrInvalidOperation)
	}
	//
	var (
		v  = vb.Int()
		sa = r.nodes[x.id].start
		// min(pa, pb - vb + sa) - vb
		prec = x.prec.Min(y.prec.Add(sa - v)).Add(-v)
	)
	//
	u0, err := r.digit(y.id, v)
	if err != nil {
		return Element{}, err
	}
	//
	inv := field.Inverse(smallfield.Element{u0})[0]
	//
	return Element{r, r.push(sa-v, &divGen{a: x.id, b: y.id, vb: v, inv: uint64(inv)}), prec, nil}, nil
}

// Inverse returns 1 / x.
func (x Element) Inverse() (Element, error) {
	if x.err != nil {
		return Element{}, x.err
	}
	//
	return x.ring.One().Div(x)
}

// Sqrt returns a square root of x, failing if none exists.  For odd p, the
// leading digit of the root is the smaller of the two square roots modulo p.
// For p = 2, the unit part must be 1 mod 8, the root is 1 mod 4 and one digit
// of precision is lost.
func (x Element) Sqrt() (Element, error) {
	if x.err != nil {
		return Element{}, x.err
	}
	//
	var (
		r     = x.ring
		field = r.ctx.Radix().Field()
	)
	// Obtain lock
	r.mux.Lock()
	defer r.mux.Unlock()
	//
	va, err := x.valuation()
	//
	switch {
	case err != nil:
		return Element{}, err
	case va.IsInfinite():
		return x, nil
	case va.Cmp(x.prec) >= 0:
		// An inexact zero O(pⁿ) has square root O(p^⌊n/2⌋).
		n := va.Int()
		return Element{r, r.push(0, zeroGen{}), math.Finite((n - (n & 1)) / 2), nil}, nil
	case va.Int()%2 != 0:
		return Element{}, fmt.Errorf("%w: odd valuation %s", padic.ErrNoSquareRoot, va)
	}
	//
	v := va.Int()
	//
	u0, err := r.digit(x.id, v)
	if err != nil {
		return Element{}, err
	}
	//
	if r.Prime() == 2 {
		return r.sqrt2(x, v)
	}
	//
	s0, ok := field.Sqrt(smallfield.Element{u0})
	//
	if !ok {
		return Element{}, fmt.Errorf("%w: leading digit %d is not a square", padic.ErrNoSquareRoot, u0)
	}
	//
	var (
		inv = field.Inverse(field.Add(s0, s0))
		gen = &sqrtGen{a: x.id, va: v, s0: uint64(s0[0]), inv: uint64(inv[0])}
	)
	//
	return Element{r, r.push(v/2, gen), x.prec.Add(-v / 2), nil}, nil
}

// sqrt2 constructs a square root for p = 2.  Writing x = 2ᵛ(1 + 8c), the root
// is 2ᵛᐟ²(1 + 4t) where t = c - 2t², which is a well-founded self-reference.
// The mutex must be held.
func (r *Ring) sqrt2(x Element, v int) (Element, error) {
	// Unit part must be 1 mod 8
	for _, e := range []int{v + 1, v + 2} {
		if d, err := r.digit(x.id, e); err != nil {
			return Element{}, err
		} else if d != 0 {
			return Element{}, fmt.Errorf("%w: unit part is not 1 mod 8", padic.ErrNoSquareRoot)
		}
	}
	//
	var (
		one  = r.push(0, newConstGen(2, big.NewInt(1), big.NewInt(1)))
		two  = r.push(1, newConstGen(2, big.NewInt(1), big.NewInt(1)))
		four = r.push(2, newConstGen(2, big.NewInt(1), big.NewInt(1)))
		// u = x / 2ᵛ
		u = r.push(r.nodes[x.id].start-v, &shiftGen{x.id, -v})
		// c = (u - 1) / 8
		c1 = r.push(min(r.nodes[u].start, 0), &subGen{a: u, b: one})
		c2 = r.push(r.nodes[c1].start-3, &shiftGen{c1, -3})
		c  = r.push(max(r.nodes[c2].start, 0), &truncGen{c2})
		// t = c - 2t²
		gen = &selfRefGen{}
		t   = r.push(0, gen)
		tt  = r.push(0, &mulGen{a: t, b: t})
		ttt = r.push(1, &mulGen{a: two, b: tt})
		def = r.push(0, &subGen{a: c, b: ttt})
		// s = 2ᵛᐟ²(1 + 4t)
		ft   = r.push(2, &mulGen{a: four, b: t})
		s    = r.push(0, &addGen{a: one, b: ft})
		root = r.push(v/2, &shiftGen{s, v / 2})
	)
	//
	gen.def, gen.bound = def, true
	//
	return Element{r, root, x.prec.Add(-v/2 - 1), nil}, nil
}

// ============================================================================
// Formatting
// ============================================================================

// Format renders the digits of this element from the most significant down,
// such as "...00244200244200244201".  An unbounded element shows n digits,
// whilst a bounded element shows every digit below its precision preceded by
// "?".  Digits at negative exponents follow a point, and for p > 10 digits are
// separated by "|".
func (x Element) Format(n uint) (string, error) {
	if x.err != nil {
		return "", x.err
	}
	//
	var (
		r       = x.ring
		builder strings.Builder
		lo      = min(r.start(x.id), 0)
		hi      = lo + int(n)
		sep     = ""
	)
	//
	if r.Prime() > 10 {
		sep = "|"
	}
	//
	builder.WriteString("...")
	//
	if x.prec.IsFinite() {
		hi = x.prec.Int()
		//
		builder.WriteString("?")
	}
	//
	if hi <= lo {
		return fmt.Sprintf("O(%d^%d)", r.Prime(), hi), nil
	}
	// Obtain lock
	r.mux.Lock()
	defer r.mux.Unlock()
	//
	for e := hi - 1; e >= lo; e-- {
		d, err := r.digit(x.id, e)
		if err != nil {
			return "", err
		}
		//
		builder.WriteString(fmt.Sprintf("%d", d))
		//
		switch {
		case e == 0 && lo < 0:
			builder.WriteString(".")
		case e != lo:
			builder.WriteString(sep)
		}
	}
	//
	return builder.String(), nil
}

func (x Element) String() string {
	if x.err != nil {
		return fmt.Sprintf("<%s>", x.err)
	}
	//
	str, err := x.Format(x.ring.DefaultDigits())
	if err != nil {
		return fmt.Sprintf("<%s>", err)
	}
	//
	return str
}
