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
package padic

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/go-padic/pkg/digits"
	"github.com/consensys/go-padic/pkg/util/math"
)

// Element is a p-adic number held to finite precision under some policy.
// Elements are immutable, hence arithmetic always produces a new element.  The
// digits of an element are known below its absolute precision, and zero beyond
// it.  Only an exact zero (under a capped relative policy) has infinite
// absolute precision.
type Element struct {
	policy *Policy
	value  digits.Sequence
	abs    math.InfInt
}

// build constructs an element from digits starting at a given exponent, known
// up to a given absolute precision.  The policy's cap is applied, and the
// digits truncated accordingly.
func build(policy *Policy, lo int, ds []uint32, abs math.InfInt) Element {
	var seq = digits.NewSequence(lo, ds)
	//
	abs = dispatch[policy.kind].limit(policy, seq.Valuation(), abs)
	//
	if abs.IsFinite() {
		seq = seq.Truncate(abs.Int())
	}
	//
	return Element{policy, seq, abs}
}

// Zero returns the zero element of a given policy.  This is an exact zero for
// capped relative policies.
func Zero(policy *Policy) Element {
	if policy.kind == CappedRelative {
		return Element{policy, digits.Sequence{}, math.PosInfinity}
	}
	//
	return Element{policy, digits.Sequence{}, math.Finite(policy.cap)}
}

// One returns the multiplicative identity of a given policy.
func One(policy *Policy) Element {
	return FromInt64(policy, 1)
}

// FromInt64 constructs an element from a given integer.
func FromInt64(policy *Policy, x int64) Element {
	return FromBig(policy, big.NewInt(x))
}

// FromBig constructs an element from a given (arbitrary sized) integer.
func FromBig(policy *Policy, x *big.Int) Element {
	// Integers always have non-negative valuation
	e, _ := FromRational(policy, x, big.NewInt(1))
	//
	return e
}

// FromRat constructs an element from a given rational.
func FromRat(policy *Policy, x *big.Rat) (Element, error) {
	return FromRational(policy, x.Num(), x.Denom())
}

// FromRational constructs the element num/den under a given policy.  This
// fails if the denominator is zero, or when the fraction has negative
// valuation and the policy does not describe a field.
func FromRational(policy *Policy, num, den *big.Int) (Element, error) {
	var radix = policy.ctx.radix
	//
	if den.Sign() == 0 {
		return Element{}, fmt.Errorf("%w: zero denominator", ErrInvalidOperation)
	} else if num.Sign() == 0 {
		return Zero(policy), nil
	}
	//
	val, _ := radix.Expand(num, den, 0)
	//
	if val < 0 && !policy.field {
		return Element{}, fmt.Errorf("%w: %s/%s has negative valuation in %s", ErrInvalidOperation, num, den,
			policy)
	}
	// Determine number of unit digits to expand
	count := policy.cap
	//
	if policy.kind != CappedRelative {
		count -= val
	}
	//
	if count <= 0 {
		return Zero(policy), nil
	}
	//
	_, unit := radix.Expand(num, den, count)
	//
	return build(policy, val, unit, math.Finite(val+count)), nil
}

// FromDigits constructs an element from digits d₀, d₁, ... at exponents start,
// start+1, ... which are known up to a given absolute precision.  This fails
// if a digit is out of range, or the element has negative valuation and the
// policy does not describe a field.
func FromDigits(policy *Policy, start int, ds []uint32, abs math.InfInt) (Element, error) {
	for i, d := range ds {
		if d >= policy.Prime() {
			return Element{}, fmt.Errorf("%w: digit %d at exponent %d out of range", ErrInvalidOperation, d, start+i)
		}
	}
	//
	e := build(policy, start, ds, abs)
	//
	if !policy.field && (e.Valuation().CmpInt(0) < 0) {
		return Element{}, fmt.Errorf("%w: negative valuation in %s", ErrInvalidOperation, policy)
	}
	//
	return e, nil
}

// Policy returns the precision policy of this element.
func (x Element) Policy() *Policy {
	return x.policy
}

// Digits returns the known digits of this element.
func (x Element) Digits() digits.Sequence {
	return x.value
}

// Digit returns the digit at exponent i, which is zero when i is beyond the
// known digits.
func (x Element) Digit(i int) uint32 {
	return x.value.Digit(i)
}

// Valuation returns the exponent of the lowest non-zero digit.  The valuation
// of an inexact zero is its absolute precision, whilst that of an exact zero is
// +∞.
func (x Element) Valuation() math.InfInt {
	return x.value.Valuation().Min(x.abs)
}

// PrecisionAbsolute returns the exponent up to which the digits of this element
// are known.
func (x Element) PrecisionAbsolute() math.InfInt {
	return x.abs
}

// PrecisionRelative returns the number of digits known beyond the valuation.
func (x Element) PrecisionRelative() math.InfInt {
	if x.abs.IsInfinite() {
		return math.PosInfinity
	}
	//
	return math.Finite(x.abs.Int() - x.Valuation().Int())
}

// IsZero checks whether every known digit of this element is zero.
func (x Element) IsZero() bool {
	return x.value.IsZero()
}

// IsExactZero checks whether this element is an exact zero.
func (x Element) IsExactZero() bool {
	return x.value.IsZero() && x.abs.IsInfinite()
}

// IsUnit checks whether this element has valuation zero.
func (x Element) IsUnit() bool {
	return !x.value.IsZero() && x.value.Valuation().CmpInt(0) == 0
}

// unit returns r digits of the unit part of this (non-zero) element.
func (x Element) unit(r int) []uint32 {
	v := x.value.Valuation().Int()
	//
	return x.value.Window(v, v+r)
}

// Lift returns the smallest non-negative integer which this element
// approximates.  This panics if the element has negative valuation.
func (x Element) Lift() *big.Int {
	if x.value.IsZero() {
		return new(big.Int)
	} else if x.value.Valuation().CmpInt(0) < 0 {
		panic("cannot lift element of negative valuation")
	}
	//
	return x.policy.ctx.radix.ToBig(x.value.Window(0, x.value.End(0)))
}

// Rat returns the rational pᵛu, where v is the valuation and u the integer
// formed from the known unit digits.
func (x Element) Rat() *big.Rat {
	if x.value.IsZero() {
		return new(big.Rat)
	}
	//
	var (
		radix = x.policy.ctx.radix
		v     = x.value.Valuation().Int()
		unit  = new(big.Rat).SetInt(radix.ToBig(x.value.Digits()))
	)
	//
	if v < 0 {
		return unit.Quo(unit, new(big.Rat).SetInt(radix.Power(-v)))
	}
	//
	return unit.Mul(unit, new(big.Rat).SetInt(radix.Power(v)))
}

// String renders this element as a power series in p, such as "3 + 2*5 +
// 5^3 + O(5^10)".  Elements of a fixed modulus ring carry no O-term.
func (x Element) String() string {
	var (
		builder strings.Builder
		p       = x.policy.Prime()
		terms   []string
	)
	//
	for i := x.value.End(0) - 1; !x.value.IsZero() && i >= x.value.Valuation().Int(); i-- {
		if d := x.value.Digit(i); d != 0 {
			terms = append(terms, monomial(d, p, i))
		}
	}
	// Terms are listed from the lowest exponent.
	for i := len(terms) - 1; i >= 0; i-- {
		builder.WriteString(terms[i])
		//
		if i != 0 {
			builder.WriteString(" + ")
		}
	}
	//
	switch {
	case x.policy.kind == FixedModulus || x.abs.IsInfinite():
		if len(terms) == 0 {
			return "0"
		}
	case len(terms) == 0:
		builder.WriteString(fmt.Sprintf("O(%s)", power(p, x.abs.Int())))
	default:
		builder.WriteString(fmt.Sprintf(" + O(%s)", power(p, x.abs.Int())))
	}
	//
	return builder.String()
}

func monomial(d uint32, p uint32, exp int) string {
	switch {
	case exp == 0:
		return fmt.Sprintf("%d", d)
	case d == 1:
		return power(p, exp)
	default:
		return fmt.Sprintf("%d*%s", d, power(p, exp))
	}
}

func power(p uint32, exp int) string {
	if exp == 1 {
		return fmt.Sprintf("%d", p)
	}
	//
	return fmt.Sprintf("%d^%d", p, exp)
}
