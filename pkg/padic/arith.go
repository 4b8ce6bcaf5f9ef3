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
	"github.com/consensys/go-padic/pkg/digits"
	"github.com/consensys/go-padic/pkg/util/math"
)

// Add returns x + y.  This fails only if x and y have incompatible policies.
func (x Element) Add(y Element) (Element, error) {
	policy, err := join(x.policy, y.policy)
	if err != nil {
		return Element{}, err
	}
	//
	return combine(policy, x, y, policy.ctx.radix.Add), nil
}

// Sub returns x - y.  This fails only if x and y have incompatible policies.
func (x Element) Sub(y Element) (Element, error) {
	policy, err := join(x.policy, y.policy)
	if err != nil {
		return Element{}, err
	}
	//
	return combine(policy, x, y, policy.ctx.radix.Sub), nil
}

// combine applies a digit-wise operation with carry (i.e. addition or
// subtraction).  Digits are aligned at the lower of the two valuations, and
// computed up to the least absolute precision.  Any cancellation of leading
// digits is reflected in the valuation of the result.
func combine(policy *Policy, x, y Element, fn func(a, b []uint32, n int) []uint32) Element {
	var abs = dispatch[policy.kind].add(x, y)
	//
	if abs.IsInfinite() {
		// Only exact zeros have infinite precision
		return Zero(policy)
	}
	//
	var (
		hi = abs.Int()
		lo = x.Valuation().Min(y.Valuation()).MinInt(hi)
		n  = hi - lo
	)
	//
	return build(policy, lo, fn(x.value.Window(lo, hi), y.value.Window(lo, hi), n), abs)
}

// Neg returns -x.
func (x Element) Neg() Element {
	if x.abs.IsInfinite() {
		return x
	}
	//
	var (
		hi = x.abs.Int()
		lo = x.Valuation().Int()
	)
	//
	return build(x.policy, lo, x.policy.ctx.radix.Neg(x.value.Window(lo, hi), hi-lo), x.abs)
}

// Mul returns x * y.  This fails only if x and y have incompatible policies.
func (x Element) Mul(y Element) (Element, error) {
	policy, err := join(x.policy, y.policy)
	if err != nil {
		return Element{}, err
	}
	//
	return mul(policy, x, y), nil
}

// mul multiplies the unit parts, whose valuations add.
func mul(policy *Policy, x, y Element) Element {
	var abs = dispatch[policy.kind].mul(x, y)
	//
	if abs.IsInfinite() {
		return Zero(policy)
	} else if x.value.IsZero() || y.value.IsZero() {
		return build(policy, 0, nil, abs)
	}
	//
	var (
		lo = x.value.Valuation().Int() + y.value.Valuation().Int()
		n  = abs.Int() - lo
	)
	//
	return build(policy, lo, policy.ctx.radix.Mul(x.value.Digits(), y.value.Digits(), n), abs)
}

// Pow returns xᵏ, computed by repeated squaring.
func (x Element) Pow(k uint) Element {
	var res = One(x.policy)
	//
	for base := x; k > 0; k >>= 1 {
		if k&1 == 1 {
			res = mul(x.policy, res, base)
		}
		//
		if k > 1 {
			base = mul(x.policy, base, base)
		}
	}
	//
	return res
}

// ShiftLeft returns x·pᵏ.  A negative shift is a floor division by p⁻ᵏ.
func (x Element) ShiftLeft(k int) Element {
	if k < 0 {
		return x.ShiftRight(-k)
	} else if x.abs.IsInfinite() {
		return x
	}
	//
	abs := x.abs.Add(k)
	//
	if x.policy.kind == FixedModulus {
		abs = x.abs
	}
	//
	return build(x.policy, 0, nil, abs).with(x.value.Shift(k))
}

// ShiftRight returns x // pᵏ.  For rings, this drops the lowest k digits and
// the absolute precision falls by k (except for fixed modulus rings, which
// retain their modulus).  For fields, this is an exact division.  A negative
// shift multiplies by p⁻ᵏ.
func (x Element) ShiftRight(k int) Element {
	if k < 0 {
		return x.ShiftLeft(-k)
	} else if x.abs.IsInfinite() {
		return x
	}
	//
	var (
		abs = dispatch[x.policy.kind].shift(x, k)
		seq = x.value.Shift(-k)
	)
	//
	if !x.policy.field {
		return build(x.policy, 0, seq.Window(0, seq.End(0)), abs)
	}
	//
	return build(x.policy, 0, nil, abs).with(seq)
}

// FloorDivP returns x // p.
func (x Element) FloorDivP() Element {
	return x.ShiftRight(1)
}

// with replaces the digits of an element by a given sequence, applying the
// cap and truncating as necessary.
func (x Element) with(seq digits.Sequence) Element {
	if seq.IsZero() {
		return build(x.policy, 0, nil, x.abs)
	}
	//
	return build(x.policy, seq.Valuation().Int(), seq.Digits(), x.abs)
}

// ReducePrecision returns x with its absolute precision lowered to at most n.
// Under a fixed modulus, the precision is unchanged but digits at exponents n
// and above are dropped.
func (x Element) ReducePrecision(n int) Element {
	if !x.policy.field {
		n = max(n, 0)
	}
	//
	if x.policy.kind == FixedModulus {
		return Element{x.policy, x.value.Truncate(n), x.abs}
	}
	//
	return build(x.policy, 0, nil, x.abs.Min(math.Finite(n))).with(x.value)
}
