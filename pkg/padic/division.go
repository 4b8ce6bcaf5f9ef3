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

	"github.com/consensys/go-padic/pkg/util/math"
	log "github.com/sirupsen/logrus"
)

// Quotient is the outcome of a division.  Dividing elements of a capped ring
// yields an element of the corresponding field, in which case Promoted is set.
type Quotient struct {
	Value    Element
	Promoted bool
}

// Div returns x / y.  Within a ring, y must be a unit and the quotient of
// capped elements is promoted into the field of fractions.  Within a field,
// y need only be non-zero.
func (x Element) Div(y Element) (Quotient, error) {
	policy, err := join(x.policy, y.policy)
	//
	switch {
	case err != nil:
		return Quotient{}, err
	case y.value.IsZero():
		return Quotient{}, fmt.Errorf("%w: division by zero", ErrInvalidOperation)
	case !policy.field && !y.IsUnit():
		return Quotient{}, errNonUnit
	case policy.kind == FixedModulus:
		return Quotient{Value: divFixed(policy, x, y)}, nil
	}
	//
	field, err := policy.Field()
	if err != nil {
		return Quotient{}, err
	}
	//
	if field != policy {
		log.Debugf("promoting quotient from %s to %s", policy, field)
	}
	//
	return Quotient{divRelative(field, x, y), field != policy}, nil
}

// divFixed divides by a unit modulo pⁿ.
func divFixed(policy *Policy, x, y Element) Element {
	var (
		radix = policy.ctx.radix
		n     = policy.cap
		inv   = radix.Inverse(y.value.Window(0, n), n)
	)
	//
	return build(policy, 0, radix.Mul(x.value.Window(0, n), inv, n), math.Finite(n))
}

// divRelative divides within a field, where the relative precision of the
// result is the least of its operands.
func divRelative(field *Policy, x, y Element) Element {
	var (
		radix = field.ctx.radix
		vy    = y.value.Valuation().Int()
	)
	//
	if x.abs.IsInfinite() {
		return Zero(field)
	} else if x.value.IsZero() {
		return build(field, 0, nil, x.abs.Add(-vy))
	}
	//
	var (
		vx = x.value.Valuation().Int()
		r  = x.PrecisionRelative().Min(y.PrecisionRelative()).Int()
		q  = radix.Mul(x.unit(r), radix.Inverse(y.unit(r), r), r)
	)
	//
	return build(field, vx-vy, q, math.Finite(vx-vy+r))
}

// Inverse returns 1 / x.
func (x Element) Inverse() (Quotient, error) {
	return One(x.policy).Div(x)
}

// FloorDiv returns x // y.  Writing y = pᵛu for a unit u, this is (x / u) // pᵛ.
// Under a fixed modulus, this is instead (x // pᵛ) / u, so that no digits
// are lost.  Within a field this is simply x / y.
func (x Element) FloorDiv(y Element) (Element, error) {
	policy, err := join(x.policy, y.policy)
	//
	switch {
	case err != nil:
		return Element{}, err
	case y.value.IsZero():
		return Element{}, fmt.Errorf("%w: division by zero", ErrInvalidOperation)
	case policy.field:
		q, err := x.Div(y)
		return q.Value, err
	}
	//
	var (
		radix = policy.ctx.radix
		vy    = y.value.Valuation().Int()
		ry    = y.PrecisionRelative()
	)
	//
	if policy.kind == FixedModulus {
		// Shift first, so the top digits survive modulo pⁿ
		n := policy.cap
		inv := build(policy, 0, radix.Inverse(y.unit(n), n), math.Finite(n))
		//
		return mul(policy, x.ShiftRight(vy), inv), nil
	}
	// Construct u⁻¹ at the precision to which u is known
	r := ry.Int()
	inv := build(policy, 0, radix.Inverse(y.unit(r), r), ry)
	//
	return mul(policy, x, inv).ShiftRight(vy), nil
}
