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
)

// Kind identifies one of the (closed) set of precision policies.
type Kind uint8

const (
	// FixedModulus elements are held modulo pⁿ, without tracking any loss of
	// precision.
	FixedModulus Kind = iota
	// CappedAbsolute elements track their own absolute precision, which never
	// exceeds the cap.
	CappedAbsolute
	// CappedRelative elements track their own relative precision, which never
	// exceeds the cap.
	CappedRelative
)

var kindNames = [...]string{"fixed-mod", "capped-abs", "capped-rel"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	//
	return fmt.Sprintf("kind(%d)", k)
}

// ParseKind converts a policy name (e.g. "capped-abs") into its kind.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	//
	return 0, fmt.Errorf("%w: unknown precision policy \"%s\"", ErrInvalidOperation, name)
}

// Policy determines how the elements of a p-adic ring (or field) are
// truncated, and how precision propagates through arithmetic.  Policies are
// immutable.
type Policy struct {
	ctx  *Context
	kind Kind
	cap  int
	// field is only ever set for capped relative policies, and permits
	// elements of negative valuation.
	field bool
}

// MakePolicy constructs a policy of a given kind for a given prime and cap,
// within a fresh context whose default digit count matches the cap.
func MakePolicy(kind Kind, p uint32, cap uint) (*Policy, error) {
	ctx, err := NewContext(p, max(cap, 1))
	if err != nil {
		return nil, err
	}
	//
	return ctx.Policy(kind, cap)
}

// Context returns the context of this policy.
func (p *Policy) Context() *Context {
	return p.ctx
}

// Prime returns the prime of this policy.
func (p *Policy) Prime() uint32 {
	return p.ctx.Prime()
}

// Kind returns the kind of this policy.
func (p *Policy) Kind() Kind {
	return p.kind
}

// Cap returns the precision cap of this policy.
func (p *Policy) Cap() int {
	return p.cap
}

// IsField determines whether elements under this policy form a field.
func (p *Policy) IsField() bool {
	return p.field
}

// Field returns the capped relative field into which quotients of this
// policy's elements fall.  Fixed modulus rings have no such field.
func (p *Policy) Field() (*Policy, error) {
	if p.field {
		return p, nil
	} else if p.kind == FixedModulus {
		return nil, fmt.Errorf("%w: fixed modulus rings have no field of fractions", ErrInvalidOperation)
	}
	//
	return &Policy{p.ctx, CappedRelative, p.cap, true}, nil
}

func (p *Policy) String() string {
	var (
		prime = p.Prime()
		kind  = "Ring"
	)
	//
	if p.field {
		kind = "Field"
	}
	//
	switch p.kind {
	case FixedModulus:
		return fmt.Sprintf("%d-adic Ring of fixed modulus %d^%d", prime, prime, p.cap)
	case CappedAbsolute:
		return fmt.Sprintf("%d-adic Ring with capped absolute precision %d", prime, p.cap)
	default:
		return fmt.Sprintf("%d-adic %s with capped relative precision %d", prime, kind, p.cap)
	}
}

// join determines the policy for the result of a binary operation, or fails
// if the two policies are incompatible.  Capped relative ring elements are
// coerced into the corresponding field.
func join(p, q *Policy) (*Policy, error) {
	switch {
	case p == q:
		return p, nil
	case p.Prime() != q.Prime():
		return nil, fmt.Errorf("%w: incompatible primes %d and %d", ErrInvalidOperation, p.Prime(), q.Prime())
	case p.kind != q.kind || p.cap != q.cap:
		return nil, fmt.Errorf("%w: incompatible policies (%s vs %s)", ErrInvalidOperation, p, q)
	case q.field:
		return q, nil
	default:
		return p, nil
	}
}

// ============================================================================
// Precision rules
// ============================================================================

// rules determine how one policy combines precision.  Each function returns
// the absolute precision of its result, before the policy's cap is applied.
type rules struct {
	// limit applies the cap to a result of the given valuation and absolute
	// precision.
	limit func(p *Policy, val math.InfInt, abs math.InfInt) math.InfInt
	// add gives the precision of a sum (or difference).
	add func(x, y Element) math.InfInt
	// mul gives the precision of a product.
	mul func(x, y Element) math.InfInt
	// shift gives the precision after floor division by pᵏ.
	shift func(x Element, k int) math.InfInt
}

// dispatch holds the precision rules for each kind of policy.
var dispatch = [...]rules{
	FixedModulus: {
		limit: func(p *Policy, _ math.InfInt, _ math.InfInt) math.InfInt {
			return math.Finite(p.cap)
		},
		add: func(x, _ Element) math.InfInt {
			return math.Finite(x.policy.cap)
		},
		mul: func(x, _ Element) math.InfInt {
			return math.Finite(x.policy.cap)
		},
		shift: func(x Element, _ int) math.InfInt {
			return math.Finite(x.policy.cap)
		},
	},
	CappedAbsolute: {
		limit: func(p *Policy, _ math.InfInt, abs math.InfInt) math.InfInt {
			return abs.Min(math.Finite(p.cap))
		},
		add: minAbsolute,
		// min(a₁ + v₂, a₂ + v₁)
		mul: func(x, y Element) math.InfInt {
			return x.abs.Plus(y.Valuation()).Min(y.abs.Plus(x.Valuation()))
		},
		shift: shiftAbsolute,
	},
	CappedRelative: {
		limit: func(p *Policy, val math.InfInt, abs math.InfInt) math.InfInt {
			return abs.Min(val.Add(p.cap))
		},
		add: minAbsolute,
		// v₁ + v₂ + min(r₁, r₂)
		mul: func(x, y Element) math.InfInt {
			var (
				val = x.Valuation().Plus(y.Valuation())
				rel = x.PrecisionRelative().Min(y.PrecisionRelative())
			)
			//
			return val.Plus(rel)
		},
		shift: shiftAbsolute,
	},
}

func minAbsolute(x, y Element) math.InfInt {
	return x.abs.Min(y.abs)
}

func shiftAbsolute(x Element, k int) math.InfInt {
	abs := x.abs.Add(-k)
	// Precision of a ring element cannot fall below zero.
	if !x.policy.field && abs.CmpInt(0) < 0 {
		return math.Finite(0)
	}
	//
	return abs
}
