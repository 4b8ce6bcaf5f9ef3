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
package math

import (
	"fmt"
	"math"
)

// PosInfinity represents positive infinity.
var PosInfinity = InfInt{math.MaxInt, true}

// InfInt represents an integer value which can, additionally, be positive
// infinity.  This is used to report precisions and valuations, where an exact
// value (e.g. an exact zero) has infinite precision.
type InfInt struct {
	// value of this integer, which is meaningless for infinity.
	val int
	// inf indicates whether this is positive infinity.
	inf bool
}

// Finite constructs a finite (potentially infinite) integer.
func Finite(val int) InfInt {
	return InfInt{val, false}
}

// IsFinite returns true if this represents a finite integer value.
func (p InfInt) IsFinite() bool {
	return !p.inf
}

// IsInfinite returns true if this represents positive infinity.
func (p InfInt) IsInfinite() bool {
	return p.inf
}

// Int converts a potentially infinite integer into a finite value.  This will
// panic if this value is infinite.
func (p InfInt) Int() int {
	if p.inf {
		panic("cannot cast infinity into an integer")
	}
	//
	return p.val
}

// Add a finite amount to this (potentially infinite) integer.  Adding anything
// to infinity leaves infinity.
func (p InfInt) Add(n int) InfInt {
	if p.inf {
		return p
	}
	//
	return InfInt{p.val + n, false}
}

// Plus adds two (potentially infinite) integers together.
func (p InfInt) Plus(o InfInt) InfInt {
	if p.inf || o.inf {
		return PosInfinity
	}
	//
	return InfInt{p.val + o.val, false}
}

// Cmp performs a comparison of two (potentially infinite) integer values.
func (p InfInt) Cmp(o InfInt) int {
	switch {
	case p.inf && o.inf:
		return 0
	case p.inf:
		return 1
	case o.inf:
		return -1
	case p.val < o.val:
		return -1
	case p.val > o.val:
		return 1
	default:
		return 0
	}
}

// CmpInt compares a potentially infinite integer value against a finite integer
// value.
func (p InfInt) CmpInt(other int) int {
	return p.Cmp(Finite(other))
}

// Min determines the least of two values.
func (p InfInt) Min(o InfInt) InfInt {
	if p.Cmp(o) <= 0 {
		return p
	}
	//
	return o
}

// Max determines the greatest of two values.
func (p InfInt) Max(o InfInt) InfInt {
	if p.Cmp(o) >= 0 {
		return p
	}
	//
	return o
}

// MinInt returns the least of this value and a finite value, which is always
// finite.
func (p InfInt) MinInt(o int) int {
	if p.inf || o < p.val {
		return o
	}
	//
	return p.val
}

func (p InfInt) String() string {
	if p.inf {
		return "+∞"
	}
	//
	return fmt.Sprintf("%d", p.val)
}
