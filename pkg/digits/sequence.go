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
package digits

import (
	"fmt"
	"slices"
	"strings"

	"github.com/consensys/go-padic/pkg/util/math"
)

// Sequence is a finite run of base-p digits d₀,d₁,... representing the value
// d₀pᵛ + d₁pᵛ⁺¹ + ..., where v is the valuation.  A sequence is always held in
// canonical form: its first and last digits are non-zero.  The zero sequence
// has no digits and an infinite valuation.  Sequences are immutable.
type Sequence struct {
	valuation int
	digits    []uint32
}

// NewSequence constructs a canonical sequence from digits starting at a given
// exponent.  Leading zeros raise the valuation, trailing zeros are dropped.
// The digits are copied.
func NewSequence(start int, ds []uint32) Sequence {
	lo := LeadingZeros(ds)
	if lo == len(ds) {
		return Sequence{}
	}
	//
	hi := len(ds)
	for ds[hi-1] == 0 {
		hi--
	}
	//
	return Sequence{start + lo, slices.Clone(ds[lo:hi])}
}

// IsZero checks whether this is the zero sequence.
func (s Sequence) IsZero() bool {
	return len(s.digits) == 0
}

// Valuation returns the exponent of the lowest non-zero digit, or +∞ for the
// zero sequence.
func (s Sequence) Valuation() math.InfInt {
	if s.IsZero() {
		return math.PosInfinity
	}
	//
	return math.Finite(s.valuation)
}

// End returns the exponent just beyond the highest non-zero digit.  For the
// zero sequence, this is the given default.
func (s Sequence) End(otherwise int) int {
	if s.IsZero() {
		return otherwise
	}
	//
	return s.valuation + len(s.digits)
}

// Len returns the number of digits from the lowest to the highest non-zero
// digit (inclusive).
func (s Sequence) Len() int {
	return len(s.digits)
}

// Digit returns the digit at exponent i, which is zero outside the stored
// range.
func (s Sequence) Digit(i int) uint32 {
	return uint32(at(s.digits, i-s.valuation))
}

// Digits returns a copy of the digits, starting from the valuation.
func (s Sequence) Digits() []uint32 {
	return slices.Clone(s.digits)
}

// Window returns the digits for exponents lo, lo+1, ..., hi-1 (zero-filled).
func (s Sequence) Window(lo, hi int) []uint32 {
	res := make([]uint32, max(hi-lo, 0))
	//
	for i := range res {
		res[i] = s.Digit(lo + i)
	}
	//
	return res
}

// Truncate drops all digits at exponents n and above.
func (s Sequence) Truncate(n int) Sequence {
	if s.IsZero() || n >= s.End(0) {
		return s
	} else if n <= s.valuation {
		return Sequence{}
	}
	//
	return NewSequence(s.valuation, s.digits[:n-s.valuation])
}

// Shift multiplies the value by pᵏ, moving every digit up k places.
func (s Sequence) Shift(k int) Sequence {
	if s.IsZero() {
		return s
	}
	//
	return Sequence{s.valuation + k, s.digits}
}

// Equal checks whether two sequences have identical digits.
func (s Sequence) Equal(o Sequence) bool {
	if s.IsZero() || o.IsZero() {
		return s.IsZero() == o.IsZero()
	}
	//
	return s.valuation == o.valuation && slices.Equal(s.digits, o.digits)
}

// String lists the digits from the most significant down to the valuation,
// e.g. "[3 0 4 1]@1".
func (s Sequence) String() string {
	var builder strings.Builder
	//
	builder.WriteString("[")
	//
	for i := len(s.digits) - 1; i >= 0; i-- {
		builder.WriteString(fmt.Sprintf("%d", s.digits[i]))
		//
		if i != 0 {
			builder.WriteString(" ")
		}
	}
	//
	builder.WriteString("]")
	//
	if !s.IsZero() {
		builder.WriteString(fmt.Sprintf("@%d", s.valuation))
	}
	//
	return builder.String()
}
