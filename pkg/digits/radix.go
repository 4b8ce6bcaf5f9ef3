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
	"github.com/consensys/go-padic/smallfield"
)

// Radix implements arithmetic on little-endian arrays of base-p digits,
// truncated to a given number of digits.  That is, every operation computes
// its result modulo pⁿ for a requested n.  Digit arrays shorter than n are
// implicitly padded with zeros.  No operation ever mutates its operands.
type Radix struct {
	p     uint64
	field smallfield.Field
}

// NewRadix constructs a radix for a given prime, which must be less than 2³¹.
func NewRadix(p uint32) (Radix, error) {
	field, err := smallfield.New(p)
	if err != nil {
		return Radix{}, err
	}
	//
	return Radix{uint64(p), field}, nil
}

// Prime returns the base of this radix.
func (r Radix) Prime() uint32 {
	return uint32(r.p)
}

// Field returns the residue field of this radix.
func (r Radix) Field() smallfield.Field {
	return r.field
}

// at returns the ith digit of d, or zero beyond its end.
func at(d []uint32, i int) uint64 {
	if i < 0 || i >= len(d) {
		return 0
	}
	//
	return uint64(d[i])
}

// FromUint64 returns the first n digits of x.
func (r Radix) FromUint64(x uint64, n int) []uint32 {
	res := make([]uint32, max(n, 0))
	//
	for i := range res {
		res[i] = uint32(x % r.p)
		x /= r.p
	}
	//
	return res
}

// Add returns a + b mod pⁿ.
func (r Radix) Add(a, b []uint32, n int) []uint32 {
	var (
		res   = make([]uint32, max(n, 0))
		carry uint64
	)
	//
	for i := range res {
		s := at(a, i) + at(b, i) + carry
		carry = 0
		//
		if s >= r.p {
			s -= r.p
			carry = 1
		}
		//
		res[i] = uint32(s)
	}
	//
	return res
}

// Sub returns a - b mod pⁿ.
func (r Radix) Sub(a, b []uint32, n int) []uint32 {
	var (
		res    = make([]uint32, max(n, 0))
		borrow uint64
	)
	//
	for i := range res {
		x, y := at(a, i), at(b, i)+borrow
		borrow = 0
		//
		if x < y {
			x += r.p
			borrow = 1
		}
		//
		res[i] = uint32(x - y)
	}
	//
	return res
}

// Neg returns -a mod pⁿ.
func (r Radix) Neg(a []uint32, n int) []uint32 {
	return r.Sub(nil, a, n)
}

// Mul returns a * b mod pⁿ using schoolbook multiplication.  Since p < 2³¹,
// each partial product plus carry fits comfortably within a uint64.
func (r Radix) Mul(a, b []uint32, n int) []uint32 {
	res := make([]uint32, max(n, 0))
	//
	for i := 0; i < min(len(a), n); i++ {
		var (
			ai    = uint64(a[i])
			carry uint64
		)
		//
		if ai == 0 {
			continue
		}
		//
		for j := 0; i+j < n; j++ {
			bj := at(b, j)
			// Stop once nothing remains to propagate.
			if j >= len(b) && carry == 0 {
				break
			}
			//
			cur := uint64(res[i+j]) + ai*bj + carry
			res[i+j] = uint32(cur % r.p)
			carry = cur / r.p
		}
	}
	//
	return res
}

// Inverse returns u⁻¹ mod pⁿ, where u must be a unit (i.e. have a non-zero
// first digit).  This uses Newton (Hensel) lifting v ← v(2 - uv), starting from
// the inverse of the first digit in the residue field and doubling the number
// of correct digits on each step.
func (r Radix) Inverse(u []uint32, n int) []uint32 {
	if n <= 0 {
		return []uint32{}
	} else if at(u, 0) == 0 {
		panic("cannot invert non-unit")
	}
	//
	var (
		v   = []uint32{r.field.Inverse(smallfield.Element{u[0]})[0]}
		two = r.FromUint64(2, n)
	)
	//
	for k := 1; k < n; {
		k = min(2*k, n)
		uv := r.Mul(u, v, k)
		v = r.Mul(v, r.Sub(two, uv, k), k)
	}
	//
	return v
}

// Sqrt returns a square root of the unit a, given a known to n digits, or
// false if no square root exists.  For odd p, the result has n digits and its
// first digit is the smaller of the two square roots in the residue field.
// For p = 2, the result has n-1 digits (one digit of precision is lost) and is
// normalised to be 1 mod 4.
func (r Radix) Sqrt(a []uint32, n int) ([]uint32, bool) {
	if n <= 0 {
		return []uint32{}, true
	} else if at(a, 0) == 0 {
		panic("square root of non-unit")
	} else if r.p == 2 {
		return r.sqrt2(a, n)
	}
	//
	root, ok := r.field.Sqrt(smallfield.Element{a[0]})
	if !ok {
		return nil, false
	}
	//
	s := []uint32{root[0]}
	//
	for k := 1; k < n; {
		k = min(2*k, n)
		// s ← s - (s² - a) / 2s
		e := r.Sub(r.Mul(s, s, k), a, k)
		w := r.Inverse(r.Add(s, s, k), k)
		s = r.Sub(s, r.Mul(e, w, k), k)
	}
	//
	return s, true
}

// sqrt2 computes square roots for p = 2.  Any odd square is 1 mod 8, so we
// write a = 1 + 8c and s = 1 + 4t, giving t + 2t² = c.  This is lifted using
// Newton's method on g(t) = 2t² + t - c, whose derivative 4t + 1 is always a
// unit.
func (r Radix) sqrt2(a []uint32, n int) ([]uint32, bool) {
	// Check a is 1 mod 8 (so far as it is known)
	for i := 0; i < min(n, 3); i++ {
		if (i == 0) != (at(a, i) == 1) {
			return nil, false
		}
	}
	//
	m := n - 1
	//
	if m <= 2 {
		return []uint32{1, 0}[:max(m, 0)], true
	}
	//
	var (
		k    = m - 2
		c    = r.shiftDown(a, 3, k)
		one  = r.FromUint64(1, k)
		two  = r.FromUint64(2, k)
		four = r.FromUint64(4, k)
		t    = []uint32{c[0]}
	)
	//
	for j := 1; j < k; {
		j = min(2*j, k)
		// g = 2t² + t - c
		g := r.Sub(r.Add(r.Mul(two, r.Mul(t, t, j), j), t, j), c, j)
		// t ← t - g / (4t + 1)
		d := r.Add(r.Mul(four, t, j), one, j)
		t = r.Sub(t, r.Mul(g, r.Inverse(d, j), j), j)
	}
	// s = 1 + 4t
	s := make([]uint32, m)
	s[0] = 1
	copy(s[2:], t)
	//
	return s, true
}

// shiftDown returns the n digits of a starting from digit k.
func (r Radix) shiftDown(a []uint32, k int, n int) []uint32 {
	res := make([]uint32, n)
	//
	for i := range res {
		res[i] = uint32(at(a, i+k))
	}
	//
	return res
}

// LeadingZeros returns the number of zero digits at the start of d, which is
// len(d) when every digit is zero.
func LeadingZeros(d []uint32) int {
	for i, x := range d {
		if x != 0 {
			return i
		}
	}
	//
	return len(d)
}
