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
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/consensys/go-padic/pkg/util/assert"
	"github.com/google/go-cmp/cmp"
)

// ============================================================================
// Addition / Subtraction / Multiplication
// ============================================================================

func Test_Add_00(t *testing.T) {
	binaryCheck(t, 2, 16, func(x, y *big.Int) *big.Int { return new(big.Int).Add(x, y) }, Radix.Add)
}

func Test_Add_01(t *testing.T) {
	binaryCheck(t, 5, 10, func(x, y *big.Int) *big.Int { return new(big.Int).Add(x, y) }, Radix.Add)
}

func Test_Add_02(t *testing.T) {
	binaryCheck(t, 2147483647, 6, func(x, y *big.Int) *big.Int { return new(big.Int).Add(x, y) }, Radix.Add)
}

func Test_Sub_00(t *testing.T) {
	binaryCheck(t, 3, 12, func(x, y *big.Int) *big.Int { return new(big.Int).Sub(x, y) }, Radix.Sub)
}

func Test_Sub_01(t *testing.T) {
	binaryCheck(t, 7, 9, func(x, y *big.Int) *big.Int { return new(big.Int).Sub(x, y) }, Radix.Sub)
}

func Test_Mul_00(t *testing.T) {
	binaryCheck(t, 2, 20, func(x, y *big.Int) *big.Int { return new(big.Int).Mul(x, y) }, Radix.Mul)
}

func Test_Mul_01(t *testing.T) {
	binaryCheck(t, 5, 10, func(x, y *big.Int) *big.Int { return new(big.Int).Mul(x, y) }, Radix.Mul)
}

func Test_Mul_02(t *testing.T) {
	binaryCheck(t, 2130706433, 5, func(x, y *big.Int) *big.Int { return new(big.Int).Mul(x, y) }, Radix.Mul)
}

func Test_Mul_03(t *testing.T) {
	r := mustRadix(5)
	// Operands shorter than the requested precision are zero-padded.
	assert.True(t, cmp.Equal([]uint32{0, 0, 0, 0, 3, 2, 2, 0}, r.Mul([]uint32{0, 0, 0, 3}, []uint32{0, 1, 4}, 8)))
	assert.True(t, cmp.Equal([]uint32{}, r.Mul([]uint32{1}, []uint32{1}, 0)))
}

func Test_Neg_00(t *testing.T) {
	r := mustRadix(5)
	x := []uint32{1, 2, 3}
	//
	if diff := cmp.Diff(make([]uint32, 5), r.Add(x, r.Neg(x, 5), 5)); diff != "" {
		t.Errorf("x + -x != 0 (-want +got):\n%s", diff)
	}
}

// ============================================================================
// Inverse / Square Root
// ============================================================================

func Test_Inverse_00(t *testing.T) {
	inverseCheck(t, 2, 32)
}

func Test_Inverse_01(t *testing.T) {
	inverseCheck(t, 5, 17)
}

func Test_Inverse_02(t *testing.T) {
	inverseCheck(t, 8209, 9)
}

func Test_Inverse_03(t *testing.T) {
	r := mustRadix(5)
	// 1/2 = 3 + 2*5 + 2*5^2 + ...
	assert.True(t, cmp.Equal([]uint32{3, 2, 2, 2, 2}, r.Inverse([]uint32{2}, 5)))
}

func Test_Sqrt_00(t *testing.T) {
	sqrtCheck(t, 3, 15)
}

func Test_Sqrt_01(t *testing.T) {
	sqrtCheck(t, 5, 20)
}

func Test_Sqrt_02(t *testing.T) {
	sqrtCheck(t, 65537, 7)
}

func Test_Sqrt_03(t *testing.T) {
	sqrtCheck(t, 2, 24)
}

func Test_Sqrt_04(t *testing.T) {
	r := mustRadix(5)
	// 2 and 3 are not squares mod 5
	_, ok := r.Sqrt([]uint32{2}, 4)
	assert.False(t, ok)
	_, ok = r.Sqrt([]uint32{3, 1}, 4)
	assert.False(t, ok)
}

func Test_Sqrt_05(t *testing.T) {
	r := mustRadix(2)
	// 3, 5 and 7 are not 1 mod 8
	for _, x := range []uint64{3, 5, 7, 11, 13} {
		_, ok := r.Sqrt(r.FromUint64(x, 10), 10)
		assert.False(t, ok, "square root of %d", x)
	}
	// 17 = 1 mod 8
	s, ok := r.Sqrt(r.FromUint64(17, 10), 10)
	assert.True(t, ok)
	assert.Equal(t, 9, len(s))
	assert.True(t, cmp.Equal(r.FromUint64(17, 9), r.Mul(s, s, 9)))
	assert.Equal(t, uint64(1), r.ToBig(s).Uint64()%4)
}

func Test_Sqrt_06(t *testing.T) {
	r := mustRadix(2)
	// Low precision cases
	s, ok := r.Sqrt([]uint32{1}, 1)
	assert.True(t, ok)
	assert.Equal(t, 0, len(s))
	s, ok = r.Sqrt([]uint32{1, 0, 0}, 3)
	assert.True(t, ok)
	assert.True(t, cmp.Equal([]uint32{1, 0}, s))
	_, ok = r.Sqrt([]uint32{1, 1}, 2)
	assert.False(t, ok)
}

// ============================================================================
// Rational expansion
// ============================================================================

func Test_Expand_00(t *testing.T) {
	r := mustRadix(5)
	// 375 = 3*5^3
	v, d := r.Expand(big.NewInt(375), big.NewInt(1), 4)
	assert.Equal(t, 3, v)
	assert.True(t, cmp.Equal([]uint32{3, 0, 0, 0}, d))
	// 105 = 5 + 4*5^2
	v, d = r.Expand(big.NewInt(105), big.NewInt(1), 3)
	assert.Equal(t, 1, v)
	assert.True(t, cmp.Equal([]uint32{1, 4, 0}, d))
}

func Test_Expand_01(t *testing.T) {
	r := mustRadix(5)
	// 17/42 = ...00244200244200244201
	v, d := r.Expand(big.NewInt(17), big.NewInt(42), 20)
	assert.Equal(t, 0, v)
	assert.Equal(t, "00244200244200244201", reversed(d))
	// 1/5 has valuation -1
	v, d = r.Expand(big.NewInt(1), big.NewInt(5), 3)
	assert.Equal(t, -1, v)
	assert.True(t, cmp.Equal([]uint32{1, 0, 0}, d))
	// -1 = 4 + 4*5 + ...
	v, d = r.Expand(big.NewInt(-1), big.NewInt(1), 3)
	assert.Equal(t, 0, v)
	assert.True(t, cmp.Equal([]uint32{4, 4, 4}, d))
}

func Test_FromBig_00(t *testing.T) {
	for _, p := range []uint32{2, 3, 5, 251, 2147483647} {
		r := mustRadix(p)
		//
		for range 100 {
			x := big.NewInt(rand.Int64())
			n := 1 + rand.IntN(8)
			d := r.FromBig(x, n)
			//
			assert.Equal(t, 0, new(big.Int).Mod(x, r.Power(n)).Cmp(r.ToBig(d)))
		}
	}
}

// ============================================================================
// Helpers
// ============================================================================

func mustRadix(p uint32) Radix {
	r, err := NewRadix(p)
	if err != nil {
		panic(err)
	}
	//
	return r
}

func randomDigits(p uint32, n int) []uint32 {
	d := make([]uint32, n)
	//
	for i := range d {
		d[i] = rand.Uint32N(p)
	}
	//
	return d
}

func reversed(d []uint32) string {
	var s []byte
	//
	for i := len(d) - 1; i >= 0; i-- {
		s = append(s, byte('0'+d[i]))
	}
	//
	return string(s)
}

func binaryCheck(t *testing.T, p uint32, n int, oracle func(x, y *big.Int) *big.Int,
	op func(Radix, []uint32, []uint32, int) []uint32) {
	r := mustRadix(p)
	pn := r.Power(n)
	//
	for range 1000 {
		a := randomDigits(p, rand.IntN(n+1))
		b := randomDigits(p, rand.IntN(n+1))
		expected := oracle(r.ToBig(a), r.ToBig(b))
		expected.Mod(expected, pn)
		actual := op(r, a, b, n)
		//
		assert.Equal(t, n, len(actual))
		assert.Equal(t, 0, expected.Cmp(r.ToBig(actual)), "a=%v, b=%v", a, b)
	}
}

func inverseCheck(t *testing.T, p uint32, n int) {
	r := mustRadix(p)
	one := r.FromUint64(1, n)
	//
	for range 500 {
		u := randomDigits(p, n)
		u[0] = 1 + rand.Uint32N(p-1)
		v := r.Inverse(u, n)
		//
		if diff := cmp.Diff(one, r.Mul(u, v, n)); diff != "" {
			t.Fatalf("u * u⁻¹ != 1 for u=%v (-want +got):\n%s", u, diff)
		}
	}
}

func sqrtCheck(t *testing.T, p uint32, n int) {
	r := mustRadix(p)
	//
	for range 500 {
		x := randomDigits(p, n)
		x[0] = 1 + rand.Uint32N(p-1)
		a := r.Mul(x, x, n)
		s, ok := r.Sqrt(a, n)
		//
		assert.True(t, ok, "square root of %v", a)
		// For p = 2 one digit is lost
		m := n
		if p == 2 {
			m--
		}
		//
		assert.Equal(t, m, len(s))
		//
		if diff := cmp.Diff(a[:m], r.Mul(s, s, m)); diff != "" {
			t.Fatalf("s² != a for a=%v (-want +got):\n%s", a, diff)
		}
	}
}
