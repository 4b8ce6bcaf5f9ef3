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
	"math/big"
	"testing"

	"github.com/consensys/go-padic/pkg/padic"
	"github.com/consensys/go-padic/pkg/util/assert"
	"github.com/consensys/go-padic/pkg/util/math"
)

// ============================================================================
// Construction
// ============================================================================

func Test_Const_00(t *testing.T) {
	R := newRing(5)
	a := mustRational(R, 17, 42)
	//
	checkFormat(t, a, "...00244200244200244201")
	checkFormat(t, a.At(30), "...?244200244200244200244200244201")
	assert.True(t, a.PrecisionAbsolute().IsInfinite())
	assert.True(t, R.PrecisionCap().IsInfinite())
}

func Test_Const_01(t *testing.T) {
	R := newRing(5)
	//
	checkFormat(t, R.FromInt64(375), "...00000000000000003000")
	checkFormat(t, R.FromInt64(-1), "...44444444444444444444")
	checkFormat(t, R.Zero(), "...00000000000000000000")
	checkFormat(t, mustRational(R, 1, 5), "...0000000000000000000.1")
	checkFormat(t, R.FromInt64(7).At(1), "...?2")
	checkFormat(t, R.FromInt64(7).At(-2), "O(5^-2)")
}

func Test_Const_02(t *testing.T) {
	R := newRing(11)
	x := R.FromInt64(12)
	//
	str, err := x.Format(3)
	assert.NoError(t, err)
	assert.Equal(t, "...0|1|1", str)
}

func Test_Const_03(t *testing.T) {
	R := newRing(5)
	_, err := R.FromRational(big.NewInt(1), big.NewInt(0))
	//
	assert.ErrorIs(t, err, padic.ErrInvalidOperation)
}

func Test_Valuation_00(t *testing.T) {
	R := newRing(5)
	b := mustRational(R, 42, 17)
	//
	checkValuation(t, R.FromInt64(375), math.Finite(3))
	checkValuation(t, mustRational(R, 3, 250), math.Finite(-3))
	checkValuation(t, R.Zero(), math.PosInfinity)
	// An inexact zero has the valuation of its precision
	checkValuation(t, b.Sub(b).At(10), math.Finite(10))
	// Cancellation hides the valuation
	_, err := b.Sub(b).Valuation()
	assert.ErrorIs(t, err, padic.ErrPrecision)
}

func Test_Valuation_01(t *testing.T) {
	R := newRing(5)
	a := R.FromInt64(375)
	//
	r, err := a.PrecisionRelative()
	assert.NoError(t, err)
	assert.True(t, r.IsInfinite())
	//
	b, err := a.AtPrecisionRelative(4)
	assert.NoError(t, err)
	assert.Equal(t, math.Finite(7), b.PrecisionAbsolute())
	//
	r, err = b.PrecisionRelative()
	assert.NoError(t, err)
	assert.Equal(t, math.Finite(4), r)
}

// ============================================================================
// Arithmetic
// ============================================================================

func Test_Arith_00(t *testing.T) {
	var (
		R = newRing(5)
		a = mustRational(R, 17, 42)
		b = mustRational(R, 42, 17)
	)
	//
	checkFormat(t, a.Add(b), "...03232011214322140002")
	checkFormat(t, a.Sub(b), "...42311334324023403400")
	checkFormat(t, a.Mul(b), "...00000000000000000001")
	checkFormat(t, mustDiv(a, b), "...12442142113021233401")
	checkFormat(t, a.Neg().Add(a), "...00000000000000000000")
}

func Test_Arith_01(t *testing.T) {
	R := newRing(5)
	// Operations agree with those on rationals
	for _, x := range []*big.Rat{big.NewRat(17, 42), big.NewRat(-3, 250), big.NewRat(1000, 7)} {
		for _, y := range []*big.Rat{big.NewRat(42, 17), big.NewRat(5, 3), big.NewRat(-2, 1)} {
			var (
				lx, ly = R.FromRat(x), R.FromRat(y)
				sum    = new(big.Rat).Add(x, y)
				diff   = new(big.Rat).Sub(x, y)
				prod   = new(big.Rat).Mul(x, y)
				quot   = new(big.Rat).Quo(x, y)
			)
			//
			checkEqualAt(t, lx.Add(ly), R.FromRat(sum), 30)
			checkEqualAt(t, lx.Sub(ly), R.FromRat(diff), 30)
			checkEqualAt(t, lx.Mul(ly), R.FromRat(prod), 30)
			checkEqualAt(t, mustDiv(lx, ly), R.FromRat(quot), 30)
		}
	}
}

func Test_Arith_02(t *testing.T) {
	R := newRing(5)
	x := R.FromInt64(375)
	//
	checkFormat(t, x.FloorDivP(), "...00000000000000000300")
	checkFormat(t, R.FromInt64(7).ShiftRight(2), "...000000000000000000.12")
	checkFormat(t, R.FromInt64(7).ShiftRight(2).FloorDivP(), "...00000000000000000000")
	checkFormat(t, R.FromInt64(3).ShiftLeft(2), "...00000000000000000300")
	checkFormat(t, R.FromInt64(2).Pow(10), "...00000000000000013044")
	checkFormat(t, R.FromInt64(2).Pow(0), "...00000000000000000001")
}

func Test_Arith_03(t *testing.T) {
	var (
		R = newRing(5)
		a = mustRational(R, 17, 42).At(10)
		b = R.FromInt64(375)
	)
	// Precision propagates through arithmetic
	assert.Equal(t, math.Finite(10), a.Add(b).PrecisionAbsolute())
	assert.Equal(t, math.Finite(13), a.Mul(b).PrecisionAbsolute())
	assert.Equal(t, math.Finite(7), mustDiv(a, b).PrecisionAbsolute())
	assert.Equal(t, math.Finite(9), a.FloorDivP().PrecisionAbsolute())
	assert.Equal(t, math.Finite(12), a.ShiftLeft(2).PrecisionAbsolute())
}

func Test_Arith_04(t *testing.T) {
	var (
		R = newRing(5)
		S = newRing(5)
		x = R.One().Add(S.One())
	)
	// Handles carry errors from mixing rings.
	assert.ErrorIs(t, x.Err(), padic.ErrInvalidOperation)
	assert.ErrorIs(t, x.Mul(R.One()).Err(), padic.ErrInvalidOperation)
	//
	_, err := x.Digit(0)
	assert.ErrorIs(t, err, padic.ErrInvalidOperation)
	_, err = x.Sqrt()
	assert.ErrorIs(t, err, padic.ErrInvalidOperation)
}

func Test_Div_00(t *testing.T) {
	var (
		R = newRing(5)
		b = mustRational(R, 42, 17)
	)
	//
	_, err := b.Div(R.Zero())
	assert.ErrorIs(t, err, padic.ErrInvalidOperation)
	// Indistinguishable from zero at its precision
	_, err = b.Div(R.FromInt64(625).At(3))
	assert.ErrorIs(t, err, padic.ErrInvalidOperation)
	// No non-zero digit amongst the halting digits
	_, err = b.Div(b.Sub(b).Add(R.FromInt64(5).Pow(50)))
	assert.ErrorIs(t, err, padic.ErrPrecision)
}

func Test_Div_01(t *testing.T) {
	R := newRing(7)
	x, err := R.FromInt64(49).Inverse()
	//
	assert.NoError(t, err)
	checkValuation(t, x, math.Finite(-2))
	checkEqualAt(t, x.Mul(R.FromInt64(49)), R.One(), 25)
}

func Test_Div_02(t *testing.T) {
	R := newRing(5)
	y := R.SelfRef()
	// y = 1 + 3y² never resolves its leading digit
	assert.NoError(t, y.Set(R.One().Add(R.FromInt64(3).Mul(y.Mul(y)))))
	//
	_, err := R.One().Div(y)
	assert.ErrorIs(t, err, padic.ErrCircularDefinition)
	//
	_, err = y.Sqrt()
	assert.ErrorIs(t, err, padic.ErrCircularDefinition)
}

// ============================================================================
// Square Root
// ============================================================================

func Test_Sqrt_00(t *testing.T) {
	var (
		R = newRing(5)
		a = mustRational(R, 17, 42)
		s = mustSqrt(a)
	)
	//
	checkFormat(t, s, "...20042333114021142101")
	checkFormat(t, s.At(30), "...?142443342120042333114021142101")
}

func Test_Sqrt_01(t *testing.T) {
	R := newRing(5)
	//
	_, err := R.FromInt64(2).Sqrt()
	assert.ErrorIs(t, err, padic.ErrNoSquareRoot)
	_, err = R.FromInt64(5).Sqrt()
	assert.ErrorIs(t, err, padic.ErrNoSquareRoot)
	// Even valuation
	x := mustSqrt(R.FromInt64(4 * 25 * 25))
	checkValuation(t, x, math.Finite(2))
	checkEqualAt(t, x.Mul(x), R.FromInt64(4*25*25), 40)
	// Exact zero
	checkValuation(t, mustSqrt(R.Zero()), math.PosInfinity)
}

func Test_Sqrt_02(t *testing.T) {
	R := newRing(2)
	//
	for _, n := range []int64{17, 1, -7, 4 * 41, 64 * 9} {
		x := mustSqrt(R.FromInt64(n))
		checkEqualAt(t, x.Mul(x), R.FromInt64(n), 50)
		// Root is 1 mod 4 (once shifted)
		v, err := x.Valuation()
		assert.NoError(t, err)
		d, err := x.Digit(v.Int() + 1)
		assert.NoError(t, err)
		assert.Equal(t, uint32(0), d)
	}
	// Unit part must be 1 mod 8
	for _, n := range []int64{3, 5, 13, 4 * 3} {
		_, err := R.FromInt64(n).Sqrt()
		assert.ErrorIs(t, err, padic.ErrNoSquareRoot)
	}
}

func Test_Sqrt_03(t *testing.T) {
	var (
		R = newRing(2)
		x = mustSqrt(R.FromInt64(17).At(10))
	)
	// One digit of precision is lost for p = 2.
	assert.Equal(t, math.Finite(9), x.PrecisionAbsolute())
	//
	y := mustSqrt(newRing(3).FromInt64(9 * 7).At(10))
	assert.Equal(t, math.Finite(9), y.PrecisionAbsolute())
}

// ============================================================================
// Conversion
// ============================================================================

func Test_Approximate_00(t *testing.T) {
	var (
		R       = newRing(5)
		a       = mustRational(R, 17, 42)
		fm      = mustPolicy(padic.FixedModulus, 5, 10)
		modulus = big.NewInt(9765625)
		want    = new(big.Int).ModInverse(big.NewInt(42), modulus)
	)
	//
	want.Mul(want, big.NewInt(17))
	want.Mod(want, modulus)
	//
	x, err := a.Approximate(fm)
	assert.NoError(t, err)
	assert.Equal(t, 0, want.Cmp(x.Lift()))
}

func Test_Approximate_01(t *testing.T) {
	var (
		R  = newRing(5)
		ca = mustPolicy(padic.CappedAbsolute, 5, 5)
		cr = mustPolicy(padic.CappedRelative, 5, 5)
	)
	//
	checkApproximate(t, R.FromInt64(375), ca, "3*5^3 + O(5^5)")
	checkApproximate(t, R.FromInt64(375), cr, "3*5^3 + O(5^8)")
	checkApproximate(t, R.FromInt64(375).At(4), cr, "3*5^3 + O(5^4)")
	checkApproximate(t, R.Zero(), cr, "0")
	checkApproximate(t, R.FromInt64(7).Sub(R.FromInt64(7)).At(3), cr, "O(5^3)")
	//
	field, err := cr.Field()
	assert.NoError(t, err)
	checkApproximate(t, mustRational(R, 1, 5), field, "5^-1 + O(5^4)")
	// Negative valuation is not permitted in a ring
	_, err = mustRational(R, 1, 5).Approximate(ca)
	assert.ErrorIs(t, err, padic.ErrInvalidOperation)
	_, err = R.One().Approximate(mustPolicy(padic.CappedAbsolute, 7, 5))
	assert.ErrorIs(t, err, padic.ErrInvalidOperation)
}

func Test_FromBounded_00(t *testing.T) {
	var (
		R  = newRing(5)
		ca = mustPolicy(padic.CappedAbsolute, 5, 10)
		b  = padic.FromInt64(ca, 105)
	)
	//
	x, err := R.FromBounded(b)
	assert.NoError(t, err)
	assert.Equal(t, math.Finite(10), x.PrecisionAbsolute())
	checkFormat(t, x, "...?0000000410")
	//
	y, err := x.Approximate(ca)
	assert.NoError(t, err)
	//
	eq, err := y.Equal(b)
	assert.NoError(t, err)
	assert.True(t, eq)
	//
	_, err = newRing(7).FromBounded(b)
	assert.ErrorIs(t, err, padic.ErrInvalidOperation)
}

// ============================================================================
// Helpers
// ============================================================================

func newRing(p uint32) *Ring {
	ctx, err := padic.NewContext(p, padic.DefaultDigits)
	if err != nil {
		panic(err)
	}
	//
	return NewRing(ctx, DEFAULT_OPTIONS)
}

func mustPolicy(kind padic.Kind, p uint32, cap uint) *padic.Policy {
	policy, err := padic.MakePolicy(kind, p, cap)
	if err != nil {
		panic(err)
	}
	//
	return policy
}

func mustRational(R *Ring, num, den int64) Element {
	x, err := R.FromRational(big.NewInt(num), big.NewInt(den))
	if err != nil {
		panic(err)
	}
	//
	return x
}

func mustDiv(x, y Element) Element {
	z, err := x.Div(y)
	if err != nil {
		panic(err)
	}
	//
	return z
}

func mustSqrt(x Element) Element {
	z, err := x.Sqrt()
	if err != nil {
		panic(err)
	}
	//
	return z
}

func checkFormat(t *testing.T, x Element, expected string) {
	t.Helper()
	//
	str, err := x.Format(x.Ring().DefaultDigits())
	assert.NoError(t, err)
	assert.Equal(t, expected, str)
}

func checkValuation(t *testing.T, x Element, expected math.InfInt) {
	t.Helper()
	//
	v, err := x.Valuation()
	assert.NoError(t, err)
	assert.Equal(t, expected, v)
}

func checkEqualAt(t *testing.T, x, y Element, n int) {
	t.Helper()
	//
	eq, err := x.At(n).Equal(y)
	assert.NoError(t, err)
	assert.True(t, eq, "%s != %s", x, y)
}

func checkApproximate(t *testing.T, x Element, policy *padic.Policy, expected string) {
	t.Helper()
	//
	y, err := x.Approximate(policy)
	assert.NoError(t, err)
	assert.Equal(t, expected, y.String())
}
