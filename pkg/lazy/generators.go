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
	"math/bits"
)

// wide is an unsigned 128-bit accumulator, used for the carries of
// convolutions.  Each term is below p² < 2⁶², hence many terms can be summed
// without overflow.
type wide struct {
	hi, lo uint64
}

// addMul returns w + x*y.
func (w wide) addMul(x, y uint64) wide {
	hi, lo := bits.Mul64(x, y)
	lo, c := bits.Add64(w.lo, lo, 0)
	//
	return wide{w.hi + hi + c, lo}
}

// divMod returns w / p and w % p.
func (w wide) divMod(p uint64) (wide, uint64) {
	var (
		qh, rh = w.hi / p, w.hi % p
		ql, r  = bits.Div64(rh, w.lo, p)
	)
	//
	return wide{qh, ql}, r
}

// ============================================================================
// Constants
// ============================================================================

// zeroGen generates the digits of an exact zero.
type zeroGen struct{}

func (g zeroGen) next(r *Ring, self *node) (uint32, error) {
	return 0, nil
}

// constGen generates the digits of a rational num/den whose denominator is
// coprime to p.  Each step peels off the lowest digit d, leaving (num - d·den)
// / p.
type constGen struct {
	num *big.Int
	den *big.Int
	// den⁻¹ mod p
	inv uint64
}

func newConstGen(p uint64, num, den *big.Int) *constGen {
	var (
		bp  = new(big.Int).SetUint64(p)
		inv = new(big.Int).Mod(den, bp)
	)
	//
	inv.ModInverse(inv, bp)
	//
	return &constGen{new(big.Int).Set(num), new(big.Int).Set(den), inv.Uint64()}
}

func (g *constGen) next(r *Ring, self *node) (uint32, error) {
	var (
		p   = uint64(r.Prime())
		bp  = new(big.Int).SetUint64(p)
		rem = new(big.Int).Mod(g.num, bp).Uint64()
		d   = rem * g.inv % p
		tmp = new(big.Int).SetUint64(d)
	)
	// num ← (num - d·den) / p, which is exact
	tmp.Mul(tmp, g.den)
	g.num.Sub(g.num, tmp)
	g.num.Quo(g.num, bp)
	//
	return uint32(d), nil
}

// ============================================================================
// Ring operations
// ============================================================================

// addGen generates the digits of a + b, propagating a carry.
type addGen struct {
	a, b  NodeID
	carry uint64
}

func (g *addGen) next(r *Ring, self *node) (uint32, error) {
	var (
		p = uint64(r.Prime())
		e = self.frontier()
	)
	//
	da, err := r.digit(g.a, e)
	if err != nil {
		return 0, err
	}
	//
	db, err := r.digit(g.b, e)
	if err != nil {
		return 0, err
	}
	//
	s := uint64(da) + uint64(db) + g.carry
	g.carry = s / p
	//
	return uint32(s % p), nil
}

// subGen generates the digits of a - b, propagating a borrow.
type subGen struct {
	a, b   NodeID
	borrow uint64
}

func (g *subGen) next(r *Ring, self *node) (uint32, error) {
	var e = self.frontier()
	//
	da, err := r.digit(g.a, e)
	if err != nil {
		return 0, err
	}
	//
	db, err := r.digit(g.b, e)
	if err != nil {
		return 0, err
	}
	//
	d, borrow := subDigit(uint64(r.Prime()), uint64(da), uint64(db)+g.borrow)
	g.borrow = borrow
	//
	return d, nil
}

// negGen generates the digits of -a.
type negGen struct {
	a      NodeID
	borrow uint64
}

func (g *negGen) next(r *Ring, self *node) (uint32, error) {
	da, err := r.digit(g.a, self.frontier())
	if err != nil {
		return 0, err
	}
	//
	d, borrow := subDigit(uint64(r.Prime()), 0, uint64(da)+g.borrow)
	g.borrow = borrow
	//
	return d, nil
}

// subDigit computes x - y (mod p), returning the borrow.  Here y <= p.
func subDigit(p, x, y uint64) (uint32, uint64) {
	if x < y {
		return uint32(x + p - y), 1
	}
	//
	return uint32(x - y), 0
}

// mulGen generates the digits of a * b using an online convolution, where the
// digit at index t (relative to the start) depends only on operand digits at
// indices up to t.
type mulGen struct {
	a, b  NodeID
	carry wide
}

func (g *mulGen) next(r *Ring, self *node) (uint32, error) {
	var (
		p      = uint64(r.Prime())
		na, nb = r.nodes[g.a], r.nodes[g.b]
		t      = self.frontier() - self.start
	)
	//
	as, err := r.window(g.a, na.start, na.start+t+1)
	if err != nil {
		return 0, err
	}
	//
	bs, err := r.window(g.b, nb.start, nb.start+t+1)
	if err != nil {
		return 0, err
	}
	//
	sum := g.carry
	//
	for i := 0; i <= t; i++ {
		sum = sum.addMul(uint64(as[i]), uint64(bs[t-i]))
	}
	//
	carry, d := sum.divMod(p)
	g.carry = carry
	//
	return uint32(d), nil
}

// shiftGen generates the digits of a·pᵏ.
type shiftGen struct {
	a NodeID
	k int
}

func (g *shiftGen) next(r *Ring, self *node) (uint32, error) {
	return r.digit(g.a, self.frontier()-g.k)
}

// truncGen generates the digits of a at non-negative exponents, dropping any
// digits below.
type truncGen struct {
	a NodeID
}

func (g *truncGen) next(r *Ring, self *node) (uint32, error) {
	return r.digit(g.a, self.frontier())
}

// ============================================================================
// Field operations
// ============================================================================

// divGen generates the digits of a / b using online division.  Writing b =
// pᵛU for a unit U, the quotient Q satisfies Q·U = a·p⁻ᵛ.  At each index t,
// the convolution of the known quotient digits with U leaves the t-th digit of
// the product short by exactly Qₜ·U₀, which determines Qₜ.
type divGen struct {
	a, b NodeID
	// valuation of b
	vb int
	// U₀⁻¹ mod p
	inv   uint64
	carry wide
}

func (g *divGen) next(r *Ring, self *node) (uint32, error) {
	var (
		p = uint64(r.Prime())
		e = self.frontier()
		t = e - self.start
		q = self.memo
	)
	//
	da, err := r.digit(g.a, e+g.vb)
	if err != nil {
		return 0, err
	}
	//
	us, err := r.window(g.b, g.vb, g.vb+t+1)
	if err != nil {
		return 0, err
	}
	//
	sum := g.carry
	//
	for i := 0; i < t; i++ {
		sum = sum.addMul(uint64(q[i]), uint64(us[t-i]))
	}
	//
	_, s := sum.divMod(p)
	d := (uint64(da) + p - s) % p * g.inv % p
	g.carry, _ = sum.addMul(d, uint64(us[0])).divMod(p)
	//
	return uint32(d), nil
}

// sqrtGen generates the digits of a square root for odd p.  Writing a = p²ᵛU
// for a unit U, the root S = pᵛS' has S'₀ = s₀ a square root of U₀.  At each
// index t > 0, the t-th digit of S'² is 2s₀S'ₜ plus terms involving only
// earlier digits, which determines S'ₜ.
type sqrtGen struct {
	a NodeID
	// valuation of a
	va int
	s0 uint64
	// (2s₀)⁻¹ mod p
	inv   uint64
	carry wide
}

func (g *sqrtGen) next(r *Ring, self *node) (uint32, error) {
	var (
		p = uint64(r.Prime())
		t = self.frontier() - self.start
		s = self.memo
	)
	//
	du, err := r.digit(g.a, g.va+t)
	if err != nil {
		return 0, err
	} else if t == 0 {
		g.carry, _ = wide{}.addMul(g.s0, g.s0).divMod(p)
		return uint32(g.s0), nil
	}
	//
	sum := g.carry
	//
	for i := 1; i < t; i++ {
		sum = sum.addMul(uint64(s[i]), uint64(s[t-i]))
	}
	//
	_, m := sum.divMod(p)
	d := (uint64(du) + p - m) % p * g.inv % p
	g.carry, _ = sum.addMul(2*g.s0, d).divMod(p)
	//
	return uint32(d), nil
}
