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
)

// Split factors a non-zero integer x as pᵛ·u with u coprime to p, returning v
// and u.
func (r Radix) Split(x *big.Int) (int, *big.Int) {
	var (
		u   = new(big.Int).Set(x)
		p   = new(big.Int).SetUint64(r.p)
		q   big.Int
		rem big.Int
		v   int
	)
	//
	if x.Sign() == 0 {
		panic("cannot split zero")
	}
	//
	for {
		q.QuoRem(u, p, &rem)
		//
		if rem.Sign() != 0 {
			return v, u
		}
		//
		u.Set(&q)
		v++
	}
}

// Power returns pⁿ.
func (r Radix) Power(n int) *big.Int {
	p := new(big.Int).SetUint64(r.p)
	//
	return p.Exp(p, big.NewInt(int64(n)), nil)
}

// FromBig returns the first n digits of x (i.e. x mod pⁿ), where x may be
// negative.
func (r Radix) FromBig(x *big.Int, n int) []uint32 {
	var (
		res = make([]uint32, max(n, 0))
		y   = new(big.Int).Mod(x, r.Power(len(res)))
		p   = new(big.Int).SetUint64(r.p)
		rem big.Int
	)
	//
	for i := range res {
		if y.Sign() == 0 {
			break
		}
		//
		y.QuoRem(y, p, &rem)
		res[i] = uint32(rem.Uint64())
	}
	//
	return res
}

// ToBig returns the integer Σ dᵢpⁱ.
func (r Radix) ToBig(d []uint32) *big.Int {
	var (
		res = new(big.Int)
		p   = new(big.Int).SetUint64(r.p)
		x   big.Int
	)
	//
	for i := len(d) - 1; i >= 0; i-- {
		res.Mul(res, p)
		res.Add(res, x.SetUint64(uint64(d[i])))
	}
	//
	return res
}

// Expand computes the p-adic expansion of the non-zero rational num/den,
// returning its valuation and the first n digits of its unit part.
func (r Radix) Expand(num, den *big.Int, n int) (int, []uint32) {
	if den.Sign() == 0 {
		panic("zero denominator")
	}
	//
	var (
		vn, un = r.Split(num)
		vd, ud = r.Split(den)
	)
	//
	if n <= 0 {
		return vn - vd, []uint32{}
	}
	//
	var (
		pn   = r.Power(n)
		unit = new(big.Int).Mod(ud, pn)
	)
	//
	if unit.ModInverse(unit, pn) == nil {
		panic("denominator not invertible")
	}
	//
	unit.Mul(unit, un)
	//
	return vn - vd, r.FromBig(unit, n)
}
