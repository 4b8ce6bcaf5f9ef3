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

// Sqrt returns a square root of x.  This fails if x has odd valuation, or its
// unit part is not a square.  For odd p, the leading digit of the root is the
// smaller of the two square roots modulo p.  For p = 2, the unit part must be
// 1 mod 8, the root is 1 mod 4 and one digit of relative precision is lost.
func (x Element) Sqrt() (Element, error) {
	if x.value.IsZero() {
		if x.abs.IsInfinite() {
			return x, nil
		}
		// An inexact zero O(pⁿ) has square root O(p^⌊n/2⌋).
		return build(x.policy, 0, nil, math.Finite(floorHalf(x.abs.Int()))), nil
	}
	//
	var (
		v = x.value.Valuation().Int()
		r = x.PrecisionRelative().Int()
	)
	//
	if v%2 != 0 {
		return Element{}, fmt.Errorf("%w: %s has odd valuation", ErrNoSquareRoot, x)
	}
	//
	root, ok := x.policy.ctx.radix.Sqrt(x.unit(r), r)
	//
	if !ok {
		return Element{}, fmt.Errorf("%w: %s is not a square", ErrNoSquareRoot, x)
	}
	//
	return build(x.policy, v/2, root, math.Finite(v/2+len(root))), nil
}

func floorHalf(n int) int {
	if n < 0 {
		return -((1 - n) / 2)
	}
	//
	return n / 2
}
