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
	"github.com/consensys/go-padic/pkg/util/math"
)

// Outcome is the result of comparing two elements at some precision.
type Outcome uint8

const (
	// Equal indicates the elements agree at the requested precision.
	Equal Outcome = iota
	// NotEqual indicates a differing digit was found.
	NotEqual
	// Undecidable indicates no difference was found, but the requested
	// precision exceeds what is known of the elements.
	Undecidable
)

func (o Outcome) String() string {
	switch o {
	case Equal:
		return "equal"
	case NotEqual:
		return "not equal"
	default:
		return "undecidable"
	}
}

// Compare two elements up to a given absolute precision.  Digits are compared
// below the least of the requested precision and those of the elements.
func Compare(x, y Element, at math.InfInt) (Outcome, error) {
	if _, err := join(x.policy, y.policy); err != nil {
		return Undecidable, err
	}
	//
	known := x.abs.Min(y.abs)
	//
	if known.IsInfinite() {
		// Both are exact zeros
		return Equal, nil
	}
	//
	var (
		hi = known.Min(at).Int()
		lo = x.Valuation().Min(y.Valuation()).MinInt(hi)
	)
	//
	for i := lo; i < hi; i++ {
		if x.value.Digit(i) != y.value.Digit(i) {
			return NotEqual, nil
		}
	}
	//
	if at.Cmp(known) <= 0 {
		return Equal, nil
	}
	//
	return Undecidable, nil
}

// Equal checks whether two elements agree to the precision they are both known.
func (x Element) Equal(y Element) (bool, error) {
	outcome, err := Compare(x, y, x.abs.Min(y.abs))
	//
	return outcome == Equal, err
}
