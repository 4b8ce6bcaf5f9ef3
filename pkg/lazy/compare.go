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
	"github.com/consensys/go-padic/pkg/padic"
	"github.com/consensys/go-padic/pkg/util/math"
)

// Compare two elements up to a given absolute precision.  Digits are compared
// below the least of the requested precision and those of the handles.  Where
// this is unbounded, only the default number of digits is examined.  A
// differing digit decides the comparison.  Otherwise, the elements are equal
// only when both handles are bounded and the requested precision is within
// their bounds.  In particular, unbounded handles are never equal.
func Compare(x, y Element, at math.InfInt) (padic.Outcome, error) {
	if err := x.check(y); err != nil {
		return padic.Undecidable, err
	}
	//
	var (
		r     = x.ring
		limit = x.prec.Min(y.prec)
		probe = limit.Min(at)
		lo    = min(r.start(x.id), r.start(y.id))
		hi    = lo + int(r.DefaultDigits())
	)
	//
	if probe.IsFinite() {
		hi = probe.Int()
	}
	// Obtain lock
	r.mux.Lock()
	defer r.mux.Unlock()
	//
	for e := lo; e < hi; e++ {
		dx, err := r.digit(x.id, e)
		if err != nil {
			return padic.Undecidable, err
		}
		//
		dy, err := r.digit(y.id, e)
		if err != nil {
			return padic.Undecidable, err
		} else if dx != dy {
			return padic.NotEqual, nil
		}
	}
	//
	if limit.IsFinite() && at.Cmp(limit) <= 0 {
		return padic.Equal, nil
	}
	//
	return padic.Undecidable, nil
}

// Equal checks whether two elements agree to the precision of their handles.
// When neither handle is bounded, equality cannot be established and this
// fails with a precision error, unless a differing digit is found.
func (x Element) Equal(y Element) (bool, error) {
	outcome, err := Compare(x, y, x.prec.Min(y.prec))
	//
	switch {
	case err != nil:
		return false, err
	case outcome == padic.Undecidable:
		return false, padic.ErrUndecidable
	}
	//
	return outcome == padic.Equal, nil
}
