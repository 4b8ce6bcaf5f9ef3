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
	"errors"
	"fmt"
)

var (
	// ErrInvalidOperation signals an operation which is not defined for its
	// operands, such as inverting a non-unit or mixing incompatible policies.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrNoSquareRoot signals a square root requested of a non-square.
	ErrNoSquareRoot = errors.New("no square root")
	// ErrPrecision signals a question which cannot be decided at the available
	// precision.
	ErrPrecision = errors.New("precision error")
	// ErrCircularDefinition signals a self-referential definition whose digits
	// cannot be resolved from earlier digits.
	ErrCircularDefinition = errors.New("definition looks circular")
	// ErrAlreadyBound signals an attempt to rebind a self-reference.
	ErrAlreadyBound = fmt.Errorf("%w: self-reference is already bound", ErrInvalidOperation)
	// ErrUnbound signals an attempt to compute digits of a self-reference which
	// has not been bound.
	ErrUnbound = fmt.Errorf("%w: self-reference is not bound", ErrInvalidOperation)
)

// errNonUnit is reported when a ring element is inverted.
var errNonUnit = fmt.Errorf("%w: cannot invert non-unit", ErrInvalidOperation)

// ErrUndecidable is the precision error reported when equality cannot be
// decided.
var ErrUndecidable = fmt.Errorf("%w: unable to decide equality; try to bound precision", ErrPrecision)
