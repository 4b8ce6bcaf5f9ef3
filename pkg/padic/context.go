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

	"github.com/consensys/go-padic/pkg/digits"
)

// DefaultDigits is the number of digits materialised for display when nothing
// else is specified.
const DefaultDigits = 20

// Context holds the prime p and the default number of digits for a family of
// p-adic elements.  A context is immutable, and shared by reference across all
// elements over p (whether bounded or lazy).
type Context struct {
	radix         digits.Radix
	defaultDigits uint
}

// NewContext constructs a context for a given prime.  This fails if p is not a
// prime below 2³¹, or the default digit count is zero.
func NewContext(p uint32, defaultDigits uint) (*Context, error) {
	radix, err := digits.NewRadix(p)
	//
	if err != nil {
		return nil, err
	} else if defaultDigits == 0 {
		return nil, fmt.Errorf("%w: default digit count must be positive", ErrInvalidOperation)
	}
	//
	return &Context{radix, defaultDigits}, nil
}

// Prime returns the prime p of this context.
func (c *Context) Prime() uint32 {
	return c.radix.Prime()
}

// DefaultDigits returns the number of digits to materialise by default.
func (c *Context) DefaultDigits() uint {
	return c.defaultDigits
}

// Radix returns the digit arithmetic for this context's prime.
func (c *Context) Radix() digits.Radix {
	return c.radix
}

// Policy constructs a precision policy of the given kind over this context.
func (c *Context) Policy(kind Kind, cap uint) (*Policy, error) {
	switch {
	case kind > CappedRelative:
		return nil, fmt.Errorf("%w: unknown precision policy %d", ErrInvalidOperation, kind)
	case cap == 0:
		return nil, fmt.Errorf("%w: precision cap must be positive", ErrInvalidOperation)
	}
	//
	return &Policy{c, kind, int(cap), false}, nil
}

// FieldPolicy constructs a capped relative precision field over this context.
func (c *Context) FieldPolicy(cap uint) (*Policy, error) {
	policy, err := c.Policy(CappedRelative, cap)
	if err != nil {
		return nil, err
	}
	//
	return policy.Field()
}
