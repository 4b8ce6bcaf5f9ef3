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
package smallfield

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/field/koalabear"
	"github.com/consensys/go-padic/pkg/util/math"
)

// ErrModulus signals a modulus which cannot be used to construct a field.
var ErrModulus = errors.New("invalid field modulus")

// koalaBear is the modulus 2³¹ - 2²⁴ + 1, for which gnark-crypto provides an
// optimised implementation.
var koalaBear = uint32(koalabear.Modulus().Uint64())

// Element of a prime order field.  This is defined as an array to prevent
// mistaken use of arithmetic operators, or naive assignments.  An element
// always holds its canonical value in the range [0, modulus).
type Element [1]uint32

// A Field of prime order, less than 2³¹.  The bound ensures a product of two
// elements, plus a carry, always fits in a uint64.
type Field struct {
	modulus uint32
	// modulus - 1 = oddPart * 2^twoAdicity, used by Tonelli-Shanks.
	oddPart    uint64
	twoAdicity uint
	// smallest quadratic non-residue (zero for modulus 2).
	nonResidue uint64
	// use the gnark-crypto implementation of inverse and square root.
	koala bool
}

// New constructs a field of the given prime order, or fails if the modulus is
// not a prime below 2³¹.
func New(modulus uint32) (Field, error) {
	switch {
	case modulus < 2:
		return Field{}, fmt.Errorf("%w: %d is less than 2", ErrModulus, modulus)
	case modulus >= 1<<31:
		return Field{}, fmt.Errorf("%w: %d is not less than 2³¹", ErrModulus, modulus)
	case !big.NewInt(int64(modulus)).ProbablyPrime(20):
		return Field{}, fmt.Errorf("%w: %d is not prime", ErrModulus, modulus)
	}
	//
	f := Field{modulus: modulus, koala: modulus == koalaBear}
	// Split modulus-1 into odd part and power of two.
	f.oddPart = uint64(modulus - 1)
	for f.oddPart != 0 && f.oddPart%2 == 0 {
		f.oddPart /= 2
		f.twoAdicity++
	}
	// Find smallest non-residue (used only for odd moduli).
	if modulus > 2 {
		for z := uint64(2); ; z++ {
			if math.PowMod(z, uint64(modulus-1)/2, uint64(modulus)) == uint64(modulus-1) {
				f.nonResidue = z
				break
			}
		}
	}
	//
	return f, nil
}

// NewField of the given order, panicking if the order is unsuitable.
func NewField(modulus uint32) Field {
	f, err := New(modulus)
	if err != nil {
		panic(err.Error())
	}
	//
	return f
}

// Modulus returns the order of this field.
func (f Field) Modulus() uint32 {
	return f.modulus
}

// NewElement returns an element of the field f corresponding to the natural
// number x.
func (f Field) NewElement(x uint64) Element {
	return Element{uint32(x % uint64(f.modulus))}
}

// Add x0 + x1 + xRest[0] + xRest[1] + ...
func (f Field) Add(x0, x1 Element, xRest ...Element) Element {
	res := Element{x0[0] + x1[0]}
	if res[0] >= f.modulus {
		res[0] -= f.modulus
	}

	for _, e := range xRest {
		res[0] += e[0]
		if res[0] >= f.modulus {
			res[0] -= f.modulus
		}
	}

	return res
}

// Sub x0 - x1 - xRest[0] - xRest[1] - ...
func (f Field) Sub(x0, x1 Element, xRest ...Element) Element {
	const negMask uint32 = 1 << 31

	res := Element{x0[0] - x1[0]}
	if res[0]&negMask != 0 {
		res[0] += f.modulus
	}

	for _, e := range xRest {
		res[0] -= e[0]
		if res[0]&negMask != 0 {
			res[0] += f.modulus
		}
	}

	return res
}

// Neg returns -x.
func (f Field) Neg(x Element) Element {
	return f.Sub(Element{0}, x)
}

func (f Field) mul(a, b Element) Element {
	return Element{uint32((uint64(a[0]) * uint64(b[0])) % uint64(f.modulus))}
}

// Mul x0 * x1 * xRest[0] * xRest[1] * ...
func (f Field) Mul(x0, x1 Element, xRest ...Element) Element {
	res := f.mul(x0, x1)
	for _, e := range xRest {
		res = f.mul(res, e)
	}

	return res
}

// Exp returns x^e.
func (f Field) Exp(x Element, e uint64) Element {
	return Element{uint32(math.PowMod(uint64(x[0]), e, uint64(f.modulus)))}
}

// Inverse x⁻¹, or 0 if x = 0.
func (f Field) Inverse(x Element) Element {
	if x[0] == 0 {
		return x
	} else if f.koala {
		var e koalabear.Element
		//
		e.SetUint64(uint64(x[0]))
		e.Inverse(&e)
		//
		return Element{uint32(e.Uint64())}
	}
	// Fermat's little theorem
	return f.Exp(x, uint64(f.modulus-2))
}

// IsSquare determines whether x is a quadratic residue (zero included) using
// Euler's criterion.
func (f Field) IsSquare(x Element) bool {
	switch {
	case x[0] == 0 || f.modulus == 2:
		return true
	case f.koala:
		var e koalabear.Element
		//
		e.SetUint64(uint64(x[0]))
		//
		return e.Legendre() == 1
	default:
		return f.Exp(x, uint64(f.modulus-1)/2)[0] == 1
	}
}

// Sqrt returns a square root of x, or false if x is not a quadratic residue.
// Of the two roots r and -r, the numerically smaller one is returned.
func (f Field) Sqrt(x Element) (Element, bool) {
	var root Element
	//
	switch {
	case !f.IsSquare(x):
		return Element{}, false
	case x[0] == 0 || f.modulus == 2:
		return x, true
	case f.koala:
		var e koalabear.Element
		//
		e.SetUint64(uint64(x[0]))
		//
		if e.Sqrt(&e) == nil {
			return Element{}, false
		}
		//
		root = Element{uint32(e.Uint64())}
	default:
		root = f.tonelliShanks(x)
	}
	// Normalise choice of root
	if neg := f.Neg(root); neg[0] < root[0] {
		return neg, true
	}
	//
	return root, true
}

// tonelliShanks computes a square root of a non-zero quadratic residue x for
// an odd modulus.
func (f Field) tonelliShanks(x Element) Element {
	var (
		m = f.twoAdicity
		c = f.Exp(Element{uint32(f.nonResidue)}, f.oddPart)
		t = f.Exp(x, f.oddPart)
		r = f.Exp(x, (f.oddPart+1)/2)
	)
	//
	for t[0] != 1 {
		// Find least i such that t^(2^i) = 1
		i, tt := uint(0), t
		for tt[0] != 1 {
			tt = f.mul(tt, tt)
			i++
		}
		// b = c^(2^(m-i-1))
		b := c
		for j := uint(0); j+i+1 < m; j++ {
			b = f.mul(b, b)
		}
		//
		m = i
		c = f.mul(b, b)
		t = f.mul(t, c)
		r = f.mul(r, b)
	}
	//
	return r
}
