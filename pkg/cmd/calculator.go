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
package cmd

import (
	"fmt"
	"math/big"
	"slices"
	"strconv"

	"github.com/consensys/go-padic/pkg/config"
	"github.com/consensys/go-padic/pkg/lazy"
	"github.com/consensys/go-padic/pkg/padic"
	"github.com/consensys/go-padic/pkg/util/math"
	log "github.com/sirupsen/logrus"
)

// UNARY_OPERATORS lists the operators accepting a single operand.
var UNARY_OPERATORS = []string{"neg", "inv", "sqrt"}

// BINARY_OPERATORS lists the operators accepting two operands.
var BINARY_OPERATORS = []string{"+", "-", "*", "/", "//", "^"}

// calculator evaluates expressions over rationals embedded in either a bounded
// precision policy, or a lazy ring.
type calculator struct {
	policy *padic.Policy
	ring   *lazy.Ring
}

func newCalculator(cfg config.Config) (*calculator, error) {
	if cfg.IsLazy() {
		ring, err := cfg.Ring()
		//
		return &calculator{nil, ring}, err
	}
	//
	policy, err := cfg.BoundedPolicy()
	//
	return &calculator{policy, nil}, err
}

// String describes the ring (or field) of this calculator.
func (c *calculator) String() string {
	if c.ring != nil {
		return c.ring.String()
	}
	//
	return c.policy.String()
}

// Expand a rational into its digits.
func (c *calculator) Expand(text string) (string, error) {
	x, err := parseRational(text)
	//
	switch {
	case err != nil:
		return "", err
	case c.ring != nil:
		return c.ring.FromRat(x).Format(c.ring.DefaultDigits())
	}
	//
	value, err := padic.FromRat(c.policy, x)
	if err != nil {
		return "", err
	}
	//
	return value.String(), nil
}

// Evaluate a unary or binary operator applied to the given operands.
func (c *calculator) Evaluate(op string, operands ...string) (string, error) {
	var (
		args = make([]*big.Rat, len(operands))
		err  error
	)
	//
	switch {
	case len(operands) == 1 && !slices.Contains(UNARY_OPERATORS, op):
		return "", fmt.Errorf("unknown unary operator \"%s\"", op)
	case len(operands) == 2 && !slices.Contains(BINARY_OPERATORS, op):
		return "", fmt.Errorf("unknown binary operator \"%s\"", op)
	case len(operands) != 1 && len(operands) != 2:
		return "", fmt.Errorf("expected one or two operands (found %d)", len(operands))
	case op == "^":
		return c.power(operands[0], operands[1])
	}
	//
	for i, text := range operands {
		if args[i], err = parseRational(text); err != nil {
			return "", err
		}
	}
	//
	if c.ring != nil {
		return c.evaluateLazy(op, args)
	}
	//
	return c.evaluateBounded(op, args)
}

func (c *calculator) evaluateBounded(op string, args []*big.Rat) (string, error) {
	var (
		xs     = make([]padic.Element, len(args))
		result padic.Element
		err    error
	)
	//
	for i, arg := range args {
		if xs[i], err = padic.FromRat(c.policy, arg); err != nil {
			return "", err
		}
	}
	//
	switch op {
	case "neg":
		result = xs[0].Neg()
	case "inv":
		result, err = quotient(xs[0].Inverse())
	case "sqrt":
		result, err = xs[0].Sqrt()
	case "+":
		result, err = xs[0].Add(xs[1])
	case "-":
		result, err = xs[0].Sub(xs[1])
	case "*":
		result, err = xs[0].Mul(xs[1])
	case "/":
		result, err = quotient(xs[0].Div(xs[1]))
	case "//":
		result, err = xs[0].FloorDiv(xs[1])
	}
	//
	if err != nil {
		return "", err
	}
	//
	return result.String(), nil
}

func (c *calculator) evaluateLazy(op string, args []*big.Rat) (string, error) {
	var (
		xs     = make([]lazy.Element, len(args))
		result lazy.Element
		err    error
	)
	//
	for i, arg := range args {
		xs[i] = c.ring.FromRat(arg)
	}
	//
	switch op {
	case "neg":
		result = xs[0].Neg()
	case "inv":
		result, err = xs[0].Inverse()
	case "sqrt":
		result, err = xs[0].Sqrt()
	case "+":
		result = xs[0].Add(xs[1])
	case "-":
		result = xs[0].Sub(xs[1])
	case "*":
		result = xs[0].Mul(xs[1])
	case "/":
		result, err = xs[0].Div(xs[1])
	case "//":
		return "", fmt.Errorf("%w: floor division of lazy elements", padic.ErrInvalidOperation)
	}
	//
	if err != nil {
		return "", err
	}
	//
	return result.Format(c.ring.DefaultDigits())
}

// power raises a rational to a non-negative integer exponent.
func (c *calculator) power(base string, exponent string) (string, error) {
	x, err := parseRational(base)
	if err != nil {
		return "", err
	}
	//
	k, err := strconv.ParseUint(exponent, 10, 32)
	if err != nil {
		return "", fmt.Errorf("invalid exponent \"%s\"", exponent)
	}
	//
	if c.ring != nil {
		return c.ring.FromRat(x).Pow(uint(k)).Format(c.ring.DefaultDigits())
	}
	//
	value, err := padic.FromRat(c.policy, x)
	if err != nil {
		return "", err
	}
	//
	return value.Pow(uint(k)).String(), nil
}

// Compare two rationals at a given absolute precision.  A negative precision
// compares bounded elements at the precision they are both known, and lazy
// elements without any bound.
func (c *calculator) Compare(lhs, rhs string, at int) (padic.Outcome, error) {
	x, err := parseRational(lhs)
	if err != nil {
		return padic.Undecidable, err
	}
	//
	y, err := parseRational(rhs)
	if err != nil {
		return padic.Undecidable, err
	}
	//
	if c.ring != nil {
		return c.compareLazy(c.ring.FromRat(x), c.ring.FromRat(y), at)
	}
	//
	bx, err := padic.FromRat(c.policy, x)
	if err != nil {
		return padic.Undecidable, err
	}
	//
	by, err := padic.FromRat(c.policy, y)
	if err != nil {
		return padic.Undecidable, err
	}
	//
	precision := bx.PrecisionAbsolute().Min(by.PrecisionAbsolute())
	//
	if at >= 0 {
		precision = math.Finite(at)
	}
	//
	return padic.Compare(bx, by, precision)
}

func (c *calculator) compareLazy(x, y lazy.Element, at int) (padic.Outcome, error) {
	if at < 0 {
		return lazy.Compare(x, y, math.PosInfinity)
	}
	// Bound both handles
	return lazy.Compare(x.At(at), y.At(at), math.Finite(at))
}

// Solve the self-referential equation x = a + c·x², returning the digits of
// x.  This always uses a lazy ring, regardless of the configured policy.
func Solve(cfg config.Config, lhs, rhs string) (string, error) {
	a, err := parseRational(lhs)
	if err != nil {
		return "", err
	}
	//
	c, err := parseRational(rhs)
	if err != nil {
		return "", err
	}
	//
	ring, err := cfg.Ring()
	if err != nil {
		return "", err
	}
	//
	var (
		x   = ring.SelfRef()
		def = ring.FromRat(a).Add(ring.FromRat(c).Mul(x.Mul(x)))
	)
	//
	if err := x.Set(def); err != nil {
		return "", err
	}
	//
	log.Debugf("solving x = %s + %s*x^2 in %s", a.RatString(), c.RatString(), ring)
	//
	return x.Format(ring.DefaultDigits())
}

// quotient extracts the value of a quotient, noting any promotion.
func quotient(q padic.Quotient, err error) (padic.Element, error) {
	if err == nil && q.Promoted {
		log.Infof("quotient promoted to %s", q.Value.Policy())
	}
	//
	return q.Value, err
}

// parseRational parses an integer, fraction or decimal.
func parseRational(text string) (*big.Rat, error) {
	x, ok := new(big.Rat).SetString(text)
	if !ok {
		return nil, fmt.Errorf("invalid rational \"%s\"", text)
	}
	//
	return x, nil
}
