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
	"testing"

	"github.com/consensys/go-padic/pkg/config"
	"github.com/consensys/go-padic/pkg/padic"
	"github.com/consensys/go-padic/pkg/util/assert"
)

func Test_Expand_00(t *testing.T) {
	calc := newTestCalculator(t, "capped-rel", 20)
	//
	checkExpand(t, calc, "375", "3*5^3 + O(5^23)")
	checkExpand(t, calc, "250", "2*5^3 + O(5^23)")
	//
	_, err := calc.Expand("abc")
	assert.True(t, err != nil)
}

func Test_Expand_01(t *testing.T) {
	calc := newTestCalculator(t, "lazy", 20)
	//
	checkExpand(t, calc, "17/42", "...00244200244200244201")
}

func Test_Expand_02(t *testing.T) {
	cfg := testConfig("capped-rel", 4)
	//
	reports, err := expandAll(cfg, []uint{2, 3, 5}, []string{"6"})
	assert.NoError(t, err)
	assert.Equal(t, []string{
		"2-adic Ring with capped relative precision 4\n6 = 2 + 2^2 + O(2^5)",
		"3-adic Ring with capped relative precision 4\n6 = 2*3 + O(3^5)",
		"5-adic Ring with capped relative precision 4\n6 = 1 + 5 + O(5^4)",
	}, reports)
	// Not a prime
	_, err = expandAll(cfg, []uint{3, 4}, []string{"6"})
	assert.True(t, err != nil)
}

func Test_Arith_00(t *testing.T) {
	calc := newTestCalculator(t, "capped-rel", 10)
	//
	checkEvaluate(t, calc, "5 + 4*5^2 + 3*5^3 + O(5^11)", "+", "375", "105")
	checkEvaluate(t, calc, "4 + O(5^10)", "-", "5", "1")
	checkEvaluate(t, calc, "3*5^4 + 2*5^5 + 2*5^6 + O(5^14)", "*", "375", "105")
	checkEvaluate(t, calc, "4 + 4*5 + 4*5^2 + 4*5^3 + 4*5^4 + 4*5^5 + 4*5^6 + 4*5^7 + 4*5^8 + 4*5^9 + O(5^10)",
		"neg", "1")
}

func Test_Arith_01(t *testing.T) {
	calc := newTestCalculator(t, "fixed-mod", 10)
	//
	checkEvaluate(t, calc, "4 + 4*5 + 3*5^3 + 5^4", "^", "2", "10")
	checkEvaluate(t, calc, "3*5^4 + 2*5^5 + 2*5^6", "*", "375", "105")
	checkEvaluate(t, calc, "3*5^2 + 3*5^3 + 2*5^5 + 5^6 + 4*5^7 + 2*5^8 + 3*5^9", "//", "375", "105")
	// Only units can be inverted in a ring
	_, err := calc.Evaluate("inv", "5")
	assert.ErrorIs(t, err, padic.ErrInvalidOperation)
}

func Test_Arith_02(t *testing.T) {
	calc := newTestCalculator(t, "lazy", 20)
	//
	checkEvaluate(t, calc, "...03232011214322140002", "+", "17/42", "42/17")
	checkEvaluate(t, calc, "...12442142113021233401", "/", "17/42", "42/17")
	checkEvaluate(t, calc, "...00000000000000000001", "*", "17/42", "42/17")
	//
	_, err := calc.Evaluate("//", "17/42", "42/17")
	assert.ErrorIs(t, err, padic.ErrInvalidOperation)
}

func Test_Arith_03(t *testing.T) {
	calc := newTestCalculator(t, "capped-rel", 10)
	//
	for _, args := range [][]string{
		{"?", "1"},
		{"1", "%", "2"},
		{"^", "2", "-1"},
		{"+", "1", "x"},
		{"+", "1", "2", "3"},
	} {
		_, err := calc.Evaluate(args[0], args[1:]...)
		assert.True(t, err != nil, "accepted %v", args)
	}
	// 2 is not a square modulo 5
	_, err := calc.Evaluate("sqrt", "2")
	assert.ErrorIs(t, err, padic.ErrNoSquareRoot)
}

func Test_Compare_00(t *testing.T) {
	calc := newTestCalculator(t, "capped-rel", 20)
	//
	checkCompare(t, calc, "1", "6", -1, padic.NotEqual)
	checkCompare(t, calc, "1/3", "2/6", -1, padic.Equal)
	checkCompare(t, calc, "1", "1", 30, padic.Undecidable)
	// The difference lies beyond the requested precision
	checkCompare(t, calc, "1", "6", 1, padic.Equal)
}

func Test_Compare_01(t *testing.T) {
	calc := newTestCalculator(t, "lazy", 20)
	//
	checkCompare(t, calc, "1", "6", -1, padic.NotEqual)
	checkCompare(t, calc, "1", "1", -1, padic.Undecidable)
	checkCompare(t, calc, "1", "1", 10, padic.Equal)
	checkCompare(t, calc, "1", "244140626", 10, padic.Equal)
}

func Test_Solve_00(t *testing.T) {
	cfg := testConfig("capped-rel", 20)
	// The policy is ignored
	digits, err := Solve(cfg, "1", "5")
	assert.NoError(t, err)
	assert.Equal(t, "...04222412141121000211", digits)
	//
	_, err = Solve(cfg, "1", "3")
	assert.ErrorIs(t, err, padic.ErrCircularDefinition)
}

func Test_Wrap_00(t *testing.T) {
	assert.Equal(t, "abc\ndef\ng", wrap("abcdefg", 3))
	assert.Equal(t, "abcdefg", wrap("abcdefg", 0))
	assert.Equal(t, "abc", wrap("abc", 3))
}

// ============================================================================
// Helpers
// ============================================================================

func testConfig(policy string, cap uint) config.Config {
	cfg := config.Default()
	cfg.Policy = policy
	cfg.PrecisionCap = cap
	//
	return cfg
}

func newTestCalculator(t *testing.T, policy string, cap uint) *calculator {
	t.Helper()
	//
	calc, err := newCalculator(testConfig(policy, cap))
	assert.NoError(t, err)
	//
	return calc
}

func checkExpand(t *testing.T, calc *calculator, value string, expected string) {
	t.Helper()
	//
	actual, err := calc.Expand(value)
	assert.NoError(t, err)
	assert.Equal(t, expected, actual)
}

func checkEvaluate(t *testing.T, calc *calculator, expected string, op string, operands ...string) {
	t.Helper()
	//
	actual, err := calc.Evaluate(op, operands...)
	assert.NoError(t, err)
	assert.Equal(t, expected, actual)
}

func checkCompare(t *testing.T, calc *calculator, x, y string, at int, expected padic.Outcome) {
	t.Helper()
	//
	actual, err := calc.Compare(x, y, at)
	assert.NoError(t, err)
	assert.Equal(t, expected, actual, "comparing %s and %s at %d", x, y, at)
}
