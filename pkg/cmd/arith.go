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
	"strings"

	"github.com/spf13/cobra"
)

var arithCmd = &cobra.Command{
	Use:   "arith [flags] (op x | x op y)",
	Short: "Evaluate a p-adic operation.",
	Long: fmt.Sprintf(`Evaluate a unary operation (%s) or binary operation (%s)
over rationals embedded in the configured ring.`,
		strings.Join(UNARY_OPERATORS, ", "), strings.Join(BINARY_OPERATORS, ", ")),
	Args: cobra.RangeArgs(2, 3),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			result string
			err    error
		)
		//
		calc, err := newCalculator(getConfig(cmd))
		exitOnError(err, 2)
		//
		if len(args) == 2 {
			result, err = calc.Evaluate(args[0], args[1])
		} else {
			result, err = calc.Evaluate(args[1], args[0], args[2])
		}
		//
		exitOnError(err, 3)
		fmt.Println(wrap(result, terminalWidth()))
	},
}

func init() {
	rootCmd.AddCommand(arithCmd)
}
