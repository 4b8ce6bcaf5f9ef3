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

	"github.com/spf13/cobra"
)

var solveCmd = &cobra.Command{
	Use:   "solve [flags] a c",
	Short: "Solve x = a + c*x^2 by self-reference.",
	Long: `Solve the equation x = a + c*x^2 over a lazy ring, by defining x in terms of
itself.  This converges when c has positive valuation, and otherwise reports
that the definition looks circular.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		digits, err := Solve(getConfig(cmd), args[0], args[1])
		exitOnError(err, 3)
		//
		fmt.Println(wrap(digits, terminalWidth()))
	},
}

func init() {
	rootCmd.AddCommand(solveCmd)
}
