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

var compareCmd = &cobra.Command{
	Use:   "compare [flags] x y",
	Short: "Compare two rationals p-adically.",
	Long: `Compare two rationals embedded in the configured ring, reporting whether they
are equal, not equal, or whether this cannot be decided at the given precision.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		calc, err := newCalculator(getConfig(cmd))
		exitOnError(err, 2)
		//
		outcome, err := calc.Compare(args[0], args[1], GetInt(cmd, "at"))
		exitOnError(err, 3)
		//
		fmt.Println(outcome)
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().Int("at", -1, "compare at this absolute precision")
}
