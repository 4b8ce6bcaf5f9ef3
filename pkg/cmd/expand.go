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

	"github.com/consensys/go-padic/pkg/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var expandCmd = &cobra.Command{
	Use:   "expand [flags] value1 value2 ...",
	Short: "Expand rationals into p-adic digits.",
	Long: `Expand one or more rationals (e.g. 17/42) into their p-adic digits.  When
several primes are given, the expansions for each are computed concurrently.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			cfg    = getConfig(cmd)
			primes = GetUintSlice(cmd, "primes")
			width  = terminalWidth()
		)
		//
		if len(primes) == 0 {
			primes = []uint{uint(cfg.Prime)}
		}
		//
		reports, err := expandAll(cfg, primes, args)
		exitOnError(err, 3)
		//
		for _, report := range reports {
			fmt.Println(wrap(report, width))
		}
	},
}

// expandAll expands each value for each prime, producing one report per prime.
func expandAll(cfg config.Config, primes []uint, values []string) ([]string, error) {
	var (
		reports = make([]string, len(primes))
		group   errgroup.Group
	)
	//
	for i, p := range primes {
		ith := cfg
		ith.Prime = uint32(p)
		//
		group.Go(func() error {
			report, err := expandReport(ith, values)
			reports[i] = report
			//
			return err
		})
	}
	//
	return reports, group.Wait()
}

func expandReport(cfg config.Config, values []string) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	//
	calc, err := newCalculator(cfg)
	if err != nil {
		return "", err
	}
	//
	var builder strings.Builder
	//
	builder.WriteString(calc.String())
	//
	for _, value := range values {
		digits, err := calc.Expand(value)
		if err != nil {
			return "", err
		}
		//
		log.Debugf("expanded %s in %s", value, calc)
		builder.WriteString(fmt.Sprintf("\n%s = %s", value, digits))
	}
	//
	return builder.String(), nil
}

func init() {
	rootCmd.AddCommand(expandCmd)
	expandCmd.Flags().UintSlice("primes", nil, "expand for each of these primes")
}
