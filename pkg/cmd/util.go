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
	"os"
	"strings"

	"github.com/consensys/go-padic/pkg/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// GetFlag gets an expected flag, or panic if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	return r
}

// GetInt gets an expected int, or panic if an error arises.
func GetInt(cmd *cobra.Command, flag string) int {
	r, err := cmd.Flags().GetInt(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	return r
}

// GetUint gets an expected uint, or panic if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	return r
}

// GetUintSlice gets an expected uint slice, or panic if an error arises.
func GetUintSlice(cmd *cobra.Command, flag string) []uint {
	r, err := cmd.Flags().GetUintSlice(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	return r
}

// GetString gets an expected string, or panic if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	return r
}

// getConfig determines the configuration for a command.  This is read from the
// given configuration file (if any), and then overridden by any flags set
// explicitly on the command line.
func getConfig(cmd *cobra.Command) config.Config {
	var (
		cfg      = config.Default()
		filename = GetString(cmd, "config")
		flags    = cmd.Flags()
		err      error
	)
	//
	if filename != "" {
		cfg, err = config.Load(filename)
	}
	//
	if err == nil {
		if flags.Changed("prime") {
			cfg.Prime = uint32(GetUint(cmd, "prime"))
		}
		//
		if flags.Changed("policy") {
			cfg.Policy = GetString(cmd, "policy")
		}
		//
		if flags.Changed("cap") {
			cfg.PrecisionCap = GetUint(cmd, "cap")
		}
		//
		if flags.Changed("digits") {
			cfg.DefaultDigits = GetUint(cmd, "digits")
		}
		//
		if flags.Changed("halting") {
			cfg.HaltingDigits = GetUint(cmd, "halting")
		}
		//
		if flags.Changed("max-depth") {
			cfg.MaxDepth = GetUint(cmd, "max-depth")
		}
		//
		err = cfg.Validate()
	}
	// Handle error
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return cfg
}

// terminalWidth returns the width of the terminal attached to stdout, or 0 if
// stdout is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	//
	if term.IsTerminal(fd) {
		if width, _, err := term.GetSize(fd); err == nil {
			return width
		}
	}
	//
	return 0
}

// wrap breaks a line of text into lines of at most width characters.  A
// non-positive width leaves the text unchanged.
func wrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}
	//
	var builder strings.Builder
	//
	for len(text) > width {
		builder.WriteString(text[:width])
		builder.WriteString("\n")
		//
		text = text[width:]
	}
	//
	builder.WriteString(text)
	//
	return builder.String()
}

// exitOnError reports an error and exits with the given code.
func exitOnError(err error, code int) {
	if err != nil {
		fmt.Println(err)
		os.Exit(code)
	}
}
