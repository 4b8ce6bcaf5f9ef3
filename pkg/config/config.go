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
package config

import (
	"bytes"
	"fmt"
	"math/big"
	"os"

	"github.com/consensys/go-padic/pkg/lazy"
	"github.com/consensys/go-padic/pkg/padic"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// FIELD_POLICY names the capped relative precision field.
const FIELD_POLICY = "capped-rel-field"

// LAZY_POLICY names lazily evaluated elements.
const LAZY_POLICY = "lazy"

// Config determines the ring (or field) in which arithmetic takes place.
type Config struct {
	// Prime p, which must be below 2³¹.
	Prime uint32 `yaml:"prime" validate:"required,prime"`
	// DefaultDigits is the number of digits shown for lazy elements.
	DefaultDigits uint `yaml:"default_digits" validate:"min=1"`
	// PrecisionCap is the cap of a bounded precision policy.
	PrecisionCap uint `yaml:"precision_cap" validate:"min=1"`
	// Policy names the precision policy.
	Policy string `yaml:"policy" validate:"oneof=fixed-mod capped-abs capped-rel capped-rel-field lazy"`
	// HaltingDigits bounds valuation searches of lazy elements.
	HaltingDigits uint `yaml:"halting_digits" validate:"min=1"`
	// MaxDepth bounds the nesting of digit demands for lazy elements.
	MaxDepth uint `yaml:"max_depth" validate:"min=1"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	//
	_ = validate.RegisterValidation("prime", validatePrime)
}

// validatePrime checks a field holds a prime below 2³¹.
func validatePrime(fl validator.FieldLevel) bool {
	p := fl.Field().Uint()
	//
	return p < 1<<31 && new(big.Int).SetUint64(p).ProbablyPrime(20)
}

// Default returns the default configuration, which is the 5-adic ring with
// capped relative precision 20.
func Default() Config {
	return Config{
		Prime:         5,
		DefaultDigits: padic.DefaultDigits,
		PrecisionCap:  20,
		Policy:        padic.CappedRelative.String(),
		HaltingDigits: lazy.DEFAULT_HALTING_DIGITS,
		MaxDepth:      lazy.DEFAULT_MAX_DEPTH,
	}
}

// Load reads a configuration from a YAML file.  Any settings not given in the
// file take their default values.  Unknown settings are rejected.
func Load(path string) (Config, error) {
	var config = Default()
	//
	data, err := os.ReadFile(path)
	if err != nil {
		return config, err
	}
	//
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	//
	if err := decoder.Decode(&config); err != nil {
		return config, fmt.Errorf("parse config %s: %w", path, err)
	}
	//
	return config, config.Validate()
}

// Validate checks the settings of this configuration.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	//
	return nil
}

// IsLazy determines whether this configuration describes lazy elements.
func (c Config) IsLazy() bool {
	return c.Policy == LAZY_POLICY
}

// Context constructs the prime context described by this configuration.
func (c Config) Context() (*padic.Context, error) {
	return padic.NewContext(c.Prime, c.DefaultDigits)
}

// BoundedPolicy constructs the bounded precision policy described by this
// configuration.
func (c Config) BoundedPolicy() (*padic.Policy, error) {
	ctx, err := c.Context()
	//
	switch {
	case err != nil:
		return nil, err
	case c.IsLazy():
		return nil, fmt.Errorf("%w: lazy elements have no precision policy", padic.ErrInvalidOperation)
	case c.Policy == FIELD_POLICY:
		return ctx.FieldPolicy(c.PrecisionCap)
	}
	//
	kind, err := padic.ParseKind(c.Policy)
	if err != nil {
		return nil, err
	}
	//
	return ctx.Policy(kind, c.PrecisionCap)
}

// Ring constructs a lazy ring over the prime context described by this
// configuration.
func (c Config) Ring() (*lazy.Ring, error) {
	ctx, err := c.Context()
	if err != nil {
		return nil, err
	}
	//
	return lazy.NewRing(ctx, lazy.Options{HaltingDigits: c.HaltingDigits, MaxDepth: c.MaxDepth}), nil
}
