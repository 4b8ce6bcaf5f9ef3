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
package lazy

import (
	"fmt"
	"sync"

	"github.com/consensys/go-padic/pkg/padic"
	"github.com/consensys/go-padic/pkg/util/math"
	log "github.com/sirupsen/logrus"
)

// DEFAULT_HALTING_DIGITS determines how many digits are examined when searching
// for the valuation of an element, before giving up.
const DEFAULT_HALTING_DIGITS = 40

// DEFAULT_MAX_DEPTH bounds the nesting of digit demands.  Well-founded
// definitions nest no deeper than the expressions they are built from, hence
// exceeding this indicates a definition which cannot be resolved.
const DEFAULT_MAX_DEPTH = 100000

// Options provides a mechanism for controlling the resource bounds of a ring.
type Options struct {
	// HaltingDigits is the number of digits examined in search of a non-zero
	// digit (e.g. to determine the valuation of a divisor).
	HaltingDigits uint
	// MaxDepth is the deepest permitted nesting of digit demands.
	MaxDepth uint
}

// DEFAULT_OPTIONS gives the options used when none are specified.
var DEFAULT_OPTIONS = Options{DEFAULT_HALTING_DIGITS, DEFAULT_MAX_DEPTH}

// NodeID is a stable identifier for a node within a ring.
type NodeID uint32

// Ring is an arena of lazily evaluated p-adic numbers.  Each number is a node
// holding the digits produced so far, along with a generator for producing
// further digits on demand.  Generators refer to other nodes only by their
// identifiers, hence definitions may be (mutually) recursive without creating
// reference cycles.  A ring is thread safe: all access to its nodes is
// protected by a single mutex, and a digit becomes visible only once it is
// fully resolved.
type Ring struct {
	ctx     *padic.Context
	options Options
	nodes   []*node
	// current nesting of digit demands
	depth uint
	// mutex required to ensure thread safety.
	mux sync.Mutex
}

// node holds the known digits of a lazy p-adic number.  Digits below start are
// all zero, hence start is a lower bound on the valuation.
type node struct {
	// exponent of first memoised digit
	start int
	// memoised digits at exponents start, start+1, ...  These are only ever
	// appended to.
	memo []uint32
	// generator for subsequent digits
	gen generator
	// zero indicates an exact zero
	zero bool
}

// frontier returns the exponent of the next digit to be generated.
func (n *node) frontier() int {
	return n.start + len(n.memo)
}

// generator produces the digits of a node, one at a time.
type generator interface {
	// next generates the digit at the frontier of a given node.  This must
	// obtain any operand digits it requires before updating its own state, such
	// that a failure leaves the generator unchanged.
	next(r *Ring, self *node) (uint32, error)
}

// NewRing constructs a new lazy ring over a given context.
func NewRing(ctx *padic.Context, options Options) *Ring {
	return &Ring{ctx: ctx, options: options}
}

// Context returns the context of this ring.
func (r *Ring) Context() *padic.Context {
	return r.ctx
}

// Prime returns the prime of this ring.
func (r *Ring) Prime() uint32 {
	return r.ctx.Prime()
}

// DefaultDigits returns the number of digits shown when displaying elements.
func (r *Ring) DefaultDigits() uint {
	return r.ctx.DefaultDigits()
}

// PrecisionCap returns the greatest precision of any element, which is always
// +∞.
func (r *Ring) PrecisionCap() math.InfInt {
	return math.PosInfinity
}

func (r *Ring) String() string {
	return fmt.Sprintf("Lazy %d-adic Ring", r.Prime())
}

// push allocates a new node.  The mutex must be held.
func (r *Ring) push(start int, gen generator) NodeID {
	r.nodes = append(r.nodes, &node{start: start, gen: gen})
	//
	return NodeID(len(r.nodes) - 1)
}

// materialize ensures all digits of a given node below exponent n are
// memoised.  The mutex must be held.
func (r *Ring) materialize(id NodeID, n int) error {
	var nd = r.nodes[id]
	//
	if nd.frontier() >= n {
		return nil
	}
	//
	r.depth++
	defer func() { r.depth-- }()
	//
	if r.depth > r.options.MaxDepth {
		log.Debugf("digit demands nested beyond %d (node %d, exponent %d)", r.options.MaxDepth, id, n-1)
		return fmt.Errorf("%w: demand nesting exceeded %d", padic.ErrCircularDefinition, r.options.MaxDepth)
	}
	//
	for nd.frontier() < n {
		d, err := nd.gen.next(r, nd)
		if err != nil {
			return err
		}
		//
		nd.memo = append(nd.memo, d)
	}
	//
	return nil
}

// digit returns the digit of a given node at exponent e.  The mutex must be
// held.
func (r *Ring) digit(id NodeID, e int) (uint32, error) {
	var nd = r.nodes[id]
	//
	if e < nd.start {
		return 0, nil
	} else if err := r.materialize(id, e+1); err != nil {
		return 0, err
	}
	//
	return nd.memo[e-nd.start], nil
}

// window returns the memoised digits of a node at exponents lo..hi-1, where lo
// is no lower than its start.  The mutex must be held.
func (r *Ring) window(id NodeID, lo, hi int) ([]uint32, error) {
	var nd = r.nodes[id]
	//
	if err := r.materialize(id, hi); err != nil {
		return nil, err
	}
	//
	return nd.memo[lo-nd.start : hi-nd.start], nil
}

// search looks for the first non-zero digit of a node below exponent limit,
// returning its exponent (if found).  The mutex must be held.
func (r *Ring) search(id NodeID, limit int) (int, bool, error) {
	var nd = r.nodes[id]
	//
	for e := nd.start; e < limit; e++ {
		d, err := r.digit(id, e)
		//
		if err != nil {
			return 0, false, err
		} else if d != 0 {
			return e, true, nil
		}
	}
	//
	return 0, false, nil
}

// halting returns the exponent at which valuation searches for a given node
// give up.
func (r *Ring) halting(id NodeID) int {
	return r.nodes[id].start + int(r.options.HaltingDigits)
}
