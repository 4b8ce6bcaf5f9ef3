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

	"github.com/consensys/go-padic/pkg/padic"
	"github.com/consensys/go-padic/pkg/util/math"
	log "github.com/sirupsen/logrus"
)

// selfRefGen generates the digits of a self-referential element from its
// definition.  A definition is well-founded when the digit at exponent n of the
// definition depends only on digits of this element below n.  Otherwise,
// resolving a digit demands that same digit again, and this is reported as a
// circular definition.
type selfRefGen struct {
	def NodeID
	// bound indicates whether a definition has been given
	bound bool
	// resolving indicates a digit is currently being resolved
	resolving bool
	// checked indicates the definition has been confirmed to vanish below the
	// declared start.
	checked bool
}

func (g *selfRefGen) next(r *Ring, self *node) (uint32, error) {
	var e = self.frontier()
	//
	switch {
	case !g.bound:
		return 0, padic.ErrUnbound
	case g.resolving:
		log.Debugf("digit %d of self-reference demanded whilst being resolved", e)
		return 0, fmt.Errorf("%w (digit %d)", padic.ErrCircularDefinition, e)
	}
	//
	g.resolving = true
	defer func() { g.resolving = false }()
	//
	if !g.checked {
		v, found, err := r.search(g.def, self.start)
		//
		if err != nil {
			return 0, err
		} else if found {
			return 0, fmt.Errorf("%w: definition has non-zero digit at %d, below declared valuation %d",
				padic.ErrInvalidOperation, v, self.start)
		}
		//
		g.checked = true
	}
	//
	return r.digit(g.def, e)
}

// SelfRef constructs an unbound self-reference of valuation at least zero.  A
// definition must subsequently be given using Set.
func (r *Ring) SelfRef() Element {
	return r.SelfRefAt(0)
}

// SelfRefAt constructs an unbound self-reference whose valuation is declared to
// be at least v.
func (r *Ring) SelfRefAt(v int) Element {
	// Obtain lock
	r.mux.Lock()
	defer r.mux.Unlock()
	//
	return Element{r, r.push(v, &selfRefGen{}), math.PosInfinity, nil}
}

// Set binds the definition of a self-reference.  The definition may refer to
// this element (and to other self-references), provided every such occurrence
// is guarded by a factor of positive valuation.  A self-reference can be bound
// only once.
func (x Element) Set(def Element) error {
	if err := x.check(def); err != nil {
		return err
	}
	// Obtain lock
	x.ring.mux.Lock()
	defer x.ring.mux.Unlock()
	//
	gen, ok := x.ring.nodes[x.id].gen.(*selfRefGen)
	//
	switch {
	case !ok:
		return fmt.Errorf("%w: element is not a self-reference", padic.ErrInvalidOperation)
	case gen.bound:
		return padic.ErrAlreadyBound
	}
	//
	gen.def, gen.bound = def.id, true
	//
	log.Debugf("bound self-reference %d to node %d", x.id, def.id)
	//
	return nil
}
