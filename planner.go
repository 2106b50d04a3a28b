/*
Copyright © 2026 the harpcore authors.
This file is part of harpcore.

harpcore is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

harpcore is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with harpcore.  If not, see <http://www.gnu.org/licenses/>.
*/

package harpcore

import (
	"fmt"
	"strings"
)

// memoEntry caches one goal's planning outcome for the lifetime of a single
// resolution tree (one top-level GetDerived/AddDerived call). Since the registry and product are both read-only during planning
// (§3, §5), a goal's outcome never changes within that tree, so a second
// request for an identical goal (a shared sub-dependency of two sibling
// conversions) can reuse the first instead of recomputing it.
type memoEntry struct {
	v         *Variable
	temporary bool
	err       error
}

// goal is the internal planning target: a name, an optional requested
// element type (nil preserves whatever the chosen chain produces), an
// optional requested unit ("" means no coercion), and the dimension
// signature (with optional per-axis independent lengths) the result must
// match.
type goal struct {
	name string
	typ  *ElementType
	unit string
	dims []DimSpec
}

func dimKindsOf(dims []DimSpec) DimSignature {
	out := make(DimSignature, len(dims))
	for i, d := range dims {
		out[i] = d.Kind
	}
	return out
}

// independentLengthsMatch reports whether v's axis lengths satisfy every
// explicit independent-length constraint in dims. Kind equality is assumed
// to have already been checked by the caller.
func independentLengthsMatch(vdims []Dimension, dims []DimSpec) bool {
	for i, d := range dims {
		if d.Kind != Independent || d.Length == nil {
			continue
		}
		if i >= len(vdims) || vdims[i].Length != *d.Length {
			return false
		}
	}
	return true
}

// candidateMatchesGoal implements §4.2 step 2c: dimension kinds and,
// where the goal pins an independent length, that length too.
func candidateMatchesGoal(c *Conversion, g goal) bool {
	if !c.Output.DimKinds().Equal(dimKindsOf(g.dims)) {
		return false
	}
	for i, d := range g.dims {
		if d.Kind != Independent || d.Length == nil {
			continue
		}
		cl := c.Output.Dims[i].Length
		if cl == nil || *cl != *d.Length {
			return false
		}
	}
	return true
}

// visitStack is the explicit "stack of (conversion, rank) pairs, checked on
// entry, popped on exit" the design notes call for in place of the
// original implementation's skip_mask bit flipping: equivalent cycle
// protection (§4.2, §8 P6). Each call site pushes before resolving a
// conversion's sources and pops right after, before it inspects the
// result, so the stack is restored whether the sources resolved or not.
type visitStack struct {
	entries []visitEntry
	memo    map[string]memoEntry
}

type visitEntry struct {
	name string
	rank int
}

func newVisitStack() *visitStack {
	return &visitStack{memo: make(map[string]memoEntry)}
}

// memoKey returns the stable cache key for g, used to memoize satisfy
// across sibling branches of one resolution tree. goal's dims slice isn't
// itself comparable, so the key is built directly from goal's fields
// rather than reaching for a reflection-based hash of the whole struct.
func memoKey(g goal) string {
	var b strings.Builder
	b.WriteString(g.name)
	b.WriteByte('\x00')
	if g.typ != nil {
		fmt.Fprintf(&b, "%d", *g.typ)
	}
	b.WriteByte('\x00')
	b.WriteString(g.unit)
	for _, d := range g.dims {
		fmt.Fprintf(&b, "\x00%d:", d.Kind)
		if d.Length != nil {
			fmt.Fprintf(&b, "%d", *d.Length)
		}
	}
	return b.String()
}

// onStack reports whether (name, rank) is already being planned higher up
// the recursion — the cycle-freedom check (§8 P6). The same name at a
// different rank is permitted, matching §4.2's "permitting the same name
// at a different rank elsewhere in the tree".
func (s *visitStack) onStack(name string, rank int) bool {
	for _, e := range s.entries {
		if e.name == name && e.rank == rank {
			return true
		}
	}
	return false
}

func (s *visitStack) push(name string, rank int) {
	s.entries = append(s.entries, visitEntry{name: name, rank: rank})
}

func (s *visitStack) pop() {
	s.entries = s.entries[:len(s.entries)-1]
}
