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

// ListConversions implements §4.2's list_conversions. With product nil, it
// dumps the entire registry grouped by output name: each conversion's
// output signature (and note) on one line, followed by one indented line
// per source. With product given, it walks every registered name and, for
// each enabled conversion, prints its source signatures, recursively the
// conversions registered for each source the product does not hold, and
// its output signature. A source that the product does not hold and that
// no conversion produces turns the output line into a one-line error
// instead of aborting the listing. Conversions are listed whether or not
// they are applicable: a source that is registered but cannot itself be
// derived is not reported as an error on the conversion that needs it.
func (r *Resolver) ListConversions(product *Product) string {
	var b strings.Builder
	if product == nil {
		for _, c := range r.Registry.Iter() {
			b.WriteString(formatSignature(c.Output))
			if c.Note != "" {
				fmt.Fprintf(&b, "  // %s", c.Note)
			}
			b.WriteString("\n")
			for _, s := range c.Sources {
				fmt.Fprintf(&b, "    <- %s\n", formatSignature(s))
			}
		}
		return b.String()
	}

	seen := map[string]bool{}
	for _, name := range r.Registry.order {
		if seen[name] {
			continue
		}
		seen[name] = true
		r.printGoalTree(&b, product, newVisitStack(), name, 0)
	}
	return b.String()
}

func (r *Resolver) printGoalTree(b *strings.Builder, product *Product, stack *visitStack, name string, indent int) {
	pad := strings.Repeat("  ", indent)
	candidates, ok := r.Registry.Lookup(name)
	if !ok {
		return
	}
	for _, c := range candidates {
		if c.Enabled != nil && !c.Enabled() {
			continue
		}
		if stack.onStack(name, c.Rank()) {
			fmt.Fprintf(b, "%s%s: cycle, skipped\n", pad, formatSignature(c.Output))
			continue
		}
		if product.Has(name, c.Output.DimKinds()) {
			fmt.Fprintf(b, "%s%s  (present in product)\n", pad, formatSignature(c.Output))
			continue
		}
		stack.push(name, c.Rank())
		var failed error
		for _, sig := range c.Sources {
			if product.Has(sig.Name, sig.DimKinds()) {
				fmt.Fprintf(b, "%s  <- %s  (present in product)\n", pad, formatSignature(sig))
				continue
			}
			if _, ok := r.Registry.Lookup(sig.Name); !ok {
				failed = &Error{Kind: VariableNotFound, Message: sig.Name}
				break
			}
			fmt.Fprintf(b, "%s  <- %s\n", pad, formatSignature(sig))
			r.printGoalTree(b, product, stack, sig.Name, indent+2)
		}
		stack.pop()
		if failed != nil {
			fmt.Fprintf(b, "%s%s: %s\n", pad, formatSignature(c.Output), failed.Error())
			continue
		}
		fmt.Fprintf(b, "%s%s\n", pad, formatSignature(c.Output))
	}
}

func formatSignature(s Signature) string {
	var dims []string
	for _, d := range s.Dims {
		if d.Length != nil {
			dims = append(dims, fmt.Sprintf("%s=%d", d.Kind, *d.Length))
		} else {
			dims = append(dims, d.Kind.String())
		}
	}
	unit := s.Unit
	if unit == "" {
		unit = "-"
	}
	return fmt.Sprintf("%s {%s} %s [%s]", s.Name, strings.Join(dims, ","), s.Type, unit)
}
