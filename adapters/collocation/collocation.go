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

// Package collocation is a reference, in-memory implementation of
// harpcore's CollocationTable collaborator (§6): shallow copy,
// filter-by-source-A, sort-by-id, and pair iteration over a fixed slice of
// pairs. A production deployment would back this with a database query or
// an on-disk index (the teacher's aep/gis packages build similar
// spatial-join tables backed by a database); the in-memory slice here is
// the narrow seam §1 asks the core to call through.
package collocation

import (
	"sort"

	"github.com/spatialmodel/harpcore"
)

// Table is a fixed slice of pairs annotated with the A-side source
// identifier each pair was produced against, so FilterBySourceA has
// something to filter on.
type Table struct {
	pairs     []harpcore.CollocationPair
	sourceA   []string // parallel to pairs: the A-side source identifier
}

// New returns a Table over pairs, where sourceA[i] is the source-A
// identifier pairs[i] was matched against. len(sourceA) must equal
// len(pairs).
func New(pairs []harpcore.CollocationPair, sourceA []string) *Table {
	return &Table{pairs: pairs, sourceA: sourceA}
}

func (t *Table) Copy() harpcore.CollocationTable {
	return &Table{
		pairs:   append([]harpcore.CollocationPair(nil), t.pairs...),
		sourceA: append([]string(nil), t.sourceA...),
	}
}

func (t *Table) FilterBySourceA(sourceID string) harpcore.CollocationTable {
	var pairs []harpcore.CollocationPair
	var src []string
	for i, p := range t.pairs {
		if t.sourceA[i] == sourceID {
			pairs = append(pairs, p)
			src = append(src, t.sourceA[i])
		}
	}
	return &Table{pairs: pairs, sourceA: src}
}

func (t *Table) SortByID() harpcore.CollocationTable {
	type row struct {
		pair harpcore.CollocationPair
		src  string
	}
	rows := make([]row, len(t.pairs))
	for i := range t.pairs {
		rows[i] = row{pair: t.pairs[i], src: t.sourceA[i]}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].pair.ID < rows[j].pair.ID })
	out := &Table{pairs: make([]harpcore.CollocationPair, len(rows)), sourceA: make([]string, len(rows))}
	for i, r := range rows {
		out.pairs[i] = r.pair
		out.sourceA[i] = r.src
	}
	return out
}

func (t *Table) Pairs() []harpcore.CollocationPair {
	return t.pairs
}

var _ harpcore.CollocationTable = &Table{}
