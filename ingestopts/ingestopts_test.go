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

package ingestopts

import (
	"testing"

	"github.com/spatialmodel/harpcore"
)

func TestParseTrimsWhitespace(t *testing.T) {
	got, err := Parse("a=1; b = two ;c=3")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []Option{{"a", "1"}, {"b", "two"}, {"c", "3"}}
	if len(got) != len(want) {
		t.Fatalf("Parse = %v, want %v", got, want)
	}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("Parse[%d] = %v, want %v", i, got[i], w)
		}
	}
}

func TestParseLaterDuplicateReplacesInPlace(t *testing.T) {
	got, err := Parse("a=1;a=2")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []Option{{"a", "2"}}
	if len(got) != 1 || got[0] != want[0] {
		t.Fatalf("Parse = %v, want %v", got, want)
	}
}

func TestParseRejectsMissingName(t *testing.T) {
	_, err := Parse("= 5")
	if err == nil {
		t.Fatal("expected a syntax error for a missing option name")
	}
	herr, ok := err.(*harpcore.Error)
	if !ok || herr.Kind != harpcore.IngestionOptionSyntax {
		t.Fatalf("error = %v, want IngestionOptionSyntax", err)
	}
}

func TestParseRejectsMissingEquals(t *testing.T) {
	_, err := Parse("justaname")
	if err == nil {
		t.Fatal("expected a syntax error for an option with no '='")
	}
}

func TestParseRejectsNameStartingWithDigit(t *testing.T) {
	_, err := Parse("1x=5")
	if err == nil {
		t.Fatal("expected a syntax error for a name starting with a digit")
	}
}

func TestParseIgnoresEmptySegments(t *testing.T) {
	got, err := Parse("a=1;;b=2;")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Parse = %v, want 2 options", got)
	}
}

// P7: Parse(Serialize(opts)) round-trips for any opts Parse could produce.
func TestParseSerializeRoundTrip(t *testing.T) {
	cases := [][]Option{
		nil,
		{{"a", "1"}},
		{{"a", "1"}, {"b", "two"}, {"c_3", "x"}},
	}
	for _, opts := range cases {
		s := Serialize(opts)
		got, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(Serialize(%v)): %v", opts, err)
		}
		if len(got) != len(opts) {
			t.Fatalf("round trip length mismatch: got %v, want %v", got, opts)
		}
		for i := range opts {
			if got[i] != opts[i] {
				t.Fatalf("round trip[%d] = %v, want %v", i, got[i], opts[i])
			}
		}
	}
}
