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

// Package ingestopts implements the §6 ingestion-option string grammar:
// semicolon-separated name=value pairs passed to a product importer to
// steer per-format ingestion behavior. It is hand-rolled against the
// ASCII-only grammar §6 gives (name ::= [A-Za-z][A-Za-z0-9_]*) rather than
// reaching for a general key=value/INI library, since the grammar is a
// single production simpler than anything those libraries parse; see the
// design notes for the full reasoning.
package ingestopts

import (
	"strings"

	"github.com/spatialmodel/harpcore"
)

// Option is one name=value pair from an ingestion-option string.
type Option struct {
	Name  string
	Value string
}

// Parse parses s under the §6 grammar:
//
//	options ::= option (';' option)*
//	option  ::= name '=' value
//	name    ::= [A-Za-z][A-Za-z0-9_]*
//	value   ::= run of non-whitespace, non-';' characters
//
// Whitespace is allowed around names, '=', and values. A later option with
// a name already seen replaces the earlier one in place, preserving the
// position of its first occurrence (matching the literal example in the
// design notes: "a=1;a=2" -> [("a","2")]).
func Parse(s string) ([]Option, error) {
	var opts []Option
	index := make(map[string]int)

	for _, raw := range strings.Split(s, ";") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		eq := strings.IndexByte(raw, '=')
		if eq < 0 {
			return nil, &harpcore.Error{Kind: harpcore.IngestionOptionSyntax, Message: "missing '=' in option " + quote(raw)}
		}
		name := strings.TrimSpace(raw[:eq])
		value := strings.TrimSpace(raw[eq+1:])
		if !isValidName(name) {
			return nil, &harpcore.Error{Kind: harpcore.IngestionOptionSyntax, Message: "invalid option name " + quote(name)}
		}
		if strings.ContainsAny(value, " \t\r\n") {
			return nil, &harpcore.Error{Kind: harpcore.IngestionOptionSyntax, Message: "invalid value " + quote(value) + " for option " + quote(name)}
		}

		if i, ok := index[name]; ok {
			opts[i].Value = value
		} else {
			index[name] = len(opts)
			opts = append(opts, Option{Name: name, Value: value})
		}
	}
	return opts, nil
}

// Serialize renders opts back into the §6 grammar, in list order, with no
// extraneous whitespace. Parse(Serialize(opts)) == opts for any opts Parse
// could have produced (P7).
func Serialize(opts []Option) string {
	parts := make([]string, len(opts))
	for i, o := range opts {
		parts[i] = o.Name + "=" + o.Value
	}
	return strings.Join(parts, ";")
}

func isValidName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if i == 0 {
			if !isAlpha(c) {
				return false
			}
			continue
		}
		if !isAlpha(c) && !isDigit(c) && c != '_' {
			return false
		}
	}
	return true
}

func isAlpha(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func quote(s string) string {
	return "\"" + s + "\""
}
