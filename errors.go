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

import "fmt"

// ErrorKind is the closed taxonomy of failure kinds a harpcore operation
// can surface. It replaces InMAP-style process-wide error state with a
// value carried on every result, per the reimplementation note in the
// design notes.
type ErrorKind int

const (
	OutOfMemory ErrorKind = iota
	FileNotFound
	FileOpen
	FileClose
	FileRead
	FileWrite
	InvalidArgument
	InvalidIndex
	InvalidName
	InvalidFormat
	InvalidDatetime
	InvalidType
	ArrayRankMismatch
	ArrayOutOfBounds
	VariableNotFound
	UnitConversion
	ProductError
	IngestionError
	IngestionOptionSyntax
	InvalidIngestionOption
	InvalidIngestionOptionValue
	NoData
	UnsupportedProduct
	Import
	CSVParse
)

var errorKindStrings = map[ErrorKind]string{
	OutOfMemory:                 "out of memory",
	FileNotFound:                "file not found",
	FileOpen:                    "could not open file",
	FileClose:                   "could not close file",
	FileRead:                    "could not read file",
	FileWrite:                   "could not write file",
	InvalidArgument:             "invalid argument",
	InvalidIndex:                "invalid index",
	InvalidName:                 "invalid name",
	InvalidFormat:               "invalid format",
	InvalidDatetime:             "invalid date/time",
	InvalidType:                 "invalid type",
	ArrayRankMismatch:           "array rank mismatch",
	ArrayOutOfBounds:            "array index out of bounds",
	VariableNotFound:            "variable not found",
	UnitConversion:              "unit conversion error",
	ProductError:                "product error",
	IngestionError:              "ingestion error",
	IngestionOptionSyntax:       "ingestion option syntax error",
	InvalidIngestionOption:      "invalid ingestion option",
	InvalidIngestionOptionValue: "invalid ingestion option value",
	NoData:                      "no data",
	UnsupportedProduct:          "unsupported product",
	Import:                      "import error",
	CSVParse:                    "CSV parse error",
}

func (k ErrorKind) String() string {
	if s, ok := errorKindStrings[k]; ok {
		return s
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is the result value every fallible harpcore operation returns on
// failure: a kind drawn from the closed taxonomy above, an optional
// human-readable annotation, an optional path (e.g. a file being read, or
// the name of a variable being derived), and an optional wrapped cause so
// callers can preserve cause order (§7: "inner error first").
type Error struct {
	Kind    ErrorKind
	Message string
	Path    string
	Cause   error
}

func (e *Error) Error() string {
	s := e.Kind.String()
	if e.Message != "" {
		s = e.Message + ": " + s
	}
	if e.Path != "" {
		s += " (" + e.Path + ")"
	}
	if e.Cause != nil {
		return e.Cause.Error() + ": " + s
	}
	return s
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// wrapDerive annotates err with a top-level "could not derive variable X"
// message while preserving the inner error first, per §7.
func wrapDerive(name string, err error) error {
	return &Error{Kind: VariableNotFound, Message: fmt.Sprintf("could not derive variable %q", name), Cause: err}
}
