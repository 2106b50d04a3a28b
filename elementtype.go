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
	"math"
)

// ElementType is a closed enumeration of the element types a Variable's
// buffer may hold.
type ElementType int

const (
	Int8 ElementType = iota
	Int16
	Int32
	Float32
	Float64
	String
)

func (t ElementType) String() string {
	switch t {
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case String:
		return "string"
	default:
		return fmt.Sprintf("ElementType(%d)", int(t))
	}
}

// coerceElement converts a single element from src (tagged srcType) to
// dstType, following the same widening/narrowing rules the teacher's
// data-import layer applies when netCDF variables are decoded into a single
// in-memory representation. String can only coerce to/from String.
func coerceElement(v interface{}, srcType, dstType ElementType) (interface{}, error) {
	if srcType == dstType {
		return v, nil
	}
	if srcType == String || dstType == String {
		return nil, &Error{Kind: InvalidType, Message: fmt.Sprintf("cannot coerce %s to %s", srcType, dstType)}
	}
	f := toFloat64(v, srcType)
	switch dstType {
	case Int8:
		return int8(f), nil
	case Int16:
		return int16(f), nil
	case Int32:
		return int32(f), nil
	case Float32:
		return float32(f), nil
	case Float64:
		return f, nil
	default:
		return nil, &Error{Kind: InvalidType, Message: fmt.Sprintf("unsupported destination type %s", dstType)}
	}
}

func toFloat64(v interface{}, t ElementType) float64 {
	switch t {
	case Int8:
		return float64(v.(int8))
	case Int16:
		return float64(v.(int16))
	case Int32:
		return float64(v.(int32))
	case Float32:
		return float64(v.(float32))
	case Float64:
		return v.(float64)
	default:
		return math.NaN()
	}
}

func zeroValue(t ElementType) interface{} {
	switch t {
	case Int8:
		return int8(0)
	case Int16:
		return int16(0)
	case Int32:
		return int32(0)
	case Float32:
		return float32(0)
	case Float64:
		return float64(0)
	case String:
		return ""
	default:
		return nil
	}
}
