/*
 * Copyright (c) 2022-2026, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package schema

import (
	"fmt"
	"strings"
)

type Object interface {
	Validate([]byte) bool
	ToSchema() string
}

type (
	Type struct {
		Name string
	}

	Array struct {
		Length int
		Type   Type
	}

	Composite struct {
		Keys   []string
		Values []Object
	}
)

// typeSizes maps every primitive type to its encoded size in bytes. String
// and binary values carry a 4 byte length prefix.
var typeSizes = map[string]int{
	"boolean": 1,
	"int8":    1,
	"uint8":   1,
	"int16":   2,
	"uint16":  2,
	"int32":   4,
	"uint32":  4,
	"int64":   8,
	"uint64":  8,
	"float32": 4,
	"float64": 8,
	"string":  4,
	"binary":  4,
}

func IsTypeName(name string) bool {
	_, ok := typeSizes[name]
	return ok
}

func TypeFromString(input string) Object {
	if !IsTypeName(input) {
		panic("unknown schema type")
	}
	return &Type{Name: input}
}

func (t Type) Size() int {
	return typeSizes[t.Name]
}

// Variable reports whether values of this type have a variable length.
func (t Type) Variable() bool {
	return t.Name == "string" || t.Name == "binary"
}

func (t Type) Validate(val []byte) bool {
	if t.Variable() {
		return len(val) >= t.Size()
	}
	return len(val) == t.Size()
}

func (t Type) ToSchema() string {
	return t.Name
}

func (a Array) Size() int {
	return a.Length * a.Type.Size()
}

func (a Array) Validate(val []byte) bool {
	// string / binary is not allowed.
	if a.Type.Variable() {
		panic(fmt.Sprintf("invalid type found in array: %s", a.Type.Name))
	}

	return len(val) == a.Size()
}

func (a Array) ToSchema() string {
	return fmt.Sprintf("[%d]%s", a.Length, a.Type.ToSchema())
}

// Size returns the minimum encoded size of the composite and whether any of
// its members has a variable length.
func (c Composite) Size() (int, bool) {
	var size int
	variable := false

	for _, val := range c.Values {
		s, v := SizeOf(val)
		size += s
		variable = variable || v
	}

	return size, variable
}

// SizeOf returns the minimum encoded size of obj and whether its values may be
// longer than that.
func SizeOf(obj Object) (int, bool) {
	switch v := obj.(type) {
	case *Type:
		return v.Size(), v.Variable()
	case *Array:
		return v.Size(), false
	case *Composite:
		return v.Size()
	}
	return 0, false
}

func (c Composite) Validate(val []byte) bool {
	size, variable := c.Size()

	if variable {
		return len(val) >= size
	}
	return len(val) == size
}

func (c Composite) ToSchema() string {
	var schema strings.Builder

	schema.WriteString("{")

	for idx := range c.Keys {
		key := c.Keys[idx]
		val := c.Values[idx].ToSchema()

		fmt.Fprintf(&schema, `'%s':%s,`, key, val)
	}

	schema.WriteString("}")
	return schema.String()
}

// Insert a key and value, keeping the keys sorted
func (c *Composite) Insert(key string, val Object) {
	idx := len(c.Keys)
	for i, k := range c.Keys {
		if strings.Compare(key, k) <= 0 {
			idx = i
			break
		}
	}

	c.Keys = append(c.Keys[:idx], append([]string{key}, c.Keys[idx:]...)...)
	c.Values = append(c.Values[:idx], append([]Object{val}, c.Values[idx:]...)...)
}
