/*
 * Copyright (c) 2022-2026, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package schema

import (
	"encoding/binary"
	"testing"
)

func TestType_Validate(t *testing.T) {
	tt := Type{Name: "int8"}

	if !tt.Validate([]byte{byte(12)}) {
		t.Fail()
	}

	tt = Type{Name: "int16"}

	b := make([]byte, 0, 2)
	b = binary.LittleEndian.AppendUint16(b, 12)
	if !tt.Validate(b) {
		t.Fail()
	}

	tt = Type{Name: "string"}
	if !tt.Validate([]byte{0, 0, 0, 0, 'h', 'i'}) {
		t.Error("wanted a length-prefixed string to validate")
	}
}

func TestArray_Validate(t *testing.T) {
	tt := Array{Type: Type{Name: "int32"}, Length: 10}

	b := make([]byte, 40)
	if !tt.Validate(b) {
		t.Fail()
	}

	if tt.Validate(b[:39]) {
		t.Error("wanted a short array to fail validation")
	}
}

func TestComposite_Validate(t *testing.T) {
	obj, err := Parse(`{'id': uint16, 'inner': {'flag': boolean}}`)
	if err != nil {
		t.Fatal(err)
	}

	if !obj.Validate(make([]byte, 3)) {
		t.Error("wanted 3 bytes to validate")
	}

	obj, err = Parse(`{'id': uint16, 'name': string}`)
	if err != nil {
		t.Fatal(err)
	}

	if !obj.Validate(make([]byte, 10)) {
		t.Error("wanted variable-length composite to accept extra bytes")
	}
	if obj.Validate(make([]byte, 5)) {
		t.Error("wanted 5 bytes to be too short")
	}
}

func TestTypeFromString(t *testing.T) {
	if TypeFromString("float64").ToSchema() != "float64" {
		t.Fail()
	}

	defer func() {
		if recover() == nil {
			t.Error("wanted unknown type to panic")
		}
	}()
	TypeFromString("float128")
}

func TestSizeOf(t *testing.T) {
	tests := []struct {
		input    string
		size     int
		variable bool
	}{
		{"int64", 8, false},
		{"binary", 4, true},
		{"[3]uint16", 6, false},
		{"{'a': int8, 'b': {'c': string}}", 5, true},
	}

	for _, tc := range tests {
		obj, err := Parse(tc.input)
		if err != nil {
			t.Fatal(err)
		}

		size, variable := SizeOf(obj)
		if size != tc.size || variable != tc.variable {
			t.Errorf("%s: wanted (%d, %v), got (%d, %v)", tc.input, tc.size, tc.variable, size, variable)
		}
	}
}
