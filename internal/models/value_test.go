package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueKinds(t *testing.T) {
	n := Number(12.5)
	assert.True(t, n.IsNumber())
	f, ok := n.Float()
	assert.True(t, ok)
	assert.Equal(t, 12.5, f)

	s := Text("hello")
	assert.True(t, s.IsText())
	str, ok := s.Str()
	assert.True(t, ok)
	assert.Equal(t, "hello", str)

	assert.True(t, Absent.IsAbsent())
	_, ok = Absent.Float()
	assert.False(t, ok)
	_, ok = Absent.Str()
	assert.False(t, ok)
}

func TestValueZeroIsAbsent(t *testing.T) {
	var v Value
	assert.True(t, v.IsAbsent())
	assert.Equal(t, "", v.String())
}

func TestValueString(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		expected string
	}{
		{name: "Integer", value: Number(1234), expected: "1234"},
		{name: "Fraction", value: Number(12.34), expected: "12.34"},
		{name: "Text", value: Text("ACME Widget"), expected: "ACME Widget"},
		{name: "Absent", value: Absent, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.value.String())
		})
	}
}

func TestValueIsEmpty(t *testing.T) {
	assert.True(t, Absent.IsEmpty())
	assert.True(t, Text("   ").IsEmpty())
	assert.False(t, Text("x").IsEmpty())
	assert.False(t, Number(0).IsEmpty())
}

func TestRowCloneIsIndependent(t *testing.T) {
	row := Row{FieldSKU: Text("A-1")}
	clone := row.Clone()
	clone[FieldSKU] = Text("B-2")

	assert.Equal(t, "A-1", row.Get(FieldSKU).String())
	assert.Equal(t, "B-2", clone.Get(FieldSKU).String())
}

func TestRowGetMissingField(t *testing.T) {
	row := Row{}
	assert.True(t, row.Get(FieldModel).IsAbsent())
}

func TestTextRow(t *testing.T) {
	cells := TextRow([]string{"A-1", "", "  ", "Widget"})

	assert.Len(t, cells, 4)
	assert.Equal(t, "A-1", cells[0].String())
	assert.True(t, cells[1].IsAbsent())
	assert.True(t, cells[2].IsAbsent())
	assert.Equal(t, "Widget", cells[3].String())
}
