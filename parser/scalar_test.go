package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt_Parse(t *testing.T) {
	tests := []struct {
		name string
		base int
		text string
		want int
	}{
		{name: "plain", text: "1", want: 1},
		{name: "surrounding whitespace", text: "  1\n", want: 1},
		{name: "large", text: "52634875", want: 52634875},
		{name: "negative", text: "\n-2542", want: -2542},
		{name: "explicit plus", text: "+7", want: 7},
		{name: "binary", base: 2, text: "101\t", want: 5},
		{name: "binary stops at invalid digit", base: 2, text: "1102", want: 6},
		{name: "hex", base: 16, text: "ff", want: 255},
		{name: "hex uppercase", base: 16, text: "x=1A", want: 26},
		{name: "base 36", base: 36, text: "z", want: 35},
		{name: "hex inside prose", base: 16, text: "value: 10", want: 16},
		{name: "hex skips letters of words", base: 16, text: "Monkey 0:", want: 0},
		{name: "hex prefers decimal digits", base: 16, text: "add 1f", want: 31},
		{name: "hex color", base: 16, text: "(#70c710)", want: 7390992},
		{name: "hex signed word", base: 16, text: "x-1f", want: -31},
		{name: "first embedded integer", text: "x=12, y=3", want: 12},
		{name: "sign attached", text: "<x=-4>", want: -4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewInt(tt.base).Parse(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInt_NoInteger(t *testing.T) {
	for _, text := range []string{"", "abc", "  ", "-"} {
		_, err := NewInt(0).Parse(text)
		assert.ErrorIs(t, err, ErrNoInteger, "text %q", text)
	}

	_, err := NewInt(2).Parse("789")
	assert.ErrorIs(t, err, ErrNoInteger)
}

func TestNewInt_Base(t *testing.T) {
	assert.Equal(t, 10, NewInt(0).Base())
	assert.Equal(t, 16, NewInt(16).Base())
	assert.Panics(t, func() { NewInt(1) })
	assert.Panics(t, func() { NewInt(37) })
	assert.True(t, ValidBase(0))
	assert.False(t, ValidBase(-2))
}

func TestIntList_Parse(t *testing.T) {
	tests := []struct {
		name string
		base int
		text string
		want []int
	}{
		{name: "sentence", text: "move 3 from 1 to 2", want: []int{3, 1, 2}},
		{name: "signed", text: "-1,+2, 3", want: []int{-1, 2, 3}},
		{name: "coordinates", text: "p=<9,-3> v=<1,0>", want: []int{9, -3, 1, 0}},
		{name: "binary", base: 2, text: "10 11", want: []int{2, 3}},
		{name: "hex whole words", base: 16, text: "Monkey 0: a, 1f", want: []int{0, 10, 31}},
		{name: "hex ignores mixed words", base: 16, text: "test 9g ff", want: []int{255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewIntList(tt.base).Parse(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := NewIntList(0).Parse("no digits here")
	assert.ErrorIs(t, err, ErrNoInteger)

	_, err = NewIntList(16).Parse("Monkey Island")
	assert.ErrorIs(t, err, ErrNoInteger)
}

func TestBool_Parse(t *testing.T) {
	tests := []struct {
		name    string
		t, f    string
		text    string
		want    bool
		wantErr bool
	}{
		{name: "default true", text: "1", want: true},
		{name: "default false", text: "0", want: false},
		{name: "trimmed", text: " 1\n", want: true},
		{name: "custom true", t: "<", f: ">", text: "<", want: true},
		{name: "custom false", t: "<", f: ">", text: ">", want: false},
		{name: "words", t: "pos", f: "neg", text: "neg", want: false},
		{name: "neither token", text: "2", wantErr: true},
		{name: "empty", text: "", wantErr: true},
		{name: "case sensitive", t: "T", f: "F", text: "t", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewBool(tt.t, tt.f).Parse(tt.text)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNotBoolean)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCustom_Parse(t *testing.T) {
	suffix := Custom(func(text string) (any, error) { return text + "c", nil })
	got, err := suffix.Parse("ab")
	require.NoError(t, err)
	assert.Equal(t, "abc", got)

	got, err = Custom(Func(strings.Fields).Parse).Parse("a b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)

	got, err = Custom(nil).Parse("same")
	require.NoError(t, err)
	assert.Equal(t, "same", got)

	failing := Custom(func(text string) (any, error) { return nil, ErrKeyNotFound })
	_, err = failing.Parse("x")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}
