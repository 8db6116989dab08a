package parser

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "short input",
			err:  NewError("int", "abc", ErrNoInteger),
			want: `int "abc": no integer found`,
		},
		{
			name: "control characters quoted",
			err:  NewError("bool", "x\n", ErrNotBoolean),
			want: `bool "x\n": not a boolean`,
		},
		{
			name: "long input truncated",
			err:  NewError("tuple", strings.Repeat("a", 50), ErrFormatMismatch),
			want: `tuple "` + strings.Repeat("a", 37) + `...": format mismatch`,
		},
		{
			name: "truncated on a rune boundary",
			err:  NewError("dict", strings.Repeat("é", 30), ErrArity),
			want: `dict "` + strings.Repeat("é", 18) + `...": arity mismatch`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	err := NewError("lookup", "x", ErrKeyNotFound)

	if !errors.Is(err, ErrKeyNotFound) {
		t.Error("expected errors.Is to match ErrKeyNotFound")
	}
	if errors.Is(err, ErrArity) {
		t.Error("did not expect errors.Is to match ErrArity")
	}

	var perr *Error
	if !errors.As(error(err), &perr) {
		t.Fatal("expected errors.As to find *Error")
	}
	if perr.Op != "lookup" || perr.Input != "x" {
		t.Errorf("got Op=%q Input=%q", perr.Op, perr.Input)
	}
}
