package grammar

import (
	"strings"
	"testing"

	"github.com/randalmurphal/aocp/parser"
)

func TestRegister(t *testing.T) {
	Register("test_hex", func(*Builder, *Node) (parser.Parser, error) {
		return parser.NewInt(16), nil
	})
	defer Unregister("test_hex")

	if !IsRegistered("test_hex") {
		t.Fatal("expected 'test_hex' to be registered")
	}

	p, err := Build(&Node{Type: "test_hex"})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	got, err := p.Parse("ff")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got != 255 {
		t.Errorf("got %v, want 255", got)
	}
}

func TestRegister_Panic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("int", buildInt)
}

func TestTypes(t *testing.T) {
	want := []string{
		"bool", "chain", "custom", "dict", "int", "intlist", "list",
		"lookup", "replace", "set", "sort", "text", "tuple",
	}
	got := Types()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Types() = %v, want %v", got, want)
	}
}

func TestUnregister(t *testing.T) {
	Register("test_tmp", buildInt)
	Unregister("test_tmp")

	if IsRegistered("test_tmp") {
		t.Error("expected 'test_tmp' to be unregistered")
	}
}

func TestRegisterFunc(t *testing.T) {
	RegisterFunc("test_double", func(text string) (any, error) {
		return text + text, nil
	})
	defer UnregisterFunc("test_double")

	found := false
	for _, name := range Funcs() {
		if name == "test_double" {
			found = true
		}
	}
	if !found {
		t.Fatalf("Funcs() = %v, missing test_double", Funcs())
	}

	p, err := Build(&Node{Type: "custom", Func: "test_double"})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	got, _ := p.Parse("ab")
	if got != "abab" {
		t.Errorf("got %v, want abab", got)
	}
}

func TestDefaultFuncs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "upper", text: "ab", want: "AB"},
		{name: "lower", text: "AB", want: "ab"},
		{name: "trim", text: " ab\n", want: "ab"},
		{name: "reverse", text: "héllo", want: "olléh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, ok := lookupFunc(tt.name)
			if !ok {
				t.Fatalf("func %q not registered", tt.name)
			}
			got, err := fn(tt.text)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	fn, _ := lookupFunc("len")
	if n, _ := fn("héllo"); n != 5 {
		t.Errorf("len = %v, want 5", n)
	}
}
