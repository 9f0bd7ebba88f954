package pyliteral

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseCatalogField(t *testing.T) {
	got, err := Parse(`[{'id': 28, 'name': 'Action'}, {"id": 12, "name": "Children's"}]`)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	want := []any{
		map[string]any{"id": int64(28), "name": "Action"},
		map[string]any{"id": int64(12), "name": "Children's"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Parse = %#v, want %#v", got, want)
	}
}

func TestParseScalars(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"None", nil},
		{"True", true},
		{"False", false},
		{"-3", int64(-3)},
		{"2.5e1", 25.0},
		{"'a\\'b'", "a'b"},
		{`"caf\xe9"`, "café"},
		{`"été"`, "été"},
		{"'ab' 'cd'", "abcd"},
		{"(1, 'x')", []any{int64(1), "x"}},
		{"[]", []any{}},
		{"{}", map[string]any{}},
		{"[1, 2,]", []any{int64(1), int64(2)}},
		{"{1: 'one'}", map[string]any{"1": "one"}},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", tt.in, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Parse(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestParseRejectsNonLiterals(t *testing.T) {
	inputs := []string{
		"",
		"[",
		"[{'name': 'x'}",
		"__import__('os').system('true')",
		"[1 2]",
		"{'a' 1}",
		"'unterminated",
		"nan",
		"[1] extra",
		"lambda: 1",
	}
	for _, in := range inputs {
		if _, err := Parse(in); !errors.Is(err, ErrSyntax) {
			t.Errorf("Parse(%q) error = %v, want ErrSyntax", in, err)
		}
	}
}
