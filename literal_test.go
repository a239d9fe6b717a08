package config

import (
	"math"
	"testing"
)

func TestLiteral(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{in: nil, want: "nil"},
		{in: "/tmp", want: `"/tmp"`},
		{in: "say \"hi\"", want: `"say \"hi\""`},
		{in: Symbol("verbose"), want: ":verbose"},
		{in: true, want: "true"},
		{in: 5, want: "5"},
		{in: int64(-3), want: "-3"},
		{in: uint8(7), want: "7"},
		{in: 5.0, want: "5.0"},
		{in: 2.5, want: "2.5"},
		{in: float32(0.5), want: "0.5"},
		{in: 1e21, want: "1e+21"},
		{in: math.Inf(1), want: `float("inf")`},
		{in: []any{1, "a", Symbol("b")}, want: `[1, "a", :b]`},
		{in: []string{}, want: "[]"},
		{in: map[string]any{"b": 2, "a": []int{1}}, want: `{"a": [1], "b": 2}`},
	}
	for _, tt := range tests {
		if got := Literal(tt.in); got != tt.want {
			t.Fatalf("Literal(%#v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{in: "me@home", want: "me@home"},
		{in: Symbol("debug"), want: "debug"},
		{in: 25, want: "25"},
		{in: 3.5, want: "3.5"},
		{in: []any{"a"}, want: `["a"]`},
	}
	for _, tt := range tests {
		if got := Display(tt.in); got != tt.want {
			t.Fatalf("Display(%#v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
