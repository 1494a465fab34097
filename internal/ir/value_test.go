package ir

import (
	"math/big"
	"testing"
)

func TestValueEqual(t *testing.T) {
	cases := []struct {
		name string
		a, b Value
		want bool
	}{
		{"equal nums", NumInt64(5), NumInt64(5), true},
		{"different nums", NumInt64(5), NumInt64(6), false},
		{"bool true vs true", Bool(true), Bool(true), true},
		{"bool true vs false", Bool(true), Bool(false), false},
		{"none vs none", None(), None(), true},
		{"none vs num", None(), NumInt64(0), false},
		{"id vs id same name", ID("x"), ID("x"), true},
		{"id vs id different name", ID("x"), ID("y"), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.a.Equal(c.b); got != c.want {
				t.Errorf("Equal(%+v, %+v) = %v, want %v", c.a, c.b, got, c.want)
			}
		})
	}
}

func TestValueEqualBigIntBeyond2_53(t *testing.T) {
	huge, ok := new(big.Int).SetString("9223372036854775808000", 10) // beyond int64 and 2^53
	if !ok {
		t.Fatal("failed to parse huge literal")
	}
	a := Num(huge)
	b := Num(new(big.Int).Set(huge))
	if !a.Equal(b) {
		t.Fatalf("expected equal big.Int values to compare equal")
	}
}
