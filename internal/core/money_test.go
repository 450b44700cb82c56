package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1", true},
		{"1.23", "1.23", true},
		{"1,23", "1.23", true},
		{"0.01", "0.01", true},
		{" 2.50 ", "2.5", true},
		{"0", "0", true},   // below the widget minimum, still accepted
		{"-1", "-1", true}, // same
		{"1.005", "1.005", true},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || !got.Equal(decimal.RequireFromString(tc.out)) {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err != ErrInvalidAmount {
			t.Fatalf("%q expected ErrInvalidAmount, got %v", tc.in, err)
		}
	}
}

func TestFormatDollars(t *testing.T) {
	cases := map[string]string{
		"294.67": "$294.67",
		"450":    "$450.00",
		"0.5":    "$0.50",
		"-3.1":   "-$3.10",
	}
	for in, want := range cases {
		if got := FormatDollars(decimal.RequireFromString(in)); got != want {
			t.Errorf("FormatDollars(%s) = %q, want %q", in, got, want)
		}
	}
}
