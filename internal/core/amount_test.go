package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out float64
		ok  bool
	}{
		{"1", 1, true},
		{"12.50", 12.5, true},
		{"0", 0, true},
		{"-3", -3, true},
		{"-0.01", -0.01, true},
		{" 2.50 ", 2.5, true},
		{"+4.2", 4.2, true},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"12,50", 0, false},
		{"", 0, false},
		{"  ", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %v, got %v (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}
