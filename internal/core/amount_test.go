package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1", true},
		{"1.0", "1", true},
		{"12.34", "12.34", true},
		{"12,34", "12.34", true},
		{"0", "0", true},
		{"0.01", "0.01", true},
		{" 2.50 ", "2.5", true},
		{"-1", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got.String() != tc.out {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestParseOptionalAmount(t *testing.T) {
	got, err := ParseOptionalAmount("")
	if err != nil || !got.IsZero() {
		t.Fatalf("blank field should default to zero, got %s (err=%v)", got, err)
	}
	got, err = ParseOptionalAmount("  ")
	if err != nil || !got.IsZero() {
		t.Fatalf("whitespace field should default to zero, got %s (err=%v)", got, err)
	}
	if _, err := ParseOptionalAmount("x"); err == nil {
		t.Fatalf("garbage should still fail")
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct{ in, out string }{
		{"0", "0.00"},
		{"500", "500.00"},
		{"12.345", "12.35"},
		{"12.5", "12.50"},
	}
	for _, tc := range cases {
		d, err := ParseAmount(tc.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.in, err)
		}
		if got := FormatAmount(d); got != tc.out {
			t.Fatalf("%q expected %q, got %q", tc.in, tc.out, got)
		}
	}
}
