package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"1200", "1200", true},
		{"12.34", "12.34", true},
		{"12,34", "12.34", true},
		{" 0.5 ", "0.5", true},
		{"0", "0", true},
		{"-5", "", false},
		{"+5", "", false},
		{"", "", false},
		{"12.3.4", "", false},
		{"12abc", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("%q: expected ok, got %v", tc.in, err)
		}
		if !tc.ok {
			if err == nil {
				t.Fatalf("%q: expected error", tc.in)
			}
			continue
		}
		if got.String() != tc.want {
			t.Fatalf("%q: expected %s, got %s", tc.in, tc.want, got)
		}
	}
}

func TestParseStoredAmountFailsToZero(t *testing.T) {
	if d, ok := ParseStoredAmount("not-a-number"); ok || !d.IsZero() {
		t.Fatalf("expected zero fallback, got %s ok=%v", d, ok)
	}
	if d, ok := ParseStoredAmount("  42.50"); !ok || d.String() != "42.5" {
		t.Fatalf("expected 42.5, got %s ok=%v", d, ok)
	}
}

func TestFormatAmount(t *testing.T) {
	d, _ := ParseAmount("1234.5")
	if got := FormatAmount(d); got != "1234.50" {
		t.Fatalf("expected 1234.50, got %s", got)
	}
}
