package money

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"1", 100},
		{"1.5", 150},
		{"1.50", 150},
		{"1.567", 157},
		{"12.34", 1234},
		{"-2.00", -200},
		{"-0.01", -1},
		{" 3.25 ", 325},
		{".5", 50},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseAmount(tc.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %d cents, got %d", tc.want, got)
			}
		})
	}
}

func TestParseAmountRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "  ", "abc", "12,50", "NaN", "Inf", "-Inf"} {
		if _, err := ParseAmount(in); err == nil {
			t.Errorf("expected error for %q", in)
		}
	}
}

func TestFormatCents(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0.00"},
		{7, "0.07"},
		{100, "1.00"},
		{150, "1.50"},
		{-150, "-1.50"},
		{1234, "12.34"},
		{-5, "-0.05"},
	}

	for _, tc := range cases {
		if got := FormatCents(tc.in); got != tc.want {
			t.Errorf("FormatCents(%d) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, 99, 100, 12345, -12345, -1} {
		got, err := ParseAmount(FormatCents(cents))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != cents {
			t.Fatalf("round trip of %d produced %d", cents, got)
		}
	}
}
