package identity

import "testing"

func TestNormalizeUsername(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Alice", "alice"},
		{"  Alice  ", "alice"},
		{"BOB_99", "bob_99"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeUsername(tc.in); got != tc.want {
			t.Fatalf("NormalizeUsername(%q)=%q want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Alice@Example.COM "); got != "alice@example.com" {
		t.Fatalf("NormalizeEmail=%q", got)
	}
}
