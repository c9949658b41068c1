package geotext

import "testing"

func TestLooksLikeHouseNumber(t *testing.T) {
	cases := []struct {
		in     string
		prefix bool
		want   bool
	}{
		{"12", false, true},
		{"12a", false, true},
		{"12-14", false, true},
		{"12a-14b", false, true},
		{"rivoli", false, false},
		{"", false, false},
		{"12-", false, false},
		{"12-", true, true},
		{"12", true, true},
	}

	for _, tc := range cases {
		if got := LooksLikeHouseNumber(tc.in, tc.prefix); got != tc.want {
			t.Errorf("LooksLikeHouseNumber(%q, %v) = %v, want %v", tc.in, tc.prefix, got, tc.want)
		}
	}
}

func TestHouseNumbersMatch(t *testing.T) {
	cases := []struct {
		ref, query string
		prefix     bool
		want       bool
	}{
		{"1", "1", false, true},
		{"007", "7", false, true},
		{"7a", "7A", false, true},
		{"12-14", "12-14", false, true},
		{"12", "13", false, false},
		{"12-14", "12", true, true},
		{"12-14", "12", false, false},
		{"", "1", false, false},
	}

	for _, tc := range cases {
		if got := HouseNumbersMatch(tc.ref, tc.query, tc.prefix); got != tc.want {
			t.Errorf("HouseNumbersMatch(%q, %q, %v) = %v, want %v", tc.ref, tc.query, tc.prefix, got, tc.want)
		}
	}
}
