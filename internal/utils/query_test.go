package utils

import (
	"errors"
	"testing"
)

func TestParseInt(t *testing.T) {
	cases := []struct {
		s       string
		want    int
		wantErr bool
	}{
		{"42", 42, false},
		{" 7 ", 7, false},
		{"-13", -13, false},
		{"0012", 12, false},
		{"", 0, true},
		{"x", 0, true},
		{"12.5", 0, true},
		// overflow
		{"999999999999999999999999", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseInt(tc.s)
		if tc.wantErr {
			if !errors.Is(err, ErrNotInteger) {
				t.Fatalf("ParseInt(%q) err = %v; want ErrNotInteger", tc.s, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("ParseInt(%q) = %d, %v; want %d", tc.s, got, err, tc.want)
		}
	}
}

func TestOptionalInt(t *testing.T) {
	if v, err := OptionalInt(""); v != nil || err != nil {
		t.Fatalf("empty: got %v, %v", v, err)
	}
	if v, err := OptionalInt("  "); v != nil || err != nil {
		t.Fatalf("blank: got %v, %v", v, err)
	}
	v, err := OptionalInt("20")
	if err != nil || v == nil || *v != 20 {
		t.Fatalf("20: got %v, %v", v, err)
	}
	if _, err := OptionalInt("twenty"); !errors.Is(err, ErrNotInteger) {
		t.Fatalf("twenty: err = %v", err)
	}
}
