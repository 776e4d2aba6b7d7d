package pregnancy

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
)

func date(t *testing.T, s string) civil.Date {
	t.Helper()
	d, err := civil.ParseDate(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func TestEstimateDueDate(t *testing.T) {
	cases := []struct{ lmp, want string }{
		{"2024-01-01", "2024-10-07"}, // crosses leap February
		{"2023-01-01", "2023-10-08"}, // non-leap year
		{"2023-06-15", "2024-03-21"}, // crosses year and leap February
		{"2024-03-01", "2024-12-06"},
		{"1999-12-31", "2000-10-06"}, // century leap year
		{"2100-01-01", "2100-10-08"}, // century non-leap year
	}
	for _, tc := range cases {
		got := EstimateDueDate(date(t, tc.lmp))
		if got.String() != tc.want {
			t.Fatalf("EstimateDueDate(%s) = %s, want %s", tc.lmp, got, tc.want)
		}
	}
}

func TestEstimateDueDate_IsExactly280Days(t *testing.T) {
	start := civil.Date{Year: 2023, Month: time.January, Day: 1}
	for i := 0; i < 800; i += 7 {
		lmp := start.AddDays(i)
		if d := EstimateDueDate(lmp).DaysSince(lmp); d != 280 {
			t.Fatalf("lmp %s: due date is %d days later", lmp, d)
		}
	}
}

func TestResolveDueDate(t *testing.T) {
	lmp := date(t, "2024-01-01")
	supplied := date(t, "2024-11-11")

	if got := ResolveDueDate(nil, nil); got != nil {
		t.Fatalf("nil/nil should stay nil, got %v", got)
	}
	if got := ResolveDueDate(&lmp, nil); got == nil || got.String() != "2024-10-07" {
		t.Fatalf("lmp only should estimate, got %v", got)
	}
	if got := ResolveDueDate(&lmp, &supplied); got == nil || got.String() != "2024-11-11" {
		t.Fatalf("supplied due date must be kept verbatim, got %v", got)
	}
	if got := ResolveDueDate(nil, &supplied); got == nil || *got != supplied {
		t.Fatalf("due date without lmp must be kept, got %v", got)
	}

	got := ResolveDueDate(nil, &supplied)
	got.Day = 1
	if supplied.Day != 11 {
		t.Fatalf("ResolveDueDate must not alias its input")
	}
}

func TestGestationalWeek(t *testing.T) {
	lmp := date(t, "2024-01-01")
	cases := []struct {
		today string
		want  int
	}{
		{"2023-12-01", 1}, // before LMP clamps to 1
		{"2024-01-01", 1},
		{"2024-01-07", 1},
		{"2024-01-08", 2},
		{"2024-10-07", 41}, // due date: 280 days = 40 completed weeks
		{"2025-06-01", 42}, // clamps to 42
	}
	for _, tc := range cases {
		if got := GestationalWeek(lmp, date(t, tc.today)); got != tc.want {
			t.Fatalf("GestationalWeek(%s) = %d, want %d", tc.today, got, tc.want)
		}
	}
}
