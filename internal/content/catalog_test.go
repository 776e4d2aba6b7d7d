package content

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWeeklyStages_OnePerWeekInOrder(t *testing.T) {
	stages := WeeklyStages()
	if len(stages) != 42 {
		t.Fatalf("want 42 stages, got %d", len(stages))
	}
	for i, s := range stages {
		if s.Week != i+1 {
			t.Fatalf("stage %d has week %d", i, s.Week)
		}
		if s.Title == "" || s.MotherTips == "" || s.BabyDevelopment == "" {
			t.Fatalf("week %d has empty fields: %+v", s.Week, s)
		}
	}
}

func TestWeeklyStages_BucketTransitions(t *testing.T) {
	cases := []struct {
		week  int
		title string
	}{
		{1, "Early signs and gentle care"},
		{4, "Early signs and gentle care"},
		{5, "First trimester milestones"},
		{12, "First trimester milestones"},
		{13, "Second trimester comfort"},
		{27, "Second trimester comfort"},
		{28, "Third trimester prep"},
		{36, "Third trimester prep"},
		{37, "Almost there"},
		{40, "Almost there"},
		{41, "Extra monitoring"},
		{42, "Extra monitoring"},
	}
	for _, tc := range cases {
		s, ok := Week(tc.week)
		if !ok {
			t.Fatalf("Week(%d) missing", tc.week)
		}
		if s.Week != tc.week || s.Title != tc.title {
			t.Fatalf("Week(%d) = %+v, want title %q", tc.week, s, tc.title)
		}
	}
}

func TestWeek_ExactContent(t *testing.T) {
	got, ok := Week(20)
	if !ok {
		t.Fatalf("Week(20) missing")
	}
	want := WeeklyStage{
		Week:            20,
		Title:           "Second trimester comfort",
		MotherTips:      "Energy often returns. Start light movement and routine checkups.",
		BabyDevelopment: "Growing steadily; senses begin developing.",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Week(20) mismatch (-want +got):\n%s", diff)
	}
}

func TestWeek_OutOfRangeMisses(t *testing.T) {
	for _, w := range []int{-1, 0, 43} {
		if _, ok := Week(w); ok {
			t.Fatalf("Week(%d) should miss", w)
		}
	}
}

func TestWeeklyStages_ReturnsCopy(t *testing.T) {
	a := WeeklyStages()
	a[0].Title = "mutated"
	if s, _ := Week(1); s.Title == "mutated" {
		t.Fatalf("WeeklyStages leaked internal slice")
	}
}

func TestBirthContent_ExactlyTwoModes(t *testing.T) {
	bc := BirthContent()
	if len(bc) != 2 {
		t.Fatalf("want 2 modes, got %d", len(bc))
	}
	v, ok := bc[ModeVaginal]
	if !ok || v.Title != "Vaginal (Natural) Birth" || len(v.Stages) != 4 || len(v.WhenToSeekHelp) != 3 || v.Recovery == "" {
		t.Fatalf("vaginal content unexpected: %+v", v)
	}
	c, ok := bc[ModeCesarean]
	if !ok || c.Title != "Cesarean (C-Section) Birth" || len(c.WhatToExpect) != 3 || c.Aftercare == "" || c.RecoveryTimeline == "" {
		t.Fatalf("cesarean content unexpected: %+v", c)
	}

	wantStages := []Stage{
		{Name: "Early labor", Info: "Mild, irregular contractions. Rest, hydrate, and breathe."},
		{Name: "Active labor", Info: "Stronger contractions, 3-5 minutes apart. Pain relief options available."},
		{Name: "Transition", Info: "Intense but brief phase leading to pushing."},
		{Name: "Pushing & birth", Info: "Baby is born. Skin-to-skin and first feed encouraged."},
	}
	if diff := cmp.Diff(wantStages, v.Stages); diff != "" {
		t.Fatalf("vaginal stages mismatch (-want +got):\n%s", diff)
	}
}

func TestBirth_ReturnsCopy(t *testing.T) {
	a, _ := Birth(ModeVaginal)
	a.WhenToSeekHelp[0] = "mutated"
	b, _ := Birth(ModeVaginal)
	if b.WhenToSeekHelp[0] == "mutated" {
		t.Fatalf("Birth leaked internal slice")
	}
	if _, ok := Birth("breech"); ok {
		t.Fatalf("unknown mode should miss")
	}
}

func TestBirthModeContent_JSONOmitsUnusedSections(t *testing.T) {
	v, _ := Birth(ModeVaginal)
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)
	if strings.Contains(s, "what_to_expect") || strings.Contains(s, "aftercare") || !strings.Contains(s, `"stages"`) {
		t.Fatalf("vaginal JSON unexpected: %s", s)
	}

	c, _ := Birth(ModeCesarean)
	b, _ = json.Marshal(c)
	s = string(b)
	if strings.Contains(s, `"stages"`) || strings.Contains(s, `"recovery"`) || !strings.Contains(s, "recovery_timeline") {
		t.Fatalf("cesarean JSON unexpected: %s", s)
	}
}

func TestParseMode(t *testing.T) {
	cases := []struct {
		in   string
		want BirthMode
		ok   bool
	}{
		{"", ModeVaginal, true},
		{"   ", BirthMode("   "), false},
		{"vaginal", ModeVaginal, true},
		{"VAGINAL", ModeVaginal, true},
		{"VaGiNaL", ModeVaginal, true},
		{"Cesarean", ModeCesarean, true},
		{" cesarean ", BirthMode(" cesarean "), false},
		{"cesarean\t", BirthMode("cesarean\t"), false},
		{"unknown", BirthMode("unknown"), false},
		{"c-section", BirthMode("c-section"), false},
	}
	for _, tc := range cases {
		got, ok := ParseMode(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseMode(%q) = (%q,%v), want (%q,%v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseCatalog_RejectsBrokenCoverage(t *testing.T) {
	cases := map[string]string{
		"gap": `
weekly_buckets:
  - {from: 1, to: 5, title: a, mother_tips: a, baby_development: a}
  - {from: 6, to: 43, title: b, mother_tips: b, baby_development: b}
birth_modes: {vaginal: {title: v}, cesarean: {title: c}}
`,
		"short": `
weekly_buckets:
  - {from: 1, to: 42, title: a, mother_tips: a, baby_development: a}
birth_modes: {vaginal: {title: v}, cesarean: {title: c}}
`,
		"late start": `
weekly_buckets:
  - {from: 2, to: 43, title: a, mother_tips: a, baby_development: a}
birth_modes: {vaginal: {title: v}, cesarean: {title: c}}
`,
		"third mode": `
weekly_buckets:
  - {from: 1, to: 43, title: a, mother_tips: a, baby_development: a}
birth_modes: {vaginal: {title: v}, cesarean: {title: c}, water: {title: w}}
`,
		"missing mode": `
weekly_buckets:
  - {from: 1, to: 43, title: a, mother_tips: a, baby_development: a}
birth_modes: {vaginal: {title: v}, water: {title: w}}
`,
		"not yaml": "weekly_buckets: [",
	}
	for name, doc := range cases {
		if _, err := parseCatalog([]byte(doc)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestParseCatalog_SingleBucketCoversAllWeeks(t *testing.T) {
	doc := `
weekly_buckets:
  - {from: 1, to: 43, title: a, mother_tips: b, baby_development: c}
birth_modes: {vaginal: {title: v}, cesarean: {title: c}}
`
	cat, err := parseCatalog([]byte(doc))
	if err != nil {
		t.Fatalf("parseCatalog: %v", err)
	}
	weeks := expandWeeks(cat.WeeklyBuckets)
	if len(weeks) != 42 || weeks[41].Week != 42 || weeks[41].Title != "a" {
		t.Fatalf("expandWeeks unexpected: len=%d last=%+v", len(weeks), weeks[len(weeks)-1])
	}
}
