// Package content serves the curated educational content of the companion
// app: one stage record per gestational week and the two birth-mode guides.
//
// The data lives in catalog.yaml, embedded at build time and parsed once at
// package init. Everything exported here is pure; callers receive copies so
// the parsed catalog stays immutable for the life of the process.
package content

import (
	_ "embed"
	"fmt"
	"maps"
	"slices"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/tbourn/newmum-companion/internal/domain"
)

//go:embed catalog.yaml
var catalogYAML []byte

// BirthMode identifies a birth-mode guide.
type BirthMode string

const (
	ModeVaginal  BirthMode = "vaginal"
	ModeCesarean BirthMode = "cesarean"
)

// DefaultMode is served when the caller does not name a mode.
const DefaultMode = ModeVaginal

// WeeklyStage is the content shown for one gestational week.
type WeeklyStage struct {
	Week            int    `json:"week"`
	Title           string `json:"title"`
	MotherTips      string `json:"mother_tips"`
	BabyDevelopment string `json:"baby_development"`
}

// Stage is a named phase of labor.
type Stage struct {
	Name string `json:"name" yaml:"name"`
	Info string `json:"info" yaml:"info"`
}

// BirthModeContent is the guide for one birth mode. Vaginal birth is described
// by labor stages and recovery; cesarean birth by what to expect, aftercare and
// a recovery timeline. Sections a mode does not use are omitted.
type BirthModeContent struct {
	Title            string   `json:"title"                       yaml:"title"`
	Overview         string   `json:"overview"                    yaml:"overview"`
	Stages           []Stage  `json:"stages,omitempty"            yaml:"stages"`
	WhatToExpect     []string `json:"what_to_expect,omitempty"    yaml:"what_to_expect"`
	Aftercare        string   `json:"aftercare,omitempty"         yaml:"aftercare"`
	RecoveryTimeline string   `json:"recovery_timeline,omitempty" yaml:"recovery_timeline"`
	WhenToSeekHelp   []string `json:"when_to_seek_help"           yaml:"when_to_seek_help"`
	Recovery         string   `json:"recovery,omitempty"          yaml:"recovery"`
}

// bucket maps the half-open week range [From, To) to one content triple.
type bucket struct {
	From            int    `yaml:"from"`
	To              int    `yaml:"to"`
	Title           string `yaml:"title"`
	MotherTips      string `yaml:"mother_tips"`
	BabyDevelopment string `yaml:"baby_development"`
}

type catalogFile struct {
	WeeklyBuckets []bucket                       `yaml:"weekly_buckets"`
	BirthModes    map[BirthMode]BirthModeContent `yaml:"birth_modes"`
}

var (
	weekly []WeeklyStage
	birth  map[BirthMode]BirthModeContent
)

func init() {
	cat, err := parseCatalog(catalogYAML)
	if err != nil {
		panic(fmt.Sprintf("content: %v", err))
	}
	weekly = expandWeeks(cat.WeeklyBuckets)
	birth = cat.BirthModes
}

// parseCatalog decodes and checks the catalog document. Buckets must start
// at week 1, be contiguous and end past week 42; exactly the two known
// birth modes must be present.
func parseCatalog(data []byte) (catalogFile, error) {
	var cat catalogFile
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return cat, fmt.Errorf("parse catalog: %w", err)
	}
	next := domain.MinWeek
	for i, b := range cat.WeeklyBuckets {
		if b.From != next || b.To <= b.From {
			return cat, fmt.Errorf("bucket %d [%d,%d) breaks coverage at week %d", i, b.From, b.To, next)
		}
		next = b.To
	}
	if next != domain.MaxWeek+1 {
		return cat, fmt.Errorf("buckets end at week %d, want %d", next-1, domain.MaxWeek)
	}
	if len(cat.BirthModes) != 2 {
		return cat, fmt.Errorf("want 2 birth modes, got %d", len(cat.BirthModes))
	}
	for _, m := range []BirthMode{ModeVaginal, ModeCesarean} {
		if _, ok := cat.BirthModes[m]; !ok {
			return cat, fmt.Errorf("birth mode %q missing", m)
		}
	}
	return cat, nil
}

// expandWeeks produces one stage per week, first matching bucket wins.
func expandWeeks(buckets []bucket) []WeeklyStage {
	out := make([]WeeklyStage, 0, domain.MaxWeek)
	for w := domain.MinWeek; w <= domain.MaxWeek; w++ {
		for _, b := range buckets {
			if w >= b.From && w < b.To {
				out = append(out, WeeklyStage{
					Week:            w,
					Title:           b.Title,
					MotherTips:      b.MotherTips,
					BabyDevelopment: b.BabyDevelopment,
				})
				break
			}
		}
	}
	return out
}

// WeeklyStages returns the 42 weekly records ordered by week.
func WeeklyStages() []WeeklyStage {
	return slices.Clone(weekly)
}

// Week returns the stage for week w. The boolean is false when no record
// maps to w; callers are expected to reject weeks outside 1..42 first.
func Week(w int) (WeeklyStage, bool) {
	i := slices.IndexFunc(weekly, func(s WeeklyStage) bool { return s.Week == w })
	if i < 0 {
		return WeeklyStage{}, false
	}
	return weekly[i], true
}

// BirthContent returns the guides keyed by mode, exactly vaginal and cesarean.
func BirthContent() map[BirthMode]BirthModeContent {
	out := maps.Clone(birth)
	for k, v := range out {
		out[k] = v.clone()
	}
	return out
}

// Birth returns the guide for mode.
func Birth(mode BirthMode) (BirthModeContent, bool) {
	c, ok := birth[mode]
	if !ok {
		return BirthModeContent{}, false
	}
	return c.clone(), true
}

// Modes lists the known birth modes.
func Modes() []BirthMode { return []BirthMode{ModeVaginal, ModeCesarean} }

// ParseMode normalizes a user-supplied mode: case is folded and an empty
// value selects DefaultMode. Whitespace is kept, so " cesarean " is not a
// known mode. The boolean reports whether the result is a known mode.
func ParseMode(s string) (BirthMode, bool) {
	s = cases.Lower(language.Und).String(s)
	if s == "" {
		return DefaultMode, true
	}
	m := BirthMode(s)
	return m, slices.Contains(Modes(), m)
}

func (c BirthModeContent) clone() BirthModeContent {
	c.Stages = slices.Clone(c.Stages)
	c.WhatToExpect = slices.Clone(c.WhatToExpect)
	c.WhenToSeekHelp = slices.Clone(c.WhenToSeekHelp)
	return c
}
