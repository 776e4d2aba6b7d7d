package services

import (
	"strconv"
	"strings"
	"sync"

	"github.com/tbourn/newmum-companion/internal/content"
	"github.com/tbourn/newmum-companion/internal/search"
)

// Search limits for ContentService.Search.
const (
	DefaultSearchLimit = 5
	MaxSearchLimit     = 20
)

// Hit kinds.
const (
	HitWeek  = "week"
	HitBirth = "birth"
)

// MsgQueryRequired is returned when a search has no query text.
const MsgQueryRequired = "q is required"

// SearchHit is one ranked catalog entry. Week hits cover the inclusive range
// FromWeek..ToWeek that shares the same content; birth hits name the mode.
type SearchHit struct {
	Kind     string  `json:"kind" example:"week"`
	FromWeek int     `json:"from_week,omitempty" example:"5"`
	ToWeek   int     `json:"to_week,omitempty" example:"12"`
	Mode     string  `json:"mode,omitempty" example:"cesarean"`
	Title    string  `json:"title" example:"First trimester milestones"`
	Snippet  string  `json:"snippet"`
	Score    float64 `json:"score" example:"0.25"`
}

type catalogIndex struct {
	idx  search.Index
	hits map[string]SearchHit
}

// catalogSearch is built once; the catalog never changes at runtime.
var catalogSearch = sync.OnceValue(buildCatalogIndex)

func buildCatalogIndex() catalogIndex {
	var docs []search.Doc
	hits := map[string]SearchHit{}

	add := func(id string, hit SearchHit, parts ...string) {
		docs = append(docs, search.Doc{ID: id, Text: strings.Join(parts, " ")})
		hits[id] = hit
	}

	stages := content.WeeklyStages()
	for _, r := range groupStages(stages) {
		st := stages[r[0]]
		id := HitWeek + ":" + strconv.Itoa(st.Week)
		add(id, SearchHit{
			Kind:     HitWeek,
			FromWeek: st.Week,
			ToWeek:   stages[r[1]].Week,
			Title:    st.Title,
		}, st.Title, st.MotherTips, st.BabyDevelopment)
	}

	for _, m := range content.Modes() {
		bc, ok := content.Birth(m)
		if !ok {
			continue
		}
		parts := []string{bc.Title, bc.Overview, bc.Aftercare, bc.RecoveryTimeline, bc.Recovery}
		for _, s := range bc.Stages {
			parts = append(parts, s.Name, s.Info)
		}
		parts = append(parts, bc.WhatToExpect...)
		parts = append(parts, bc.WhenToSeekHelp...)
		add(HitBirth+":"+string(m), SearchHit{Kind: HitBirth, Mode: string(m), Title: bc.Title}, parts...)
	}

	return catalogIndex{idx: search.New(docs), hits: hits}
}

// groupStages returns [first, last] index ranges of consecutive stages that
// carry identical content.
func groupStages(stages []content.WeeklyStage) [][2]int {
	var out [][2]int
	for i := 0; i < len(stages); {
		j := i
		for j+1 < len(stages) && sameContent(stages[j+1], stages[i]) {
			j++
		}
		out = append(out, [2]int{i, j})
		i = j + 1
	}
	return out
}

func sameContent(a, b content.WeeklyStage) bool {
	return a.Title == b.Title && a.MotherTips == b.MotherTips && a.BabyDevelopment == b.BabyDevelopment
}

// Search ranks weekly and birth content against q by keyword overlap.
// limit <= 0 selects DefaultSearchLimit; larger values are capped.
func (ContentService) Search(q string, limit int) ([]SearchHit, error) {
	if strings.TrimSpace(q) == "" {
		return nil, Validation(MsgQueryRequired)
	}
	switch {
	case limit <= 0:
		limit = DefaultSearchLimit
	case limit > MaxSearchLimit:
		limit = MaxSearchLimit
	}

	ci := catalogSearch()
	res := ci.idx.TopK(q, limit)
	out := make([]SearchHit, 0, len(res))
	for _, r := range res {
		h := ci.hits[r.ID]
		h.Snippet = r.Snippet
		h.Score = r.Score
		out = append(out, h)
	}
	return out, nil
}
