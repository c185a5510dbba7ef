package leitner

import (
	"sort"

	"github.com/imhonza/cranky-language-tutor/internal/phrase"
)

// ReportEntry is one active phrase as shown in a progress report.
type ReportEntry struct {
	ID          string
	Text        string
	HasMistakes bool
	HasCorrect  bool
}

// StageReport lists the active phrases sitting in one stage.
type StageReport struct {
	Stage   phrase.Stage
	Entries []ReportEntry
}

// Report is a per-stage breakdown of the active set, stages 1 to 4.
type Report struct {
	Owner  string
	Stages []StageReport
}

// Total returns the number of phrases across all stages.
func (r Report) Total() int {
	n := 0
	for _, st := range r.Stages {
		n += len(st.Entries)
	}
	return n
}

// Report builds a snapshot of the active set grouped by stage.
func (s *Scheduler) Report() Report {
	s.mu.Lock()
	active := s.active.snapshot()
	s.mu.Unlock()

	return buildReport(s.owner, active)
}

func buildReport(owner string, active []*phrase.Phrase) Report {
	r := Report{Owner: owner}
	byStage := make(map[phrase.Stage][]ReportEntry)
	for _, p := range active {
		if !p.Stage.IsActiveStage() {
			continue
		}
		byStage[p.Stage] = append(byStage[p.Stage], ReportEntry{
			ID:          p.ID,
			Text:        p.Text,
			HasMistakes: p.Mistakes > 0,
			HasCorrect:  p.CorrectAnswers > 0,
		})
	}
	for st := phrase.StageFirst; st <= phrase.StageLastActive; st++ {
		entries := byStage[st]
		sort.Slice(entries, func(i, j int) bool { return entries[i].Text < entries[j].Text })
		r.Stages = append(r.Stages, StageReport{Stage: st, Entries: entries})
	}
	return r
}
