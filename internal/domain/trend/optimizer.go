package trend

import (
	"math"
	"sort"
)

const (
	RecencyWeight     = 0.15
	ConsistencyWeight = 0.10
)

// Blended is the un-normalised weight of a chapter: raw frequency nudged
// by recency and consistency.
func Blended(s ChapterStat) float64 {
	return s.RawPercentage + RecencyWeight*s.RecencyScore + ConsistencyWeight*s.ConsistencyScore
}

// Optimize returns a copy of stats with OptimizedPercentage set so that
// the whole set sums to 100. Empty input means "no data", not an error.
func Optimize(stats []ChapterStat) []ChapterStat {
	out := make([]ChapterStat, len(stats))
	copy(out, stats)
	if len(out) == 0 {
		return out
	}

	var sum float64
	for _, s := range out {
		sum += Blended(s)
	}
	if sum <= 0 {
		// Degenerate input (no counts at all); fall back to a flat split.
		for i := range out {
			out[i].OptimizedPercentage = 100 / float64(len(out))
		}
		return out
	}
	for i := range out {
		out[i].OptimizedPercentage = Blended(out[i]) / sum * 100
	}
	return out
}

// RoundedShare is a whole-percent view of one chapter for display.
type RoundedShare struct {
	ChapterKey
	Percent int `json:"percent"`
}

// Rounded converts optimized percentages to whole percents summing to 100.
// The rounding residual goes to the first chapter in slice order; a negative
// residual is taken from chapters in order without driving any below zero.
// This is for display only. Count allocation uses Allocate in the mocktest
// package.
func Rounded(stats []ChapterStat) []RoundedShare {
	out := make([]RoundedShare, len(stats))
	if len(stats) == 0 {
		return out
	}
	total := 0
	for i, s := range stats {
		p := int(math.Round(s.OptimizedPercentage))
		out[i] = RoundedShare{ChapterKey: s.ChapterKey, Percent: p}
		total += p
	}
	residual := 100 - total
	if residual >= 0 {
		out[0].Percent += residual
		return out
	}
	for i := range out {
		take := min(out[i].Percent, -residual)
		out[i].Percent -= take
		residual += take
		if residual == 0 {
			break
		}
	}
	return out
}

// SortByOptimized orders stats by optimized percentage, highest first,
// breaking ties by subject then chapter name.
func SortByOptimized(stats []ChapterStat) {
	sort.SliceStable(stats, func(i, j int) bool {
		a, b := stats[i], stats[j]
		if a.OptimizedPercentage != b.OptimizedPercentage {
			return a.OptimizedPercentage > b.OptimizedPercentage
		}
		if a.Subject != b.Subject {
			return a.Subject < b.Subject
		}
		return a.Chapter < b.Chapter
	})
}

// SubjectTotal aggregates chapter percentages per subject.
type SubjectTotal struct {
	Subject             string  `json:"subject"`
	Chapters            int     `json:"chapters"`
	Count               int     `json:"count"`
	RawPercentage       float64 `json:"raw_percentage"`
	OptimizedPercentage float64 `json:"optimized_percentage"`
}

// SubjectTotals sums chapter stats per subject, sorted by subject name.
func SubjectTotals(stats []ChapterStat) []SubjectTotal {
	bySubject := make(map[string]*SubjectTotal)
	for _, s := range stats {
		t, ok := bySubject[s.Subject]
		if !ok {
			t = &SubjectTotal{Subject: s.Subject}
			bySubject[s.Subject] = t
		}
		t.Chapters++
		t.Count += s.Count
		t.RawPercentage += s.RawPercentage
		t.OptimizedPercentage += s.OptimizedPercentage
	}

	out := make([]SubjectTotal, 0, len(bySubject))
	for _, t := range bySubject {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Subject < out[j].Subject })
	return out
}
