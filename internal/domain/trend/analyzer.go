package trend

import (
	"sort"

	"github.com/pyqforge/backend/internal/domain/question"
)

const (
	// recencyDecay is the number of points lost per year since a chapter
	// was last examined.
	recencyDecay = 20.0
	// consistencyYears is how many distinct years earn a full consistency score.
	consistencyYears = 5.0
)

// ChapterKey identifies a chapter inside its subject. Chapter names are not
// unique across subjects ("Thermodynamics" exists in Physics and Chemistry).
type ChapterKey struct {
	Subject string `json:"subject"`
	Chapter string `json:"chapter"`
}

// ChapterStat is derived from a corpus on demand and never persisted.
type ChapterStat struct {
	ChapterKey
	Count               int     `json:"count"`
	RawPercentage       float64 `json:"raw_percentage"`
	Years               []int   `json:"years"`
	RecencyScore        float64 `json:"recency_score"`
	ConsistencyScore    float64 `json:"consistency_score"`
	OptimizedPercentage float64 `json:"optimized_percentage"`
}

// Analyze groups questions by (subject, chapter) and computes frequency,
// recency and consistency for each group. Groups are returned in order of
// first appearance in qs. An empty corpus yields an empty slice.
func Analyze(qs []question.Question, currentYear int) []ChapterStat {
	if len(qs) == 0 {
		return []ChapterStat{}
	}

	index := make(map[ChapterKey]int)
	var stats []ChapterStat
	years := make([]map[int]struct{}, 0)

	for _, q := range qs {
		key := ChapterKey{Subject: q.Subject, Chapter: q.Chapter}
		i, ok := index[key]
		if !ok {
			i = len(stats)
			index[key] = i
			stats = append(stats, ChapterStat{ChapterKey: key})
			years = append(years, make(map[int]struct{}))
		}
		stats[i].Count++
		if q.Year > 0 {
			years[i][q.Year] = struct{}{}
		}
	}

	total := float64(len(qs))
	for i := range stats {
		stats[i].Years = sortedYears(years[i])
		stats[i].RawPercentage = float64(stats[i].Count) / total * 100
		stats[i].RecencyScore = RecencyScore(stats[i].Years, currentYear)
		stats[i].ConsistencyScore = ConsistencyScore(len(stats[i].Years))
	}
	return stats
}

// RecencyScore is 100 for a chapter seen this year, losing 20 points per
// year of staleness and floored at 0. A chapter with no known years scores 0.
func RecencyScore(years []int, currentYear int) float64 {
	if len(years) == 0 {
		return 0
	}
	last := years[len(years)-1]
	stale := currentYear - last
	if stale < 0 {
		stale = 0
	}
	return max(0, 100-recencyDecay*float64(stale))
}

// ConsistencyScore rewards appearing in up to five distinct years.
func ConsistencyScore(distinctYears int) float64 {
	return min(100, float64(distinctYears)/consistencyYears*100)
}

func sortedYears(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for y := range set {
		out = append(out, y)
	}
	sort.Ints(out)
	return out
}
