package trend_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyqforge/backend/internal/domain/question"
	"github.com/pyqforge/backend/internal/domain/trend"
)

const currentYear = 2025

func questionsFor(subject, chapter string, years ...int) []question.Question {
	qs := make([]question.Question, len(years))
	for i, y := range years {
		qs[i] = question.Question{
			ID:      fmt.Sprintf("%s-%s-%d", subject, chapter, i),
			Subject: subject,
			Chapter: chapter,
			Year:    y,
		}
	}
	return qs
}

func find(t *testing.T, stats []trend.ChapterStat, subject, chapter string) trend.ChapterStat {
	t.Helper()
	for _, s := range stats {
		if s.Subject == subject && s.Chapter == chapter {
			return s
		}
	}
	t.Fatalf("chapter %s/%s not found", subject, chapter)
	return trend.ChapterStat{}
}

func TestAnalyze_Empty(t *testing.T) {
	stats := trend.Analyze(nil, currentYear)

	assert.NotNil(t, stats)
	assert.Empty(t, stats)
	assert.Empty(t, trend.Optimize(stats))
}

func TestAnalyze_GroupsBySubjectAndChapter(t *testing.T) {
	var qs []question.Question
	qs = append(qs, questionsFor("Physics", "Thermodynamics", 2025, 2024, 2024)...)
	qs = append(qs, questionsFor("Chemistry", "Thermodynamics", 2022)...)

	stats := trend.Analyze(qs, currentYear)
	require.Len(t, stats, 2)

	phy := find(t, stats, "Physics", "Thermodynamics")
	assert.Equal(t, 3, phy.Count)
	assert.Equal(t, []int{2024, 2025}, phy.Years)
	assert.InDelta(t, 75, phy.RawPercentage, 1e-9)
	assert.Equal(t, 100.0, phy.RecencyScore)
	assert.Equal(t, 40.0, phy.ConsistencyScore)

	chem := find(t, stats, "Chemistry", "Thermodynamics")
	assert.InDelta(t, 25, chem.RawPercentage, 1e-9)
	assert.Equal(t, 40.0, chem.RecencyScore)
}

func TestRecencyScore(t *testing.T) {
	assert.Equal(t, 40.0, trend.RecencyScore([]int{2020, 2022}, currentYear))
	assert.Equal(t, 0.0, trend.RecencyScore([]int{2010}, currentYear))
	assert.Equal(t, 0.0, trend.RecencyScore(nil, currentYear))
	assert.Equal(t, 100.0, trend.RecencyScore([]int{2026}, currentYear))
}

func TestConsistencyScore(t *testing.T) {
	assert.Equal(t, 0.0, trend.ConsistencyScore(0))
	assert.Equal(t, 60.0, trend.ConsistencyScore(3))
	assert.Equal(t, 100.0, trend.ConsistencyScore(5))
	assert.Equal(t, 100.0, trend.ConsistencyScore(9))
}

func TestAnalyze_UnknownYearsIgnored(t *testing.T) {
	stats := trend.Analyze(questionsFor("Maths", "Matrices", 0, 0), currentYear)
	require.Len(t, stats, 1)

	assert.Empty(t, stats[0].Years)
	assert.Equal(t, 0.0, stats[0].RecencyScore)
	assert.Equal(t, 0.0, stats[0].ConsistencyScore)
}

func TestOptimize_SumsToHundred(t *testing.T) {
	var qs []question.Question
	qs = append(qs, questionsFor("Physics", "Optics", 2015, 2016, 2017)...)
	qs = append(qs, questionsFor("Physics", "Waves", 2025)...)
	qs = append(qs, questionsFor("Maths", "Calculus", 2021, 2022, 2023, 2024, 2025, 2025, 2025)...)

	stats := trend.Optimize(trend.Analyze(qs, currentYear))

	var sum float64
	for _, s := range stats {
		sum += s.OptimizedPercentage
		assert.Greater(t, s.OptimizedPercentage, 0.0)
	}
	assert.InDelta(t, 100, sum, 1e-6)
}

func TestOptimize_RecentLowFrequencyDoesNotOutrankFrequent(t *testing.T) {
	var qs []question.Question
	frequent := make([]int, 40)
	for i := range frequent {
		frequent[i] = 2019
	}
	qs = append(qs, questionsFor("Physics", "Mechanics", frequent...)...)
	qs = append(qs, questionsFor("Physics", "Modern Physics", 2025)...)

	stats := trend.Optimize(trend.Analyze(qs, currentYear))
	mech := find(t, stats, "Physics", "Mechanics")
	modern := find(t, stats, "Physics", "Modern Physics")

	assert.Greater(t, mech.OptimizedPercentage, modern.OptimizedPercentage)
	assert.Greater(t, modern.OptimizedPercentage, modern.RawPercentage)
}

func TestOptimize_DoesNotMutateInput(t *testing.T) {
	stats := trend.Analyze(questionsFor("Physics", "Optics", 2025), currentYear)
	_ = trend.Optimize(stats)

	assert.Equal(t, 0.0, stats[0].OptimizedPercentage)
}

func TestRounded(t *testing.T) {
	stats := []trend.ChapterStat{
		{ChapterKey: trend.ChapterKey{Subject: "A", Chapter: "1"}, OptimizedPercentage: 100.0 / 3},
		{ChapterKey: trend.ChapterKey{Subject: "A", Chapter: "2"}, OptimizedPercentage: 100.0 / 3},
		{ChapterKey: trend.ChapterKey{Subject: "A", Chapter: "3"}, OptimizedPercentage: 100.0 / 3},
	}

	shares := trend.Rounded(stats)

	total := 0
	for _, s := range shares {
		total += s.Percent
	}
	assert.Equal(t, 100, total)
	assert.Equal(t, 34, shares[0].Percent)
	assert.Equal(t, 33, shares[1].Percent)
}

func TestRounded_OverflowNeverNegative(t *testing.T) {
	stats := []trend.ChapterStat{{ChapterKey: trend.ChapterKey{Subject: "A", Chapter: "0"}, OptimizedPercentage: 0.2}}
	rest := (100 - 0.2) / 199
	for i := 1; i < 200; i++ {
		stats = append(stats, trend.ChapterStat{
			ChapterKey:          trend.ChapterKey{Subject: "A", Chapter: fmt.Sprint(i)},
			OptimizedPercentage: rest,
		})
	}

	shares := trend.Rounded(stats)

	total := 0
	for _, s := range shares {
		assert.GreaterOrEqual(t, s.Percent, 0, s.Chapter)
		total += s.Percent
	}
	assert.Equal(t, 100, total)
	assert.Equal(t, 0, shares[0].Percent)
	assert.Equal(t, 0, shares[1].Percent)
	assert.Equal(t, 1, shares[199].Percent)
}

func TestSortByOptimizedAndSubjectTotals(t *testing.T) {
	stats := []trend.ChapterStat{
		{ChapterKey: trend.ChapterKey{Subject: "Physics", Chapter: "Optics"}, Count: 2, RawPercentage: 20, OptimizedPercentage: 20},
		{ChapterKey: trend.ChapterKey{Subject: "Chemistry", Chapter: "Bonding"}, Count: 5, RawPercentage: 50, OptimizedPercentage: 45},
		{ChapterKey: trend.ChapterKey{Subject: "Physics", Chapter: "Waves"}, Count: 3, RawPercentage: 30, OptimizedPercentage: 35},
	}

	trend.SortByOptimized(stats)
	assert.Equal(t, "Bonding", stats[0].Chapter)
	assert.Equal(t, "Optics", stats[2].Chapter)

	totals := trend.SubjectTotals(stats)
	require.Len(t, totals, 2)
	assert.Equal(t, "Chemistry", totals[0].Subject)
	assert.Equal(t, 2, totals[1].Chapters)
	assert.Equal(t, 5, totals[1].Count)
	assert.True(t, math.Abs(totals[1].OptimizedPercentage-55) < 1e-9)
}
