// Package analytics derives dashboard figures and performance trends from stored semesters.
package analytics

import (
	"github.com/jonathan/academic-tracker/internal/grading"
	"github.com/jonathan/academic-tracker/internal/types"
)

// Trend directions
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

const (
	// trendWindow is the number of most recent semesters compared for the trend
	trendWindow = 3
	// trendThreshold is the GPA change that counts as movement
	trendThreshold = 0.1
)

// Standing is the current academic position across all stored semesters.
type Standing struct {
	CGPA          float64       `json:"cgpa"`
	TotalCredits  float64       `json:"totalCredits"`
	SemesterCount int           `json:"semesterCount"`
	LatestGPA     float64       `json:"latestGPA"`
	Class         grading.Class `json:"class"`
	Scale         float64       `json:"gradingScale"`
}

// Summary describes GPA performance over time.
type Summary struct {
	Count   int     `json:"count"`
	Highest float64 `json:"highestGPA"`
	Lowest  float64 `json:"lowestGPA"`
	Average float64 `json:"averageGPA"`
	Trend   string  `json:"trend"`
}

// ComputeStanding derives the dashboard figures. LatestGPA is the GPA of the last
// semester in entry order.
func ComputeStanding(semesters []types.Semester, scale grading.Scale) Standing {
	cgpa := grading.ComputeCGPA(semesters)
	st := Standing{
		CGPA:          cgpa,
		TotalCredits:  grading.TotalSemesterCredits(semesters),
		SemesterCount: len(semesters),
		Class:         grading.Classify(cgpa, scale),
		Scale:         scale.Ceiling(),
	}
	if len(semesters) > 0 {
		st.LatestGPA = semesters[len(semesters)-1].GPA
	}
	return st
}

// Summarize computes highest, lowest and unweighted average semester GPA along with the
// recent trend. An empty history yields a zero summary with a stable trend.
func Summarize(semesters []types.Semester) Summary {
	sum := Summary{Count: len(semesters), Trend: TrendStable}
	if len(semesters) == 0 {
		return sum
	}

	sum.Highest = semesters[0].GPA
	sum.Lowest = semesters[0].GPA
	var total float64
	for _, s := range semesters {
		sum.Highest = max(sum.Highest, s.GPA)
		sum.Lowest = min(sum.Lowest, s.GPA)
		total += s.GPA
	}
	sum.Average = total / float64(len(semesters))
	sum.Trend = Trend(semesters)

	return sum
}

// Trend compares the first and last of the most recent semesters.
func Trend(semesters []types.Semester) string {
	if len(semesters) < 2 {
		return TrendStable
	}

	recent := semesters
	if len(recent) > trendWindow {
		recent = recent[len(recent)-trendWindow:]
	}

	delta := recent[len(recent)-1].GPA - recent[0].GPA
	switch {
	case delta > trendThreshold:
		return TrendImproving
	case delta < -trendThreshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}
