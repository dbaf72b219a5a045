package services

import (
	"math"
	"sort"
	"time"

	"github.com/emreacar/schoolhub/internal/app/models"
)

// AttendanceSummary is the derived, read-only view over a set of attendance
// records. Days with no record are not part of TotalDays.
type AttendanceSummary struct {
	TotalDays   int     `json:"totalDays"`
	PresentDays int     `json:"presentDays"`
	AbsentDays  int     `json:"absentDays"`
	LateDays    int     `json:"lateDays"`
	ExcusedDays int     `json:"excusedDays"`
	Percentage  float64 `json:"attendancePercentage"`
}

// GradePoint is one graded assignment feeding a weighted average.
type GradePoint struct {
	Score    float64
	MaxScore float64
	Weight   float64
}

// AggregationService computes derived read-only views (attendance
// percentages, grade averages) over raw records. It is stateless: every
// method is a pure function of its inputs, never consults the clock, and
// never returns an error — absence of data is a distinguishable zero/nil
// result, not a failure.
type AggregationService struct{}

// NewAggregationService creates a new AggregationService.
func NewAggregationService() *AggregationService {
	return &AggregationService{}
}

// SummarizeAttendance counts records per status within [start, end] inclusive
// and derives the attendance percentage: present days over total marked days,
// rounded to one decimal. Records dated outside the range are ignored.
// Unmarked days never enter the denominator, and an empty range yields 0%,
// not an error. Excused and medical markings are reported together.
func (s *AggregationService) SummarizeAttendance(records []models.Attendance, start, end time.Time) AttendanceSummary {
	var summary AttendanceSummary

	for _, rec := range records {
		if rec.Date.Before(start) || rec.Date.After(end) {
			continue
		}
		summary.TotalDays++
		switch rec.Status {
		case models.AttendancePresent:
			summary.PresentDays++
		case models.AttendanceAbsent:
			summary.AbsentDays++
		case models.AttendanceLate:
			summary.LateDays++
		case models.AttendanceExcused, models.AttendanceMedical:
			summary.ExcusedDays++
		}
	}

	if summary.TotalDays > 0 {
		summary.Percentage = roundToOneDecimal(float64(summary.PresentDays) / float64(summary.TotalDays) * 100)
	}
	return summary
}

// AverageGrades computes the weighted average percentage over graded work:
// sum(score/max * weight) / sum(weight) * 100. Entries with a non-positive
// max score are invalid and excluded from both sums. When no valid entries
// remain the result is nil, which callers must render as "no data" — a
// student with no graded work is not a student scoring 0%.
func (s *AggregationService) AverageGrades(points []GradePoint) *float64 {
	var weightedSum, totalWeight float64

	for _, p := range points {
		if p.MaxScore <= 0 {
			continue
		}
		weight := p.Weight
		if weight <= 0 {
			weight = 1
		}
		weightedSum += p.Score / p.MaxScore * weight
		totalWeight += weight
	}

	if totalWeight == 0 {
		return nil
	}
	avg := roundToOneDecimal(weightedSum / totalWeight * 100)
	return &avg
}

// LetterFor resolves the letter grade and grade points for a percentage
// against a school's grading scale: bands are tried from the highest MinScore
// down and the first band at or below the percentage wins. A percentage under
// every band falls through to F with zero points.
func (s *AggregationService) LetterFor(scales []models.GradingScale, percentage float64) (string, float64) {
	sorted := make([]models.GradingScale, len(scales))
	copy(sorted, scales)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MinScore > sorted[j].MinScore })

	for _, band := range sorted {
		if percentage >= band.MinScore {
			return band.GradeLetter, band.GradePoint
		}
	}
	return "F", 0.0
}

func roundToOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
