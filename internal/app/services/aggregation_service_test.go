package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emreacar/schoolhub/internal/app/models"
)

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func record(d int, status models.AttendanceStatus) models.Attendance {
	return models.Attendance{StudentID: 1, Date: day(d), Status: status}
}

func TestSummarizeAttendanceEmpty(t *testing.T) {
	svc := NewAggregationService()

	summary := svc.SummarizeAttendance(nil, day(1), day(31))

	assert.Zero(t, summary.TotalDays)
	assert.Equal(t, 0.0, summary.Percentage)
}

func TestSummarizeAttendanceCounts(t *testing.T) {
	svc := NewAggregationService()

	// 10 marked days: 7 present, 2 absent, 1 late. Unmarked days in the range
	// do not count against the student.
	records := []models.Attendance{
		record(1, models.AttendancePresent),
		record(2, models.AttendancePresent),
		record(3, models.AttendanceAbsent),
		record(4, models.AttendancePresent),
		record(5, models.AttendancePresent),
		record(8, models.AttendanceLate),
		record(9, models.AttendancePresent),
		record(10, models.AttendanceAbsent),
		record(11, models.AttendancePresent),
		record(12, models.AttendancePresent),
	}

	summary := svc.SummarizeAttendance(records, day(1), day(31))

	assert.Equal(t, 10, summary.TotalDays)
	assert.Equal(t, 7, summary.PresentDays)
	assert.Equal(t, 2, summary.AbsentDays)
	assert.Equal(t, 1, summary.LateDays)
	assert.Equal(t, 70.0, summary.Percentage)
}

func TestSummarizeAttendanceRespectsRange(t *testing.T) {
	svc := NewAggregationService()

	records := []models.Attendance{
		record(1, models.AttendancePresent),
		record(15, models.AttendancePresent),
		record(30, models.AttendanceAbsent),
	}

	summary := svc.SummarizeAttendance(records, day(10), day(20))

	assert.Equal(t, 1, summary.TotalDays)
	assert.Equal(t, 100.0, summary.Percentage)
}

func TestSummarizeAttendanceRangeInclusive(t *testing.T) {
	svc := NewAggregationService()

	records := []models.Attendance{
		record(10, models.AttendancePresent),
		record(20, models.AttendanceAbsent),
	}

	summary := svc.SummarizeAttendance(records, day(10), day(20))

	assert.Equal(t, 2, summary.TotalDays)
	assert.Equal(t, 50.0, summary.Percentage)
}

func TestSummarizeAttendanceGroupsExcusedAndMedical(t *testing.T) {
	svc := NewAggregationService()

	records := []models.Attendance{
		record(1, models.AttendanceExcused),
		record(2, models.AttendanceMedical),
		record(3, models.AttendancePresent),
	}

	summary := svc.SummarizeAttendance(records, day(1), day(31))

	assert.Equal(t, 2, summary.ExcusedDays)
	assert.Equal(t, 33.3, summary.Percentage)
}

func TestAverageGradesEmpty(t *testing.T) {
	svc := NewAggregationService()

	assert.Nil(t, svc.AverageGrades(nil))
	assert.Nil(t, svc.AverageGrades([]GradePoint{}))
}

func TestAverageGradesExcludesInvalidMaxScore(t *testing.T) {
	svc := NewAggregationService()

	avg := svc.AverageGrades([]GradePoint{
		{Score: 8, MaxScore: 10, Weight: 1},
		{Score: 0, MaxScore: 0, Weight: 1},
	})

	require.NotNil(t, avg)
	assert.Equal(t, 80.0, *avg)
}

func TestAverageGradesAllInvalid(t *testing.T) {
	svc := NewAggregationService()

	// Nil, not 0: "no valid graded work" must stay distinguishable from
	// "scored zero".
	avg := svc.AverageGrades([]GradePoint{
		{Score: 5, MaxScore: 0, Weight: 1},
		{Score: 3, MaxScore: -10, Weight: 2},
	})

	assert.Nil(t, avg)
}

func TestAverageGradesWeighted(t *testing.T) {
	svc := NewAggregationService()

	// 100% at weight 1 and 50% at weight 3 -> 62.5%
	avg := svc.AverageGrades([]GradePoint{
		{Score: 10, MaxScore: 10, Weight: 1},
		{Score: 5, MaxScore: 10, Weight: 3},
	})

	require.NotNil(t, avg)
	assert.Equal(t, 62.5, *avg)
}

func TestAverageGradesDefaultsWeight(t *testing.T) {
	svc := NewAggregationService()

	avg := svc.AverageGrades([]GradePoint{
		{Score: 6, MaxScore: 10},
		{Score: 10, MaxScore: 10},
	})

	require.NotNil(t, avg)
	assert.Equal(t, 80.0, *avg)
}

func TestLetterForDefaultScale(t *testing.T) {
	svc := NewAggregationService()
	scales := models.DefaultGradingScales()

	tests := []struct {
		percentage float64
		letter     string
		points     float64
	}{
		{100, "A+", 4.0},
		{90, "A+", 4.0},
		{89.99, "A", 3.7},
		{85, "A", 3.7},
		{75, "B", 3.0},
		{60, "D", 2.0},
		{59.99, "F", 0.0},
		{0, "F", 0.0},
	}
	for _, tt := range tests {
		letter, points := svc.LetterFor(scales, tt.percentage)
		assert.Equal(t, tt.letter, letter, "percentage %v", tt.percentage)
		assert.Equal(t, tt.points, points, "percentage %v", tt.percentage)
	}
}

func TestLetterForUnorderedScale(t *testing.T) {
	svc := NewAggregationService()

	// Band order in the input must not matter.
	scales := []models.GradingScale{
		{Name: "Pass", MinScore: 50, GradeLetter: "P", GradePoint: 1.0},
		{Name: "Merit", MinScore: 80, GradeLetter: "M", GradePoint: 2.0},
	}

	letter, points := svc.LetterFor(scales, 85)
	assert.Equal(t, "M", letter)
	assert.Equal(t, 2.0, points)

	letter, points = svc.LetterFor(scales, 55)
	assert.Equal(t, "P", letter)
	assert.Equal(t, 1.0, points)
}

func TestLetterForBelowEveryBand(t *testing.T) {
	svc := NewAggregationService()

	scales := []models.GradingScale{{Name: "Pass", MinScore: 50, GradeLetter: "P", GradePoint: 1.0}}

	letter, points := svc.LetterFor(scales, 20)
	assert.Equal(t, "F", letter)
	assert.Equal(t, 0.0, points)
}
