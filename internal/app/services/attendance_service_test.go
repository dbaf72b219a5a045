package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emreacar/schoolhub/internal/app/models"
)

func TestMergeRosterAttendanceKeepsUnmarkedStudents(t *testing.T) {
	roster := []models.Student{
		{ID: 1, FirstName: "Liam", LastName: "Okafor"},
		{ID: 2, FirstName: "Mina", LastName: "Chen"},
		{ID: 3, FirstName: "Sara", LastName: "Haddad"},
	}
	notes := "left early"
	records := []models.Attendance{
		{ID: 10, StudentID: 1, Status: models.AttendancePresent},
		{ID: 11, StudentID: 3, Status: models.AttendanceLate, Notes: &notes},
	}

	entries := mergeRosterAttendance(roster, records)
	require.Len(t, entries, 3)

	assert.Equal(t, int64(1), entries[0].StudentID)
	require.NotNil(t, entries[0].Status)
	assert.Equal(t, "present", *entries[0].Status)

	// Student 2 has no record for the date, so the status is null.
	assert.Equal(t, int64(2), entries[1].StudentID)
	assert.Equal(t, "Mina Chen", entries[1].StudentName)
	assert.Nil(t, entries[1].Status)
	assert.Nil(t, entries[1].RecordID)

	require.NotNil(t, entries[2].Status)
	assert.Equal(t, "late", *entries[2].Status)
	require.NotNil(t, entries[2].Notes)
	assert.Equal(t, "left early", *entries[2].Notes)
}

func TestMergeRosterAttendanceEmptyRoster(t *testing.T) {
	entries := mergeRosterAttendance(nil, []models.Attendance{{ID: 10, StudentID: 1}})
	assert.Empty(t, entries)
}
