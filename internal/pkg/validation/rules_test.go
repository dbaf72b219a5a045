package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("jane.doe@greenfield.edu"))
	assert.True(t, IsValidEmail("admin+test@school-hub.io"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("missing@tld"))
	assert.False(t, IsValidEmail(""))
}

func TestIsValidEnrollmentNumber(t *testing.T) {
	assert.True(t, IsValidEnrollmentNumber("GF-2026-0042"))
	assert.True(t, IsValidEnrollmentNumber("S001"))
	assert.False(t, IsValidEnrollmentNumber("ab"))
	assert.False(t, IsValidEnrollmentNumber("has space"))
}

func TestIsValidSchoolCode(t *testing.T) {
	assert.True(t, IsValidSchoolCode("GFS01"))
	assert.False(t, IsValidSchoolCode("gf"))
	assert.False(t, IsValidSchoolCode("TOOLONGSCHOOLCODE"))
}

func TestIsValidScore(t *testing.T) {
	assert.True(t, IsValidScore(0, 100))
	assert.True(t, IsValidScore(100, 100))
	assert.True(t, IsValidScore(82.5, 100))
	assert.False(t, IsValidScore(101, 100))
	assert.False(t, IsValidScore(-1, 100))
	assert.False(t, IsValidScore(10, 0))
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("LongEnough1"))
	assert.False(t, IsValidPassword("short"))
}
