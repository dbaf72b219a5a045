package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// A bulk re-grade must never unpublish an already-published grade, so the
// upsert's conflict branch ORs the incoming flag with the stored one and
// keeps the original published_at.
func TestUpsertGradeKeepsPublicationOneWay(t *testing.T) {
	assert.Contains(t, upsertGradeSQL, "is_published = grades.is_published OR EXCLUDED.is_published")
	assert.Contains(t, upsertGradeSQL, "published_at = COALESCE(grades.published_at, EXCLUDED.published_at)")
	assert.NotContains(t, upsertGradeSQL, "is_published = EXCLUDED.is_published")
}
