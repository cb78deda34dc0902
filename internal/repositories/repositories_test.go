// file: internal/repositories/repositories_test.go
package repositories

import (
	"errors"
	"strings"
	"testing"

	"notehub/internal/models"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeFilter(t *testing.T) {
	filter, needsID, err := scopeFilter(models.RankScopeGlobal)
	require.NoError(t, err)
	assert.Empty(t, filter)
	assert.False(t, needsID)

	filter, needsID, err = scopeFilter(models.RankScopeInstitution)
	require.NoError(t, err)
	assert.Contains(t, filter, "institution_id")
	assert.True(t, needsID)

	filter, needsID, err = scopeFilter(models.RankScopeProgram)
	require.NoError(t, err)
	assert.Contains(t, filter, "program_id")
	assert.True(t, needsID)

	_, _, err = scopeFilter(models.RankScope("city"))
	assert.Error(t, err)
}

// Every received metric must ignore a user's own engagement with their
// notes and only look at published public notes. Liking your own note
// must never move likes_received.
func TestReceivedQueriesExcludeSelfEngagement(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		exclusion string
	}{
		{"likes received", likesReceivedQuery, "l.user_id <> n.user_id"},
		{"bookmarks received", bookmarksReceivedQuery, "b.user_id <> n.user_id"},
		{"comments received", commentsReceivedQuery, "c.user_id <> n.user_id"},
		{"single note likes", maxSingleNoteLikesQuery, "l.user_id <> n.user_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, tt.query, tt.exclusion)
			assert.Contains(t, tt.query, "n.status = 'published'")
			assert.Contains(t, tt.query, "n.visibility = 'public'")
		})
	}
}

// The scoring CTE feeds both leaderboards and individual ranks, so it
// carries the same exclusion and visibility predicates per counted table.
func TestPointsCTEExcludesSelfEngagement(t *testing.T) {
	assert.Contains(t, pointsCTE, "l.user_id <> n.user_id")
	assert.Contains(t, pointsCTE, "b.user_id <> n.user_id")
	assert.Equal(t, 2, strings.Count(pointsCTE, "n.status = 'published'"))
	assert.Equal(t, 2, strings.Count(pointsCTE, "n.visibility = 'public'"))
	assert.Contains(t, pointsCTE, "COALESCE(lp.likes, 0) + 2 * COALESCE(bp.bookmarks, 0) AS points")
	assert.Contains(t, pointsCTE, "u.is_active = true")
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("plain error")))
	assert.False(t, isUniqueViolation(nil))
}
