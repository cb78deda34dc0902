// file: internal/services/types_test.go
package services

import (
	"testing"

	"notehub/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestTriggerRequirementTypes(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{models.RequirementNotesCreated, models.RequirementStreakDays},
		TriggerNoteCreated.RequirementTypes(),
	)
	assert.ElementsMatch(t,
		[]string{models.RequirementCommentsWritten, models.RequirementStreakDays},
		TriggerCommentWritten.RequirementTypes(),
	)
	assert.ElementsMatch(t,
		[]string{models.RequirementCommentsReceived},
		TriggerCommentReceived.RequirementTypes(),
	)

	// Likes and bookmarks move the point score, so both re-check ranks.
	for _, trigger := range []Trigger{TriggerLikeReceived, TriggerBookmarkReceived} {
		groups := trigger.RequirementTypes()
		assert.Contains(t, groups, models.RequirementLeaderboardRank)
		assert.Contains(t, groups, models.RequirementInstitutionRank)
		assert.Contains(t, groups, models.RequirementProgramRank)
		assert.Contains(t, groups, models.RequirementTotalEngagement)
	}

	// A full sweep covers every requirement type, including account age.
	assert.Len(t, TriggerFullSweep.RequirementTypes(), 12)
	assert.Contains(t, TriggerFullSweep.RequirementTypes(), models.RequirementAccountAge)
}

func TestTriggerValid(t *testing.T) {
	assert.True(t, TriggerNoteCreated.Valid())
	assert.True(t, TriggerFullSweep.Valid())
	assert.False(t, Trigger("").Valid())
	assert.False(t, Trigger("unknown").Valid())
}

func TestIsRankRequirement(t *testing.T) {
	assert.True(t, IsRankRequirement(models.RequirementLeaderboardRank))
	assert.True(t, IsRankRequirement(models.RequirementInstitutionRank))
	assert.True(t, IsRankRequirement(models.RequirementProgramRank))
	assert.False(t, IsRankRequirement(models.RequirementLikesReceived))
	assert.False(t, IsRankRequirement(models.RequirementStreakDays))
}
