// file: internal/services/types.go
package services

import (
	"time"

	"notehub/internal/models"
)

// ===============================
// EVALUATION TRIGGERS
// ===============================

// Trigger identifies the action that invoked badge evaluation. Each
// trigger maps to a fixed set of requirement-type groups; TriggerFullSweep
// evaluates every group including the account-age badge.
type Trigger string

const (
	TriggerNoteCreated      Trigger = "note_created"
	TriggerLikeReceived     Trigger = "like_received"
	TriggerBookmarkReceived Trigger = "bookmark_received"
	TriggerCommentWritten   Trigger = "comment_written"
	TriggerCommentReceived  Trigger = "comment_received"
	TriggerFullSweep        Trigger = "full_sweep"
)

// Valid reports whether the trigger is a known value.
func (t Trigger) Valid() bool {
	switch t {
	case TriggerNoteCreated, TriggerLikeReceived, TriggerBookmarkReceived,
		TriggerCommentWritten, TriggerCommentReceived, TriggerFullSweep:
		return true
	}
	return false
}

// RequirementTypes returns the requirement-type groups this trigger
// evaluates. Received likes and bookmarks move rank scores, so those
// triggers also re-check the rank badges.
func (t Trigger) RequirementTypes() []string {
	switch t {
	case TriggerNoteCreated:
		return []string{
			models.RequirementNotesCreated,
			models.RequirementStreakDays,
		}
	case TriggerLikeReceived:
		return []string{
			models.RequirementLikesReceived,
			models.RequirementSingleNoteLikes,
			models.RequirementTotalEngagement,
			models.RequirementLeaderboardRank,
			models.RequirementInstitutionRank,
			models.RequirementProgramRank,
		}
	case TriggerBookmarkReceived:
		return []string{
			models.RequirementBookmarksReceived,
			models.RequirementTotalEngagement,
			models.RequirementLeaderboardRank,
			models.RequirementInstitutionRank,
			models.RequirementProgramRank,
		}
	case TriggerCommentWritten:
		return []string{
			models.RequirementCommentsWritten,
			models.RequirementStreakDays,
		}
	case TriggerCommentReceived:
		return []string{
			models.RequirementCommentsReceived,
		}
	case TriggerFullSweep:
		return []string{
			models.RequirementNotesCreated,
			models.RequirementLikesReceived,
			models.RequirementBookmarksReceived,
			models.RequirementCommentsReceived,
			models.RequirementCommentsWritten,
			models.RequirementSingleNoteLikes,
			models.RequirementTotalEngagement,
			models.RequirementStreakDays,
			models.RequirementLeaderboardRank,
			models.RequirementInstitutionRank,
			models.RequirementProgramRank,
			models.RequirementAccountAge,
		}
	}
	return nil
}

// IsRankRequirement reports whether the requirement type compares rank
// (lower is better) instead of an at-least metric.
func IsRankRequirement(requirementType string) bool {
	switch requirementType {
	case models.RequirementLeaderboardRank,
		models.RequirementInstitutionRank,
		models.RequirementProgramRank:
		return true
	}
	return false
}

// ===============================
// REQUESTS & RESPONSES
// ===============================

// LeaderboardRequest asks for a ranked listing of a scope.
type LeaderboardRequest struct {
	Scope   models.RankScope `json:"scope" validate:"required"`
	ScopeID *int64           `json:"scope_id,omitempty"`
	Limit   int              `json:"limit" validate:"min=0,max=100"`
}

// UserStatsResponse summarizes a user's gamification state for the
// profile page.
type UserStatsResponse struct {
	UserID            int64     `json:"user_id"`
	NotesCreated      int       `json:"notes_created"`
	LikesReceived     int       `json:"likes_received"`
	BookmarksReceived int       `json:"bookmarks_received"`
	CommentsReceived  int       `json:"comments_received"`
	CommentsWritten   int       `json:"comments_written"`
	SingleNoteLikes   int       `json:"single_note_likes"`
	TotalEngagement   int       `json:"total_engagement"`
	Points            int       `json:"points"`
	CurrentStreak     int       `json:"current_streak"`
	GlobalRank        *int      `json:"global_rank,omitempty"`
	InstitutionRank   *int      `json:"institution_rank,omitempty"`
	ProgramRank       *int      `json:"program_rank,omitempty"`
	BadgeCount        int       `json:"badge_count"`
	MemberSince       time.Time `json:"member_since"`
}
