package models

import "time"

// Requirement types a badge threshold is measured against. "At-least"
// types compare metric >= value; rank types compare rank <= value.
const (
	RequirementNotesCreated      = "notes_created"
	RequirementLikesReceived     = "likes_received"
	RequirementBookmarksReceived = "bookmarks_received"
	RequirementCommentsReceived  = "comments_received"
	RequirementCommentsWritten   = "comments_written"
	RequirementSingleNoteLikes   = "single_note_likes"
	RequirementTotalEngagement   = "total_engagement"
	RequirementStreakDays        = "streak_days"
	RequirementLeaderboardRank   = "leaderboard_rank"
	RequirementInstitutionRank   = "university_rank"
	RequirementProgramRank       = "program_study_rank"
	RequirementAccountAge        = "account_age_days"
)

// Badge represents an achievement badge definition from the static
// catalog. Multiple badges may share a requirement type at different
// thresholds to form a tiered ladder.
type Badge struct {
	ID               int64   `json:"id" db:"id"`
	Slug             string  `json:"slug" db:"slug" validate:"required,max=100"`
	Name             string  `json:"name" db:"name" validate:"required,max=100"`
	Description      string  `json:"description" db:"description" validate:"required,max=500"`
	Icon             string  `json:"icon" db:"icon" validate:"required,max=100"`
	Category         string  `json:"category" db:"category" validate:"required,max=50"`
	Tier             int     `json:"tier" db:"tier" validate:"min=1,max=5"`
	RequirementType  string  `json:"requirement_type" db:"requirement_type" validate:"required,oneof=notes_created likes_received bookmarks_received comments_received comments_written single_note_likes total_engagement streak_days leaderboard_rank university_rank program_study_rank account_age_days"`
	RequirementValue int     `json:"requirement_value" db:"requirement_value" validate:"min=1"`
	IsActive         bool    `json:"is_active" db:"is_active"`
	CreatedAt        string  `json:"created_at" db:"created_at"`
	UpdatedAt        *string `json:"updated_at,omitempty" db:"updated_at"`
}

// UserBadge represents the durable, one-way fact that a user holds a
// badge. At most one row per (user, badge).
type UserBadge struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id" validate:"required"`
	BadgeID   int64     `json:"badge_id" db:"badge_id" validate:"required"`
	AwardedAt time.Time `json:"awarded_at" db:"awarded_at"`

	// Joined badge definition (optional)
	Badge *Badge `json:"badge,omitempty" db:"-"`
}
