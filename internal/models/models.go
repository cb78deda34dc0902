// file: internal/models/models.go
package models

import (
	"time"
)

// ===============================
// CORE ENTITIES
// ===============================

// User represents a platform member. Institution and program affiliations
// are optional and drive the scoped leaderboards.
type User struct {
	ID       int64  `json:"id" db:"id"`
	Email    string `json:"email" db:"email" validate:"required,email,max=320"`
	Username string `json:"username" db:"username" validate:"required,min=3,max=50,alphanum"`

	DisplayName string  `json:"display_name" db:"display_name"`
	Bio         *string `json:"bio,omitempty" db:"bio" validate:"omitempty,max=1000"`
	AvatarURL   *string `json:"avatar_url,omitempty" db:"avatar_url"`

	// Affiliations (optional)
	InstitutionID *int64 `json:"institution_id,omitempty" db:"institution_id"`
	ProgramID     *int64 `json:"program_id,omitempty" db:"program_id"`

	IsActive bool `json:"is_active" db:"is_active"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Computed/joined fields (not in DB)
	Points        int `json:"points,omitempty" db:"-"`
	BadgeCount    int `json:"badge_count,omitempty" db:"-"`
	NotesCount    int `json:"notes_count,omitempty" db:"-"`
	CurrentStreak int `json:"current_streak,omitempty" db:"-"`
}

// Note statuses and visibilities. Only published + public notes count
// toward received-engagement metrics.
const (
	NoteStatusDraft     = "draft"
	NoteStatusPublished = "published"
	NoteStatusArchived  = "archived"

	NoteVisibilityPrivate = "private"
	NoteVisibilityPublic  = "public"
)

// Note represents a shared study note owned by a user.
type Note struct {
	ID         int64  `json:"id" db:"id"`
	UserID     int64  `json:"user_id" db:"user_id" validate:"required"`
	Title      string `json:"title" db:"title" validate:"required,min=3,max=255"`
	Status     string `json:"status" db:"status" validate:"oneof=draft published archived"`
	Visibility string `json:"visibility" db:"visibility" validate:"oneof=private public"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Computed fields (not in DB)
	LikesCount     int `json:"likes_count,omitempty" db:"-"`
	BookmarksCount int `json:"bookmarks_count,omitempty" db:"-"`
	CommentsCount  int `json:"comments_count,omitempty" db:"-"`
}

// ===============================
// ENGAGEMENT TABLES
// ===============================

// NoteLike represents a user's like on a note. Unique per (user, note).
type NoteLike struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id" validate:"required"`
	NoteID    int64     `json:"note_id" db:"note_id" validate:"required"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NoteBookmark represents a user's bookmark on a note. Unique per (user, note).
type NoteBookmark struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id" validate:"required"`
	NoteID    int64     `json:"note_id" db:"note_id" validate:"required"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NoteComment represents a comment authored on a note.
type NoteComment struct {
	ID      int64  `json:"id" db:"id"`
	UserID  int64  `json:"user_id" db:"user_id" validate:"required"`
	NoteID  int64  `json:"note_id" db:"note_id" validate:"required"`
	Content string `json:"content" db:"content" validate:"required,min=1,max=5000"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Joined fields
	Username string `json:"username,omitempty" db:"-"`
}

// ===============================
// ACTIVITY LEDGER
// ===============================

// ActivityLogEntry records that a user performed at least one activity of
// a given type on a calendar day. Unique per (user, day, activity_type);
// streak computation treats all activity types the same.
type ActivityLogEntry struct {
	ID           int64     `json:"id" db:"id"`
	UserID       int64     `json:"user_id" db:"user_id" validate:"required"`
	ActivityDate time.Time `json:"activity_date" db:"activity_date" validate:"required"`
	ActivityType string    `json:"activity_type" db:"activity_type" validate:"required,max=50"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// ===============================
// NOTIFICATIONS
// ===============================

// Notification types surfaced to users.
const (
	NotificationTypeBadge    = "badge"
	NotificationTypeLike     = "like"
	NotificationTypeComment  = "comment"
	NotificationTypeBookmark = "bookmark"
)

// Notification represents a lightweight fact surfaced to a user.
type Notification struct {
	ID      int64   `json:"id" db:"id"`
	UserID  int64   `json:"user_id" db:"user_id" validate:"required"`
	Type    string  `json:"type" db:"type" validate:"required,oneof=badge like comment bookmark"`
	Title   string  `json:"title" db:"title" validate:"required,max=255"`
	Content *string `json:"content,omitempty" db:"content"`

	// Related entity references
	RelatedNoteID  *int64 `json:"related_note_id,omitempty" db:"related_note_id"`
	RelatedBadgeID *int64 `json:"related_badge_id,omitempty" db:"related_badge_id"`

	// Actor information (who triggered the notification)
	ActorID *int64 `json:"actor_id,omitempty" db:"actor_id"`

	IsRead bool `json:"is_read" db:"is_read"`

	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	ReadAt    *time.Time `json:"read_at,omitempty" db:"read_at"`
}
