package events

import "time"

// Event types published by the gamification engine.
const (
	EventTypeBadgeAwarded       = "gamification.badge_awarded"
	EventTypeEngagementReceived = "gamification.engagement_received"
)

// BadgeAwardedEvent is emitted when a user earns a badge for the first
// time. Listeners use it for notification fan-out and audit logging.
type BadgeAwardedEvent struct {
	BaseEvent
	UserID    int64     `json:"user_id"`
	BadgeID   int64     `json:"badge_id"`
	BadgeSlug string    `json:"badge_slug"`
	BadgeName string    `json:"badge_name"`
	Tier      int       `json:"tier"`
	AwardedAt time.Time `json:"awarded_at"`
}

// NewBadgeAwardedEvent creates a new BadgeAwardedEvent
func NewBadgeAwardedEvent(userID, badgeID int64, slug, name string, tier int, awardedAt time.Time) *BadgeAwardedEvent {
	return &BadgeAwardedEvent{
		BaseEvent: BaseEvent{
			EventID:   GenerateEventID(),
			EventType: EventTypeBadgeAwarded,
			Timestamp: time.Now(),
			UserID:    &userID,
		},
		UserID:    userID,
		BadgeID:   badgeID,
		BadgeSlug: slug,
		BadgeName: name,
		Tier:      tier,
		AwardedAt: awardedAt,
	}
}

// EngagementReceivedEvent is emitted when a note owner receives a like,
// bookmark, or comment from another user.
type EngagementReceivedEvent struct {
	BaseEvent
	OwnerID int64  `json:"owner_id"`
	ActorID int64  `json:"actor_id"`
	NoteID  int64  `json:"note_id"`
	Kind    string `json:"kind"` // like, bookmark, comment
}

// NewEngagementReceivedEvent creates a new EngagementReceivedEvent
func NewEngagementReceivedEvent(ownerID, actorID, noteID int64, kind string) *EngagementReceivedEvent {
	return &EngagementReceivedEvent{
		BaseEvent: BaseEvent{
			EventID:   GenerateEventID(),
			EventType: EventTypeEngagementReceived,
			Timestamp: time.Now(),
			UserID:    &ownerID,
		},
		OwnerID: ownerID,
		ActorID: actorID,
		NoteID:  noteID,
		Kind:    kind,
	}
}
