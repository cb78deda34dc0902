// file: internal/services/fakes_test.go
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"notehub/internal/events"
	"notehub/internal/models"
)

// ===============================
// REPOSITORY FAKES
// ===============================

type fakeUserRepo struct {
	users map[int64]*models.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	return f.users[id], nil
}

type fakeActivityRepo struct {
	days map[string]bool
	err  error
}

func (f *fakeActivityRepo) HasActivity(_ context.Context, userID int64, day time.Time) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.days[fmt.Sprintf("%d:%s", userID, day.Format("2006-01-02"))], nil
}

func (f *fakeActivityRepo) addDay(userID int64, day time.Time) {
	if f.days == nil {
		f.days = make(map[string]bool)
	}
	f.days[fmt.Sprintf("%d:%s", userID, day.Format("2006-01-02"))] = true
}

type fakeEngagementRepo struct {
	notes           map[int64]int
	likes           map[int64]int
	bookmarks       map[int64]int
	commentsRecv    map[int64]int
	commentsWritten map[int64]int
	singleNoteLikes map[int64]int

	// rank keyed by "userID:scope"
	ranks       map[string]int
	leaderboard []*models.LeaderboardEntry
	queryCount  int
	err         error
}

func (f *fakeEngagementRepo) CountPublishedNotes(_ context.Context, userID int64) (int, error) {
	return f.notes[userID], f.err
}

func (f *fakeEngagementRepo) CountLikesReceived(_ context.Context, userID int64) (int, error) {
	return f.likes[userID], f.err
}

func (f *fakeEngagementRepo) CountBookmarksReceived(_ context.Context, userID int64) (int, error) {
	return f.bookmarks[userID], f.err
}

func (f *fakeEngagementRepo) CountCommentsReceived(_ context.Context, userID int64) (int, error) {
	return f.commentsRecv[userID], f.err
}

func (f *fakeEngagementRepo) CountCommentsWritten(_ context.Context, userID int64) (int, error) {
	return f.commentsWritten[userID], f.err
}

func (f *fakeEngagementRepo) MaxLikesOnSingleNote(_ context.Context, userID int64) (int, error) {
	return f.singleNoteLikes[userID], f.err
}

func (f *fakeEngagementRepo) Leaderboard(_ context.Context, _ models.RankScope, _ *int64, limit int) ([]*models.LeaderboardEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.queryCount++
	if limit < len(f.leaderboard) {
		return f.leaderboard[:limit], nil
	}
	return f.leaderboard, nil
}

func (f *fakeEngagementRepo) Rank(_ context.Context, userID int64, scope models.RankScope, _ *int64) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.ranks[fmt.Sprintf("%d:%s", userID, scope)], nil
}

type fakeBadgeRepo struct {
	mu      sync.Mutex
	catalog []*models.Badge
	held    map[int64]map[int64]bool // userID -> badgeID
	nextID  int64

	// staleSnapshot makes HeldBadgeIDs report nothing held, simulating a
	// concurrent award landing between the snapshot and the insert.
	staleSnapshot bool
}

func (f *fakeBadgeRepo) ListActive(_ context.Context) ([]*models.Badge, error) {
	return f.catalog, nil
}

func (f *fakeBadgeRepo) GetBySlug(_ context.Context, slug string) (*models.Badge, error) {
	for _, b := range f.catalog {
		if b.Slug == slug {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBadgeRepo) ListUserBadges(_ context.Context, userID int64) ([]*models.UserBadge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.UserBadge
	for badgeID := range f.held[userID] {
		out = append(out, &models.UserBadge{UserID: userID, BadgeID: badgeID})
	}
	return out, nil
}

func (f *fakeBadgeRepo) HeldBadgeIDs(_ context.Context, userID int64) (map[int64]bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.staleSnapshot {
		return map[int64]bool{}, nil
	}
	out := make(map[int64]bool, len(f.held[userID]))
	for id := range f.held[userID] {
		out[id] = true
	}
	return out, nil
}

func (f *fakeBadgeRepo) CountUserBadges(_ context.Context, userID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.held[userID]), nil
}

func (f *fakeBadgeRepo) Award(_ context.Context, userID, badgeID int64) (*models.UserBadge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.held == nil {
		f.held = make(map[int64]map[int64]bool)
	}
	if f.held[userID] == nil {
		f.held[userID] = make(map[int64]bool)
	}
	if f.held[userID][badgeID] {
		return nil, nil
	}
	f.held[userID][badgeID] = true
	f.nextID++
	return &models.UserBadge{
		ID:        f.nextID,
		UserID:    userID,
		BadgeID:   badgeID,
		AwardedAt: time.Now(),
	}, nil
}

type fakeNotificationRepo struct {
	mu      sync.Mutex
	created []*models.Notification
	err     error
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *models.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	n.ID = int64(len(f.created) + 1)
	n.CreatedAt = time.Now()
	f.created = append(f.created, n)
	return nil
}

// ===============================
// EVENT BUS FAKE
// ===============================

type fakeEventBus struct {
	mu        sync.Mutex
	published []events.Event
}

func (f *fakeEventBus) Publish(_ context.Context, event events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, event)
	return nil
}

func (f *fakeEventBus) PublishAsync(ctx context.Context, event events.Event) error {
	return f.Publish(ctx, event)
}

func (f *fakeEventBus) Subscribe(string, events.EventHandler) error   { return nil }
func (f *fakeEventBus) Unsubscribe(string, events.EventHandler) error { return nil }
func (f *fakeEventBus) Start(context.Context) error                   { return nil }
func (f *fakeEventBus) Stop(context.Context) error                    { return nil }
func (f *fakeEventBus) Health() error                                 { return nil }
func (f *fakeEventBus) Stats() *events.EventBusStats                  { return &events.EventBusStats{} }
