// internal/repositories/engagement_repository.go
package repositories

import (
	"context"
	"fmt"

	"notehub/internal/database"
	"notehub/internal/models"

	"go.uber.org/zap"
)

// engagementRepository implements EngagementRepository over the content
// and engagement tables. Received-engagement queries consistently apply
// two rules: only published public notes count, and self-engagement
// (actor == note owner) never counts.
type engagementRepository struct {
	*BaseRepository
}

// NewEngagementRepository creates a new instance of EngagementRepository
func NewEngagementRepository(db *database.Manager, logger *zap.Logger) EngagementRepository {
	return &engagementRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// ===============================
// METRIC COUNTS
// ===============================

// CountPublishedNotes counts the user's notes in published state.
func (r *engagementRepository) CountPublishedNotes(ctx context.Context, userID int64) (int, error) {
	query := `SELECT COUNT(*) FROM notes WHERE user_id = $1 AND status = 'published'`

	var count int
	if err := r.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count published notes: %w", err)
	}
	return count, nil
}

// Received-count queries only see engagement from other users on the
// owner's published public notes. The <> predicate keeps self-likes,
// self-bookmarks and self-comments out of every received metric.
const likesReceivedQuery = `
	SELECT COUNT(*)
	FROM note_likes l
	INNER JOIN notes n ON l.note_id = n.id
	WHERE n.user_id = $1
	  AND l.user_id <> n.user_id
	  AND n.status = 'published'
	  AND n.visibility = 'public'`

const bookmarksReceivedQuery = `
	SELECT COUNT(*)
	FROM note_bookmarks b
	INNER JOIN notes n ON b.note_id = n.id
	WHERE n.user_id = $1
	  AND b.user_id <> n.user_id
	  AND n.status = 'published'
	  AND n.visibility = 'public'`

const commentsReceivedQuery = `
	SELECT COUNT(*)
	FROM note_comments c
	INNER JOIN notes n ON c.note_id = n.id
	WHERE n.user_id = $1
	  AND c.user_id <> n.user_id
	  AND n.status = 'published'
	  AND n.visibility = 'public'`

const maxSingleNoteLikesQuery = `
	SELECT COALESCE(MAX(likes), 0)
	FROM (
		SELECT COUNT(l.id) AS likes
		FROM notes n
		LEFT JOIN note_likes l ON l.note_id = n.id AND l.user_id <> n.user_id
		WHERE n.user_id = $1
		  AND n.status = 'published'
		  AND n.visibility = 'public'
		GROUP BY n.id
	) per_note`

// CountLikesReceived counts likes on the user's published public notes,
// excluding the user's own likes.
func (r *engagementRepository) CountLikesReceived(ctx context.Context, userID int64) (int, error) {
	var count int
	if err := r.QueryRowContext(ctx, likesReceivedQuery, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count likes received: %w", err)
	}
	return count, nil
}

// CountBookmarksReceived counts bookmarks on the user's published public
// notes, excluding the user's own bookmarks.
func (r *engagementRepository) CountBookmarksReceived(ctx context.Context, userID int64) (int, error) {
	var count int
	if err := r.QueryRowContext(ctx, bookmarksReceivedQuery, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count bookmarks received: %w", err)
	}
	return count, nil
}

// CountCommentsReceived counts comments on the user's published public
// notes, excluding the user's own comments.
func (r *engagementRepository) CountCommentsReceived(ctx context.Context, userID int64) (int, error) {
	var count int
	if err := r.QueryRowContext(ctx, commentsReceivedQuery, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count comments received: %w", err)
	}
	return count, nil
}

// CountCommentsWritten counts comments authored by the user. Authoring
// is always self-initiated, so there is no self-exclusion here.
func (r *engagementRepository) CountCommentsWritten(ctx context.Context, userID int64) (int, error) {
	query := `SELECT COUNT(*) FROM note_comments WHERE user_id = $1`

	var count int
	if err := r.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count comments written: %w", err)
	}
	return count, nil
}

// MaxLikesOnSingleNote returns the highest like count across the user's
// published public notes, 0 when no note has likes.
func (r *engagementRepository) MaxLikesOnSingleNote(ctx context.Context, userID int64) (int, error) {
	var max int
	if err := r.QueryRowContext(ctx, maxSingleNoteLikesQuery, userID).Scan(&max); err != nil {
		return 0, fmt.Errorf("failed to get max likes on single note: %w", err)
	}
	return max, nil
}

// ===============================
// RANKED LISTINGS
// ===============================

// pointsCTE computes per-user received likes/bookmarks and the fixed
// point formula (likes*1 + bookmarks*2) over all active users. Ordering
// is always points DESC, id ASC so ties resolve deterministically.
const pointsCTE = `
	WITH likes_per_user AS (
		SELECT n.user_id, COUNT(*) AS likes
		FROM note_likes l
		INNER JOIN notes n ON l.note_id = n.id
		WHERE l.user_id <> n.user_id
		  AND n.status = 'published'
		  AND n.visibility = 'public'
		GROUP BY n.user_id
	), bookmarks_per_user AS (
		SELECT n.user_id, COUNT(*) AS bookmarks
		FROM note_bookmarks b
		INNER JOIN notes n ON b.note_id = n.id
		WHERE b.user_id <> n.user_id
		  AND n.status = 'published'
		  AND n.visibility = 'public'
		GROUP BY n.user_id
	), scored AS (
		SELECT
			u.id, u.username, u.display_name, u.avatar_url,
			u.institution_id, u.program_id,
			COALESCE(lp.likes, 0) AS likes_received,
			COALESCE(bp.bookmarks, 0) AS bookmarks_received,
			COALESCE(lp.likes, 0) + 2 * COALESCE(bp.bookmarks, 0) AS points
		FROM users u
		LEFT JOIN likes_per_user lp ON lp.user_id = u.id
		LEFT JOIN bookmarks_per_user bp ON bp.user_id = u.id
		WHERE u.is_active = true
	)`

// scopeFilter returns the WHERE fragment for a scope and whether a
// scope id argument is required.
func scopeFilter(scope models.RankScope) (string, bool, error) {
	switch scope {
	case models.RankScopeGlobal:
		return "", false, nil
	case models.RankScopeInstitution:
		return "WHERE s.institution_id = $1", true, nil
	case models.RankScopeProgram:
		return "WHERE s.program_id = $1", true, nil
	default:
		return "", false, fmt.Errorf("unknown rank scope: %s", scope)
	}
}

// Leaderboard returns the top users in the scope ordered by points.
func (r *engagementRepository) Leaderboard(ctx context.Context, scope models.RankScope, scopeID *int64, limit int) ([]*models.LeaderboardEntry, error) {
	filter, needsScopeID, err := scopeFilter(scope)
	if err != nil {
		return nil, err
	}
	if needsScopeID && scopeID == nil {
		return nil, fmt.Errorf("scope %s requires a scope id", scope)
	}

	var (
		query string
		args  []interface{}
	)
	if needsScopeID {
		query = pointsCTE + `
			SELECT s.id, s.username, s.display_name, s.avatar_url,
			       s.likes_received, s.bookmarks_received, s.points
			FROM scored s ` + filter + `
			ORDER BY s.points DESC, s.id ASC
			LIMIT $2`
		args = []interface{}{*scopeID, limit}
	} else {
		query = pointsCTE + `
			SELECT s.id, s.username, s.display_name, s.avatar_url,
			       s.likes_received, s.bookmarks_received, s.points
			FROM scored s
			ORDER BY s.points DESC, s.id ASC
			LIMIT $1`
		args = []interface{}{limit}
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []*models.LeaderboardEntry
	position := 0
	for rows.Next() {
		var entry models.LeaderboardEntry
		err := rows.Scan(
			&entry.UserID, &entry.Username, &entry.DisplayName, &entry.AvatarURL,
			&entry.LikesReceived, &entry.BookmarksReceived, &entry.Points,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}

		position++
		entry.Rank = position
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leaderboard rows: %w", err)
	}

	return entries, nil
}

// Rank returns the user's 1-based position in the scope ordering.
func (r *engagementRepository) Rank(ctx context.Context, userID int64, scope models.RankScope, scopeID *int64) (int, error) {
	filter, needsScopeID, err := scopeFilter(scope)
	if err != nil {
		return 0, err
	}
	if needsScopeID && scopeID == nil {
		return 0, fmt.Errorf("scope %s requires a scope id", scope)
	}

	var (
		query string
		args  []interface{}
	)
	if needsScopeID {
		query = pointsCTE + `
			SELECT rank FROM (
				SELECT s.id,
				       ROW_NUMBER() OVER (ORDER BY s.points DESC, s.id ASC) AS rank
				FROM scored s ` + filter + `
			) ranked
			WHERE ranked.id = $2`
		args = []interface{}{*scopeID, userID}
	} else {
		query = pointsCTE + `
			SELECT rank FROM (
				SELECT s.id,
				       ROW_NUMBER() OVER (ORDER BY s.points DESC, s.id ASC) AS rank
				FROM scored s
			) ranked
			WHERE ranked.id = $1`
		args = []interface{}{userID}
	}

	var rank int
	if err := r.QueryRowContext(ctx, query, args...).Scan(&rank); err != nil {
		if r.IsNotFound(err) {
			// Inactive or unknown users never appear in the scoring CTE.
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get rank: %w", err)
	}
	return rank, nil
}
