package models

// RankScope identifies the population a rank is computed over.
type RankScope string

const (
	RankScopeGlobal      RankScope = "global"
	RankScopeInstitution RankScope = "institution"
	RankScopeProgram     RankScope = "program"
)

// Valid reports whether the scope is one of the known values.
func (s RankScope) Valid() bool {
	switch s {
	case RankScopeGlobal, RankScopeInstitution, RankScopeProgram:
		return true
	}
	return false
}

// LeaderboardEntry is a single row of a ranked listing. Points use the
// fixed formula likes_received*1 + bookmarks_received*2, with
// self-engagement excluded from both terms.
type LeaderboardEntry struct {
	Rank              int     `json:"rank" db:"rank"`
	UserID            int64   `json:"user_id" db:"user_id"`
	Username          string  `json:"username" db:"username"`
	DisplayName       string  `json:"display_name" db:"display_name"`
	AvatarURL         *string `json:"avatar_url,omitempty" db:"avatar_url"`
	LikesReceived     int     `json:"likes_received" db:"likes_received"`
	BookmarksReceived int     `json:"bookmarks_received" db:"bookmarks_received"`
	Points            int     `json:"points" db:"points"`
}
