// internal/insights/leaderboard.go

package insights

import "sort"

// AnonymousName replaces the display name of users who opted out.
const AnonymousName = "Anonymous User"

// LeaderboardUser is one user's input to the leaderboard.
type LeaderboardUser struct {
	DisplayName  string
	Avatar       string
	IsAnonymous  bool
	BurnoutLevel int
	Stats        UserStats
}

// LeaderboardEntry is one row of a board.
type LeaderboardEntry struct {
	Name   string  `json:"name"`
	Avatar string  `json:"avatar,omitempty"`
	Value  float64 `json:"value"`
}

// Leaderboards groups the ranked boards.
type Leaderboards struct {
	MostDates  []LeaderboardEntry `json:"mostDates"`
	NewNumbers []LeaderboardEntry `json:"newNumbers"`
	Completion []LeaderboardEntry `json:"completion"`
	Burnout    []LeaderboardEntry `json:"burnout"`
	Variety    []LeaderboardEntry `json:"variety"`
}

// RankLeaderboards builds every board. Burnout is ranked ascending, the rest
// descending; ties keep input order.
func RankLeaderboards(users []LeaderboardUser) Leaderboards {
	board := func(value func(LeaderboardUser) float64, ascending bool) []LeaderboardEntry {
		entries := make([]LeaderboardEntry, len(users))
		for i, u := range users {
			name := u.DisplayName
			if u.IsAnonymous {
				name = AnonymousName
			}
			entries[i] = LeaderboardEntry{Name: name, Avatar: u.Avatar, Value: value(u)}
		}
		sort.SliceStable(entries, func(i, j int) bool {
			if ascending {
				return entries[i].Value < entries[j].Value
			}
			return entries[i].Value > entries[j].Value
		})
		return entries
	}

	return Leaderboards{
		MostDates:  board(func(u LeaderboardUser) float64 { return float64(u.Stats.DateCount) }, false),
		NewNumbers: board(func(u LeaderboardUser) float64 { return float64(u.Stats.NewNumbersCount) }, false),
		Completion: board(func(u LeaderboardUser) float64 { return u.Stats.CompletionPercentage }, false),
		Burnout:    board(func(u LeaderboardUser) float64 { return float64(u.BurnoutLevel) }, true),
		Variety:    board(func(u LeaderboardUser) float64 { return float64(u.Stats.DateVariety) }, false),
	}
}
