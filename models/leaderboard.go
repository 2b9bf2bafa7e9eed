package models

// LeaderboardEntry is one row of the balance leaderboard
type LeaderboardEntry struct {
	Rank    int
	UserID  int64
	Balance int64
}

// VoiceRankEntry is one row of the voice-time leaderboard
type VoiceRankEntry struct {
	Rank         int
	UserID       int64
	TotalSeconds int64
}
