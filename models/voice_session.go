package models

import "time"

// VoiceSession tracks accumulated voice-channel time for a user.
// OpenSince is set iff the user is currently connected to a voice channel.
// TotalSeconds only ever increases.
type VoiceSession struct {
	UserID       int64      `db:"user_id"`
	TotalSeconds int64      `db:"total_seconds"`
	OpenSince    *time.Time `db:"open_since"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

// EffectiveTotal returns the accumulated seconds including the in-progress
// session, without mutating state.
func (v *VoiceSession) EffectiveTotal(now time.Time) int64 {
	total := v.TotalSeconds
	if v.OpenSince != nil && now.After(*v.OpenSince) {
		total += int64(now.Sub(*v.OpenSince).Seconds())
	}
	return total
}
