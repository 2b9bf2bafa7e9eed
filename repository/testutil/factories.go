package testutil

import (
	"time"

	"ecubot/models"
)

// CreateTestBalanceHistory creates a test balance history entry
func CreateTestBalanceHistory(userID int64, transactionType models.TransactionType) *models.BalanceHistory {
	return &models.BalanceHistory{
		UserID:          userID,
		BalanceBefore:   1000,
		BalanceAfter:    900,
		ChangeAmount:    -100,
		TransactionType: transactionType,
		TransactionMetadata: map[string]any{
			"test": true,
		},
		CreatedAt: time.Now(),
	}
}

// CreateTestBalanceHistoryWithAmounts creates a test balance history with specific amounts
func CreateTestBalanceHistoryWithAmounts(userID int64, before, after, change int64, transactionType models.TransactionType) *models.BalanceHistory {
	history := CreateTestBalanceHistory(userID, transactionType)
	history.BalanceBefore = before
	history.BalanceAfter = after
	history.ChangeAmount = change
	return history
}

// CreateTestVoiceSession creates a closed voice session with accumulated time
func CreateTestVoiceSession(userID int64, totalSeconds int64) *models.VoiceSession {
	return &models.VoiceSession{
		UserID:       userID,
		TotalSeconds: totalSeconds,
		OpenSince:    nil,
		UpdatedAt:    time.Now(),
	}
}

// CreateTestOpenVoiceSession creates a voice session with an open window
func CreateTestOpenVoiceSession(userID int64, totalSeconds int64, openSince time.Time) *models.VoiceSession {
	session := CreateTestVoiceSession(userID, totalSeconds)
	session.OpenSince = &openSince
	return session
}

// CreateTestRoleRule creates a role rule covering a seconds range
func CreateTestRoleRule(roleID, minSeconds, maxSeconds int64) *models.RoleRule {
	return &models.RoleRule{
		RoleID:     roleID,
		MinSeconds: minSeconds,
		MaxSeconds: maxSeconds,
		CreatedAt:  time.Now(),
	}
}
