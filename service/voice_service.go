package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"ecubot/models"

	log "github.com/sirupsen/logrus"
)

type voiceService struct {
	uowFactory UnitOfWorkFactory
}

// NewVoiceService creates a new voice time tracking service
func NewVoiceService(uowFactory UnitOfWorkFactory) VoiceService {
	return &voiceService{
		uowFactory: uowFactory,
	}
}

// HandleJoin transitions a user to Connected by opening a session window
func (s *voiceService) HandleJoin(ctx context.Context, userID int64, now time.Time) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	session, err := uow.VoiceSessionRepository().GetByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get voice session: %w", err)
	}
	if session == nil {
		session = &models.VoiceSession{UserID: userID}
	}

	session.OpenSince = &now
	if err := uow.VoiceSessionRepository().Upsert(ctx, session); err != nil {
		return fmt.Errorf("failed to save voice session: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{"userID": userID}).Debug("Voice session opened")
	return nil
}

// HandleLeave folds the open window into the total and closes it
func (s *voiceService) HandleLeave(ctx context.Context, userID int64, now time.Time) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	session, err := uow.VoiceSessionRepository().GetByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get voice session: %w", err)
	}
	if session == nil || session.OpenSince == nil {
		// Leave without a recorded join, nothing to credit
		return nil
	}

	if elapsed := int64(now.Sub(*session.OpenSince).Seconds()); elapsed > 0 {
		session.TotalSeconds += elapsed
	}
	session.OpenSince = nil

	if err := uow.VoiceSessionRepository().Upsert(ctx, session); err != nil {
		return fmt.Errorf("failed to save voice session: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"userID":       userID,
		"totalSeconds": session.TotalSeconds,
	}).Debug("Voice session closed")
	return nil
}

// Flush folds every open window into its total and re-bases the window to
// now, so a later flush or leave never double-counts.
func (s *voiceService) Flush(ctx context.Context, now time.Time) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	sessions, err := uow.VoiceSessionRepository().GetOpen(ctx)
	if err != nil {
		return fmt.Errorf("failed to get open voice sessions: %w", err)
	}

	for _, session := range sessions {
		elapsed := int64(now.Sub(*session.OpenSince).Seconds())
		if elapsed < 1 {
			continue
		}
		session.TotalSeconds += elapsed
		session.OpenSince = &now
		if err := uow.VoiceSessionRepository().Upsert(ctx, session); err != nil {
			return fmt.Errorf("failed to flush voice session for user %d: %w", session.UserID, err)
		}
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// EffectiveTotal returns accumulated seconds including the open window
func (s *voiceService) EffectiveTotal(ctx context.Context, userID int64, now time.Time) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	session, err := uow.VoiceSessionRepository().GetByUserID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get voice session: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if session == nil {
		return 0, nil
	}
	return session.EffectiveTotal(now), nil
}

// AllEffectiveTotals returns effective totals for every tracked user
func (s *voiceService) AllEffectiveTotals(ctx context.Context, now time.Time) (map[int64]int64, error) {
	sessions, err := s.getAll(ctx)
	if err != nil {
		return nil, err
	}

	totals := make(map[int64]int64, len(sessions))
	for _, session := range sessions {
		totals[session.UserID] = session.EffectiveTotal(now)
	}
	return totals, nil
}

// SyncConnected opens windows for users already connected when the process
// starts. Users that already have an open window keep it, so restarting
// never double-credits.
func (s *voiceService) SyncConnected(ctx context.Context, userIDs []int64, now time.Time) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	for _, userID := range userIDs {
		session, err := uow.VoiceSessionRepository().GetByUserID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to get voice session for user %d: %w", userID, err)
		}
		if session == nil {
			session = &models.VoiceSession{UserID: userID}
		}
		if session.OpenSince != nil {
			continue
		}
		session.OpenSince = &now
		if err := uow.VoiceSessionRepository().Upsert(ctx, session); err != nil {
			return fmt.Errorf("failed to save voice session for user %d: %w", userID, err)
		}
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{"connected": len(userIDs)}).Info("Synced voice sessions for connected members")
	return nil
}

// TopByVoiceTime returns the voice-time leaderboard including open windows
func (s *voiceService) TopByVoiceTime(ctx context.Context, limit int, now time.Time) ([]*models.VoiceRankEntry, error) {
	sessions, err := s.getAll(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]*models.VoiceRankEntry, 0, len(sessions))
	for _, session := range sessions {
		entries = append(entries, &models.VoiceRankEntry{
			UserID:       session.UserID,
			TotalSeconds: session.EffectiveTotal(now),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].TotalSeconds > entries[j].TotalSeconds
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i, entry := range entries {
		entry.Rank = i + 1
	}
	return entries, nil
}

func (s *voiceService) getAll(ctx context.Context) ([]*models.VoiceSession, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	sessions, err := uow.VoiceSessionRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get voice sessions: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return sessions, nil
}
