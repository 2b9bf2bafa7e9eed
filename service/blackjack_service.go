package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"ecubot/config"
	"ecubot/events"
	"ecubot/models"

	log "github.com/sirupsen/logrus"
)

// blackjackDeck is the infinite-shoe draw multiset: ranks 2-10 plus four
// copies of 10 for the face cards and an 11 for the ace.
var blackjackDeck = []int{2, 3, 4, 5, 6, 7, 8, 9, 10, 10, 10, 10, 11}

const dealerStandScore = 17

// HandScore computes a blackjack hand score with soft-ace reduction:
// each 11 is demoted to 1 while the total exceeds 21.
func HandScore(cards []int) int {
	score := 0
	aces := 0
	for _, card := range cards {
		score += card
		if card == 11 {
			aces++
		}
	}
	for score > 21 && aces > 0 {
		score -= 10
		aces--
	}
	return score
}

type blackjackService struct {
	uowFactory UnitOfWorkFactory
	cfg        *config.Config

	mu       sync.Mutex
	sessions map[int64]*models.BlackjackSession

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewBlackjackService creates a new blackjack service. Outcomes are
// deterministic given the rand source.
func NewBlackjackService(uowFactory UnitOfWorkFactory, cfg *config.Config, rng *rand.Rand) BlackjackService {
	return &blackjackService{
		uowFactory: uowFactory,
		cfg:        cfg,
		sessions:   make(map[int64]*models.BlackjackSession),
		rng:        rng,
	}
}

func (s *blackjackService) draw() int {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return blackjackDeck[s.rng.Intn(len(blackjackDeck))]
}

// Start deals a new hand. The wager is validated against the balance and
// reserved by the open session; no money moves until the hand resolves, so
// an abandoned hand costs nothing.
func (s *blackjackService) Start(ctx context.Context, ownerID int64, wager int64) (*models.BlackjackOutcome, error) {
	if wager <= 0 {
		return nil, ErrInvalidWager
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[ownerID]; exists {
		return nil, ErrSessionActive
	}

	balance, err := s.currentBalance(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if wager > balance {
		return nil, fmt.Errorf("%w: wager %d exceeds balance %d", ErrInvalidWager, wager, balance)
	}

	session := &models.BlackjackSession{
		OwnerID:     ownerID,
		PlayerCards: []int{s.draw(), s.draw()},
		DealerCards: []int{s.draw(), s.draw()},
		Wager:       wager,
		CreatedAt:   time.Now(),
	}
	s.sessions[ownerID] = session

	log.WithFields(log.Fields{
		"userID": ownerID,
		"wager":  wager,
	}).Info("Blackjack hand started")

	return s.outcome(session, models.BlackjackInProgress, balance), nil
}

// Hit draws a card for the player. Going over 21 settles the loss.
func (s *blackjackService) Hit(ctx context.Context, ownerID, actorID int64) (*models.BlackjackOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.actionable(ownerID, actorID)
	if err != nil {
		return nil, err
	}

	session.PlayerCards = append(session.PlayerCards, s.draw())
	if HandScore(session.PlayerCards) <= 21 {
		return s.outcome(session, models.BlackjackInProgress, 0), nil
	}

	// Bust: the reserved wager is lost
	newBalance, err := s.settle(ctx, session, -session.Wager, models.TransactionTypeBlackjackLoss, 0)
	if err != nil {
		return nil, err
	}
	return s.outcome(session, models.BlackjackBust, newBalance), nil
}

// Stand plays out the dealer and settles the hand
func (s *blackjackService) Stand(ctx context.Context, ownerID, actorID int64) (*models.BlackjackOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.actionable(ownerID, actorID)
	if err != nil {
		return nil, err
	}

	for HandScore(session.DealerCards) < dealerStandScore {
		session.DealerCards = append(session.DealerCards, s.draw())
	}

	playerScore := HandScore(session.PlayerCards)
	dealerScore := HandScore(session.DealerCards)

	var result models.BlackjackResult
	var delta int64
	var txType models.TransactionType
	var payout int64
	switch {
	case dealerScore > 21 || playerScore > dealerScore:
		result = models.BlackjackWin
		delta = session.Wager
		txType = models.TransactionTypeBlackjackWin
		payout = session.Wager
	case dealerScore == playerScore:
		result = models.BlackjackPush
	default:
		result = models.BlackjackLoss
		delta = -session.Wager
		txType = models.TransactionTypeBlackjackLoss
	}

	newBalance, err := s.settle(ctx, session, delta, txType, payout)
	if err != nil {
		return nil, err
	}
	return s.outcome(session, result, newBalance), nil
}

// ExpireSessions reaps abandoned hands older than maxAge. No money has
// moved for them, so reaping is free.
func (s *blackjackService) ExpireSessions(maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	expired := 0
	for ownerID, session := range s.sessions {
		if session.CreatedAt.Before(cutoff) {
			delete(s.sessions, ownerID)
			expired++
		}
	}
	if expired > 0 {
		log.WithFields(log.Fields{"expired": expired}).Info("Expired abandoned blackjack hands")
	}
	return expired
}

// actionable returns the owner's open session after authorization checks.
// Callers must hold s.mu.
func (s *blackjackService) actionable(ownerID, actorID int64) (*models.BlackjackSession, error) {
	session, exists := s.sessions[ownerID]
	if !exists {
		return nil, ErrSessionNotFound
	}
	if actorID != session.OwnerID {
		return nil, ErrUnauthorizedActor
	}
	if session.Finished {
		return nil, ErrGameFinished
	}
	return session, nil
}

// settle applies the terminal balance change (one retry on persistence
// failure), marks the session finished and removes it.
func (s *blackjackService) settle(ctx context.Context, session *models.BlackjackSession, delta int64, txType models.TransactionType, payout int64) (int64, error) {
	newBalance, err := s.applySettlement(ctx, session, delta, txType, payout)
	if err != nil {
		log.WithFields(log.Fields{
			"userID": session.OwnerID,
			"error":  err,
		}).Warn("Blackjack settlement failed, retrying once")
		newBalance, err = s.applySettlement(ctx, session, delta, txType, payout)
	}

	// Terminal either way: further actions on this hand are rejected and a
	// failed write is surfaced rather than acknowledged.
	session.Finished = true
	delete(s.sessions, session.OwnerID)

	if err != nil {
		return 0, err
	}
	return newBalance, nil
}

func (s *blackjackService) applySettlement(ctx context.Context, session *models.BlackjackSession, delta int64, txType models.TransactionType, payout int64) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := getOrCreateAccount(ctx, uow, session.OwnerID, s.cfg.StartingBalance)
	if err != nil {
		return 0, err
	}

	newBalance := account.Balance
	if delta != 0 {
		newBalance, err = applyBalanceChange(ctx, uow, account, delta, txType, map[string]any{
			"wager":        session.Wager,
			"player_cards": session.PlayerCards,
			"dealer_cards": session.DealerCards,
		})
		if err != nil {
			return 0, err
		}
	}

	uow.EventBus().Publish(events.GameResolvedEvent{
		UserID: session.OwnerID,
		Game:   "blackjack",
		Wager:  session.Wager,
		Payout: payout,
	})

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return newBalance, nil
}

func (s *blackjackService) currentBalance(ctx context.Context, userID int64) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := getOrCreateAccount(ctx, uow, userID, s.cfg.StartingBalance)
	if err != nil {
		return 0, err
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return account.Balance, nil
}

func (s *blackjackService) outcome(session *models.BlackjackSession, result models.BlackjackResult, newBalance int64) *models.BlackjackOutcome {
	return &models.BlackjackOutcome{
		Result:      result,
		PlayerCards: append([]int(nil), session.PlayerCards...),
		DealerCards: append([]int(nil), session.DealerCards...),
		PlayerScore: HandScore(session.PlayerCards),
		DealerScore: HandScore(session.DealerCards),
		Wager:       session.Wager,
		NewBalance:  newBalance,
	}
}
