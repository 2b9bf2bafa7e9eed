package service

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"ecubot/config"
	"ecubot/events"
	"ecubot/models"

	log "github.com/sirupsen/logrus"
)

// Payout multipliers (gross: the stake was already debited at placement)
const (
	rouletteNumberPayout = 35
	rouletteEvenPayout   = 2
	rouletteDozenPayout  = 3
)

// The European wheel's red numbers; 1-36 minus these are black, 0 is green.
var rouletteRedNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true,
	14: true, 16: true, 18: true, 19: true, 21: true, 23: true,
	25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

// wheelColor returns the color of a pocket
func wheelColor(number int) string {
	switch {
	case number == 0:
		return models.ColorGreen
	case rouletteRedNumbers[number]:
		return models.ColorRed
	default:
		return models.ColorBlack
	}
}

// wheelParity returns the parity label of a pocket; zero has none
func wheelParity(number int) string {
	if number == 0 {
		return ""
	}
	if number%2 == 0 {
		return models.ParityEven
	}
	return models.ParityOdd
}

// wheelDozen returns the dozen label of a pocket; zero has none
func wheelDozen(number int) string {
	switch {
	case number >= 1 && number <= 12:
		return models.DozenFirst
	case number >= 13 && number <= 24:
		return models.DozenSecond
	case number >= 25 && number <= 36:
		return models.DozenThird
	default:
		return ""
	}
}

// payoutFor returns the gross credit for a bet given the drawn pocket,
// zero when the bet lost.
func payoutFor(selection models.BetSelection, amount int64, number int) int64 {
	switch selection.Kind {
	case models.BetKindNumber:
		if selection.Number == number {
			return amount * rouletteNumberPayout
		}
	case models.BetKindColor:
		if selection.Value == wheelColor(number) {
			return amount * rouletteEvenPayout
		}
	case models.BetKindParity:
		if selection.Value == wheelParity(number) {
			return amount * rouletteEvenPayout
		}
	case models.BetKindDozen:
		if selection.Value == wheelDozen(number) {
			return amount * rouletteDozenPayout
		}
	}
	return 0
}

type rouletteService struct {
	uowFactory UnitOfWorkFactory
	cfg        *config.Config

	mu       sync.Mutex
	sessions map[int64]*models.RouletteSession

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewRouletteService creates a new roulette service. Outcomes are
// deterministic given the rand source.
func NewRouletteService(uowFactory UnitOfWorkFactory, cfg *config.Config, rng *rand.Rand) RouletteService {
	return &rouletteService{
		uowFactory: uowFactory,
		cfg:        cfg,
		sessions:   make(map[int64]*models.RouletteSession),
		rng:        rng,
	}
}

// Open creates a new betting board for the owner
func (s *rouletteService) Open(ownerID int64) (*models.RouletteSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[ownerID]; exists {
		return nil, ErrSessionActive
	}

	session := &models.RouletteSession{
		OwnerID:   ownerID,
		Bets:      make(map[models.BetSelection]int64),
		CreatedAt: time.Now(),
	}
	s.sessions[ownerID] = session
	return session, nil
}

// PlaceBet debits the stake immediately and accumulates it on the board.
// Repeated bets on the same selection sum.
func (s *rouletteService) PlaceBet(ctx context.Context, ownerID, actorID int64, selection models.BetSelection, amount int64) (*models.RouletteSession, int64, error) {
	if amount <= 0 {
		return nil, 0, ErrInvalidWager
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.actionable(ownerID, actorID)
	if err != nil {
		return nil, 0, err
	}

	// Debit first: the stake is only recorded on the board once the money
	// has actually moved.
	newBalance, err := s.adjust(ctx, ownerID, -amount, models.TransactionTypeRouletteBet, map[string]any{
		"selection": selection.String(),
		"amount":    amount,
	})
	if err != nil {
		return nil, 0, err
	}

	session.Bets[selection] += amount

	log.WithFields(log.Fields{
		"userID":    ownerID,
		"selection": selection.String(),
		"amount":    amount,
	}).Info("Roulette bet placed")

	return session, newBalance, nil
}

// Spin resolves the board. Single-shot: the session is terminal afterwards
// and no further bets are accepted.
func (s *rouletteService) Spin(ctx context.Context, ownerID, actorID int64) (*models.SpinResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.actionable(ownerID, actorID)
	if err != nil {
		return nil, err
	}
	if len(session.Bets) == 0 {
		return nil, ErrNoBets
	}

	s.rngMu.Lock()
	number := s.rng.Intn(37)
	s.rngMu.Unlock()

	result, err := s.applySpinSettlement(ctx, session, number)
	if err != nil {
		log.WithFields(log.Fields{
			"userID": ownerID,
			"error":  err,
		}).Warn("Roulette settlement failed, retrying once")
		result, err = s.applySpinSettlement(ctx, session, number)
	}

	// Terminal either way: the board is single-shot and a failed write is
	// surfaced rather than acknowledged.
	session.Finished = true
	delete(s.sessions, ownerID)

	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"userID": ownerID,
		"number": number,
		"color":  result.Color,
		"payout": result.TotalPayout,
	}).Info("Roulette spin resolved")

	return result, nil
}

// applySpinSettlement credits the winning bets for an already drawn pocket
// in one unit of work and builds the terminal result.
func (s *rouletteService) applySpinSettlement(ctx context.Context, session *models.RouletteSession, number int) (*models.SpinResult, error) {
	result := &models.SpinResult{
		Number: number,
		Color:  wheelColor(number),
	}

	// Stable ordering for display and tests
	selections := make([]models.BetSelection, 0, len(session.Bets))
	for selection := range session.Bets {
		selections = append(selections, selection)
	}
	sort.Slice(selections, func(i, j int) bool {
		return selections[i].String() < selections[j].String()
	})

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := getOrCreateAccount(ctx, uow, session.OwnerID, s.cfg.StartingBalance)
	if err != nil {
		return nil, err
	}

	var totalStaked int64
	for _, selection := range selections {
		amount := session.Bets[selection]
		totalStaked += amount
		payout := payoutFor(selection, amount, number)
		if payout > 0 {
			if _, err := applyBalanceChange(ctx, uow, account, payout, models.TransactionTypeRoulettePayout, map[string]any{
				"selection": selection.String(),
				"amount":    amount,
				"number":    number,
			}); err != nil {
				return nil, err
			}
			result.TotalPayout += payout
		}
		result.Outcomes = append(result.Outcomes, models.BetOutcome{
			Selection: selection,
			Amount:    amount,
			Payout:    payout,
		})
	}

	uow.EventBus().Publish(events.GameResolvedEvent{
		UserID: session.OwnerID,
		Game:   "roulette",
		Wager:  totalStaked,
		Payout: result.TotalPayout,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	result.NewBalance = account.Balance
	return result, nil
}

// ExpireSessions reaps abandoned boards older than maxAge. Placed stakes
// were debited at placement and stay lost, matching an unspun board.
func (s *rouletteService) ExpireSessions(maxAge time.Duration) int {
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
		log.WithFields(log.Fields{"expired": expired}).Info("Expired abandoned roulette boards")
	}
	return expired
}

// actionable returns the owner's open board after authorization checks.
// Callers must hold s.mu.
func (s *rouletteService) actionable(ownerID, actorID int64) (*models.RouletteSession, error) {
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

func (s *rouletteService) adjust(ctx context.Context, userID, delta int64, txType models.TransactionType, metadata map[string]any) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := getOrCreateAccount(ctx, uow, userID, s.cfg.StartingBalance)
	if err != nil {
		return 0, err
	}

	newBalance, err := applyBalanceChange(ctx, uow, account, delta, txType, metadata)
	if err != nil {
		return 0, err
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return newBalance, nil
}
