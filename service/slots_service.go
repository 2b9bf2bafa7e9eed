package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"ecubot/config"
	"ecubot/events"
	"ecubot/models"

	log "github.com/sirupsen/logrus"
)

// slotsSymbols is the reel symbol set; each cell is drawn uniformly
var slotsSymbols = []string{"🍒", "🍋", "🍉", "⭐", "💎"}

const slotsPayoutMultiplier = 5

type slotsService struct {
	uowFactory UnitOfWorkFactory
	cfg        *config.Config

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewSlotsService creates a new slot machine service. Outcomes are
// deterministic given the rand source.
func NewSlotsService(uowFactory UnitOfWorkFactory, cfg *config.Config, rng *rand.Rand) SlotsService {
	return &slotsService{
		uowFactory: uowFactory,
		cfg:        cfg,
		rng:        rng,
	}
}

// Play is single-shot: the wager is debited, the grid drawn, and a winning
// top row pays five times the wager. Debit and payout share one transaction.
func (s *slotsService) Play(ctx context.Context, userID int64, wager int64) (*models.SlotsResult, error) {
	if wager <= 0 {
		return nil, ErrInvalidWager
	}

	grid := s.drawGrid()
	won := grid[0][0] == grid[0][1] && grid[0][0] == grid[0][2]

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := getOrCreateAccount(ctx, uow, userID, s.cfg.StartingBalance)
	if err != nil {
		return nil, err
	}
	if wager > account.Balance {
		return nil, fmt.Errorf("%w: wager %d exceeds balance %d", ErrInvalidWager, wager, account.Balance)
	}

	if _, err := applyBalanceChange(ctx, uow, account, -wager, models.TransactionTypeSlotsBet, nil); err != nil {
		return nil, err
	}

	result := &models.SlotsResult{
		Grid:  grid,
		Wager: wager,
		Won:   won,
	}
	if won {
		result.Payout = wager * slotsPayoutMultiplier
		if _, err := applyBalanceChange(ctx, uow, account, result.Payout, models.TransactionTypeSlotsPayout, map[string]any{
			"symbol": grid[0][0],
		}); err != nil {
			return nil, err
		}
	}

	uow.EventBus().Publish(events.GameResolvedEvent{
		UserID: userID,
		Game:   "slots",
		Wager:  wager,
		Payout: result.Payout,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	result.NewBalance = account.Balance

	log.WithFields(log.Fields{
		"userID": userID,
		"wager":  wager,
		"won":    won,
		"payout": result.Payout,
	}).Info("Slots played")

	return result, nil
}

func (s *slotsService) drawGrid() [3][3]string {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()

	var grid [3][3]string
	for row := range grid {
		for col := range grid[row] {
			grid[row][col] = slotsSymbols[s.rng.Intn(len(slotsSymbols))]
		}
	}
	return grid
}
