package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// BetKind identifies the family of a roulette bet
type BetKind string

const (
	BetKindColor  BetKind = "color"
	BetKindParity BetKind = "parity"
	BetKindDozen  BetKind = "dozen"
	BetKindNumber BetKind = "number"
)

// Wheel colors. Zero is green and matches no color bet.
const (
	ColorRed   = "rouge"
	ColorBlack = "noir"
	ColorGreen = "vert"
)

// Parities. Zero has no parity.
const (
	ParityEven = "pair"
	ParityOdd  = "impair"
)

// Dozens. Zero belongs to no dozen.
const (
	DozenFirst  = "1-12"
	DozenSecond = "13-24"
	DozenThird  = "25-36"
)

// BetSelection is a validated roulette bet target. Construct via the New*Bet
// helpers or ParseBetSelection; the zero value is not valid.
type BetSelection struct {
	Kind   BetKind
	Value  string // color/parity/dozen label, empty for number bets
	Number int    // only meaningful when Kind == BetKindNumber
}

// NewColorBet creates a color bet selection
func NewColorBet(color string) (BetSelection, error) {
	if color != ColorRed && color != ColorBlack {
		return BetSelection{}, fmt.Errorf("invalid color %q", color)
	}
	return BetSelection{Kind: BetKindColor, Value: color}, nil
}

// NewParityBet creates an even/odd bet selection
func NewParityBet(parity string) (BetSelection, error) {
	if parity != ParityEven && parity != ParityOdd {
		return BetSelection{}, fmt.Errorf("invalid parity %q", parity)
	}
	return BetSelection{Kind: BetKindParity, Value: parity}, nil
}

// NewDozenBet creates a dozen bet selection
func NewDozenBet(dozen string) (BetSelection, error) {
	if dozen != DozenFirst && dozen != DozenSecond && dozen != DozenThird {
		return BetSelection{}, fmt.Errorf("invalid dozen %q", dozen)
	}
	return BetSelection{Kind: BetKindDozen, Value: dozen}, nil
}

// NewNumberBet creates a straight-up number bet selection
func NewNumberBet(number int) (BetSelection, error) {
	if number < 0 || number > 36 {
		return BetSelection{}, fmt.Errorf("invalid number %d", number)
	}
	return BetSelection{Kind: BetKindNumber, Number: number}, nil
}

// ParseBetSelection parses the "kind:value" form used by the select menus,
// e.g. "color:rouge" or "number:17".
func ParseBetSelection(s string) (BetSelection, error) {
	kind, value, found := strings.Cut(s, ":")
	if !found {
		return BetSelection{}, fmt.Errorf("invalid bet selection %q", s)
	}
	switch BetKind(kind) {
	case BetKindColor:
		return NewColorBet(value)
	case BetKindParity:
		return NewParityBet(value)
	case BetKindDozen:
		return NewDozenBet(value)
	case BetKindNumber:
		n, err := strconv.Atoi(value)
		if err != nil {
			return BetSelection{}, fmt.Errorf("invalid bet number %q", value)
		}
		return NewNumberBet(n)
	default:
		return BetSelection{}, fmt.Errorf("invalid bet kind %q", kind)
	}
}

// String renders the selection in its "kind:value" wire form
func (b BetSelection) String() string {
	if b.Kind == BetKindNumber {
		return fmt.Sprintf("%s:%d", b.Kind, b.Number)
	}
	return fmt.Sprintf("%s:%s", b.Kind, b.Value)
}

// RouletteSession holds the open board of one interactive roulette game.
// Stakes are debited when placed; a spin is single-shot and terminal.
type RouletteSession struct {
	OwnerID   int64
	Bets      map[BetSelection]int64
	Finished  bool
	CreatedAt time.Time
}

// TotalStaked returns the sum of all placed bets
func (s *RouletteSession) TotalStaked() int64 {
	var total int64
	for _, amount := range s.Bets {
		total += amount
	}
	return total
}

// BetOutcome is the result of a single placed bet after the spin
type BetOutcome struct {
	Selection BetSelection
	Amount    int64
	Payout    int64 // gross credit, 0 when the bet lost
}

// SpinResult is the terminal outcome of a roulette game
type SpinResult struct {
	Number      int
	Color       string
	Outcomes    []BetOutcome
	TotalPayout int64
	NewBalance  int64
}
