package models

// SlotsResult is the outcome of a single slot machine play
type SlotsResult struct {
	Grid       [3][3]string
	Wager      int64
	Won        bool
	Payout     int64 // gross credit, 0 on a loss
	NewBalance int64
}
