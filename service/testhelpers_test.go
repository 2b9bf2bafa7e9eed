package service

import (
	"math/rand"

	"ecubot/config"
)

func testConfig() *config.Config {
	return &config.Config{
		StartingBalance:           1000,
		DailyReward:               500,
		DailyCooldown:             86400,
		VoiceFlushIntervalSeconds: 60,
		Environment:               "test",
	}
}

// zeroSource pins every Intn draw to index 0
type zeroSource struct{}

func (zeroSource) Int63() int64 { return 0 }
func (zeroSource) Seed(int64)   {}

func zeroRand() *rand.Rand {
	return rand.New(zeroSource{})
}

// scriptedSource replays fixed draw indexes. Each value must be smaller than
// the Intn bound it will be consumed by; exhausted scripts yield zero.
type scriptedSource struct {
	vals []int64
	i    int
}

func (s *scriptedSource) Int63() int64 {
	if s.i >= len(s.vals) {
		return 0
	}
	v := s.vals[s.i]
	s.i++
	return v << 32
}

func (s *scriptedSource) Seed(int64) {}

func scriptedRand(vals ...int64) *rand.Rand {
	return rand.New(&scriptedSource{vals: vals})
}
