package admin

import (
	"math/rand"
	"sync"

	"ecubot/service"

	"github.com/bwmarrin/discordgo"
)

type Feature struct {
	ledgerService service.LedgerService

	rngMu sync.Mutex
	rng   *rand.Rand
}

func New(ledgerService service.LedgerService, rng *rand.Rand) *Feature {
	return &Feature{
		ledgerService: ledgerService,
		rng:           rng,
	}
}

// HandleAddCredits responds to the admin balance adjustment command
func (f *Feature) HandleAddCredits(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleAddCredits(s, i)
}

// HandleRandom responds to the random number command
func (f *Feature) HandleRandom(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleRandom(s, i)
}
