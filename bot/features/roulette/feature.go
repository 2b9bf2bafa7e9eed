package roulette

import (
	"strings"

	"ecubot/service"

	"github.com/bwmarrin/discordgo"
)

// Component custom ID prefixes routed to this feature
const (
	customIDBet  = "roulette_bet"
	customIDSpin = "roulette_spin"
)

type Feature struct {
	rouletteService service.RouletteService
}

func New(rouletteService service.RouletteService) *Feature {
	return &Feature{
		rouletteService: rouletteService,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleRoulette(s, i)
}

// HandlesComponent reports whether a component custom ID belongs to this feature
func (f *Feature) HandlesComponent(customID string) bool {
	return strings.HasPrefix(customID, customIDBet+":") ||
		strings.HasPrefix(customID, customIDSpin+":")
}

func (f *Feature) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate, customID string) {
	switch {
	case strings.HasPrefix(customID, customIDBet+":"):
		f.handlePlaceBet(s, i, customID)
	case strings.HasPrefix(customID, customIDSpin+":"):
		f.handleSpin(s, i, customID)
	}
}
