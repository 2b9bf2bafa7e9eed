package blackjack

import (
	"strings"

	"ecubot/service"

	"github.com/bwmarrin/discordgo"
)

// Component custom ID prefixes routed to this feature
const (
	customIDHit   = "blackjack_hit"
	customIDStand = "blackjack_stand"
)

type Feature struct {
	blackjackService service.BlackjackService
}

func New(blackjackService service.BlackjackService) *Feature {
	return &Feature{
		blackjackService: blackjackService,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleBlackjack(s, i)
}

// HandlesComponent reports whether a component custom ID belongs to this feature
func (f *Feature) HandlesComponent(customID string) bool {
	return strings.HasPrefix(customID, customIDHit+":") ||
		strings.HasPrefix(customID, customIDStand+":")
}

func (f *Feature) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate, customID string) {
	f.handleAction(s, i, customID)
}
