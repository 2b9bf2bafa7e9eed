package slots

import (
	"ecubot/service"

	"github.com/bwmarrin/discordgo"
)

type Feature struct {
	slotsService service.SlotsService
}

func New(slotsService service.SlotsService) *Feature {
	return &Feature{
		slotsService: slotsService,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleSlots(s, i)
}
