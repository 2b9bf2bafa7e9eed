package daily

import (
	"ecubot/service"

	"github.com/bwmarrin/discordgo"
)

type Feature struct {
	dailyService service.DailyService
}

func New(dailyService service.DailyService) *Feature {
	return &Feature{
		dailyService: dailyService,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleDaily(s, i)
}
