package voice

import (
	"ecubot/service"

	"github.com/bwmarrin/discordgo"
)

type Feature struct {
	voiceService service.VoiceService
}

func New(voiceService service.VoiceService) *Feature {
	return &Feature{
		voiceService: voiceService,
	}
}

// HandleVoiceTime responds to the voice time query command
func (f *Feature) HandleVoiceTime(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleVoiceTime(s, i)
}

// HandleVoiceRank responds to the voice-time leaderboard command
func (f *Feature) HandleVoiceRank(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleVoiceRank(s, i)
}
