package voice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ecubot/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const rankSize = 10

func (f *Feature) handleVoiceTime(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userID, err := common.InteractionUserID(i)
	if err != nil {
		log.Errorf("Error parsing Discord ID: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	total, err := f.voiceService.EffectiveTotal(ctx, userID, time.Now())
	if err != nil {
		log.Errorf("Error fetching voice time for user %d: %v", userID, err)
		common.RespondWithError(s, i, "Unable to fetch your voice time. Please try again.")
		return
	}

	message := fmt.Sprintf("🎙️ %s, you have spent **%s** in voice channels.",
		common.Mention(userID), common.FormatDuration(total))
	common.RespondWithContent(s, i, message, false)
}

func (f *Feature) handleVoiceRank(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	entries, err := f.voiceService.TopByVoiceTime(ctx, rankSize, time.Now())
	if err != nil {
		log.Errorf("Error fetching voice leaderboard: %v", err)
		common.RespondWithError(s, i, "Unable to fetch the leaderboard. Please try again.")
		return
	}

	if len(entries) == 0 {
		common.RespondWithContent(s, i, "Nobody has voice time yet.", false)
		return
	}

	var lines []string
	for _, entry := range entries {
		lines = append(lines, fmt.Sprintf("**%d.** %s — %s",
			entry.Rank, common.Mention(entry.UserID), common.FormatDuration(entry.TotalSeconds)))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎙️ Voice time leaderboard",
		Color:       0x1565c0,
		Description: strings.Join(lines, "\n"),
	}

	if err := common.RespondWithEmbed(s, i, embed, nil, false); err != nil {
		log.Errorf("Error responding to voice rank command: %v", err)
	}
}
