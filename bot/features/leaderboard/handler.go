package leaderboard

import (
	"context"
	"fmt"
	"strings"

	"ecubot/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const leaderboardSize = 10

func medal(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("%d.", rank)
	}
}

func (f *Feature) handleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	entries, err := f.leaderboardService.TopBalances(ctx, leaderboardSize)
	if err != nil {
		log.Errorf("Error fetching balance leaderboard: %v", err)
		common.RespondWithError(s, i, "Unable to fetch the leaderboard. Please try again.")
		return
	}

	if len(entries) == 0 {
		common.RespondWithContent(s, i, "Nobody has an account yet.", false)
		return
	}

	var lines []string
	for _, entry := range entries {
		lines = append(lines, fmt.Sprintf("%s %s — **%s écus**",
			medal(entry.Rank), common.Mention(entry.UserID), common.FormatEcus(entry.Balance)))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🏆 Richest players",
		Color:       0xffd700,
		Description: strings.Join(lines, "\n"),
	}

	if err := common.RespondWithEmbed(s, i, embed, nil, false); err != nil {
		log.Errorf("Error responding to leaderboard command: %v", err)
	}
}
