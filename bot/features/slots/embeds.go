package slots

import (
	"fmt"
	"strings"

	"ecubot/bot/common"
	"ecubot/models"

	"github.com/bwmarrin/discordgo"
)

func formatGrid(grid [3][3]string) string {
	rows := make([]string, 3)
	for r, row := range grid {
		rows[r] = strings.Join(row[:], " ")
	}
	return strings.Join(rows, "\n")
}

// buildResultEmbed renders the drawn grid and the settled payout
func buildResultEmbed(result *models.SlotsResult) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🎰 Slots",
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "Reels",
				Value: formatGrid(result.Grid),
			},
		},
	}

	if result.Won {
		embed.Color = 0xffd700
		embed.Description = fmt.Sprintf("🎉 **You won %s écus!** New balance: **%s écus**",
			common.FormatEcus(result.Payout), common.FormatEcus(result.NewBalance))
	} else {
		embed.Color = 0xc62828
		embed.Description = fmt.Sprintf("😔 **You lost %s écus.** New balance: **%s écus**",
			common.FormatEcus(result.Wager), common.FormatEcus(result.NewBalance))
	}

	return embed
}
