package blackjack

import (
	"fmt"
	"strconv"
	"strings"

	"ecubot/bot/common"
	"ecubot/models"

	"github.com/bwmarrin/discordgo"
)

func formatCards(cards []int) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		parts[i] = strconv.Itoa(card)
	}
	return strings.Join(parts, " ")
}

// buildHandEmbed renders the current hand. While the hand is live only the
// dealer's first card shows.
func buildHandEmbed(outcome *models.BlackjackOutcome) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🃏 Blackjack",
		Color: 0x2e7d32,
	}

	dealerLine := fmt.Sprintf("%d ?", outcome.DealerCards[0])
	dealerName := "Dealer"
	if outcome.Result != models.BlackjackInProgress {
		dealerLine = fmt.Sprintf("%s (%d)", formatCards(outcome.DealerCards), outcome.DealerScore)
	}

	embed.Fields = []*discordgo.MessageEmbedField{
		{
			Name:   fmt.Sprintf("Your hand (%d)", outcome.PlayerScore),
			Value:  formatCards(outcome.PlayerCards),
			Inline: true,
		},
		{
			Name:   dealerName,
			Value:  dealerLine,
			Inline: true,
		},
	}

	switch outcome.Result {
	case models.BlackjackInProgress:
		embed.Description = fmt.Sprintf("Wager: **%s écus**", common.FormatEcus(outcome.Wager))
	case models.BlackjackWin:
		embed.Color = 0xffd700
		embed.Description = fmt.Sprintf("🎉 **You won %s écus!** New balance: **%s écus**",
			common.FormatEcus(outcome.Wager), common.FormatEcus(outcome.NewBalance))
	case models.BlackjackPush:
		embed.Color = 0x9e9e9e
		embed.Description = fmt.Sprintf("🤝 **Push.** Your wager is returned. Balance: **%s écus**",
			common.FormatEcus(outcome.NewBalance))
	case models.BlackjackLoss:
		embed.Color = 0xc62828
		embed.Description = fmt.Sprintf("😔 **You lost %s écus.** New balance: **%s écus**",
			common.FormatEcus(outcome.Wager), common.FormatEcus(outcome.NewBalance))
	case models.BlackjackBust:
		embed.Color = 0xc62828
		embed.Description = fmt.Sprintf("💥 **Bust!** You lost **%s écus**. New balance: **%s écus**",
			common.FormatEcus(outcome.Wager), common.FormatEcus(outcome.NewBalance))
	}

	return embed
}
