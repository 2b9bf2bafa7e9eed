package roulette

import (
	"fmt"
	"sort"
	"strings"

	"ecubot/bot/common"
	"ecubot/models"

	"github.com/bwmarrin/discordgo"
)

func colorEmoji(color string) string {
	switch color {
	case models.ColorRed:
		return "🔴"
	case models.ColorBlack:
		return "⚫"
	default:
		return "🟢"
	}
}

// buildBoardEmbed renders the open board with its placed bets. A negative
// balance omits the footer.
func buildBoardEmbed(session *models.RouletteSession, amount, balance int64) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🎡 Roulette",
		Color: 0x1565c0,
		Description: fmt.Sprintf("Each pick stakes **%s écus**. Spin when you are ready.",
			common.FormatEcus(amount)),
	}

	if len(session.Bets) > 0 {
		selections := make([]models.BetSelection, 0, len(session.Bets))
		for selection := range session.Bets {
			selections = append(selections, selection)
		}
		sort.Slice(selections, func(i, j int) bool {
			return selections[i].String() < selections[j].String()
		})

		var lines []string
		for _, selection := range selections {
			lines = append(lines, fmt.Sprintf("• `%s` — %s écus",
				selection.String(), common.FormatEcus(session.Bets[selection])))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("Bets (%s écus staked)", common.FormatEcus(session.TotalStaked())),
			Value: strings.Join(lines, "\n"),
		})
	}

	if balance >= 0 {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Balance: %s écus", common.FormatEcus(balance)),
		}
	}

	return embed
}

// buildSpinEmbed renders the terminal result of a spin
func buildSpinEmbed(result *models.SpinResult) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🎡 Roulette",
		Description: fmt.Sprintf("The ball lands on %s **%d**!",
			colorEmoji(result.Color), result.Number),
	}

	var lines []string
	for _, outcome := range result.Outcomes {
		if outcome.Payout > 0 {
			lines = append(lines, fmt.Sprintf("✅ `%s` — %s écus pays **%s écus**",
				outcome.Selection.String(), common.FormatEcus(outcome.Amount), common.FormatEcus(outcome.Payout)))
		} else {
			lines = append(lines, fmt.Sprintf("❌ `%s` — %s écus lost",
				outcome.Selection.String(), common.FormatEcus(outcome.Amount)))
		}
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "Results",
		Value: strings.Join(lines, "\n"),
	})

	if result.TotalPayout > 0 {
		embed.Color = 0xffd700
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Won %s écus • Balance: %s écus",
				common.FormatEcus(result.TotalPayout), common.FormatEcus(result.NewBalance)),
		}
	} else {
		embed.Color = 0xc62828
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Balance: %s écus", common.FormatEcus(result.NewBalance)),
		}
	}

	return embed
}
