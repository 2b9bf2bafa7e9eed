package roulette

import (
	"fmt"

	"ecubot/models"

	"github.com/bwmarrin/discordgo"
)

// buildBoardComponents returns the bet select menu and the spin button.
// The per-pick stake travels in the menu's custom ID.
func buildBoardComponents(ownerID, amount int64) []discordgo.MessageComponent {
	options := []discordgo.SelectMenuOption{
		{Label: "Rouge", Value: "color:" + models.ColorRed, Emoji: &discordgo.ComponentEmoji{Name: "🔴"}},
		{Label: "Noir", Value: "color:" + models.ColorBlack, Emoji: &discordgo.ComponentEmoji{Name: "⚫"}},
		{Label: "Pair", Value: "parity:" + models.ParityEven},
		{Label: "Impair", Value: "parity:" + models.ParityOdd},
		{Label: "1-12", Value: "dozen:" + models.DozenFirst},
		{Label: "13-24", Value: "dozen:" + models.DozenSecond},
		{Label: "25-36", Value: "dozen:" + models.DozenThird},
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    fmt.Sprintf("%s:%d:%d", customIDBet, ownerID, amount),
					Placeholder: "Place a bet",
					Options:     options,
				},
			},
		},
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Spin",
					Style:    discordgo.DangerButton,
					CustomID: fmt.Sprintf("%s:%d", customIDSpin, ownerID),
					Emoji:    &discordgo.ComponentEmoji{Name: "🎡"},
				},
			},
		},
	}
}
