package blackjack

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// buildActionButtons returns the hit/stand row bound to the hand's owner
func buildActionButtons(ownerID int64) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Hit",
					Style:    discordgo.PrimaryButton,
					CustomID: fmt.Sprintf("%s:%d", customIDHit, ownerID),
				},
				discordgo.Button{
					Label:    "Stand",
					Style:    discordgo.SecondaryButton,
					CustomID: fmt.Sprintf("%s:%d", customIDStand, ownerID),
				},
			},
		},
	}
}
