package slots

import (
	"context"
	"errors"

	"ecubot/bot/common"
	"ecubot/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleSlots(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userID, err := common.InteractionUserID(i)
	if err != nil {
		log.Errorf("Error parsing Discord ID: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	var wager int64
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "wager" {
			wager = opt.IntValue()
		}
	}

	result, err := f.slotsService.Play(ctx, userID, wager)
	switch {
	case errors.Is(err, service.ErrInvalidWager):
		common.RespondWithError(s, i, "Invalid wager. It must be positive and within your balance.")
		return
	case err != nil:
		log.Errorf("Error playing slots for user %d: %v", userID, err)
		common.RespondWithError(s, i, "Unable to spin the reels. Please try again.")
		return
	}

	embed := buildResultEmbed(result)
	if err := common.RespondWithEmbed(s, i, embed, nil, false); err != nil {
		log.Errorf("Error responding to slots command: %v", err)
	}
}
