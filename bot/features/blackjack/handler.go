package blackjack

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"ecubot/bot/common"
	"ecubot/models"
	"ecubot/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleBlackjack(s *discordgo.Session, i *discordgo.InteractionCreate) {
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

	outcome, err := f.blackjackService.Start(ctx, userID, wager)
	switch {
	case errors.Is(err, service.ErrSessionActive):
		common.RespondWithError(s, i, "You already have a hand in progress. Finish it first.")
		return
	case errors.Is(err, service.ErrInvalidWager):
		common.RespondWithError(s, i, "Invalid wager. It must be positive and within your balance.")
		return
	case err != nil:
		log.Errorf("Error starting blackjack for user %d: %v", userID, err)
		common.RespondWithError(s, i, "Unable to start the hand. Please try again.")
		return
	}

	embed := buildHandEmbed(outcome)
	if err := common.RespondWithEmbed(s, i, embed, buildActionButtons(userID), false); err != nil {
		log.Errorf("Error responding to blackjack command: %v", err)
	}
}

func (f *Feature) handleAction(s *discordgo.Session, i *discordgo.InteractionCreate, customID string) {
	ctx := context.Background()

	action, ownerStr, found := strings.Cut(customID, ":")
	if !found {
		return
	}
	ownerID, err := strconv.ParseInt(ownerStr, 10, 64)
	if err != nil {
		log.Errorf("Error parsing blackjack owner ID %q: %v", ownerStr, err)
		return
	}

	actorID, err := common.InteractionUserID(i)
	if err != nil {
		log.Errorf("Error parsing Discord ID: %v", err)
		return
	}

	var outcome *models.BlackjackOutcome
	switch action {
	case customIDHit:
		outcome, err = f.blackjackService.Hit(ctx, ownerID, actorID)
	case customIDStand:
		outcome, err = f.blackjackService.Stand(ctx, ownerID, actorID)
	default:
		return
	}

	switch {
	case errors.Is(err, service.ErrUnauthorizedActor):
		// Only the owner may act; others get no reaction at all
		common.AcknowledgeComponent(s, i)
		return
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrGameFinished):
		common.RespondEphemeralToComponent(s, i, "This hand is already over.")
		return
	case err != nil:
		log.Errorf("Error resolving blackjack action for user %d: %v", ownerID, err)
		common.RespondEphemeralToComponent(s, i, "Unable to resolve the hand. Please try again.")
		return
	}

	embed := buildHandEmbed(outcome)
	var components []discordgo.MessageComponent
	if outcome.Result == models.BlackjackInProgress {
		components = buildActionButtons(ownerID)
	} else {
		components = []discordgo.MessageComponent{}
	}

	if err := common.UpdateComponentMessage(s, i, embed, components); err != nil {
		log.Errorf("Error updating blackjack message: %v", err)
	}
}
