package roulette

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

func (f *Feature) handleRoulette(s *discordgo.Session, i *discordgo.InteractionCreate) {
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
	if wager <= 0 {
		common.RespondWithError(s, i, "Invalid wager. It must be positive.")
		return
	}

	session, err := f.rouletteService.Open(userID)
	if errors.Is(err, service.ErrSessionActive) {
		common.RespondWithError(s, i, "You already have a board open. Spin it first.")
		return
	}
	if err != nil {
		log.Errorf("Error opening roulette board for user %d: %v", userID, err)
		common.RespondWithError(s, i, "Unable to open the board. Please try again.")
		return
	}

	embed := buildBoardEmbed(session, wager, -1)
	if err := common.RespondWithEmbed(s, i, embed, buildBoardComponents(userID, wager), false); err != nil {
		log.Errorf("Error responding to roulette command: %v", err)
	}
}

func (f *Feature) handlePlaceBet(s *discordgo.Session, i *discordgo.InteractionCreate, customID string) {
	ctx := context.Background()

	parts := strings.Split(customID, ":")
	if len(parts) != 3 {
		return
	}
	ownerID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		log.Errorf("Error parsing roulette owner ID %q: %v", parts[1], err)
		return
	}
	amount, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		log.Errorf("Error parsing roulette stake %q: %v", parts[2], err)
		return
	}

	actorID, err := common.InteractionUserID(i)
	if err != nil {
		log.Errorf("Error parsing Discord ID: %v", err)
		return
	}

	values := i.MessageComponentData().Values
	if len(values) != 1 {
		return
	}
	selection, err := models.ParseBetSelection(values[0])
	if err != nil {
		log.Errorf("Error parsing roulette bet %q: %v", values[0], err)
		common.RespondEphemeralToComponent(s, i, "Unknown bet. Please try again.")
		return
	}

	session, newBalance, err := f.rouletteService.PlaceBet(ctx, ownerID, actorID, selection, amount)
	switch {
	case errors.Is(err, service.ErrUnauthorizedActor):
		// Only the owner may act; others get no reaction at all
		common.AcknowledgeComponent(s, i)
		return
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrGameFinished):
		common.RespondEphemeralToComponent(s, i, "This board is already closed.")
		return
	case errors.Is(err, service.ErrInsufficientBalance):
		common.RespondEphemeralToComponent(s, i, "You don't have enough écus for that bet.")
		return
	case err != nil:
		log.Errorf("Error placing roulette bet for user %d: %v", ownerID, err)
		common.RespondEphemeralToComponent(s, i, "Unable to place the bet. Please try again.")
		return
	}

	embed := buildBoardEmbed(session, amount, newBalance)
	if err := common.UpdateComponentMessage(s, i, embed, buildBoardComponents(ownerID, amount)); err != nil {
		log.Errorf("Error updating roulette board: %v", err)
	}
}

func (f *Feature) handleSpin(s *discordgo.Session, i *discordgo.InteractionCreate, customID string) {
	ctx := context.Background()

	_, ownerStr, found := strings.Cut(customID, ":")
	if !found {
		return
	}
	ownerID, err := strconv.ParseInt(ownerStr, 10, 64)
	if err != nil {
		log.Errorf("Error parsing roulette owner ID %q: %v", ownerStr, err)
		return
	}

	actorID, err := common.InteractionUserID(i)
	if err != nil {
		log.Errorf("Error parsing Discord ID: %v", err)
		return
	}

	result, err := f.rouletteService.Spin(ctx, ownerID, actorID)
	switch {
	case errors.Is(err, service.ErrUnauthorizedActor):
		// Only the owner may act; others get no reaction at all
		common.AcknowledgeComponent(s, i)
		return
	case errors.Is(err, service.ErrNoBets):
		common.RespondEphemeralToComponent(s, i, "Place at least one bet before spinning.")
		return
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrGameFinished):
		common.RespondEphemeralToComponent(s, i, "This board is already closed.")
		return
	case err != nil:
		log.Errorf("Error spinning roulette for user %d: %v", ownerID, err)
		common.RespondEphemeralToComponent(s, i, "Unable to spin the wheel. Please try again.")
		return
	}

	embed := buildSpinEmbed(result)
	if err := common.UpdateComponentMessage(s, i, embed, []discordgo.MessageComponent{}); err != nil {
		log.Errorf("Error updating roulette message: %v", err)
	}
}
