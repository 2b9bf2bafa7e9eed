package admin

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"ecubot/bot/common"
	"ecubot/models"
	"ecubot/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleAddCredits(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	if i.Member == nil || i.Member.Permissions&discordgo.PermissionAdministrator == 0 {
		common.RespondWithError(s, i, "You need the Administrator permission to adjust balances.")
		return
	}

	adminID, err := common.InteractionUserID(i)
	if err != nil {
		log.Errorf("Error parsing Discord ID: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	var targetID, amount int64
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "user":
			parsed, err := strconv.ParseInt(opt.UserValue(nil).ID, 10, 64)
			if err != nil {
				log.Errorf("Error parsing target user ID: %v", err)
				common.RespondWithError(s, i, "Unable to process request. Please try again.")
				return
			}
			targetID = parsed
		case "amount":
			amount = opt.IntValue()
		}
	}

	if amount == 0 {
		common.RespondWithError(s, i, "Amount must be non-zero.")
		return
	}

	newBalance, err := f.ledgerService.Adjust(ctx, targetID, amount, models.TransactionTypeAdminAdjust, map[string]any{
		"admin_id": adminID,
	})
	if errors.Is(err, service.ErrInsufficientBalance) {
		common.RespondWithError(s, i, "That deduction would take the balance below zero.")
		return
	}
	if err != nil {
		log.Errorf("Error adjusting balance for user %d: %v", targetID, err)
		common.RespondWithError(s, i, "Unable to adjust the balance. Please try again.")
		return
	}

	verb := "Credited"
	display := amount
	if amount < 0 {
		verb = "Deducted"
		display = -amount
	}
	message := fmt.Sprintf("✅ %s **%s écus** %s %s. New balance: **%s écus**",
		verb, common.FormatEcus(display), directionWord(amount), common.Mention(targetID),
		common.FormatEcus(newBalance))
	common.RespondWithContent(s, i, message, false)
}

func directionWord(amount int64) string {
	if amount < 0 {
		return "from"
	}
	return "to"
}

func (f *Feature) handleRandom(s *discordgo.Session, i *discordgo.InteractionCreate) {
	min, max := int64(1), int64(100)
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "min":
			min = opt.IntValue()
		case "max":
			max = opt.IntValue()
		}
	}

	if max < min {
		common.RespondWithError(s, i, "Max must be at least min.")
		return
	}

	f.rngMu.Lock()
	n := min + f.rng.Int63n(max-min+1)
	f.rngMu.Unlock()

	common.RespondWithContent(s, i, fmt.Sprintf("🎲 Random number between %d and %d: **%d**", min, max, n), false)
}
