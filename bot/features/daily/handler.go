package daily

import (
	"context"
	"errors"
	"fmt"

	"ecubot/bot/common"
	"ecubot/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleDaily(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userID, err := common.InteractionUserID(i)
	if err != nil {
		log.Errorf("Error parsing Discord ID: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	result, err := f.dailyService.Claim(ctx, userID)
	if errors.Is(err, service.ErrClaimOnCooldown) {
		remaining, timeErr := f.dailyService.TimeUntilNext(ctx, userID)
		if timeErr != nil {
			log.Errorf("Error getting cooldown for user %d: %v", userID, timeErr)
			common.RespondWithError(s, i, "Unable to process request. Please try again.")
			return
		}
		common.RespondWithError(s, i, fmt.Sprintf(
			"You already claimed your daily écus. Come back in **%s**.",
			common.FormatCooldown(remaining)))
		return
	}
	if err != nil {
		log.Errorf("Error processing daily claim for user %d: %v", userID, err)
		common.RespondWithError(s, i, "Unable to process your claim. Please try again.")
		return
	}

	displayName := common.GetDisplayName(s, i.GuildID, i.Member.User.ID)
	message := fmt.Sprintf("🪙 %s claimed **%s écus**! New balance: **%s écus**",
		displayName, common.FormatEcus(result.Reward), common.FormatEcus(result.NewBalance))
	common.RespondWithContent(s, i, message, false)
}
