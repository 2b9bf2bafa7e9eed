package vocroles

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"ecubot/bot/common"
	"ecubot/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleRoleRules(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Member == nil || i.Member.Permissions&discordgo.PermissionManageRoles == 0 {
		common.RespondWithError(s, i, "You need the Manage Roles permission to configure voice roles.")
		return
	}

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}

	switch options[0].Name {
	case "add":
		f.handleAdd(s, i, options[0].Options)
	case "remove":
		f.handleRemove(s, i, options[0].Options)
	case "list":
		f.handleList(s, i)
	}
}

func (f *Feature) handleAdd(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	var roleID, minSeconds, maxSeconds int64
	for _, opt := range options {
		switch opt.Name {
		case "role":
			parsed, err := strconv.ParseInt(opt.RoleValue(nil, "").ID, 10, 64)
			if err != nil {
				log.Errorf("Error parsing role ID: %v", err)
				common.RespondWithError(s, i, "Unable to process request. Please try again.")
				return
			}
			roleID = parsed
		case "min_seconds":
			minSeconds = opt.IntValue()
		case "max_seconds":
			maxSeconds = opt.IntValue()
		}
	}

	rule, err := f.roleRuleService.AddRule(ctx, roleID, minSeconds, maxSeconds)
	if errors.Is(err, service.ErrInvalidRuleRange) {
		common.RespondWithError(s, i, "Invalid range. Min must be non-negative and max must be at least min.")
		return
	}
	if err != nil {
		log.Errorf("Error adding role rule for role %d: %v", roleID, err)
		common.RespondWithError(s, i, "Unable to add the rule. Please try again.")
		return
	}

	message := fmt.Sprintf("✅ <@&%d> is now granted between **%s** and **%s** of voice time.",
		rule.RoleID, common.FormatDuration(rule.MinSeconds), common.FormatDuration(rule.MaxSeconds))
	common.RespondWithContent(s, i, message, true)
}

func (f *Feature) handleRemove(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	var roleID int64
	for _, opt := range options {
		if opt.Name == "role" {
			parsed, err := strconv.ParseInt(opt.RoleValue(nil, "").ID, 10, 64)
			if err != nil {
				log.Errorf("Error parsing role ID: %v", err)
				common.RespondWithError(s, i, "Unable to process request. Please try again.")
				return
			}
			roleID = parsed
		}
	}

	removed, err := f.roleRuleService.RemoveRulesForRole(ctx, roleID)
	if err != nil {
		log.Errorf("Error removing role rules for role %d: %v", roleID, err)
		common.RespondWithError(s, i, "Unable to remove the rules. Please try again.")
		return
	}

	if removed == 0 {
		common.RespondWithContent(s, i, fmt.Sprintf("No rules target <@&%d>.", roleID), true)
		return
	}
	common.RespondWithContent(s, i, fmt.Sprintf("✅ Removed %d rule(s) for <@&%d>.", removed, roleID), true)
}

func (f *Feature) handleList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	rules, err := f.roleRuleService.ListRules(ctx)
	if err != nil {
		log.Errorf("Error listing role rules: %v", err)
		common.RespondWithError(s, i, "Unable to list the rules. Please try again.")
		return
	}

	if len(rules) == 0 {
		common.RespondWithContent(s, i, "No voice role rules are configured.", true)
		return
	}

	var lines []string
	for _, rule := range rules {
		lines = append(lines, fmt.Sprintf("• <@&%d> — %s to %s",
			rule.RoleID, common.FormatDuration(rule.MinSeconds), common.FormatDuration(rule.MaxSeconds)))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎙️ Voice role rules",
		Color:       0x1565c0,
		Description: strings.Join(lines, "\n"),
	}

	if err := common.RespondWithEmbed(s, i, embed, nil, true); err != nil {
		log.Errorf("Error responding to role rule list: %v", err)
	}
}
