package vocroles

import (
	"ecubot/service"

	"github.com/bwmarrin/discordgo"
)

type Feature struct {
	roleRuleService service.RoleRuleService
}

func New(roleRuleService service.RoleRuleService) *Feature {
	return &Feature{
		roleRuleService: roleRuleService,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleRoleRules(s, i)
}
