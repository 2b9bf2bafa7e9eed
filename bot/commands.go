package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) registerCommands() error {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "balance",
			Description: "Check your current balance",
		},
		{
			Name:        "daily",
			Description: "Claim your daily écus",
		},
		{
			Name:        "blackjack",
			Description: "Play a hand of blackjack",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "wager",
					Description: "Amount to wager in écus",
					Required:    true,
				},
			},
		},
		{
			Name:        "roulette",
			Description: "Open a roulette board",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "wager",
					Description: "Stake of each bet in écus",
					Required:    true,
				},
			},
		},
		{
			Name:        "slots",
			Description: "Spin the slot machine",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "wager",
					Description: "Amount to wager in écus",
					Required:    true,
				},
			},
		},
		{
			Name:        "leaderboard",
			Description: "Display the richest players",
		},
		{
			Name:        "voc",
			Description: "Show your time spent in voice channels",
		},
		{
			Name:        "vocrank",
			Description: "Display the voice time leaderboard",
		},
		{
			Name:        "vocrole",
			Description: "Manage voice time role rules",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add",
					Description: "Grant a role for a range of voice time",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionRole,
							Name:        "role",
							Description: "Role to grant",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "min_seconds",
							Description: "Minimum voice time in seconds (inclusive)",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "max_seconds",
							Description: "Maximum voice time in seconds (inclusive)",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove",
					Description: "Remove all rules for a role",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionRole,
							Name:        "role",
							Description: "Role to stop managing",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List the configured rules",
				},
			},
		},
		{
			Name:        "addcredits",
			Description: "Credit or deduct écus (admin only)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "User whose balance to adjust",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Amount in écus, negative to deduct",
					Required:    true,
				},
			},
		},
		{
			Name:        "random",
			Description: "Draw a random number",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "min",
					Description: "Lower bound (default 1)",
					Required:    false,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "max",
					Description: "Upper bound (default 100)",
					Required:    false,
				},
			},
		},
	}

	for _, cmd := range commands {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	return nil
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "balance":
		b.balanceFeature.HandleCommand(s, i)
	case "daily":
		b.dailyFeature.HandleCommand(s, i)
	case "blackjack":
		b.blackjackFeature.HandleCommand(s, i)
	case "roulette":
		b.rouletteFeature.HandleCommand(s, i)
	case "slots":
		b.slotsFeature.HandleCommand(s, i)
	case "leaderboard":
		b.leaderboardFeature.HandleCommand(s, i)
	case "voc":
		b.voiceFeature.HandleVoiceTime(s, i)
	case "vocrank":
		b.voiceFeature.HandleVoiceRank(s, i)
	case "vocrole":
		b.vocRolesFeature.HandleCommand(s, i)
	case "addcredits":
		b.adminFeature.HandleAddCredits(s, i)
	case "random":
		b.adminFeature.HandleRandom(s, i)
	}
}

func (b *Bot) handleComponents(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	customID := i.MessageComponentData().CustomID
	switch {
	case b.blackjackFeature.HandlesComponent(customID):
		b.blackjackFeature.HandleComponent(s, i, customID)
	case b.rouletteFeature.HandlesComponent(customID):
		b.rouletteFeature.HandleComponent(s, i, customID)
	}
}
