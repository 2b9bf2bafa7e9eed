package bot

import (
	"context"
	"fmt"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"ecubot/bot/features/admin"
	"ecubot/bot/features/balance"
	"ecubot/bot/features/blackjack"
	"ecubot/bot/features/daily"
	"ecubot/bot/features/leaderboard"
	"ecubot/bot/features/roulette"
	"ecubot/bot/features/slots"
	"ecubot/bot/features/voice"
	"ecubot/bot/features/vocroles"
	"ecubot/events"
	"ecubot/service"

	"github.com/bwmarrin/discordgo"
)

// Abandoned game sessions older than this are reaped without settling
const sessionMaxAge = 30 * time.Minute

// Config holds bot configuration
type Config struct {
	Token         string
	GuildID       string
	FlushInterval time.Duration
}

// Services bundles everything the bot needs from the service layer
type Services struct {
	Ledger      service.LedgerService
	Daily       service.DailyService
	Voice       service.VoiceService
	RoleRules   service.RoleRuleService
	Blackjack   service.BlackjackService
	Roulette    service.RouletteService
	Slots       service.SlotsService
	Leaderboard service.LeaderboardService
}

type Bot struct {
	config  Config
	session *discordgo.Session

	voiceService     service.VoiceService
	roleRuleService  service.RoleRuleService
	blackjackService service.BlackjackService
	rouletteService  service.RouletteService

	balanceFeature     *balance.Feature
	dailyFeature       *daily.Feature
	blackjackFeature   *blackjack.Feature
	rouletteFeature    *roulette.Feature
	slotsFeature       *slots.Feature
	leaderboardFeature *leaderboard.Feature
	voiceFeature       *voice.Feature
	vocRolesFeature    *vocroles.Feature
	adminFeature       *admin.Feature

	eventBus *events.Bus
	stop     chan struct{}
}

func New(config Config, services Services, adminFeature *admin.Feature, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsAll

	bot := &Bot{
		config:  config,
		session: dg,

		voiceService:     services.Voice,
		roleRuleService:  services.RoleRules,
		blackjackService: services.Blackjack,
		rouletteService:  services.Roulette,

		balanceFeature:     balance.New(services.Ledger),
		dailyFeature:       daily.New(services.Daily),
		blackjackFeature:   blackjack.New(services.Blackjack),
		rouletteFeature:    roulette.New(services.Roulette),
		slotsFeature:       slots.New(services.Slots),
		leaderboardFeature: leaderboard.New(services.Leaderboard),
		voiceFeature:       voice.New(services.Voice),
		vocRolesFeature:    vocroles.New(services.RoleRules),
		adminFeature:       adminFeature,

		eventBus: eventBus,
		stop:     make(chan struct{}),
	}

	// Register slash command and component handlers
	dg.AddHandler(bot.handleCommands)
	dg.AddHandler(bot.handleComponents)

	// Voice presence tracking
	dg.AddHandler(bot.handleVoiceStateUpdate)
	dg.AddHandler(bot.handleGuildCreate)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	// Periodic voice flush with role enforcement, and game session reaping
	go bot.startVoiceWorker()
	go bot.startSessionReaper()

	// Account creations only surface through the bus; log them for the audit trail
	eventBus.Subscribe(events.EventTypeUserCreated, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.UserCreatedEvent); ok {
			log.WithFields(log.Fields{
				"userID":  e.UserID,
				"balance": e.InitialBalance,
			}).Info("New account opened")
		}
	})

	return bot, nil
}

func (b *Bot) Close() error {
	close(b.stop)
	return b.session.Close()
}

// handleVoiceStateUpdate feeds connects and disconnects into the voice
// tracker. Channel-to-channel moves keep the window open.
func (b *Bot) handleVoiceStateUpdate(s *discordgo.Session, v *discordgo.VoiceStateUpdate) {
	if v.Member != nil && v.Member.User != nil && v.Member.User.Bot {
		return
	}

	userID, err := strconv.ParseInt(v.UserID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing voice state user ID %q: %v", v.UserID, err)
		return
	}

	ctx := context.Background()
	now := time.Now()

	switch {
	case v.ChannelID == "":
		if err := b.voiceService.HandleLeave(ctx, userID, now); err != nil {
			log.Errorf("Error handling voice leave for user %d: %v", userID, err)
		}
	case v.BeforeUpdate == nil || v.BeforeUpdate.ChannelID == "":
		if err := b.voiceService.HandleJoin(ctx, userID, now); err != nil {
			log.Errorf("Error handling voice join for user %d: %v", userID, err)
		}
	}
}

// handleGuildCreate opens windows for users already connected when the bot
// comes up, so their time counts from startup.
func (b *Bot) handleGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	var userIDs []int64
	for _, vs := range g.VoiceStates {
		userID, err := strconv.ParseInt(vs.UserID, 10, 64)
		if err != nil {
			log.Errorf("Error parsing voice state user ID %q: %v", vs.UserID, err)
			continue
		}
		userIDs = append(userIDs, userID)
	}
	if len(userIDs) == 0 {
		return
	}

	if err := b.voiceService.SyncConnected(context.Background(), userIDs, time.Now()); err != nil {
		log.Errorf("Error syncing connected voice users: %v", err)
		return
	}
	log.WithFields(log.Fields{"guildID": g.ID, "connected": len(userIDs)}).Info("Synced connected voice users")
}

// startVoiceWorker periodically folds open voice windows into totals and
// enforces the configured voice role rules.
func (b *Bot) startVoiceWorker() {
	ticker := time.NewTicker(b.config.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stop:
			return
		case <-ticker.C:
			ctx := context.Background()
			now := time.Now()
			if err := b.voiceService.Flush(ctx, now); err != nil {
				log.Errorf("Error flushing voice sessions: %v", err)
				continue
			}
			if err := b.enforceRoles(ctx, now); err != nil {
				log.Errorf("Error enforcing voice roles: %v", err)
			}
		}
	}
}

// enforceRoles reconciles every guild member's rule-governed roles with
// their effective voice total. Per-member failures are logged and skipped.
func (b *Bot) enforceRoles(ctx context.Context, now time.Time) error {
	rules, err := b.roleRuleService.ListRules(ctx)
	if err != nil {
		return fmt.Errorf("failed to list role rules: %w", err)
	}
	if len(rules) == 0 {
		return nil
	}

	totals, err := b.voiceService.AllEffectiveTotals(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to load voice totals: %w", err)
	}

	members, err := allGuildMembers(func(after string, limit int) ([]*discordgo.Member, error) {
		return b.session.GuildMembers(b.config.GuildID, after, limit)
	})
	if err != nil {
		return fmt.Errorf("failed to get guild members: %w", err)
	}

	for _, member := range members {
		if member.User == nil || member.User.Bot {
			continue
		}
		userID, err := strconv.ParseInt(member.User.ID, 10, 64)
		if err != nil {
			log.Errorf("Error parsing member ID %q: %v", member.User.ID, err)
			continue
		}

		held := make([]int64, 0, len(member.Roles))
		for _, roleStr := range member.Roles {
			roleID, err := strconv.ParseInt(roleStr, 10, 64)
			if err != nil {
				continue
			}
			held = append(held, roleID)
		}

		delta := service.EvaluateRules(totals[userID], held, rules)
		if delta.Empty() {
			continue
		}

		for _, roleID := range delta.ToAdd {
			if err := b.session.GuildMemberRoleAdd(b.config.GuildID, member.User.ID, strconv.FormatInt(roleID, 10)); err != nil {
				log.Errorf("Failed to add role %d to user %d: %v", roleID, userID, err)
			}
		}
		for _, roleID := range delta.ToRemove {
			if err := b.session.GuildMemberRoleRemove(b.config.GuildID, member.User.ID, strconv.FormatInt(roleID, 10)); err != nil {
				log.Errorf("Failed to remove role %d from user %d: %v", roleID, userID, err)
			}
		}
	}

	return nil
}

// The API returns at most this many members per page
const guildMembersPageSize = 1000

// allGuildMembers pages through the full member list using the last member
// ID of each page as the cursor
func allGuildMembers(fetch func(after string, limit int) ([]*discordgo.Member, error)) ([]*discordgo.Member, error) {
	var members []*discordgo.Member
	after := ""
	for {
		page, err := fetch(after, guildMembersPageSize)
		if err != nil {
			return nil, err
		}
		members = append(members, page...)
		if len(page) < guildMembersPageSize {
			return members, nil
		}
		after = page[len(page)-1].User.ID
	}
}

// startSessionReaper periodically expires abandoned game sessions
func (b *Bot) startSessionReaper() {
	ticker := time.NewTicker(sessionMaxAge)
	defer ticker.Stop()

	for {
		select {
		case <-b.stop:
			return
		case <-ticker.C:
			b.blackjackService.ExpireSessions(sessionMaxAge)
			b.rouletteService.ExpireSessions(sessionMaxAge)
		}
	}
}
