package cmd

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"ecubot/bot"
	"ecubot/bot/features/admin"
	"ecubot/config"
	"ecubot/database"
	"ecubot/events"
	"ecubot/repository"
	"ecubot/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting ecubot...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established successfully")

	// Initialize event bus
	eventBus := events.NewBus()

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Initialize services
	log.Println("Initializing services...")
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	ledgerService := service.NewLedgerService(uowFactory, cfg)
	dailyService := service.NewDailyService(uowFactory, cfg)
	voiceService := service.NewVoiceService(uowFactory)
	roleRuleService := service.NewRoleRuleService(uowFactory)
	blackjackService := service.NewBlackjackService(uowFactory, cfg, rng)
	rouletteService := service.NewRouletteService(uowFactory, cfg, rng)
	slotsService := service.NewSlotsService(uowFactory, cfg, rng)
	leaderboardService := service.NewLeaderboardService(uowFactory)
	log.Println("Services initialized successfully")

	// Initialize Discord bot
	log.Println("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:         cfg.DiscordToken,
		GuildID:       cfg.DiscordGuildID,
		FlushInterval: time.Duration(cfg.VoiceFlushIntervalSeconds) * time.Second,
	}
	services := bot.Services{
		Ledger:      ledgerService,
		Daily:       dailyService,
		Voice:       voiceService,
		RoleRules:   roleRuleService,
		Blackjack:   blackjackService,
		Roulette:    rouletteService,
		Slots:       slotsService,
		Leaderboard: leaderboardService,
	}
	adminFeature := admin.New(ledgerService, rng)
	discordBot, err := bot.New(botConfig, services, adminFeature, eventBus)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Println("Discord bot initialized successfully")

	// Wait for context cancellation
	log.Printf("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Println("Shutting down bot...")

	// Close Discord bot connection
	if err := discordBot.Close(); err != nil {
		log.Printf("Error closing Discord bot: %v", err)
	}

	// Give cleanup operations time to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Close database connection
	log.Println("Closing database connection...")
	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Println("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Println("Shutdown completed")
	}

	return nil
}
