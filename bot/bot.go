package bot

import (
	"fmt"
	"strconv"
	"strings"

	"scoreboard/bot/features/admins"
	"scoreboard/bot/features/scoreboard"
	"scoreboard/domain/interfaces"
	"scoreboard/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token  string
	Policy services.Policy
}

// Bot manages the Discord session and all feature modules
type Bot struct {
	config     Config
	session    *discordgo.Session
	uowFactory interfaces.UnitOfWorkFactory
	resolver   *UserResolver

	// Feature modules
	scoreboard *scoreboard.Feature
	admins     *admins.Feature
}

// New creates a new bot instance with all features
func New(config Config, uowFactory interfaces.UnitOfWorkFactory) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	resolver := NewUserResolver(dg)

	bot := &Bot{
		config:     config,
		session:    dg,
		uowFactory: uowFactory,
		resolver:   resolver,
	}

	bot.scoreboard = scoreboard.NewFeature(dg, uowFactory, config.Policy, resolver)
	bot.admins = admins.NewFeature(dg, uowFactory, config.Policy)

	dg.AddHandler(bot.handleCommands)
	dg.AddHandler(bot.handleInteractions)
	dg.AddHandler(bot.handleGuildDelete)

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	log.Info("Bot is up and commands are registered")
	return bot, nil
}

// Close gracefully shuts down the bot
func (b *Bot) Close() error {
	return b.session.Close()
}

// GetSession returns the Discord session
func (b *Bot) GetSession() *discordgo.Session {
	return b.session
}

// handleCommands routes slash commands to appropriate handlers
func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "scoreboard":
		b.scoreboard.HandleCommand(s, i)
	case "scoreadmins":
		b.admins.HandleCommand(s, i)
	}
}

// handleInteractions routes component interactions to appropriate features
func (b *Bot) handleInteractions(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	customID := i.MessageComponentData().CustomID
	if strings.HasPrefix(customID, scoreboard.ClearComponentPrefix) {
		b.scoreboard.HandleInteraction(s, i)
	}
}

// handleGuildDelete drops cached member names when the bot leaves a guild
func (b *Bot) handleGuildDelete(s *discordgo.Session, g *discordgo.GuildDelete) {
	guildID, err := strconv.ParseInt(g.ID, 10, 64)
	if err != nil {
		log.Errorf("Failed to parse guild ID %s: %v", g.ID, err)
		return
	}
	b.resolver.InvalidateGuild(guildID)
}
