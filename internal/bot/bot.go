// Package bot provides the Discord bot core for DraftCoach.
package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/draftcoach/internal/config"
	"github.com/draftcoach/internal/embeds"
	"github.com/draftcoach/internal/hero"
	"github.com/draftcoach/internal/logging"
	"github.com/draftcoach/internal/roster"
	"github.com/draftcoach/internal/services/mlbb"
)

const (
	maxTeamSize     = 5
	maxChoices      = 25
	rosterWarmup    = 45 * time.Second
	commandDeadline = 40 * time.Second
)

// MetaSource builds hero cards.
type MetaSource interface {
	HeroMeta(ctx context.Context, h hero.Hero, role string) mlbb.Meta
}

// Deps are the services the bot talks to.
type Deps struct {
	Meta    MetaSource
	Roster  *roster.Store
	Catalog *hero.Catalog
}

// Bot represents the Discord bot.
type Bot struct {
	session  *discordgo.Session
	cfg      *config.Config
	meta     MetaSource
	roster   *roster.Store
	catalog  *hero.Catalog
	logger   *zap.Logger
	commands []*discordgo.ApplicationCommand
}

// New creates a new Bot instance.
func New(cfg *config.Config, deps Deps, logger *zap.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	// Slash commands only
	session.Identify.Intents = discordgo.IntentsGuilds

	catalog := deps.Catalog
	if catalog == nil {
		catalog = hero.Default()
	}

	bot := &Bot{
		session: session,
		cfg:     cfg,
		meta:    deps.Meta,
		roster:  deps.Roster,
		catalog: catalog,
		logger:  logging.OrNop(logger),
	}

	// Register handlers
	session.AddHandler(bot.onReady)
	session.AddHandler(bot.onInteractionCreate)

	return bot, nil
}

// Start connects to Discord and starts the bot.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}

	b.logger.Info("Connected to Discord")

	// Register slash commands
	if err := b.registerCommands(); err != nil {
		b.logger.Error("Register commands failed", zap.Error(err))
	}

	// Load the roster before the first autocomplete request needs it
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), rosterWarmup)
		defer cancel()
		b.roster.Refresh(ctx)
	}()

	return nil
}

// Stop gracefully shuts down the bot.
func (b *Bot) Stop() error {
	return b.session.Close()
}

// onReady is called when the bot is ready.
func (b *Bot) onReady(s *discordgo.Session, event *discordgo.Ready) {
	b.logger.Info("Bot ready", zap.String("user", event.User.Username))
}

// Commands lists the slash commands the bot serves.
func Commands() []*discordgo.ApplicationCommand {
	roleChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(hero.Roles))
	for _, r := range hero.Roles {
		roleChoices = append(roleChoices, &discordgo.ApplicationCommandOptionChoice{Name: r, Value: r})
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        "ping",
			Description: "Check that the bot is alive",
		},
		{
			Name:        "draft",
			Description: "Get draft advice against an enemy lineup",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "role",
					Description: "Your lane",
					Required:    true,
					Choices:     roleChoices,
				},
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "enemies",
					Description:  "Enemy heroes, comma separated (max 5)",
					Required:     true,
					Autocomplete: true,
				},
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "hero",
					Description:  "Your hero",
					Autocomplete: true,
				},
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "allies",
					Description:  "Allied heroes, comma separated (max 5)",
					Autocomplete: true,
				},
			},
		},
		{
			Name:        "hero",
			Description: "Show class, rates, counters and partners of a hero",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "name",
					Description:  "Hero name",
					Required:     true,
					Autocomplete: true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "role",
					Description: "Lane to assume when the hero has no fixed one",
					Choices:     roleChoices,
				},
			},
		},
		{
			Name:        "roster",
			Description: "Show where the hero roster came from",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "refresh",
					Description: "Reload the roster first",
				},
			},
		},
	}
}

// registerCommands registers all slash commands.
func (b *Bot) registerCommands() error {
	commands := Commands()

	registeredCommands := make([]*discordgo.ApplicationCommand, 0, len(commands))
	for _, cmd := range commands {
		registered, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.cfg.GuildID, cmd)
		if err != nil {
			b.logger.Warn("Command registration failed", zap.String("command", cmd.Name), zap.Error(err))
			continue
		}
		registeredCommands = append(registeredCommands, registered)
	}

	b.commands = registeredCommands
	b.logger.Info("Registered commands",
		zap.Int("count", len(registeredCommands)),
		zap.String("guild", b.cfg.GuildID),
	)
	if len(registeredCommands) == 0 {
		return fmt.Errorf("no commands registered")
	}
	return nil
}

// onInteractionCreate handles slash command interactions.
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		switch i.ApplicationCommandData().Name {
		case "ping":
			b.handlePing(s, i)
		case "draft":
			b.handleDraft(s, i)
		case "hero":
			b.handleHero(s, i)
		case "roster":
			b.handleRoster(s, i)
		}
	case discordgo.InteractionApplicationCommandAutocomplete:
		b.handleAutocomplete(s, i)
	}
}

// handlePing handles the /ping command.
func (b *Bot) handlePing(s *discordgo.Session, i *discordgo.InteractionCreate) {
	latency := s.HeartbeatLatency().Milliseconds()
	embed := embeds.Success(
		fmt.Sprintf("🏓 Pong! Latency: **%dms**", latency),
		"✅ Bot is up",
	)

	b.respond(s, i, embed, false)
}

func (b *Bot) respond(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, ephemeral bool) {
	data := &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
	}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		b.logger.Warn("Interaction response failed", zap.Error(err))
	}
}

// deferResponse acknowledges a slow command so Discord shows a loading state.
func (b *Bot) deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		b.logger.Warn("Deferring interaction failed", zap.Error(err))
		return false
	}
	return true
}

func (b *Bot) edit(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	})
	if err != nil {
		b.logger.Warn("Interaction edit failed", zap.Error(err))
	}
}

// optionMap indexes the options of a command by name.
func optionMap(opts []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, o := range opts {
		m[o.Name] = o
	}
	return m
}

func stringOption(m map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if o, ok := m[name]; ok && o.Type == discordgo.ApplicationCommandOptionString {
		return o.StringValue()
	}
	return ""
}

func boolOption(m map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) bool {
	if o, ok := m[name]; ok && o.Type == discordgo.ApplicationCommandOptionBoolean {
		return o.BoolValue()
	}
	return false
}
