package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/draftcoach/internal/apperrors"
	"github.com/draftcoach/internal/embeds"
	"github.com/draftcoach/internal/hero"
)

// handleHero handles the /hero command.
func (b *Bot) handleHero(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i.ApplicationCommandData().Options)
	name := b.catalog.Normalize(stringOption(opts, "name"))
	if name == "" {
		b.respond(s, i, embeds.Error(apperrors.UserMessage(
			apperrors.NewValidation("Give a hero name.", "name", "")), ""), true)
		return
	}
	role := ""
	if raw := stringOption(opts, "role"); raw != "" {
		role, _ = hero.ParseRole(raw)
	}

	if !b.deferResponse(s, i) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandDeadline)
	defer cancel()

	r := b.roster.Current(ctx)
	h := b.heroFor(r, name)
	meta := b.meta.HeroMeta(ctx, h, role)

	b.logger.Info("Hero card",
		zap.String("hero", h.Name),
		zap.Int("id", h.ID),
		zap.Bool("live", meta.Live),
	)

	embed := embeds.HeroCard(h, meta)
	if len(r.Names) > 0 && !r.Contains(h.Name) {
		embed.Description = "_Not on the current roster, check the spelling._"
	}
	b.edit(s, i, embeds.WithAdvisory(embed, r))
}
