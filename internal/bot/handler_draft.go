package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/draftcoach/internal/advisor"
	"github.com/draftcoach/internal/apperrors"
	"github.com/draftcoach/internal/embeds"
	"github.com/draftcoach/internal/hero"
	"github.com/draftcoach/internal/roster"
	"github.com/draftcoach/internal/services/mlbb"
)

// draftInput is a validated /draft selection.
type draftInput struct {
	Role    string
	Hero    string
	Enemies []string
	Allies  []string
}

func parseDraft(c *hero.Catalog, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) (draftInput, error) {
	rawRole := stringOption(opts, "role")
	role, ok := hero.ParseRole(rawRole)
	if !ok {
		return draftInput{}, apperrors.NewValidation("Pick a lane: Gold, EXP, Mid, Jungle or Roam.", "role", rawRole)
	}

	in := draftInput{
		Role:    role,
		Hero:    c.Normalize(stringOption(opts, "hero")),
		Enemies: normalizeList(c, stringOption(opts, "enemies")),
		Allies:  normalizeList(c, stringOption(opts, "allies")),
	}

	if len(in.Enemies) == 0 {
		return draftInput{}, apperrors.NewValidation("List at least one enemy hero.", "enemies", "")
	}
	if len(in.Enemies) > maxTeamSize {
		return draftInput{}, apperrors.NewValidation(
			fmt.Sprintf("A team has at most %d heroes, you listed %d enemies.", maxTeamSize, len(in.Enemies)),
			"enemies", in.Enemies)
	}
	if len(in.Allies) > maxTeamSize {
		return draftInput{}, apperrors.NewValidation(
			fmt.Sprintf("A team has at most %d heroes, you listed %d allies.", maxTeamSize, len(in.Allies)),
			"allies", in.Allies)
	}
	for _, e := range in.Enemies {
		if e == in.Hero {
			return draftInput{}, apperrors.NewValidation(
				fmt.Sprintf("**%s** cannot be on both teams.", e), "hero", in.Hero)
		}
	}
	return in, nil
}

// splitNames splits a comma separated option, dropping blanks.
func splitNames(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// normalizeList keeps the order the user typed, without duplicates.
func normalizeList(c *hero.Catalog, raw string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, n := range splitNames(raw) {
		nm := c.Normalize(n)
		if _, dup := seen[nm]; dup || nm == "" {
			continue
		}
		seen[nm] = struct{}{}
		out = append(out, nm)
	}
	return out
}

// heroFor builds a hero record carrying the roster id when there is one.
func (b *Bot) heroFor(r roster.Roster, name string) hero.Hero {
	h, _ := b.catalog.FromName(name)
	if id, ok := r.ID(h.Name); ok {
		h.ID = id
	}
	return h
}

func (b *Bot) heroesFor(r roster.Roster, names []string) []hero.Hero {
	out := make([]hero.Hero, 0, len(names))
	for _, n := range names {
		out = append(out, b.heroFor(r, n))
	}
	return out
}

// handleDraft handles the /draft command.
func (b *Bot) handleDraft(s *discordgo.Session, i *discordgo.InteractionCreate) {
	in, err := parseDraft(b.catalog, optionMap(i.ApplicationCommandData().Options))
	if err != nil {
		b.respond(s, i, embeds.Error(apperrors.UserMessage(err), ""), true)
		return
	}

	if !b.deferResponse(s, i) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandDeadline)
	defer cancel()

	r := b.roster.Current(ctx)
	req := advisor.Request{
		Role:    in.Role,
		Enemies: b.heroesFor(r, in.Enemies),
		Allies:  b.heroesFor(r, in.Allies),
	}

	var meta *mlbb.Meta
	if in.Hero != "" {
		h := b.heroFor(r, in.Hero)
		req.Hero = &h
		m := b.meta.HeroMeta(ctx, h, in.Role)
		meta = &m
	}

	advice := advisor.Advise(req)
	b.logger.Info("Draft advice",
		zap.String("role", in.Role),
		zap.String("hero", in.Hero),
		zap.Strings("enemies", in.Enemies),
		zap.String("roster", r.Source),
	)

	b.edit(s, i, embeds.WithAdvisory(embeds.Draft(req, advice, meta), r))
}
