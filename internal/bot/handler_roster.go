package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/draftcoach/internal/embeds"
	"github.com/draftcoach/internal/roster"
)

// handleRoster handles the /roster command.
func (b *Bot) handleRoster(s *discordgo.Session, i *discordgo.InteractionCreate) {
	refresh := boolOption(optionMap(i.ApplicationCommandData().Options), "refresh")

	if !b.deferResponse(s, i) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandDeadline)
	defer cancel()

	var r roster.Roster
	if refresh {
		r = b.roster.Refresh(ctx)
		b.logger.Info("Roster refreshed on request", zap.String("user", interactionUser(i)))
	} else {
		r = b.roster.Current(ctx)
	}

	b.edit(s, i, embeds.Roster(r))
}

func interactionUser(i *discordgo.InteractionCreate) string {
	switch {
	case i.Member != nil && i.Member.User != nil:
		return i.Member.User.Username
	case i.User != nil:
		return i.User.Username
	}
	return ""
}
