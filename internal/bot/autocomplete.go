package bot

import (
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/draftcoach/internal/roster"
)

// Discord rejects choice values longer than this.
const maxChoiceLen = 100

// handleAutocomplete suggests hero names for the focused option. It never
// loads the roster, since Discord gives autocomplete only three seconds.
func (b *Bot) handleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var focused *discordgo.ApplicationCommandInteractionDataOption
	for _, o := range i.ApplicationCommandData().Options {
		if o.Focused {
			focused = o
			break
		}
	}
	if focused == nil {
		return
	}

	r, ok := b.roster.Peek()
	if !ok {
		r = roster.Roster{Names: b.catalog.LocalRoster()}
	}

	var values []string
	switch focused.Name {
	case "enemies", "allies":
		values = completeList(focused.StringValue(), r, maxChoices)
	default:
		values = r.Suggest(focused.StringValue(), maxChoices)
	}

	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(values))
	for _, v := range values {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: v, Value: v})
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
	if err != nil {
		b.logger.Debug("Autocomplete response failed", zap.Error(err))
	}
}

// completeList completes the last entry of a comma separated hero list. Each
// suggestion repeats the entries already typed so that picking it keeps them.
func completeList(value string, r roster.Roster, limit int) []string {
	parts := strings.Split(value, ",")
	last := parts[len(parts)-1]
	done := splitNames(strings.Join(parts[:len(parts)-1], ","))

	prefix := strings.Join(done, ", ")
	if len(done) >= maxTeamSize {
		return []string{prefix}
	}
	if prefix != "" {
		prefix += ", "
	}

	taken := make(map[string]struct{}, len(done))
	for _, d := range done {
		taken[strings.ToLower(d)] = struct{}{}
	}

	out := make([]string, 0, limit)
	for _, n := range r.Suggest(last, len(r.Names)) {
		if _, dup := taken[strings.ToLower(n)]; dup {
			continue
		}
		v := prefix + n
		if len(v) > maxChoiceLen {
			continue
		}
		out = append(out, v)
		if len(out) == limit {
			break
		}
	}
	return out
}
