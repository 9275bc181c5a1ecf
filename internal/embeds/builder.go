// Package embeds provides Discord embed builders for DraftCoach.
package embeds

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/draftcoach/internal/advisor"
	"github.com/draftcoach/internal/hero"
	"github.com/draftcoach/internal/roster"
	"github.com/draftcoach/internal/services/mlbb"
)

// Colors for embeds
const (
	ColorSuccess = 0x00FF00 // Green
	ColorError   = 0xFF0000 // Red
	ColorInfo    = 0x3498DB // Blue
	ColorWarning = 0xFFFF00 // Yellow
	ColorDraft   = 0x9B59B6 // Purple
)

// Discord limits.
const (
	maxFieldValue  = 1024
	maxDescription = 4096
	rosterPreview  = 60
)

// RoleEmoji returns the emoji for a lane role.
func RoleEmoji(role string) string {
	roleEmojis := map[string]string{
		hero.RoleGold:   "🏹",
		hero.RoleEXP:    "🛡️",
		hero.RoleMid:    "⚡",
		hero.RoleJungle: "🌲",
		hero.RoleRoam:   "💚",
	}

	if emoji, ok := roleEmojis[role]; ok {
		return emoji
	}
	return "🎮"
}

// Success creates a success embed.
func Success(message, title string) *discordgo.MessageEmbed {
	if title == "" {
		title = "✅ Done"
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: message,
		Color:       ColorSuccess,
	}
}

// Error creates an error embed.
func Error(message, title string) *discordgo.MessageEmbed {
	if title == "" {
		title = "❌ Error"
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: message,
		Color:       ColorError,
	}
}

// Warning creates a warning embed.
func Warning(message, title string) *discordgo.MessageEmbed {
	if title == "" {
		title = "⚠️ Warning"
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: message,
		Color:       ColorWarning,
	}
}

// Info creates an info embed.
func Info(message, title string) *discordgo.MessageEmbed {
	if title == "" {
		title = "ℹ️ Info"
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: message,
		Color:       ColorInfo,
	}
}

// WithAdvisory adds the roster warning as a footer unless the roster came
// from the statistics API.
func WithAdvisory(embed *discordgo.MessageEmbed, r roster.Roster) *discordgo.MessageEmbed {
	if r.Advisory == roster.AdvisoryNone || r.Advisory == "" {
		return embed
	}
	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("⚠️ %s · source: %s", r.Message, r.Source),
	}
	return embed
}

// Draft creates the draft advice embed.
func Draft(req advisor.Request, a advisor.Advice, meta *mlbb.Meta) *discordgo.MessageEmbed {
	subject := req.Role
	if req.Hero != nil {
		subject = req.Hero.Name
	}

	enemies := make([]string, 0, len(req.Enemies))
	for _, e := range req.Enemies {
		enemies = append(enemies, e.Name)
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🧠 Draft plan: %s", subject),
		Description: fmt.Sprintf("%s **%s** vs %s", RoleEmoji(req.Role), req.Role, strings.Join(enemies, ", ")),
		Color:       ColorDraft,
		Fields:      make([]*discordgo.MessageEmbedField, 0, 12),
	}
	if meta != nil && meta.Image != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: meta.Image}
	}

	addField(embed, "📊 Enemy profile", ProfileSummary(a.Profile), false)
	if a.AllyProfile != nil {
		addField(embed, "🛡️ Your team", ProfileSummary(*a.AllyProfile), false)
	}
	addField(embed, "✨ Battle spell", a.Spell, true)
	addField(embed, "🛒 Core build", strings.Join(a.Items.Core, " → "), false)
	addField(embed, "🔧 Tech items", strings.Join(a.Items.Tech, ", "), false)
	addField(embed, "🛣️ Laning", bullets(a.Lane), false)
	addField(embed, "⚔️ Teamfight", bullets(a.Teamfight), false)
	addField(embed, "🗺️ Macro", bullets(a.Macro), false)
	addField(embed, "📌 Golden rules", bullets(a.GoldenRules), false)
	addField(embed, "🎯 Counter picks", strings.Join(a.Counters, ", "), true)
	addField(embed, "🤝 Synergy", strings.Join(a.Synergy, ", "), true)
	if meta != nil && meta.Live {
		addField(embed, "📈 Rates", rateLine(meta.Rates), false)
	}

	return embed
}

// ProfileSummary renders a profile as a few lines of text.
func ProfileSummary(p advisor.Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Damage: %d%% physical / %d%% magic (%s)\n", p.ADPct, p.APPct, p.MixLabel)
	fmt.Fprintf(&b, "Frontline %d · CC %d · Sustain %d · Waveclear %d · Mobility %d",
		p.FrontlineScore, p.CCScore, p.SustainScore, p.WaveclearScore, p.MobilityScore)

	tags := p.SortedTags()
	if len(tags) > 0 {
		parts := make([]string, 0, len(tags))
		for _, t := range tags {
			parts = append(parts, fmt.Sprintf("%s×%d", t.Tag, t.Count))
		}
		b.WriteString("\nTags: ")
		b.WriteString(strings.Join(parts, ", "))
	}

	var flags []string
	for _, f := range []struct {
		on   bool
		name string
	}{
		{p.HeavyDive, "dive"},
		{p.HeavyPick, "pick-off"},
		{p.HeavyPoke, "poke"},
		{p.HeavyCC, "crowd control"},
		{p.HeavySustain, "sustain"},
		{p.TankyFront, "tanky front"},
		{p.Wombo, "wombo"},
	} {
		if f.on {
			flags = append(flags, f.name)
		}
	}
	if len(flags) > 0 {
		b.WriteString("\nWatch out: ")
		b.WriteString(strings.Join(flags, ", "))
	}
	return b.String()
}

// HeroCard creates the hero meta embed.
func HeroCard(h hero.Hero, meta mlbb.Meta) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:  fmt.Sprintf("%s %s", RoleEmoji(meta.Lane), h.Name),
		Color:  ColorInfo,
		Fields: make([]*discordgo.MessageEmbedField, 0, 8),
	}
	if meta.Image != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: meta.Image}
	}

	addField(embed, "Class", meta.Class, true)
	addField(embed, "Lane", meta.Lane, true)
	addField(embed, "Speciality", meta.Speciality, true)
	addField(embed, "Pick", meta.Pick, true)
	addField(embed, "Ban", meta.Ban, true)
	addField(embed, "Win", meta.Win, true)
	addField(embed, "🔻 Countered by", listOrMissing(meta.Counters), false)
	addField(embed, "🤝 Pairs with", listOrMissing(meta.Compatible), false)

	if !meta.Live {
		embed.Description = "_Statistics unavailable, showing bundled data._"
	}
	return embed
}

// Roster creates the roster overview embed.
func Roster(r roster.Roster) *discordgo.MessageEmbed {
	preview := r.Names
	more := 0
	if len(preview) > rosterPreview {
		more = len(preview) - rosterPreview
		preview = preview[:rosterPreview]
	}

	desc := strings.Join(preview, ", ")
	if more > 0 {
		desc += fmt.Sprintf(" … and %d more", more)
	}

	color := ColorSuccess
	if r.Advisory != roster.AdvisoryNone {
		color = ColorWarning
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("📋 Roster (%d heroes)", len(r.Names)),
		Description: truncate(desc, maxDescription),
		Color:       color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Source", Value: r.Source, Inline: true},
			{Name: "Loaded", Value: fmt.Sprintf("<t:%d:R>", r.LoadedAt.Unix()), Inline: true},
		},
	}
	return WithAdvisory(embed, r)
}

func rateLine(r mlbb.Rates) string {
	return fmt.Sprintf("Pick %s · Ban %s · Win %s", r.Pick, r.Ban, r.Win)
}

func listOrMissing(names []string) string {
	if len(names) == 0 {
		return mlbb.Missing
	}
	return strings.Join(names, ", ")
}

func bullets(lines []string) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString("• ")
		b.WriteString(l)
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// addField skips empty values, which Discord rejects.
func addField(embed *discordgo.MessageEmbed, name, value string, inline bool) {
	if strings.TrimSpace(value) == "" {
		return
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   name,
		Value:  truncate(value, maxFieldValue),
		Inline: inline,
	})
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}
