package bot

import (
	"reflect"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/draftcoach/internal/apperrors"
	"github.com/draftcoach/internal/hero"
	"github.com/draftcoach/internal/roster"
)

func strOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}

func opts(o ...*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	return optionMap(o)
}

func TestParseDraft(t *testing.T) {
	in, err := parseDraft(hero.Default(), opts(
		strOpt("role", "gold"),
		strOpt("enemies", " tigreal, Atlas ,,TIGREAL, yu zhong"),
		strOpt("hero", "karrie"),
	))
	if err != nil {
		t.Fatalf("parseDraft() error = %v", err)
	}
	want := draftInput{
		Role:    hero.RoleGold,
		Hero:    "Karrie",
		Enemies: []string{"Tigreal", "Atlas", "Yu Zhong"},
	}
	if !reflect.DeepEqual(in, want) {
		t.Errorf("parseDraft() = %+v, want %+v", in, want)
	}
}

func TestParseDraftValidation(t *testing.T) {
	tests := []struct {
		name string
		opts []*discordgo.ApplicationCommandInteractionDataOption
		want string
	}{
		{
			name: "bad role",
			opts: []*discordgo.ApplicationCommandInteractionDataOption{strOpt("role", "carry"), strOpt("enemies", "Layla")},
			want: "Pick a lane",
		},
		{
			name: "no enemies",
			opts: []*discordgo.ApplicationCommandInteractionDataOption{strOpt("role", "Mid"), strOpt("enemies", " , ")},
			want: "at least one enemy",
		},
		{
			name: "six enemies",
			opts: []*discordgo.ApplicationCommandInteractionDataOption{
				strOpt("role", "Mid"),
				strOpt("enemies", "Layla, Miya, Tigreal, Atlas, Franco, Akai"),
			},
			want: "you listed 6 enemies",
		},
		{
			name: "six allies",
			opts: []*discordgo.ApplicationCommandInteractionDataOption{
				strOpt("role", "Mid"),
				strOpt("enemies", "Layla"),
				strOpt("allies", "Miya, Tigreal, Atlas, Franco, Akai, Estes"),
			},
			want: "you listed 6 allies",
		},
		{
			name: "hero on both teams",
			opts: []*discordgo.ApplicationCommandInteractionDataOption{
				strOpt("role", "Gold"),
				strOpt("enemies", "Layla, Miya"),
				strOpt("hero", "miya"),
			},
			want: "both teams",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseDraft(hero.Default(), optionMap(tt.opts))
			if !apperrors.IsValidation(err) {
				t.Fatalf("error = %v, want a validation error", err)
			}
			if msg := apperrors.UserMessage(err); !strings.Contains(msg, tt.want) {
				t.Errorf("message = %q, want it to contain %q", msg, tt.want)
			}
		})
	}
}

func TestSplitNames(t *testing.T) {
	if got := splitNames(" a , ,b,"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("splitNames() = %v", got)
	}
	if got := splitNames(""); got != nil {
		t.Errorf("splitNames(\"\") = %v, want nil", got)
	}
}

func TestCompleteList(t *testing.T) {
	r := roster.Roster{Names: []string{"Lancelot", "Layla", "Lylia", "Miya", "Tigreal"}}

	tests := []struct {
		value string
		want  []string
	}{
		{"la", []string{"Lancelot", "Layla"}},
		{"Miya, la", []string{"Miya, Lancelot", "Miya, Layla"}},
		{"Layla, l", []string{"Layla, Lancelot", "Layla, Lylia", "Layla, Tigreal"}},
		{"Miya,", []string{"Miya, Lancelot", "Miya, Layla", "Miya, Lylia", "Miya, Tigreal"}},
		{"a, b, c, d, e, f", []string{"a, b, c, d, e"}},
	}
	for _, tt := range tests {
		if got := completeList(tt.value, r, maxChoices); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("completeList(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}

	if got := completeList("", r, 2); len(got) != 2 {
		t.Errorf("limit ignored: %v", got)
	}
}

func TestHeroForCarriesRosterID(t *testing.T) {
	b := &Bot{catalog: hero.Default()}
	r := roster.Roster{Names: []string{"Tigreal"}, IDs: map[string]int{"Tigreal": 6}}

	h := b.heroFor(r, "tigreal")
	if h.Name != "Tigreal" || h.ID != 6 || h.Role != hero.RoleRoam {
		t.Errorf("heroFor() = %+v", h)
	}
	if h := b.heroFor(roster.Roster{}, "Tigreal"); h.ID != 0 {
		t.Errorf("heroFor() without ids = %+v", h)
	}
}

func TestCommands(t *testing.T) {
	names := map[string]*discordgo.ApplicationCommand{}
	for _, c := range Commands() {
		names[c.Name] = c
	}
	for _, want := range []string{"ping", "draft", "hero", "roster"} {
		if _, ok := names[want]; !ok {
			t.Errorf("command %q missing", want)
		}
	}

	draft := names["draft"]
	if draft == nil || len(draft.Options) == 0 {
		t.Fatal("draft has no options")
	}
	role := draft.Options[0]
	if role.Name != "role" || !role.Required || len(role.Choices) != len(hero.Roles) {
		t.Errorf("role option = %+v", role)
	}
	for _, o := range draft.Options[1:] {
		if !o.Autocomplete {
			t.Errorf("option %q should autocomplete", o.Name)
		}
	}
}
