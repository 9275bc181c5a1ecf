package advisor

import (
	"github.com/draftcoach/internal/hero"
)

// Battle spells.
const (
	SpellFlicker     = "Flicker"
	SpellPurify      = "Purify"
	SpellAegis       = "Aegis"
	SpellVengeance   = "Vengeance"
	SpellRetribution = "Retribution"
)

var defaultSpell = map[string]string{
	hero.RoleGold:   SpellFlicker,
	hero.RoleEXP:    SpellVengeance,
	hero.RoleMid:    SpellFlicker,
	hero.RoleJungle: SpellRetribution,
	hero.RoleRoam:   SpellFlicker,
}

// Request is one draft situation. Hero may be nil when the player has not
// locked a hero yet.
type Request struct {
	Role    string
	Hero    *hero.Hero
	Allies  []hero.Hero
	Enemies []hero.Hero
}

// Items is a core build plus tech options.
type Items struct {
	Core []string
	Tech []string
}

// Advice is everything the coach says about a Request.
type Advice struct {
	Profile     Profile
	AllyProfile *Profile
	Spell       string
	Items       Items
	Lane        []string
	Teamfight   []string
	Macro       []string
	GoldenRules []string
	Counters    []string
	Synergy     []string
}

// Advise computes the full advice for req.
func Advise(req Request) Advice {
	prof := NewProfile(req.Enemies)
	a := Advice{
		Profile:     prof,
		Spell:       SuggestSpell(req.Hero, req.Role, prof),
		Items:       SuggestItems(req.Hero, req.Role, prof),
		Lane:        LanePlan(req.Hero, req.Role, req.Enemies),
		Teamfight:   TeamfightPlan(prof),
		Macro:       MacroPlan(req.Role, req.Hero, prof),
		GoldenRules: GoldenRules(req.Role, prof),
		Counters:    CounterPicks(req.Enemies, prof),
		Synergy:     Synergy(req.Hero, req.Role),
	}
	if len(req.Allies) > 0 {
		allies := NewProfile(req.Allies)
		a.AllyProfile = &allies
	}
	return a
}

func heroName(h *hero.Hero) string {
	if h == nil {
		return ""
	}
	return h.Name
}

func isMarksman(h *hero.Hero, role string) bool {
	return role == hero.RoleGold || (h != nil && h.Role == hero.RoleGold)
}

// SuggestSpell picks a battle spell.
func SuggestSpell(h *hero.Hero, role string, p Profile) string {
	if role == hero.RoleJungle {
		return SpellRetribution
	}
	if p.HeavyPick || p.HeavyCC {
		if isMarksman(h, role) {
			return SpellPurify
		}
		return SpellFlicker
	}
	if p.HeavyDive {
		if name := heroName(h); name == "Melissa" || name == "Brody" {
			return SpellAegis
		}
		return SpellFlicker
	}
	if s, ok := defaultSpell[role]; ok {
		return s
	}
	return SpellFlicker
}

// SuggestItems gives marksmen a core build and everyone else tech options.
func SuggestItems(h *hero.Hero, role string, p Profile) Items {
	var items Items
	if !isMarksman(h, role) {
		if p.HeavySustain {
			items.Tech = append(items.Tech, "Anti-heal: Necklace of Durance / Sea Halberd / Dominance Ice")
		}
		if p.TankyFront {
			items.Tech = append(items.Tech, "Anti-tank: Malefic Roar / Dyrroth / Karrie / Genius Wand")
		}
		if p.HeavyPoke {
			items.Tech = append(items.Tech, "Resist: Tough Boots / Athena's Shield / Oracle")
		}
		if p.HeavyPick || p.HeavyCC {
			items.Tech = append(items.Tech, "Defensive: Immortality / Winter Truncheon / Athena's Shield")
		}
		return items
	}

	switch heroName(h) {
	case "Karrie":
		items.Core = append(items.Core, "Demon Hunter Sword → Golden Staff", "Swift/Tough Boots")
	case "Miya":
		items.Core = append(items.Core, "Swift Boots", "Demon Hunter Sword", "Corrosion Scythe")
	case "Bruno", "Clint":
		items.Core = append(items.Core, "Swift Boots", "Berserker's Fury", "Endless Battle/Blade of Despair")
	case "Brody":
		items.Core = append(items.Core, "Tough/Swift Boots", "Hunter Strike", "Blade of Despair")
	case "Melissa":
		items.Core = append(items.Core, "Swift Boots", "Corrosion Scythe", "Golden Staff")
	case "Beatrix":
		items.Core = append(items.Core, "Swift Boots", "Berserker's Fury", "Malefic Roar (situational)")
	default:
		items.Core = append(items.Core, "Boots", "Attack Speed core item", "Crit/DPS item")
	}
	if p.TankyFront {
		items.Core = appendUnique(items.Core, "Malefic Roar")
	}
	if p.HeavySustain {
		items.Core = append(items.Core, "Sea Halberd (anti-heal)")
	}
	if p.HeavyPick {
		items.Core = append(items.Core, "Wind of Nature (vs physical)", "Immortality (late)")
	}
	if p.HeavyPoke {
		items.Core = append(items.Core, "Athena's Shield (situational)")
	}
	return items
}

// LanePlan gives early-game tips against the enemy picks.
func LanePlan(h *hero.Hero, role string, enemies []hero.Hero) []string {
	has := enemyNames(enemies)
	var tips []string
	switch role {
	case hero.RoleGold:
		if has("Bruno", "Clint") {
			tips = append(tips, "Levels 1–3: play back and trade only after their skills are on cooldown.")
		}
		if has("Franco") {
			tips = append(tips, "Stay behind your minions. Keep Purify/Flicker for the hook.")
		}
		if has("Estes", "Floryn") {
			tips = append(tips, "Get anti-heal early; trade after their heal or ultimate is used.")
		}
		tips = append(tips, "Freeze the wave near your first turret to deny ganks and give your Roam a window.")
	case hero.RoleMid:
		if has("Chang'e", "Pharsa", "Yve") {
			tips = append(tips, "Avoid long corridors; rotate through bushes and short angles.")
		}
		tips = append(tips, "Rotate on wave priority toward Turtle or a side lane.")
	case hero.RoleEXP:
		if has("Yu Zhong", "Paquito", "Freya") {
			tips = append(tips, "Early game is theirs: soak EXP and only trade after a skill reset.")
		}
	case hero.RoleJungle:
		tips = append(tips, "First rotation goes to the side with priority; without mid priority, do not invade.")
	case hero.RoleRoam:
		tips = append(tips, "Levels 1–3: ward the pixel bushes and lead rotations toward objectives.")
	}
	return tips
}

// TeamfightPlan always returns at least one tip.
func TeamfightPlan(p Profile) []string {
	var tips []string
	if p.HeavyPick {
		tips = append(tips, "Secure vision and bushes before starting; bait out hooks and ultimates.")
	}
	if p.HeavyDive {
		tips = append(tips, "Kite back: backline one screen behind, Roam peels actively.")
	}
	if p.Wombo {
		tips = append(tips, "Avoid chokepoints; pull the fight to a side lane and spread out.")
	}
	if p.HeavyPoke {
		tips = append(tips, "Engage after the enemy burns its poke, or from a flank.")
	}
	if len(tips) == 0 {
		return []string{"Set up vision first; look for a 5v4 before objectives."}
	}
	return tips
}

// MacroPlan gives mid and late game direction.
func MacroPlan(role string, _ *hero.Hero, p Profile) []string {
	tips := []string{"Play around Turtle and Lord, and trade turrets smartly."}
	if role == hero.RoleGold {
		tips = append(tips, "Two-item spike: take the first turret with a four-man push around 6–8 min, then play the sides.")
	}
	if p.HeavyPick {
		tips = append(tips, "Avoid 5v5 in mid; pressure the side lanes and sync with your Roam.")
	}
	if p.TankyFront {
		tips = append(tips, "In long fights, melt the frontline before reaching for the backline.")
	}
	if p.HeavySustain {
		tips = append(tips, "Without anti-heal, contest vision and time instead of the fight.")
	}
	return tips
}

var baseRules = []string{
	"Anti-heal is mandatory against healers (Estes/Floryn/Faramis); two anti-heal carriers is ideal.",
	"Balance your team's AP/AD; too much physical damage lets them stack armor.",
	"No vision, no bush checks. Rotate as a group.",
	"Timers: Turtle ~2:00, Lord ~8:00. Prepare the wave 30–40s before.",
}

var roleRules = map[string][]string{
	hero.RoleGold:   {"Minimize deaths; a dead DPS deals zero damage.", "Force fights on your two-item spike."},
	hero.RoleMid:    {"Wave control is rotation.", "Hold or push the wave to open objective windows."},
	hero.RoleJungle: {"Objectives over kills.", "Retribution discipline: count your skill damage."},
	hero.RoleEXP:    {"Call your flank or teleport.", "Side pressure opens space for objectives."},
	hero.RoleRoam:   {"You provide peel, engage and vision.", "Ping enemy ultimate cooldowns for the team."},
}

// GoldenRules returns general rules, then role rules, then composition rules.
func GoldenRules(role string, p Profile) []string {
	rules := append([]string(nil), baseRules...)
	rules = append(rules, roleRules[role]...)
	if p.HeavyPick {
		rules = append(rules, "Purify/Aegis on the carries; control the bushes.")
	}
	if p.HeavyDive {
		rules = append(rules, "Peel the first diver; kite back together.")
	}
	if p.HeavyPoke {
		rules = append(rules, "Short, fast fights or flanks; Athena's Shield/Oracle.")
	}
	if p.TankyFront {
		rules = append(rules, "Focus the frontline and buy penetration early.")
	}
	return rules
}

// CounterPicks lists situational answers to specific enemy heroes.
func CounterPicks(enemies []hero.Hero, p Profile) []string {
	has := enemyNames(enemies)
	var out []string
	if has("Franco") {
		out = append(out, "Diggie, Lolita, Purify on the carries")
	}
	if has("Saber", "Gusion") {
		out = append(out, "Rafaela/Estes for peel, Aegis on Brody/Melissa")
	}
	if has("Estes", "Floryn") {
		out = append(out, "Early anti-heal on at least two heroes")
	}
	if has("Faramis") {
		out = append(out, "Avoid chokepoints; Lolita/Valir deny the engage")
	}
	if p.TankyFront {
		out = append(out, "Karrie/Brody/Dyrroth against a heavy frontline")
	}
	return out
}

// Synergy suggests partners for late-game marksmen.
func Synergy(h *hero.Hero, role string) []string {
	name := heroName(h)
	if role != hero.RoleGold || (name != "Miya" && name != "Karrie") {
		return nil
	}
	out := []string{"A Roam with peel (Rafaela/Estes/Lolita)"}
	if name == "Karrie" {
		out = append(out, "A frontline that buys time (Akai/Tigreal)")
	} else {
		out = append(out, "Vision control and lane resets to finish two items fast")
	}
	return out
}

func enemyNames(enemies []hero.Hero) func(names ...string) bool {
	set := make(map[string]struct{}, len(enemies))
	for _, e := range enemies {
		set[e.Name] = struct{}{}
	}
	return func(names ...string) bool {
		for _, n := range names {
			if _, ok := set[n]; ok {
				return true
			}
		}
		return false
	}
}

func appendUnique(list []string, item string) []string {
	for _, v := range list {
		if v == item {
			return list
		}
	}
	return append(list, item)
}
