// Package advisor scores an enemy composition and turns the score into draft
// advice.
package advisor

import (
	"math"
	"sort"

	"github.com/draftcoach/internal/hero"
)

// Style tags that drive the profile.
const (
	TagTankyFrontline = "TankyFrontline"
	TagEngage         = "Engage"
	TagDiver          = "Diver"
	TagHardCC         = "HardCC"
	TagSustain        = "Sustain"
	TagPoke           = "Poke"
	TagSiege          = "Siege"
	TagZone           = "Zone"
	TagMobility       = "Mobility"
	TagPickoff        = "Pickoff"
	TagBacklineBurst  = "BacklineBurst"
	TagWombo          = "Wombo"
)

// Damage mix labels.
const (
	MixBalanced = "Balanced"
	MixPhysical = "More Physical"
	MixMagic    = "More Magic"
)

// TagCount is one entry of Profile.SortedTags.
type TagCount struct {
	Tag   string
	Count int
}

// Profile aggregates the tags and damage types of a team.
type Profile struct {
	Counts   map[string]int
	order    []string
	ADPct    int
	APPct    int
	MixLabel string

	FrontlineScore int
	CCScore        int
	SustainScore   int
	WaveclearScore int
	MobilityScore  int

	HeavyDive    bool
	HeavyPick    bool
	HeavyPoke    bool
	HeavyCC      bool
	HeavySustain bool
	TankyFront   bool
	Wombo        bool
}

// NewProfile scores heroes. Hybrid damage counts half toward each side.
func NewProfile(heroes []hero.Hero) Profile {
	p := Profile{Counts: make(map[string]int)}
	for _, h := range heroes {
		for _, t := range h.Tags {
			if _, seen := p.Counts[t]; !seen {
				p.order = append(p.order, t)
			}
			p.Counts[t]++
		}
	}

	var physical, magic float64
	for _, h := range heroes {
		switch h.Damage {
		case hero.DamagePhysical:
			physical++
		case hero.DamageMagic:
			magic++
		case hero.DamageHybrid:
			physical += 0.5
			magic += 0.5
		}
	}
	total := float64(len(heroes))
	if total == 0 {
		total = 1
	}
	p.ADPct = roundPct(physical / total)
	p.APPct = roundPct(magic / total)

	switch {
	case abs(p.ADPct-p.APPct) <= 30:
		p.MixLabel = MixBalanced
	case p.ADPct > p.APPct:
		p.MixLabel = MixPhysical
	default:
		p.MixLabel = MixMagic
	}

	sum := func(tags ...string) int {
		n := 0
		for _, t := range tags {
			n += p.Counts[t]
		}
		return n
	}
	p.FrontlineScore = sum(TagTankyFrontline, TagEngage, TagDiver)
	p.CCScore = sum(TagHardCC)
	p.SustainScore = sum(TagSustain)
	p.WaveclearScore = sum(TagPoke, TagSiege, TagZone)
	p.MobilityScore = sum(TagMobility)

	p.HeavyDive = sum(TagDiver, TagEngage) >= 2
	p.HeavyPick = sum(TagPickoff, TagBacklineBurst) >= 2
	p.HeavyPoke = sum(TagPoke, TagSiege) >= 2
	p.HeavyCC = sum(TagHardCC) >= 2
	p.HeavySustain = sum(TagSustain) >= 1
	p.TankyFront = sum(TagTankyFrontline) >= 2
	p.Wombo = sum(TagWombo) >= 1
	return p
}

// SortedTags returns tag counts, highest first. Ties keep first-seen order.
func (p Profile) SortedTags() []TagCount {
	out := make([]TagCount, 0, len(p.order))
	for _, t := range p.order {
		out = append(out, TagCount{Tag: t, Count: p.Counts[t]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

func roundPct(share float64) int {
	return int(math.Floor(100*share + 0.5))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
