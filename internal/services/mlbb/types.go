package mlbb

// HeroRef is one roster entry from the statistics API.
type HeroRef struct {
	Name string
	ID   int
}

// HeroList is the roster returned by the hero list endpoint.
type HeroList struct {
	Heroes []HeroRef
	URL    string // endpoint requested
	Via    string // "direct" or the relay URL that answered
}

// Detail holds the descriptive fields of a hero.
type Detail struct {
	Image      string
	Class      string
	Lane       string
	Speciality string
}

// Rates holds formatted pick, ban and win rates.
type Rates struct {
	Pick string
	Ban  string
	Win  string
}

// Relations lists heroes that counter the hero and heroes that pair well
// with it.
type Relations struct {
	Counters   []string
	Compatible []string
}

// Meta is what the hero card shows. Fields fall back to placeholders when
// the statistics API does not answer.
type Meta struct {
	Detail
	Rates
	Relations
	Live bool // at least one field came from the API
}
