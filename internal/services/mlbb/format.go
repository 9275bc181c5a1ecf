package mlbb

import (
	"fmt"
	"strings"

	"github.com/draftcoach/internal/hero"
	"github.com/draftcoach/internal/jsontree"
)

// Placeholders shown for missing values.
const (
	Missing     = "—"
	Unavailable = "N/A"
)

// FormatRate renders a rate as a percentage with two decimals. Values at or
// below 1 are treated as fractions.
func FormatRate(v any) string {
	n, ok := jsontree.Number(v)
	if !ok {
		return Missing
	}
	if n <= 1 {
		n *= 100
	}
	return fmt.Sprintf("%.2f%%", n)
}

// displayValue renders a located field for a hero card. Lists of scalars are
// joined; anything else without a textual form is Missing.
func displayValue(v any, found bool) string {
	if !found || v == nil {
		return Missing
	}
	if list, ok := v.([]any); ok {
		parts := make([]string, 0, len(list))
		for _, item := range list {
			if s := strings.TrimSpace(jsontree.Text(item)); s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 {
			return Missing
		}
		return strings.Join(parts, ", ")
	}
	if s := strings.TrimSpace(jsontree.Text(v)); s != "" {
		return s
	}
	return Missing
}

// FallbackMeta derives a hero card from the static tables alone.
func FallbackMeta(c *hero.Catalog, h hero.Hero, role string) Meta {
	lane := Missing
	switch {
	case h.Role != "" && h.Role != hero.RoleFlex:
		lane = h.Role
	case role != "":
		lane = role
	case h.Role != "":
		lane = h.Role
	}

	speciality := Missing
	if len(h.Tags) > 0 {
		speciality = strings.Join(h.Tags, ", ")
	}

	return Meta{
		Detail: Detail{
			Class:      c.ClassForLane(lane),
			Lane:       lane,
			Speciality: speciality,
		},
		Rates: Rates{Pick: Unavailable, Ban: Unavailable, Win: Unavailable},
	}
}
