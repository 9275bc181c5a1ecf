package hero

import (
	"reflect"
	"sort"
	"testing"
)

func TestNormalizeFixTable(t *testing.T) {
	cases := map[string]string{
		"matjhilda":     "Mathilda",
		"  MATJHILDA  ": "Mathilda",
		"Mathilda":      "Mathilda",
		"faranis":       "Faramis",
		"change":        "Chang'e",
		"CHANGG":        "Chang'e",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeTitleCase(t *testing.T) {
	cases := map[string]string{
		"tigreal":        "Tigreal",
		"  yu zhong ":    "Yu Zhong",
		"YI SUN-SHIN":    "Yi Sun-shin",
		"lapu-lapu":      "Lapu-lapu",
		"popol and kupa": "Popol And Kupa",
		"x.borg":         "X.borg",
		"chang'e":        "Chang'e",
		"":               "",
		"   ":            "",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFromNameCurated(t *testing.T) {
	h, ok := Default().FromName("karrie")
	if !ok {
		t.Fatal("FromName(karrie) not ok")
	}
	if h.Name != "Karrie" || h.Role != RoleGold || h.Damage != DamagePhysical {
		t.Errorf("Karrie = %+v", h)
	}
	if !h.HasTag("AntiTank") {
		t.Errorf("Karrie tags = %v", h.Tags)
	}

	// Table keys are normalized, so hyphenated names resolve.
	lapu, _ := Default().FromName("Lapu-Lapu")
	if lapu.Role != RoleEXP {
		t.Errorf("Lapu-Lapu = %+v", lapu)
	}
	change, _ := Default().FromName("chang'e")
	if change.Name != "Chang'e" || change.Role != RoleMid {
		t.Errorf("Chang'e = %+v", change)
	}
}

func TestFromNameUnknown(t *testing.T) {
	h, ok := Default().FromName("  wanwan ")
	if !ok {
		t.Fatal("FromName(wanwan) not ok")
	}
	want := Hero{Name: "Wanwan", Role: RoleFlex, Damage: DamagePhysical, Tags: []string{}}
	if !reflect.DeepEqual(h, want) {
		t.Errorf("FromName(wanwan) = %+v, want %+v", h, want)
	}
	if _, ok := Default().FromName(" "); ok {
		t.Error("blank name accepted")
	}
}

func TestFromNamesSkipsBlank(t *testing.T) {
	got := Default().FromNames([]string{"Franco", "", "estes"})
	if len(got) != 2 || got[1].Name != "Estes" {
		t.Errorf("FromNames = %+v", got)
	}
}

func TestInferFromClass(t *testing.T) {
	c := Default()
	if got := c.InferFromClass("Marksman"); got.Role != RoleGold {
		t.Errorf("Marksman -> %+v", got)
	}
	if got := c.InferFromClass("support"); got.Damage != DamageMagic {
		t.Errorf("support -> %+v", got)
	}
	if got := c.InferFromClass("Wizard"); got.Role != RoleFlex {
		t.Errorf("Wizard -> %+v", got)
	}
	if got := c.ClassForLane(RoleJungle); got != "Assassin" {
		t.Errorf("ClassForLane(Jungle) = %q", got)
	}
	if got := c.ClassForLane("Nowhere"); got != "—" {
		t.Errorf("ClassForLane(Nowhere) = %q", got)
	}
}

func TestLocalRoster(t *testing.T) {
	names := Default().LocalRoster()
	if !sort.StringsAreSorted(names) {
		t.Error("local roster not sorted")
	}
	seen := map[string]bool{}
	for _, n := range names {
		if seen[n] {
			t.Errorf("duplicate %q", n)
		}
		seen[n] = true
		if n != Normalize(n) {
			t.Errorf("%q is not normalized", n)
		}
	}
	if !seen["Mathilda"] || !seen["Yi Sun-shin"] {
		t.Error("expected heroes missing")
	}
}

func TestUnique(t *testing.T) {
	got := Default().Unique([]string{"tigreal", "Tigreal ", "", "akai", "MATJHILDA"})
	want := []string{"Akai", "Mathilda", "Tigreal"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Unique = %v, want %v", got, want)
	}
}

func TestParseRole(t *testing.T) {
	if r, ok := ParseRole("gold"); !ok || r != RoleGold {
		t.Errorf("ParseRole(gold) = %q, %v", r, ok)
	}
	if _, ok := ParseRole("flex"); ok {
		t.Error("flex is not selectable")
	}
}
