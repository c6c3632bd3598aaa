package items

import (
	_ "embed"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/stats"
	rpgerr "github.com/KirkDiggler/dungeon-crawler-bot/internal/errors"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Type is a static item-type entry
type Type struct {
	Code     string
	Name     string
	Class    Class
	SubClass SubClass
	Starter  bool
	Implicit stats.List
}

// Affix is a random modifier that can roll onto a non-starter item
type Affix struct {
	Code    string
	Name    string
	Stat    stats.ID
	Min     int
	Max     int
	Classes []Class
}

// AllowedOn reports whether the affix can roll on the class
func (a Affix) AllowedOn(c Class) bool {
	for _, allowed := range a.Classes {
		if allowed == c {
			return true
		}
	}
	return false
}

// Catalog is the immutable item data set, built once at startup
type Catalog struct {
	types   map[string]Type
	codes   []string
	affixes []Affix
	tiers   map[Tier]int
}

type catalogFile struct {
	Tiers   map[int]int `yaml:"tiers"`
	Types   []typeFile  `yaml:"types"`
	Affixes []affixFile `yaml:"affixes"`
}

type typeFile struct {
	Code     string     `yaml:"code"`
	Name     string     `yaml:"name"`
	Class    string     `yaml:"class"`
	SubClass string     `yaml:"subclass"`
	Starter  bool       `yaml:"starter"`
	Implicit []statFile `yaml:"implicit"`
}

type statFile struct {
	Stat  string `yaml:"stat"`
	Value int    `yaml:"value"`
}

type affixFile struct {
	Code    string   `yaml:"code"`
	Name    string   `yaml:"name"`
	Stat    string   `yaml:"stat"`
	Min     int      `yaml:"min"`
	Max     int      `yaml:"max"`
	Classes []string `yaml:"classes"`
}

// LoadCatalog parses YAML catalog data, resolving stat names against sc
func LoadCatalog(data []byte, sc *stats.Catalog) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, rpgerr.WrapWithCode(err, rpgerr.CodeValidation, "failed to parse item catalog")
	}

	c := &Catalog{
		types: make(map[string]Type, len(file.Types)),
		tiers: make(map[Tier]int, len(file.Tiers)),
	}

	for tier, count := range file.Tiers {
		if tier < 1 || tier > 255 || count < 0 {
			return nil, rpgerr.Validationf("invalid tier entry %d: %d", tier, count)
		}
		c.tiers[Tier(tier)] = count
	}

	for _, tf := range file.Types {
		t, err := tf.build(sc)
		if err != nil {
			return nil, err
		}
		if _, exists := c.types[t.Code]; exists {
			return nil, rpgerr.Validationf("duplicate item code %q", t.Code)
		}
		c.types[t.Code] = t
		c.codes = append(c.codes, t.Code)
	}
	sort.Strings(c.codes)

	for _, af := range file.Affixes {
		a, err := af.build(sc)
		if err != nil {
			return nil, err
		}
		c.affixes = append(c.affixes, a)
	}

	return c, nil
}

func (tf typeFile) build(sc *stats.Catalog) (Type, error) {
	if tf.Code == "" {
		return Type{}, rpgerr.Validation("item type without a code")
	}
	class, err := ParseClass(tf.Class)
	if err != nil {
		return Type{}, rpgerr.Wrapf(err, "item %q", tf.Code)
	}
	sub, err := ParseSubClass(tf.SubClass)
	if err != nil {
		return Type{}, rpgerr.Wrapf(err, "item %q", tf.Code)
	}
	if sub.Class() != class {
		return Type{}, rpgerr.Validationf("item %q: sub-class %s is not a %s", tf.Code, sub, class)
	}

	t := Type{Code: tf.Code, Name: tf.Name, Class: class, SubClass: sub, Starter: tf.Starter}
	for _, s := range tf.Implicit {
		def, err := sc.LookupShort(s.Stat)
		if err != nil {
			return Type{}, rpgerr.Wrapf(err, "item %q", tf.Code)
		}
		t.Implicit = append(t.Implicit, stats.Stat{ID: def.ID, Value: s.Value})
	}
	return t, nil
}

func (af affixFile) build(sc *stats.Catalog) (Affix, error) {
	def, err := sc.LookupShort(af.Stat)
	if err != nil {
		return Affix{}, rpgerr.Wrapf(err, "affix %q", af.Code)
	}
	if af.Min > af.Max {
		return Affix{}, rpgerr.Validationf("affix %q has min %d above max %d", af.Code, af.Min, af.Max)
	}

	a := Affix{Code: af.Code, Name: af.Name, Stat: def.ID, Min: af.Min, Max: af.Max}
	for _, name := range af.Classes {
		class, err := ParseClass(name)
		if err != nil {
			return Affix{}, rpgerr.Wrapf(err, "affix %q", af.Code)
		}
		a.Classes = append(a.Classes, class)
	}
	return a, nil
}

// Lookup returns the type for code. Unknown codes yield a lookup error
// carrying the closest known code as a suggestion when one is near enough.
func (c *Catalog) Lookup(code string) (Type, error) {
	t, ok := c.types[code]
	if ok {
		return t, nil
	}

	err := rpgerr.Lookupf("unknown item code %q", code).WithMeta("code", code)
	if suggestion := c.Suggest(code); suggestion != "" {
		err = err.WithMeta("suggestion", suggestion)
	}
	return Type{}, err
}

// ModifierCount returns how many affixes an item of the tier rolls
func (c *Catalog) ModifierCount(tier Tier) (int, error) {
	n, ok := c.tiers[tier]
	if !ok {
		return 0, rpgerr.Lookupf("unknown tier %d", tier).WithMeta("tier", tier)
	}
	return n, nil
}

// Codes returns the sorted codes matching keep. A nil keep returns all.
func (c *Catalog) Codes(keep func(Type) bool) []string {
	var out []string
	for _, code := range c.codes {
		if keep == nil || keep(c.types[code]) {
			out = append(out, code)
		}
	}
	return out
}

// BySubClass returns the non-starter codes of the given sub-classes
func (c *Catalog) BySubClass(subs ...SubClass) []string {
	want := make(map[SubClass]bool, len(subs))
	for _, s := range subs {
		want[s] = true
	}
	return c.Codes(func(t Type) bool {
		return !t.Starter && want[t.SubClass]
	})
}

// Eligible returns the affixes that may roll on t, in catalog order. Affixes
// whose stat is already an implicit stat of t are excluded.
func (c *Catalog) Eligible(t Type) []Affix {
	implicit := make(map[stats.ID]bool, len(t.Implicit))
	for _, s := range t.Implicit {
		implicit[s.ID] = true
	}

	var out []Affix
	for _, a := range c.affixes {
		if a.AllowedOn(t.Class) && !implicit[a.Stat] {
			out = append(out, a)
		}
	}
	return out
}

// Suggest returns the known code closest to code, or "" when none is close
func (c *Catalog) Suggest(code string) string {
	return Suggest(code, c.codes)
}

// Suggest picks the candidate with the smallest edit distance to input,
// within a limit that grows with the candidate's length. Ties resolve to
// the lexically smaller candidate.
func Suggest(input string, candidates []string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return ""
	}

	best, bestDist := "", -1
	for _, cand := range candidates {
		dist := levenshtein.ComputeDistance(input, strings.ToLower(cand))
		if dist > suggestionLimit(len(cand)) {
			continue
		}
		if bestDist < 0 || dist < bestDist || (dist == bestDist && cand < best) {
			best, bestDist = cand, dist
		}
	}
	return best
}

func suggestionLimit(n int) int {
	switch {
	case n <= 4:
		return 1
	case n <= 8:
		return 2
	default:
		return 3
	}
}

// DefaultCatalog is the embedded game catalog
var DefaultCatalog = mustCatalog(defaultCatalogYAML, stats.Default)

func mustCatalog(data []byte, sc *stats.Catalog) *Catalog {
	c, err := LoadCatalog(data, sc)
	if err != nil {
		panic(err)
	}
	return c
}
