package units

import (
	_ "embed"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/items"
	"github.com/KirkDiggler/dungeon-crawler-bot/internal/domain/stats"
	rpgerr "github.com/KirkDiggler/dungeon-crawler-bot/internal/errors"
)

//go:embed templates.yaml
var defaultTemplatesYAML []byte

// ClassTemplate is a player class
type ClassTemplate struct {
	Code    string
	Name    string
	Base    stats.List
	Starter []string
}

// LootRange is an inclusive item count range
type LootRange struct {
	Min int
	Max int
}

// SpeciesTemplate is a monster species
type SpeciesTemplate struct {
	Code      string
	Name      string
	Base      stats.List
	Bounty    int
	Styles    []items.Style
	DualWield bool
	Loot      map[items.Rarity]LootRange
}

// CanUse reports whether the species fights with the style
func (s SpeciesTemplate) CanUse(style items.Style) bool {
	for _, have := range s.Styles {
		if have == style {
			return true
		}
	}
	return false
}

// LootCount returns the item count range for the rarity
func (s SpeciesTemplate) LootCount(r items.Rarity) (LootRange, error) {
	lr, ok := s.Loot[r]
	if !ok {
		return LootRange{}, rpgerr.Lookupf("no loot table for %s %s", r, s.Code).
			WithMeta("species", s.Code).
			WithMeta("rarity", r.String())
	}
	return lr, nil
}

// Templates holds every class and species, built once
type Templates struct {
	classes map[string]ClassTemplate
	species map[string]SpeciesTemplate
}

type templatesFile struct {
	Classes []classFile   `yaml:"classes"`
	Species []speciesFile `yaml:"species"`
}

type classFile struct {
	Code    string         `yaml:"code"`
	Name    string         `yaml:"name"`
	Base    map[string]int `yaml:"base"`
	Starter []string       `yaml:"starter"`
}

type speciesFile struct {
	Code      string           `yaml:"code"`
	Name      string           `yaml:"name"`
	Base      map[string]int   `yaml:"base"`
	Bounty    int              `yaml:"bounty"`
	Styles    []string         `yaml:"styles"`
	DualWield bool             `yaml:"dual_wield"`
	Loot      map[string][]int `yaml:"loot"`
}

// LoadTemplates parses YAML template data. Base stats must be BASE stats of
// sc and starter items must exist in ic.
func LoadTemplates(data []byte, sc *stats.Catalog, ic *items.Catalog) (*Templates, error) {
	var file templatesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, rpgerr.WrapWithCode(err, rpgerr.CodeValidation, "failed to parse unit templates")
	}

	t := &Templates{
		classes: make(map[string]ClassTemplate, len(file.Classes)),
		species: make(map[string]SpeciesTemplate, len(file.Species)),
	}

	for _, cf := range file.Classes {
		base, err := baseStats(sc, cf.Base)
		if err != nil {
			return nil, rpgerr.Wrapf(err, "class %q", cf.Code)
		}
		for _, code := range cf.Starter {
			if _, err := ic.Lookup(code); err != nil {
				return nil, rpgerr.Wrapf(err, "class %q", cf.Code)
			}
		}
		t.classes[cf.Code] = ClassTemplate{Code: cf.Code, Name: cf.Name, Base: base, Starter: cf.Starter}
	}

	for _, sf := range file.Species {
		sp, err := sf.build(sc)
		if err != nil {
			return nil, rpgerr.Wrapf(err, "species %q", sf.Code)
		}
		t.species[sp.Code] = sp
	}

	return t, nil
}

func (sf speciesFile) build(sc *stats.Catalog) (SpeciesTemplate, error) {
	base, err := baseStats(sc, sf.Base)
	if err != nil {
		return SpeciesTemplate{}, err
	}

	sp := SpeciesTemplate{
		Code:      sf.Code,
		Name:      sf.Name,
		Base:      base,
		Bounty:    sf.Bounty,
		DualWield: sf.DualWield,
		Loot:      make(map[items.Rarity]LootRange, len(sf.Loot)),
	}
	for _, name := range sf.Styles {
		style, err := items.ParseStyle(name)
		if err != nil {
			return SpeciesTemplate{}, err
		}
		sp.Styles = append(sp.Styles, style)
	}
	if len(sp.Styles) == 0 {
		return SpeciesTemplate{}, rpgerr.Validation("species needs at least one combat style")
	}
	for name, bounds := range sf.Loot {
		rarity, err := items.ParseRarity(name)
		if err != nil {
			return SpeciesTemplate{}, err
		}
		if len(bounds) != 2 || bounds[0] < 1 || bounds[0] > bounds[1] {
			return SpeciesTemplate{}, rpgerr.Validationf("invalid loot range %v for %s", bounds, name)
		}
		sp.Loot[rarity] = LootRange{Min: bounds[0], Max: bounds[1]}
	}
	return sp, nil
}

func baseStats(sc *stats.Catalog, in map[string]int) (stats.List, error) {
	out := make(stats.List, 0, len(in))
	for name, value := range in {
		def, err := sc.LookupShort(name)
		if err != nil {
			return nil, err
		}
		if !def.Category.Has(stats.CategoryBase) {
			return nil, rpgerr.Validationf("%s is not a base stat", def.Short)
		}
		out = append(out, stats.Stat{ID: def.ID, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Class returns a player class, suggesting a close code when unknown
func (t *Templates) Class(code string) (ClassTemplate, error) {
	c, ok := t.classes[code]
	if !ok {
		return ClassTemplate{}, unknown("class", code, t.ClassCodes())
	}
	return c, nil
}

// Species returns a monster species, suggesting a close code when unknown
func (t *Templates) Species(code string) (SpeciesTemplate, error) {
	s, ok := t.species[code]
	if !ok {
		return SpeciesTemplate{}, unknown("species", code, t.SpeciesCodes())
	}
	return s, nil
}

// ClassCodes returns every class code, sorted
func (t *Templates) ClassCodes() []string {
	return sortedKeys(t.classes)
}

// SpeciesCodes returns every species code, sorted
func (t *Templates) SpeciesCodes() []string {
	return sortedKeys(t.species)
}

func unknown(kind, code string, known []string) error {
	err := rpgerr.Lookupf("unknown %s %q", kind, code).WithMeta(kind, code)
	if suggestion := items.Suggest(code, known); suggestion != "" {
		err = err.WithMeta("suggestion", suggestion)
	}
	return err
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// DefaultTemplates are the embedded classes and species
var DefaultTemplates = mustTemplates(defaultTemplatesYAML)

func mustTemplates(data []byte) *Templates {
	t, err := LoadTemplates(data, stats.Default, items.DefaultCatalog)
	if err != nil {
		panic(err)
	}
	return t
}
