// Package rules holds the static keyword catalog used to screen locations.
package rules

import (
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Catalog is the declarative rule set. It is built once at startup and
// read concurrently by every classification; nothing mutates it afterwards.
type Catalog struct {
	// UnsuitableKeywords are scanned in order; the first hit wins.
	UnsuitableKeywords []string `yaml:"unsuitable_keywords"`
	// BarKeywords route a location to the daytime-hours check instead of
	// the keyword scan.
	BarKeywords []string `yaml:"bar_keywords"`
	// NightPhrases are direct indicators of evening-only operation.
	NightPhrases []string `yaml:"night_phrases"`
}

var defaultUnsuitable = []string{
	// Entertainment/recreation. Bars and pubs are handled separately.
	"club", "nightclub", "lounge", "karaoke", "dance",
	"movie", "theater", "cinema", "bowling", "arcade", "game", "gaming",
	"gym", "fitness", "yoga", "pilates", "crossfit", "workout",
	"spa", "massage", "salon", "barber", "beauty", "nail",
	"tattoo", "piercing", "tanning",

	// Specialty retail.
	"comic", "bookstore", "toy", "game store", "music store", "record",
	"clothing", "fashion", "jewelry", "shoe", "accessory",
	"electronics", "phone", "computer store",
	"grocery", "supermarket", "convenience", "liquor", "wine",

	// Fast food and takeout.
	"fast food", "drive-thru", "takeout", "delivery", "pizza",
	"burger", "taco", "sandwich", "subway", "mcdonalds", "kfc",

	// Personal, financial and auto services.
	"bank", "credit union", "atm", "post office", "mail",
	"car wash", "auto", "mechanic", "repair", "service",
	"dry cleaner", "laundry", "tailor",

	// Healthcare.
	"dentist", "doctor", "medical", "clinic", "pharmacy",
	"veterinary", "vet", "pet hospital",

	// Fuel, tobacco, pawn.
	"gas station", "fuel", "tobacco", "vape", "smoke",
	"pawn", "payday", "check cashing",
}

var defaultBar = []string{"bar", "pub"}

var defaultNight = []string{"night only", "evening only", "after hours", "late night"}

// catalogFile is the on-disk layout of a catalog override file.
type catalogFile struct {
	Rules Catalog `yaml:"rules"`
}

// Default returns the built-in catalog. Each call returns fresh slices.
func Default() *Catalog {
	return &Catalog{
		UnsuitableKeywords: clone(defaultUnsuitable),
		BarKeywords:        clone(defaultBar),
		NightPhrases:       clone(defaultNight),
	}
}

// Load reads a catalog from a YAML file with a top-level "rules" key.
// Lists left empty in the file fall back to the built-in defaults.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "rules: read catalog %s", path)
	}

	var wrapper catalogFile
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "rules: parse catalog")
	}

	c := &wrapper.Rules
	if len(c.UnsuitableKeywords) == 0 {
		c.UnsuitableKeywords = clone(defaultUnsuitable)
	}
	if len(c.BarKeywords) == 0 {
		c.BarKeywords = clone(defaultBar)
	}
	if len(c.NightPhrases) == 0 {
		c.NightPhrases = clone(defaultNight)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate normalizes entries to trimmed lowercase and rejects empty or
// duplicate entries within a list.
func (c *Catalog) Validate() error {
	var errs []string

	lists := []struct {
		name  string
		items []string
	}{
		{"unsuitable_keywords", c.UnsuitableKeywords},
		{"bar_keywords", c.BarKeywords},
		{"night_phrases", c.NightPhrases},
	}
	for _, l := range lists {
		seen := make(map[string]bool, len(l.items))
		for i, item := range l.items {
			norm := strings.ToLower(strings.TrimSpace(item))
			if norm == "" {
				errs = append(errs, fmt.Sprintf("%s[%d] is empty", l.name, i))
				continue
			}
			if seen[norm] {
				errs = append(errs, fmt.Sprintf("%s has duplicate %q", l.name, norm))
			}
			seen[norm] = true
			l.items[i] = norm
		}
	}

	if len(errs) > 0 {
		return eris.Errorf("rules: invalid catalog: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Encode renders the catalog as YAML under the same "rules" key Load expects.
func (c *Catalog) Encode() ([]byte, error) {
	out, err := yaml.Marshal(catalogFile{Rules: *c})
	if err != nil {
		return nil, eris.Wrap(err, "rules: encode catalog")
	}
	return out, nil
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
