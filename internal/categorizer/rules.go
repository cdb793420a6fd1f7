// Package categorizer implements the heuristic keyword classifier and the
// precedence rule that resolves a transaction's effective category.
package categorizer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"mcoudert/budget-engine/internal/models"
)

// Rule maps a set of keywords onto one category. Rules are evaluated in
// order and the first match wins, so the position of a rule in the table is
// part of its meaning.
type Rule struct {
	Category models.Category `yaml:"category"`
	Keywords []string        `yaml:"keywords"`
}

// DefaultRules returns the built-in rule table. Order is significant: a
// description matching both a SHOPPING and a GROCERIES keyword is SHOPPING
// because that rule comes first.
func DefaultRules() []Rule {
	return []Rule{
		{
			Category: models.CategoryShopping,
			Keywords: []string{"amazon", "waterstones", "houseofbooks", "amznmktplace", "etika", "oxfam", "hardware", "b&q", "googlegoogle", "dunelm", "book"},
		},
		{
			Category: models.CategoryGroceries,
			Keywords: []string{"tesco", "sainsbur", "waitro", "m&s", "co-op", "crouchhillsupermarket", "wmmor", "morris", "lidl", "groceries", "co-pp"},
		},
		{
			Category: models.CategoryTransport,
			Keywords: []string{"tfl", "humanforest", "transportforlondon", "lime*"},
		},
		{
			Category: models.CategoryPersonalCare,
			Keywords: []string{"gympass", "barber", "sportsshoes", "florencehickmanyoga", "castleclim", "londonfieldstriath", "www.better", "archwaycuts"},
		},
		{
			Category: models.CategoryTransfers,
			Keywords: []string{"paymentreceived", "payment", "settleallbalances", "americanexp", "flatexpenses", "finglandsplitwise"},
		},
		{
			Category: models.CategoryTravel,
			Keywords: []string{"avanti", "gwr", "trainline", "holidaypot", "monzopremium", "lner", "mta", "holid", "fuel", "travelinsurance"},
		},
		{
			Category: models.CategoryBills,
			Keywords: []string{"haringey", "movingpot", "water", "utilities", "health+dental", "vodafone", "thameswater", "londonboroughofharingey", "londonboroughofislington", "counciltax", "rent", "virginmedia", "arimaproperties", "bills", "wifi", "waterbill"},
		},
		{
			Category: models.CategoryISA,
			Keywords: []string{"s&s"},
		},
		{
			Category: models.CategoryEatingOut,
			Keywords: []string{"gail", "theroyalstar", "pret"},
		},
		{
			Category: models.CategoryIncome,
			Keywords: []string{"checkout"},
		},
		{
			Category: models.CategoryGifts,
			Keywords: []string{"christmaspot"},
		},
	}
}

// rulesFile is the YAML shape of a rule table override.
type rulesFile struct {
	Rules []Rule `yaml:"rules"`
}

// LoadRules reads an ordered rule table from a YAML file. The file replaces
// the built-in table wholesale; there is no merging. Rules naming a
// category outside the enumeration are rejected rather than silently
// resolving to UNKNOWN, since a rule that can only ever produce UNKNOWN is
// a configuration mistake.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}

	var rf rulesFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing rules file %s: %w", path, err)
	}

	for i, rule := range rf.Rules {
		if !rule.Category.Valid() || rule.Category == models.CategoryUnknown {
			return nil, fmt.Errorf("rules file %s: rule %d has invalid category %q", path, i, rule.Category)
		}
		if len(rule.Keywords) == 0 {
			return nil, fmt.Errorf("rules file %s: rule %d (%s) has no keywords", path, i, rule.Category)
		}
	}

	return rf.Rules, nil
}
