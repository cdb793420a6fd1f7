package categorizer

import (
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"

	"mcoudert/budget-engine/internal/models"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// MatchConfidence is the confidence written for every keyword match. The
// heuristic is binary match/no-match and expresses no graded confidence.
const MatchConfidence = 1.0

// Classifier matches transaction descriptions against an ordered rule
// table. Matching is case-insensitive and whitespace-insensitive; the first
// rule with any matching keyword wins.
type Classifier struct {
	rules []Rule
}

// New creates a Classifier over the given ordered rules. Passing nil uses
// the built-in default table.
func New(rules []Rule) *Classifier {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

// NewFromFile creates a Classifier from a YAML rule file.
func NewFromFile(path string) (*Classifier, error) {
	rules, err := LoadRules(path)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{"file": path, "rules": len(rules)}).Debug("Loaded classifier rules")
	return &Classifier{rules: rules}, nil
}

// Classify returns the category for a description together with the match
// confidence. No match yields (CategoryUnknown, 0).
func (c *Classifier) Classify(description string) (models.Category, float64) {
	cleaned := cleanDescription(description)
	if cleaned == "" {
		return models.CategoryUnknown, 0
	}

	for _, rule := range c.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(cleaned, cleanDescription(keyword)) {
				log.WithFields(logrus.Fields{
					"keyword":  keyword,
					"category": rule.Category,
				}).Debug("Description matched keyword rule")
				return rule.Category, MatchConfidence
			}
		}
	}

	return models.CategoryUnknown, 0
}

// cleanDescription lowercases the input and strips all whitespace so that
// "TESCO STORE" and "tescostore" match the same keywords.
func cleanDescription(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
