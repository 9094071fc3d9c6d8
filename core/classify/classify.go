// ABOUTME: Classifier assigns categories and odd-news verdicts to title and summary text
// ABOUTME: Boring suppression runs before odd matching; overrides apply fails > mystery > british > default

package classify

import (
	"strings"

	"oddly-enough-api/core/domain"
)

// Classifier evaluates the static rule sets. The zero value is not usable;
// use New or Default.
type Classifier struct {
	boring  RuleSet
	odd     RuleSet
	fail    RuleSet
	mystery RuleSet
	british RuleSet
}

// New creates a classifier over the given rule sets
func New(boring, odd, fail, mystery, british RuleSet) *Classifier {
	return &Classifier{
		boring:  boring,
		odd:     odd,
		fail:    fail,
		mystery: mystery,
		british: british,
	}
}

var defaultClassifier = New(BoringRules, OddRules, FailRules, MysteryRules, BritishRules)

// Default returns the classifier over the built-in rules
func Default() *Classifier {
	return defaultClassifier
}

func joined(title, summary string) string {
	return title + " " + summary
}

// IsBoring reports whether a boring rule suppresses the story
func (c *Classifier) IsBoring(title, summary string) bool {
	return c.boring.Any(joined(title, summary))
}

// IsOddNews reports whether the story is odd. A boring match always wins.
func (c *Classifier) IsOddNews(title, summary string) bool {
	text := joined(title, summary)
	if c.boring.Any(text) {
		return false
	}
	return c.odd.Any(text)
}

// IsFail reports whether the story belongs in fails
func (c *Classifier) IsFail(title, summary string) bool {
	return c.fail.Any(joined(title, summary))
}

// IsMystery reports whether the story belongs in mystery
func (c *Classifier) IsMystery(title, summary string) bool {
	return c.mystery.Any(joined(title, summary))
}

// IsBritish reports whether the story belongs in british
func (c *Classifier) IsBritish(title, summary string) bool {
	return c.british.Any(joined(title, summary))
}

// Classify returns the override category for the story, or fallback when no
// override matches
func (c *Classifier) Classify(title, summary string, fallback domain.Category) domain.Category {
	text := joined(title, summary)
	switch {
	case c.fail.Any(text):
		return domain.CategoryFails
	case c.mystery.Any(text):
		return domain.CategoryMystery
	case c.british.Any(text):
		return domain.CategoryBritish
	default:
		return fallback
	}
}

// IsEnglish is the title-only language gate
func IsEnglish(title string) bool {
	if strings.TrimSpace(title) == "" {
		return false
	}
	if nonLatinScript.MatchString(title) {
		return false
	}
	if foreignWords.MatchString(title) {
		return false
	}
	return englishWords.MatchString(title)
}

// Verdict is the full classification of a story, used by the CLI
type Verdict struct {
	Odd      bool            `json:"odd"`
	Boring   bool            `json:"boring"`
	English  bool            `json:"english"`
	Fail     bool            `json:"fail"`
	Mystery  bool            `json:"mystery"`
	British  bool            `json:"british"`
	Category domain.Category `json:"category"`

	// Names of the first odd and boring rules that fired, if any
	OddRule    string `json:"odd_rule,omitempty"`
	BoringRule string `json:"boring_rule,omitempty"`
}

// Explain evaluates every predicate at once
func (c *Classifier) Explain(title, summary string, fallback domain.Category) Verdict {
	text := joined(title, summary)
	oddRule, _ := c.odd.FirstMatch(text)
	boringRule, _ := c.boring.FirstMatch(text)

	return Verdict{
		OddRule:    oddRule,
		BoringRule: boringRule,
		Odd:      c.IsOddNews(title, summary),
		Boring:   c.IsBoring(title, summary),
		English:  IsEnglish(title),
		Fail:     c.IsFail(title, summary),
		Mystery:  c.IsMystery(title, summary),
		British:  c.IsBritish(title, summary),
		Category: c.Classify(title, summary, fallback),
	}
}
