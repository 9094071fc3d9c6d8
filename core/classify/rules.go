// ABOUTME: Static heuristic rule sets for odd-news detection and category overrides
// ABOUTME: Rules are case-insensitive patterns; Unless emulates negative lookahead

package classify

import "regexp"

// Polarity says whether a matching rule votes for or against a story
type Polarity bool

const (
	Include Polarity = true
	Exclude Polarity = false
)

// Rule is a single text pattern. When Unless is set, a hit only counts if
// Unless does not match the text that follows it.
type Rule struct {
	Name     string
	Pattern  *regexp.Regexp
	Unless   *regexp.Regexp
	Polarity Polarity
}

// Match reports whether the rule fires on text
func (r Rule) Match(text string) bool {
	if r.Unless == nil {
		return r.Pattern.MatchString(text)
	}
	for _, loc := range r.Pattern.FindAllStringIndex(text, -1) {
		if !r.Unless.MatchString(text[loc[1]:]) {
			return true
		}
	}
	return false
}

// RuleSet is an ordered list of rules
type RuleSet []Rule

// Any reports whether any rule in the set fires on text
func (rs RuleSet) Any(text string) bool {
	for _, r := range rs {
		if r.Match(text) {
			return true
		}
	}
	return false
}

// FirstMatch returns the name of the first rule that fires
func (rs RuleSet) FirstMatch(text string) (string, bool) {
	for _, r := range rs {
		if r.Match(text) {
			return r.Name, true
		}
	}
	return "", false
}

func ci(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + pattern)
}

// BoringRules suppress a story no matter what else it contains
var BoringRules = RuleSet{
	{Name: "death", Pattern: ci(`\b(killed|murdered|dead|death|died|fatal|war|conflict|attack|terror)\b`), Polarity: Exclude},
	{Name: "politics", Pattern: ci(`\b(government|minister|parliament|election|vote|policy|budget)\b`), Polarity: Exclude},
	{Name: "economy", Pattern: ci(`\b(stock|market|economy|inflation|recession)\b`), Polarity: Exclude},
	{
		Name:     "sport-result",
		Pattern:  ci(`\b(match|score|defeat|victory|league|championship)\b`),
		Unless:   ci(`^(?:.*record|bizarre)`),
		Polarity: Exclude,
	},
}

// OddRules mark a story as odd news
var OddRules = RuleSet{
	{Name: "animal-antics", Pattern: ci(`\b(seal|raccoon|snake|donkey|capybara|kangaroo|dog|cat|parrot|squirrel|fox|deer|bear|monkey|elephant)\b.*\b(found|escaped|rescue|viral|spotted|caught|stowaway|loose|wander)`), Polarity: Include},
	{Name: "records", Pattern: ci(`\b(world record|guinness|youngest|oldest|largest|smallest|longest|fastest|first ever)\b`), Polarity: Include},
	{Name: "viral", Pattern: ci(`\b(viral|goes viral|meme|tiktok|reddit)\b.*\b(video|photo|post)`), Polarity: Include},
	{Name: "weird-words", Pattern: ci(`\b(hilarious|bizarre|weird|strange|unusual|oddly|quirky)\b`), Polarity: Include},
	{Name: "windfall", Pattern: ci(`\b(lottery|jackpot|win|winner)\b.*\b(million|fortune)`), Polarity: Include},
	{Name: "machine-fail", Pattern: ci(`\b(fail|glitch|mistake|error)\b.*\b(ai|chatbot|robot)\b`), Polarity: Include},
	{Name: "machine-wrong", Pattern: ci(`\b(ai|chatbot|robot)\b.*\b(fail|wrong|bizarre|funny)`), Polarity: Include},
}

// FailRules mark a story for the fails category
var FailRules = RuleSet{
	{Name: "fail", Pattern: ci(`\b(fail|fails|failed|failing|epic fail)\b`), Polarity: Include},
	{Name: "blunder", Pattern: ci(`\b(mistake|blunder|oops|disaster|backfire|backfired)\b`), Polarity: Include},
	{Name: "cringe", Pattern: ci(`\b(embarrassing|humiliating|cringe|awkward)\b`), Polarity: Include},
	{Name: "wrong", Pattern: ci(`\b(wrong|badly wrong|goes wrong|went wrong)\b`), Polarity: Include},
}

// MysteryRules mark a story for the mystery category
var MysteryRules = RuleSet{
	{Name: "unexplained", Pattern: ci(`\b(mystery|mysterious|unexplained|unknown|unsolved)\b`), Polarity: Include},
	{Name: "paranormal", Pattern: ci(`\b(ufo|alien|paranormal|ghost|haunted|supernatural)\b`), Polarity: Include},
	{Name: "baffling", Pattern: ci(`\b(bizarre|baffled|puzzled|strange|eerie|creepy)\b`), Polarity: Include},
	{Name: "vanished", Pattern: ci(`\b(disappeared|vanished|discovered|found.*strange)\b`), Polarity: Include},
}

// BritishRules mark a story for the british category. Counties are left out
// so regional place names alone do not override a source category.
var BritishRules = RuleSet{
	{Name: "nations", Pattern: ci(`\b(uk|britain|british|england|english|wales|welsh|scotland|scottish)\b`), Polarity: Include},
	{Name: "cities", Pattern: ci(`\b(london|manchester|birmingham|liverpool|leeds|bristol)\b`), Polarity: Include},
	{Name: "high-street", Pattern: ci(`\b(pub|chippy|greggs|wetherspoons|tesco|asda|lidl|aldi)\b`), Polarity: Include},
	{Name: "institutions", Pattern: ci(`\b(nhs|bbc|council|high street|queue|queueing)\b`), Polarity: Include},
}

var (
	// Cyrillic, CJK ideographs, Arabic, kana and Hangul
	nonLatinScript = regexp.MustCompile(`[\x{0400}-\x{04FF}\x{4E00}-\x{9FFF}\x{0600}-\x{06FF}\x{3040}-\x{30FF}\x{AC00}-\x{D7AF}]`)

	// Function words that only appear in German, French or Spanish headlines
	foreignWords = ci(`(?:^|[^\pL])(der|das|und|für|avec|dans|pour|está|tiene|sobre)(?:$|[^\pL])`)

	englishWords = ci(`\b(the|a|an|is|are|was|were|has|have|in|on|at|to|for|of|and|or|but|with)\b`)
)
