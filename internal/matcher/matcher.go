// Package matcher ranks achievements against a free-text task description.
//
// Scoring is keyword overlap only. Given the same inputs it always returns the
// same ranking.
package matcher

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"lifeupmcp/internal/logging"
	"lifeupmcp/internal/types"
)

// Limits and weights.
const (
	MaxKeywords   = 5
	MaxMatches    = 5
	MaxReasons    = 3
	MaxConfidence = 100

	keywordWeight  = 20
	nameBonus      = 15
	categoryBonus  = 10
	minTokenLength = 3
)

// ReasonSameCategory is recorded when the caller's category matches.
const ReasonSameCategory = "Same category"

// Match is one ranked achievement.
type Match struct {
	Achievement types.Achievement `json:"achievement"`
	Confidence  int               `json:"confidence"`
	Reasons     []string          `json:"reasons"`
}

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		the and but for nor yet are was were been being has have had does did
		will would shall should can could may might must
		with from into onto upon about above below over under after before
		between through during without within along across around among
		this that these those them they their theirs there here what which who whom whose
		you your yours our ours his her hers its him she
		not all any some each every very just also only then than too
		task tasks complete completed finish finished done todo doing make get
	`) {
		stopWords[w] = struct{}{}
	}
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == '-' || r == '_'
}

// ExtractKeywords returns up to MaxKeywords lowercase tokens from text, in
// order of appearance. Short tokens and stop words are dropped.
func ExtractKeywords(text string) []string {
	keywords := make([]string, 0, MaxKeywords)
	for _, tok := range strings.FieldsFunc(strings.ToLower(text), isSeparator) {
		if len([]rune(tok)) < minTokenLength {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		keywords = append(keywords, tok)
		if len(keywords) == MaxKeywords {
			break
		}
	}
	return keywords
}

// FindMatches scores every achievement against taskName and returns the best
// MaxMatches with a positive score, highest confidence first. Ties keep input
// order. categoryID, when set, adds a bonus to achievements in that category.
func FindMatches(taskName string, achievements []types.Achievement, categoryID *int) []Match {
	keywords := ExtractKeywords(taskName)
	if len(keywords) == 0 {
		return []Match{}
	}

	matches := make([]Match, 0, len(achievements))
	for _, a := range achievements {
		if m, ok := score(keywords, a, categoryID); ok {
			matches = append(matches, m)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})
	if len(matches) > MaxMatches {
		matches = matches[:MaxMatches]
	}
	logging.MatcherDebug("keywords %v matched %d of %d achievement(s)", keywords, len(matches), len(achievements))
	return matches
}

func score(keywords []string, a types.Achievement, categoryID *int) (Match, bool) {
	text := strings.ToLower(a.Name + " " + a.Desc)
	total := 0
	var reasons []string

	seen := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		if seen[kw] {
			continue
		}
		seen[kw] = true
		if strings.Contains(text, kw) {
			total += keywordWeight
			reasons = append(reasons, fmt.Sprintf("Keyword %q found", kw))
		}
	}

	if sharesStem(keywords, ExtractKeywords(a.Name)) {
		total += nameBonus
	}

	if categoryID != nil && a.CategoryID == *categoryID {
		total += categoryBonus
		reasons = append(reasons, ReasonSameCategory)
	}

	if total == 0 {
		return Match{}, false
	}
	if len(reasons) > MaxReasons {
		reasons = reasons[:MaxReasons]
	}
	if reasons == nil {
		reasons = []string{}
	}
	return Match{Achievement: a, Confidence: min(total, MaxConfidence), Reasons: reasons}, true
}

// sharesStem reports whether any task keyword and any name keyword contain one
// another.
func sharesStem(taskKeywords, nameKeywords []string) bool {
	for _, t := range taskKeywords {
		for _, n := range nameKeywords {
			if strings.Contains(t, n) || strings.Contains(n, t) {
				return true
			}
		}
	}
	return false
}
