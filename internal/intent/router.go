// Package intent classifies user utterances into advisory agent labels.
//
// Classification is a pure, deterministic substring match against an
// ordered rule table. The resulting label only decides which agent name
// the chat surface attributes the turn to; the coordinator picks tools
// on its own and may disagree.
package intent

import (
	"strings"

	"github.com/madadgar-ai/madadgar/internal/domain"
)

// Rule pairs a keyword set with the label it selects. Rules are
// evaluated in order; the first rule with any matching keyword wins.
type Rule struct {
	Label    domain.IntentLabel
	Keywords []string
}

// Router is an ordered first-match-wins keyword classifier.
type Router struct {
	rules []Rule
}

// NewRouter creates a router over the given rule table. With no rules
// it uses DefaultRules.
func NewRouter(rules ...Rule) *Router {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Router{rules: rules}
}

// Classify maps an utterance to an agent label. Matching is
// case-insensitive; empty or whitespace-only input, and input matching
// no rule, falls through to the general assistant.
func (r *Router) Classify(utterance string) domain.IntentLabel {
	u := strings.ToLower(strings.TrimSpace(utterance))
	if u == "" {
		return domain.LabelGeneral
	}
	for _, rule := range r.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(u, kw) {
				return rule.Label
			}
		}
	}
	return domain.LabelGeneral
}

// DefaultRules is the built-in rule table. Order encodes priority:
// weather keywords are checked before news, so "latest weather" routes
// to the weather agent.
func DefaultRules() []Rule {
	return []Rule{
		{Label: domain.LabelWeather, Keywords: []string{"weather", "temperature", "forecast"}},
		{Label: domain.LabelEmail, Keywords: []string{"email", "send", "mail"}},
		{Label: domain.LabelTranslator, Keywords: []string{"translate", "translation"}},
		{Label: domain.LabelNews, Keywords: []string{"news", "latest", "headlines"}},
		{Label: domain.LabelCrypto, Keywords: []string{"crypto", "bitcoin", "btc", "ethereum", "eth", "solana", "sol", "price"}},
		{Label: domain.LabelHealth, Keywords: []string{"health", "medical", "medication", "symptom", "medicine", "pain", "migraine", "headache"}},
		{Label: domain.LabelMotivation, Keywords: []string{"motivation", "inspire", "quote", "motivational", "encourage"}},
	}
}
