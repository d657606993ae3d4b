package scope

import (
	"strings"
)

type Scope string

const (
	InScope    Scope = "in_scope"
	OutOfScope Scope = "out_of_scope"
)

// Category is the closed set of in-scope question categories.
type Category string

const (
	CategoryStatistics         Category = "statistics"
	CategoryRegistrationStatus Category = "registration_status"
	CategoryTravelLogistics    Category = "travel_logistics"
	CategoryProfilesRoles      Category = "profiles_roles"
	CategoryTemporalPatterns   Category = "temporal_patterns"
	CategoryDataQuality        Category = "data_quality"
)

// Decision is the classifier output. It is computed deterministically before
// any external call is made.
type Decision struct {
	Scope          Scope
	Category       Category
	OutOfScopeType string
}

// Rule is one stage of the classification cascade. Apply returns a decision
// and whether the stage was decisive for this question.
type Rule struct {
	Name  string
	Apply func(q string) (Decision, bool)
}

// Cascade is the fixed precedence order of the classifier, evaluated
// first-match-wins. The order is load-bearing: the allow-list must run
// before the deny and bucket stages because legitimate analytic phrasing
// shares vocabulary with blocked domains.
var Cascade = []Rule{
	{Name: "allow_list", Apply: matchAllowList},
	{Name: "deny_phrases", Apply: matchDenyPhrases},
	{Name: "mutation_requests", Apply: matchMutationRequest},
	{Name: "keyword_buckets", Apply: matchKeywordBuckets},
	{Name: "category_scoring", Apply: scoreCategory},
}

// Classify runs the cascade over the lower-cased, trimmed question text.
// The final stage always decides, so every question gets a decision.
func Classify(question string) Decision {
	q := strings.ToLower(strings.TrimSpace(question))
	for _, rule := range Cascade {
		if d, ok := rule.Apply(q); ok {
			return d
		}
	}
	// Unreachable: category_scoring is always decisive.
	return Decision{Scope: InScope, Category: CategoryStatistics}
}

func matchAllowList(q string) (Decision, bool) {
	for _, a := range allowPatterns {
		if a.re.MatchString(q) {
			return Decision{Scope: InScope, Category: a.category}, true
		}
	}
	return Decision{}, false
}

func matchDenyPhrases(q string) (Decision, bool) {
	for _, d := range denyGroups {
		for _, re := range d.patterns {
			if !re.MatchString(q) {
				continue
			}
			// Escape hatch: a deny phrase co-occurring with unambiguous
			// attendee-domain context falls through to later stages.
			if d.overridable && hasDomainContext(q) {
				continue
			}
			return Decision{Scope: OutOfScope, OutOfScopeType: d.name}, true
		}
	}
	return Decision{}, false
}

func matchMutationRequest(q string) (Decision, bool) {
	verb := false
	for _, v := range mutationVerbs {
		if containsWord(q, v) {
			verb = true
			break
		}
	}
	if !verb {
		return Decision{}, false
	}
	for _, n := range datasetNouns {
		if strings.Contains(q, n) {
			return Decision{Scope: OutOfScope, OutOfScopeType: "mutation_request"}, true
		}
	}
	return Decision{}, false
}

func matchKeywordBuckets(q string) (Decision, bool) {
	for _, b := range keywordBuckets {
		for _, term := range b.terms {
			if !strings.Contains(q, term) {
				continue
			}
			// A strong bucket disqualifies unconditionally. A weak bucket
			// disqualifies only when the question lacks attendee-domain
			// context tokens.
			if b.strength == bucketStrong || !hasDomainContext(q) {
				return Decision{Scope: OutOfScope, OutOfScopeType: b.name}, true
			}
		}
	}
	return Decision{}, false
}

// scoreCategory picks the in-scope category with the most hint-term hits.
// Zero or tied scores default to statistics. Always decisive.
func scoreCategory(q string) (Decision, bool) {
	best := CategoryStatistics
	bestScore := 0
	for _, c := range categoryOrder {
		score := 0
		for _, hint := range categoryHints[c] {
			if containsWord(q, hint) {
				score++
			}
		}
		if score > bestScore {
			best = c
			bestScore = score
		}
	}
	return Decision{Scope: InScope, Category: best}, true
}

func hasDomainContext(q string) bool {
	for _, t := range domainContextTokens {
		if strings.Contains(q, t) {
			return true
		}
	}
	return false
}

// containsWord matches term on word boundaries so "count" doesn't fire inside
// "country". A term edge that is itself not a word character (trailing space
// in a phrase hint) needs no boundary on that side.
func containsWord(q, term string) bool {
	idx := 0
	for {
		i := strings.Index(q[idx:], term)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(term)
		beforeOK := start == 0 || !isWordChar(q[start-1]) || !isWordChar(term[0])
		afterOK := end == len(q) || !isWordChar(q[end]) || !isWordChar(term[len(term)-1])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_'
}
