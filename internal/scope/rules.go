package scope

import "regexp"

// The tables below are policy data, not algorithm: the cascade order and the
// strong/weak split are heuristic and intentionally replaceable. Bias runs
// toward rejecting rather than leaking.

type allowRule struct {
	re       *regexp.Regexp
	category Category
}

// allowPatterns short-circuit to in_scope: legitimate analytic phrasings
// that share vocabulary with blocked domains and would otherwise trip the
// deny or bucket stages.
var allowPatterns = []allowRule{
	{regexp.MustCompile(`top\s+\d+\s+compan`), CategoryStatistics},
	{regexp.MustCompile(`how many (unique |different )?compan`), CategoryStatistics},
	{regexp.MustCompile(`(count|number) of (unique |different )?compan`), CategoryStatistics},
	{regexp.MustCompile(`compan(y|ies) (are )?represented`), CategoryStatistics},
	{regexp.MustCompile(`who (are|is) (the )?(vip|sponsor|speaker)`), CategoryProfilesRoles},
	{regexp.MustCompile(`(list|show).{0,20}\b(vip|sponsor|speaker)s?\b`), CategoryProfilesRoles},
	{regexp.MustCompile(`attendees? (from|at|of|by) `), CategoryProfilesRoles},
	{regexp.MustCompile(`registration (status|count|numbers|breakdown)`), CategoryRegistrationStatus},
	{regexp.MustCompile(`(arrival|departure) (date|day|pattern|schedule)`), CategoryTravelLogistics},
}

type denyGroup struct {
	name        string
	overridable bool // attendee-domain context excuses the match
	patterns    []*regexp.Regexp
}

// denyGroups are exact adversarial phrasings that must never reach a
// completion call: general trivia, questions about the system itself, and
// speculative/predictive requests.
var denyGroups = []denyGroup{
	{
		name:        "system",
		overridable: false,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(admin|root|system|database)\s+(password|credential|secret)`),
			regexp.MustCompile(`what (model|llm|ai) are you`),
			regexp.MustCompile(`(system|your)\s+prompt`),
			regexp.MustCompile(`how (do|were) you (work|built|trained)`),
			regexp.MustCompile(`\bignore (all )?(previous|prior) instructions\b`),
			regexp.MustCompile(`\b(api|secret|access)\s+key\b`),
		},
	},
	{
		name:        "speculative",
		overridable: true,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(predict|forecast|guess)\b`),
			regexp.MustCompile(`will .{0,40}(attend|register|come|show up) next`),
			regexp.MustCompile(`what (will|would) happen`),
		},
	},
	{
		name:        "general_knowledge",
		overridable: true,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bcapital of\b`),
			regexp.MustCompile(`\bweather\b`),
			regexp.MustCompile(`who won\b`),
			regexp.MustCompile(`\brecipe\b`),
			regexp.MustCompile(`\b(tallest|largest|oldest) (building|country|city|mountain)\b`),
			regexp.MustCompile(`tell me a (joke|story)`),
		},
	},
}

// mutationVerbs + datasetNouns block write-style requests against the
// read-only dataset. Both must be present.
var mutationVerbs = []string{
	"cancel", "delete", "update", "modify", "edit", "restart",
	"drop", "insert", "overwrite", "erase", "change",
}

var datasetNouns = []string{
	"registration", "record", "table", "status", "database",
	"attendee list", "entry", "row",
}

type bucketStrength int

const (
	bucketWeak bucketStrength = iota
	bucketStrong
)

type keywordBucket struct {
	name     string
	strength bucketStrength
	terms    []string
}

// keywordBuckets cover whole out-of-domain topics. Strong buckets are
// disqualifying unconditionally; weak buckets only when the question lacks
// attendee-domain context (weak matching alone produces false positives on
// legitimate analytic phrasing).
var keywordBuckets = []keywordBucket{
	{"system", bucketStrong, []string{
		"server config", "source code", "log file", "environment variable",
		"sql injection", "shell command",
	}},
	{"personal_private", bucketStrong, []string{
		"home address", "medical", "health condition", "religion",
		"political", "family member", "relationship status",
	}},
	{"legal_compliance", bucketStrong, []string{
		"lawsuit", "legal action", "gdpr fine", "liability",
	}},
	{"finance", bucketWeak, []string{
		"revenue", "salary", "invoice", "profit", "budget",
		"pricing", "payment details",
	}},
	{"hotel_logistics", bucketWeak, []string{
		"room rate", "hotel price", "booking fee", "upgrade my room",
	}},
	{"marketing", bucketWeak, []string{
		"campaign", "newsletter", "advertis", "promotion", "lead generation",
	}},
	{"general_knowledge", bucketWeak, []string{
		"stock market", "news today", "sports", "movie", "celebrity",
	}},
}

// domainContextTokens mark a question as plausibly about the attendee
// dataset; their presence excuses weak-bucket and overridable deny matches.
var domainContextTokens = []string{
	"attendee", "participant", "delegate", "registered", "registration",
	"conference", "event", "badge", "check-in", "checked in",
	"speaker", "sponsor", "vip", "company", "companies",
	"arrival", "departure", "email", "phone",
}

// categoryOrder fixes tie-breaking for category scoring: earlier wins on
// equal score, so statistics is the default.
var categoryOrder = []Category{
	CategoryStatistics,
	CategoryRegistrationStatus,
	CategoryTravelLogistics,
	CategoryProfilesRoles,
	CategoryTemporalPatterns,
	CategoryDataQuality,
}

var categoryHints = map[Category][]string{
	CategoryStatistics: {
		"how many", "count", "total", "average", "unique", "top ",
		"most", "least", "distribution", "percentage", "breakdown", "per ",
	},
	CategoryRegistrationStatus: {
		"status", "confirmed", "cancelled", "canceled", "pending",
		"waitlist", "checked in", "check-in", "registered", "no-show",
	},
	CategoryTravelLogistics: {
		"arrival", "arrive", "departure", "depart", "flight", "hotel",
		"travel", "staying", "accommodation",
	},
	CategoryProfilesRoles: {
		"who is", "who are", "job title", "role", "speaker", "sponsor",
		"vip", "delegate", "profile", "works at", "from company",
	},
	CategoryTemporalPatterns: {
		"trend", "over time", "per day", "per week", "per month",
		"daily", "weekly", "monthly", "peak", "when did", "busiest",
	},
	CategoryDataQuality: {
		"missing", "empty", "duplicate", "null", "incomplete",
		"invalid", "blank", "malformed",
	},
}
