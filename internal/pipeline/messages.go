package pipeline

// Fixed user-facing messages. Internal errors are never surfaced verbatim;
// every failure path maps onto one of these.
const (
	// PIIPolicyMessage is returned whenever the PII guard blocks either the
	// question or the synthesized statement.
	PIIPolicyMessage = "I can't help with requests involving personal or sensitive information such as contact details or payment data."

	// FallbackMessage covers synthesis, safety, and store failures.
	FallbackMessage = "I wasn't able to answer that one. Please try rephrasing your question."

	// TimeoutMessage covers executions abandoned at the budget.
	TimeoutMessage = "The data service is busy right now. Please try again in a moment."
)

// refusalMessages map the classifier's out-of-scope type to its fixed reply.
var refusalMessages = map[string]string{
	"system":            "I can only answer questions about the attendee dataset, not about the system itself.",
	"speculative":       "I can only report what's in the attendee data, not make predictions.",
	"general_knowledge": "That's outside the attendee data I can answer questions about.",
	"mutation_request":  "I can only read the attendee data; I can't change, cancel, or delete anything.",
}

const defaultRefusal = "That question is outside the attendee data I can help with."

func refusalFor(outOfScopeType string) string {
	if msg, ok := refusalMessages[outOfScopeType]; ok {
		return msg
	}
	return defaultRefusal
}
