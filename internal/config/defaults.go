package config

const (
	DefaultHost        = "0.0.0.0"
	DefaultPort        = 8000
	DefaultEnvironment = "development"
	DefaultAPIPrefix   = "/api/v1"
	DefaultLogLevel    = "info"

	DefaultRateLimitPerMinute = 60

	DefaultAttendeeTable = "attendees"

	// Bounded executor wall-clock budget. Kept in the low-second range so a
	// slow store query never stalls the conversational surface.
	DefaultQueryTimeoutMs = 3000

	// Hard ceiling appended/clamped onto every executed statement.
	DefaultRowLimit = 50

	// Trailing conversation turns rendered into the synthesis prompt.
	DefaultHistoryWindow = 6

	DefaultCORSMaxAge = 300
)

var DefaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://localhost:8080",
}

// DefaultForbiddenColumns are dataset columns that must never appear in a
// synthesized statement. The synthesizer is instructed to omit them; the
// guard enforces it regardless.
var DefaultForbiddenColumns = []string{
	"email", "phone", "phone_number", "date_of_birth", "dob",
	"passport_number", "credit_card", "card_number", "billing_address",
	"ssn", "social_security_number", "password", "access_token",
}

// DefaultPIIKeywords are phrasings in question text that indicate a request
// for personally identifiable information.
var DefaultPIIKeywords = []string{
	"email", "e-mail", "phone", "credit card", "card number",
	"passport", "date of birth", "birthday", "ssn", "social security",
	"password", "billing address", "home address", "personal data",
}
