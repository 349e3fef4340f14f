package embeddings

// ConceptGroups are the fixed, build-time concept anchors: small bundles of
// exemplar phrases whose embeddings define a semantic neighborhood. They
// are package-level data, not configuration — a build-time constant table
// rather than something an operator tunes at runtime.
var ConceptGroups = map[string][]string{
	"USER_DATA": {
		"user input",
		"text typed by the user",
		"a question from the user",
		"user provided query",
		"message content from the user",
		"free-form user text",
		"the user's request",
	},
	"SENSITIVE": {
		"password",
		"secret value",
		"api key",
		"access token",
		"private key",
		"authentication credential",
		"login credentials",
		"security token",
	},
	"RETURNS_DATA": {
		"returns the requested data",
		"fetches and returns information",
		"retrieves a record",
		"looks up and returns results",
		"queries data and responds with it",
		"reads a value and returns it",
	},
	"IDEMPOTENT": {
		"safe to call multiple times",
		"idempotent operation",
		"repeating this has no additional effect",
		"calling it again produces the same result",
	},
	"MUTATION": {
		"creates a new record",
		"updates an existing resource",
		"deletes data",
		"modifies state",
		"writes a change",
		"performs an action that changes something",
	},
}

// Concept name constants, so rule code can refer to a concept without
// risking a typo'd string literal diverging from ConceptGroups' keys.
const (
	ConceptUserData    = "USER_DATA"
	ConceptSensitive   = "SENSITIVE"
	ConceptReturnsData = "RETURNS_DATA"
	ConceptIdempotent  = "IDEMPOTENT"
	ConceptMutation    = "MUTATION"
)
