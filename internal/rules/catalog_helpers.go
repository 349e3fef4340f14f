package rules

import (
	"regexp"
	"strings"

	"github.com/syrin-labs/mcplint/internal/model"
)

var identifierWordPattern = regexp.MustCompile(`[A-Za-z][a-z]*|[A-Z]+(?:[a-z]*)?|[0-9]+`)

// splitIdentifier breaks a field or tool name into lowercase word tokens on
// both camelCase boundaries and separators (underscore, dash, space).
func splitIdentifier(name string) []string {
	name = strings.ReplaceAll(name, "-", "_")
	name = strings.ReplaceAll(name, " ", "_")
	var out []string
	for _, part := range strings.Split(name, "_") {
		for _, w := range identifierWordPattern.FindAllString(part, -1) {
			out = append(out, strings.ToLower(w))
		}
	}
	return out
}

// isBroadType reports whether t is one of the types too permissive to be
// self-documenting (string, any, object).
func isBroadType(t model.FieldType) bool {
	return t == model.TypeString || t == model.TypeAny || t == model.TypeObject
}

// hasConstraint reports whether a field carries any of the signals that
// make a broad type acceptable: a description, an enum, a pattern, or an
// example value.
func hasConstraint(f model.FieldSpec) bool {
	return strings.TrimSpace(f.Description) != "" ||
		len(f.Enum) > 0 ||
		strings.TrimSpace(f.Pattern) != "" ||
		f.Example != nil
}

func containsAnyToken(tokens []string, set map[string]bool) bool {
	for _, t := range tokens {
		if set[t] {
			return true
		}
	}
	return false
}

func toTokenSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

var mutationVerbs = toTokenSet("create", "update", "delete", "remove", "set", "write",
	"modify", "add", "insert", "put", "save", "destroy", "cancel", "revoke")

var stateChangeTokens = toTokenSet("success", "id", "status", "ok", "result", "updated", "deleted", "created")

var displayOnlyTokens = toTokenSet("message", "text", "label", "title", "summary", "caption")

var userInputTokens = toTokenSet("name", "email", "phone", "address", "query", "search",
	"input", "message", "comment", "note", "username", "location")

var vagueVerbs = toTokenSet("handle", "process", "manage", "do", "perform", "deal")

var concreteNouns = toTokenSet("user", "order", "payment", "file", "email", "account",
	"invoice", "product", "item", "document", "message", "ticket", "session")

// sensitiveKeywords lists both merged and split forms of each compound term
// (e.g. "apikey" and "api"/"key") since callers match it against
// splitIdentifier's output, which always separates camelCase/snake_case
// names into individual word tokens — "api_key" never reaches this set as
// one token, only as "api" and "key".
var sensitiveKeywords = toTokenSet("password", "secret", "token", "apikey", "accesskey",
	"privatekey", "auth", "credential", "passphrase", "api", "key", "access", "private")

var domainConcepts = map[string]string{
	"location": "location", "lat": "location", "lng": "location", "address": "location",
	"user": "user", "userid": "user", "username": "user",
	"email": "email",
	"phone": "phone", "phonenumber": "phone",
	"name": "name",
	"id": "id",
}

// domainConceptOf resolves a field name to a coarse domain concept bucket,
// or "" if it matches none of the recognized ones.
func domainConceptOf(name string) string {
	for _, tok := range splitIdentifier(name) {
		if c, ok := domainConcepts[tok]; ok {
			return c
		}
	}
	return ""
}

// schemaDepth returns the maximum nesting depth of an object/array field,
// where a field with no Properties has depth 0.
func schemaDepth(f model.FieldSpec) int {
	if len(f.Properties) == 0 {
		return 0
	}
	max := 0
	for _, p := range f.Properties {
		if d := schemaDepth(p); d > max {
			max = d
		}
	}
	return max + 1
}

// nameOrDescriptionMentions reports whether any token in set appears in the
// field's name or description.
func nameOrDescriptionMentions(f model.FieldSpec, set map[string]bool) bool {
	if containsAnyToken(splitIdentifier(f.Name), set) {
		return true
	}
	return containsAnyToken(splitIdentifier(f.Description), set)
}

// flatten walks Outputs/Inputs plus their nested Properties.
func flatten(fields []model.FieldSpec) []model.FieldSpec {
	var out []model.FieldSpec
	var walk func([]model.FieldSpec)
	walk = func(fs []model.FieldSpec) {
		for _, f := range fs {
			out = append(out, f)
			if len(f.Properties) > 0 {
				walk(f.Properties)
			}
		}
	}
	walk(fields)
	return out
}
