package rules

import "strings"

// Filter decides whether a rule code runs. A non-empty Allow list wins
// outright (deny is ignored); otherwise any code in Deny is excluded.
type Filter struct {
	Allow map[string]bool
	Deny  map[string]bool
}

// Allows reports whether the given rule code should run under this filter.
func (f Filter) Allows(code string) bool {
	if len(f.Allow) > 0 {
		return f.Allow[code]
	}
	if len(f.Deny) > 0 {
		return !f.Deny[code]
	}
	return true
}

// ParseSelectors turns a list like ["E100", "-W112", "E101"] into a Filter.
// Plain entries build the allow-list; "-"-prefixed entries build the
// deny-list. If any plain entry is present, the deny entries are parsed
// but never consulted (allow-list wins).
func ParseSelectors(selectors []string) Filter {
	f := Filter{}
	for _, s := range selectors {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if strings.HasPrefix(s, "-") {
			code := strings.TrimSpace(strings.TrimPrefix(s, "-"))
			if code == "" {
				continue
			}
			if f.Deny == nil {
				f.Deny = map[string]bool{}
			}
			f.Deny[strings.ToUpper(code)] = true
			continue
		}
		if f.Allow == nil {
			f.Allow = map[string]bool{}
		}
		f.Allow[strings.ToUpper(s)] = true
	}
	return f
}
