// Package rule evaluates condition/action rules against a request.
package rule

import (
	"slices"

	"httprule/internal/core/match"
	"httprule/internal/core/rule/action"
	"httprule/internal/pkg/errs"
)

// Condition keys.
const (
	KeyDomain = "domain"
	KeyPath   = "path"
	KeyMethod = "method"
)

// Conditions maps a condition key to its alternatives. Keys are ANDed, the
// values of one key are ORed.
type Conditions map[string][]string

// Rule is a configuration entity: nil Conditions always match.
type Rule struct {
	Conditions Conditions
	Actions    []action.Action
}

// Validate rejects unknown condition keys and malformed patterns.
func (r Rule) Validate(m *match.Matcher) error {
	for _, key := range r.keys() {
		switch key {
		case KeyDomain, KeyPath:
			kind := match.Host
			if key == KeyPath {
				kind = match.Path
			}
			for _, p := range r.Conditions[key] {
				if err := m.Validate(kind, p); err != nil {
					return err
				}
			}
		case KeyMethod:
		default:
			return unsupportedKey(key)
		}
	}
	for i, a := range r.Actions {
		if a == nil {
			return errs.InvalidValuef("action %d is nil", i)
		}
	}
	return nil
}

// keys returns condition keys in a fixed order so evaluation and error
// reporting do not depend on map iteration.
func (r Rule) keys() []string {
	keys := make([]string, 0, len(r.Conditions))
	for k := range r.Conditions {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func unsupportedKey(key string) error {
	return errs.InvalidValuef("unsupported condition: %s, should be \"domain\"|\"path\"|\"method\"", key)
}
