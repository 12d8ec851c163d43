package config

import (
	"httprule/internal/core/security"
	"httprule/internal/pkg/errs"
)

// Scanner builds the header scanner with the configured additions on top of
// the built-in rules.
func (c LogConfig) Scanner() (*security.Scanner, error) {
	s := security.NewScanner()
	for _, name := range c.SensitiveHeaders {
		s.AddSensitiveHeader(name)
	}
	for _, r := range c.MaskRules {
		replacement := r.Replacement
		if replacement == "" {
			replacement = "[REDACTED]"
		}
		if err := s.AddRule(r.Name, r.Pattern, replacement); err != nil {
			return nil, errs.InvalidValuef("invalid mask rule %s: %v", r.Name, err)
		}
	}
	return s, nil
}
