// Package match implements the glob patterns used by rule conditions.
//
// A pattern is matched against the whole candidate. '*' matches any run of
// characters inside one segment (a host label or a path segment), '**'
// matches across segments. Everything else is literal. Host patterns are
// case-insensitive, path patterns are not.
package match

import (
	"strings"

	"github.com/dlclark/regexp2"
	lru "github.com/hashicorp/golang-lru/v2"

	"httprule/internal/pkg/errs"
)

// Kind selects the segment separator and case handling.
type Kind int

const (
	Host Kind = iota
	Path
)

func (k Kind) String() string {
	if k == Path {
		return "path"
	}
	return "domain"
}

func (k Kind) separator() byte {
	if k == Path {
		return '/'
	}
	return '.'
}

const DefaultCacheSize = 512

// Matcher compiles patterns on first use and keeps them in an LRU cache.
// It is safe for concurrent use.
type Matcher struct {
	cache *lru.Cache[string, *regexp2.Regexp]
}

// New returns a Matcher caching up to size compiled patterns.
func New(size int) *Matcher {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, *regexp2.Regexp](size)
	if err != nil {
		// only returned for non-positive sizes
		panic(err)
	}
	return &Matcher{cache: cache}
}

var defaultMatcher = New(DefaultCacheSize)

// Default returns the process-wide matcher.
func Default() *Matcher { return defaultMatcher }

// Match reports whether candidate matches pattern.
func (m *Matcher) Match(kind Kind, pattern, candidate string) (bool, error) {
	re, err := m.compile(kind, pattern)
	if err != nil {
		return false, err
	}
	ok, err := re.MatchString(candidate)
	if err != nil {
		return false, errs.InvalidValuef("match %s pattern %q: %v", kind, pattern, err)
	}
	return ok, nil
}

// MatchAny reports whether candidate matches one of patterns.
func (m *Matcher) MatchAny(kind Kind, patterns []string, candidate string) (bool, error) {
	for _, p := range patterns {
		ok, err := m.Match(kind, p, candidate)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// Validate compiles pattern without matching.
func (m *Matcher) Validate(kind Kind, pattern string) error {
	_, err := m.compile(kind, pattern)
	return err
}

func (m *Matcher) compile(kind Kind, pattern string) (*regexp2.Regexp, error) {
	key := kind.String() + "\x00" + pattern
	if re, ok := m.cache.Get(key); ok {
		return re, nil
	}
	if pattern == "" {
		return nil, errs.InvalidValuef("empty %s pattern", kind)
	}

	opts := regexp2.None
	if kind == Host {
		opts |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(toRegex(pattern, kind.separator()), opts)
	if err != nil {
		return nil, errs.InvalidValuef("invalid %s pattern %q: %v", kind, pattern, err)
	}
	m.cache.Add(key, re)
	return re, nil
}

func toRegex(pattern string, sep byte) string {
	var b strings.Builder
	b.WriteString(`\A`)
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == '*' {
			if i+1 < len(pattern) && pattern[i+1] == '*' {
				b.WriteString(`.*`)
				i++
				continue
			}
			b.WriteString(`[^`)
			b.WriteString(regexp2.Escape(string(sep)))
			b.WriteString(`]*`)
			continue
		}
		j := i
		for j < len(pattern) && pattern[j] != '*' {
			j++
		}
		b.WriteString(regexp2.Escape(pattern[i:j]))
		i = j - 1
	}
	b.WriteString(`\z`)
	return b.String()
}
