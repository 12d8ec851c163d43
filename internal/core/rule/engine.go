package rule

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"httprule/internal/core/match"
	"httprule/internal/core/request"
	"httprule/internal/pkg/errs"
	"httprule/internal/pkg/logger"
)

// Engine holds rules in registration order. Rules must be added before the
// engine is used for transforms.
type Engine struct {
	rules   []Rule
	matcher *match.Matcher
	log     *logger.Logger
}

// NewEngine creates an empty engine. A nil matcher uses match.Default().
func NewEngine(m *match.Matcher, log *logger.Logger) *Engine {
	if m == nil {
		m = match.Default()
	}
	return &Engine{
		rules:   make([]Rule, 0),
		matcher: m,
		log:     logger.OrNop(log).Named("engine"),
	}
}

// Add validates and appends rules. Nothing is appended if any rule is
// invalid.
func (e *Engine) Add(rules ...Rule) error {
	for i, r := range rules {
		if err := r.Validate(e.matcher); err != nil {
			return errs.Prepend(fmt.Sprintf("rule %d", len(e.rules)+i), err)
		}
	}
	e.rules = append(e.rules, rules...)
	return nil
}

// Rules returns a copy of the registered rules.
func (e *Engine) Rules() []Rule {
	return slices.Clone(e.rules)
}

func (e *Engine) Len() int { return len(e.rules) }

// MatchCondition reports whether req satisfies every condition key of r.
func (e *Engine) MatchCondition(req *request.Request, r Rule) (bool, error) {
	if r.Conditions == nil {
		return true, nil
	}
	for _, key := range r.keys() {
		values := r.Conditions[key]
		var (
			ok  bool
			err error
		)
		switch key {
		case KeyDomain:
			ok, err = e.matcher.MatchAny(match.Host, values, req.Domain())
		case KeyPath:
			ok, err = e.matcher.MatchAny(match.Path, values, req.Path())
		case KeyMethod:
			ok = slices.Contains(values, req.Method())
		default:
			return false, unsupportedKey(key)
		}
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// DoActions runs r's actions in order and stops at the first violation.
func (e *Engine) DoActions(req *request.Request, r Rule) error {
	for _, a := range r.Actions {
		if err := a.Apply(req); err != nil {
			return err
		}
	}
	return nil
}

// Apply runs every rule in order: match, then act. A rule sees the mutations
// of the rules before it. It returns how many rules matched.
func (e *Engine) Apply(req *request.Request) (int, error) {
	matched := 0
	for i, r := range e.rules {
		ok, err := e.MatchCondition(req, r)
		if err != nil {
			return matched, errs.Prepend(fmt.Sprintf("rule %d", i), err)
		}
		if !ok {
			continue
		}
		matched++
		e.log.Debug("Rule matched",
			zap.Int("rule", i),
			zap.String("method", req.Method()),
			zap.String("url", req.URL()),
			zap.Int("actions", len(r.Actions)),
		)
		if err := e.DoActions(req, r); err != nil {
			if errs.IsViolation(err) {
				e.log.Warn("Rule violated", zap.Int("rule", i), zap.Error(err))
			}
			return matched, err
		}
	}
	return matched, nil
}
