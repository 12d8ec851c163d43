// Package action holds the mutator and assertor actions a rule runs against
// a request once its conditions match.
package action

import (
	"fmt"
	"strings"

	"httprule/internal/core/request"
	"httprule/internal/pkg/errs"
)

// Kind separates actions that change the request from actions that only
// check it.
type Kind int

const (
	// Mutator side-effects the request and never fails.
	Mutator Kind = iota + 1
	// Assertor fails with a RuleViolation when its predicate is false.
	Assertor
)

func (k Kind) String() string {
	switch k {
	case Mutator:
		return "mutator"
	case Assertor:
		return "assertor"
	default:
		return "unknown"
	}
}

// Action is one unit of rule behavior.
type Action interface {
	Name() string
	Kind() Kind
	Apply(req *request.Request) error
}

// Action identifiers as used in rule configuration.
const (
	NameUpdatePath              = "updatePath"
	NameHasCookie               = "hasCookie"
	NameHasCookieWithValues     = "hasCookieWithValues"
	NameRefererBelongsTo        = "refererBelongsTo"
	NameAddHeader               = "addHeader"
	NameRemoveHeader            = "removeHeader"
	NameRemoveAllURLQueryString = "removeAllURLQueryString"
	NameAddURLQueryString       = "addURLQueryString"
	NameDeleteURLQueryString    = "deleteURLQueryString"
	NameHasHeader               = "hasHeader"
	NameHasHeaderWithValues     = "hasHeaderWithValues"
	NameAllowDomains            = "allowDomains"
)

// Names lists every identifier New accepts.
var Names = []string{
	NameUpdatePath,
	NameHasCookie,
	NameHasCookieWithValues,
	NameRefererBelongsTo,
	NameAddHeader,
	NameRemoveHeader,
	NameRemoveAllURLQueryString,
	NameAddURLQueryString,
	NameDeleteURLQueryString,
	NameHasHeader,
	NameHasHeaderWithValues,
	NameAllowDomains,
}

// New builds the named action from loosely typed arguments, as they arrive
// from decoded configuration. Argument types are checked here so a bad rule
// never reaches the engine.
func New(name string, args ...any) (Action, error) {
	switch name {
	case NameUpdatePath:
		if err := arity(name, args, 1); err != nil {
			return nil, err
		}
		path, err := stringArg("path", args[0])
		if err != nil {
			return nil, err
		}
		return UpdatePath(path), nil

	case NameHasCookie:
		if err := arity(name, args, 1); err != nil {
			return nil, err
		}
		key, err := stringArg("cookie key", args[0])
		if err != nil {
			return nil, err
		}
		return HasCookie(key), nil

	case NameHasCookieWithValues:
		if err := arity(name, args, 2); err != nil {
			return nil, err
		}
		key, err := stringArg("cookie key", args[0])
		if err != nil {
			return nil, err
		}
		values, err := stringsArg("cookie values", args[1])
		if err != nil {
			return nil, err
		}
		return HasCookieWithValues(key, values), nil

	case NameRefererBelongsTo:
		if err := arity(name, args, 1); err != nil {
			return nil, err
		}
		domain, err := stringArg("referer", args[0])
		if err != nil {
			return nil, err
		}
		return RefererBelongsTo(domain), nil

	case NameAddHeader:
		if err := arity(name, args, 2); err != nil {
			return nil, err
		}
		key, err := stringArg("header key", args[0])
		if err != nil {
			return nil, err
		}
		value, err := headerValueArg(args[1])
		if err != nil {
			return nil, err
		}
		return AddHeader(key, value), nil

	case NameRemoveHeader:
		if err := arity(name, args, 1); err != nil {
			return nil, err
		}
		key, err := stringArg("header key", args[0])
		if err != nil {
			return nil, err
		}
		return RemoveHeader(key), nil

	case NameRemoveAllURLQueryString:
		if err := arity(name, args, 0); err != nil {
			return nil, err
		}
		return RemoveAllURLQueryString(), nil

	case NameAddURLQueryString:
		if err := arity(name, args, 2); err != nil {
			return nil, err
		}
		key, err := stringArg("query key", args[0])
		if err != nil {
			return nil, err
		}
		value, err := stringArg("query value", args[1])
		if err != nil {
			return nil, err
		}
		return AddURLQueryString(key, value), nil

	case NameDeleteURLQueryString:
		if err := arity(name, args, 1); err != nil {
			return nil, err
		}
		key, err := stringArg("query key", args[0])
		if err != nil {
			return nil, err
		}
		return DeleteURLQueryString(key), nil

	case NameHasHeader:
		if err := arity(name, args, 1); err != nil {
			return nil, err
		}
		key, err := stringArg("header key", args[0])
		if err != nil {
			return nil, err
		}
		return HasHeader(key), nil

	case NameHasHeaderWithValues:
		if err := arity(name, args, 2); err != nil {
			return nil, err
		}
		key, err := stringArg("header key", args[0])
		if err != nil {
			return nil, err
		}
		values, err := stringsArg("header values", args[1])
		if err != nil {
			return nil, err
		}
		return HasHeaderWithValues(key, values), nil

	case NameAllowDomains:
		if err := arity(name, args, 1); err != nil {
			return nil, err
		}
		domains, err := stringsArg("domains", args[0])
		if err != nil {
			return nil, err
		}
		return AllowDomains(domains), nil

	default:
		return nil, errs.InvalidValuef("unsupported action: %s, should be one of %s", name, strings.Join(Names, "|"))
	}
}

func arity(name string, args []any, n int) error {
	if len(args) != n {
		return errs.InvalidValuef("%s expects %d argument(s), got %d", name, n, len(args))
	}
	return nil
}

func stringArg(what string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errs.InvalidValuef("invalid %s type: %T, should be string", what, v)
	}
	return s, nil
}

func stringsArg(what string, v any) ([]string, error) {
	switch list := v.(type) {
	case []string:
		out := make([]string, len(list))
		copy(out, list)
		return out, nil
	case []any:
		out := make([]string, 0, len(list))
		for i, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, errs.InvalidValuef("invalid %s[%d] type: %T, should be string", what, i, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, errs.InvalidValuef("invalid %s type: %T, should be an array of strings", what, v)
	}
}

func headerValueArg(v any) (HeaderValue, error) {
	switch hv := v.(type) {
	case string:
		return Literal(hv), nil
	case HeaderValue:
		return hv, nil
	case func() string:
		if hv == nil {
			return HeaderValue{}, errs.InvalidValuef("invalid header value: nil producer")
		}
		return Computed(hv), nil
	case func() any:
		if hv == nil {
			return HeaderValue{}, errs.InvalidValuef("invalid header value: nil producer")
		}
		return Computed(func() string { return fmt.Sprint(hv()) }), nil
	default:
		return HeaderValue{}, errs.InvalidValuef("invalid header value type: %T, should be string or producer", v)
	}
}

func formatList(values []string) string {
	return "[" + strings.Join(values, ", ") + "]"
}
