package action

import (
	"httprule/internal/core/request"
	"httprule/internal/pkg/errs"
)

type hasCookie struct {
	key string
}

func HasCookie(key string) Action {
	return &hasCookie{key: key}
}

func (a *hasCookie) Name() string { return NameHasCookie }
func (a *hasCookie) Kind() Kind   { return Assertor }

func (a *hasCookie) Apply(req *request.Request) error {
	if !req.HasCookie(a.key) {
		return errs.Violationf("request does not have cookie: %s", a.key)
	}
	return nil
}

func (a *hasCookie) String() string { return NameHasCookie + "(" + a.key + ")" }

type hasCookieWithValues struct {
	key    string
	values []string
}

func HasCookieWithValues(key string, values []string) Action {
	return &hasCookieWithValues{key: key, values: values}
}

func (a *hasCookieWithValues) Name() string { return NameHasCookieWithValues }
func (a *hasCookieWithValues) Kind() Kind   { return Assertor }

func (a *hasCookieWithValues) Apply(req *request.Request) error {
	if !req.HasCookieWithValues(a.key, a.values) {
		return errs.Violationf("request cookie %s is missing or not one of %s", a.key, formatList(a.values))
	}
	return nil
}

func (a *hasCookieWithValues) String() string {
	return NameHasCookieWithValues + "(" + a.key + ", " + formatList(a.values) + ")"
}
