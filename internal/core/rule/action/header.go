package action

import (
	"httprule/internal/core/request"
	"httprule/internal/pkg/errs"
)

type addHeader struct {
	key   string
	value HeaderValue
}

// AddHeader sets key, overwriting an existing value. Computed values are
// evaluated on every Apply.
func AddHeader(key string, value HeaderValue) Action {
	return &addHeader{key: key, value: value}
}

func (a *addHeader) Name() string { return NameAddHeader }
func (a *addHeader) Kind() Kind   { return Mutator }

func (a *addHeader) Apply(req *request.Request) error {
	req.AddHeader(a.key, a.value.Resolve())
	return nil
}

func (a *addHeader) String() string {
	return NameAddHeader + "(" + a.key + ", " + a.value.String() + ")"
}

type removeHeader struct {
	key string
}

func RemoveHeader(key string) Action {
	return &removeHeader{key: key}
}

func (a *removeHeader) Name() string { return NameRemoveHeader }
func (a *removeHeader) Kind() Kind   { return Mutator }

func (a *removeHeader) Apply(req *request.Request) error {
	req.RemoveHeader(a.key)
	return nil
}

func (a *removeHeader) String() string { return NameRemoveHeader + "(" + a.key + ")" }

type hasHeader struct {
	key string
}

// HasHeader requires the exact header name to be present.
func HasHeader(key string) Action {
	return &hasHeader{key: key}
}

func (a *hasHeader) Name() string { return NameHasHeader }
func (a *hasHeader) Kind() Kind   { return Assertor }

func (a *hasHeader) Apply(req *request.Request) error {
	if !req.HasHeader(a.key) {
		return errs.Violationf("request does not have header: %s", a.key)
	}
	return nil
}

func (a *hasHeader) String() string { return NameHasHeader + "(" + a.key + ")" }

type hasHeaderWithValues struct {
	key    string
	values []string
}

// HasHeaderWithValues requires the header to be present with one of values.
func HasHeaderWithValues(key string, values []string) Action {
	return &hasHeaderWithValues{key: key, values: values}
}

func (a *hasHeaderWithValues) Name() string { return NameHasHeaderWithValues }
func (a *hasHeaderWithValues) Kind() Kind   { return Assertor }

func (a *hasHeaderWithValues) Apply(req *request.Request) error {
	if !req.HasHeaderWithValues(a.key, a.values) {
		return errs.Violationf("request header %s is missing or not one of %s", a.key, formatList(a.values))
	}
	return nil
}

func (a *hasHeaderWithValues) String() string {
	return NameHasHeaderWithValues + "(" + a.key + ", " + formatList(a.values) + ")"
}
