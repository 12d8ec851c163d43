package action

import "httprule/internal/core/request"

type removeAllURLQueryString struct{}

func RemoveAllURLQueryString() Action {
	return removeAllURLQueryString{}
}

func (removeAllURLQueryString) Name() string { return NameRemoveAllURLQueryString }
func (removeAllURLQueryString) Kind() Kind   { return Mutator }

func (removeAllURLQueryString) Apply(req *request.Request) error {
	req.RemoveAllURLQueryString()
	return nil
}

func (removeAllURLQueryString) String() string { return NameRemoveAllURLQueryString + "()" }

type addURLQueryString struct {
	key, value string
}

func AddURLQueryString(key, value string) Action {
	return &addURLQueryString{key: key, value: value}
}

func (a *addURLQueryString) Name() string { return NameAddURLQueryString }
func (a *addURLQueryString) Kind() Kind   { return Mutator }

func (a *addURLQueryString) Apply(req *request.Request) error {
	req.AddURLQueryString(a.key, a.value)
	return nil
}

func (a *addURLQueryString) String() string {
	return NameAddURLQueryString + "(" + a.key + ", " + a.value + ")"
}

type deleteURLQueryString struct {
	key string
}

func DeleteURLQueryString(key string) Action {
	return &deleteURLQueryString{key: key}
}

func (a *deleteURLQueryString) Name() string { return NameDeleteURLQueryString }
func (a *deleteURLQueryString) Kind() Kind   { return Mutator }

func (a *deleteURLQueryString) Apply(req *request.Request) error {
	req.DeleteURLQueryString(a.key)
	return nil
}

func (a *deleteURLQueryString) String() string { return NameDeleteURLQueryString + "(" + a.key + ")" }
