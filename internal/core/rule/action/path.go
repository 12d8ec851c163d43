package action

import "httprule/internal/core/request"

type updatePath struct {
	path string
}

// UpdatePath replaces the URL path, leaving query and fragment alone.
func UpdatePath(path string) Action {
	return &updatePath{path: path}
}

func (a *updatePath) Name() string { return NameUpdatePath }
func (a *updatePath) Kind() Kind   { return Mutator }

func (a *updatePath) Apply(req *request.Request) error {
	req.SetPath(a.path)
	return nil
}

func (a *updatePath) String() string { return NameUpdatePath + "(" + a.path + ")" }
