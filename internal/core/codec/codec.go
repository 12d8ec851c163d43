// Package codec maps wire format names to parse/dump pairs for the request
// model.
package codec

import (
	"slices"
	"strings"

	"httprule/internal/core/request"
	"httprule/internal/pkg/errs"
)

// Format names a wire format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"

	DefaultFormat = FormatJSON
)

type (
	ParseFunc func(data []byte) (*request.Request, error)
	DumpFunc  func(req *request.Request) ([]byte, error)
)

// Codec is a parse/dump pair bound to one format.
type Codec struct {
	Parse ParseFunc
	Dump  DumpFunc
}

// Valid reports whether both halves are set.
func (c Codec) Valid() bool {
	return c.Parse != nil && c.Dump != nil
}

// Registry resolves format names to codecs. Registration is expected to
// finish before the registry is shared.
type Registry struct {
	codecs map[Format]Codec
}

// NewRegistry returns a registry holding the json and yaml codecs.
func NewRegistry() *Registry {
	r := &Registry{codecs: make(map[Format]Codec)}
	r.codecs[FormatJSON] = Codec{Parse: ParseJSON, Dump: DumpJSON}
	r.codecs[FormatYAML] = Codec{Parse: ParseYAML, Dump: DumpYAML}
	return r
}

// Register adds or replaces the codec for format.
func (r *Registry) Register(format Format, c Codec) error {
	if format == "" {
		return errs.InvalidValuef("empty format name")
	}
	if !c.Valid() {
		return errs.InvalidValuef("codec for %s must provide both parse and dump", format)
	}
	r.codecs[format] = c
	return nil
}

// Resolve returns the codec for name. An empty name resolves to json.
func (r *Registry) Resolve(name string) (Codec, error) {
	format := Format(name)
	if format == "" {
		format = DefaultFormat
	}
	c, ok := r.codecs[format]
	if !ok {
		return Codec{}, errs.InvalidValuef("unsupported format: %s, should be %s", name, r.describe())
	}
	return c, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.codecs[Format(name)]
	return ok
}

// Formats lists registered format names in sorted order.
func (r *Registry) Formats() []Format {
	out := make([]Format, 0, len(r.codecs))
	for f := range r.codecs {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

func (r *Registry) describe() string {
	names := make([]string, 0, len(r.codecs))
	for _, f := range r.Formats() {
		names = append(names, `"`+string(f)+`"`)
	}
	return strings.Join(names, "|")
}
