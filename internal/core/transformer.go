// Package core runs the parse → rules → dump pipeline in blocking,
// callback and buffered-stream modes.
package core

import (
	"fmt"

	"go.uber.org/zap"

	"httprule/internal/core/codec"
	"httprule/internal/core/match"
	"httprule/internal/core/request"
	"httprule/internal/core/rule"
	"httprule/internal/core/security"
	"httprule/internal/pkg/errs"
	"httprule/internal/pkg/logger"
	"httprule/internal/storage"
)

// Options configures a Transformer. The zero value is a json transformer on
// the OS filesystem with logging disabled.
type Options struct {
	Name   string
	Format string
	// Codec replaces the pair of the active format for the lifetime of the
	// transformer. Format then only labels it and need not be registered.
	Codec    *codec.Codec
	Registry *codec.Registry
	Storage  *storage.Storage
	Matcher  *match.Matcher
	// Scanner masks header values in debug logs. nil uses the built-in rules.
	Scanner *security.Scanner
	Logger  *logger.Logger
}

// Transformer owns one ordered rule list and applies it to request
// descriptors. Rules and codecs must be registered before the first
// transform call.
type Transformer struct {
	name     string
	format   codec.Format
	custom   *codec.Codec
	registry *codec.Registry
	storage  *storage.Storage
	engine   *rule.Engine
	scanner  *security.Scanner
	log      *logger.Logger
}

// New validates opts and returns a Transformer. An unknown format without a
// custom codec fails with InvalidValue.
func New(opts Options) (*Transformer, error) {
	t := &Transformer{
		name:     opts.Name,
		format:   codec.Format(opts.Format),
		registry: opts.Registry,
		storage:  opts.Storage,
		scanner:  opts.Scanner,
		log:      logger.OrNop(opts.Logger).Named("transformer"),
	}
	if t.format == "" {
		t.format = codec.DefaultFormat
	}
	if t.scanner == nil {
		t.scanner = security.NewScanner()
	}
	if t.registry == nil {
		t.registry = codec.NewRegistry()
	}
	if t.storage == nil {
		t.storage = storage.New(nil)
	}
	if opts.Codec != nil {
		if !opts.Codec.Valid() {
			return nil, errs.InvalidValuef("custom codec for %s must provide both parse and dump", t.format)
		}
		c := *opts.Codec
		t.custom = &c
	} else if _, err := t.registry.Resolve(string(t.format)); err != nil {
		return nil, err
	}
	t.engine = rule.NewEngine(opts.Matcher, opts.Logger)
	return t, nil
}

func (t *Transformer) Name() string { return t.name }

func (t *Transformer) Format() codec.Format { return t.format }

// AddRule registers one rule after validating it.
func (t *Transformer) AddRule(r rule.Rule) error {
	return t.engine.Add(r)
}

// AddRules registers rules in order; none are added if one is invalid.
func (t *Transformer) AddRules(rules []rule.Rule) error {
	return t.engine.Add(rules...)
}

// Rules returns a copy of the registered rules.
func (t *Transformer) Rules() []rule.Rule {
	return t.engine.Rules()
}

// Codec resolves the pair for format; "" means the instance format. The
// custom pair only answers for the instance format.
func (t *Transformer) Codec(format string) (codec.Codec, error) {
	f := codec.Format(format)
	if f == "" {
		f = t.format
	}
	if t.custom != nil && f == t.format {
		return *t.custom, nil
	}
	return t.registry.Resolve(string(f))
}

func (t *Transformer) resolveFormat(format string) codec.Format {
	if format == "" {
		return t.format
	}
	return codec.Format(format)
}

// ParseInput reads path and parses it with the instance codec.
func (t *Transformer) ParseInput(path string) (*request.Request, error) {
	c, err := t.Codec("")
	if err != nil {
		return nil, err
	}
	data, err := t.storage.ReadAll(path)
	if err != nil {
		return nil, err
	}
	return c.Parse(data)
}

// TransformRequest applies the rules to req in place.
func (t *Transformer) TransformRequest(req *request.Request) error {
	_, err := t.engine.Apply(req)
	return err
}

// TransformBytes parses data, applies the rules and dumps the result.
func (t *Transformer) TransformBytes(data []byte, format string) ([]byte, error) {
	tc := NewTransformContext(t.log, ModeSync, t.resolveFormat(format))
	return t.process(tc, data, format)
}

// process is the shared core of every mode. A panic raised by a header
// producer is turned into an error so callbacks always fire.
func (t *Transformer) process(tc *TransformContext, data []byte, format string) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("transform panicked: %v", r)
		}
		t.finish(tc, err)
	}()

	c, err := t.Codec(format)
	if err != nil {
		return nil, err
	}
	req, err := c.Parse(data)
	if err != nil {
		return nil, err
	}

	tc.Log.Info("Transform Started",
		zap.String("method", req.Method()),
		zap.String("url", req.URL()),
	)
	tc.Log.Debug("Request headers", zap.Any("headers", t.scanner.SanitizeHeaders(req.Headers())))

	matched, err := t.engine.Apply(req)
	tc.SetMetadata("matched_rules", matched)
	if err != nil {
		return nil, err
	}
	return c.Dump(req)
}

func (t *Transformer) finish(tc *TransformContext, err error) {
	matched, _ := tc.GetMetadata("matched_rules")
	fields := []zap.Field{
		zap.Duration("latency", tc.Elapsed()),
		zap.Any("matched_rules", matched),
	}
	switch {
	case err == nil:
		tc.Log.Info("Transform Finished", append(fields, zap.String("status", "Success"))...)
	case errs.IsViolation(err):
		tc.Log.Warn("Transform Rejected", append(fields, zap.Error(err))...)
	default:
		tc.Log.Error("Transform Failed", append(fields, zap.Error(err))...)
	}
}

// TransformSync reads in, transforms and writes out, blocking throughout.
func (t *Transformer) TransformSync(in, out, format string) error {
	if _, err := t.Codec(format); err != nil {
		return err
	}
	data, err := t.storage.ReadAll(in)
	if err != nil {
		return err
	}
	tc := NewTransformContext(t.log, ModeSync, t.resolveFormat(format))
	result, err := t.process(tc, data, format)
	if err != nil {
		return err
	}
	return t.storage.WriteAll(out, result)
}

// Transform is the callback variant of TransformSync. It returns at once;
// done is called exactly once, after the output is written or with the
// first error from reading, parsing, rules, dumping or writing.
func (t *Transformer) Transform(in, out, format string, done func(error)) {
	if done == nil {
		done = func(error) {}
	}
	if _, err := t.Codec(format); err != nil {
		go done(err)
		return
	}
	t.storage.ReadAllAsync(in, func(data []byte, err error) {
		if err != nil {
			done(err)
			return
		}
		tc := NewTransformContext(t.log, ModeAsync, t.resolveFormat(format))
		result, err := t.process(tc, data, format)
		if err != nil {
			done(err)
			return
		}
		t.storage.WriteAllAsync(out, result, done)
	})
}

// TransformAsync wraps Transform in a channel that receives the outcome.
func (t *Transformer) TransformAsync(in, out, format string) <-chan error {
	ch := make(chan error, 1)
	t.Transform(in, out, format, func(err error) { ch <- err })
	return ch
}
