package core

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"httprule/internal/core/codec"
	"httprule/internal/core/rule"
	"httprule/internal/core/rule/action"
	"httprule/internal/pkg/errs"
)

func TestStreamChunks(t *testing.T) {
	tr := newTransformer(t, Options{}, rule.Rule{
		Actions: []action.Action{action.RemoveAllURLQueryString()},
	})

	var out bytes.Buffer
	s := tr.NewStream(&out, "")
	for _, chunk := range strings.SplitAfter(sampleJSON, ",") {
		n, err := s.Write([]byte(chunk))
		require.NoError(t, err)
		assert.Equal(t, len(chunk), n)
	}
	assert.Zero(t, out.Len(), "nothing is emitted before close")

	require.NoError(t, s.Close())
	req, err := codec.ParseJSON(out.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "http://www.shopback.com/api/items", req.URL())

	_, err = s.Write([]byte("x"))
	assert.ErrorIs(t, err, ErrStreamClosed)
	assert.ErrorIs(t, s.Close(), ErrStreamClosed)
}

func TestStreamsAreIndependent(t *testing.T) {
	tr := newTransformer(t, Options{})

	var out1, out2 bytes.Buffer
	s1 := tr.NewStream(&out1, "json")
	s2 := tr.NewStream(&out2, "yaml")
	_, _ = s1.Write([]byte(sampleJSON))
	_, _ = s2.Write([]byte(sampleYAML))

	require.NoError(t, s1.Close())
	require.NoError(t, s2.Close())

	r1, err := codec.ParseJSON(out1.Bytes())
	require.NoError(t, err)
	r2, err := codec.ParseYAML(out2.Bytes())
	require.NoError(t, err)
	assert.Equal(t, r1.URL(), r2.URL())
	assert.Equal(t, 3, r1.Headers().Len())
	assert.Equal(t, 1, r2.Headers().Len())
}

func TestTransformStream(t *testing.T) {
	tr := newTransformer(t, Options{}, rule.Rule{
		Conditions: rule.Conditions{rule.KeyDomain: {"www.shopback.com"}},
		Actions:    []action.Action{action.AddHeader("X-Stream", action.Literal("1"))},
	})

	var out bytes.Buffer
	require.NoError(t, tr.TransformStream(strings.NewReader(sampleYAML), &out, "yaml"))
	assert.Contains(t, out.String(), "X-Stream")

	err := tr.TransformStream(strings.NewReader(sampleYAML), &out, "toml")
	assert.True(t, errs.IsInvalidValue(err))
}

func TestStreamErrors(t *testing.T) {
	tr := newTransformer(t, Options{}, rule.Rule{
		Actions: []action.Action{action.AllowDomains([]string{"a.com"})},
	})

	var out bytes.Buffer
	err := tr.TransformStream(strings.NewReader(sampleJSON), &out, "")
	assert.True(t, errs.IsViolation(err))
	assert.Zero(t, out.Len())

	ok := newTransformer(t, Options{})
	err = ok.TransformStream(strings.NewReader(sampleJSON), failingWriter{}, "")
	assert.True(t, errs.IsIO(err))
	assert.ErrorIs(t, err, errWriter)
}

var errReset = errors.New("connection reset")

// brokenReader yields its content once and then fails.
type brokenReader struct {
	data []byte
	done bool
}

func (r *brokenReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, errReset
	}
	r.done = true
	return copy(p, r.data), nil
}

func TestTransformStreamReadFailure(t *testing.T) {
	tr := newTransformer(t, Options{Format: "yaml"}, rule.Rule{
		Actions: []action.Action{action.AddHeader("X-Seen", action.Literal("1"))},
	})

	var out bytes.Buffer
	r := &brokenReader{data: []byte("url: http://a.com/p\nmethod: POST\n")}
	err := tr.TransformStream(r, &out, "")
	require.Error(t, err)
	assert.True(t, errs.IsIO(err))
	assert.ErrorIs(t, err, errReset)
	assert.Zero(t, out.Len(), "a failed read must not emit output")
}

func TestStreamAbort(t *testing.T) {
	tr := newTransformer(t, Options{})

	var out bytes.Buffer
	s := tr.NewStream(&out, "")
	_, err := io.Copy(s, strings.NewReader(sampleJSON))
	require.NoError(t, err)

	s.abort()
	s.abort()
	assert.Zero(t, out.Len())
	_, err = s.Write([]byte("x"))
	assert.ErrorIs(t, err, ErrStreamClosed)
	assert.ErrorIs(t, s.Close(), ErrStreamClosed)
}
