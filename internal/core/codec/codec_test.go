package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"httprule/internal/core/request"
	"httprule/internal/pkg/errs"
)

const sampleJSON = `{
  "url": "http://www.shopback.com/some/resource?q=1",
  "method": "POST",
  "headers": {
    "Cookie": "name=value; name2=value2; name3=value3",
    "Content-Type": "application/json",
    "X-SHOPBACK-AGENT": "anything"
  }
}`

const sampleYAML = `url: http://www.shopback.com/some/resource?q=1
method: POST
headers:
  Cookie: name=value; name2=value2; name3=value3
  Content-Type: application/json
  X-SHOPBACK-AGENT: anything
`

var sampleHeaders = request.Headers{
	{Name: "Cookie", Value: "name=value; name2=value2; name3=value3"},
	{Name: "Content-Type", Value: "application/json"},
	{Name: "X-SHOPBACK-AGENT", Value: "anything"},
}

func TestResolve(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{"json", "yaml", ""} {
		c, err := r.Resolve(name)
		require.NoError(t, err, name)
		assert.True(t, c.Valid())
	}

	_, err := r.Resolve("toml")
	require.Error(t, err)
	assert.True(t, errs.IsInvalidValue(err))
	assert.Contains(t, err.Error(), "toml")

	assert.Equal(t, []Format{FormatJSON, FormatYAML}, r.Formats())
	assert.True(t, r.Has("yaml"))
	assert.False(t, r.Has("xml"))
}

func TestRegister(t *testing.T) {
	r := NewRegistry()
	err := r.Register("xml", Codec{Parse: ParseJSON})
	assert.True(t, errs.IsInvalidValue(err))

	err = r.Register("", Codec{Parse: ParseJSON, Dump: DumpJSON})
	assert.True(t, errs.IsInvalidValue(err))

	require.NoError(t, r.Register("json5", Codec{Parse: ParseJSON, Dump: DumpJSON}))
	_, err = r.Resolve("json5")
	assert.NoError(t, err)
}

func TestParse(t *testing.T) {
	testCases := []struct {
		name  string
		parse ParseFunc
		input string
	}{
		{"json", ParseJSON, sampleJSON},
		{"yaml", ParseYAML, sampleYAML},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := tc.parse([]byte(tc.input))
			require.NoError(t, err)
			assert.Equal(t, "www.shopback.com", req.Domain())
			assert.Equal(t, "/some/resource", req.Path())
			assert.Equal(t, "POST", req.Method())
			assert.Equal(t, sampleHeaders, req.Headers())
		})
	}
}

func TestRoundTrip(t *testing.T) {
	req, err := request.New("https://u@api.shop.com:8443/a/b?x=1&x=2#frag", "PATCH", request.Headers{
		{Name: "Zeta", Value: "last-first"},
		{Name: "x.dotted|name", Value: `quote " and <tag>`},
		{Name: "Alpha", Value: ""},
	})
	require.NoError(t, err)

	r := NewRegistry()
	for _, f := range r.Formats() {
		t.Run(string(f), func(t *testing.T) {
			c, err := r.Resolve(string(f))
			require.NoError(t, err)

			out, err := c.Dump(req)
			require.NoError(t, err)
			again, err := c.Parse(out)
			require.NoError(t, err)

			assert.Equal(t, req.URL(), again.URL())
			assert.Equal(t, req.Domain(), again.Domain())
			assert.Equal(t, req.Path(), again.Path())
			assert.Equal(t, req.Method(), again.Method())
			assert.Equal(t, req.Headers(), again.Headers())
		})
	}
}

func TestDumpJSONKeyOrder(t *testing.T) {
	req, err := request.New("http://h/api", "GET", request.Headers{{Name: "B", Value: "2"}, {Name: "A", Value: "1"}})
	require.NoError(t, err)

	out, err := DumpJSON(req)
	require.NoError(t, err)
	assert.Equal(t, `{
  "url": "http://h/api",
  "method": "GET",
  "headers": {
    "B": "2",
    "A": "1"
  }
}
`, string(out))
}

func TestDumpJSONEmptyHeaders(t *testing.T) {
	req, err := request.New("http://h/api", "GET", nil)
	require.NoError(t, err)

	out, err := DumpJSON(req)
	require.NoError(t, err)
	again, err := ParseJSON(out)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Headers().Len())
}

func TestDumpYAMLKeyOrder(t *testing.T) {
	req, err := request.New("http://h/api", "GET", request.Headers{{Name: "B", Value: "2"}, {Name: "A", Value: "1"}})
	require.NoError(t, err)

	out, err := DumpYAML(req)
	require.NoError(t, err)
	text := string(out)
	assert.True(t, strings.HasPrefix(text, "url: http://h/api\nmethod: GET\nheaders:\n"), text)
	assert.Less(t, strings.Index(text, "B:"), strings.Index(text, "A:"))
}

func TestParseJSONNumericHeader(t *testing.T) {
	req, err := ParseJSON([]byte(`{"url":"http://h/","method":"GET","headers":{"X-TS":1700000000000}}`))
	require.NoError(t, err)
	v, ok := req.Headers().Get("X-TS")
	assert.True(t, ok)
	assert.Equal(t, "1700000000000", v)
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name  string
		parse ParseFunc
		input string
	}{
		{"json invalid", ParseJSON, `{"url":`},
		{"json array", ParseJSON, `[]`},
		{"json headers not object", ParseJSON, `{"url":"http://h/","headers":[1]}`},
		{"json missing url", ParseJSON, `{"method":"GET"}`},
		{"yaml invalid", ParseYAML, "url: [\n"},
		{"yaml headers list", ParseYAML, "url: http://h/\nheaders:\n  - a\n"},
		{"yaml nested header", ParseYAML, "url: http://h/\nheaders:\n  A:\n    b: c\n"},
		{"yaml relative url", ParseYAML, "url: /p\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.parse([]byte(tc.input))
			assert.Error(t, err)
		})
	}
}
