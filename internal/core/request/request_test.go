package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"httprule/internal/pkg/errs"
)

func newTestRequest(t *testing.T, rawURL string, headers Headers) *Request {
	t.Helper()
	req, err := New(rawURL, "POST", headers)
	require.NoError(t, err)
	return req
}

func TestNewRejectsRelativeURL(t *testing.T) {
	_, err := New("/some/resource", "GET", nil)
	assert.True(t, errs.IsInvalidValue(err))

	_, err = New("http://[::1", "GET", nil)
	assert.True(t, errs.IsInvalidValue(err))
}

func TestAccessors(t *testing.T) {
	req := newTestRequest(t, "http://www.shopback.com/some/resource?q=1", nil)

	assert.Equal(t, "www.shopback.com", req.Domain())
	assert.Equal(t, "/some/resource", req.Path())
	assert.Equal(t, "POST", req.Method())
	assert.Equal(t, "q=1", req.RawQuery())
	assert.Equal(t, 0, req.Headers().Len())

	req.SetMethod("PUT")
	assert.Equal(t, "PUT", req.Method())
	assert.Equal(t, "PUT http://www.shopback.com/some/resource?q=1", req.String())
}

func TestSetPathKeepsOtherComponents(t *testing.T) {
	req := newTestRequest(t, "https://user:pw@h.com:8443/old?x=1&y=2#frag", nil)

	req.SetPath("/new/path")
	assert.Equal(t, "https://user:pw@h.com:8443/new/path?x=1&y=2#frag", req.URL())
}

func TestSetDomainKeepsPort(t *testing.T) {
	req := newTestRequest(t, "http://a.com:8080/p", nil)
	req.SetDomain("b.com")
	assert.Equal(t, "http://b.com:8080/p", req.URL())

	req = newTestRequest(t, "http://a.com/p", nil)
	req.SetDomain("b.com")
	assert.Equal(t, "http://b.com/p", req.URL())
	assert.Equal(t, "b.com", req.Domain())
}

func TestQueryMutations(t *testing.T) {
	testCases := []struct {
		name   string
		url    string
		mutate func(*Request)
		want   string
	}{
		{
			name:   "remove all",
			url:    "http://h/api?x=1&y=2",
			mutate: func(r *Request) { r.RemoveAllURLQueryString() },
			want:   "http://h/api",
		},
		{
			name:   "remove all keeps fragment and userinfo",
			url:    "http://u@h:81/api?x=1#top",
			mutate: func(r *Request) { r.RemoveAllURLQueryString() },
			want:   "http://u@h:81/api#top",
		},
		{
			name:   "remove forced empty query",
			url:    "http://h/api?",
			mutate: func(r *Request) { r.RemoveAllURLQueryString() },
			want:   "http://h/api",
		},
		{
			name:   "add to empty query",
			url:    "http://h/api",
			mutate: func(r *Request) { r.AddURLQueryString("a b", "c&d") },
			want:   "http://h/api?a+b=c%26d",
		},
		{
			name:   "add repeated key",
			url:    "http://h/api?x=1",
			mutate: func(r *Request) { r.AddURLQueryString("x", "2") },
			want:   "http://h/api?x=1&x=2",
		},
		{
			name:   "delete all occurrences",
			url:    "http://h/api?x=1&y=2&x=3#f",
			mutate: func(r *Request) { r.DeleteURLQueryString("x") },
			want:   "http://h/api?y=2#f",
		},
		{
			name:   "delete encoded key",
			url:    "http://h/api?a%20b=1&c=2",
			mutate: func(r *Request) { r.DeleteURLQueryString("a b") },
			want:   "http://h/api?c=2",
		},
		{
			name:   "delete missing key",
			url:    "http://h/api?c=2",
			mutate: func(r *Request) { r.DeleteURLQueryString("zz") },
			want:   "http://h/api?c=2",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := newTestRequest(t, tc.url, nil)
			tc.mutate(req)
			assert.Equal(t, tc.want, req.URL())
		})
	}
}

func TestSetHeaders(t *testing.T) {
	req := newTestRequest(t, "http://h/", Headers{{Name: "A", Value: "1"}})

	require.NoError(t, req.SetHeaders(nil))
	assert.Equal(t, 0, req.Headers().Len())

	require.NoError(t, req.SetHeaders(map[string]string{"b": "2", "a": "1"}))
	assert.Equal(t, Headers{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}, req.Headers())

	require.NoError(t, req.SetHeaders(map[string]any{"X": "y"}))
	assert.True(t, req.HasHeader("X"))

	err := req.SetHeaders(map[string]any{"X": 3})
	assert.True(t, errs.IsInvalidValue(err))

	err = req.SetHeaders("Cookie: a=b")
	assert.True(t, errs.IsInvalidValue(err))

	err = req.SetHeaders([]string{"a"})
	assert.True(t, errs.IsInvalidValue(err))
}

func TestHeadersReturnsCopy(t *testing.T) {
	req := newTestRequest(t, "http://h/", Headers{{Name: "A", Value: "1"}})
	h := req.Headers()
	h.Set("A", "changed")
	v, _ := req.Headers().Get("A")
	assert.Equal(t, "1", v)
}

func TestHeaderPrimitives(t *testing.T) {
	req := newTestRequest(t, "http://h/", Headers{
		{Name: "Content-Type", Value: "application/json"},
		{Name: "X-Agent", Value: "anything"},
	})

	assert.True(t, req.HasHeader("X-Agent"))
	assert.False(t, req.HasHeader("x-agent"))
	assert.True(t, req.HasHeaderWithValues("Content-Type", []string{"text/plain", "application/json"}))
	assert.False(t, req.HasHeaderWithValues("Content-Type", []string{"text/plain"}))
	assert.False(t, req.HasHeaderWithValues("Missing", []string{""}))

	req.AddHeader("X-Agent", "other")
	req.AddHeader("X-New", "1")
	assert.Equal(t, Headers{
		{Name: "Content-Type", Value: "application/json"},
		{Name: "X-Agent", Value: "other"},
		{Name: "X-New", Value: "1"},
	}, req.Headers())

	req.RemoveHeader("X-Agent")
	assert.False(t, req.HasHeader("X-Agent"))
	assert.Equal(t, 2, req.Headers().Len())
}

func TestCookies(t *testing.T) {
	req := newTestRequest(t, "http://h/", Headers{
		{Name: "Cookie", Value: "name=value; name2=value2; name=shadowed; broken; =x"},
	})

	assert.True(t, req.HasCookie("name"))
	assert.True(t, req.HasCookie("name2"))
	assert.False(t, req.HasCookie("broken"))
	assert.False(t, req.HasCookie("name3"))
	assert.True(t, req.HasCookieWithValues("name", []string{"value"}))
	assert.False(t, req.HasCookieWithValues("name", []string{"shadowed"}))

	req.AddHeader("Cookie", "name3=v")
	assert.True(t, req.HasCookie("name3"))
	assert.False(t, req.HasCookie("name"))
}

func TestCookiesMissingHeader(t *testing.T) {
	req := newTestRequest(t, "http://h/", nil)
	assert.False(t, req.HasCookie("a"))
	assert.False(t, req.HasCookieWithValues("a", []string{""}))
}

func TestCookieHeaderCaseInsensitive(t *testing.T) {
	req := newTestRequest(t, "http://h/", Headers{{Name: "cookie", Value: "a=1"}})
	assert.True(t, req.HasCookie("a"))
}

func TestRefererBelongsTo(t *testing.T) {
	testCases := []struct {
		name    string
		headers Headers
		domain  string
		want    bool
	}{
		{"capitalized header", Headers{{Name: "Referer", Value: "https://www.shopback.com/a"}}, "www.shopback.com", true},
		{"lowercase header", Headers{{Name: "referer", Value: "http://www.shopback.com"}}, "www.shopback.com", true},
		{"case insensitive host", Headers{{Name: "Referer", Value: "http://WWW.Shopback.com:8080/x"}}, "www.shopback.com", true},
		{"other host", Headers{{Name: "Referer", Value: "http://evil.com/"}}, "www.shopback.com", false},
		{"missing header", nil, "www.shopback.com", false},
		{"unparsable", Headers{{Name: "Referer", Value: "://bad"}}, "www.shopback.com", false},
		{"no host", Headers{{Name: "Referer", Value: "/relative"}}, "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := newTestRequest(t, "http://h/", tc.headers)
			assert.Equal(t, tc.want, req.RefererBelongsTo(tc.domain))
		})
	}
}

func TestAllowDomains(t *testing.T) {
	req := newTestRequest(t, "http://www.shopback.com:8080/", nil)
	assert.True(t, req.AllowDomains([]string{"www.shopback.com", "www.shopback.com.tw"}))
	assert.False(t, req.AllowDomains([]string{"shopback.com"}))
	assert.False(t, req.AllowDomains(nil))
}

func TestClone(t *testing.T) {
	req := newTestRequest(t, "http://h/p?x=1", Headers{{Name: "A", Value: "1"}})
	c := req.Clone()
	c.SetPath("/other")
	c.AddHeader("A", "2")

	assert.Equal(t, "http://h/p?x=1", req.URL())
	v, _ := req.Headers().Get("A")
	assert.Equal(t, "1", v)
}
