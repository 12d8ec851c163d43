package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"httprule/internal/pkg/errs"
)

func TestMatchHost(t *testing.T) {
	m := New(16)
	testCases := []struct {
		pattern   string
		candidate string
		want      bool
	}{
		{"www.shopback.com", "www.shopback.com", true},
		{"www.shopback.com", "WWW.ShopBack.com", true},
		{"www.shopback.com", "wwwxshopback.com", false},
		{"*.shopback.com", "www.shopback.com", true},
		{"*.shopback.com", "a.b.shopback.com", false},
		{"**.shopback.com", "a.b.shopback.com", true},
		{"*.shopback.com", "shopback.com", false},
		{"api-*.shopback.com", "api-eu.shopback.com", true},
		{"www.shopback.*", "www.shopback.tw", true},
		{"*", "localhost", true},
		{"*", "a.b", false},
	}

	for _, tc := range testCases {
		t.Run(tc.pattern+"|"+tc.candidate, func(t *testing.T) {
			got, err := m.Match(Host, tc.pattern, tc.candidate)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMatchPath(t *testing.T) {
	m := New(16)
	testCases := []struct {
		pattern   string
		candidate string
		want      bool
	}{
		{"/a", "/a", true},
		{"/a", "/A", false},
		{"/a", "/a/b", false},
		{"/api/*", "/api/users", true},
		{"/api/*", "/api/users/1", false},
		{"/api/**", "/api/users/1", true},
		{"/api/*/detail", "/api/7/detail", true},
		{"/some/(resource)", "/some/(resource)", true},
		{"/v1.0/x", "/v1x0/x", false},
	}

	for _, tc := range testCases {
		t.Run(tc.pattern+"|"+tc.candidate, func(t *testing.T) {
			got, err := m.Match(Path, tc.pattern, tc.candidate)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMatchAny(t *testing.T) {
	m := Default()

	ok, err := m.MatchAny(Host, []string{"a.com", "b.com"}, "b.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.MatchAny(Host, []string{"a.com", "b.com"}, "c.com")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = m.MatchAny(Path, nil, "/")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEmptyPatternIsInvalid(t *testing.T) {
	err := New(4).Validate(Path, "")
	assert.True(t, errs.IsInvalidValue(err))

	_, err = New(4).MatchAny(Host, []string{"a.com", ""}, "b.com")
	assert.True(t, errs.IsInvalidValue(err))
}

func TestCacheReusesCompiledPattern(t *testing.T) {
	m := New(2)
	require.NoError(t, m.Validate(Host, "*.a.com"))
	require.NoError(t, m.Validate(Path, "*.a.com"))
	assert.Equal(t, 2, m.cache.Len())

	require.NoError(t, m.Validate(Host, "*.a.com"))
	assert.Equal(t, 2, m.cache.Len())

	require.NoError(t, m.Validate(Host, "b.com"))
	assert.Equal(t, 2, m.cache.Len())
}
