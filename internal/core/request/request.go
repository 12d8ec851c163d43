// Package request holds the canonical model of one HTTP request descriptor
// and the primitives rule actions operate on.
package request

import (
	"fmt"
	"net"
	"net/url"
	"slices"
	"strings"

	"httprule/internal/pkg/errs"
)

// Request is one HTTP request descriptor: URL, method and ordered headers.
type Request struct {
	url     *url.URL
	method  string
	headers Headers

	// derived views, dropped whenever headers change
	cookies     map[string]string
	refererHost *string
}

// New builds a Request from an absolute URL.
func New(rawURL, method string, headers Headers) (*Request, error) {
	r := &Request{method: method}
	if err := r.SetURL(rawURL); err != nil {
		return nil, err
	}
	r.headers = headers.Clone()
	return r, nil
}

// URL returns the serialized URL.
func (r *Request) URL() string {
	if r.url == nil {
		return ""
	}
	return r.url.String()
}

// SetURL replaces the URL. It must be absolute and carry a host.
func (r *Request) SetURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return errs.InvalidValuef("invalid url: %q: %v", rawURL, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return errs.InvalidValuef("invalid url: %q, should be absolute", rawURL)
	}
	r.url = u
	return nil
}

// Domain returns the host without port.
func (r *Request) Domain() string {
	if r.url == nil {
		return ""
	}
	return r.url.Hostname()
}

// SetDomain replaces the host and keeps any explicit port.
func (r *Request) SetDomain(domain string) {
	if r.url == nil {
		r.url = &url.URL{Scheme: "http"}
	}
	if port := r.url.Port(); port != "" {
		r.url.Host = net.JoinHostPort(domain, port)
		return
	}
	if strings.Contains(domain, ":") {
		domain = "[" + domain + "]"
	}
	r.url.Host = domain
}

// Path returns the decoded URL path.
func (r *Request) Path() string {
	if r.url == nil {
		return ""
	}
	return r.url.Path
}

// SetPath replaces the path only. Query, fragment and authority are kept.
func (r *Request) SetPath(path string) {
	if r.url == nil {
		r.url = &url.URL{Scheme: "http"}
	}
	r.url.Path = path
	r.url.RawPath = ""
}

// RawQuery returns the encoded query without '?'.
func (r *Request) RawQuery() string {
	if r.url == nil {
		return ""
	}
	return r.url.RawQuery
}

func (r *Request) Method() string { return r.method }

func (r *Request) SetMethod(method string) { r.method = method }

// Headers returns a copy of the header collection.
func (r *Request) Headers() Headers {
	return r.headers.Clone()
}

// SetHeaders replaces the header collection. nil resets it to empty. Accepted
// values are Headers, map[string]string and map[string]any holding strings;
// map input is stored in sorted name order.
func (r *Request) SetHeaders(v any) error {
	var h Headers
	switch hv := v.(type) {
	case nil:
		h = Headers{}
	case Headers:
		h = hv.Clone()
	case map[string]string:
		for _, k := range sortedKeys(hv) {
			h = append(h, Header{Name: k, Value: hv[k]})
		}
	case map[string]any:
		for _, k := range sortedKeys(hv) {
			s, ok := hv[k].(string)
			if !ok {
				return errs.InvalidValuef("invalid header value type for %s: %T, should be string", k, hv[k])
			}
			h = append(h, Header{Name: k, Value: s})
		}
	default:
		return errs.InvalidValuef("invalid headers type: %T, should be a map", v)
	}
	if h == nil {
		h = Headers{}
	}
	r.headers = h
	r.resetViews()
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (r *Request) resetViews() {
	r.cookies = nil
	r.refererHost = nil
}

// Cookies returns the parsed Cookie header. The map must not be modified.
func (r *Request) Cookies() map[string]string {
	if r.cookies == nil {
		raw, _ := r.headers.GetFold("Cookie")
		r.cookies = parseCookies(raw)
	}
	return r.cookies
}

// HasCookie reports whether the Cookie header carries key.
func (r *Request) HasCookie(key string) bool {
	_, ok := r.Cookies()[key]
	return ok
}

// HasCookieWithValues reports whether cookie key is present with one of values.
func (r *Request) HasCookieWithValues(key string, values []string) bool {
	v, ok := r.Cookies()[key]
	return ok && slices.Contains(values, v)
}

// RefererHost returns the hostname of the referer header, "" when the header
// is missing or not a URL with a host.
func (r *Request) RefererHost() string {
	if r.refererHost == nil {
		host := ""
		raw, ok := r.headers.Get("referer")
		if !ok {
			raw, ok = r.headers.Get("Referer")
		}
		if ok {
			if u, err := url.Parse(strings.TrimSpace(raw)); err == nil {
				host = u.Hostname()
			}
		}
		r.refererHost = &host
	}
	return *r.refererHost
}

// RefererBelongsTo compares the referer hostname with domain, ignoring scheme
// and case.
func (r *Request) RefererBelongsTo(domain string) bool {
	host := r.RefererHost()
	return host != "" && strings.EqualFold(host, domain)
}

// AddHeader stores value under key, overwriting an existing exact key.
func (r *Request) AddHeader(key, value string) {
	r.headers.Set(key, value)
	r.resetViews()
}

// RemoveHeader drops the exact key.
func (r *Request) RemoveHeader(key string) {
	r.headers.Del(key)
	r.resetViews()
}

func (r *Request) HasHeader(key string) bool {
	_, ok := r.headers.Get(key)
	return ok
}

// HasHeaderWithValues requires key present with a value in values.
func (r *Request) HasHeaderWithValues(key string, values []string) bool {
	v, ok := r.headers.Get(key)
	return ok && slices.Contains(values, v)
}

// RemoveAllURLQueryString clears the query component only.
func (r *Request) RemoveAllURLQueryString() {
	if r.url == nil {
		return
	}
	r.url.RawQuery = ""
	r.url.ForceQuery = false
}

// AddURLQueryString appends key=value; repeated keys are allowed.
func (r *Request) AddURLQueryString(key, value string) {
	if r.url == nil {
		return
	}
	r.url.RawQuery = appendQuery(r.url.RawQuery, key, value)
}

// DeleteURLQueryString removes all occurrences of key.
func (r *Request) DeleteURLQueryString(key string) {
	if r.url == nil {
		return
	}
	r.url.RawQuery = dropQueryKey(r.url.RawQuery, key)
}

// AllowDomains reports whether the hostname is one of domains.
func (r *Request) AllowDomains(domains []string) bool {
	return slices.Contains(domains, r.Domain())
}

// Clone returns a deep copy.
func (r *Request) Clone() *Request {
	c := &Request{method: r.method, headers: r.headers.Clone()}
	if r.url != nil {
		u := *r.url
		c.url = &u
	}
	return c
}

func (r *Request) String() string {
	return fmt.Sprintf("%s %s", r.method, r.URL())
}
