package request

import (
	"net/url"
	"strings"
)

// appendQuery adds an encoded key=value pair after the existing raw query so
// already-present pairs keep their original encoding and order.
func appendQuery(rawQuery, key, value string) string {
	pair := url.QueryEscape(key) + "=" + url.QueryEscape(value)
	if rawQuery == "" {
		return pair
	}
	return rawQuery + "&" + pair
}

// dropQueryKey removes every pair whose decoded key equals key. Pairs that
// fail to decode are compared raw.
func dropQueryKey(rawQuery, key string) string {
	if rawQuery == "" {
		return ""
	}
	kept := make([]string, 0, 4)
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		name, _, _ := strings.Cut(pair, "=")
		if decoded, err := url.QueryUnescape(name); err == nil {
			name = decoded
		}
		if name == key {
			continue
		}
		kept = append(kept, pair)
	}
	return strings.Join(kept, "&")
}
