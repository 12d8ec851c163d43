package request

import "strings"

// parseCookies reads "k=v; k2=v2". The first occurrence of a key wins and
// pairs without '=' are skipped.
func parseCookies(raw string) map[string]string {
	cookies := make(map[string]string)
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, seen := cookies[name]; seen {
			continue
		}
		cookies[name] = strings.TrimSpace(value)
	}
	return cookies
}
