package request

import "strings"

// Header is one name/value pair. Name casing is preserved as read.
type Header struct {
	Name  string
	Value string
}

// Headers is an ordered header collection. Set overwrites an exact name in
// place so round trips keep the original order.
type Headers []Header

// Get returns the value stored under the exact name.
func (h Headers) Get(name string) (string, bool) {
	for _, kv := range h {
		if kv.Name == name {
			return kv.Value, true
		}
	}
	return "", false
}

// GetFold is Get with a case-insensitive fallback when no exact name exists.
func (h Headers) GetFold(name string) (string, bool) {
	if v, ok := h.Get(name); ok {
		return v, true
	}
	for _, kv := range h {
		if strings.EqualFold(kv.Name, name) {
			return kv.Value, true
		}
	}
	return "", false
}

// Set stores value under name, replacing an existing exact name.
func (h *Headers) Set(name, value string) {
	for i := range *h {
		if (*h)[i].Name == name {
			(*h)[i].Value = value
			return
		}
	}
	*h = append(*h, Header{Name: name, Value: value})
}

// Del removes every entry with the exact name.
func (h *Headers) Del(name string) {
	out := (*h)[:0]
	for _, kv := range *h {
		if kv.Name != name {
			out = append(out, kv)
		}
	}
	*h = out
}

func (h Headers) Len() int { return len(h) }

// Clone returns an independent copy.
func (h Headers) Clone() Headers {
	if h == nil {
		return Headers{}
	}
	out := make(Headers, len(h))
	copy(out, h)
	return out
}
