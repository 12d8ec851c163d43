package codec

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"httprule/internal/core/request"
)

// ParseJSON reads {"url", "method", "headers"}. Header order is kept.
// Non-string header values are stored in their JSON text form.
func ParseJSON(data []byte) (*request.Request, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("failed to parse json request: invalid json")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("failed to parse json request: top level must be an object")
	}

	var headers request.Headers
	if h := root.Get("headers"); h.Exists() && h.Type != gjson.Null {
		if !h.IsObject() {
			return nil, fmt.Errorf("failed to parse json request: headers must be an object")
		}
		h.ForEach(func(key, value gjson.Result) bool {
			headers = append(headers, request.Header{Name: key.String(), Value: value.String()})
			return true
		})
	}

	req, err := request.New(root.Get("url").String(), root.Get("method").String(), headers)
	if err != nil {
		return nil, fmt.Errorf("failed to parse json request: %w", err)
	}
	return req, nil
}

// DumpJSON writes url, method, headers in that order, indented by two spaces.
func DumpJSON(req *request.Request) ([]byte, error) {
	doc := []byte(`{}`)
	var err error
	if doc, err = sjson.SetBytes(doc, "url", req.URL()); err != nil {
		return nil, fmt.Errorf("failed to dump json request: %w", err)
	}
	if doc, err = sjson.SetBytes(doc, "method", req.Method()); err != nil {
		return nil, fmt.Errorf("failed to dump json request: %w", err)
	}

	headers, err := rawHeaders(req.Headers())
	if err != nil {
		return nil, fmt.Errorf("failed to dump json request: %w", err)
	}
	if doc, err = sjson.SetRawBytes(doc, "headers", headers); err != nil {
		return nil, fmt.Errorf("failed to dump json request: %w", err)
	}
	return pretty.Pretty(doc), nil
}

// rawHeaders encodes headers as a JSON object in collection order. Header
// names may contain path syntax, so they are not set through sjson paths.
func rawHeaders(h request.Headers) ([]byte, error) {
	buf := make([]byte, 0, 64)
	buf = append(buf, '{')
	for i, kv := range h {
		if i > 0 {
			buf = append(buf, ',')
		}
		name, err := sonic.Marshal(kv.Name)
		if err != nil {
			return nil, err
		}
		value, err := sonic.Marshal(kv.Value)
		if err != nil {
			return nil, err
		}
		buf = append(buf, name...)
		buf = append(buf, ':')
		buf = append(buf, value...)
	}
	buf = append(buf, '}')
	return buf, nil
}
