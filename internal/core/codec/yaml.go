package codec

import (
	"fmt"

	"go.yaml.in/yaml/v3"

	"httprule/internal/core/request"
)

type yamlRequest struct {
	URL     string      `yaml:"url"`
	Method  string      `yaml:"method"`
	Headers yamlHeaders `yaml:"headers"`
}

// yamlHeaders goes through mapping nodes so header order survives.
type yamlHeaders request.Headers

func (h *yamlHeaders) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: headers must be a mapping", value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		k, v := value.Content[i], value.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: header %s must be a scalar", v.Line, k.Value)
		}
		*h = append(*h, request.Header{Name: k.Value, Value: v.Value})
	}
	return nil
}

func (h yamlHeaders) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, kv := range h {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: kv.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: kv.Value},
		)
	}
	return node, nil
}

// ParseYAML reads the same schema as ParseJSON from YAML text.
func ParseYAML(data []byte) (*request.Request, error) {
	var wire yamlRequest
	if err := yaml.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("failed to parse yaml request: %w", err)
	}
	req, err := request.New(wire.URL, wire.Method, request.Headers(wire.Headers))
	if err != nil {
		return nil, fmt.Errorf("failed to parse yaml request: %w", err)
	}
	return req, nil
}

// DumpYAML writes url, method, headers in that order.
func DumpYAML(req *request.Request) ([]byte, error) {
	wire := yamlRequest{
		URL:     req.URL(),
		Method:  req.Method(),
		Headers: yamlHeaders(req.Headers()),
	}
	out, err := yaml.Marshal(&wire)
	if err != nil {
		return nil, fmt.Errorf("failed to dump yaml request: %w", err)
	}
	return out, nil
}
