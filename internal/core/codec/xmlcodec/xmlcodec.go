// Package xmlcodec is an XML codec pair for the request model. It is not
// registered by default; callers hand it to a transformer as a custom codec.
//
//	<request>
//	  <url>http://www.shopback.com/some/resource</url>
//	  <method>POST</method>
//	  <headers>
//	    <header name="Content-Type">application/json</header>
//	  </headers>
//	</request>
package xmlcodec

import (
	"encoding/xml"
	"fmt"

	"httprule/internal/core/codec"
	"httprule/internal/core/request"
)

// Format is the label the CLI uses for this codec.
const Format codec.Format = "xml"

type xmlRequest struct {
	XMLName xml.Name    `xml:"request"`
	URL     string      `xml:"url"`
	Method  string      `xml:"method"`
	Headers []xmlHeader `xml:"headers>header"`
}

type xmlHeader struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

// New returns the parse/dump pair.
func New() codec.Codec {
	return codec.Codec{Parse: Parse, Dump: Dump}
}

func Parse(data []byte) (*request.Request, error) {
	var wire xmlRequest
	if err := xml.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("failed to parse xml request: %w", err)
	}
	headers := make(request.Headers, 0, len(wire.Headers))
	for _, h := range wire.Headers {
		headers = append(headers, request.Header{Name: h.Name, Value: h.Value})
	}
	req, err := request.New(wire.URL, wire.Method, headers)
	if err != nil {
		return nil, fmt.Errorf("failed to parse xml request: %w", err)
	}
	return req, nil
}

func Dump(req *request.Request) ([]byte, error) {
	wire := xmlRequest{URL: req.URL(), Method: req.Method()}
	for _, h := range req.Headers() {
		wire.Headers = append(wire.Headers, xmlHeader{Name: h.Name, Value: h.Value})
	}
	out, err := xml.MarshalIndent(&wire, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to dump xml request: %w", err)
	}
	return append(out, '\n'), nil
}
