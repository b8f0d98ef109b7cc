package client

import (
	"mime"
	"strings"

	"github.com/kbukum/apicontract/contract"
	apierrors "github.com/kbukum/apicontract/errors"
	"github.com/kbukum/apicontract/transport"
)

// classify reads the body once and turns the response into the response
// schema's output, an APIError or a response ValidationError.
func (c *Client) classify(key, url string, ep contract.Endpoint, resp transport.Response) (any, error) {
	text, err := resp.Text()
	if err != nil {
		return nil, err
	}
	decoded, structured := c.decode(resp.Header("Content-Type"), text)

	if !resp.OK() {
		apiErr := &apierrors.APIError{
			Status:  resp.StatusCode(),
			Key:     key,
			URL:     url,
			RawText: text,
			RawJSON: decoded,
		}
		if ep.Error != nil && structured {
			if parsed, perr := ep.Error.Parse(decoded); perr == nil {
				apiErr.ParsedError = parsed
				apiErr.HasParsed = true
			}
		}
		return nil, apiErr
	}

	input := any(text)
	if structured {
		input = decoded
	}
	out, err := ep.Response.Parse(input)
	if err != nil {
		return nil, apierrors.NewResponseValidation(key, url, err)
	}
	return out, nil
}

// decode reports whether text holds a JSON document. Decoding is attempted
// for JSON media types and for text starting with '{' or '['. A decode
// failure means no structured body.
func (c *Client) decode(contentType, text string) (any, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, false
	}
	if !IsJSONContentType(contentType) && !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		return nil, false
	}
	var v any
	if err := c.opts.codec.Unmarshal([]byte(trimmed), &v); err != nil {
		return nil, false
	}
	return v, true
}

// IsJSONContentType reports whether a Content-Type value names
// application/json or a +json media type.
func IsJSONContentType(contentType string) bool {
	if contentType == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt, _, _ = strings.Cut(contentType, ";")
		mt = strings.ToLower(strings.TrimSpace(mt))
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}
