package client

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"reflect"

	"github.com/kbukum/apicontract/auth"
	"github.com/kbukum/apicontract/contract"
	apierrors "github.com/kbukum/apicontract/errors"
	"github.com/kbukum/apicontract/route"
	"github.com/kbukum/apicontract/schema"
	"github.com/kbukum/apicontract/transport"
)

// Issue codes produced by the pipeline itself.
const (
	IssueUndeclared   = "undeclared"
	IssueMissingParam = "missing_param"
	IssueEncode       = "encode"
)

// inputs are the validated call inputs, flattened where the wire needs it.
type inputs struct {
	params  map[string]any
	query   map[string]any
	body    any
	headers map[string]any
}

// validateInputs checks params, query, body and headers in that order and
// stops at the first failure. A value for an input the endpoint does not
// declare is rejected, except raw params for a template with segments and a
// raw body for a text or JSON endpoint without a body schema.
func validateInputs(key string, ep contract.Endpoint, path string, args Args) (inputs, error) {
	var in inputs

	params, err := parseInput(key, apierrors.FieldParams, ep.Params, args.Params, len(route.Segments(path)) > 0)
	if err != nil {
		return in, err
	}
	if in.params, err = flatten(key, apierrors.FieldParams, params); err != nil {
		return in, err
	}

	query, err := parseInput(key, apierrors.FieldQuery, ep.Query, args.Query, false)
	if err != nil {
		return in, err
	}
	if in.query, err = flatten(key, apierrors.FieldQuery, query); err != nil {
		return in, err
	}

	rawBody := ep.ContentType == contract.Text || ep.ContentType == contract.JSON
	if in.body, err = parseInput(key, apierrors.FieldBody, ep.Body, args.Body, rawBody); err != nil {
		return in, err
	}
	if ep.ContentType == contract.NoBody && !isNil(in.body) {
		return in, undeclared(key, apierrors.FieldBody, "endpoint sends no body")
	}

	headers, err := parseInput(key, apierrors.FieldHeaders, ep.Headers, args.Headers, false)
	if err != nil {
		return in, err
	}
	if in.headers, err = flatten(key, apierrors.FieldHeaders, headers); err != nil {
		return in, err
	}

	return in, nil
}

func parseInput(key string, field apierrors.Field, s schema.Schema, value any, allowRaw bool) (any, error) {
	if s != nil {
		out, err := s.Parse(value)
		if err != nil {
			return nil, apierrors.NewRequestValidation(key, "", field, err)
		}
		return out, nil
	}
	if isNil(value) || allowRaw {
		return value, nil
	}
	return nil, undeclared(key, field, fmt.Sprintf("endpoint declares no %s", field))
}

func undeclared(key string, field apierrors.Field, msg string) error {
	return apierrors.NewRequestValidation(key, "", field, schema.Fail("", IssueUndeclared, msg))
}

func flatten(key string, field apierrors.Field, v any) (map[string]any, error) {
	m, err := route.Flatten(v)
	if err != nil {
		return nil, apierrors.NewRequestValidation(key, "", field, schema.Fail("", IssueEncode, err.Error()))
	}
	return m, nil
}

// buildURL resolves the base URL, interpolates the path and appends the query.
func (c *Client) buildURL(ctx context.Context, key, path string, in inputs) (string, error) {
	base, err := c.baseURL(ctx)
	if err != nil {
		return "", err
	}

	p, err := route.Interpolate(path, in.params)
	if err != nil {
		var missing *route.MissingParamError
		if stderrors.As(err, &missing) {
			verr := apierrors.NewRequestValidation(key, "", apierrors.FieldParams, err)
			verr.Issues = schema.Issues{{Path: missing.Name, Code: IssueMissingParam, Message: err.Error()}}
			return "", verr
		}
		return "", apierrors.NewRequestValidation(key, "", apierrors.FieldParams, schema.Fail("", IssueEncode, err.Error()))
	}

	qs, err := route.EncodeQuery(in.query)
	if err != nil {
		return "", apierrors.NewRequestValidation(key, "", apierrors.FieldQuery, schema.Fail("", IssueEncode, err.Error()))
	}

	url := route.JoinBase(base, p)
	if qs != "" {
		url += "?" + qs
	}
	return url, nil
}

// buildRequest assembles headers and body. Precedence, lowest first:
// client defaults, call headers, auth headers. User-Agent and Content-Type
// are only filled in when missing.
func (c *Client) buildRequest(ctx context.Context, key, method, url string, ep contract.Endpoint, in inputs, args Args) (*transport.Request, error) {
	header := c.opts.headers.Clone()
	if header == nil {
		header = http.Header{}
	}

	for _, name := range route.SortedKeys(in.headers) {
		values, err := headerValues(in.headers[name])
		if err != nil {
			return nil, apierrors.NewRequestValidation(key, url, apierrors.FieldHeaders, schema.Fail(name, IssueEncode, err.Error()))
		}
		header.Del(name)
		for _, v := range values {
			header.Add(name, v)
		}
	}
	if header.Get("User-Agent") == "" && c.opts.userAgent != "" {
		header.Set("User-Agent", c.opts.userAgent)
	}

	if ep.Auth == contract.Required {
		authHeaders, err := auth.Resolve(ctx, args.Auth, c.opts.auth)
		if err != nil {
			return nil, err
		}
		for k, v := range authHeaders {
			header.Set(k, v)
		}
	}

	body, err := c.encodeBody(key, url, ep.ContentType, in.body)
	if err != nil {
		return nil, err
	}
	if body != nil && header.Get("Content-Type") == "" {
		header.Set("Content-Type", ep.ContentType.MIME())
	}

	var native []any
	if len(args.Native) > 0 {
		native = append(native, args.Native...)
	}
	return &transport.Request{Method: method, Header: header, Body: body, Native: native}, nil
}

func (c *Client) encodeBody(key, url string, ct contract.ContentType, body any) ([]byte, error) {
	if isNil(body) {
		return nil, nil
	}
	switch ct {
	case contract.JSON:
		data, err := c.opts.codec.Marshal(body)
		if err != nil {
			return nil, apierrors.NewRequestValidation(key, url, apierrors.FieldBody, schema.Fail("", IssueEncode, err.Error()))
		}
		return data, nil
	case contract.Text:
		s, err := route.Stringify(body)
		if err != nil {
			return nil, apierrors.NewRequestValidation(key, url, apierrors.FieldBody, schema.Fail("", IssueEncode, err.Error()))
		}
		return []byte(s), nil
	default:
		return nil, nil
	}
}

func headerValues(v any) ([]string, error) {
	if isNil(v) {
		return nil, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() != reflect.Uint8 {
		out := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			s, err := route.Stringify(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	}
	s, err := route.Stringify(v)
	if err != nil {
		return nil, err
	}
	return []string{s}, nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
